// Package promotion selects the single promotional discount active for a
// product, segment and date.
//
// Campaigns are an ordered table evaluated first-match-wins. There is no
// stacking: at most one campaign applies to a pricing call.
package promotion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

// Campaign is one row of the promotion table.
// An empty criteria list matches everything for that dimension.
type Campaign struct {
	Code     string
	Rate     decimal.Decimal
	Months   []time.Month
	Segments []types.CustomerSegment
	Products []types.ProductType
}

// Validate checks the campaign code and rate bounds
func (c Campaign) Validate() error {
	_, err := types.NewPromotion(c.Code, c.Rate)
	return err
}

// Matches reports whether the campaign applies
func (c Campaign) Matches(product types.ProductType, segment types.CustomerSegment, date time.Time) bool {
	return matchAny(c.Months, date.Month()) &&
		matchAny(c.Segments, segment) &&
		matchAny(c.Products, product)
}

// Promotion returns the value handed to the composer
func (c Campaign) Promotion() types.Promotion {
	return types.Promotion{Code: c.Code, DiscountRate: c.Rate}
}

// Describe renders the matching criteria for listings
func (c Campaign) Describe() string {
	return fmt.Sprintf("months=%s segments=%s products=%s", listOrAny(c.Months), listOrAny(c.Segments), listOrAny(c.Products))
}

func matchAny[T comparable](allowed []T, v T) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

func listOrAny[T fmt.Stringer](vs []T) string {
	if len(vs) == 0 {
		return "*"
	}
	s := ""
	for i, v := range vs {
		if i > 0 {
			s += ","
		}
		s += v.String()
	}
	return s
}

// DefaultCampaigns returns the campaigns in priority order:
// the December seasonal offer beats every segment offer.
func DefaultCampaigns() []Campaign {
	return []Campaign{
		{
			Code:   "NOEL2025",
			Rate:   decimal.RequireFromString("0.15"),
			Months: []time.Month{time.December},
		},
		{
			Code:     "YOUNG15",
			Rate:     decimal.RequireFromString("0.10"),
			Segments: []types.CustomerSegment{types.SegmentYoungDriver},
			Products: []types.ProductType{types.ProductAuto},
		},
		{
			Code:     "BANK20",
			Rate:     decimal.RequireFromString("0.20"),
			Segments: []types.CustomerSegment{types.SegmentBankPartner},
		},
	}
}

// Resolver picks the first matching campaign.
// It is immutable and safe for concurrent use.
type Resolver struct {
	campaigns []Campaign
}

// NewResolver validates and copies the campaign table
func NewResolver(campaigns []Campaign) (*Resolver, error) {
	seen := make(map[string]bool, len(campaigns))
	copied := make([]Campaign, len(campaigns))
	for i, c := range campaigns {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if seen[c.Code] {
			return nil, apperrors.Newf(apperrors.TypeInvalidInput, "duplicate promotion code %s", c.Code)
		}
		seen[c.Code] = true
		copied[i] = c
	}
	return &Resolver{campaigns: copied}, nil
}

// NewDefaultResolver creates a resolver over DefaultCampaigns
func NewDefaultResolver() *Resolver {
	r, err := NewResolver(DefaultCampaigns())
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the active promotion, or types.NoPromotion.
// The date is always supplied by the caller; the resolver never reads a clock.
func (r *Resolver) Resolve(product types.ProductType, segment types.CustomerSegment, date time.Time) types.Promotion {
	for _, c := range r.campaigns {
		if c.Matches(product, segment, date) {
			return c.Promotion()
		}
	}
	return types.NoPromotion
}

// Campaigns returns a copy of the table in priority order
func (r *Resolver) Campaigns() []Campaign {
	out := make([]Campaign, len(r.campaigns))
	copy(out, r.campaigns)
	return out
}
