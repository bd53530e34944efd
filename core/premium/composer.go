// Package premium composes the base premium, claims malus and promotional
// discount into the final, auditable premium of a policy.
package premium

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"premium-engine/core/determinism"
	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
	"premium-engine/internal/logging"
)

// BaseRate is the fixed share of risk-weighted coverage charged as base premium
var BaseRate = decimal.RequireFromString("0.05")

// MalusEvaluator derives the surcharge breakdown from a claim history
type MalusEvaluator interface {
	Assess(claims []types.Claim) types.MalusBreakdown
}

// PromotionResolver selects the single active promotion
type PromotionResolver interface {
	Resolve(product types.ProductType, segment types.CustomerSegment, date time.Time) types.Promotion
}

// ClaimsSource looks up the claim history of a policyholder
type ClaimsSource interface {
	ClaimsByHolder(ctx context.Context, holderID string) ([]types.Claim, error)
}

// Composer calculates premiums. It holds no mutable state and is safe
// for concurrent use.
type Composer struct {
	malus      MalusEvaluator
	promotions PromotionResolver
	clock      determinism.Clock
	claims     ClaimsSource
	logger     *zap.Logger
}

// NewComposer creates a composer. claims may be nil when callers always
// supply the history themselves through Calculate.
func NewComposer(malus MalusEvaluator, promotions PromotionResolver, clock determinism.Clock, claims ClaimsSource) *Composer {
	return &Composer{
		malus:      malus,
		promotions: promotions,
		clock:      clock,
		claims:     claims,
		logger:     logging.Named("premium"),
	}
}

// BasePremium returns coverage * risk factor * BaseRate
func BasePremium(p types.Policy) decimal.Decimal {
	return p.Coverage.Mul(p.RiskFactor).Mul(BaseRate)
}

// Combine applies the malus factor first, then subtracts the discount.
// The result is not floored at zero.
func Combine(base, malusFraction, discount decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(malusFraction)).Sub(discount)
}

// Calculate prices a policy against the given claim history.
// It either returns a complete quote or an error; there is no partial result.
func (c *Composer) Calculate(policy types.Policy, claims []types.Claim) (*types.Quote, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	for i, cl := range claims {
		if cl.Amount.IsNegative() {
			return nil, apperrors.Newf(apperrors.TypeInvalidInput, "claim %d has a negative amount", i).
				WithContext("amount", cl.Amount.String())
		}
	}

	now := c.clock.Now()

	base := BasePremium(policy)
	malus := c.malus.Assess(claims)
	promo := c.promotions.Resolve(policy.ProductType, policy.Segment, now)
	discount := promo.Discount(base)
	final := Combine(base, malus.Fraction, discount)

	hash := inputHash(policy, claims, now)
	q := &types.Quote{
		ID:          determinism.QuoteID(hash),
		Policy:      policy,
		PricedAt:    now,
		BasePremium: base,
		Malus:       malus,
		Promotion:   promo,
		Discount:    discount,
		Premium:     final,
		Lineage: types.QuoteLineage{
			Formula:   fmt.Sprintf("%s * (1 + %s) - %s", base, malus.Fraction, discount),
			InputHash: hash.Hex(),
			Notes:     notes(malus, final),
		},
	}

	c.logger.Debug("premium calculated",
		zap.String("quote_id", q.ID),
		zap.String("holder_id", policy.HolderID),
		zap.String("base", base.String()),
		zap.String("malus_rule", malus.Rule),
		zap.String("malus", malus.Fraction.String()),
		zap.String("promotion", promo.Code),
		zap.String("premium", final.String()),
	)
	return q, nil
}

// QuoteHolder fetches the holder's claims from the configured source and
// prices the policy. A lookup failure is returned, never treated as an empty history.
func (c *Composer) QuoteHolder(ctx context.Context, policy types.Policy) (*types.Quote, error) {
	if c.claims == nil {
		return nil, apperrors.Config("no claims source configured", nil)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	claims, err := c.claims.ClaimsByHolder(ctx, policy.HolderID)
	if err != nil {
		c.logger.Warn("claims lookup failed", zap.String("holder_id", policy.HolderID), zap.Error(err))
		return nil, apperrors.UpstreamLookup(policy.HolderID, err)
	}
	return c.Calculate(policy, claims)
}

func inputHash(p types.Policy, claims []types.Claim, now time.Time) determinism.ContentHash {
	h := determinism.NewHasher().Add(
		p.HolderID,
		p.Coverage.String(),
		p.RiskFactor.String(),
		p.ProductType.String(),
		p.Segment.String(),
		now.UTC().Format(time.RFC3339Nano),
	)
	for _, cl := range claims {
		h.Add(cl.Type.String(), cl.Amount.String())
	}
	return h.Sum()
}

func notes(m types.MalusBreakdown, final decimal.Decimal) []string {
	var out []string
	if m.BodilyInjuryClaims > 0 {
		out = append(out, fmt.Sprintf("%d bodily-injury claim(s) in history; not a malus input under the current tariff", m.BodilyInjuryClaims))
	}
	if final.IsNegative() {
		out = append(out, "final premium is negative; discount exceeds the surcharged base")
	}
	return out
}
