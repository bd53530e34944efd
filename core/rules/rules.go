// Package rules loads the malus and promotion tables.
//
// The built-in tables are the current tariff. An HCL rules file may override
// the malus parameters and replace the campaign list:
//
//	malus {
//	  severity_threshold = "50000"
//	  severity_rate      = "0.35"
//	  per_claim_rate     = "0.10"
//	}
//
//	promotion "NOEL2025" {
//	  rate   = "0.15"
//	  months = [12]
//	}
//
//	promotion "YOUNG15" {
//	  rate     = "0.10"
//	  segments = ["YOUNG_DRIVER"]
//	  products = ["AUTO"]
//	}
//
// Promotion blocks are evaluated in file order. Rates are decimal strings.
package rules

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"premium-engine/core/malus"
	"premium-engine/core/promotion"
	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

// Set is a complete pricing rule configuration
type Set struct {
	// Source is the file the set was loaded from ("built-in" otherwise)
	Source    string
	Malus     malus.Tiers
	Campaigns []promotion.Campaign
}

// Default returns the built-in tariff
func Default() Set {
	return Set{
		Source:    "built-in",
		Malus:     malus.DefaultTiers(),
		Campaigns: promotion.DefaultCampaigns(),
	}
}

// Evaluator builds the malus evaluator for this set
func (s Set) Evaluator() *malus.Evaluator {
	return malus.NewEvaluator(s.Malus.Rules())
}

// Resolver builds the promotion resolver for this set
func (s Set) Resolver() (*promotion.Resolver, error) {
	return promotion.NewResolver(s.Campaigns)
}

type fileSchema struct {
	Malus      *malusBlock      `hcl:"malus,block"`
	Promotions []promotionBlock `hcl:"promotion,block"`
}

type malusBlock struct {
	SeverityThreshold string `hcl:"severity_threshold"`
	SeverityRate      string `hcl:"severity_rate"`
	PerClaimRate      string `hcl:"per_claim_rate"`
}

type promotionBlock struct {
	Code     string   `hcl:"code,label"`
	Rate     string   `hcl:"rate"`
	Months   []int    `hcl:"months,optional"`
	Segments []string `hcl:"segments,optional"`
	Products []string `hcl:"products,optional"`
}

// LoadFile reads an HCL rules file. An empty path yields the defaults.
func LoadFile(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Set{}, apperrors.Config("failed to read rules file", err).WithContext("path", path)
	}
	return Parse(src, path)
}

// Parse decodes HCL rules source on top of the defaults
func Parse(src []byte, filename string) (Set, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Set{}, apperrors.Parsing("invalid rules file "+filename, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return Set{}, apperrors.Parsing("invalid rules file "+filename, diags)
	}

	set := Default()
	set.Source = filename

	if schema.Malus != nil {
		tiers, err := schema.Malus.tiers()
		if err != nil {
			return Set{}, err
		}
		set.Malus = tiers
	}

	if len(schema.Promotions) > 0 {
		campaigns := make([]promotion.Campaign, 0, len(schema.Promotions))
		for _, b := range schema.Promotions {
			c, err := b.campaign()
			if err != nil {
				return Set{}, err
			}
			campaigns = append(campaigns, c)
		}
		set.Campaigns = campaigns
	}

	// Surface table errors at load time rather than on first quote.
	if _, err := set.Resolver(); err != nil {
		return Set{}, err
	}
	return set, nil
}

func (b *malusBlock) tiers() (malus.Tiers, error) {
	threshold, err := types.ParseAmount("malus.severity_threshold", b.SeverityThreshold)
	if err != nil {
		return malus.Tiers{}, err
	}
	severity, err := types.ParseAmount("malus.severity_rate", b.SeverityRate)
	if err != nil {
		return malus.Tiers{}, err
	}
	perClaim, err := types.ParseAmount("malus.per_claim_rate", b.PerClaimRate)
	if err != nil {
		return malus.Tiers{}, err
	}
	t := malus.Tiers{SeverityThreshold: threshold, SeverityRate: severity, PerClaimRate: perClaim}
	return t, t.Validate()
}

func (b promotionBlock) campaign() (promotion.Campaign, error) {
	rate, err := types.ParseAmount(fmt.Sprintf("promotion %q rate", b.Code), b.Rate)
	if err != nil {
		return promotion.Campaign{}, err
	}
	c := promotion.Campaign{Code: b.Code, Rate: rate}
	for _, m := range b.Months {
		if m < 1 || m > 12 {
			return promotion.Campaign{}, apperrors.Newf(apperrors.TypeInvalidInput, "promotion %q: month %d out of range", b.Code, m)
		}
		c.Months = append(c.Months, time.Month(m))
	}
	for _, s := range b.Segments {
		c.Segments = append(c.Segments, types.ParseSegment(s))
	}
	for _, p := range b.Products {
		c.Products = append(c.Products, types.ParseProductType(p))
	}
	return c, nil
}

// Describe renders the set as human-readable lines, in evaluation order
func (s Set) Describe() []string {
	lines := []string{
		fmt.Sprintf("source: %s", s.Source),
		"malus (first match wins):",
		"  1. no claims -> 0",
		fmt.Sprintf("  2. total > %s -> %s", s.Malus.SeverityThreshold, s.Malus.SeverityRate),
		fmt.Sprintf("  3. otherwise -> %s x claim count", s.Malus.PerClaimRate),
		"promotions (first match wins):",
	}
	for i, c := range s.Campaigns {
		lines = append(lines, fmt.Sprintf("  %d. %s @ %s [%s]", i+1, c.Code, c.Rate, c.Describe()))
	}
	lines = append(lines, fmt.Sprintf("  %d. otherwise -> %s @ %s", len(s.Campaigns)+1, types.NoPromotionCode, decimal.Zero))
	return lines
}
