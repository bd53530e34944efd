// Package malus derives the claims-history surcharge applied to a base premium.
//
// Rules are held in an ordered table and evaluated first-match-wins, so a new
// tier (a new regulation, a new claim category) is a table change rather than
// a new branch.
package malus

import (
	"github.com/shopspring/decimal"

	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

// Rule names reported in the breakdown
const (
	RuleNoClaims = "no_claims"
	RuleSeverity = "severity"
	RulePerClaim = "per_claim"
	RuleNone     = "none"
)

// History is the summary of a claim list that rules are matched against
type History struct {
	Count              int
	Total              decimal.Decimal
	BodilyInjuryClaims int
}

// Summarize computes a History in one pass over the claims
func Summarize(claims []types.Claim) History {
	return History{
		Count:              len(claims),
		Total:              types.TotalAmount(claims),
		BodilyInjuryClaims: types.CountByType(claims, types.ClaimBodilyInjury),
	}
}

// Rule is one row of the malus table
type Rule struct {
	Name     string
	Applies  func(History) bool
	Fraction func(History) decimal.Decimal
}

// Tiers are the parameters of the standard three-row table
type Tiers struct {
	// SeverityThreshold is compared strictly: totals above it hit the flat tier
	SeverityThreshold decimal.Decimal

	// SeverityRate is the flat fraction for severe histories
	SeverityRate decimal.Decimal

	// PerClaimRate is charged per claim below the threshold, without cap
	PerClaimRate decimal.Decimal
}

// DefaultTiers returns the current tariff: 35% above 50000 in total, else 10% per claim
func DefaultTiers() Tiers {
	return Tiers{
		SeverityThreshold: decimal.NewFromInt(50000),
		SeverityRate:      decimal.RequireFromString("0.35"),
		PerClaimRate:      decimal.RequireFromString("0.10"),
	}
}

// Validate rejects negative parameters
func (t Tiers) Validate() error {
	switch {
	case t.SeverityThreshold.IsNegative():
		return apperrors.InvalidInput("malus severity threshold must not be negative")
	case t.SeverityRate.IsNegative():
		return apperrors.InvalidInput("malus severity rate must not be negative")
	case t.PerClaimRate.IsNegative():
		return apperrors.InvalidInput("malus per-claim rate must not be negative")
	}
	return nil
}

// Rules expands the tiers into the ordered table
func (t Tiers) Rules() []Rule {
	return []Rule{
		{
			Name:     RuleNoClaims,
			Applies:  func(h History) bool { return h.Count == 0 },
			Fraction: func(History) decimal.Decimal { return decimal.Zero },
		},
		{
			// Flat tier wins over the per-claim count, whatever the count or types.
			Name:     RuleSeverity,
			Applies:  func(h History) bool { return h.Total.GreaterThan(t.SeverityThreshold) },
			Fraction: func(History) decimal.Decimal { return t.SeverityRate },
		},
		{
			Name:     RulePerClaim,
			Applies:  func(History) bool { return true },
			Fraction: func(h History) decimal.Decimal { return t.PerClaimRate.Mul(decimal.NewFromInt(int64(h.Count))) },
		},
	}
}

// Evaluator applies a malus table to claim histories.
// It is immutable and safe for concurrent use.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator creates an evaluator over an ordered rule table
func NewEvaluator(rules []Rule) *Evaluator {
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Evaluator{rules: copied}
}

// NewDefaultEvaluator creates an evaluator with DefaultTiers
func NewDefaultEvaluator() *Evaluator {
	return NewEvaluator(DefaultTiers().Rules())
}

// Evaluate returns the malus fraction for a claim history
func (e *Evaluator) Evaluate(claims []types.Claim) decimal.Decimal {
	return e.Assess(claims).Fraction
}

// Assess returns the malus fraction along with the rule that produced it.
// The bodily-injury count is reported for audit only; no rule reads it yet.
func (e *Evaluator) Assess(claims []types.Claim) types.MalusBreakdown {
	h := Summarize(claims)
	out := types.MalusBreakdown{
		Fraction:           decimal.Zero,
		Rule:               RuleNone,
		ClaimCount:         h.Count,
		TotalAmount:        h.Total,
		BodilyInjuryClaims: h.BodilyInjuryClaims,
	}
	for _, r := range e.rules {
		if r.Applies(h) {
			out.Fraction = r.Fraction(h)
			out.Rule = r.Name
			break
		}
	}
	return out
}

// RuleNames lists the table in evaluation order
func (e *Evaluator) RuleNames() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}
