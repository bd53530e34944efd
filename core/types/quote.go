package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the auditable result of pricing one policy
type Quote struct {
	// ID is derived from the inputs, so identical inputs yield the same ID
	ID string `json:"id"`

	// Policy is a copy of the priced policy
	Policy Policy `json:"policy"`

	// PricedAt is the clock date used for promotion matching
	PricedAt time.Time `json:"priced_at"`

	// BasePremium is coverage * risk factor * base rate
	BasePremium decimal.Decimal `json:"base_premium"`

	// Malus is the claims-history surcharge breakdown
	Malus MalusBreakdown `json:"malus"`

	// Promotion is the single applied promotion (or the sentinel)
	Promotion Promotion `json:"promotion"`

	// Discount is BasePremium * Promotion.DiscountRate
	Discount decimal.Decimal `json:"discount"`

	// Premium is the final amount: base * (1 + malus) - discount
	Premium decimal.Decimal `json:"premium"`

	// Lineage tracks how the premium was calculated
	Lineage QuoteLineage `json:"lineage"`
}

// MalusBreakdown records which malus rule fired and on what history
type MalusBreakdown struct {
	Fraction           decimal.Decimal `json:"fraction"`
	Rule               string          `json:"rule"`
	ClaimCount         int             `json:"claim_count"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	BodilyInjuryClaims int             `json:"bodily_injury_claims"`
}

// QuoteLineage tracks the formula and inputs behind a quote
type QuoteLineage struct {
	// Formula is the combination actually evaluated, with values substituted
	Formula string `json:"formula"`

	// InputHash is a content hash of every pricing input
	InputHash string `json:"input_hash"`

	// Notes lists observations an auditor should see
	Notes []string `json:"notes,omitempty"`
}
