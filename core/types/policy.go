package types

import (
	"github.com/shopspring/decimal"

	apperrors "premium-engine/internal/errors"
)

// Policy holds the pricing inputs of an insurance policy.
// It is owned by the caller and never mutated during pricing.
type Policy struct {
	// HolderID identifies the policyholder whose claims drive the malus
	HolderID string `json:"holder_id"`

	// Coverage is the insured amount in currency units
	Coverage decimal.Decimal `json:"coverage"`

	// RiskFactor is a dimensionless multiplier
	RiskFactor decimal.Decimal `json:"risk_factor"`

	// ProductType is the product line (AUTO, HOME, LIFE)
	ProductType ProductType `json:"product_type"`

	// Segment is the customer segment (STANDARD, YOUNG_DRIVER, BANK_PARTNER)
	Segment CustomerSegment `json:"customer_segment"`
}

// Validate checks the policy preconditions for pricing
func (p Policy) Validate() error {
	if p.Coverage.IsNegative() {
		return apperrors.InvalidInput("coverage must not be negative").
			WithContext("coverage", p.Coverage.String())
	}
	if p.RiskFactor.IsNegative() {
		return apperrors.InvalidInput("risk factor must not be negative").
			WithContext("risk_factor", p.RiskFactor.String())
	}
	return nil
}
