// Package types defines core domain types shared across all layers.
// This package contains NO pricing rules - only type definitions.
package types

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "premium-engine/internal/errors"
)

// ProductType is the insurance product line of a policy
type ProductType string

const (
	ProductAuto ProductType = "AUTO"
	ProductHome ProductType = "HOME"
	ProductLife ProductType = "LIFE"
)

// String returns the string representation of the product type
func (p ProductType) String() string {
	return string(p)
}

// IsKnown reports whether the product type is one of the declared lines.
// Unknown tags are still accepted by the rules; they just never match.
func (p ProductType) IsKnown() bool {
	switch p {
	case ProductAuto, ProductHome, ProductLife:
		return true
	default:
		return false
	}
}

// CustomerSegment is the commercial segment of the policyholder
type CustomerSegment string

const (
	SegmentStandard    CustomerSegment = "STANDARD"
	SegmentYoungDriver CustomerSegment = "YOUNG_DRIVER"
	SegmentBankPartner CustomerSegment = "BANK_PARTNER"
)

// String returns the string representation of the segment
func (s CustomerSegment) String() string {
	return string(s)
}

// IsKnown reports whether the segment is one of the declared segments
func (s CustomerSegment) IsKnown() bool {
	switch s {
	case SegmentStandard, SegmentYoungDriver, SegmentBankPartner:
		return true
	default:
		return false
	}
}

// ParseProductType normalizes a raw tag (case and surrounding space)
func ParseProductType(raw string) ProductType {
	return ProductType(strings.ToUpper(strings.TrimSpace(raw)))
}

// ParseSegment normalizes a raw segment tag
func ParseSegment(raw string) CustomerSegment {
	return CustomerSegment(strings.ToUpper(strings.TrimSpace(raw)))
}

// ParseAmount parses a decimal amount from its string form.
// Malformed input is reported as an invalid input error.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "%s is not a decimal: %q", field, raw)
	}
	return d, nil
}
