package types

import "github.com/shopspring/decimal"

// ClaimType categorizes a historical claim
type ClaimType string

const (
	ClaimBodilyInjury   ClaimType = "BODILY_INJURY"
	ClaimMaterialDamage ClaimType = "MATERIAL_DAMAGE"
	ClaimTheft          ClaimType = "THEFT"
	ClaimGlassBreakage  ClaimType = "GLASS_BREAKAGE"
	ClaimOther          ClaimType = "OTHER"
)

// String returns the string representation of the claim type
func (c ClaimType) String() string {
	return string(c)
}

// Claim is an immutable historical claim record
type Claim struct {
	Type   ClaimType       `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// TotalAmount sums the amounts of a claim history
func TotalAmount(claims []Claim) decimal.Decimal {
	total := decimal.Zero
	for _, c := range claims {
		total = total.Add(c.Amount)
	}
	return total
}

// CountByType counts the claims of a given type
func CountByType(claims []Claim, t ClaimType) int {
	n := 0
	for _, c := range claims {
		if c.Type == t {
			n++
		}
	}
	return n
}
