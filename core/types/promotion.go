package types

import (
	"github.com/shopspring/decimal"

	apperrors "premium-engine/internal/errors"
)

// NoPromotionCode is the code carried by the no-promotion sentinel
const NoPromotionCode = "NO_PROMOTION"

// Promotion is a discount selected for a single pricing call.
// The zero-rate NoPromotion sentinel stands for "nothing active".
type Promotion struct {
	Code         string          `json:"code"`
	DiscountRate decimal.Decimal `json:"discount_rate"`
}

// NoPromotion is the sentinel returned when no campaign matches
var NoPromotion = Promotion{Code: NoPromotionCode, DiscountRate: decimal.Zero}

// NewPromotion builds a promotion, enforcing a rate within [0, 1]
func NewPromotion(code string, rate decimal.Decimal) (Promotion, error) {
	if code == "" {
		return Promotion{}, apperrors.InvalidInput("promotion code is required")
	}
	if code == NoPromotionCode {
		return Promotion{}, apperrors.InvalidInput("promotion code " + NoPromotionCode + " is reserved")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Promotion{}, apperrors.Newf(apperrors.TypeInvalidInput, "promotion %s: discount rate %s outside [0,1]", code, rate)
	}
	return Promotion{Code: code, DiscountRate: rate}, nil
}

// MustPromotion is NewPromotion for compile-time constant campaigns
func MustPromotion(code, rate string) Promotion {
	p, err := NewPromotion(code, decimal.RequireFromString(rate))
	if err != nil {
		panic(err)
	}
	return p
}

// Active reports whether this is a real promotion rather than the sentinel
func (p Promotion) Active() bool {
	return p.Code != NoPromotionCode
}

// Discount returns the amount taken off the given base premium
func (p Promotion) Discount(base decimal.Decimal) decimal.Decimal {
	return base.Mul(p.DiscountRate)
}
