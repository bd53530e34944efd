package malus

import (
	"testing"

	"github.com/shopspring/decimal"

	"premium-engine/core/types"
)

func claim(t types.ClaimType, amount string) types.Claim {
	return types.Claim{Type: t, Amount: decimal.RequireFromString(amount)}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		claims []types.Claim
		want   string
		rule   string
	}{
		{"no claims", nil, "0", RuleNoClaims},
		{"empty slice", []types.Claim{}, "0", RuleNoClaims},
		{"one small claim", []types.Claim{claim(types.ClaimTheft, "1000")}, "0.10", RulePerClaim},
		{
			"two claims under threshold",
			[]types.Claim{claim(types.ClaimOther, "1000"), claim(types.ClaimOther, "2000")},
			"0.20", RulePerClaim,
		},
		{"exactly at threshold stays per-claim", []types.Claim{claim(types.ClaimOther, "50000")}, "0.10", RulePerClaim},
		{"single severe claim", []types.Claim{claim(types.ClaimOther, "60000")}, "0.35", RuleSeverity},
		{"just above threshold", []types.Claim{claim(types.ClaimOther, "50000.01")}, "0.35", RuleSeverity},
		{
			"severity tier overrides a higher per-claim count",
			[]types.Claim{
				claim(types.ClaimOther, "10000"), claim(types.ClaimOther, "10000"),
				claim(types.ClaimOther, "10000"), claim(types.ClaimOther, "10000"),
				claim(types.ClaimOther, "10000"), claim(types.ClaimOther, "1"),
			},
			"0.35", RuleSeverity,
		},
		{
			"bodily injury does not change the fraction",
			[]types.Claim{claim(types.ClaimBodilyInjury, "100"), claim(types.ClaimBodilyInjury, "100")},
			"0.20", RulePerClaim,
		},
	}

	e := NewDefaultEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Assess(tt.claims)
			if !got.Fraction.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Expected malus %s, got %s", tt.want, got.Fraction)
			}
			if got.Rule != tt.rule {
				t.Errorf("Expected rule %s, got %s", tt.rule, got.Rule)
			}
			if !e.Evaluate(tt.claims).Equal(got.Fraction) {
				t.Error("Evaluate and Assess disagree")
			}
		})
	}
}

func TestPerClaimIsUncapped(t *testing.T) {
	claims := make([]types.Claim, 12)
	for i := range claims {
		claims[i] = claim(types.ClaimGlassBreakage, "100")
	}
	got := NewDefaultEvaluator().Evaluate(claims)
	if !got.Equal(decimal.RequireFromString("1.2")) {
		t.Errorf("Expected 1.2 for 12 claims, got %s", got)
	}
}

func TestAssessReportsHistory(t *testing.T) {
	claims := []types.Claim{
		claim(types.ClaimBodilyInjury, "1500.50"),
		claim(types.ClaimTheft, "499.50"),
	}
	got := NewDefaultEvaluator().Assess(claims)
	if got.ClaimCount != 2 {
		t.Errorf("Expected 2 claims, got %d", got.ClaimCount)
	}
	if got.BodilyInjuryClaims != 1 {
		t.Errorf("Expected 1 bodily injury claim, got %d", got.BodilyInjuryClaims)
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected total 2000, got %s", got.TotalAmount)
	}
}

func TestCustomTiers(t *testing.T) {
	tiers := Tiers{
		SeverityThreshold: decimal.NewFromInt(1000),
		SeverityRate:      decimal.RequireFromString("0.50"),
		PerClaimRate:      decimal.RequireFromString("0.05"),
	}
	if err := tiers.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	e := NewEvaluator(tiers.Rules())

	if got := e.Evaluate([]types.Claim{claim(types.ClaimOther, "1001")}); !got.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("Expected 0.5, got %s", got)
	}
	if got := e.Evaluate([]types.Claim{claim(types.ClaimOther, "10"), claim(types.ClaimOther, "10")}); !got.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Expected 0.1, got %s", got)
	}
}

func TestTiersValidate(t *testing.T) {
	tiers := DefaultTiers()
	tiers.PerClaimRate = decimal.NewFromInt(-1)
	if err := tiers.Validate(); err == nil {
		t.Error("Expected error for negative per-claim rate")
	}
}

func TestEmptyTableYieldsZero(t *testing.T) {
	got := NewEvaluator(nil).Assess([]types.Claim{claim(types.ClaimOther, "1")})
	if !got.Fraction.IsZero() || got.Rule != RuleNone {
		t.Errorf("Expected zero malus from empty table, got %s (%s)", got.Fraction, got.Rule)
	}
}

func TestRuleOrder(t *testing.T) {
	names := NewDefaultEvaluator().RuleNames()
	want := []string{RuleNoClaims, RuleSeverity, RulePerClaim}
	if len(names) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Rule %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}
