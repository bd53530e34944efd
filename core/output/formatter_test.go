package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"premium-engine/core/premium"
	"premium-engine/core/types"
	apperrors "premium-engine/internal/errors"
)

func sampleQuote() *types.Quote {
	d := decimal.RequireFromString
	return &types.Quote{
		ID: "6f1c1b1e-0000-5000-8000-000000000000",
		Policy: types.Policy{
			HolderID: "H-3", Coverage: d("50000"), RiskFactor: d("2.0"),
			ProductType: types.ProductAuto, Segment: types.SegmentYoungDriver,
		},
		PricedAt:    time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC),
		BasePremium: d("5000"),
		Malus:       types.MalusBreakdown{Fraction: d("0.20"), Rule: "per_claim", ClaimCount: 2, TotalAmount: d("3000")},
		Promotion:   types.Promotion{Code: "YOUNG15", DiscountRate: d("0.10")},
		Discount:    d("500"),
		Premium:     d("5500"),
		Lineage:     types.QuoteLineage{Formula: "5000 * (1 + 0.2) - 500", Notes: []string{"note for auditors"}},
	}
}

func TestCLIFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter(FormatCLI, true)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	if err := f.Render(&buf, sampleQuote()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Premium Quote", "YOUNG15", "5500.00", "-500.00", "per_claim (2 claims, total 3000)", "note for auditors", "2025-06-10"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("NoColor output must not contain escape codes")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, _ := NewFormatter(FormatJSON, false)
	if err := f.Render(&buf, sampleQuote()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded types.Quote
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not a quote document: %v", err)
	}
	if !decoded.Premium.Equal(decimal.NewFromInt(5500)) {
		t.Errorf("Expected premium 5500, got %s", decoded.Premium)
	}
	// Amounts are serialized as strings to keep exact decimals.
	if !strings.Contains(buf.String(), `"premium": "5500"`) {
		t.Errorf("Expected string-encoded premium, got:\n%s", buf.String())
	}
}

func TestCLIFormatterShowsBaseRate(t *testing.T) {
	saved := premium.BaseRate
	defer func() { premium.BaseRate = saved }()
	premium.BaseRate = decimal.RequireFromString("0.07")

	var buf bytes.Buffer
	if err := (&CLIFormatter{NoColor: true}).Render(&buf, sampleQuote()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "coverage x risk x 0.07") {
		t.Errorf("Expected base rate in breakdown:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONFormatterWriteFailure(t *testing.T) {
	err := (&JSONFormatter{}).Render(failingWriter{}, sampleQuote())
	if !apperrors.IsType(err, apperrors.TypeInternal) {
		t.Errorf("Expected internal error, got %v", err)
	}
}

func TestNewFormatterRejectsUnknown(t *testing.T) {
	if _, err := NewFormatter("html", false); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
