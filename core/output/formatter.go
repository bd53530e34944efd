// Package output renders quotes for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"premium-engine/core/premium"
	"premium-engine/core/types"
	"premium-engine/core/ui"
	apperrors "premium-engine/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the quote
	Render(w io.Writer, quote *types.Quote) error
}

// NewFormatter returns the formatter for a format name
func NewFormatter(format Format, noColor bool) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return &CLIFormatter{NoColor: noColor}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, apperrors.Newf(apperrors.TypeInvalidInput, "unsupported output format: %s", format)
	}
}

// JSONFormatter writes the full quote as JSON
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) Format() Format { return FormatJSON }

func (f *JSONFormatter) Render(w io.Writer, quote *types.Quote) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(quote); err != nil {
		return apperrors.Wrap(apperrors.TypeInternal, "failed to encode quote", err)
	}
	return nil
}

// CLIFormatter writes the breakdown as a table
type CLIFormatter struct {
	NoColor bool
}

func (f *CLIFormatter) Format() Format { return FormatCLI }

func (f *CLIFormatter) Render(w io.Writer, q *types.Quote) error {
	out := ui.NewWriter(w, f.NoColor)
	out.Header("Premium Quote")

	out.SubHeader("Policy")
	policy := out.NewTable("Field", "Value")
	policy.AddRow("Holder", q.Policy.HolderID)
	policy.AddRow("Product", q.Policy.ProductType.String())
	policy.AddRow("Segment", q.Policy.Segment.String())
	policy.AddRow("Coverage", q.Policy.Coverage.String())
	policy.AddRow("Risk factor", q.Policy.RiskFactor.String())
	policy.AddRow("Priced on", q.PricedAt.Format("2006-01-02"))
	policy.Render()
	out.Println("")

	out.SubHeader("Breakdown")
	breakdown := out.NewTable("Step", "Detail", "Amount")
	breakdown.AddRow("Base premium", "coverage x risk x "+premium.BaseRate.String(), q.BasePremium.StringFixed(2))
	breakdown.AddRow("Malus", malusDetail(q.Malus), q.Malus.Fraction.String())
	breakdown.AddRow("Promotion", q.Promotion.Code, q.Promotion.DiscountRate.String())
	breakdown.AddRow("Discount", "base x rate", "-"+q.Discount.StringFixed(2))
	breakdown.Render()
	out.Println("")

	summary := out.NewPremiumSummary()
	summary.Premium = q.Premium.StringFixed(2)
	summary.QuoteID = q.ID
	summary.Negative = q.Premium.IsNegative()
	summary.Render()

	for _, note := range q.Lineage.Notes {
		out.Warning("%s", note)
	}
	return nil
}

func malusDetail(m types.MalusBreakdown) string {
	return fmt.Sprintf("%s (%d claims, total %s)", m.Rule, m.ClaimCount, m.TotalAmount)
}
