// Package cmd - quote command
package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"premium-engine/adapters/claims"
	"premium-engine/core/determinism"
	"premium-engine/core/output"
	"premium-engine/core/premium"
	"premium-engine/core/rules"
	"premium-engine/core/types"
	"premium-engine/internal/config"
	apperrors "premium-engine/internal/errors"
	"premium-engine/internal/logging"
)

type quoteOptions struct {
	claimsFile string
	rulesFile  string
	date       string
	format     string
	noColor    bool

	holder   string
	coverage string
	risk     string
	product  string
	segment  string
}

var quoteFlags quoteOptions

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [policy.json]",
	Short: "Calculate the premium of a policy",
	Long: `Calculate a policy's premium and print the breakdown.

The policy is read from a JSON file or from flags. Claims are read from
--claims (a JSON array for this policy) or, when omitted, looked up by
holder ID in the configured claims source. A failed lookup aborts the quote.

Examples:
  premium quote policy.json
  premium quote --claims history.json policy.json
  premium quote --holder H-1 --coverage 100000 --risk 1 --product HOME --segment STANDARD
  premium quote --date 2025-12-24 --format json policy.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVarP(&quoteFlags.claimsFile, "claims", "c", "", "JSON file with this policy's claims (skips the claims source)")
	f.StringVarP(&quoteFlags.rulesFile, "rules", "r", "", "HCL rules file (overrides pricing.rules_file)")
	f.StringVarP(&quoteFlags.date, "date", "d", "", "pricing date YYYY-MM-DD (default: today in pricing.timezone)")
	f.StringVarP(&quoteFlags.format, "format", "f", "", "output format (cli, json)")
	f.BoolVar(&quoteFlags.noColor, "no-color", false, "disable colored output")

	f.StringVar(&quoteFlags.holder, "holder", "", "policyholder ID")
	f.StringVar(&quoteFlags.coverage, "coverage", "", "coverage amount")
	f.StringVar(&quoteFlags.risk, "risk", "", "risk factor")
	f.StringVar(&quoteFlags.product, "product", "", "product type (AUTO, HOME, LIFE)")
	f.StringVar(&quoteFlags.segment, "segment", "", "customer segment (STANDARD, YOUNG_DRIVER, BANK_PARTNER)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return err
	}

	policy, err := loadPolicy(args)
	if err != nil {
		return err
	}

	clock, err := pricingClock(cfg, quoteFlags.date)
	if err != nil {
		return err
	}

	rulesPath := cfg.Pricing.RulesFile
	if quoteFlags.rulesFile != "" {
		rulesPath = quoteFlags.rulesFile
	}
	set, err := rules.LoadFile(rulesPath)
	if err != nil {
		return err
	}
	resolver, err := set.Resolver()
	if err != nil {
		return err
	}

	format := cfg.Output.DefaultFormat
	if quoteFlags.format != "" {
		format = quoteFlags.format
	}
	formatter, err := output.NewFormatter(output.Format(format), quoteFlags.noColor)
	if err != nil {
		return err
	}

	logging.Info("pricing policy",
		zap.String("holder_id", policy.HolderID),
		zap.String("rules", set.Source),
		zap.Time("date", clock.Now()),
	)

	var quote *types.Quote
	if quoteFlags.claimsFile != "" {
		history, err := loadClaims(quoteFlags.claimsFile)
		if err != nil {
			return err
		}
		composer := premium.NewComposer(set.Evaluator(), resolver, clock, nil)
		quote, err = composer.Calculate(policy, history)
		if err != nil {
			return err
		}
	} else {
		opts := claimsOptions(cfg)
		src, err := claims.Open(ctx, opts)
		if err != nil {
			return err
		}
		defer src.Close()
		logging.Debug("claims source opened", zap.String("backend", string(opts.Backend)))

		composer := premium.NewComposer(set.Evaluator(), resolver, clock, src)
		quote, err = composer.QuoteHolder(ctx, policy)
		if err != nil {
			logging.Error("quote failed", zap.String("holder_id", policy.HolderID), zap.Error(err))
			return err
		}
	}

	return formatter.Render(cmd.OutOrStdout(), quote)
}

// claimsOptions maps the claims config section onto adapter options
func claimsOptions(cfg *config.Config) claims.Options {
	return claims.Options{
		Backend: claims.Backend(cfg.Claims.Backend),
		Path:    cfg.Claims.Path,
		DSN:     cfg.Claims.DSN,
	}
}

// loadPolicy reads the policy file argument, or builds the policy from flags
func loadPolicy(args []string) (types.Policy, error) {
	var p types.Policy
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return p, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "cannot read policy file %s", args[0])
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return p, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "malformed policy file %s", args[0])
		}
	} else {
		if quoteFlags.holder == "" || quoteFlags.coverage == "" || quoteFlags.risk == "" {
			return p, apperrors.InvalidInput("a policy file or --holder, --coverage and --risk are required")
		}
		coverage, err := types.ParseAmount("coverage", quoteFlags.coverage)
		if err != nil {
			return p, err
		}
		risk, err := types.ParseAmount("risk factor", quoteFlags.risk)
		if err != nil {
			return p, err
		}
		p = types.Policy{
			HolderID:    quoteFlags.holder,
			Coverage:    coverage,
			RiskFactor:  risk,
			ProductType: types.ProductType(quoteFlags.product),
			Segment:     types.CustomerSegment(quoteFlags.segment),
		}
	}

	p.ProductType = types.ParseProductType(string(p.ProductType))
	p.Segment = types.ParseSegment(string(p.Segment))
	if !p.ProductType.IsKnown() {
		logging.Warn("unknown product type, no product-specific promotion will match", zap.String("product_type", p.ProductType.String()))
	}
	if !p.Segment.IsKnown() {
		logging.Warn("unknown customer segment, no segment promotion will match", zap.String("segment", p.Segment.String()))
	}
	return p, nil
}

// loadClaims reads a JSON array of claims
func loadClaims(path string) ([]types.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "cannot read claims file %s", path)
	}
	var history []types.Claim
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "malformed claims file %s", path)
	}
	return history, nil
}

// pricingClock pins the date when --date is given, else reads the wall clock
// in the configured timezone
func pricingClock(cfg *config.Config, date string) (determinism.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if date == "" {
		return determinism.SystemClock{Location: loc}, nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.TypeInvalidInput, err, "invalid --date %q", date)
	}
	return determinism.FixedClock{At: day}, nil
}
