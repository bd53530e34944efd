// Package cmd provides the CLI commands for premium.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"premium-engine/internal/config"
	"premium-engine/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "premium",
	Short: "Price insurance policies",
	Long: `premium computes an insurance policy's premium from its coverage and
risk factor, the policyholder's claims history (malus) and the active
promotion, and prints an auditable breakdown.

Examples:
  premium quote policy.json
  premium quote --holder H-1 --coverage 100000 --risk 1.0 --product AUTO --segment STANDARD
  premium quote --claims claims.json --date 2025-12-24 --format json policy.json
  premium rules --rules tariff.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or TOML (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "premium version %s\n", version)
	},
}
