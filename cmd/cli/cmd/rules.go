// Package cmd - rules command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"premium-engine/core/rules"
	"premium-engine/internal/config"
)

var rulesFile string

// rulesCmd prints the active malus and promotion tables
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the active pricing rules",
	Long: `Print the malus tiers and promotion campaigns in evaluation order.

Examples:
  premium rules
  premium rules --rules tariff.hcl`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Get().Pricing.RulesFile
		if rulesFile != "" {
			path = rulesFile
		}
		set, err := rules.LoadFile(path)
		if err != nil {
			return err
		}
		for _, line := range set.Describe() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "HCL rules file (overrides pricing.rules_file)")
}
