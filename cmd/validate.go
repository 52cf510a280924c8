// =============================================================================
// Sales Analytics - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs the read, parse and
// validation stages of the pipeline and prints the filter summary without
// writing any output artifact. Useful for checking a data drop before a full
// run.
//
// COMMAND USAGE:
//   salesreport validate [--input FILE]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/salesfile"
	"github.com/retailops/sales-analytics/internal/validation"
)

// validateInput overrides the configured input file for validation runs.
var validateInput string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the input file without writing outputs",
	Long: `The validate command reads and parses the sales data file, applies the
business-rule validation and the configured filters, and prints the resulting
filter summary. Nothing is written to disk.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		logger := newLogger(cfg)

		input := cfg.InputFile
		if validateInput != "" {
			input = validateInput
		}

		rawLines := salesfile.ReadLines(input, cfg.Encodings, logger)
		transactions := salesfile.ParseTransactions(rawLines)

		filters := validation.Filters{
			Region:    cfg.Filters.Region,
			MinAmount: cfg.Filters.MinAmount,
			MaxAmount: cfg.Filters.MaxAmount,
		}
		valid, _, summary := validation.ValidateAndFilter(transactions, filters)

		fmt.Printf("Input file:          %s\n", input)
		fmt.Printf("Data lines read:     %d\n", len(rawLines))
		fmt.Printf("Records parsed:      %d\n", len(transactions))
		fmt.Printf("Malformed (dropped): %d\n", len(rawLines)-len(transactions))
		fmt.Printf("Invalid (rules):     %d\n", summary.InvalidCount)
		fmt.Printf("Filtered by region:  %d\n", summary.FilteredByRegion)
		fmt.Printf("Filtered by amount:  %d\n", summary.FilteredByAmount)
		fmt.Printf("Records remaining:   %d\n", len(valid))
		return nil
	},
}

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateInput, "input", "", "Input sales data file (overrides configuration)")
}
