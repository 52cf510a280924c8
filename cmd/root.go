// =============================================================================
// Sales Analytics - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (salesreport)
//   ├── processCmd (salesreport process)
//   ├── validateCmd (salesreport validate)
//   └── versionCmd (salesreport version)
//
// The root command owns the global flags (--config, --verbose) and the
// logger construction shared by the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "salesreport",
	Short: "Sales Analytics - Aggregate pipe-delimited sales data into a text report",
	Long: `Sales Analytics is a CLI tool that ingests pipe-delimited sales transaction
records, validates and filters them, computes aggregate analytics (revenue,
region/product/customer/date breakdowns, peak day, low performers), enriches
records with external product catalog metadata, and emits a formatted text
report plus an enriched pipe-delimited dataset.

Example Usage:
  salesreport process                     # Run the full pipeline
  salesreport process --region North      # Keep only the North region
  salesreport process --min-amount 1000   # Drop orders below 1000
  salesreport validate                    # Check the input file, write nothing`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags available to every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// LOGGING
// =============================================================================

// newLogger builds the application logger from the configured level.
// The --verbose flag forces debug level regardless of configuration.
func newLogger(cfg *config.Config) *slog.Logger {
	level := parseLogLevel(cfg.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
