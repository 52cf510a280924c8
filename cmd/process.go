// =============================================================================
// Sales Analytics - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full analytics
// pipeline end to end.
//
// COMMAND USAGE:
//   salesreport process [flags]
//
// FLAGS:
//   --input        : Override the input file from the configuration
//   --region       : Keep only transactions from this region (case-insensitive)
//   --min-amount   : Keep only transactions with amount >= this value
//   --max-amount   : Keep only transactions with amount <= this value
//   --skip-fetch   : Skip the catalog fetch; every record is marked unmatched
//   --xlsx         : Also export the enriched dataset as an XLSX workbook
//   --dry-run      : Run the whole pipeline but write no output files
//
// PROCESSING PIPELINE:
//   1. Read the pipe-delimited sales file (encoding fallback)
//   2. Parse raw lines into transaction records
//   3. Validate business rules and apply the optional filters
//   4. Compute the aggregate analytics
//   5. Fetch the product catalog
//   6. Enrich transactions with catalog metadata
//   7. Write the enriched pipe-delimited file (and optional XLSX)
//   8. Render the text report
//
// Collaborator failures (unreadable input, catalog down) degrade to empty
// results; the pipeline always runs to completion and the report renders
// with placeholders instead of crashing.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/catalog"
	"github.com/retailops/sales-analytics/internal/config"
	"github.com/retailops/sales-analytics/internal/enrichment"
	"github.com/retailops/sales-analytics/internal/report"
	"github.com/retailops/sales-analytics/internal/salesfile"
	"github.com/retailops/sales-analytics/internal/types"
	"github.com/retailops/sales-analytics/internal/validation"
	"github.com/retailops/sales-analytics/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// inputFile overrides the configured input file when non-empty.
	inputFile string

	// regionFilter keeps only transactions from this region.
	regionFilter string

	// minAmount / maxAmount bound the transaction amount. They only apply
	// when the corresponding flag was set on the command line.
	minAmount float64
	maxAmount float64

	// skipFetch disables the catalog fetch.
	skipFetch bool

	// exportXLSX also writes the XLSX workbook.
	exportXLSX bool

	// dryRun runs the pipeline without writing output files.
	dryRun bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full sales analytics pipeline",
	Long: `The process command reads the pipe-delimited sales data file, validates and
filters the records, computes the aggregate analytics, enriches the records
with product catalog metadata, and writes the enriched dataset plus the
eight-section text report.

No failure is fatal to the run: an unreadable input file or an unreachable
catalog degrades to empty results and the report renders with placeholders.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runProcess(cmd); err != nil {
			// Soft-failure philosophy: report the problem, exit cleanly.
			fmt.Fprintf(os.Stderr, "\nSomething went wrong but the run did not crash.\nError: %v\n", err)
		}
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&inputFile, "input", "", "Input sales data file (overrides configuration)")
	processCmd.Flags().StringVar(&regionFilter, "region", "", "Keep only transactions from this region (case-insensitive)")
	processCmd.Flags().Float64Var(&minAmount, "min-amount", 0, "Keep only transactions with amount >= this value")
	processCmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "Keep only transactions with amount <= this value")
	processCmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Skip the product catalog fetch")
	processCmd.Flags().BoolVar(&exportXLSX, "xlsx", false, "Also export the enriched dataset as an XLSX workbook")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing output files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the full pipeline.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()

	fmt.Println("========================================")
	fmt.Println("      SALES ANALYTICS SYSTEM")
	fmt.Println("========================================")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger(cfg)
	runID := uuid.New().String()
	logger.Info("starting pipeline run", "run_id", runID, "config", cfgFile)

	input := cfg.InputFile
	if inputFile != "" {
		input = inputFile
	}

	// =========================================================================
	// STEP 1-2: READ AND PARSE
	// =========================================================================

	fmt.Println("\n[1/8] Reading sales data...")
	rawLines := salesfile.ReadLines(input, cfg.Encodings, logger)
	fmt.Printf("  ✓ Read %d data line(s)\n", len(rawLines))

	fmt.Println("\n[2/8] Parsing and cleaning data...")
	transactions := salesfile.ParseTransactions(rawLines)
	fmt.Printf("  ✓ Parsed %d record(s)\n", len(transactions))

	// =========================================================================
	// STEP 3: VALIDATE AND FILTER
	// =========================================================================

	fmt.Println("\n[3/8] Validating transactions...")
	filters := buildFilters(cmd, cfg)
	valid, invalidCount, summary := validation.ValidateAndFilter(transactions, filters)
	fmt.Printf("  ✓ Valid: %d | Invalid removed: %d\n", len(valid), invalidCount)
	fmt.Printf("  Summary: input=%d invalid=%d by_region=%d by_amount=%d output=%d\n",
		summary.TotalInput, summary.InvalidCount, summary.FilteredByRegion,
		summary.FilteredByAmount, summary.TotalOutput)

	// =========================================================================
	// STEP 4: AGGREGATE
	// =========================================================================

	fmt.Println("\n[4/8] Analyzing sales data...")
	opts := analytics.Options{
		TopN:                  cfg.TopProducts,
		LowPerformerThreshold: cfg.LowPerformerThreshold,
	}
	aggregates := analytics.Compute(valid, opts)
	fmt.Printf("  ✓ Total revenue: %.2f across %d region(s)\n",
		aggregates.TotalRevenue, len(aggregates.Regions))

	// =========================================================================
	// STEP 5-6: FETCH CATALOG AND ENRICH
	// =========================================================================

	fmt.Println("\n[5/8] Fetching product catalog...")
	mapping := fetchCatalogMapping(cfg, logger)
	fmt.Printf("  ✓ Catalog entries available: %d\n", len(mapping))

	fmt.Println("\n[6/8] Enriching sales data...")
	enriched := enrichment.Enrich(valid, mapping)
	matched := enrichment.MatchCount(enriched)
	successRate := 0.0
	if len(enriched) > 0 {
		successRate = float64(matched) / float64(len(enriched)) * 100
	}
	fmt.Printf("  ✓ Enriched %d/%d transaction(s) (%.2f%%)\n", matched, len(enriched), successRate)

	// =========================================================================
	// STEP 7-8: WRITE OUTPUTS
	// =========================================================================

	data := report.Data{
		Transactions:          valid,
		Enriched:              enriched,
		Summary:               aggregates,
		TopN:                  cfg.TopProducts,
		LowPerformerThreshold: cfg.LowPerformerThreshold,
		GeneratedAt:           time.Now(),
	}

	fmt.Println("\n[7/8] Saving enriched data...")
	if dryRun {
		fmt.Println("  - Skipped (dry run)")
	} else {
		if err := salesfile.WriteEnriched(cfg.EnrichedFile, enriched); err != nil {
			return fmt.Errorf("failed to save enriched data: %w", err)
		}
		fmt.Printf("  ✓ Saved to: %s\n", cfg.EnrichedFile)

		if exportXLSX || cfg.ExportXLSX {
			xlsxPath := filepath.Join(cfg.OutputDir, "sales_report.xlsx")
			if err := report.WriteXLSX(xlsxPath, data); err != nil {
				return fmt.Errorf("failed to export workbook: %w", err)
			}
			fmt.Printf("  ✓ Workbook saved to: %s\n", xlsxPath)
		}
	}

	fmt.Println("\n[8/8] Generating report...")
	if dryRun {
		fmt.Println("  - Skipped (dry run)")
	} else {
		reportPath := filepath.Join(cfg.OutputDir, utils.GenerateOutputFileName(cfg.ReportName))
		if err := report.Write(reportPath, data); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
		fmt.Printf("  ✓ Report saved to: %s\n", reportPath)

		if cfg.ArchiveInput {
			archived, err := utils.ArchiveInputFile(input, cfg.ArchiveDir)
			if err != nil {
				logger.Warn("failed to archive input file", "file", input, "error", err)
			} else {
				logger.Info("archived input file", "file", archived)
			}
		}
	}

	fmt.Println("\nProcess Complete!")
	fmt.Printf("Time elapsed: %s\n", time.Since(startTime).Round(time.Millisecond))
	fmt.Println("========================================")

	logger.Info("pipeline run finished", "run_id", runID,
		"records", len(valid), "invalid", invalidCount, "duration", time.Since(startTime))
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// buildFilters merges the configured default filters with the command-line
// flags; a flag that was explicitly set wins over the configuration.
func buildFilters(cmd *cobra.Command, cfg *config.Config) validation.Filters {
	filters := validation.Filters{
		Region:    cfg.Filters.Region,
		MinAmount: cfg.Filters.MinAmount,
		MaxAmount: cfg.Filters.MaxAmount,
	}

	if regionFilter != "" {
		filters.Region = regionFilter
	}
	if cmd.Flags().Changed("min-amount") {
		v := minAmount
		filters.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v := maxAmount
		filters.MaxAmount = &v
	}

	return filters
}

// fetchCatalogMapping fetches the product catalog and builds the id-keyed
// mapping. Any failure degrades to an empty mapping so enrichment still
// completes with every record unmatched.
func fetchCatalogMapping(cfg *config.Config, logger *slog.Logger) map[int]types.ProductInfo {
	if skipFetch {
		logger.Info("catalog fetch skipped")
		return map[int]types.ProductInfo{}
	}

	client := catalog.NewClient(cfg.Catalog, logger)
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second)
	defer cancel()

	products, err := client.FetchProducts(ctx)
	if err != nil {
		logger.Warn("catalog fetch failed, continuing unenriched", "error", err)
		return map[int]types.ProductInfo{}
	}
	return catalog.BuildMapping(products)
}
