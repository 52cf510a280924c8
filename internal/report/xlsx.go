// =============================================================================
// Sales Analytics - XLSX Export
// =============================================================================
//
// This module writes the enriched dataset and the headline aggregates to an
// XLSX workbook for people who want to slice the numbers in a spreadsheet
// instead of reading the text report.
//
// WORKBOOK LAYOUT:
//   Sheet "Enriched Data" : one row per enriched transaction, 12 columns
//                           matching the pipe-delimited enriched file
//   Sheet "Summary"       : overall totals plus the region performance table
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/salesfile"
)

// WriteXLSX writes the enriched dataset and summary aggregates as an XLSX
// workbook, creating the output directory if needed.
func WriteXLSX(path string, d Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if d.Summary == nil {
		d.Summary = analytics.Compute(d.Transactions, analytics.Options{
			TopN:                  d.TopN,
			LowPerformerThreshold: d.LowPerformerThreshold,
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	const dataSheet = "Enriched Data"
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}

	if err := writeEnrichedSheet(f, dataSheet, d); err != nil {
		return err
	}
	if err := writeSummarySheet(f, d); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeEnrichedSheet fills the data sheet with one row per transaction.
func writeEnrichedSheet(f *excelize.File, sheet string, d Data) error {
	header := make([]any, len(salesfile.EnrichedHeader))
	for i, h := range salesfile.EnrichedHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, t := range d.Enriched {
		row := []any{
			t.TransactionID,
			t.Date,
			t.ProductID,
			t.ProductName,
			t.Quantity,
			t.UnitPrice,
			t.CustomerID,
			t.Region,
			derefOrNil(t.APICategory),
			derefOrNil(t.APIBrand),
			derefFloatOrNil(t.APIRating),
			t.APIMatch,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write data row %d: %w", i+2, err)
		}
	}
	return nil
}

// writeSummarySheet fills the summary sheet with the headline aggregates.
func writeSummarySheet(f *excelize.File, d Data) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	avgOrderValue := 0.0
	if len(d.Transactions) > 0 {
		avgOrderValue = d.Summary.TotalRevenue / float64(len(d.Transactions))
	}

	rows := [][]any{
		{"Total Revenue", d.Summary.TotalRevenue},
		{"Total Transactions", len(d.Transactions)},
		{"Average Order Value", avgOrderValue},
		{},
		{"Region", "Sales", "% of Total", "Transactions"},
	}
	for _, r := range d.Summary.Regions {
		rows = append(rows, []any{r.Region, r.TotalSales, r.Percentage, r.TransactionCount})
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
