// =============================================================================
// Sales Analytics - Enriched Data Writer
// =============================================================================
//
// This module writes enriched transactions back to a pipe-delimited file.
//
// FILE FORMAT (12 columns, one header row):
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|
//   Region|API_Category|API_Brand|API_Rating|API_Match
//
// Nil API fields are rendered as empty strings and the match flag as the
// literal "True"/"False", so the file round-trips the in-memory enrichment
// result exactly.
//
// =============================================================================

package salesfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/types"
)

// EnrichedHeader is the header row of the enriched output file.
var EnrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteEnriched writes the enriched transactions to a pipe-delimited file,
// creating the parent directory if needed.
func WriteEnriched(filename string, enriched []types.EnrichedTransaction) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create enriched data file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, strings.Join(EnrichedHeader, "|"))

	for _, t := range enriched {
		fields := []string{
			t.TransactionID,
			t.Date,
			t.ProductID,
			t.ProductName,
			strconv.Itoa(t.Quantity),
			formatFloat(t.UnitPrice),
			t.CustomerID,
			t.Region,
			stringOrEmpty(t.APICategory),
			stringOrEmpty(t.APIBrand),
			floatOrEmpty(t.APIRating),
			matchFlag(t.APIMatch),
		}
		fmt.Fprintln(w, strings.Join(fields, "|"))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write enriched data: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func matchFlag(matched bool) string {
	if matched {
		return "True"
	}
	return "False"
}
