// =============================================================================
// Sales Analytics - Report Renderer
// =============================================================================
//
// This module serializes the aggregate analytics into the fixed eight-section
// text report:
//
//   1. HEADER                        timestamp + record count
//   2. OVERALL SUMMARY               revenue, transactions, AOV, date range
//   3. REGION-WISE PERFORMANCE       region table
//   4. TOP 5 PRODUCTS                product table
//   5. TOP 5 CUSTOMERS               customer table
//   6. DAILY SALES TREND             daily table
//   7. PRODUCT PERFORMANCE ANALYSIS  peak day, low performers, region AOV
//   8. API ENRICHMENT SUMMARY        match rate + unmatched product names
//
// The renderer consumes the Aggregation Engine's outputs directly rather
// than running its own aggregation pass, so the report can never disagree
// with the engine.
//
// FORMATTING:
//   Monetary values carry thousands separators and exactly 2 decimal places
//   (golang.org/x/text/message with an English locale). Percentages carry
//   exactly 2 decimal places. An empty transaction set renders every section
//   with explicit "N/A" / zero / "None" placeholders instead of failing.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/enrichment"
	"github.com/retailops/sales-analytics/internal/types"
)

// Data is everything one report run needs.
type Data struct {
	// Transactions is the validated, filtered transaction set.
	Transactions []types.Transaction

	// Enriched is the enriched copy of the same set.
	Enriched []types.EnrichedTransaction

	// Summary holds the engine's aggregates for the same set.
	Summary *analytics.Summary

	// TopN is the row limit for the product and customer tables.
	TopN int

	// LowPerformerThreshold is echoed in the low-performer heading.
	LowPerformerThreshold int

	// GeneratedAt is the report timestamp. Injectable for tests.
	GeneratedAt time.Time
}

// moneyPrinter renders monetary values with thousands separators.
var moneyPrinter = message.NewPrinter(language.English)

// money formats a monetary value as e.g. "1,545,000.50".
func money(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

// Write renders the report to a file, creating the output directory first if
// it does not exist.
func Write(path string, d Data) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := Render(file, d); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// Render writes the full eight-section report to w.
func Render(w io.Writer, d Data) error {
	if d.Summary == nil {
		d.Summary = analytics.Compute(d.Transactions, analytics.Options{
			TopN:                  d.TopN,
			LowPerformerThreshold: d.LowPerformerThreshold,
		})
	}

	sections := []func(io.Writer, Data) error{
		renderHeader,
		renderOverallSummary,
		renderRegionPerformance,
		renderTopProducts,
		renderTopCustomers,
		renderDailyTrend,
		renderProductPerformance,
		renderEnrichmentSummary,
	}
	for _, section := range sections {
		if err := section(w, d); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SECTIONS
// =============================================================================

const (
	doubleRule = "=================================================="
	singleRule = "--------------------------------------------------"
)

func renderHeader(w io.Writer, d Data) error {
	_, err := fmt.Fprintf(w, "%s\n              SALES ANALYTICS REPORT\nGenerated: %s\nRecords Processed: %d\n%s\n\n",
		doubleRule,
		d.GeneratedAt.Format("2006-01-02 15:04:05"),
		len(d.Transactions),
		doubleRule,
	)
	return err
}

func renderOverallSummary(w io.Writer, d Data) error {
	total := len(d.Transactions)

	avgOrderValue := 0.0
	if total > 0 {
		avgOrderValue = d.Summary.TotalRevenue / float64(total)
	}

	dateRange := "N/A"
	if len(d.Summary.DailyTrend) > 0 {
		trend := d.Summary.DailyTrend
		dateRange = fmt.Sprintf("%s to %s", trend[0].Date, trend[len(trend)-1].Date)
	}

	_, err := fmt.Fprintf(w, "OVERALL SUMMARY\n%s\nTotal Revenue:        %s\nTotal Transactions:   %d\nAverage Order Value:  %s\nDate Range:           %s\n\n",
		singleRule,
		money(d.Summary.TotalRevenue),
		total,
		money(avgOrderValue),
		dateRange,
	)
	return err
}

func renderRegionPerformance(w io.Writer, d Data) error {
	fmt.Fprintf(w, "REGION-WISE PERFORMANCE\n%s\n", singleRule)
	fmt.Fprintf(w, "%-10s%-15s%-12s%-12s\n", "Region", "Sales", "% of Total", "Transactions")

	if len(d.Summary.Regions) == 0 {
		fmt.Fprintln(w, "None")
	}
	for _, r := range d.Summary.Regions {
		fmt.Fprintf(w, "%-10s%-15s%-12s%-12d\n",
			r.Region, money(r.TotalSales), fmt.Sprintf("%.2f", r.Percentage), r.TransactionCount)
	}

	_, err := fmt.Fprintln(w)
	return err
}

func renderTopProducts(w io.Writer, d Data) error {
	fmt.Fprintf(w, "TOP %d PRODUCTS\n%s\n", d.TopN, singleRule)
	fmt.Fprintf(w, "%-6s%-20s%-10s%-15s\n", "Rank", "Product", "Qty Sold", "Revenue")

	if len(d.Summary.TopProducts) == 0 {
		fmt.Fprintln(w, "None")
	}
	for i, p := range d.Summary.TopProducts {
		fmt.Fprintf(w, "%-6d%-20s%-10d%-15s\n", i+1, p.ProductName, p.TotalQuantity, money(p.TotalRevenue))
	}

	_, err := fmt.Fprintln(w)
	return err
}

func renderTopCustomers(w io.Writer, d Data) error {
	fmt.Fprintf(w, "TOP %d CUSTOMERS\n%s\n", d.TopN, singleRule)
	fmt.Fprintf(w, "%-6s%-12s%-15s%-10s\n", "Rank", "Customer", "Total Spent", "Orders")

	customers := d.Summary.Customers
	if len(customers) > d.TopN {
		customers = customers[:d.TopN]
	}

	if len(customers) == 0 {
		fmt.Fprintln(w, "None")
	}
	for i, c := range customers {
		fmt.Fprintf(w, "%-6d%-12s%-15s%-10d\n", i+1, c.CustomerID, money(c.TotalSpent), c.PurchaseCount)
	}

	_, err := fmt.Fprintln(w)
	return err
}

func renderDailyTrend(w io.Writer, d Data) error {
	fmt.Fprintf(w, "DAILY SALES TREND\n%s\n", singleRule)
	fmt.Fprintf(w, "%-12s%-15s%-8s%-10s\n", "Date", "Revenue", "Txns", "UniqueCust")

	if len(d.Summary.DailyTrend) == 0 {
		fmt.Fprintln(w, "None")
	}
	for _, day := range d.Summary.DailyTrend {
		fmt.Fprintf(w, "%-12s%-15s%-8d%-10d\n", day.Date, money(day.Revenue), day.TransactionCount, day.UniqueCustomers)
	}

	_, err := fmt.Fprintln(w)
	return err
}

func renderProductPerformance(w io.Writer, d Data) error {
	fmt.Fprintf(w, "PRODUCT PERFORMANCE ANALYSIS\n%s\n", singleRule)

	peakDate := d.Summary.PeakDay.Date
	if peakDate == "" {
		peakDate = "N/A"
	}
	fmt.Fprintf(w, "Best selling day: %s | Revenue: %s | Transactions: %d\n\n",
		peakDate, money(d.Summary.PeakDay.Revenue), d.Summary.PeakDay.TransactionCount)

	fmt.Fprintf(w, "Low performing products (qty < %d):\n", d.LowPerformerThreshold)
	if len(d.Summary.LowPerformers) == 0 {
		fmt.Fprintln(w, " - None")
	}
	for _, p := range d.Summary.LowPerformers {
		fmt.Fprintf(w, " - %s | Qty: %d | Revenue: %s\n", p.ProductName, p.TotalQuantity, money(p.TotalRevenue))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Average transaction value per region:")
	if len(d.Summary.Regions) == 0 {
		fmt.Fprintln(w, " - None")
	}
	for _, r := range d.Summary.Regions {
		avg := 0.0
		if r.TransactionCount > 0 {
			avg = r.TotalSales / float64(r.TransactionCount)
		}
		fmt.Fprintf(w, " - %s: %s\n", r.Region, money(avg))
	}

	_, err := fmt.Fprintln(w)
	return err
}

func renderEnrichmentSummary(w io.Writer, d Data) error {
	matched := enrichment.MatchCount(d.Enriched)
	total := len(d.Enriched)

	successRate := 0.0
	if total > 0 {
		successRate = float64(matched) / float64(total) * 100
	}

	fmt.Fprintf(w, "API ENRICHMENT SUMMARY\n%s\n", singleRule)
	fmt.Fprintf(w, "Total products enriched: %d/%d\n", matched, total)
	fmt.Fprintf(w, "Success rate: %.2f%%\n\n", successRate)

	fmt.Fprintln(w, "Products that couldn't be enriched:")
	failed := unmatchedProductNames(d.Enriched)
	if len(failed) == 0 {
		_, err := fmt.Fprintln(w, " - None")
		return err
	}
	for _, name := range failed {
		if _, err := fmt.Fprintf(w, " - %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

// unmatchedProductNames returns the sorted, de-duplicated product names of
// records the catalog lookup missed.
func unmatchedProductNames(enriched []types.EnrichedTransaction) []string {
	seen := make(map[string]struct{})
	for _, e := range enriched {
		if e.APIMatch || e.ProductName == "" {
			continue
		}
		seen[e.ProductName] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
