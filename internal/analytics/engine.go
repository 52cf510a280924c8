// =============================================================================
// Sales Analytics - Aggregation Engine
// =============================================================================
//
// This module computes the fixed set of aggregate analytics over a validated
// transaction set:
//   - Total revenue
//   - Region-wise sales (with share of grand total)
//   - Top-N products by quantity sold
//   - Customer purchase analysis
//   - Daily sales trend
//   - Peak sales day
//   - Low performing products
//
// Every aggregate is a single left-to-right fold over the input slice using
// an accumulator map local to the function; no state is shared across calls.
// The peak day is the only aggregate derived from another (the daily trend).
//
// DETERMINISM:
//   Grouping keys are tracked in first-seen order and all sorts are stable,
//   so ties keep their insertion order and two runs over identical input
//   produce bit-identical results.
//
// ROUNDING:
//   Monetary values are accumulated unrounded and rounded to 2 decimal
//   places exactly once, when an aggregate value is finalized. This keeps
//   rounding error from compounding across incremental sums.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/retailops/sales-analytics/internal/types"
)

// Default analysis parameters.
const (
	DefaultTopN                  = 5
	DefaultLowPerformerThreshold = 10
)

// Round2 rounds a monetary value to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// =============================================================================
// REVENUE
// =============================================================================

// TotalRevenue sums the amount of every transaction, rounding once at the
// end.
func TotalRevenue(transactions []types.Transaction) float64 {
	total := 0.0
	for _, t := range transactions {
		total += t.Amount()
	}
	return Round2(total)
}

// =============================================================================
// REGION ANALYSIS
// =============================================================================

// RegionSales groups transactions by region and computes each region's total
// sales, transaction count and share of the grand total. Regions are ordered
// by total sales descending; regions with equal totals keep first-seen order.
func RegionSales(transactions []types.Transaction) []types.RegionStat {
	totalRevenue := TotalRevenue(transactions)

	type regionAcc struct {
		totalSales float64
		count      int
	}
	acc := make(map[string]*regionAcc)
	var order []string

	for _, t := range transactions {
		a, ok := acc[t.Region]
		if !ok {
			a = &regionAcc{}
			acc[t.Region] = a
			order = append(order, t.Region)
		}
		a.totalSales += t.Amount()
		a.count++
	}

	stats := make([]types.RegionStat, 0, len(order))
	for _, region := range order {
		a := acc[region]
		totalSales := Round2(a.totalSales)

		percentage := 0.0
		if totalRevenue > 0 {
			percentage = Round2(totalSales / totalRevenue * 100)
		}

		stats = append(stats, types.RegionStat{
			Region:           region,
			TotalSales:       totalSales,
			Percentage:       percentage,
			TransactionCount: a.count,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// =============================================================================
// PRODUCT ANALYSIS
// =============================================================================

// productTotals folds transactions into per-product quantity and revenue
// totals, preserving first-seen product order. Shared by TopProducts and
// LowPerformers so both see identical per-product numbers.
func productTotals(transactions []types.Transaction) []types.ProductStat {
	type productAcc struct {
		quantity int
		revenue  float64
	}
	acc := make(map[string]*productAcc)
	var order []string

	for _, t := range transactions {
		a, ok := acc[t.ProductName]
		if !ok {
			a = &productAcc{}
			acc[t.ProductName] = a
			order = append(order, t.ProductName)
		}
		a.quantity += t.Quantity
		a.revenue += t.Amount()
	}

	stats := make([]types.ProductStat, 0, len(order))
	for _, name := range order {
		a := acc[name]
		stats = append(stats, types.ProductStat{
			ProductName:   name,
			TotalQuantity: a.quantity,
			TotalRevenue:  Round2(a.revenue),
		})
	}
	return stats
}

// TopProducts returns the n products with the highest total quantity sold,
// in descending quantity order. Ties keep first-seen order.
func TopProducts(transactions []types.Transaction, n int) []types.ProductStat {
	stats := productTotals(transactions)

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns the products whose total quantity sold is strictly
// below threshold, in ascending quantity order. Ties keep first-seen order.
func LowPerformers(transactions []types.Transaction, threshold int) []types.ProductStat {
	var low []types.ProductStat
	for _, p := range productTotals(transactions) {
		if p.TotalQuantity < threshold {
			low = append(low, p)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

// =============================================================================
// CUSTOMER ANALYSIS
// =============================================================================

// CustomerAnalysis groups transactions by customer and computes each
// customer's total spend, order count, average order value and the sorted,
// de-duplicated list of product names bought. Customers are ordered by total
// spend descending; equal spenders keep first-seen order.
func CustomerAnalysis(transactions []types.Transaction) []types.CustomerStat {
	type customerAcc struct {
		totalSpent float64
		count      int
		products   map[string]struct{}
	}
	acc := make(map[string]*customerAcc)
	var order []string

	for _, t := range transactions {
		a, ok := acc[t.CustomerID]
		if !ok {
			a = &customerAcc{products: make(map[string]struct{})}
			acc[t.CustomerID] = a
			order = append(order, t.CustomerID)
		}
		a.totalSpent += t.Amount()
		a.count++
		a.products[t.ProductName] = struct{}{}
	}

	stats := make([]types.CustomerStat, 0, len(order))
	for _, id := range order {
		a := acc[id]

		// The average is taken from the unrounded total so it reflects the
		// true spend before the total itself is finalized.
		avg := 0.0
		if a.count > 0 {
			avg = Round2(a.totalSpent / float64(a.count))
		}

		products := make([]string, 0, len(a.products))
		for p := range a.products {
			products = append(products, p)
		}
		sort.Strings(products)

		stats = append(stats, types.CustomerStat{
			CustomerID:     id,
			TotalSpent:     Round2(a.totalSpent),
			PurchaseCount:  a.count,
			AvgOrderValue:  avg,
			ProductsBought: products,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// =============================================================================
// DATE ANALYSIS
// =============================================================================

// DailyTrend groups transactions by date and computes each day's revenue,
// transaction count and unique customer count, sorted chronologically.
// Dates are compared lexically, so zero-padded ISO dates sort correctly.
func DailyTrend(transactions []types.Transaction) []types.DailyStat {
	type dailyAcc struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}
	acc := make(map[string]*dailyAcc)
	var order []string

	for _, t := range transactions {
		a, ok := acc[t.Date]
		if !ok {
			a = &dailyAcc{customers: make(map[string]struct{})}
			acc[t.Date] = a
			order = append(order, t.Date)
		}
		a.revenue += t.Amount()
		a.count++
		a.customers[t.CustomerID] = struct{}{}
	}

	stats := make([]types.DailyStat, 0, len(order))
	for _, date := range order {
		a := acc[date]
		stats = append(stats, types.DailyStat{
			Date:             date,
			Revenue:          Round2(a.revenue),
			TransactionCount: a.count,
			UniqueCustomers:  len(a.customers),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// FindPeakDay scans the daily trend in chronological order and returns the
// day with the strictly highest revenue; the first such day wins a tie.
// With no transactions it returns the sentinel zero value (empty date).
func FindPeakDay(transactions []types.Transaction) types.PeakDay {
	return peakFromTrend(DailyTrend(transactions))
}

// peakFromTrend performs the strict-greater scan over an already computed
// trend. Comparison is strictly >, not >=, so earlier days win ties.
func peakFromTrend(trend []types.DailyStat) types.PeakDay {
	var peak types.PeakDay
	for _, day := range trend {
		if day.Revenue > peak.Revenue {
			peak = types.PeakDay{
				Date:             day.Date,
				Revenue:          day.Revenue,
				TransactionCount: day.TransactionCount,
			}
		}
	}
	return peak
}

// =============================================================================
// COMBINED SUMMARY
// =============================================================================

// Options tunes the parameterized aggregates.
type Options struct {
	// TopN is the size of the top-products and top-customers lists.
	TopN int

	// LowPerformerThreshold is the exclusive quantity bound below which a
	// product counts as a low performer.
	LowPerformerThreshold int
}

// DefaultOptions returns the standard analysis parameters.
func DefaultOptions() Options {
	return Options{
		TopN:                  DefaultTopN,
		LowPerformerThreshold: DefaultLowPerformerThreshold,
	}
}

// Summary bundles every aggregate for one run over one transaction set.
// It is recomputed per run and never cached.
type Summary struct {
	TotalRevenue  float64
	Regions       []types.RegionStat
	TopProducts   []types.ProductStat
	Customers     []types.CustomerStat
	DailyTrend    []types.DailyStat
	PeakDay       types.PeakDay
	LowPerformers []types.ProductStat
}

// Compute runs every aggregate over the transaction set. The peak day is
// derived from the trend computed here, so both always agree.
func Compute(transactions []types.Transaction, opts Options) *Summary {
	trend := DailyTrend(transactions)

	return &Summary{
		TotalRevenue:  TotalRevenue(transactions),
		Regions:       RegionSales(transactions),
		TopProducts:   TopProducts(transactions, opts.TopN),
		Customers:     CustomerAnalysis(transactions),
		DailyTrend:    trend,
		PeakDay:       peakFromTrend(trend),
		LowPerformers: LowPerformers(transactions, opts.LowPerformerThreshold),
	}
}
