// =============================================================================
// Sales Analytics - Validation and Filtering
// =============================================================================
//
// This module enforces the business rules every transaction must satisfy and
// applies the optional record filters on top of the valid set.
//
// VALIDATION RULES (hard, any violation discards the record):
//   - TransactionID starts with "T"
//   - ProductID starts with "P"
//   - CustomerID starts with "C"
//   - Quantity > 0
//   - UnitPrice > 0
//
// FILTERS (optional, applied in fixed order to the valid set):
//   1. Region: case-insensitive exact match
//   2. Minimum amount: Quantity*UnitPrice >= min
//   3. Maximum amount: Quantity*UnitPrice <= max
//
// Validation never raises: invalid records are counted and excluded, and
// each filter's removal count is tracked separately in the FilterSummary.
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/retailops/sales-analytics/internal/types"
)

// Filters holds the optional record filters. Nil amount bounds and an empty
// region mean the corresponding filter is skipped.
type Filters struct {
	// Region keeps only transactions whose region matches, ignoring case.
	Region string

	// MinAmount keeps only transactions with an amount >= MinAmount.
	MinAmount *float64

	// MaxAmount keeps only transactions with an amount <= MaxAmount.
	MaxAmount *float64
}

// ValidateAndFilter validates each transaction against the hard business
// rules, then applies the optional filters to the survivors. It returns the
// filtered transactions, the invalid-record count and a summary of what each
// stage removed.
func ValidateAndFilter(transactions []types.Transaction, filters Filters) ([]types.Transaction, int, types.FilterSummary) {
	valid := make([]types.Transaction, 0, len(transactions))
	invalidCount := 0

	for _, t := range transactions {
		if !isValid(t) {
			invalidCount++
			continue
		}
		valid = append(valid, t)
	}

	filtered := valid
	filteredByRegion := 0
	filteredByAmount := 0

	if filters.Region != "" {
		before := len(filtered)
		filtered = keep(filtered, func(t types.Transaction) bool {
			return strings.EqualFold(t.Region, filters.Region)
		})
		filteredByRegion += before - len(filtered)
	}

	if filters.MinAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(t types.Transaction) bool {
			return t.Amount() >= *filters.MinAmount
		})
		filteredByAmount += before - len(filtered)
	}

	if filters.MaxAmount != nil {
		before := len(filtered)
		filtered = keep(filtered, func(t types.Transaction) bool {
			return t.Amount() <= *filters.MaxAmount
		})
		filteredByAmount += before - len(filtered)
	}

	summary := types.FilterSummary{
		TotalInput:       len(transactions),
		InvalidCount:     invalidCount,
		FilteredByRegion: filteredByRegion,
		FilteredByAmount: filteredByAmount,
		TotalOutput:      len(filtered),
	}

	return filtered, invalidCount, summary
}

// isValid reports whether a transaction satisfies every hard business rule.
func isValid(t types.Transaction) bool {
	if !strings.HasPrefix(t.TransactionID, "T") {
		return false
	}
	if !strings.HasPrefix(t.ProductID, "P") {
		return false
	}
	if !strings.HasPrefix(t.CustomerID, "C") {
		return false
	}
	if t.Quantity <= 0 {
		return false
	}
	if t.UnitPrice <= 0 {
		return false
	}
	return true
}

// keep returns the transactions for which pred is true, preserving order.
func keep(transactions []types.Transaction, pred func(types.Transaction) bool) []types.Transaction {
	out := make([]types.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
