// =============================================================================
// Sales Analytics - Enrichment Merger
// =============================================================================
//
// This module joins validated transactions to the id-keyed product catalog
// mapping, producing an enriched copy of every transaction.
//
// LOOKUP RULE:
//   The numeric id is extracted from ProductID by stripping every non-digit
//   character ("P101" -> 101, "P5" -> 5). If no digits remain, or the id is
//   0, or the id is absent from the mapping, the record is marked unmatched
//   and the API fields stay nil.
//
// The merge is a pure function: it never mutates the mapping or the source
// transactions, and an enrichment miss is a recorded outcome, not an error.
//
// =============================================================================

package enrichment

import (
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/types"
)

// ExtractNumericID strips all non-digit characters from a product id and
// parses the remainder as an integer. ok is false when no digits remain.
func ExtractNumericID(productID string) (int, bool) {
	var b strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(b.String())
	if err != nil {
		// Digit runs long enough to overflow int cannot be catalog ids.
		return 0, false
	}
	return id, true
}

// Enrich returns a new enriched record for every transaction. Transactions
// whose numeric product id resolves in the mapping get the catalog fields
// copied and APIMatch set; everything else is marked unmatched.
func Enrich(transactions []types.Transaction, mapping map[int]types.ProductInfo) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, t := range transactions {
		e := types.EnrichedTransaction{Transaction: t}

		if id, ok := ExtractNumericID(t.ProductID); ok && id != 0 {
			if info, found := mapping[id]; found {
				e.APICategory = info.Category
				e.APIBrand = info.Brand
				e.APIRating = info.Rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchCount returns how many enriched records resolved in the catalog.
func MatchCount(enriched []types.EnrichedTransaction) int {
	count := 0
	for _, e := range enriched {
		if e.APIMatch {
			count++
		}
	}
	return count
}
