package enrichment

import (
	"reflect"
	"testing"

	"github.com/retailops/sales-analytics/internal/types"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func TestExtractNumericID(t *testing.T) {
	tests := []struct {
		in     string
		wantID int
		wantOK bool
	}{
		{"P101", 101, true},
		{"P5", 5, true},
		{"PX-20-B3", 203, true},
		{"P", 0, false},
		{"", 0, false},
		{"PRODUCT", 0, false},
		{"P000", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			id, ok := ExtractNumericID(tc.in)
			if id != tc.wantID || ok != tc.wantOK {
				t.Errorf("ExtractNumericID(%q) = (%d, %v), want (%d, %v)",
					tc.in, id, ok, tc.wantID, tc.wantOK)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	mapping := map[int]types.ProductInfo{
		5: {
			Category: strPtr("laptops"),
			Brand:    strPtr("Apple"),
			Rating:   f64Ptr(4.69),
		},
		101: {
			Category: strPtr("smartphones"),
			Brand:    nil, // catalog entry with no brand
			Rating:   f64Ptr(4.2),
		},
	}

	transactions := []types.Transaction{
		{TransactionID: "T001", ProductID: "P5", ProductName: "Laptop"},
		{TransactionID: "T002", ProductID: "P101", ProductName: "Phone"},
		{TransactionID: "T003", ProductID: "P999", ProductName: "Mystery"},
		{TransactionID: "T004", ProductID: "PX", ProductName: "NoDigits"},
	}

	enriched := Enrich(transactions, mapping)
	if len(enriched) != len(transactions) {
		t.Fatalf("enriched %d records, want %d", len(enriched), len(transactions))
	}

	// P5 resolves via its bare numeric suffix.
	if !enriched[0].APIMatch {
		t.Error("P5 should match mapping key 5")
	}
	if enriched[0].APICategory == nil || *enriched[0].APICategory != "laptops" {
		t.Errorf("APICategory = %v, want laptops", enriched[0].APICategory)
	}
	if enriched[0].APIRating == nil || *enriched[0].APIRating != 4.69 {
		t.Errorf("APIRating = %v, want 4.69", enriched[0].APIRating)
	}

	// A matched record can still carry nil fields the catalog left empty.
	if !enriched[1].APIMatch {
		t.Error("P101 should match mapping key 101")
	}
	if enriched[1].APIBrand != nil {
		t.Errorf("APIBrand = %v, want nil", enriched[1].APIBrand)
	}

	// Absent id and digit-free id are both misses, never errors.
	for _, i := range []int{2, 3} {
		e := enriched[i]
		if e.APIMatch {
			t.Errorf("%s should not match", e.TransactionID)
		}
		if e.APICategory != nil || e.APIBrand != nil || e.APIRating != nil {
			t.Errorf("%s should carry nil API fields, got %+v", e.TransactionID, e)
		}
	}
}

func TestEnrich_DoesNotMutateInputs(t *testing.T) {
	mapping := map[int]types.ProductInfo{5: {Category: strPtr("laptops")}}
	transactions := []types.Transaction{
		{TransactionID: "T001", ProductID: "P5", ProductName: "Laptop"},
	}
	original := transactions[0]

	_ = Enrich(transactions, mapping)

	if !reflect.DeepEqual(transactions[0], original) {
		t.Errorf("source transaction mutated: %+v", transactions[0])
	}
	if len(mapping) != 1 {
		t.Errorf("mapping mutated: %+v", mapping)
	}
}

func TestEnrich_EmptyMappingMarksAllUnmatched(t *testing.T) {
	transactions := []types.Transaction{
		{TransactionID: "T001", ProductID: "P5"},
		{TransactionID: "T002", ProductID: "P101"},
	}

	enriched := Enrich(transactions, map[int]types.ProductInfo{})

	for _, e := range enriched {
		if e.APIMatch {
			t.Errorf("%s matched against an empty mapping", e.TransactionID)
		}
	}
	if MatchCount(enriched) != 0 {
		t.Errorf("MatchCount = %d, want 0", MatchCount(enriched))
	}
}

func TestMatchCount(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{APIMatch: true},
		{APIMatch: false},
		{APIMatch: true},
	}
	if got := MatchCount(enriched); got != 2 {
		t.Errorf("MatchCount = %d, want 2", got)
	}
}
