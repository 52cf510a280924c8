package validation

import (
	"testing"

	"github.com/retailops/sales-analytics/internal/types"
)

func tx(id, productID, customerID string, qty int, price float64, region string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          "2024-12-01",
		ProductID:     productID,
		ProductName:   "Widget",
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customerID,
		Region:        region,
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestValidateAndFilter_BusinessRules(t *testing.T) {
	tests := []struct {
		name        string
		transaction types.Transaction
		valid       bool
	}{
		{"valid record", tx("T001", "P101", "C001", 2, 100, "North"), true},
		{"transaction id missing T prefix", tx("X001", "P101", "C001", 2, 100, "North"), false},
		{"product id missing P prefix", tx("T001", "X101", "C001", 2, 100, "North"), false},
		{"customer id missing C prefix", tx("T001", "P101", "X001", 2, 100, "North"), false},
		{"zero quantity", tx("T001", "P101", "C001", 0, 100, "North"), false},
		{"negative quantity", tx("T001", "P101", "C001", -1, 100, "North"), false},
		{"zero unit price", tx("T001", "P101", "C001", 2, 0, "North"), false},
		{"negative unit price", tx("T001", "P101", "C001", 2, -5, "North"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			valid, invalidCount, summary := ValidateAndFilter([]types.Transaction{tc.transaction}, Filters{})

			if tc.valid {
				if len(valid) != 1 || invalidCount != 0 {
					t.Errorf("expected record to pass, got valid=%d invalid=%d", len(valid), invalidCount)
				}
			} else {
				if len(valid) != 0 || invalidCount != 1 {
					t.Errorf("expected record to fail, got valid=%d invalid=%d", len(valid), invalidCount)
				}
			}
			if summary.TotalInput != 1 {
				t.Errorf("TotalInput = %d, want 1", summary.TotalInput)
			}
		})
	}
}

func TestValidateAndFilter_RegionFilterIgnoresCase(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "P101", "C001", 2, 100, "North"),
		tx("T002", "P102", "C002", 1, 100, "South"),
	}

	valid, _, summary := ValidateAndFilter(transactions, Filters{Region: "north"})

	if len(valid) != 1 {
		t.Fatalf("expected 1 record, got %d", len(valid))
	}
	if valid[0].Region != "North" {
		t.Errorf("kept region = %q, want North", valid[0].Region)
	}
	if summary.FilteredByRegion != 1 {
		t.Errorf("FilteredByRegion = %d, want 1", summary.FilteredByRegion)
	}
}

func TestValidateAndFilter_AmountBounds(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "P101", "C001", 1, 50, "North"),   // amount 50
		tx("T002", "P102", "C002", 1, 100, "North"),  // amount 100
		tx("T003", "P103", "C003", 1, 1000, "North"), // amount 1000
	}

	tests := []struct {
		name             string
		filters          Filters
		wantIDs          []string
		filteredByAmount int
	}{
		{
			name:             "min amount is inclusive",
			filters:          Filters{MinAmount: floatPtr(100)},
			wantIDs:          []string{"T002", "T003"},
			filteredByAmount: 1,
		},
		{
			name:             "max amount is inclusive",
			filters:          Filters{MaxAmount: floatPtr(100)},
			wantIDs:          []string{"T001", "T002"},
			filteredByAmount: 1,
		},
		{
			name:             "min and max combined",
			filters:          Filters{MinAmount: floatPtr(60), MaxAmount: floatPtr(500)},
			wantIDs:          []string{"T002"},
			filteredByAmount: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			valid, _, summary := ValidateAndFilter(transactions, tc.filters)

			if len(valid) != len(tc.wantIDs) {
				t.Fatalf("kept %d records, want %d", len(valid), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if valid[i].TransactionID != id {
					t.Errorf("record %d = %q, want %q", i, valid[i].TransactionID, id)
				}
			}
			if summary.FilteredByAmount != tc.filteredByAmount {
				t.Errorf("FilteredByAmount = %d, want %d", summary.FilteredByAmount, tc.filteredByAmount)
			}
		})
	}
}

func TestValidateAndFilter_SummaryCounts(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "P101", "C001", 2, 100, "North"),
		tx("T002", "P102", "C002", 1, 500, "South"),
		tx("X003", "P103", "C003", 1, 100, "North"), // invalid prefix
		tx("T004", "P104", "C004", 1, 10, "North"),  // amount 10, below min
	}

	_, invalidCount, summary := ValidateAndFilter(transactions, Filters{
		Region:    "NORTH",
		MinAmount: floatPtr(50),
	})

	if invalidCount != 1 {
		t.Errorf("invalidCount = %d, want 1", invalidCount)
	}

	want := types.FilterSummary{
		TotalInput:       4,
		InvalidCount:     1,
		FilteredByRegion: 1,
		FilteredByAmount: 1,
		TotalOutput:      1,
	}
	if summary != want {
		t.Errorf("summary = %+v, want %+v", summary, want)
	}
}

func TestValidateAndFilter_EmptyInput(t *testing.T) {
	valid, invalidCount, summary := ValidateAndFilter(nil, Filters{})

	if len(valid) != 0 || invalidCount != 0 {
		t.Errorf("expected empty result, got valid=%d invalid=%d", len(valid), invalidCount)
	}
	if summary != (types.FilterSummary{}) {
		t.Errorf("summary = %+v, want zero value", summary)
	}
}
