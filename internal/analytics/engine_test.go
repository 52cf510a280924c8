package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/retailops/sales-analytics/internal/types"
)

func tx(id, date, productID, productName string, qty int, price float64, customer, region string) types.Transaction {
	return types.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      qty,
		UnitPrice:     price,
		CustomerID:    customer,
		Region:        region,
	}
}

func sampleTransactions() []types.Transaction {
	return []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Mouse", 5, 500, "C002", "South"),
		tx("T003", "2024-12-02", "P101", "Laptop", 1, 45000, "C001", "North"),
		tx("T004", "2024-12-02", "P103", "Keyboard", 3, 1500, "C003", "East"),
		tx("T005", "2024-12-03", "P102", "Mouse", 8, 500, "C002", "South"),
	}
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestTotalRevenue(t *testing.T) {
	tests := []struct {
		name         string
		transactions []types.Transaction
		want         float64
	}{
		{
			name:         "empty set",
			transactions: nil,
			want:         0,
		},
		{
			name: "single transaction",
			transactions: []types.Transaction{
				tx("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
			},
			want: 90000.00,
		},
		{
			name:         "multiple transactions",
			transactions: sampleTransactions(),
			want:         90000 + 2500 + 45000 + 4500 + 4000,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalRevenue(tc.transactions)
			if got != tc.want {
				t.Errorf("TotalRevenue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRegionSales_SingleRegionIsFullShare(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 2, 45000, "C001", "North"),
	}

	stats := RegionSales(transactions)
	if len(stats) != 1 {
		t.Fatalf("expected 1 region, got %d", len(stats))
	}
	if stats[0].Region != "North" {
		t.Errorf("Region = %q, want %q", stats[0].Region, "North")
	}
	if stats[0].TotalSales != 90000.00 {
		t.Errorf("TotalSales = %v, want 90000.00", stats[0].TotalSales)
	}
	if stats[0].Percentage != 100.00 {
		t.Errorf("Percentage = %v, want 100.00", stats[0].Percentage)
	}
	if stats[0].TransactionCount != 1 {
		t.Errorf("TransactionCount = %v, want 1", stats[0].TransactionCount)
	}
}

func TestRegionSales_TotalsMatchRevenue(t *testing.T) {
	transactions := sampleTransactions()
	stats := RegionSales(transactions)
	totalRevenue := TotalRevenue(transactions)

	sum := 0.0
	pctSum := 0.0
	for _, s := range stats {
		sum += s.TotalSales
		pctSum += s.Percentage
	}

	tolerance := 0.01 * float64(len(stats))
	if !almostEqual(sum, totalRevenue, tolerance) {
		t.Errorf("sum of region totals = %v, total revenue = %v", sum, totalRevenue)
	}
	if !almostEqual(pctSum, 100.0, tolerance) {
		t.Errorf("sum of percentages = %v, want ~100", pctSum)
	}
}

func TestRegionSales_ZeroRevenueMeansZeroPercentages(t *testing.T) {
	stats := RegionSales(nil)
	if len(stats) != 0 {
		t.Fatalf("expected no regions for empty input, got %d", len(stats))
	}
}

func TestRegionSales_OrderedByTotalDescending(t *testing.T) {
	stats := RegionSales(sampleTransactions())

	for i := 1; i < len(stats); i++ {
		if stats[i].TotalSales > stats[i-1].TotalSales {
			t.Errorf("regions not in descending order: %v before %v",
				stats[i-1].TotalSales, stats[i].TotalSales)
		}
	}
	if stats[0].Region != "North" {
		t.Errorf("top region = %q, want North", stats[0].Region)
	}
}

func TestRegionSales_TiesKeepFirstSeenOrder(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "West"),
		tx("T002", "2024-12-01", "P102", "Mouse", 1, 100, "C002", "East"),
	}

	stats := RegionSales(transactions)
	if len(stats) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(stats))
	}
	if stats[0].Region != "West" || stats[1].Region != "East" {
		t.Errorf("tied regions reordered: got [%s, %s], want [West, East]",
			stats[0].Region, stats[1].Region)
	}
}

func TestTopProducts(t *testing.T) {
	transactions := sampleTransactions()

	top := TopProducts(transactions, 5)
	if len(top) != 3 {
		t.Fatalf("expected 3 products, got %d", len(top))
	}

	// Mouse sold 13 units, Laptop 3, Keyboard 3; Laptop was seen first.
	want := []types.ProductStat{
		{ProductName: "Mouse", TotalQuantity: 13, TotalRevenue: 6500.00},
		{ProductName: "Laptop", TotalQuantity: 3, TotalRevenue: 135000.00},
		{ProductName: "Keyboard", TotalQuantity: 3, TotalRevenue: 4500.00},
	}
	if !reflect.DeepEqual(top, want) {
		t.Errorf("TopProducts() = %+v, want %+v", top, want)
	}
}

func TestTopProducts_LimitsToN(t *testing.T) {
	top := TopProducts(sampleTransactions(), 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 products, got %d", len(top))
	}
	if top[0].ProductName != "Mouse" {
		t.Errorf("top product = %q, want Mouse", top[0].ProductName)
	}
}

func TestLowPerformers_ThresholdIsExclusive(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Webcam", 10, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Headset", 9, 150, "C002", "North"),
	}

	low := LowPerformers(transactions, 10)
	if len(low) != 1 {
		t.Fatalf("expected 1 low performer, got %d", len(low))
	}
	if low[0].ProductName != "Headset" {
		t.Errorf("low performer = %q, want Headset (qty 9); qty 10 must be excluded", low[0].ProductName)
	}
	if low[0].TotalQuantity != 9 || low[0].TotalRevenue != 1350.00 {
		t.Errorf("low performer stats = %+v", low[0])
	}
}

func TestLowPerformers_SortedByQuantityAscending(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Webcam", 7, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Headset", 4, 150, "C002", "North"),
		tx("T003", "2024-12-01", "P103", "Speaker", 5, 200, "C003", "North"),
	}

	low := LowPerformers(transactions, 10)
	if len(low) != 3 {
		t.Fatalf("expected 3 low performers, got %d", len(low))
	}
	for i := 1; i < len(low); i++ {
		if low[i].TotalQuantity < low[i-1].TotalQuantity {
			t.Errorf("low performers not ascending: %+v", low)
		}
	}
}

func TestCustomerAnalysis(t *testing.T) {
	customers := CustomerAnalysis(sampleTransactions())
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}

	// C001 spent 135000 over 2 orders on a single product.
	c := customers[0]
	if c.CustomerID != "C001" {
		t.Fatalf("top customer = %q, want C001", c.CustomerID)
	}
	if c.TotalSpent != 135000.00 {
		t.Errorf("TotalSpent = %v, want 135000.00", c.TotalSpent)
	}
	if c.PurchaseCount != 2 {
		t.Errorf("PurchaseCount = %v, want 2", c.PurchaseCount)
	}
	if c.AvgOrderValue != 67500.00 {
		t.Errorf("AvgOrderValue = %v, want 67500.00", c.AvgOrderValue)
	}
	if !reflect.DeepEqual(c.ProductsBought, []string{"Laptop"}) {
		t.Errorf("ProductsBought = %v, want [Laptop]", c.ProductsBought)
	}
}

func TestCustomerAnalysis_DistinctProductsSorted(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P103", "Webcam", 1, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "North"),
		tx("T003", "2024-12-02", "P103", "Webcam", 1, 100, "C001", "North"),
	}

	customers := CustomerAnalysis(transactions)
	if len(customers) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(customers))
	}
	want := []string{"Laptop", "Webcam"}
	if !reflect.DeepEqual(customers[0].ProductsBought, want) {
		t.Errorf("ProductsBought = %v, want %v", customers[0].ProductsBought, want)
	}
}

func TestDailyTrend(t *testing.T) {
	trend := DailyTrend(sampleTransactions())

	if len(trend) != 3 {
		t.Fatalf("expected 3 days, got %d", len(trend))
	}

	// Chronological ordering.
	dates := []string{trend[0].Date, trend[1].Date, trend[2].Date}
	want := []string{"2024-12-01", "2024-12-02", "2024-12-03"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("dates = %v, want %v", dates, want)
	}

	// 2024-12-01 has two transactions from two different customers.
	day := trend[0]
	if day.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", day.TransactionCount)
	}
	if day.UniqueCustomers != 2 {
		t.Errorf("UniqueCustomers = %d, want 2", day.UniqueCustomers)
	}
	if day.Revenue != 92500.00 {
		t.Errorf("Revenue = %v, want 92500.00", day.Revenue)
	}
}

func TestDailyTrend_SameCustomerCountedOnce(t *testing.T) {
	transactions := []types.Transaction{
		tx("T001", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "North"),
		tx("T002", "2024-12-01", "P102", "Mouse", 1, 100, "C001", "North"),
	}

	trend := DailyTrend(transactions)
	if len(trend) != 1 {
		t.Fatalf("expected 1 day, got %d", len(trend))
	}
	if trend[0].UniqueCustomers != 1 {
		t.Errorf("UniqueCustomers = %d, want 1", trend[0].UniqueCustomers)
	}
}

func TestFindPeakDay(t *testing.T) {
	peak := FindPeakDay(sampleTransactions())

	if peak.Date != "2024-12-01" {
		t.Errorf("peak date = %q, want 2024-12-01", peak.Date)
	}
	if peak.Revenue != 92500.00 {
		t.Errorf("peak revenue = %v, want 92500.00", peak.Revenue)
	}
	if peak.TransactionCount != 2 {
		t.Errorf("peak transactions = %d, want 2", peak.TransactionCount)
	}
}

func TestFindPeakDay_TieGoesToEarlierDay(t *testing.T) {
	transactions := []types.Transaction{
		tx("T002", "2024-12-02", "P101", "Laptop", 1, 100, "C001", "North"),
		tx("T001", "2024-12-01", "P101", "Laptop", 1, 100, "C001", "North"),
	}

	peak := FindPeakDay(transactions)
	if peak.Date != "2024-12-01" {
		t.Errorf("peak date = %q, want the chronologically earlier 2024-12-01", peak.Date)
	}
}

func TestFindPeakDay_EmptyReturnsSentinel(t *testing.T) {
	peak := FindPeakDay(nil)
	if peak.Date != "" || peak.Revenue != 0 || peak.TransactionCount != 0 {
		t.Errorf("sentinel = %+v, want zero value", peak)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	transactions := sampleTransactions()
	opts := DefaultOptions()

	first := Compute(transactions, opts)
	second := Compute(transactions, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical input disagree:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestCompute_EmptyInput(t *testing.T) {
	summary := Compute(nil, DefaultOptions())

	if summary.TotalRevenue != 0 {
		t.Errorf("TotalRevenue = %v, want 0", summary.TotalRevenue)
	}
	if len(summary.Regions) != 0 || len(summary.TopProducts) != 0 ||
		len(summary.Customers) != 0 || len(summary.DailyTrend) != 0 ||
		len(summary.LowPerformers) != 0 {
		t.Errorf("expected empty aggregates, got %+v", summary)
	}
	if summary.PeakDay.Date != "" {
		t.Errorf("expected peak day sentinel, got %+v", summary.PeakDay)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.005, 1.0},
		{1.015, 1.01},
		{90000.004, 90000.0},
		{1234.567, 1234.57},
		{-1.555, -1.55},
	}
	for _, tc := range tests {
		if got := Round2(tc.in); !almostEqual(got, tc.want, 1e-9) {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
