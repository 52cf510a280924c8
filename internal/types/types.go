// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - salesfile
//   - validation
//   - analytics
//   - enrichment
//   - report
//
// =============================================================================

package types

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single parsed sales record: one product sold to
// one customer on one day.
type Transaction struct {
	// TransactionID is the record identifier. Valid IDs start with "T".
	TransactionID string

	// Date is the transaction date as an ISO-like string (e.g. "2024-12-01").
	// Dates are compared lexically, so zero-padded ISO form is required for
	// correct chronological ordering.
	Date string

	// ProductID is the product identifier. Valid IDs start with "P" and
	// embed a numeric suffix used for catalog lookups (e.g. "P101" -> 101).
	ProductID string

	// ProductName is the display name of the product, with commas stripped
	// during parsing so the pipe-delimited output stays unambiguous.
	ProductName string

	// Quantity is the number of units sold. Valid quantities are > 0.
	Quantity int

	// UnitPrice is the price of a single unit. Valid prices are > 0.
	UnitPrice float64

	// CustomerID is the customer identifier. Valid IDs start with "C".
	CustomerID string

	// Region is the sales region the transaction belongs to.
	Region string
}

// Amount returns the monetary value of the transaction. It is derived on
// demand rather than stored, so it can never go stale.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction augmented with product catalog
// metadata. The API fields are nil when the catalog lookup failed.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the catalog category, or nil if unmatched.
	APICategory *string

	// APIBrand is the catalog brand, or nil if unmatched.
	APIBrand *string

	// APIRating is the catalog rating, or nil if unmatched.
	APIRating *float64

	// APIMatch reports whether the catalog lookup succeeded.
	APIMatch bool
}

// =============================================================================
// VALIDATION TYPES
// =============================================================================

// FilterSummary records how many transactions each stage of validation and
// filtering removed from the input set.
type FilterSummary struct {
	// TotalInput is the number of records handed to the validator.
	TotalInput int

	// InvalidCount is the number of records that failed a business rule
	// (ID prefixes, positive quantity, positive unit price).
	InvalidCount int

	// FilteredByRegion is the number of valid records removed by the
	// region filter.
	FilteredByRegion int

	// FilteredByAmount is the number of valid records removed by the
	// min/max amount filters combined.
	FilteredByAmount int

	// TotalOutput is the number of records that survived everything.
	TotalOutput int
}

// =============================================================================
// AGGREGATE TYPES
// =============================================================================
//
// All aggregate records are derived values: immutable once produced and
// recomputed per run, never cached. Monetary fields are rounded to 2 decimal
// places at finalization, not during accumulation.

// RegionStat summarizes sales for a single region.
type RegionStat struct {
	Region string

	// TotalSales is the summed amount for the region, rounded to 2 decimals.
	TotalSales float64

	// Percentage is the region's share of the grand total (0-100), rounded
	// to 2 decimals. It is 0 when the grand total is 0.
	Percentage float64

	TransactionCount int
}

// ProductStat summarizes sales for a single product.
type ProductStat struct {
	ProductName   string
	TotalQuantity int

	// TotalRevenue is rounded to 2 decimals.
	TotalRevenue float64
}

// CustomerStat summarizes purchases for a single customer.
type CustomerStat struct {
	CustomerID string

	// TotalSpent is rounded to 2 decimals.
	TotalSpent float64

	PurchaseCount int

	// AvgOrderValue is TotalSpent / PurchaseCount, rounded to 2 decimals.
	AvgOrderValue float64

	// ProductsBought lists the distinct product names this customer bought,
	// sorted and de-duplicated.
	ProductsBought []string
}

// DailyStat summarizes sales for a single date.
type DailyStat struct {
	Date string

	// Revenue is rounded to 2 decimals.
	Revenue float64

	TransactionCount int
	UniqueCustomers  int
}

// PeakDay identifies the date with the strictly highest revenue. The zero
// value (empty Date) is the sentinel for "no transactions".
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// CatalogProduct is a single product as returned by the external catalog.
type CatalogProduct struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category *string  `json:"category"`
	Brand    *string  `json:"brand"`
	Rating   *float64 `json:"rating"`
}

// ProductInfo is the subset of catalog data merged into transactions,
// keyed by numeric product id.
type ProductInfo struct {
	Category *string
	Brand    *string
	Rating   *float64
}
