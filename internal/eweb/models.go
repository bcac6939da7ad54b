// internal/eweb/models.go
package eweb

// Credentials identifies this gateway to the upstream backend. Loaded once
// at startup and read-only afterwards, so a single value is shared by all
// concurrent requests.
type Credentials struct {
	BaseURL   string
	APIKey    string
	AccountID string // optional; sends the X-Account-ID header when set
}

// SalesHistoryParams are the query parameters for the sales-history
// operation. StartDate and EndDate are required YYYY-MM-DD values; the
// remaining fields are filters omitted from the request when empty.
type SalesHistoryParams struct {
	StartDate  string
	EndDate    string
	Brand      string
	SKU        string
	UPC        string
	LocationID string
}

// SupplierStockParams are the query parameters for the supplier-stock
// operation. SupplierID is required. Page and PageSize fall back to 1 and
// the configured page size when zero.
type SupplierStockParams struct {
	SupplierID string
	Brand      string
	Page       int
	PageSize   int
}
