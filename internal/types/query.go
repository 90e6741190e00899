package types

// ListFilter narrows a recency-ordered product listing
type ListFilter struct {
	Brand       BrandType
	StockStatus StockStatus
}

// SearchFilter narrows a paginated product search. SearchTerm matches
// case-insensitively against name and description.
type SearchFilter struct {
	Brand      BrandType
	Category   string
	SearchTerm string
}

// Sort keys accepted by product search. Unrecognized keys fall back to
// SortByName rather than erroring.
const (
	SortByName        = "name"
	SortByPrice       = "price"
	SortByPriceDesc   = "price_desc"
	SortByStockLevel  = "stock_level"
	SortByLastUpdated = "last_updated"
)
