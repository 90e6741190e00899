package catalog

import (
	"context"
	"time"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// Store is the persistence boundary the query service builds on. Any
// relational or indexed key-value store supporting equality filters,
// substring match and stable sort-plus-offset pagination can satisfy it;
// the PostgreSQL implementation lives in internal/database.
type Store interface {
	// UpsertProduct inserts or fully replaces the row keyed by product ID
	UpsertProduct(ctx context.Context, p *types.Product) error

	// GetProduct returns the product with the given ID, or nil when absent
	GetProduct(ctx context.Context, id string) (*types.Product, error)

	// ListProducts returns products ordered by last_updated descending,
	// capped at limit (0 means uncapped)
	ListProducts(ctx context.Context, filter types.ListFilter, limit int) ([]*types.Product, error)

	// SearchProducts composes filters, sorts by a whitelisted key and
	// paginates. It returns at most perPage rows.
	SearchProducts(ctx context.Context, filter types.SearchFilter, sortBy string, page, perPage int) ([]*types.Product, error)

	// CountProducts returns the total rows a search would match
	CountProducts(ctx context.Context, filter types.SearchFilter) (int, error)

	// ListCategories returns distinct non-null categories, sorted
	// alphabetically, optionally scoped to a brand
	ListCategories(ctx context.Context, brand types.BrandType) ([]string, error)

	// AppendPriceHistory records an immutable price observation
	AppendPriceHistory(ctx context.Context, entry *types.PriceHistory) error

	// GetPriceHistory returns observations newest first, optionally since a
	// cutoff time (zero means no cutoff)
	GetPriceHistory(ctx context.Context, productID string, since time.Time) ([]*types.PriceHistory, error)

	// SaveStockAlert inserts a stock alert
	SaveStockAlert(ctx context.Context, alert *types.StockAlert) error
}
