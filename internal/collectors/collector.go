// Package collectors implements the ingestion side of the tracker: pluggable
// sources that produce candidate product records, and the manager that
// reconciles them into the catalog store.
package collectors

import (
	"context"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// Collector is the contract every data source implements. A source produces
// a batch of candidate products; it may fail as a whole, and the manager
// isolates that failure from other sources.
type Collector interface {
	Slug() string
	Name() string
	Brand() types.BrandType
	Collect(ctx context.Context) ([]*types.Product, error)
}

// Store is the slice of the catalog store the reconciliation step needs
type Store interface {
	GetProduct(ctx context.Context, id string) (*types.Product, error)
	UpsertProduct(ctx context.Context, p *types.Product) error
	AppendPriceHistory(ctx context.Context, entry *types.PriceHistory) error
}
