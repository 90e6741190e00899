package collectors

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// Manager runs all configured collectors and reconciles their output into
// the store. A run never fails as a whole: per-source and per-item errors
// are isolated, logged and reported in the summary.
type Manager struct {
	store      Store
	collectors []Collector
	logger     zerolog.Logger
}

// NewManager creates a collection manager over the given sources
func NewManager(store Store, logger zerolog.Logger, collectors ...Collector) *Manager {
	return &Manager{
		store:      store,
		collectors: collectors,
		logger:     logger,
	}
}

// Run executes one collection run across all sources and returns a summary.
// Sources run sequentially; runs are expected to execute as an occasionally
// invoked batch job, at most one at a time.
func (m *Manager) Run(ctx context.Context) *types.RunSummary {
	summary := &types.RunSummary{
		Timestamp: time.Now(),
		Sources:   make(map[string]types.SourceResult, len(m.collectors)),
		Errors:    []string{},
	}

	for _, c := range m.collectors {
		start := time.Now()
		m.logger.Info().Str("source", c.Slug()).Msg("Starting collection")

		products, err := c.Collect(ctx)
		if err != nil {
			errMsg := "Collection failed for " + c.Slug() + ": " + err.Error()
			m.logger.Error().Str("source", c.Slug()).Err(err).Msg("Collection failed")
			summary.Errors = append(summary.Errors, errMsg)
			summary.Sources[c.Slug()] = types.SourceResult{
				Success:   false,
				Error:     err.Error(),
				Timestamp: time.Now(),
			}
			recordRun(c.Slug(), "failed", time.Since(start))
			continue
		}

		priceChanges := m.reconcile(ctx, c.Slug(), products)

		summary.Sources[c.Slug()] = types.SourceResult{
			Success:           true,
			ProductsCollected: len(products),
			PriceChanges:      priceChanges,
			Timestamp:         time.Now(),
		}
		summary.TotalProducts += len(products)
		summary.PriceChanges += priceChanges

		recordRun(c.Slug(), "completed", time.Since(start))
		recordProducts(c.Slug(), len(products), priceChanges)

		m.logger.Info().
			Str("source", c.Slug()).
			Int("products", len(products)).
			Int("price_changes", priceChanges).
			Msg("Collection finished")
	}

	m.logger.Info().
		Int("total_products", summary.TotalProducts).
		Int("errors", len(summary.Errors)).
		Msg("Collection run completed")

	return summary
}

// reconcile merges candidate products into the store. A price that differs
// from the stored one appends a history entry before the upsert. Item
// failures do not abort the batch.
func (m *Manager) reconcile(ctx context.Context, slug string, products []*types.Product) int {
	priceChanges := 0

	for _, p := range products {
		existing, err := m.store.GetProduct(ctx, p.ID)
		if err != nil {
			m.logger.Error().Str("source", slug).Str("product", p.ID).Err(err).
				Msg("Failed to look up existing product")
			continue
		}

		if existing != nil && existing.Price != p.Price {
			entry := &types.PriceHistory{
				ProductID: p.ID,
				Price:     p.Price,
				Timestamp: time.Now(),
				Source:    &p.Source,
			}
			if err := m.store.AppendPriceHistory(ctx, entry); err != nil {
				m.logger.Error().Str("source", slug).Str("product", p.ID).Err(err).
					Msg("Failed to record price change")
				continue
			}
			priceChanges++
		}

		if err := m.store.UpsertProduct(ctx, p); err != nil {
			m.logger.Error().Str("source", slug).Str("product", p.ID).Err(err).
				Msg("Failed to upsert product")
			continue
		}

		m.logger.Debug().Str("source", slug).Str("product", p.ID).Msg("Updated product")
	}

	return priceChanges
}
