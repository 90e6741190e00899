package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements creates the catalog tables and their indexes. Statements
// are idempotent so Migrate can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		brand TEXT NOT NULL,
		source TEXT NOT NULL,
		purchase_link TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		original_price DOUBLE PRECISION,
		stock_level INTEGER NOT NULL,
		stock_status TEXT NOT NULL,
		image_url TEXT NOT NULL,
		video_url TEXT,
		description TEXT,
		category TEXT,
		tags JSONB NOT NULL DEFAULT '[]'::jsonb,
		last_updated TIMESTAMPTZ NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL,
		source TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS stock_alerts (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT NOT NULL,
		alert_type TEXT NOT NULL,
		threshold INTEGER,
		target_price DOUBLE PRECISION,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS collection_runs (
		id BIGSERIAL PRIMARY KEY,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		total_products INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		metadata TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_brand ON products (brand)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_products_stock_status ON products (stock_status)`,
	`CREATE INDEX IF NOT EXISTS idx_products_last_updated ON products (last_updated DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history (product_id, recorded_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_alerts_product ON stock_alerts (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collection_runs_started ON collection_runs (started_at DESC)`,
}

// Migrate applies the catalog schema to the connected database
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
