package database

import (
	"context"
	"fmt"
	"time"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// AppendPriceHistory records an immutable price observation
func (s *ProductStore) AppendPriceHistory(ctx context.Context, entry *types.PriceHistory) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO price_history (product_id, price, recorded_at, source)
		VALUES ($1, $2, $3, $4)
	`, entry.ProductID, entry.Price, entry.Timestamp, entry.Source)
	if err != nil {
		return fmt.Errorf("failed to append price history for %s: %w", entry.ProductID, err)
	}
	return nil
}

// GetPriceHistory returns price observations for a product ordered newest
// first. A zero since time returns the full history.
func (s *ProductStore) GetPriceHistory(ctx context.Context, productID string, since time.Time) ([]*types.PriceHistory, error) {
	query := `SELECT product_id, price, recorded_at, source FROM price_history WHERE product_id = $1`
	args := []any{productID}

	if !since.IsZero() {
		query += " AND recorded_at >= $2"
		args = append(args, since)
	}
	query += " ORDER BY recorded_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history for %s: %w", productID, err)
	}
	defer rows.Close()

	var history []*types.PriceHistory
	for rows.Next() {
		var h types.PriceHistory
		if err := rows.Scan(&h.ProductID, &h.Price, &h.Timestamp, &h.Source); err != nil {
			return nil, fmt.Errorf("failed to scan price history: %w", err)
		}
		history = append(history, &h)
	}
	return history, rows.Err()
}
