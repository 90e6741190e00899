package database

import (
	"context"
	"fmt"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// SaveStockAlert inserts a stock alert and fills in its generated ID
func (s *ProductStore) SaveStockAlert(ctx context.Context, alert *types.StockAlert) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO stock_alerts (product_id, alert_type, threshold, target_price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, alert.ProductID, alert.AlertType, alert.Threshold, alert.TargetPrice, alert.IsActive, alert.CreatedAt).Scan(&alert.ID)
	if err != nil {
		return fmt.Errorf("failed to save stock alert for %s: %w", alert.ProductID, err)
	}
	return nil
}

// ListStockAlerts returns alerts for a product, newest first
func (s *ProductStore) ListStockAlerts(ctx context.Context, productID string) ([]*types.StockAlert, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, alert_type, threshold, target_price, is_active, created_at
		FROM stock_alerts
		WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock alerts for %s: %w", productID, err)
	}
	defer rows.Close()

	var alerts []*types.StockAlert
	for rows.Next() {
		var a types.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.AlertType, &a.Threshold, &a.TargetPrice, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stock alert: %w", err)
		}
		alerts = append(alerts, &a)
	}
	return alerts, rows.Err()
}
