package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// CreateRun records the start of a collection run and returns its ID
func (s *ProductStore) CreateRun(ctx context.Context, source string) (int64, error) {
	var runID int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO collection_runs (source, status, started_at, created_at)
		VALUES ($1, 'running', NOW(), NOW())
		RETURNING id
	`, source).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to create collection run: %w", err)
	}
	return runID, nil
}

// MarkRunCompleted finalizes a run with its totals and per-source metadata
func (s *ProductStore) MarkRunCompleted(ctx context.Context, runID int64, totalProducts, errorCount int, metadata string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE collection_runs
		SET status = 'completed',
		    completed_at = NOW(),
		    total_products = $2,
		    error_count = $3,
		    metadata = $4
		WHERE id = $1
	`, runID, totalProducts, errorCount, metadata)
	if err != nil {
		return fmt.Errorf("failed to mark run %d completed: %w", runID, err)
	}
	return nil
}

// MarkRunFailed finalizes a run that could not complete
func (s *ProductStore) MarkRunFailed(ctx context.Context, runID int64, errMsg string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE collection_runs
		SET status = 'failed',
		    completed_at = NOW(),
		    metadata = $2
		WHERE id = $1
	`, runID, errMsg)
	if err != nil {
		return fmt.Errorf("failed to mark run %d failed: %w", runID, err)
	}
	return nil
}

const runColumns = `id, source, status, started_at, completed_at, total_products, error_count, metadata, created_at`

// GetRun returns one collection run, or nil when absent
func (s *ProductStore) GetRun(ctx context.Context, runID int64) (*types.CollectionRun, error) {
	var r types.CollectionRun
	err := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+` FROM collection_runs WHERE id = $1
	`, runID).Scan(&r.ID, &r.Source, &r.Status, &r.StartedAt, &r.CompletedAt, &r.TotalProducts, &r.ErrorCount, &r.Metadata, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	return &r, nil
}

// ListRuns returns the most recent collection runs
func (s *ProductStore) ListRuns(ctx context.Context, limit int) ([]*types.CollectionRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+runColumns+` FROM collection_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.CollectionRun
	for rows.Next() {
		var r types.CollectionRun
		if err := rows.Scan(&r.ID, &r.Source, &r.Status, &r.StartedAt, &r.CompletedAt, &r.TotalProducts, &r.ErrorCount, &r.Metadata, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}
