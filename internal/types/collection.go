package types

import "time"

// SourceResult is the per-source outcome of a collection run
type SourceResult struct {
	Success           bool      `json:"success"`
	ProductsCollected int       `json:"products_collected"`
	PriceChanges      int       `json:"price_changes"`
	Error             string    `json:"error,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// RunSummary aggregates the outcome of one collection run across all
// configured sources. A run always produces a summary, even when every
// source failed.
type RunSummary struct {
	Timestamp     time.Time               `json:"timestamp"`
	Sources       map[string]SourceResult `json:"sources"`
	TotalProducts int                     `json:"total_products"`
	PriceChanges  int                     `json:"price_changes"`
	Errors        []string                `json:"errors"`
}

// Succeeded reports whether every source completed without error
func (s *RunSummary) Succeeded() bool {
	return len(s.Errors) == 0
}

// CollectionRun is a persisted record of one collection run
type CollectionRun struct {
	ID            int64      `json:"id"`
	Source        string     `json:"source"` // 'api', 'cli'
	Status        string     `json:"status"` // 'running', 'completed', 'failed'
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	TotalProducts int        `json:"total_products"`
	ErrorCount    int        `json:"error_count"`
	Metadata      *string    `json:"metadata,omitempty"` // JSON summary of per-source results
	CreatedAt     time.Time  `json:"created_at"`
}
