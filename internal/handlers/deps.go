// Package handlers implements the JSON API of the catalog service
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/aistocktrack/catalog-service/internal/catalog"
	"github.com/aistocktrack/catalog-service/internal/types"
)

// RunStore persists collection run records
type RunStore interface {
	CreateRun(ctx context.Context, source string) (int64, error)
	MarkRunCompleted(ctx context.Context, runID int64, totalProducts, errorCount int, metadata string) error
	MarkRunFailed(ctx context.Context, runID int64, errMsg string) error
	GetRun(ctx context.Context, runID int64) (*types.CollectionRun, error)
	ListRuns(ctx context.Context, limit int) ([]*types.CollectionRun, error)
}

// CollectFunc runs one collection pass across all configured sources
type CollectFunc func(ctx context.Context) *types.RunSummary

// API bundles the dependencies shared by all handlers
type API struct {
	Catalog *catalog.Service
	Runs    RunStore
	Collect CollectFunc
}

// NewAPI creates the handler set
func NewAPI(svc *catalog.Service, runs RunStore, collect CollectFunc) *API {
	return &API{
		Catalog: svc,
		Runs:    runs,
		Collect: collect,
	}
}

// Register mounts all API routes on the given router group
func (a *API) Register(api *gin.RouterGroup) {
	api.GET("/products", a.SearchProducts)
	api.GET("/products/featured", a.GetFeatured)
	api.GET("/products/low-stock", a.GetLowStock)
	api.GET("/products/price-drops", a.GetPriceDrops)
	api.GET("/products/:id", a.GetProduct)
	api.GET("/products/:id/history", a.GetPriceHistory)
	api.GET("/products/:id/related", a.GetRelated)
	api.PATCH("/products/:id/stock", a.UpdateStock)
	api.PATCH("/products/:id/price", a.UpdatePrice)

	api.GET("/brands", a.GetBrands)
	api.GET("/categories", a.GetCategories)
	api.GET("/statistics", a.GetStatistics)

	api.POST("/stock-alerts", a.CreateStockAlert)
}

// RegisterAdmin mounts the admin routes on the given router group
func (a *API) RegisterAdmin(admin *gin.RouterGroup) {
	admin.POST("/collect", a.TriggerCollection)
	admin.GET("/collect/status/:runId", a.GetCollectionStatus)
	admin.GET("/collect/runs", a.ListCollectionRuns)
}
