package collectors

import (
	"context"
	"time"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// SlugPopMart is the source slug of the Pop Mart collector
const SlugPopMart = "popmart"

// PopMartCollector simulates collection from the Pop Mart retail feed.
// A production deployment would replace Collect with live extraction; the
// record shape and reconciliation path stay the same.
type PopMartCollector struct{}

// NewPopMartCollector creates the Pop Mart collector
func NewPopMartCollector() *PopMartCollector {
	return &PopMartCollector{}
}

func (c *PopMartCollector) Slug() string           { return SlugPopMart }
func (c *PopMartCollector) Name() string           { return "Pop Mart Official" }
func (c *PopMartCollector) Brand() types.BrandType { return types.BrandPopMart }

// Collect returns the current batch of Pop Mart candidate products
func (c *PopMartCollector) Collect(ctx context.Context) ([]*types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	originalPrice := 15.99

	products := []*types.Product{
		{
			ID:           "pm_004",
			Name:         "SKULLPANDA City of Night Series",
			Brand:        types.BrandPopMart,
			Source:       c.Name(),
			PurchaseLink: "https://www.popmart.com/skullpanda-night",
			Price:        13.99,
			StockLevel:   42,
			ImageURL:     "/static/images/skullpanda-night.jpg",
			Description:  ptr("Limited edition night theme SKULLPANDA"),
			Category:     ptr("blind_box"),
			Tags:         []string{"limited", "night", "skull"},
			LastUpdated:  now,
		},
		{
			ID:           "pm_005",
			Name:         "Molly Space Travel Series",
			Brand:        types.BrandPopMart,
			Source:       c.Name(),
			PurchaseLink: "https://www.popmart.com/molly-space",
			Price:        14.50,
			StockLevel:   18,
			ImageURL:     "/static/images/molly-space.jpg",
			Description:  ptr("Molly exploring the cosmos"),
			Category:     ptr("blind_box"),
			Tags:         []string{"molly", "space", "travel"},
			LastUpdated:  now,
		},
		{
			ID:            "pm_006",
			Name:          "DIMOO Underwater Series",
			Brand:         types.BrandPopMart,
			Source:        c.Name(),
			PurchaseLink:  "https://www.popmart.com/dimoo-underwater",
			Price:         12.99,
			OriginalPrice: &originalPrice,
			StockLevel:    0,
			ImageURL:      "/static/images/dimoo-underwater.jpg",
			Description:   ptr("DIMOO diving into ocean adventures"),
			Category:      ptr("blind_box"),
			Tags:          []string{"dimoo", "underwater", "ocean"},
			LastUpdated:   now,
		},
	}

	for _, p := range products {
		p.StockStatus = types.DeriveStockStatus(p.StockLevel)
	}
	return products, nil
}

func ptr[T any](v T) *T {
	return &v
}
