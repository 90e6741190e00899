// Package catalog implements the business-rule layer of the product tracker:
// search composition, featured and related selection, statistics aggregation,
// and the stock/price update policy.
package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// Service exposes derived catalog queries and update policies. All calls are
// synchronous and stateless; each executes one logical operation against the
// store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a query service on top of the given store
func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// GetProduct returns a single product, or ErrNotFound when absent
func (s *Service) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// ListProducts returns the most recently updated products for a brand
func (s *Service) ListProducts(ctx context.Context, brand types.BrandType, limit int) ([]*types.Product, error) {
	return s.store.ListProducts(ctx, types.ListFilter{Brand: brand}, limit)
}

// Search runs a filtered, sorted, paginated product search and returns the
// matching page together with the total match count.
func (s *Service) Search(ctx context.Context, filter types.SearchFilter, sortBy string, page, perPage int) ([]*types.Product, int, error) {
	products, err := s.store.SearchProducts(ctx, filter, sortBy, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if products == nil {
		products = []*types.Product{}
	}
	return products, total, nil
}

// Categories returns the available categories, optionally scoped to a brand
func (s *Service) Categories(ctx context.Context, brand types.BrandType) ([]string, error) {
	return s.store.ListCategories(ctx, brand)
}

// GetFeatured selects up to limit in-stock products for homepage display.
// Products with a stock level above 10 or an active sale take priority;
// remaining slots are filled with other in-stock products in fetch order.
func (s *Service) GetFeatured(ctx context.Context, brand types.BrandType, limit int) ([]*types.Product, error) {
	if limit <= 0 {
		limit = 6
	}

	candidates, err := s.store.ListProducts(ctx, types.ListFilter{
		Brand:       brand,
		StockStatus: types.StockInStock,
	}, limit*2)
	if err != nil {
		return nil, err
	}

	featured := make([]*types.Product, 0, limit)
	selected := make(map[string]bool, limit)

	for _, p := range candidates {
		if len(featured) >= limit {
			break
		}
		if p.StockLevel > 10 || p.IsOnSale() {
			featured = append(featured, p)
			selected[p.ID] = true
		}
	}

	for _, p := range candidates {
		if len(featured) >= limit {
			break
		}
		if !selected[p.ID] {
			featured = append(featured, p)
			selected[p.ID] = true
		}
	}

	return featured, nil
}

// GetRelated returns up to limit products related to the anchor product:
// same-category products first, then other brand products. An absent anchor
// yields an empty result, not an error.
func (s *Service) GetRelated(ctx context.Context, productID string, brand types.BrandType, limit int) ([]*types.Product, error) {
	if limit <= 0 {
		limit = 4
	}

	anchor, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return []*types.Product{}, nil
	}

	filter := types.SearchFilter{Brand: brand}
	if anchor.Category != nil {
		filter.Category = *anchor.Category
	}

	sameCategory, err := s.store.SearchProducts(ctx, filter, types.SortByName, 1, limit*2)
	if err != nil {
		return nil, err
	}

	related := make([]*types.Product, 0, limit)
	seen := map[string]bool{productID: true}
	for _, p := range sameCategory {
		if !seen[p.ID] {
			related = append(related, p)
			seen[p.ID] = true
		}
	}

	if len(related) < limit {
		additional, err := s.store.ListProducts(ctx, types.ListFilter{Brand: brand}, limit*2)
		if err != nil {
			return nil, err
		}
		for _, p := range additional {
			if len(related) >= limit {
				break
			}
			if !seen[p.ID] {
				related = append(related, p)
				seen[p.ID] = true
			}
		}
	}

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// GetPriceHistory returns the price observations of the last days days,
// newest first
func (s *Service) GetPriceHistory(ctx context.Context, productID string, days int) ([]*types.PriceHistory, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)
	return s.store.GetPriceHistory(ctx, productID, since)
}

// CreateStockAlert records a watch condition on a product
func (s *Service) CreateStockAlert(ctx context.Context, productID, alertType string, threshold *int, targetPrice *float64) (*types.StockAlert, error) {
	if productID == "" || alertType == "" {
		return nil, fmt.Errorf("product_id and alert_type are required: %w", ErrValidation)
	}

	alert := &types.StockAlert{
		ProductID:   productID,
		AlertType:   alertType,
		Threshold:   threshold,
		TargetPrice: targetPrice,
		IsActive:    true,
		CreatedAt:   s.now(),
	}
	if err := s.store.SaveStockAlert(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// UpdateStock sets a product's stock level. When status is empty, it is
// derived from the level; a discontinued status must be passed explicitly.
func (s *Service) UpdateStock(ctx context.Context, productID string, level int, status types.StockStatus) (*types.Product, error) {
	if level < 0 {
		return nil, fmt.Errorf("stock level must not be negative: %w", ErrValidation)
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = types.DeriveStockStatus(level)
	} else if !validStockStatus(status) {
		return nil, fmt.Errorf("unknown stock status %q: %w", status, ErrValidation)
	}

	product.StockLevel = level
	product.StockStatus = status
	product.LastUpdated = s.now()

	if err := s.store.UpsertProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func validStockStatus(status types.StockStatus) bool {
	for _, known := range types.StockStatuses() {
		if status == known {
			return true
		}
	}
	return false
}

// UpdatePrice sets a product's price. A changed price appends a history
// entry carrying the new price tagged with source.
func (s *Service) UpdatePrice(ctx context.Context, productID string, newPrice float64, source *string) (*types.Product, error) {
	if newPrice < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Price != newPrice {
		entry := &types.PriceHistory{
			ProductID: productID,
			Price:     newPrice,
			Timestamp: s.now(),
			Source:    source,
		}
		if err := s.store.AppendPriceHistory(ctx, entry); err != nil {
			return nil, err
		}
	}

	product.Price = newPrice
	product.LastUpdated = s.now()

	if err := s.store.UpsertProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Statistics summarizes the catalog, optionally scoped to a brand
type Statistics struct {
	TotalProducts int      `json:"total_products"`
	InStock       int      `json:"in_stock"`
	LowStock      int      `json:"low_stock"`
	OutOfStock    int      `json:"out_of_stock"`
	Discontinued  int      `json:"discontinued"`
	AveragePrice  float64  `json:"average_price"`
	Categories    []string `json:"categories"`
}

// GetStatistics aggregates counts per stock status, the mean price over
// priced products and the sorted category list. An empty catalog yields
// all-zero statistics.
func (s *Service) GetStatistics(ctx context.Context, brand types.BrandType) (*Statistics, error) {
	products, err := s.store.ListProducts(ctx, types.ListFilter{Brand: brand}, 0)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{Categories: []string{}}
	if len(products) == 0 {
		return stats, nil
	}

	stats.TotalProducts = len(products)

	var priceSum float64
	var priced int
	categories := make(map[string]bool)

	for _, p := range products {
		switch p.StockStatus {
		case types.StockInStock:
			stats.InStock++
		case types.StockLowStock:
			stats.LowStock++
		case types.StockOutOfStock:
			stats.OutOfStock++
		case types.StockDiscontinued:
			stats.Discontinued++
		}
		if p.Price > 0 {
			priceSum += p.Price
			priced++
		}
		if p.Category != nil && *p.Category != "" {
			categories[*p.Category] = true
		}
	}

	if priced > 0 {
		stats.AveragePrice = math.Round(priceSum/float64(priced)*100) / 100
	}

	for c := range categories {
		stats.Categories = append(stats.Categories, c)
	}
	sort.Strings(stats.Categories)

	return stats, nil
}

// GetLowStock returns products running low: stock level at or below the
// threshold, excluding ones already out of stock
func (s *Service) GetLowStock(ctx context.Context, threshold int) ([]*types.Product, error) {
	if threshold <= 0 {
		threshold = 5
	}

	products, err := s.store.ListProducts(ctx, types.ListFilter{}, 0)
	if err != nil {
		return nil, err
	}

	low := make([]*types.Product, 0)
	for _, p := range products {
		if p.StockLevel <= threshold && p.StockStatus != types.StockOutOfStock {
			low = append(low, p)
		}
	}
	return low, nil
}

// GetPriceDrops flags products whose price decreased within the window.
// It scans up to 100 recent products with one history query each, which is
// acceptable at this catalog's scale but does not hold up on large ones.
func (s *Service) GetPriceDrops(ctx context.Context, days int) ([]*types.Product, error) {
	if days <= 0 {
		days = 7
	}
	since := s.now().AddDate(0, 0, -days)

	products, err := s.store.ListProducts(ctx, types.ListFilter{}, 100)
	if err != nil {
		return nil, err
	}

	drops := make([]*types.Product, 0)
	for _, p := range products {
		history, err := s.store.GetPriceHistory(ctx, p.ID, since)
		if err != nil {
			return nil, err
		}
		if len(history) < 2 {
			continue
		}
		// history is newest-first
		latest := history[0].Price
		earliest := history[len(history)-1].Price
		if latest < earliest {
			drops = append(drops, p)
		}
	}
	return drops, nil
}
