package types

import (
	"fmt"
	"math"
	"time"
)

// BrandType identifies the product line a record belongs to. It drives
// frontend theming only; query semantics are identical across brands.
type BrandType string

const (
	BrandPopMart BrandType = "pop_mart"
	BrandPokemon BrandType = "pokemon"
)

// Brands returns the supported brand types
func Brands() []BrandType {
	return []BrandType{BrandPopMart, BrandPokemon}
}

// ParseBrand validates a brand string and returns the typed value
func ParseBrand(s string) (BrandType, error) {
	for _, b := range Brands() {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown brand: %q", s)
}

// StockStatus is the coarse availability classification of a product
type StockStatus string

const (
	StockInStock      StockStatus = "in_stock"
	StockLowStock     StockStatus = "low_stock"
	StockOutOfStock   StockStatus = "out_of_stock"
	StockDiscontinued StockStatus = "discontinued"
)

// StockStatuses returns all stock statuses in reporting order
func StockStatuses() []StockStatus {
	return []StockStatus{StockInStock, StockLowStock, StockOutOfStock, StockDiscontinued}
}

// DeriveStockStatus maps a stock level to its status: 0 is out of stock,
// 1-5 is low stock, above 5 is in stock. Discontinued is a terminal override
// set explicitly, never derived from the level.
func DeriveStockStatus(level int) StockStatus {
	switch {
	case level == 0:
		return StockOutOfStock
	case level <= 5:
		return StockLowStock
	default:
		return StockInStock
	}
}

// Product is a tracked merchandise item (collectible figure, trading card)
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Brand         BrandType      `json:"brand"`
	Source        string         `json:"source"`         // origin retailer or feed
	PurchaseLink  string         `json:"purchase_link"`
	Price         float64        `json:"price"`
	OriginalPrice *float64       `json:"original_price"` // MSRP, when known
	StockLevel    int            `json:"stock_level"`
	StockStatus   StockStatus    `json:"stock_status"`
	ImageURL      string         `json:"image_url"`
	VideoURL      *string        `json:"video_url"`
	Description   *string        `json:"description"`
	Category      *string        `json:"category"`
	Tags          []string       `json:"tags"`
	LastUpdated   time.Time      `json:"last_updated"`
	Metadata      map[string]any `json:"metadata"` // source-specific extras
}

// IsOnSale reports whether the product currently sells below its original price
func (p *Product) IsOnSale() bool {
	return p.OriginalPrice != nil && p.Price < *p.OriginalPrice
}

// DiscountPercentage returns the discount relative to the original price,
// rounded to two decimals, or nil when the product is not on sale.
func (p *Product) DiscountPercentage() *float64 {
	if !p.IsOnSale() || *p.OriginalPrice == 0 {
		return nil
	}
	pct := math.Round((*p.OriginalPrice-p.Price)/(*p.OriginalPrice)*100*100) / 100
	return &pct
}

// AvailabilityText returns a user-facing availability string
func (p *Product) AvailabilityText() string {
	switch p.StockStatus {
	case StockInStock:
		return fmt.Sprintf("%d available", p.StockLevel)
	case StockLowStock:
		return fmt.Sprintf("Only %d left", p.StockLevel)
	case StockOutOfStock:
		return "Out of stock"
	case StockDiscontinued:
		return "Discontinued"
	default:
		return "Unknown"
	}
}

// PriceHistory is an immutable price observation for a product.
// Entries are append-only and never mutated or deleted.
type PriceHistory struct {
	ProductID string    `json:"product_id"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	Source    *string   `json:"source,omitempty"`
}

// StockAlert is a user-declared watch condition on a product. It is a
// declarative record only; no evaluation engine acts on it.
type StockAlert struct {
	ID          int64     `json:"id,omitempty"`
	ProductID   string    `json:"product_id"`
	AlertType   string    `json:"alert_type"` // 'low_stock', 'back_in_stock', 'price_drop'
	Threshold   *int      `json:"threshold,omitempty"`
	TargetPrice *float64  `json:"target_price,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
