package collectors

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// FeedColumnMapping maps feed spreadsheet headers to product fields.
// Header matching is case-insensitive.
type FeedColumnMapping struct {
	ID            string
	Name          string
	PurchaseLink  string
	Price         string
	OriginalPrice string
	StockLevel    string
	ImageURL      string
	Description   string
	Category      string
	Tags          string
}

// DefaultFeedMapping returns the column mapping used by the standard
// retailer feed export
func DefaultFeedMapping() FeedColumnMapping {
	return FeedColumnMapping{
		ID:            "sku",
		Name:          "name",
		PurchaseLink:  "url",
		Price:         "price",
		OriginalPrice: "original_price",
		StockLevel:    "stock",
		ImageURL:      "image",
		Description:   "description",
		Category:      "category",
		Tags:          "tags",
	}
}

// FeedCollector reads candidate products from an XLSX feed file exported by
// a retailer. Rows without a usable name or price are skipped and logged;
// rows without an ID get a generated one.
type FeedCollector struct {
	slug    string
	name    string
	brand   types.BrandType
	path    string
	mapping FeedColumnMapping
}

// NewFeedCollector creates a feed collector for the given brand and file
func NewFeedCollector(slug, name string, brand types.BrandType, path string, mapping FeedColumnMapping) *FeedCollector {
	return &FeedCollector{
		slug:    slug,
		name:    name,
		brand:   brand,
		path:    path,
		mapping: mapping,
	}
}

func (c *FeedCollector) Slug() string           { return c.slug }
func (c *FeedCollector) Name() string           { return c.name }
func (c *FeedCollector) Brand() types.BrandType { return c.brand }

// Collect parses the feed workbook's first sheet into candidate products
func (c *FeedCollector) Collect(ctx context.Context) ([]*types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file %s: %w", c.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("feed file %s has no sheets", c.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read feed sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return []*types.Product{}, nil
	}

	columns := c.columnIndex(rows[0])
	if _, ok := columns[c.mapping.Name]; !ok {
		return nil, fmt.Errorf("feed file %s is missing the %q column", c.path, c.mapping.Name)
	}

	now := time.Now()
	products := make([]*types.Product, 0, len(rows)-1)

	for i, row := range rows[1:] {
		p, err := c.parseRow(row, columns, now)
		if err != nil {
			log.Warn().
				Str("source", c.slug).
				Int("row", i+2).
				Err(err).
				Msg("Skipping feed row")
			continue
		}
		products = append(products, p)
	}

	return products, nil
}

// columnIndex maps lowercased header names to their column positions
func (c *FeedCollector) columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func (c *FeedCollector) parseRow(row []string, columns map[string]int, now time.Time) (*types.Product, error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := cell(c.mapping.Name)
	if name == "" {
		return nil, fmt.Errorf("empty product name")
	}

	price, err := strconv.ParseFloat(cell(c.mapping.Price), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", cell(c.mapping.Price), err)
	}
	if price < 0 {
		return nil, fmt.Errorf("negative price %v", price)
	}

	id := cell(c.mapping.ID)
	if id == "" {
		id = uuid.New().String()
	}

	stockLevel := 0
	if raw := cell(c.mapping.StockLevel); raw != "" {
		stockLevel, err = strconv.Atoi(raw)
		if err != nil || stockLevel < 0 {
			return nil, fmt.Errorf("invalid stock level %q", raw)
		}
	}

	p := &types.Product{
		ID:           id,
		Name:         name,
		Brand:        c.brand,
		Source:       c.name,
		PurchaseLink: cell(c.mapping.PurchaseLink),
		Price:        price,
		StockLevel:   stockLevel,
		StockStatus:  types.DeriveStockStatus(stockLevel),
		ImageURL:     cell(c.mapping.ImageURL),
		LastUpdated:  now,
	}

	if raw := cell(c.mapping.OriginalPrice); raw != "" {
		original, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid original price %q: %w", raw, err)
		}
		p.OriginalPrice = &original
	}
	if desc := cell(c.mapping.Description); desc != "" {
		p.Description = &desc
	}
	if cat := NormalizeCategory(cell(c.mapping.Category)); cat != "" {
		p.Category = &cat
	}
	if raw := cell(c.mapping.Tags); raw != "" {
		p.Tags = NormalizeTags(strings.Split(raw, ","))
	}

	return p, nil
}
