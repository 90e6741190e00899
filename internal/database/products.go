package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// ProductStore persists products, price history, stock alerts and
// collection runs in PostgreSQL.
type ProductStore struct {
	pool *pgxpool.Pool
}

// NewProductStore creates a store backed by the given connection pool
func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, name, brand, source, purchase_link, price, original_price,
	stock_level, stock_status, image_url, video_url, description, category,
	tags, last_updated, metadata`

// UpsertProduct inserts or fully replaces the row keyed by product ID.
// Callers must supply the complete record; there is no partial update.
func (s *ProductStore) UpsertProduct(ctx context.Context, p *types.Product) error {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			source = EXCLUDED.source,
			purchase_link = EXCLUDED.purchase_link,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			stock_level = EXCLUDED.stock_level,
			stock_status = EXCLUDED.stock_status,
			image_url = EXCLUDED.image_url,
			video_url = EXCLUDED.video_url,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			tags = EXCLUDED.tags,
			last_updated = EXCLUDED.last_updated,
			metadata = EXCLUDED.metadata
	`,
		p.ID, p.Name, string(p.Brand), p.Source, p.PurchaseLink, p.Price, p.OriginalPrice,
		p.StockLevel, string(p.StockStatus), p.ImageURL, p.VideoURL, p.Description, p.Category,
		tags, p.LastUpdated, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
	}
	return nil
}

// GetProduct returns the product with the given ID, or nil when absent
func (s *ProductStore) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return p, nil
}

// ListProducts returns products ordered by last_updated descending,
// optionally filtered by brand and stock status. A limit of 0 means no cap.
func (s *ProductStore) ListProducts(ctx context.Context, filter types.ListFilter, limit int) ([]*types.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.Brand != "" {
		query += " AND brand = $" + strconv.Itoa(argIdx)
		args = append(args, string(filter.Brand))
		argIdx++
	}
	if filter.StockStatus != "" {
		query += " AND stock_status = $" + strconv.Itoa(argIdx)
		args = append(args, string(filter.StockStatus))
		argIdx++
	}

	query += " ORDER BY last_updated DESC"

	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argIdx)
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// sortClauses maps API sort keys to ORDER BY clauses. Keys absent from the
// table fall back to name ascending.
var sortClauses = map[string]string{
	types.SortByName:        "name ASC",
	types.SortByPrice:       "price ASC",
	types.SortByPriceDesc:   "price DESC",
	types.SortByStockLevel:  "stock_level DESC",
	types.SortByLastUpdated: "last_updated DESC",
}

// SearchProducts composes equality filters with a case-insensitive substring
// match on name or description, applies a whitelisted sort, and paginates
// with offset = (page-1) * perPage.
func (s *ProductStore) SearchProducts(ctx context.Context, filter types.SearchFilter, sortBy string, page, perPage int) ([]*types.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args, argIdx := searchWhere(&query, filter)

	orderClause, ok := sortClauses[sortBy]
	if !ok {
		orderClause = sortClauses[types.SortByName]
	}
	query += " ORDER BY " + orderClause

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage
	query += " LIMIT $" + strconv.Itoa(argIdx) + " OFFSET $" + strconv.Itoa(argIdx+1)
	args = append(args, perPage, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// CountProducts returns the total number of rows a search would match
// before pagination
func (s *ProductStore) CountProducts(ctx context.Context, filter types.SearchFilter) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE 1=1`
	args, _ := searchWhere(&query, filter)

	var total int
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// searchWhere appends WHERE conditions for a search filter to query and
// returns the positional args with the next argument index
func searchWhere(query *string, filter types.SearchFilter) ([]any, int) {
	args := []any{}
	argIdx := 1

	if filter.Brand != "" {
		*query += " AND brand = $" + strconv.Itoa(argIdx)
		args = append(args, string(filter.Brand))
		argIdx++
	}
	if filter.Category != "" {
		*query += " AND category = $" + strconv.Itoa(argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.SearchTerm != "" {
		*query += " AND (name ILIKE $" + strconv.Itoa(argIdx) + " OR description ILIKE $" + strconv.Itoa(argIdx) + ")"
		args = append(args, "%"+filter.SearchTerm+"%")
		argIdx++
	}

	return args, argIdx
}

// ListCategories returns the distinct non-null categories in alphabetical
// order, optionally scoped to a brand
func (s *ProductStore) ListCategories(ctx context.Context, brand types.BrandType) ([]string, error) {
	query := `SELECT DISTINCT category FROM products WHERE category IS NOT NULL`
	args := []any{}

	if brand != "" {
		query += " AND brand = $1"
		args = append(args, string(brand))
	}
	query += " ORDER BY category ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*types.Product, error) {
	var p types.Product
	var brand, status string

	err := row.Scan(
		&p.ID, &p.Name, &brand, &p.Source, &p.PurchaseLink, &p.Price, &p.OriginalPrice,
		&p.StockLevel, &status, &p.ImageURL, &p.VideoURL, &p.Description, &p.Category,
		&p.Tags, &p.LastUpdated, &p.Metadata,
	)
	if err != nil {
		return nil, err
	}

	p.Brand = types.BrandType(brand)
	p.StockStatus = types.StockStatus(status)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*types.Product, error) {
	var products []*types.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
