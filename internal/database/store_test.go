package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// setupTestDB starts a postgres container with the catalog schema applied.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping database test in short mode (requires Docker)")
	}

	ctx := context.Background()

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	config, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, config)
	require.NoError(t, err, "Failed to create connection pool")

	require.NoError(t, Migrate(ctx, pool), "Failed to apply schema")

	cleanup := func() {
		pool.Close()
		container.Terminate(ctx)
	}

	return pool, cleanup
}

func testProduct(id string, brand types.BrandType) *types.Product {
	desc := "Description of " + id
	category := "blind_box"
	return &types.Product{
		ID:           id,
		Name:         "Product " + id,
		Brand:        brand,
		Source:       "Test Source",
		PurchaseLink: "https://example.com/" + id,
		Price:        12.99,
		StockLevel:   25,
		StockStatus:  types.StockInStock,
		ImageURL:     "/img/" + id + ".jpg",
		Description:  &desc,
		Category:     &category,
		Tags:         []string{"limited", "sound"},
		LastUpdated:  time.Now().UTC().Truncate(time.Millisecond),
		Metadata:     map[string]any{"series": "test"},
	}
}

func TestProductRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	original := 14.99
	p := testProduct("pm_001", types.BrandPopMart)
	p.OriginalPrice = &original

	require.NoError(t, store.UpsertProduct(ctx, p))

	got, err := store.GetProduct(ctx, "pm_001")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Brand, got.Brand)
	assert.Equal(t, p.Price, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 14.99, *got.OriginalPrice)
	assert.Equal(t, p.StockLevel, got.StockLevel)
	assert.Equal(t, p.StockStatus, got.StockStatus)
	require.NotNil(t, got.Category)
	assert.Equal(t, "blind_box", *got.Category)
	assert.Equal(t, []string{"limited", "sound"}, got.Tags)
	assert.Equal(t, "test", got.Metadata["series"])
}

func TestProductRoundTripEmptyTagsAndMetadata(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	p := testProduct("pm_bare", types.BrandPopMart)
	p.Tags = nil
	p.Metadata = nil

	require.NoError(t, store.UpsertProduct(ctx, p))

	got, err := store.GetProduct(ctx, "pm_bare")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.NotNil(t, got.Metadata)
	assert.Empty(t, got.Metadata)
}

func TestGetProductAbsentReturnsNil(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewProductStore(pool)
	got, err := store.GetProduct(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	p := testProduct("pm_001", types.BrandPopMart)
	require.NoError(t, store.UpsertProduct(ctx, p))

	p.Price = 9.99
	p.StockLevel = 2
	p.StockStatus = types.StockLowStock
	p.Tags = []string{"clearance"}
	require.NoError(t, store.UpsertProduct(ctx, p))

	got, err := store.GetProduct(ctx, "pm_001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, 2, got.StockLevel)
	assert.Equal(t, types.StockLowStock, got.StockStatus)
	assert.Equal(t, []string{"clearance"}, got.Tags)
}

func TestListProductsFiltersAndOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	older := testProduct("pm_old", types.BrandPopMart)
	older.LastUpdated = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.UpsertProduct(ctx, older))

	newer := testProduct("pm_new", types.BrandPopMart)
	require.NoError(t, store.UpsertProduct(ctx, newer))

	pokemon := testProduct("pk_001", types.BrandPokemon)
	pokemon.StockLevel = 0
	pokemon.StockStatus = types.StockOutOfStock
	require.NoError(t, store.UpsertProduct(ctx, pokemon))

	// Brand filter, newest first
	got, err := store.ListProducts(ctx, types.ListFilter{Brand: types.BrandPopMart}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pm_new", got[0].ID)
	assert.Equal(t, "pm_old", got[1].ID)

	// Stock status filter
	got, err = store.ListProducts(ctx, types.ListFilter{StockStatus: types.StockOutOfStock}, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pk_001", got[0].ID)

	// Limit
	got, err = store.ListProducts(ctx, types.ListFilter{}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchProductsTermAndPagination(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	skull := testProduct("pm_001", types.BrandPopMart)
	skull.Name = "SKULLPANDA The Sound Series"
	require.NoError(t, store.UpsertProduct(ctx, skull))

	molly := testProduct("pm_002", types.BrandPopMart)
	molly.Name = "Molly Chess Club Series"
	desc := "skull themed accessories"
	molly.Description = &desc
	require.NoError(t, store.UpsertProduct(ctx, molly))

	booster := testProduct("pk_001", types.BrandPokemon)
	booster.Name = "Scarlet & Violet Booster"
	require.NoError(t, store.UpsertProduct(ctx, booster))

	// Case-insensitive term matches name or description
	got, err := store.SearchProducts(ctx, types.SearchFilter{SearchTerm: "skull"}, types.SortByName, 1, 50)
	require.NoError(t, err)
	require.Len(t, got, 2)

	total, err := store.CountProducts(ctx, types.SearchFilter{SearchTerm: "skull"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Brand narrows the match set
	got, err = store.SearchProducts(ctx, types.SearchFilter{Brand: types.BrandPokemon}, types.SortByName, 1, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pk_001", got[0].ID)

	// Pagination
	got, err = store.SearchProducts(ctx, types.SearchFilter{}, types.SortByName, 1, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	got, err = store.SearchProducts(ctx, types.SearchFilter{}, types.SortByName, 2, 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchProductsSortKeys(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	cheap := testProduct("cheap", types.BrandPopMart)
	cheap.Name = "Zeta"
	cheap.Price = 5.00
	require.NoError(t, store.UpsertProduct(ctx, cheap))

	dear := testProduct("dear", types.BrandPopMart)
	dear.Name = "Alpha"
	dear.Price = 50.00
	require.NoError(t, store.UpsertProduct(ctx, dear))

	got, err := store.SearchProducts(ctx, types.SearchFilter{}, types.SortByPrice, 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cheap", got[0].ID)

	got, err = store.SearchProducts(ctx, types.SearchFilter{}, types.SortByPriceDesc, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "dear", got[0].ID)

	// Unrecognized sort keys fall back to name ordering
	got, err = store.SearchProducts(ctx, types.SearchFilter{}, "evil; DROP TABLE products", 1, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dear", got[0].ID) // "Alpha" sorts first
}

func TestListCategories(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	a := testProduct("a", types.BrandPopMart) // blind_box
	require.NoError(t, store.UpsertProduct(ctx, a))

	b := testProduct("b", types.BrandPokemon)
	cat := "booster"
	b.Category = &cat
	require.NoError(t, store.UpsertProduct(ctx, b))

	c := testProduct("c", types.BrandPokemon)
	c.Category = nil
	require.NoError(t, store.UpsertProduct(ctx, c))

	all, err := store.ListCategories(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"blind_box", "booster"}, all)

	scoped, err := store.ListCategories(ctx, types.BrandPokemon)
	require.NoError(t, err)
	assert.Equal(t, []string{"booster"}, scoped)
}

func TestPriceHistoryAppendAndWindow(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)
	now := time.Now().UTC()

	src := "Test Source"
	for _, e := range []struct {
		price float64
		at    time.Time
	}{
		{14.99, now.AddDate(0, 0, -40)},
		{13.99, now.AddDate(0, 0, -10)},
		{12.99, now.AddDate(0, 0, -1)},
	} {
		require.NoError(t, store.AppendPriceHistory(ctx, &types.PriceHistory{
			ProductID: "pm_001",
			Price:     e.price,
			Timestamp: e.at,
			Source:    &src,
		}))
	}

	// All entries, newest first
	all, err := store.GetPriceHistory(ctx, "pm_001", time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 12.99, all[0].Price)
	assert.Equal(t, 14.99, all[2].Price)

	// Cutoff drops the oldest entry
	recent, err := store.GetPriceHistory(ctx, "pm_001", now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 12.99, recent[0].Price)
}

func TestStockAlerts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	threshold := 5
	alert := &types.StockAlert{
		ProductID: "pm_001",
		AlertType: "low_stock",
		Threshold: &threshold,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.SaveStockAlert(ctx, alert))
	assert.NotZero(t, alert.ID)

	alerts, err := store.ListStockAlerts(ctx, "pm_001")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "low_stock", alerts[0].AlertType)
	require.NotNil(t, alerts[0].Threshold)
	assert.Equal(t, 5, *alerts[0].Threshold)
}

func TestCollectionRunLifecycle(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewProductStore(pool)

	runID, err := store.CreateRun(ctx, "api")
	require.NoError(t, err)
	require.NotZero(t, runID)

	run, err := store.GetRun(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "running", run.Status)
	assert.Equal(t, "api", run.Source)

	require.NoError(t, store.MarkRunCompleted(ctx, runID, 6, 1, `{"sources":{}}`))

	run, err = store.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 6, run.TotalProducts)
	assert.Equal(t, 1, run.ErrorCount)
	assert.NotNil(t, run.CompletedAt)

	// Absent run yields nil
	missing, err := store.GetRun(ctx, runID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
