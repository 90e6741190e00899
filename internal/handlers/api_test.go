package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aistocktrack/catalog-service/internal/catalog"
	"github.com/aistocktrack/catalog-service/internal/types"
)

// stubStore is an in-memory catalog.Store for handler tests
type stubStore struct {
	products map[string]*types.Product
	history  map[string][]*types.PriceHistory
	alerts   []*types.StockAlert
}

func newStubStore() *stubStore {
	return &stubStore{
		products: make(map[string]*types.Product),
		history:  make(map[string][]*types.PriceHistory),
	}
}

func (s *stubStore) UpsertProduct(_ context.Context, p *types.Product) error {
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *stubStore) GetProduct(_ context.Context, id string) (*types.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *stubStore) ListProducts(_ context.Context, filter types.ListFilter, limit int) ([]*types.Product, error) {
	var out []*types.Product
	for _, p := range s.products {
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		if filter.StockStatus != "" && p.StockStatus != filter.StockStatus {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubStore) SearchProducts(_ context.Context, filter types.SearchFilter, _ string, page, perPage int) ([]*types.Product, error) {
	var out []*types.Product
	for _, p := range s.products {
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	start := (page - 1) * perPage
	if start >= len(out) {
		return nil, nil
	}
	end := start + perPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *stubStore) CountProducts(_ context.Context, filter types.SearchFilter) (int, error) {
	n := 0
	for _, p := range s.products {
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		n++
	}
	return n, nil
}

func (s *stubStore) ListCategories(_ context.Context, _ types.BrandType) ([]string, error) {
	return []string{"blind_box", "booster"}, nil
}

func (s *stubStore) AppendPriceHistory(_ context.Context, entry *types.PriceHistory) error {
	cp := *entry
	s.history[entry.ProductID] = append([]*types.PriceHistory{&cp}, s.history[entry.ProductID]...)
	return nil
}

func (s *stubStore) GetPriceHistory(_ context.Context, productID string, _ time.Time) ([]*types.PriceHistory, error) {
	return s.history[productID], nil
}

func (s *stubStore) SaveStockAlert(_ context.Context, alert *types.StockAlert) error {
	alert.ID = int64(len(s.alerts) + 1)
	cp := *alert
	s.alerts = append(s.alerts, &cp)
	return nil
}

// stubRuns is an in-memory RunStore for collection handler tests
type stubRuns struct {
	mu   sync.Mutex
	runs map[int64]*types.CollectionRun
	next int64
}

func newStubRuns() *stubRuns {
	return &stubRuns{runs: make(map[int64]*types.CollectionRun)}
}

func (s *stubRuns) CreateRun(_ context.Context, source string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.runs[s.next] = &types.CollectionRun{
		ID:        s.next,
		Source:    source,
		Status:    "running",
		StartedAt: time.Now(),
	}
	return s.next, nil
}

func (s *stubRuns) MarkRunCompleted(_ context.Context, runID int64, totalProducts, errorCount int, metadata string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := s.runs[runID]
	run.Status = "completed"
	run.TotalProducts = totalProducts
	run.ErrorCount = errorCount
	run.Metadata = &metadata
	return nil
}

func (s *stubRuns) MarkRunFailed(_ context.Context, runID int64, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := s.runs[runID]
	run.Status = "failed"
	run.Metadata = &errMsg
	return nil
}

func (s *stubRuns) GetRun(_ context.Context, runID int64) (*types.CollectionRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[runID]
	if !ok {
		return nil, nil
	}
	cp := *run
	return &cp, nil
}

func (s *stubRuns) ListRuns(_ context.Context, _ int) ([]*types.CollectionRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*types.CollectionRun
	for _, r := range s.runs {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func newTestRouter(store *stubStore, runs *stubRuns, collect CollectFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := NewAPI(catalog.NewService(store), runs, collect)
	group := router.Group("/api")
	api.Register(group)
	api.RegisterAdmin(group.Group("/admin"))

	return router
}

func seedStub(store *stubStore, id string, brand types.BrandType, price float64, stock int) {
	status := types.DeriveStockStatus(stock)
	store.products[id] = &types.Product{
		ID:           id,
		Name:         "Product " + id,
		Brand:        brand,
		Source:       "Test",
		PurchaseLink: "https://example.com/" + id,
		Price:        price,
		StockLevel:   stock,
		StockStatus:  status,
		ImageURL:     "/img/" + id + ".jpg",
		LastUpdated:  time.Now(),
	}
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProductEndpoint(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 12.99, 25)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/products/pm_001", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    types.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pm_001", resp.Data.ID)
	assert.Equal(t, 12.99, resp.Data.Price)
}

func TestGetProductNotFoundEndpoint(t *testing.T) {
	router := newTestRouter(newStubStore(), newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchProductsPaginationEnvelope(t *testing.T) {
	store := newStubStore()
	for i := 0; i < 7; i++ {
		seedStub(store, string(rune('a'+i))+"_pm", types.BrandPopMart, 10, 20)
	}
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/products?brand=pop_mart&page=1&per_page=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp SearchProductsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, 7, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.PerPage)
}

func TestSearchProductsUnknownBrand(t *testing.T) {
	router := newTestRouter(newStubStore(), newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/products?brand=lego", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeaturedEndpoint(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 12.99, 25)
	seedStub(store, "pm_002", types.BrandPopMart, 13.50, 3)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/products/featured?brand=pop_mart&limit=4", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    []*types.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Only the in-stock product qualifies
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "pm_001", resp.Data[0].ID)
}

func TestGetBrandsEndpoint(t *testing.T) {
	router := newTestRouter(newStubStore(), newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/brands", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                 `json:"success"`
		Data    map[string]BrandInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.Data, "pop_mart")
	require.Contains(t, resp.Data, "pokemon")
	assert.Equal(t, "figure", resp.Data["pop_mart"].ProductTerm)
	assert.Equal(t, "card", resp.Data["pokemon"].ProductTerm)
}

func TestCreateStockAlertEndpoint(t *testing.T) {
	store := newStubStore()
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "POST", "/api/stock-alerts", CreateStockAlertRequest{
		ProductID: "pm_001",
		AlertType: "low_stock",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.alerts, 1)
	assert.True(t, store.alerts[0].IsActive)
}

func TestCreateStockAlertRejectsMissingFields(t *testing.T) {
	router := newTestRouter(newStubStore(), newStubRuns(), nil)

	w := doRequest(router, "POST", "/api/stock-alerts", map[string]string{"product_id": "pm_001"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, "POST", "/api/stock-alerts", map[string]string{
		"product_id": "pm_001",
		"alert_type": "unknown_kind",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStockEndpointDerivesStatus(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 12.99, 25)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "PATCH", "/api/products/pm_001/stock", UpdateStockRequest{StockLevel: 2})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data types.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.StockLevel)
	assert.Equal(t, types.StockLowStock, resp.Data.StockStatus)
}

func TestUpdateStockEndpointRejectsUnknownStatus(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 12.99, 25)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "PATCH", "/api/products/pm_001/stock", UpdateStockRequest{StockLevel: 50, StockStatus: "banana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePriceEndpointRecordsHistory(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 12.99, 25)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "PATCH", "/api/products/pm_001/price", UpdatePriceRequest{Price: 10.99})
	assert.Equal(t, http.StatusOK, w.Code)

	history := store.history["pm_001"]
	require.Len(t, history, 1)
	assert.Equal(t, 10.99, history[0].Price)
}

func TestGetStatisticsEndpoint(t *testing.T) {
	store := newStubStore()
	seedStub(store, "pm_001", types.BrandPopMart, 10, 25)
	seedStub(store, "pm_002", types.BrandPopMart, 20, 3)
	router := newTestRouter(store, newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/statistics?brand=pop_mart", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data catalog.Statistics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.TotalProducts)
	assert.Equal(t, 15.0, resp.Data.AveragePrice)
}

func TestTriggerCollectionEndpoint(t *testing.T) {
	runs := newStubRuns()
	collect := func(context.Context) *types.RunSummary {
		return &types.RunSummary{
			Timestamp:     time.Now(),
			Sources:       map[string]types.SourceResult{"popmart": {Success: true, ProductsCollected: 3}},
			TotalProducts: 3,
			Errors:        []string{},
		}
	}
	router := newTestRouter(newStubStore(), runs, collect)

	w := doRequest(router, "POST", "/api/admin/collect", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp CollectionStartedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.RunID)
	assert.Equal(t, "started", resp.Status)
	assert.Contains(t, resp.PollURL, "/api/admin/collect/status/1")

	// The run completes asynchronously
	require.Eventually(t, func() bool {
		run, err := runs.GetRun(context.Background(), 1)
		return err == nil && run != nil && run.Status == "completed"
	}, 2*time.Second, 10*time.Millisecond)

	run, err := runs.GetRun(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, run.TotalProducts)
	assert.Equal(t, 0, run.ErrorCount)
}

func TestTriggerCollectionAllSourcesFailed(t *testing.T) {
	runs := newStubRuns()
	collect := func(context.Context) *types.RunSummary {
		return &types.RunSummary{
			Timestamp: time.Now(),
			Sources:   map[string]types.SourceResult{"popmart": {Success: false, Error: "boom"}},
			Errors:    []string{"popmart: boom"},
		}
	}
	router := newTestRouter(newStubStore(), runs, collect)

	w := doRequest(router, "POST", "/api/admin/collect", nil)
	assert.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		run, err := runs.GetRun(context.Background(), 1)
		return err == nil && run != nil && run.Status == "failed"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetCollectionStatusNotFound(t *testing.T) {
	router := newTestRouter(newStubStore(), newStubRuns(), nil)

	w := doRequest(router, "GET", "/api/admin/collect/status/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, "GET", "/api/admin/collect/status/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
