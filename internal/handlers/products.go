package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// SearchProductsRequest represents query parameters for product search
type SearchProductsRequest struct {
	Brand    string `form:"brand"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
	Page     int    `form:"page" binding:"min=0"`
	PerPage  int    `form:"per_page" binding:"min=0,max=100"`
}

// Pagination describes the page window of a search response
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

// SearchProductsResponse represents the product search response
type SearchProductsResponse struct {
	Success    bool             `json:"success"`
	Data       []*types.Product `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// parseBrandParam validates an optional brand query value. An empty value
// means all brands.
func parseBrandParam(c *gin.Context, value string) (types.BrandType, bool) {
	if value == "" {
		return "", true
	}
	brand, err := types.ParseBrand(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return "", false
	}
	return brand, true
}

// SearchProducts returns products matching the filter, sorted and paginated
// GET /api/products?brand=&category=&search=&sort=name&page=1&per_page=50
func (a *API) SearchProducts(c *gin.Context) {
	var req SearchProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	brand, ok := parseBrandParam(c, req.Brand)
	if !ok {
		return
	}

	// Set defaults
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 50
	}
	if req.Sort == "" {
		req.Sort = types.SortByName
	}

	filter := types.SearchFilter{
		Brand:      brand,
		Category:   req.Category,
		SearchTerm: req.Search,
	}

	products, total, err := a.Catalog.Search(c.Request.Context(), filter, req.Sort, req.Page, req.PerPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchProductsResponse{
		Success: true,
		Data:    products,
		Pagination: Pagination{
			Page:    req.Page,
			PerPage: req.PerPage,
			Total:   total,
		},
	})
}

// GetProduct returns a single product
// GET /api/products/:id
func (a *API) GetProduct(c *gin.Context) {
	product, err := a.Catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// GetFeaturedRequest represents query parameters for featured products
type GetFeaturedRequest struct {
	Brand string `form:"brand"`
	Limit int    `form:"limit" binding:"min=0,max=50"`
}

// GetFeatured returns products selected for homepage display
// GET /api/products/featured?brand=&limit=6
func (a *API) GetFeatured(c *gin.Context) {
	var req GetFeaturedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	brand, ok := parseBrandParam(c, req.Brand)
	if !ok {
		return
	}

	products, err := a.Catalog.GetFeatured(c.Request.Context(), brand, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetRelated returns products related to the given one
// GET /api/products/:id/related?brand=&limit=4
func (a *API) GetRelated(c *gin.Context) {
	var req GetFeaturedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	brand, ok := parseBrandParam(c, req.Brand)
	if !ok {
		return
	}

	products, err := a.Catalog.GetRelated(c.Request.Context(), c.Param("id"), brand, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetPriceHistoryRequest represents query parameters for price history
type GetPriceHistoryRequest struct {
	Days int `form:"days" binding:"min=0,max=365"`
}

// GetPriceHistory returns recent price observations, newest first
// GET /api/products/:id/history?days=30
func (a *API) GetPriceHistory(c *gin.Context) {
	var req GetPriceHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	history, err := a.Catalog.GetPriceHistory(c.Request.Context(), c.Param("id"), req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	if history == nil {
		history = []*types.PriceHistory{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

// UpdateStockRequest represents a stock level update
type UpdateStockRequest struct {
	StockLevel  int    `json:"stock_level" binding:"min=0"`
	StockStatus string `json:"stock_status,omitempty" binding:"omitempty,oneof=in_stock low_stock out_of_stock discontinued"`
}

// UpdateStock sets a product's stock level and derives the status unless
// one is given explicitly
// PATCH /api/products/:id/stock
func (a *API) UpdateStock(c *gin.Context) {
	var req UpdateStockRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	product, err := a.Catalog.UpdateStock(c.Request.Context(), c.Param("id"), req.StockLevel, types.StockStatus(req.StockStatus))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// UpdatePriceRequest represents a price update
type UpdatePriceRequest struct {
	Price  float64 `json:"price" binding:"min=0"`
	Source *string `json:"source,omitempty"`
}

// UpdatePrice sets a product's price, recording a history entry when it
// changed
// PATCH /api/products/:id/price
func (a *API) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	product, err := a.Catalog.UpdatePrice(c.Request.Context(), c.Param("id"), req.Price, req.Source)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}
