package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// GetStatistics returns aggregate catalog statistics, optionally per brand
// GET /api/statistics?brand=
func (a *API) GetStatistics(c *gin.Context) {
	brand, ok := parseBrandParam(c, c.Query("brand"))
	if !ok {
		return
	}

	stats, err := a.Catalog.GetStatistics(c.Request.Context(), brand)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// GetLowStockRequest represents query parameters for the low stock report
type GetLowStockRequest struct {
	Threshold int `form:"threshold" binding:"min=0,max=1000"`
}

// GetLowStock returns products at or below the stock threshold, excluding
// ones already out of stock
// GET /api/products/low-stock?threshold=5
func (a *API) GetLowStock(c *gin.Context) {
	var req GetLowStockRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	products, err := a.Catalog.GetLowStock(c.Request.Context(), req.Threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []*types.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetPriceDropsRequest represents query parameters for the price drop report
type GetPriceDropsRequest struct {
	Days int `form:"days" binding:"min=0,max=365"`
}

// GetPriceDrops returns products whose price decreased within the window
// GET /api/products/price-drops?days=7
func (a *API) GetPriceDrops(c *gin.Context) {
	var req GetPriceDropsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	products, err := a.Catalog.GetPriceDrops(c.Request.Context(), req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	if products == nil {
		products = []*types.Product{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}
