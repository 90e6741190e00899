package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateStockAlertRequest represents a stock alert creation request
type CreateStockAlertRequest struct {
	ProductID   string   `json:"product_id" binding:"required"`
	AlertType   string   `json:"alert_type" binding:"required,oneof=low_stock back_in_stock price_drop"`
	Threshold   *int     `json:"threshold,omitempty"`
	TargetPrice *float64 `json:"target_price,omitempty"`
}

// CreateStockAlert records a watch condition on a product
// POST /api/stock-alerts
func (a *API) CreateStockAlert(c *gin.Context) {
	var req CreateStockAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	alert, err := a.Catalog.CreateStockAlert(c.Request.Context(), req.ProductID, req.AlertType, req.Threshold, req.TargetPrice)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": alert})
}
