package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aistocktrack/catalog-service/internal/brand"
	"github.com/aistocktrack/catalog-service/internal/types"
)

// BrandInfo is the per-brand summary returned by the brands endpoint
type BrandInfo struct {
	DisplayName string `json:"display_name"`
	Tagline     string `json:"tagline"`
	ProductTerm string `json:"product_term"`
}

// GetBrands returns the supported brands and their display configuration
// GET /api/brands
func (a *API) GetBrands(c *gin.Context) {
	brands := make(map[string]BrandInfo, len(types.Brands()))
	for _, bt := range types.Brands() {
		cfg := brand.Get(bt)
		brands[string(bt)] = BrandInfo{
			DisplayName: cfg.DisplayName,
			Tagline:     cfg.Tagline,
			ProductTerm: cfg.ProductTerm,
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": brands})
}

// GetCategories returns the known categories, optionally scoped to a brand
// GET /api/categories?brand=
func (a *API) GetCategories(c *gin.Context) {
	brandParam, ok := parseBrandParam(c, c.Query("brand"))
	if !ok {
		return
	}

	categories, err := a.Catalog.Categories(c.Request.Context(), brandParam)
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}
