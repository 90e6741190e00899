package brand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aistocktrack/catalog-service/internal/types"
)

func TestGetKnownBrands(t *testing.T) {
	popMart := Get(types.BrandPopMart)
	assert.Equal(t, types.BrandPopMart, popMart.BrandType)
	assert.Equal(t, "Pop Mart Tracker", popMart.DisplayName)
	assert.Equal(t, "figure", popMart.ProductTerm)
	assert.Equal(t, 4, popMart.GridColumns)

	pokemon := Get(types.BrandPokemon)
	assert.Equal(t, types.BrandPokemon, pokemon.BrandType)
	assert.Equal(t, "card", pokemon.ProductTerm)
	assert.Equal(t, 3, pokemon.GridColumns)
}

func TestGetUnknownBrandFallsBack(t *testing.T) {
	cfg := Get(types.BrandType("lego"))
	assert.Equal(t, types.BrandPopMart, cfg.BrandType)
}

func TestAllCoversEveryBrand(t *testing.T) {
	all := All()
	assert.Len(t, all, len(types.Brands()))
	for _, bt := range types.Brands() {
		cfg, ok := all[bt]
		assert.True(t, ok, "missing config for %s", bt)
		assert.NotEmpty(t, cfg.DisplayName)
		assert.NotEmpty(t, cfg.Tagline)
		assert.NotEmpty(t, cfg.Colors.Primary)
		assert.NotEmpty(t, cfg.Typography.FontFamilyPrimary)
		assert.NotEmpty(t, cfg.Assets.LogoURL)
	}
}
