package collectors

import (
	"context"
	"time"

	"github.com/aistocktrack/catalog-service/internal/types"
)

// SlugPokemon is the source slug of the Pokémon card collector
const SlugPokemon = "pokemon"

// PokemonCollector simulates collection of Pokémon trading card products
// from multiple retailers
type PokemonCollector struct{}

// NewPokemonCollector creates the Pokémon collector
func NewPokemonCollector() *PokemonCollector {
	return &PokemonCollector{}
}

func (c *PokemonCollector) Slug() string           { return SlugPokemon }
func (c *PokemonCollector) Name() string           { return "Pokémon Retailers" }
func (c *PokemonCollector) Brand() types.BrandType { return types.BrandPokemon }

// Collect returns the current batch of Pokémon candidate products
func (c *PokemonCollector) Collect(ctx context.Context) ([]*types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := time.Now()
	boxOriginal := 159.99

	products := []*types.Product{
		{
			ID:            "pk_004",
			Name:          "Pokémon TCG Paldea Evolved Booster Box",
			Brand:         types.BrandPokemon,
			Source:        "TCG Player",
			PurchaseLink:  "https://www.tcgplayer.com/paldea-evolved-box",
			Price:         144.99,
			OriginalPrice: &boxOriginal,
			StockLevel:    12,
			ImageURL:      "/static/images/paldea-evolved-box.jpg",
			Description:   ptr("36 booster packs of Paldea Evolved"),
			Category:      ptr("box"),
			Tags:          []string{"paldea", "evolved", "booster", "box"},
			LastUpdated:   now,
		},
		{
			ID:           "pk_005",
			Name:         "Pikachu VMAX Premium Collection",
			Brand:        types.BrandPokemon,
			Source:       "Pokémon Center",
			PurchaseLink: "https://www.pokemoncenter.com/pikachu-vmax",
			Price:        49.99,
			StockLevel:   3,
			ImageURL:     "/static/images/pikachu-vmax.jpg",
			Description:  ptr("Special collection featuring Pikachu VMAX"),
			Category:     ptr("tin"),
			Tags:         []string{"pikachu", "vmax", "premium"},
			LastUpdated:  now,
		},
		{
			ID:           "pk_006",
			Name:         "Scarlet & Violet Elite Trainer Box",
			Brand:        types.BrandPokemon,
			Source:       "Amazon",
			PurchaseLink: "https://amazon.com/sv-elite-trainer",
			Price:        39.99,
			StockLevel:   28,
			ImageURL:     "/static/images/sv-elite-trainer.jpg",
			Description:  ptr("Complete training package with accessories"),
			Category:     ptr("box"),
			Tags:         []string{"scarlet", "violet", "elite", "trainer"},
			LastUpdated:  now,
		},
	}

	for _, p := range products {
		p.StockStatus = types.DeriveStockStatus(p.StockLevel)
	}
	return products, nil
}
