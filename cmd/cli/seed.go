package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/types"
)

var seedForce bool

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the catalog with sample products",
	Long: `Insert a small set of sample Pop Mart and Pokémon products together with
example price history. Intended for development and demos; does nothing
when the catalog already holds products unless --force is given.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even when the catalog is not empty")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store := database.NewProductStore(database.Pool())

	if !seedForce {
		total, err := store.CountProducts(ctx, types.SearchFilter{})
		if err != nil {
			return err
		}
		if total > 0 {
			logger.Info().Int("existing", total).Msg("Catalog already populated, skipping seed (use --force to override)")
			return nil
		}
	}

	now := time.Now()
	products := sampleProducts(now)
	for _, p := range products {
		if err := store.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	for _, h := range sampleHistory(now) {
		if err := store.AppendPriceHistory(ctx, h); err != nil {
			return fmt.Errorf("failed to seed history for %s: %w", h.ProductID, err)
		}
	}

	logger.Info().Int("products", len(products)).Msg("Seed completed")
	return nil
}

func sampleProducts(now time.Time) []*types.Product {
	return []*types.Product{
		{
			ID:            "pm_001",
			Name:          "SKULLPANDA The Sound Series",
			Brand:         types.BrandPopMart,
			Source:        "Pop Mart Official",
			PurchaseLink:  "https://www.popmart.com/skullpanda-sound",
			Price:         12.99,
			OriginalPrice: ptr(14.99),
			StockLevel:    25,
			StockStatus:   types.StockInStock,
			ImageURL:      "/static/images/skullpanda-sound.jpg",
			Description:   ptr("Limited edition SKULLPANDA figure with sound effects"),
			Category:      ptr("blind_box"),
			Tags:          []string{"limited", "sound", "skull"},
			LastUpdated:   now,
		},
		{
			ID:           "pm_002",
			Name:         "Molly Chess Club Series",
			Brand:        types.BrandPopMart,
			Source:       "Pop Mart Official",
			PurchaseLink: "https://www.popmart.com/molly-chess",
			Price:        13.50,
			StockLevel:   3,
			StockStatus:  types.StockLowStock,
			ImageURL:     "/static/images/molly-chess.jpg",
			Description:  ptr("Molly figure in chess-themed outfit"),
			Category:     ptr("blind_box"),
			Tags:         []string{"molly", "chess", "classic"},
			LastUpdated:  now,
		},
		{
			ID:           "pm_003",
			Name:         "HIRONO Little Matchgirl Series",
			Brand:        types.BrandPopMart,
			Source:       "Pop Mart Official",
			PurchaseLink: "https://www.popmart.com/hirono-matchgirl",
			Price:        15.99,
			StockLevel:   0,
			StockStatus:  types.StockOutOfStock,
			ImageURL:     "/static/images/hirono-matchgirl.jpg",
			Description:  ptr("Emotional storytelling figure series"),
			Category:     ptr("blind_box"),
			Tags:         []string{"hirono", "story", "emotional"},
			LastUpdated:  now,
		},
		{
			ID:           "pk_001",
			Name:         "Pokémon TCG Scarlet & Violet Booster Pack",
			Brand:        types.BrandPokemon,
			Source:       "Pokémon Center",
			PurchaseLink: "https://www.pokemoncenter.com/sv-booster",
			Price:        4.99,
			StockLevel:   150,
			StockStatus:  types.StockInStock,
			ImageURL:     "/static/images/sv-booster.jpg",
			Description:  ptr("Latest Scarlet & Violet series booster pack"),
			Category:     ptr("booster"),
			Tags:         []string{"scarlet", "violet", "booster"},
			LastUpdated:  now,
		},
		{
			ID:            "pk_002",
			Name:          "Charizard ex Premium Collection",
			Brand:         types.BrandPokemon,
			Source:        "Pokémon Center",
			PurchaseLink:  "https://www.pokemoncenter.com/charizard-premium",
			Price:         79.99,
			OriginalPrice: ptr(89.99),
			StockLevel:    8,
			StockStatus:   types.StockLowStock,
			ImageURL:      "/static/images/charizard-premium.jpg",
			Description:   ptr("Premium collection featuring Charizard ex card"),
			Category:      ptr("box"),
			Tags:          []string{"charizard", "premium", "ex"},
			LastUpdated:   now,
		},
		{
			ID:           "pk_003",
			Name:         "Professor's Research Theme Deck",
			Brand:        types.BrandPokemon,
			Source:       "Local Game Store",
			PurchaseLink: "https://example.com/professor-deck",
			Price:        19.99,
			StockLevel:   45,
			StockStatus:  types.StockInStock,
			ImageURL:     "/static/images/professor-deck.jpg",
			Description:  ptr("Ready-to-play theme deck for beginners"),
			Category:     ptr("deck"),
			Tags:         []string{"theme", "beginner", "professor"},
			LastUpdated:  now,
		},
	}
}

func sampleHistory(now time.Time) []*types.PriceHistory {
	return []*types.PriceHistory{
		{ProductID: "pm_001", Price: 14.99, Timestamp: now.AddDate(0, 0, -14)},
		{ProductID: "pm_001", Price: 13.99, Timestamp: now.AddDate(0, 0, -7)},
		{ProductID: "pm_001", Price: 12.99, Timestamp: now},
		{ProductID: "pk_002", Price: 89.99, Timestamp: now.AddDate(0, 0, -14)},
		{ProductID: "pk_002", Price: 84.99, Timestamp: now.AddDate(0, 0, -7)},
		{ProductID: "pk_002", Price: 79.99, Timestamp: now},
	}
}

func ptr[T any](v T) *T {
	return &v
}
