package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/types"
)

var simulateCount int

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate stock and price changes for testing",
	Long: `Apply random stock level and small price fluctuations to a handful of
products. Changed prices get a price history entry. Useful for
demonstrating price drop detection and stock alerts in development.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().IntVar(&simulateCount, "count", 3, "Number of products to perturb")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	store := database.NewProductStore(database.Pool())

	products, err := store.ListProducts(ctx, types.ListFilter{}, simulateCount)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog is empty, run seed first")
	}

	source := "Simulated Update"
	for _, p := range products {
		// Stock fluctuation between -5 and +10
		newLevel := p.StockLevel + rand.Intn(16) - 5
		if newLevel < 0 {
			newLevel = 0
		}

		// Small price fluctuation, floored at 0.99
		newPrice := p.Price + (rand.Float64()*4 - 2)
		if newPrice < 0.99 {
			newPrice = 0.99
		}

		if newPrice != p.Price {
			if err := store.AppendPriceHistory(ctx, &types.PriceHistory{
				ProductID: p.ID,
				Price:     newPrice,
				Timestamp: time.Now(),
				Source:    &source,
			}); err != nil {
				return err
			}
			p.Price = newPrice
		}

		p.StockLevel = newLevel
		if p.StockStatus != types.StockDiscontinued {
			p.StockStatus = types.DeriveStockStatus(newLevel)
		}
		p.LastUpdated = time.Now()

		if err := store.UpsertProduct(ctx, p); err != nil {
			return err
		}

		logger.Info().
			Str("id", p.ID).
			Int("stock", p.StockLevel).
			Float64("price", p.Price).
			Str("status", string(p.StockStatus)).
			Msg("Simulated update")
	}

	logger.Info().Int("count", len(products)).Msg("Simulation completed")
	return nil
}
