package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aistocktrack/catalog-service/internal/catalog"
	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/types"
)

var statsBrand string

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Print aggregate catalog statistics: product counts by stock status,
average price, and the known categories. Use --brand to scope the report
to one brand.`,
	Example: `  catalog-service stats
  catalog-service stats --brand pokemon`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsBrand, "brand", "", "Scope statistics to one brand (pop_mart, pokemon)")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var brand types.BrandType
	if statsBrand != "" {
		var err error
		brand, err = types.ParseBrand(statsBrand)
		if err != nil {
			return err
		}
	}

	store := database.NewProductStore(database.Pool())
	service := catalog.NewService(store)

	stats, err := service.GetStatistics(ctx, brand)
	if err != nil {
		return err
	}

	scope := "all brands"
	if brand != "" {
		scope = string(brand)
	}
	fmt.Printf("Catalog statistics (%s)\n\n", scope)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintln(w, "------\t-----")
	fmt.Fprintf(w, "Total products\t%d\n", stats.TotalProducts)
	fmt.Fprintf(w, "In stock\t%d\n", stats.InStock)
	fmt.Fprintf(w, "Low stock\t%d\n", stats.LowStock)
	fmt.Fprintf(w, "Out of stock\t%d\n", stats.OutOfStock)
	fmt.Fprintf(w, "Discontinued\t%d\n", stats.Discontinued)
	fmt.Fprintf(w, "Average price\t%.2f\n", stats.AveragePrice)
	fmt.Fprintf(w, "Categories\t%s\n", strings.Join(stats.Categories, ", "))
	w.Flush()

	return nil
}
