package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aistocktrack/catalog-service/internal/collectors"
	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/types"
)

var (
	collectSources []string
	collectFeed    string
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection pass across configured sources",
	Long: `Fetch current product data from the configured retailer sources, merge
it into the catalog, and record price history for changed prices. Each
source runs in isolation; a failing source never aborts the run.`,
	Example: `  catalog-service collect
  catalog-service collect --source popmart
  catalog-service collect --feed ./data/products.xlsx`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringSliceVar(&collectSources, "source", nil, "Source slugs to collect from (defaults to configured sources)")
	collectCmd.Flags().StringVar(&collectFeed, "feed", "", "Path to an XLSX product feed to collect in addition")
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	sources := collectSources
	if len(sources) == 0 {
		sources = cfg.Collection.Sources
	}
	feedPath := collectFeed
	if feedPath == "" {
		feedPath = cfg.Collection.FeedPath
	}

	feedBrand, err := types.ParseBrand(cfg.Collection.FeedBrand)
	if err != nil {
		return fmt.Errorf("invalid feed brand: %w", err)
	}

	set, err := collectors.BuildFromConfig(sources, feedPath, feedBrand)
	if err != nil {
		return err
	}
	if len(set) == 0 {
		return fmt.Errorf("no collection sources configured")
	}

	store := database.NewProductStore(database.Pool())
	manager := collectors.NewManager(store, *logger, set...)

	runID, err := store.CreateRun(ctx, "cli")
	if err != nil {
		return err
	}

	logger.Info().Int64("runID", runID).Int("sources", len(set)).Msg("Starting collection")
	summary := manager.Run(ctx)

	metadata, merr := json.Marshal(summary)
	if merr != nil {
		metadata = []byte("{}")
	}

	if summary.Succeeded() {
		err = store.MarkRunCompleted(ctx, runID, summary.TotalProducts, 0, string(metadata))
	} else if summary.TotalProducts > 0 {
		err = store.MarkRunCompleted(ctx, runID, summary.TotalProducts, len(summary.Errors), string(metadata))
	} else {
		err = store.MarkRunFailed(ctx, runID, strings.Join(summary.Errors, "; "))
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to record run outcome")
	}

	displayCollectResults(summary)

	if !summary.Succeeded() {
		return fmt.Errorf("some sources failed")
	}
	return nil
}

func displayCollectResults(summary *types.RunSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tSTATUS\tPRODUCTS\tPRICE CHANGES\tERROR")
	fmt.Fprintln(w, "------\t------\t--------\t-------------\t-----")

	for slug, result := range summary.Sources {
		status := "SUCCESS"
		if !result.Success {
			status = "FAILED"
		}
		errMsg := result.Error
		if errMsg == "" {
			errMsg = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", slug, status, result.ProductsCollected, result.PriceChanges, errMsg)
	}

	fmt.Fprintln(w, "------\t------\t--------\t-------------\t-----")
	fmt.Fprintf(w, "TOTAL\t\t%d\t%d\t\n", summary.TotalProducts, summary.PriceChanges)
	w.Flush()
}
