package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/types"
)

var (
	exportOutput string
	exportBrand  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to an XLSX file",
	Long: `Write the current product catalog to an XLSX workbook, one row per
product. Use --brand to export only one brand's products.`,
	Example: `  catalog-service export --out catalog.xlsx
  catalog-service export --out popmart.xlsx --brand pop_mart`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOutput, "out", "catalog.xlsx", "Output file path")
	exportCmd.Flags().StringVar(&exportBrand, "brand", "", "Export only this brand (pop_mart, pokemon)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var brand types.BrandType
	if exportBrand != "" {
		var err error
		brand, err = types.ParseBrand(exportBrand)
		if err != nil {
			return err
		}
	}

	store := database.NewProductStore(database.Pool())
	products, err := store.ListProducts(ctx, types.ListFilter{Brand: brand}, 0)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Products"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Brand", "Source", "Price", "Original Price", "Stock Level", "Stock Status", "Category", "Tags", "Purchase Link", "Last Updated"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, p := range products {
		values := []interface{}{
			p.ID, p.Name, string(p.Brand), p.Source, p.Price,
			derefFloat(p.OriginalPrice), p.StockLevel, string(p.StockStatus),
			derefString(p.Category), strings.Join(p.Tags, ","),
			p.PurchaseLink, p.LastUpdated.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(exportOutput); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}

	logger.Info().Str("file", exportOutput).Int("products", len(products)).Msg("Export completed")
	return nil
}

func derefFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
