package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/internal/products"
	"github.com/retroventures/sourcehub-backend/pkg/config"
	"github.com/retroventures/sourcehub-backend/pkg/db"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	"github.com/retroventures/sourcehub-backend/pkg/logger"
)

// Loads a master catalog CSV into the database. Rows are upserted by SKU so
// re-running the import refreshes target costs without breaking item links.
//
// Expected columns: sku, product_name, target_cost_per_unit, category, product_type.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "import-products"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to the catalog csv")
	flag.Parse()
	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "import-products",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	svc, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create products service", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		logg.Error(ctx, "failed to open csv", err)
		os.Exit(1)
	}
	defer f.Close()

	imported, skipped, err := importCatalog(ctx, svc, f, logg)
	if err != nil {
		logg.Error(ctx, "import aborted", err)
		os.Exit(1)
	}
	fmt.Printf("imported %d products (%d rows skipped)\n", imported, skipped)
}

func importCatalog(ctx context.Context, svc products.Service, r io.Reader, logg *logger.Logger) (int, int, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("reading header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return 0, 0, err
	}

	imported, skipped := 0, 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("reading line %d: %w", line, err)
		}

		input, err := rowToInput(record, cols)
		if err != nil {
			logg.Warn(logg.WithFields(ctx, map[string]any{"line": line}), "skipping row: "+err.Error())
			skipped++
			continue
		}
		if _, err := svc.ImportRow(ctx, input); err != nil {
			return imported, skipped, fmt.Errorf("importing line %d (sku %s): %w", line, input.SKU, err)
		}
		imported++
	}
	return imported, skipped, nil
}

var requiredColumns = []string{"sku", "product_name", "target_cost_per_unit", "category", "product_type"}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv is missing the %q column", name)
		}
	}
	return cols, nil
}

func rowToInput(record []string, cols map[string]int) (products.CreateProductInput, error) {
	field := func(name string) string {
		idx := cols[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	cost, err := decimal.NewFromString(field("target_cost_per_unit"))
	if err != nil {
		return products.CreateProductInput{}, fmt.Errorf("bad target_cost_per_unit: %w", err)
	}
	productType, err := enums.ParseProductType(field("product_type"))
	if err != nil {
		return products.CreateProductInput{}, err
	}
	return products.CreateProductInput{
		SKU:               field("sku"),
		ProductName:       field("product_name"),
		TargetCostPerUnit: cost,
		Category:          field("category"),
		ProductType:       productType,
	}, nil
}
