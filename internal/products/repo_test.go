package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS master_products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  product_name TEXT NOT NULL,
  target_cost_per_unit NUMERIC NOT NULL DEFAULT 0,
  category TEXT NOT NULL,
  product_type TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name, category string, productType enums.ProductType) models.MasterProduct {
	t.Helper()
	product := models.MasterProduct{
		ID:                uuid.New(),
		SKU:               sku,
		ProductName:       name,
		TargetCostPerUnit: decimal.RequireFromString("10.00"),
		Category:          category,
		ProductType:       productType,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestRepository_ListSearchesSKUAndName(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "CNS-001", "Game Console", "Consoles", enums.ProductTypeConsole)
	seedProduct(t, db, "GME-001", "Boxed Game", "Games", enums.ProductTypeGame)
	seedProduct(t, db, "ACC-001", "Controller", "Accessories", enums.ProductTypeAccessory)

	matches, err := repo.List(ctx, pagination.Params{}, ListFilters{Query: "game"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.List(ctx, pagination.Params{}, ListFilters{Query: "acc-0"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ACC-001", matches[0].SKU)

	category := "Games"
	matches, err = repo.List(ctx, pagination.Params{}, ListFilters{Category: &category})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "GME-001", matches[0].SKU)
}

func TestRepository_UpsertBySKUKeepsID(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	original := seedProduct(t, db, "HND-001", "Handheld", "Handhelds", enums.ProductTypeHandheld)

	upserted, err := repo.UpsertBySKU(ctx, &models.MasterProduct{
		ID:                uuid.New(),
		SKU:               "HND-001",
		ProductName:       "Handheld v2",
		TargetCostPerUnit: decimal.RequireFromString("28.00"),
		Category:          "Handhelds",
		ProductType:       enums.ProductTypeHandheld,
	})
	require.NoError(t, err)

	assert.Equal(t, original.ID, upserted.ID)
	assert.Equal(t, "Handheld v2", upserted.ProductName)
	assert.True(t, upserted.TargetCostPerUnit.Equal(decimal.RequireFromString("28.00")))

	var count int64
	require.NoError(t, db.Model(&models.MasterProduct{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
