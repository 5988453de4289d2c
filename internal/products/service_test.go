package products

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

type stubProductRepo struct {
	products map[uuid.UUID]*models.MasterProduct
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[uuid.UUID]*models.MasterProduct{}}
}

func (r *stubProductRepo) WithTx(tx *gorm.DB) Repository { return r }

func (r *stubProductRepo) Create(ctx context.Context, product *models.MasterProduct) (*models.MasterProduct, error) {
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = product
	return product, nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MasterProduct, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *stubProductRepo) FindBySKU(ctx context.Context, sku string) (*models.MasterProduct, error) {
	for _, product := range r.products {
		if product.SKU == sku {
			copied := *product
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.MasterProduct, error) {
	out := []models.MasterProduct{}
	for _, product := range r.products {
		if filters.Query != "" {
			needle := strings.ToLower(filters.Query)
			if !strings.Contains(strings.ToLower(product.SKU), needle) &&
				!strings.Contains(strings.ToLower(product.ProductName), needle) {
				continue
			}
		}
		if filters.Category != nil && product.Category != *filters.Category {
			continue
		}
		if filters.ProductType != nil && product.ProductType != *filters.ProductType {
			continue
		}
		out = append(out, *product)
	}
	return out, nil
}

func (r *stubProductRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	product, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "product_name":
			product.ProductName = value.(string)
		case "target_cost_per_unit":
			product.TargetCostPerUnit = value.(decimal.Decimal)
		case "category":
			product.Category = value.(string)
		case "product_type":
			product.ProductType = value.(enums.ProductType)
		}
	}
	return nil
}

func (r *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) UpsertBySKU(ctx context.Context, product *models.MasterProduct) (*models.MasterProduct, error) {
	for _, existing := range r.products {
		if existing.SKU == product.SKU {
			existing.ProductName = product.ProductName
			existing.TargetCostPerUnit = product.TargetCostPerUnit
			existing.Category = product.Category
			existing.ProductType = product.ProductType
			copied := *existing
			return &copied, nil
		}
	}
	return r.Create(ctx, product)
}

func newTestProductService(t *testing.T) (Service, *stubProductRepo) {
	t.Helper()
	repo := newStubProductRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestCreate_DuplicateSKUConflicts(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	input := CreateProductInput{
		SKU:               "CNS-001",
		ProductName:       "Game Console",
		TargetCostPerUnit: decimal.RequireFromString("45.00"),
		Category:          "Consoles",
		ProductType:       enums.ProductTypeConsole,
	}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{
			name: "missing sku",
			input: CreateProductInput{
				ProductName: "Game Console",
				ProductType: enums.ProductTypeConsole,
			},
		},
		{
			name: "missing name",
			input: CreateProductInput{
				SKU:         "CNS-001",
				ProductType: enums.ProductTypeConsole,
			},
		},
		{
			name: "unknown type",
			input: CreateProductInput{
				SKU:         "CNS-001",
				ProductName: "Game Console",
				ProductType: enums.ProductType("gadget"),
			},
		},
		{
			name: "negative target cost",
			input: CreateProductInput{
				SKU:               "CNS-001",
				ProductName:       "Game Console",
				ProductType:       enums.ProductTypeConsole,
				TargetCostPerUnit: decimal.RequireFromString("-1.00"),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestUpdate_ChangesTargetCost(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		SKU:               "GME-010",
		ProductName:       "Boxed Game",
		TargetCostPerUnit: decimal.RequireFromString("12.00"),
		Category:          "Games",
		ProductType:       enums.ProductTypeGame,
	})
	require.NoError(t, err)

	cost := decimal.RequireFromString("14.50")
	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{TargetCostPerUnit: &cost})
	require.NoError(t, err)
	assert.True(t, updated.TargetCostPerUnit.Equal(cost))
}

func TestUpdate_MissingProductNotFound(t *testing.T) {
	svc, _ := newTestProductService(t)

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateProductInput{ProductName: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestImportRow_UpsertsBySKU(t *testing.T) {
	svc, repo := newTestProductService(t)
	ctx := context.Background()

	first, err := svc.ImportRow(ctx, CreateProductInput{
		SKU:               "HND-001",
		ProductName:       "Handheld",
		TargetCostPerUnit: decimal.RequireFromString("30.00"),
		Category:          "Handhelds",
		ProductType:       enums.ProductTypeHandheld,
	})
	require.NoError(t, err)

	second, err := svc.ImportRow(ctx, CreateProductInput{
		SKU:               "HND-001",
		ProductName:       "Handheld v2",
		TargetCostPerUnit: decimal.RequireFromString("28.00"),
		Category:          "Handhelds",
		ProductType:       enums.ProductTypeHandheld,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Handheld v2", second.ProductName)
	assert.True(t, second.TargetCostPerUnit.Equal(decimal.RequireFromString("28.00")))
	assert.Len(t, repo.products, 1)
}

func TestList_FiltersByQueryAndType(t *testing.T) {
	svc, _ := newTestProductService(t)
	ctx := context.Background()

	seed := []CreateProductInput{
		{SKU: "CNS-001", ProductName: "Game Console", Category: "Consoles", ProductType: enums.ProductTypeConsole},
		{SKU: "GME-001", ProductName: "Boxed Game", Category: "Games", ProductType: enums.ProductTypeGame},
		{SKU: "ACC-001", ProductName: "Controller", Category: "Accessories", ProductType: enums.ProductTypeAccessory},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	matches, err := svc.List(ctx, pagination.Params{}, ListFilters{Query: "game"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	productType := enums.ProductTypeAccessory
	matches, err = svc.List(ctx, pagination.Params{}, ListFilters{ProductType: &productType})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ACC-001", matches[0].SKU)
}
