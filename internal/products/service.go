package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db"
	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

// Service defines the behavior needed by the products controller and the
// catalog import command.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.MasterProduct, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MasterProduct, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.MasterProduct, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.MasterProduct, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ImportRow(ctx context.Context, input CreateProductInput) (*models.MasterProduct, error)
}

type service struct {
	repo Repository
}

// NewService constructs a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.MasterProduct, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.MasterProduct, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.MasterProduct, error) {
	products, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return products, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.MasterProduct, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.ProductName != nil {
		name := strings.TrimSpace(*input.ProductName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name cannot be empty")
		}
		updates["product_name"] = name
	}
	if input.TargetCostPerUnit != nil {
		if input.TargetCostPerUnit.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "target_cost_per_unit cannot be negative")
		}
		updates["target_cost_per_unit"] = input.TargetCostPerUnit.RoundBank(2)
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.ProductType != nil {
		if !input.ProductType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product_type")
		}
		updates["product_type"] = *input.ProductType
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// ImportRow inserts or refreshes a catalog entry keyed by SKU. Existing rows
// keep their id so sourcing items pointing at them stay linked.
func (s *service) ImportRow(ctx context.Context, input CreateProductInput) (*models.MasterProduct, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}
	upserted, err := s.repo.UpsertBySKU(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert product")
	}
	return upserted, nil
}

func buildProduct(input CreateProductInput) (*models.MasterProduct, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	name := strings.TrimSpace(input.ProductName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product_name is required")
	}
	if !input.ProductType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product_type")
	}
	if input.TargetCostPerUnit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target_cost_per_unit cannot be negative")
	}
	return &models.MasterProduct{
		SKU:               sku,
		ProductName:       name,
		TargetCostPerUnit: input.TargetCostPerUnit.RoundBank(2),
		Category:          strings.TrimSpace(input.Category),
		ProductType:       input.ProductType,
	}, nil
}
