package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

// Repository exposes master catalog persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, product *models.MasterProduct) (*models.MasterProduct, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MasterProduct, error)
	FindBySKU(ctx context.Context, sku string) (*models.MasterProduct, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.MasterProduct, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertBySKU(ctx context.Context, product *models.MasterProduct) (*models.MasterProduct, error)
}
