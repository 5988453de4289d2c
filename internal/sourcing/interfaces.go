package sourcing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

// AssignedFilters narrows a purchaser's assigned-order listing.
type AssignedFilters struct {
	Status      *enums.OrderStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Repository defines persistence operations for sourcing orders and items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.SourcingOrder) (*models.SourcingOrder, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*models.SourcingOrder, error)
	FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.SourcingOrder, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListPending(ctx context.Context, params pagination.Params) ([]models.SourcingOrder, error)
	ListAssigned(ctx context.Context, purchaserID uuid.UUID, params pagination.Params, filters AssignedFilters) ([]models.SourcingOrder, error)

	CreateItems(ctx context.Context, items []models.SourcingItem) error
	FindItem(ctx context.Context, id uuid.UUID) (*models.SourcingItem, error)
	FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.SourcingItem, error)
	UpdateItem(ctx context.Context, item *models.SourcingItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	FindProductBySKU(ctx context.Context, sku string) (*models.MasterProduct, error)
}
