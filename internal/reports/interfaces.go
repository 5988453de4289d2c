package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// Repository exposes the read-only queries behind the reporting endpoints.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListOrdersWithItems(ctx context.Context) ([]models.SourcingOrder, error)
	ListSourcerOrders(ctx context.Context, sourcerID uuid.UUID) ([]models.SourcingOrder, error)
	TargetCostsBySKU(ctx context.Context, skus []string) (map[string]decimal.Decimal, error)
	EmailsByUserID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	CountByPurchaser(ctx context.Context, purchaserID uuid.UUID) (int64, error)
	CountByPurchaserTracking(ctx context.Context, purchaserID uuid.UUID, tracking enums.TrackingStatus) (int64, error)
	CountByPurchaserStatus(ctx context.Context, purchaserID uuid.UUID, status enums.OrderStatus) (int64, error)
}
