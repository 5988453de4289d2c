package reports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListOrdersWithItems(ctx context.Context) ([]models.SourcingOrder, error) {
	var orders []models.SourcingOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListSourcerOrders(ctx context.Context, sourcerID uuid.UUID) ([]models.SourcingOrder, error) {
	var orders []models.SourcingOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sourcer_id = ?", sourcerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) TargetCostsBySKU(ctx context.Context, skus []string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	if len(skus) == 0 {
		return out, nil
	}

	type row struct {
		SKU               string
		TargetCostPerUnit decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.MasterProduct{}).
		Select("sku", "target_cost_per_unit").
		Where("sku IN ?", skus).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, entry := range rows {
		out[entry.SKU] = entry.TargetCostPerUnit
	}
	return out, nil
}

func (r *repository) EmailsByUserID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := map[uuid.UUID]string{}
	if len(ids) == 0 {
		return out, nil
	}

	type row struct {
		ID    uuid.UUID
		Email string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "email").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, entry := range rows {
		out[entry.ID] = entry.Email
	}
	return out, nil
}

func (r *repository) CountByPurchaser(ctx context.Context, purchaserID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SourcingOrder{}).
		Where("purchaser_id = ?", purchaserID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByPurchaserTracking(ctx context.Context, purchaserID uuid.UUID, tracking enums.TrackingStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SourcingOrder{}).
		Where("purchaser_id = ? AND tracking_status = ?", purchaserID, tracking).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByPurchaserStatus(ctx context.Context, purchaserID uuid.UUID, status enums.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SourcingOrder{}).
		Where("purchaser_id = ? AND status = ?", purchaserID, status).
		Count(&count).Error
	return count, err
}
