package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// MasterProduct is an immutable catalog entry keyed by SKU. Item fields are
// defaulted from the catalog row matching their SKU.
type MasterProduct struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU               string            `gorm:"column:sku;type:text;not null;uniqueIndex"`
	ProductName       string            `gorm:"column:product_name;not null;index"`
	TargetCostPerUnit decimal.Decimal   `gorm:"column:target_cost_per_unit;type:numeric(10,2);not null;default:0"`
	Category          string            `gorm:"column:category;not null"`
	ProductType       enums.ProductType `gorm:"column:product_type;type:text;not null"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
