package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// SourcingItem is one SKU line within a sourcing order. Catalog attributes are
// denormalized onto the row at create time and refreshed when the SKU changes.
type SourcingItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`

	UID            *string           `gorm:"column:uid"`
	ProductName    string            `gorm:"column:product_name;not null"`
	SKU            string            `gorm:"column:sku;not null;index"`
	QuantityNeeded int               `gorm:"column:quantity_needed;not null;default:1"`
	ProductType    enums.ProductType `gorm:"column:product_type;type:text;not null"`
	Category       string            `gorm:"column:category;not null"`
	SourcerRemarks *string           `gorm:"column:sourcer_remarks"`

	TargetCostPerUnit decimal.Decimal `gorm:"column:target_cost_per_unit;type:numeric(10,2);not null;default:0"`
	SourcedPrice      decimal.Decimal `gorm:"column:sourced_price;type:numeric(10,2);not null;default:0"`
	ShippingCharges   decimal.Decimal `gorm:"column:shipping_charges;type:numeric(10,2);not null;default:0"`
	Tax               decimal.Decimal `gorm:"column:tax;type:numeric(10,2);not null;default:0"`

	ItemTargetTotal decimal.Decimal `gorm:"column:item_target_total;type:numeric(10,2);not null;default:0"`
	SKUEfficiency   decimal.Decimal `gorm:"column:sku_efficiency;type:numeric(10,2);not null;default:0"`

	TypeCode     *string          `gorm:"column:type_code"`
	BrandCode    *string          `gorm:"column:brand_code"`
	ModelCode    *string          `gorm:"column:model_code"`
	AbbrCode     *string          `gorm:"column:abbr_code"`
	ColorCode    *string          `gorm:"column:color_code"`
	CndCode      *string          `gorm:"column:cnd_code"`
	RegularPrice *decimal.Decimal `gorm:"column:regular_price;type:numeric(10,2)"`
	Price        *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`

	Tested           bool                    `gorm:"column:tested;not null;default:false"`
	ProductCondition *enums.ProductCondition `gorm:"column:product_condition;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
