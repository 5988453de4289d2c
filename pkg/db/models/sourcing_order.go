package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// SourcingOrder is one purchase request tracked end-to-end, from listing
// discovery to fulfillment. TargetTotal, SourcedPrice, and Savings are derived
// from the item set unless IsManualOverride is set, in which case they are
// frozen at their caller-supplied values.
type SourcingOrder struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerName  *string       `gorm:"column:seller_name"`
	ListingLink *string       `gorm:"column:listing_link"`
	Market      *enums.Market `gorm:"column:market;type:text"`
	Origin      *string       `gorm:"column:origin"`

	SellersPrice  decimal.Decimal `gorm:"column:sellers_price;type:numeric(10,2);not null;default:0"`
	ShippingPrice decimal.Decimal `gorm:"column:shipping_price;type:numeric(10,2);not null;default:0"`
	Tax           decimal.Decimal `gorm:"column:tax;type:numeric(10,2);not null;default:0"`

	Status               enums.OrderStatus           `gorm:"column:status;type:text;not null;default:'Pending';index"`
	MarketOrderNum       *string                     `gorm:"column:market_order_num"`
	PurchaseLink         *string                     `gorm:"column:purchase_link"`
	DestinationWarehouse *enums.DestinationWarehouse `gorm:"column:destination_warehouse;type:text"`
	TrackingStatus       *enums.TrackingStatus       `gorm:"column:tracking_status;type:text"`
	Carrier              *enums.Carrier              `gorm:"column:carrier;type:text"`
	TrackingID           *string                     `gorm:"column:tracking_id"`
	TrackingLink         *string                     `gorm:"column:tracking_link"`

	SourcerID   uuid.UUID  `gorm:"column:sourcer_id;type:uuid;not null;index"`
	PurchaserID *uuid.UUID `gorm:"column:purchaser_id;type:uuid;index"`

	TargetTotal      decimal.Decimal `gorm:"column:target_total;type:numeric(10,2);not null;default:0"`
	SourcedPrice     decimal.Decimal `gorm:"column:sourced_price;type:numeric(10,2);not null;default:0"`
	Savings          decimal.Decimal `gorm:"column:savings;type:numeric(10,2);not null;default:0"`
	IsManualOverride bool            `gorm:"column:is_manual_override;not null;default:false"`

	CreatedAt           time.Time  `gorm:"column:created_at;autoCreateTime"`
	AssignedAt          *time.Time `gorm:"column:assigned_at"`
	PurchaserActionTime *time.Time `gorm:"column:purchaser_action_time"`
	FinalizedAt         *time.Time `gorm:"column:finalized_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Items []SourcingItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
