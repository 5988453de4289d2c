package sourcing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// quantize clips a supplied money value to cent precision. Inputs enter at
// two decimal places, so every derived total keeps savings equal to
// target_total minus sourced_price without rounding drift.
func quantize(d *decimal.Decimal) {
	if d != nil {
		*d = d.RoundBank(2)
	}
}

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role enums.UserRole
}

// ItemSpec describes one item line supplied on order creation or item add.
// Catalog attributes are defaulted from the MasterProduct matching the SKU
// when one exists.
type ItemSpec struct {
	SKU               string
	ProductName       *string
	QuantityNeeded    int
	TargetCostPerUnit *decimal.Decimal
	SourcedPrice      *decimal.Decimal
	ShippingCharges   *decimal.Decimal
	Tax               *decimal.Decimal
	UID               *string
	SourcerRemarks    *string
	Tested            *bool
	ProductCondition  *enums.ProductCondition
}

func (s *ItemSpec) normalize() {
	quantize(s.TargetCostPerUnit)
	quantize(s.SourcedPrice)
	quantize(s.ShippingCharges)
	quantize(s.Tax)
}

// CreateOrderInput captures a new sourcing request with its initial items.
type CreateOrderInput struct {
	Actor Actor

	SellerName  *string
	ListingLink *string
	Market      *enums.Market
	Origin      *string

	SellersPrice  *decimal.Decimal
	ShippingPrice *decimal.Decimal
	Tax           *decimal.Decimal

	Items []ItemSpec
}

func (in *CreateOrderInput) normalize() {
	quantize(in.SellersPrice)
	quantize(in.ShippingPrice)
	quantize(in.Tax)
	for i := range in.Items {
		in.Items[i].normalize()
	}
}

// UpdateOrderInput is a partial order-header update. Nil fields are left
// untouched. Supplying monetary fields never toggles the manual override;
// freezing is its own operation.
type UpdateOrderInput struct {
	Actor Actor

	SellerName  *string
	ListingLink *string
	Market      *enums.Market
	Origin      *string

	SellersPrice  *decimal.Decimal
	ShippingPrice *decimal.Decimal
	Tax           *decimal.Decimal

	Status               *enums.OrderStatus
	MarketOrderNum       *string
	PurchaseLink         *string
	DestinationWarehouse *enums.DestinationWarehouse
	TrackingStatus       *enums.TrackingStatus
	Carrier              *enums.Carrier
	TrackingID           *string
	TrackingLink         *string
}

func (in *UpdateOrderInput) normalize() {
	quantize(in.SellersPrice)
	quantize(in.ShippingPrice)
	quantize(in.Tax)
}

// FreezeTotalsInput sets the manual override. Absent fields keep their
// prior values.
type FreezeTotalsInput struct {
	Actor Actor

	TargetTotal  *decimal.Decimal
	SourcedPrice *decimal.Decimal
	Savings      *decimal.Decimal
}

func (in *FreezeTotalsInput) normalize() {
	quantize(in.TargetTotal)
	quantize(in.SourcedPrice)
	quantize(in.Savings)
}

// PatchItemInput is a partial item update. Changing the SKU re-populates
// the denormalized catalog attributes from the master catalog.
type PatchItemInput struct {
	Actor Actor

	SKU               *string
	ProductName       *string
	QuantityNeeded    *int
	TargetCostPerUnit *decimal.Decimal
	SourcedPrice      *decimal.Decimal
	ShippingCharges   *decimal.Decimal
	Tax               *decimal.Decimal
	UID               *string
	SourcerRemarks    *string
	Tested            *bool
	ProductCondition  *enums.ProductCondition
}

func (in *PatchItemInput) normalize() {
	quantize(in.TargetCostPerUnit)
	quantize(in.SourcedPrice)
	quantize(in.ShippingCharges)
	quantize(in.Tax)
}
