package products

import (
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

// ListFilters narrows a catalog listing. Query matches sku and product_name
// case-insensitively.
type ListFilters struct {
	Query       string
	Category    *string
	ProductType *enums.ProductType
}

// CreateProductInput holds the data required to add a catalog entry.
type CreateProductInput struct {
	SKU               string
	ProductName       string
	TargetCostPerUnit decimal.Decimal
	Category          string
	ProductType       enums.ProductType
}

// UpdateProductInput carries the optional fields a catalog manager may change.
// SKU is immutable once assigned, so it is absent here.
type UpdateProductInput struct {
	ProductName       *string
	TargetCostPerUnit *decimal.Decimal
	Category          *string
	ProductType       *enums.ProductType
}
