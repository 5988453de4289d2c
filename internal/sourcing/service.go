package sourcing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retroventures/sourcehub-backend/pkg/db/models"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns every mutation of sourcing orders and their items. Each
// mutating operation runs in one transaction and recomputes the order's
// derived totals exactly once, after all field changes.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.SourcingOrder, error)
	GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error)
	ListPending(ctx context.Context, params pagination.Params) ([]models.SourcingOrder, error)
	ListAssigned(ctx context.Context, actor Actor, params pagination.Params, filters AssignedFilters) ([]models.SourcingOrder, error)
	AssignOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, input UpdateOrderInput) (*models.SourcingOrder, error)
	FreezeTotals(ctx context.Context, orderID uuid.UUID, input FreezeTotalsInput) (*models.SourcingOrder, error)
	UnfreezeTotals(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error)
	AddItem(ctx context.Context, orderID uuid.UUID, actor Actor, spec ItemSpec) (*models.SourcingItem, error)
	PatchItem(ctx context.Context, itemID uuid.UUID, input PatchItemInput) (*models.SourcingItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID, actor Actor) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a sourcing service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sourcing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.SourcingOrder, error) {
	if input.Actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	input.normalize()
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	for i, spec := range input.Items {
		if strings.TrimSpace(spec.SKU) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item sku required").WithDetails(map[string]any{"index": i})
		}
		if spec.QuantityNeeded < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1").WithDetails(map[string]any{"index": i})
		}
	}

	order := &models.SourcingOrder{
		SellerName:  input.SellerName,
		ListingLink: input.ListingLink,
		Market:      input.Market,
		Origin:      input.Origin,
		Status:      enums.OrderStatusPending,
		SourcerID:   input.Actor.ID,
	}
	if input.SellersPrice != nil {
		order.SellersPrice = *input.SellersPrice
	}
	if input.ShippingPrice != nil {
		order.ShippingPrice = *input.ShippingPrice
	}
	if input.Tax != nil {
		order.Tax = *input.Tax
	}

	// A purchaser sourcing for themself starts the order already assigned.
	if input.Actor.Role == enums.UserRolePurchaser {
		now := s.now()
		order.Status = enums.OrderStatusAssigned
		order.PurchaserID = &input.Actor.ID
		order.AssignedAt = &now
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items := make([]models.SourcingItem, 0, len(input.Items))
		for _, spec := range input.Items {
			item, err := s.buildItem(ctx, repo, spec)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}

		RecomputeTotals(order, items)

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sourcing order")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sourcing items")
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error) {
	order, err := s.loadOrderWithItems(ctx, s.repo, orderID)
	if err != nil {
		return nil, err
	}
	if !canViewOrder(actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order not visible to caller")
	}
	return order, nil
}

func (s *service) ListPending(ctx context.Context, params pagination.Params) ([]models.SourcingOrder, error) {
	orders, err := s.repo.ListPending(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending orders")
	}
	return orders, nil
}

func (s *service) ListAssigned(ctx context.Context, actor Actor, params pagination.Params, filters AssignedFilters) ([]models.SourcingOrder, error) {
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	orders, err := s.repo.ListAssigned(ctx, actor.ID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned orders")
	}
	return orders, nil
}

func (s *service) AssignOrder(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var assigned *models.SourcingOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only pending orders can be assigned")
		}

		now := s.now()
		updates := map[string]any{
			"status":       enums.OrderStatusAssigned,
			"purchaser_id": actor.ID,
			"assigned_at":  now,
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order")
		}

		order.Status = enums.OrderStatusAssigned
		order.PurchaserID = &actor.ID
		order.AssignedAt = &now
		assigned = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

func (s *service) UpdateOrder(ctx context.Context, orderID uuid.UUID, input UpdateOrderInput) (*models.SourcingOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	input.normalize()

	var updated *models.SourcingOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if !canMutateOrder(input.Actor, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order not editable by caller")
		}

		updates := map[string]any{}
		applyString := func(column string, value *string) {
			if value != nil {
				updates[column] = *value
			}
		}
		applyString("seller_name", input.SellerName)
		applyString("listing_link", input.ListingLink)
		applyString("origin", input.Origin)
		applyString("market_order_num", input.MarketOrderNum)
		applyString("purchase_link", input.PurchaseLink)
		applyString("tracking_id", input.TrackingID)
		applyString("tracking_link", input.TrackingLink)
		if input.Market != nil {
			updates["market"] = *input.Market
		}
		if input.SellersPrice != nil {
			updates["sellers_price"] = *input.SellersPrice
		}
		if input.ShippingPrice != nil {
			updates["shipping_price"] = *input.ShippingPrice
		}
		if input.Tax != nil {
			updates["tax"] = *input.Tax
		}
		if input.DestinationWarehouse != nil {
			updates["destination_warehouse"] = *input.DestinationWarehouse
		}
		if input.TrackingStatus != nil {
			updates["tracking_status"] = *input.TrackingStatus
		}
		if input.Carrier != nil {
			updates["carrier"] = *input.Carrier
		}

		now := s.now()
		if input.Status != nil && *input.Status != order.Status {
			if !order.Status.CanTransitionTo(*input.Status) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
					WithDetails(map[string]any{"from": order.Status, "to": *input.Status})
			}
			updates["status"] = *input.Status
			order.Status = *input.Status
			if input.Status.IsFulfilled() {
				updates["finalized_at"] = now
			}
		}
		if input.Actor.Role == enums.UserRolePurchaser {
			updates["purchaser_action_time"] = now
		}

		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}

		if err := s.recompute(ctx, repo, order); err != nil {
			return err
		}
		updated, err = s.loadOrderWithItems(ctx, repo, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) FreezeTotals(ctx context.Context, orderID uuid.UUID, input FreezeTotalsInput) (*models.SourcingOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	input.normalize()

	var frozen *models.SourcingOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}

		updates := map[string]any{"is_manual_override": true}
		if input.TargetTotal != nil {
			updates["target_total"] = input.TargetTotal.RoundBank(moneyScale)
		}
		if input.SourcedPrice != nil {
			updates["sourced_price"] = input.SourcedPrice.RoundBank(moneyScale)
		}
		if input.Savings != nil {
			updates["savings"] = input.Savings.RoundBank(moneyScale)
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "freeze totals")
		}

		frozen, err = s.loadOrderWithItems(ctx, repo, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return frozen, nil
}

func (s *service) UnfreezeTotals(ctx context.Context, orderID uuid.UUID, actor Actor) (*models.SourcingOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var unfrozen *models.SourcingOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}

		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"is_manual_override": false}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unfreeze totals")
		}
		order.IsManualOverride = false

		// Stale totals do not persist past the unfreeze.
		if err := s.recompute(ctx, repo, order); err != nil {
			return err
		}
		unfrozen, err = s.loadOrderWithItems(ctx, repo, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return unfrozen, nil
}

func (s *service) AddItem(ctx context.Context, orderID uuid.UUID, actor Actor, spec ItemSpec) (*models.SourcingItem, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	spec.normalize()
	if strings.TrimSpace(spec.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item sku required")
	}
	if spec.QuantityNeeded < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
	}

	var created *models.SourcingItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if !canMutateOrder(actor, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order not editable by caller")
		}

		item, err := s.buildItem(ctx, repo, spec)
		if err != nil {
			return err
		}
		item.OrderID = order.ID
		rows := []models.SourcingItem{*item}
		if err := repo.CreateItems(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sourcing item")
		}

		if err := s.recompute(ctx, repo, order); err != nil {
			return err
		}
		created, err = s.loadItem(ctx, repo, rows[0].ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) PatchItem(ctx context.Context, itemID uuid.UUID, input PatchItemInput) (*models.SourcingItem, error) {
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	input.normalize()
	if input.QuantityNeeded != nil && *input.QuantityNeeded < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
	}

	var patched *models.SourcingItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := s.loadItem(ctx, repo, itemID)
		if err != nil {
			return err
		}
		order, err := s.loadOrder(ctx, repo, item.OrderID)
		if err != nil {
			return err
		}
		if !canMutateOrder(input.Actor, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order not editable by caller")
		}

		if input.SKU != nil && *input.SKU != item.SKU {
			item.SKU = *input.SKU
			s.populateFromCatalog(ctx, repo, item)
		}
		if input.ProductName != nil {
			item.ProductName = *input.ProductName
		}
		if input.QuantityNeeded != nil {
			item.QuantityNeeded = *input.QuantityNeeded
		}
		if input.TargetCostPerUnit != nil {
			item.TargetCostPerUnit = *input.TargetCostPerUnit
		}
		if input.SourcedPrice != nil {
			item.SourcedPrice = *input.SourcedPrice
		}
		if input.ShippingCharges != nil {
			item.ShippingCharges = *input.ShippingCharges
		}
		if input.Tax != nil {
			item.Tax = *input.Tax
		}
		if input.UID != nil {
			item.UID = input.UID
		}
		if input.SourcerRemarks != nil {
			item.SourcerRemarks = input.SourcerRemarks
		}
		if input.Tested != nil {
			item.Tested = *input.Tested
		}
		if input.ProductCondition != nil {
			item.ProductCondition = input.ProductCondition
		}

		if err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sourcing item")
		}

		if err := s.recompute(ctx, repo, order); err != nil {
			return err
		}
		patched, err = s.loadItem(ctx, repo, item.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return patched, nil
}

func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID, actor Actor) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := s.loadItem(ctx, repo, itemID)
		if err != nil {
			return err
		}
		order, err := s.loadOrder(ctx, repo, item.OrderID)
		if err != nil {
			return err
		}
		if !canMutateOrder(actor, order) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order not editable by caller")
		}

		if err := repo.DeleteItem(ctx, item.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sourcing item")
		}
		return s.recompute(ctx, repo, order)
	})
}

// recompute re-reads the order's full item set, derives totals, and persists
// both the order fields and each item's derived columns.
func (s *service) recompute(ctx context.Context, repo Repository, order *models.SourcingOrder) error {
	items, err := repo.FindItemsByOrder(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items for recompute")
	}

	RecomputeTotals(order, items)

	for i := range items {
		if err := repo.UpdateItem(ctx, &items[i]); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist item totals")
		}
	}

	if order.IsManualOverride {
		return nil
	}
	updates := map[string]any{
		"target_total":  order.TargetTotal,
		"sourced_price": order.SourcedPrice,
		"savings":       order.Savings,
	}
	if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order totals")
	}
	return nil
}

// buildItem constructs a new item row from a spec, defaulting catalog
// attributes from the master product matching the SKU when one exists.
func (s *service) buildItem(ctx context.Context, repo Repository, spec ItemSpec) (*models.SourcingItem, error) {
	item := &models.SourcingItem{
		SKU:            strings.TrimSpace(spec.SKU),
		QuantityNeeded: spec.QuantityNeeded,
		UID:            spec.UID,
		SourcerRemarks: spec.SourcerRemarks,
	}
	if spec.ProductName != nil {
		item.ProductName = *spec.ProductName
	}
	if spec.TargetCostPerUnit != nil {
		item.TargetCostPerUnit = *spec.TargetCostPerUnit
	}
	if spec.SourcedPrice != nil {
		item.SourcedPrice = *spec.SourcedPrice
	}
	if spec.ShippingCharges != nil {
		item.ShippingCharges = *spec.ShippingCharges
	}
	if spec.Tax != nil {
		item.Tax = *spec.Tax
	}
	if spec.Tested != nil {
		item.Tested = *spec.Tested
	}
	if spec.ProductCondition != nil {
		item.ProductCondition = spec.ProductCondition
	}

	product, err := repo.FindProductBySKU(ctx, item.SKU)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup catalog product")
		}
	} else {
		item.ProductID = &product.ID
		item.Category = product.Category
		item.ProductType = product.ProductType
		if item.ProductName == "" {
			item.ProductName = product.ProductName
		}
		if spec.TargetCostPerUnit == nil {
			item.TargetCostPerUnit = product.TargetCostPerUnit
		}
	}

	if item.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required for unknown sku").
			WithDetails(map[string]any{"sku": item.SKU})
	}
	return item, nil
}

// populateFromCatalog refreshes an item's denormalized catalog attributes
// after a SKU change. Unknown SKUs clear the product linkage.
func (s *service) populateFromCatalog(ctx context.Context, repo Repository, item *models.SourcingItem) {
	product, err := repo.FindProductBySKU(ctx, item.SKU)
	if err != nil {
		item.ProductID = nil
		return
	}
	item.ProductID = &product.ID
	item.ProductName = product.ProductName
	item.Category = product.Category
	item.ProductType = product.ProductType
	item.TargetCostPerUnit = product.TargetCostPerUnit
}

func (s *service) loadOrder(ctx context.Context, repo Repository, id uuid.UUID) (*models.SourcingOrder, error) {
	order, err := repo.FindOrder(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) loadOrderWithItems(ctx context.Context, repo Repository, id uuid.UUID) (*models.SourcingOrder, error) {
	order, err := repo.FindOrderWithItems(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) loadItem(ctx context.Context, repo Repository, id uuid.UUID) (*models.SourcingItem, error) {
	item, err := repo.FindItem(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func canViewOrder(actor Actor, order *models.SourcingOrder) bool {
	switch actor.Role {
	case enums.UserRoleAdmin, enums.UserRoleManager:
		return true
	}
	if order.SourcerID == actor.ID {
		return true
	}
	return order.PurchaserID != nil && *order.PurchaserID == actor.ID
}

func canMutateOrder(actor Actor, order *models.SourcingOrder) bool {
	if actor.ID == uuid.Nil {
		return false
	}
	if actor.Role == enums.UserRoleAdmin {
		return true
	}
	if order.SourcerID == actor.ID {
		return true
	}
	return order.PurchaserID != nil && *order.PurchaserID == actor.ID
}
