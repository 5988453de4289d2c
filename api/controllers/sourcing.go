package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/api/responses"
	"github.com/retroventures/sourcehub-backend/api/validators"
	"github.com/retroventures/sourcehub-backend/internal/sourcing"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/logger"
)

type itemSpecRequest struct {
	SKU               string           `json:"sku" validate:"required"`
	ProductName       *string          `json:"product_name,omitempty"`
	QuantityNeeded    int              `json:"quantity_needed" validate:"required,min=1"`
	TargetCostPerUnit *decimal.Decimal `json:"target_cost_per_unit,omitempty"`
	SourcedPrice      *decimal.Decimal `json:"sourced_price,omitempty"`
	ShippingCharges   *decimal.Decimal `json:"shipping_charges,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	UID               *string          `json:"uid,omitempty"`
	SourcerRemarks    *string          `json:"sourcer_remarks,omitempty"`
	Tested            *bool            `json:"tested,omitempty"`
	ProductCondition  *string          `json:"product_condition,omitempty"`
}

func (req itemSpecRequest) toSpec() (sourcing.ItemSpec, error) {
	spec := sourcing.ItemSpec{
		SKU:               req.SKU,
		ProductName:       req.ProductName,
		QuantityNeeded:    req.QuantityNeeded,
		TargetCostPerUnit: req.TargetCostPerUnit,
		SourcedPrice:      req.SourcedPrice,
		ShippingCharges:   req.ShippingCharges,
		Tax:               req.Tax,
		UID:               req.UID,
		SourcerRemarks:    req.SourcerRemarks,
		Tested:            req.Tested,
	}
	if req.ProductCondition != nil {
		condition, err := enums.ParseProductCondition(strings.TrimSpace(*req.ProductCondition))
		if err != nil {
			return sourcing.ItemSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_condition")
		}
		spec.ProductCondition = &condition
	}
	return spec, nil
}

type createOrderRequest struct {
	SellerName    *string           `json:"seller_name,omitempty"`
	ListingLink   *string           `json:"listing_link,omitempty"`
	Market        *string           `json:"market,omitempty"`
	Origin        *string           `json:"origin,omitempty"`
	SellersPrice  *decimal.Decimal  `json:"sellers_price,omitempty"`
	ShippingPrice *decimal.Decimal  `json:"shipping_price,omitempty"`
	Tax           *decimal.Decimal  `json:"tax,omitempty"`
	Items         []itemSpecRequest `json:"items" validate:"required,min=1,dive"`
}

func (req createOrderRequest) toInput(actor sourcing.Actor) (sourcing.CreateOrderInput, error) {
	input := sourcing.CreateOrderInput{
		Actor:         actor,
		SellerName:    req.SellerName,
		ListingLink:   req.ListingLink,
		Origin:        req.Origin,
		SellersPrice:  req.SellersPrice,
		ShippingPrice: req.ShippingPrice,
		Tax:           req.Tax,
	}
	if req.Market != nil {
		market, err := enums.ParseMarket(strings.TrimSpace(*req.Market))
		if err != nil {
			return sourcing.CreateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid market")
		}
		input.Market = &market
	}
	for _, item := range req.Items {
		spec, err := item.toSpec()
		if err != nil {
			return sourcing.CreateOrderInput{}, err
		}
		input.Items = append(input.Items, spec)
	}
	return input, nil
}

type updateOrderRequest struct {
	SellerName           *string          `json:"seller_name,omitempty"`
	ListingLink          *string          `json:"listing_link,omitempty"`
	Market               *string          `json:"market,omitempty"`
	Origin               *string          `json:"origin,omitempty"`
	SellersPrice         *decimal.Decimal `json:"sellers_price,omitempty"`
	ShippingPrice        *decimal.Decimal `json:"shipping_price,omitempty"`
	Tax                  *decimal.Decimal `json:"tax,omitempty"`
	Status               *string          `json:"status,omitempty"`
	MarketOrderNum       *string          `json:"market_order_num,omitempty"`
	PurchaseLink         *string          `json:"purchase_link,omitempty"`
	DestinationWarehouse *string          `json:"destination_warehouse,omitempty"`
	TrackingStatus       *string          `json:"tracking_status,omitempty"`
	Carrier              *string          `json:"carrier,omitempty"`
	TrackingID           *string          `json:"tracking_id,omitempty"`
	TrackingLink         *string          `json:"tracking_link,omitempty"`
}

func (req updateOrderRequest) toInput(actor sourcing.Actor) (sourcing.UpdateOrderInput, error) {
	input := sourcing.UpdateOrderInput{
		Actor:          actor,
		SellerName:     req.SellerName,
		ListingLink:    req.ListingLink,
		Origin:         req.Origin,
		SellersPrice:   req.SellersPrice,
		ShippingPrice:  req.ShippingPrice,
		Tax:            req.Tax,
		MarketOrderNum: req.MarketOrderNum,
		PurchaseLink:   req.PurchaseLink,
		TrackingID:     req.TrackingID,
		TrackingLink:   req.TrackingLink,
	}
	if req.Market != nil {
		market, err := enums.ParseMarket(strings.TrimSpace(*req.Market))
		if err != nil {
			return sourcing.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid market")
		}
		input.Market = &market
	}
	if req.Status != nil {
		status, err := enums.ParseOrderStatus(strings.TrimSpace(*req.Status))
		if err != nil {
			return sourcing.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	if req.DestinationWarehouse != nil {
		warehouse, err := enums.ParseDestinationWarehouse(strings.TrimSpace(*req.DestinationWarehouse))
		if err != nil {
			return sourcing.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination_warehouse")
		}
		input.DestinationWarehouse = &warehouse
	}
	if req.TrackingStatus != nil {
		tracking, err := enums.ParseTrackingStatus(strings.TrimSpace(*req.TrackingStatus))
		if err != nil {
			return sourcing.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tracking_status")
		}
		input.TrackingStatus = &tracking
	}
	if req.Carrier != nil {
		carrier, err := enums.ParseCarrier(strings.TrimSpace(*req.Carrier))
		if err != nil {
			return sourcing.UpdateOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid carrier")
		}
		input.Carrier = &carrier
	}
	return input, nil
}

type freezeTotalsRequest struct {
	TargetTotal  *decimal.Decimal `json:"target_total,omitempty"`
	SourcedPrice *decimal.Decimal `json:"sourced_price,omitempty"`
	Savings      *decimal.Decimal `json:"savings,omitempty"`
}

type patchItemRequest struct {
	SKU               *string          `json:"sku,omitempty"`
	ProductName       *string          `json:"product_name,omitempty"`
	QuantityNeeded    *int             `json:"quantity_needed,omitempty" validate:"omitempty,min=1"`
	TargetCostPerUnit *decimal.Decimal `json:"target_cost_per_unit,omitempty"`
	SourcedPrice      *decimal.Decimal `json:"sourced_price,omitempty"`
	ShippingCharges   *decimal.Decimal `json:"shipping_charges,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	UID               *string          `json:"uid,omitempty"`
	SourcerRemarks    *string          `json:"sourcer_remarks,omitempty"`
	Tested            *bool            `json:"tested,omitempty"`
	ProductCondition  *string          `json:"product_condition,omitempty"`
}

func (req patchItemRequest) toInput(actor sourcing.Actor) (sourcing.PatchItemInput, error) {
	input := sourcing.PatchItemInput{
		Actor:             actor,
		SKU:               req.SKU,
		ProductName:       req.ProductName,
		QuantityNeeded:    req.QuantityNeeded,
		TargetCostPerUnit: req.TargetCostPerUnit,
		SourcedPrice:      req.SourcedPrice,
		ShippingCharges:   req.ShippingCharges,
		Tax:               req.Tax,
		UID:               req.UID,
		SourcerRemarks:    req.SourcerRemarks,
		Tested:            req.Tested,
	}
	if req.ProductCondition != nil {
		condition, err := enums.ParseProductCondition(strings.TrimSpace(*req.ProductCondition))
		if err != nil {
			return sourcing.PatchItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_condition")
		}
		input.ProductCondition = &condition
	}
	return input, nil
}

func sourcingActor(r *http.Request) (sourcing.Actor, error) {
	userID, role, err := actorFrom(r)
	if err != nil {
		return sourcing.Actor{}, err
	}
	return sourcing.Actor{ID: userID, Role: role}, nil
}

func CreateSourcingOrder(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput(actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.CreateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func GetSourcingOrder(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.GetOrder(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func ListPendingSourcingOrders(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orders, err := svc.ListPending(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func ListAssignedSourcingOrders(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := paginationFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := sourcing.AssignedFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("created_from")); raw != "" {
			from, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid created_from"))
				return
			}
			filters.CreatedFrom = &from
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("created_to")); raw != "" {
			to, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid created_to"))
				return
			}
			filters.CreatedTo = &to
		}

		orders, err := svc.ListAssigned(r.Context(), actor, params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orders)
	}
}

func AssignSourcingOrder(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.AssignOrder(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func UpdateSourcingOrder(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput(actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UpdateOrder(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func FreezeSourcingTotals(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body freezeTotalsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.FreezeTotals(r.Context(), id, sourcing.FreezeTotalsInput{
			Actor:        actor,
			TargetTotal:  body.TargetTotal,
			SourcedPrice: body.SourcedPrice,
			Savings:      body.Savings,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func UnfreezeSourcingTotals(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UnfreezeTotals(r.Context(), id, actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func AddSourcingItem(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body itemSpecRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		spec, err := body.toSpec()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.AddItem(r.Context(), id, actor, spec)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func PatchSourcingItem(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body patchItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput(actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.PatchItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteSourcingItem(svc sourcing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := sourcingActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteItem(r.Context(), itemID, actor); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
