package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/retroventures/sourcehub-backend/api/responses"
	"github.com/retroventures/sourcehub-backend/api/validators"
	productsvc "github.com/retroventures/sourcehub-backend/internal/products"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/logger"
)

type createProductRequest struct {
	SKU               string `json:"sku" validate:"required"`
	ProductName       string `json:"product_name" validate:"required"`
	TargetCostPerUnit string `json:"target_cost_per_unit" validate:"required"`
	Category          string `json:"category" validate:"required"`
	ProductType       string `json:"product_type" validate:"required"`
}

func (req createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	productType, err := enums.ParseProductType(strings.TrimSpace(req.ProductType))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type")
	}
	target, err := decimal.NewFromString(strings.TrimSpace(req.TargetCostPerUnit))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target_cost_per_unit")
	}
	return productsvc.CreateProductInput{
		SKU:               req.SKU,
		ProductName:       req.ProductName,
		TargetCostPerUnit: target,
		Category:          req.Category,
		ProductType:       productType,
	}, nil
}

type updateProductRequest struct {
	ProductName       *string `json:"product_name,omitempty"`
	TargetCostPerUnit *string `json:"target_cost_per_unit,omitempty"`
	Category          *string `json:"category,omitempty"`
	ProductType       *string `json:"product_type,omitempty"`
}

func (req updateProductRequest) toInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		ProductName: req.ProductName,
		Category:    req.Category,
	}
	if req.TargetCostPerUnit != nil {
		target, err := decimal.NewFromString(strings.TrimSpace(*req.TargetCostPerUnit))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target_cost_per_unit")
		}
		input.TargetCostPerUnit = &target
	}
	if req.ProductType != nil {
		productType, err := enums.ParseProductType(strings.TrimSpace(*req.ProductType))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type")
		}
		input.ProductType = &productType
	}
	return input, nil
}

func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := productsvc.ListFilters{Query: r.URL.Query().Get("q")}
		if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
			filters.Category = &category
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("product_type")); raw != "" {
			productType, err := enums.ParseProductType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product_type"))
				return
			}
			filters.ProductType = &productType
		}

		products, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
