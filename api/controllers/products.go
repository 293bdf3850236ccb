package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarhq/bazaar-inventory/api/responses"
	"github.com/bazaarhq/bazaar-inventory/api/validators"
	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
)

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	SKU         string `json:"sku" validate:"required"`
}

// CreateProduct handles product registration in the catalog.
func CreateProduct(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), ledger.CreateProductInput{
			Name:        payload.Name,
			Description: payload.Description,
			SKU:         payload.SKU,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ListProducts returns the whole catalog.
func ListProducts(queries *ledger.Queries, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if queries == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger queries unavailable"))
			return
		}

		products, err := queries.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// GetProduct fetches one product by its numeric identifier.
func GetProduct(queries *ledger.Queries, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if queries == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger queries unavailable"))
			return
		}

		productID, err := validators.ParsePathInt64(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		product, err := queries.GetProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
