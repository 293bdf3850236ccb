package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bazaarhq/bazaar-inventory/api/responses"
	"github.com/bazaarhq/bazaar-inventory/api/validators"
	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
)

// GetStockLevel returns the current on-hand quantity for a product. A
// product with no recorded movements reads as zero.
func GetStockLevel(queries *ledger.Queries, logg *logger.Logger) http.HandlerFunc {
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

		storeID := models.DefaultStoreID
		if raw, err := validators.ParseQueryInt64(r, "store_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else if raw != nil {
			storeID = *raw
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, productID)
		}

		level, err := queries.GetStockLevel(ctx, productID, storeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, level)
	}
}
