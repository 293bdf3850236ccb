package controllers

import (
	"net/http"
	"strings"

	"github.com/bazaarhq/bazaar-inventory/api/responses"
	"github.com/bazaarhq/bazaar-inventory/api/validators"
	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
)

type recordMovementRequest struct {
	ProductID    int64   `json:"product_id" validate:"required,gt=0"`
	StoreID      int64   `json:"store_id" validate:"omitempty,gt=0"`
	Quantity     int64   `json:"quantity" validate:"required,gt=0"`
	MovementType string  `json:"movement_type" validate:"required"`
	Notes        *string `json:"notes,omitempty"`
}

func (r recordMovementRequest) toInput() (ledger.RecordMovementInput, error) {
	movementType, err := enums.ParseMovementType(strings.TrimSpace(r.MovementType))
	if err != nil {
		return ledger.RecordMovementInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement type")
	}
	return ledger.RecordMovementInput{
		ProductID:    r.ProductID,
		StoreID:      r.StoreID,
		Quantity:     r.Quantity,
		MovementType: movementType,
		Notes:        r.Notes,
	}, nil
}

// RecordMovement appends one row to the stock ledger and updates the
// derived stock level in the same transaction.
func RecordMovement(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload recordMovementRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProductID(ctx, input.ProductID)
		}

		movement, err := svc.RecordMovement(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, movement)
	}
}

// ListMovements returns ledger history, newest first, with optional
// product_id, store_id, and movement_type filters.
func ListMovements(queries *ledger.Queries, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if queries == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger queries unavailable"))
			return
		}

		var filter ledger.MovementFilter

		productID, err := validators.ParseQueryInt64(r, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.ProductID = productID

		storeID, err := validators.ParseQueryInt64(r, "store_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.StoreID = storeID

		movementType, err := validators.ParseQueryMovementType(r, "movement_type")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.MovementType = movementType

		movements, err := queries.ListMovements(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, movements)
	}
}
