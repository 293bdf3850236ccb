package validators

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
)

// ParseQueryInt64 reads an optional int64 query parameter. A missing or
// blank parameter returns nil.
func ParseQueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q must be an integer", name))
	}
	return &value, nil
}

// ParseQueryMovementType reads an optional movement_type query parameter.
func ParseQueryMovementType(r *http.Request, name string) (*enums.MovementType, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	movementType, err := enums.ParseMovementType(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q is not a valid movement type", name))
	}
	return &movementType, nil
}

// ParsePathInt64 reads a required int64 path segment.
func ParsePathInt64(raw, name string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("path parameter %q must be a positive integer", name))
	}
	return value, nil
}
