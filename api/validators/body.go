package validators

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes the request body into dst and runs struct
// validation. Unknown fields are rejected so typos surface instead of
// being silently dropped.
func DecodeJSONBody(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		switch {
		case err == io.EOF:
			return pkgerrors.New(pkgerrors.CodeValidation, "request body is empty")
		case strings.Contains(err.Error(), "unknown field"):
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body contains an unknown field")
		default:
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body is not valid JSON")
		}
	}

	if err := validate.Struct(dst); err != nil {
		var invalid validator.ValidationErrors
		if ok := asValidationErrors(err, &invalid); ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body failed validation").
				WithDetails(formatValidationErrors(invalid))
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body failed validation")
	}

	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if v, ok := err.(validator.ValidationErrors); ok {
		*target = v
		return true
	}
	return false
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			out[field] = "is required"
		case "gt":
			out[field] = fmt.Sprintf("must be greater than %s", fieldErr.Param())
		case "min":
			out[field] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
		case "max":
			out[field] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		case "oneof":
			out[field] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		default:
			out[field] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
		}
	}
	return out
}
