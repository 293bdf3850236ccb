package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-inventory/pkg/enums"
	pkgerrors "github.com/bazaarhq/bazaar-inventory/pkg/errors"
)

type createProductBody struct {
	Name string `json:"name" validate:"required"`
	SKU  string `json:"sku" validate:"required"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/products/", strings.NewReader(`{"name":"Rice 5kg","sku":"RICE-5KG"}`))

	var body createProductBody
	require.NoError(t, DecodeJSONBody(req, &body))
	assert.Equal(t, "Rice 5kg", body.Name)
	assert.Equal(t, "RICE-5KG", body.SKU)
}

func TestDecodeJSONBodyEmpty(t *testing.T) {
	req := httptest.NewRequest("POST", "/products/", strings.NewReader(""))

	var body createProductBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/products/", strings.NewReader(`{"name":"Rice","sku":"R","price":10}`))

	var body createProductBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyMissingRequired(t *testing.T) {
	req := httptest.NewRequest("POST", "/products/", strings.NewReader(`{"name":"Rice"}`))

	var body createProductBody
	err := DecodeJSONBody(req, &body)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["sku"])
}

func TestParseQueryInt64(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock-movements/?product_id=42", nil)

	value, err := ParseQueryInt64(req, "product_id")
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, int64(42), *value)

	missing, err := ParseQueryInt64(req, "store_id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseQueryInt64Invalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock-movements/?product_id=abc", nil)

	_, err := ParseQueryInt64(req, "product_id")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestParseQueryMovementType(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock-movements/?movement_type=sale", nil)

	movementType, err := ParseQueryMovementType(req, "movement_type")
	require.NoError(t, err)
	require.NotNil(t, movementType)
	assert.Equal(t, enums.MovementTypeSale, *movementType)
}

func TestParseQueryMovementTypeInvalid(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock-movements/?movement_type=refund", nil)

	_, err := ParseQueryMovementType(req, "movement_type")
	require.Error(t, err)
}

func TestParsePathInt64(t *testing.T) {
	value, err := ParsePathInt64("7", "productID")
	require.NoError(t, err)
	assert.Equal(t, int64(7), value)

	_, err = ParsePathInt64("zero", "productID")
	require.Error(t, err)

	_, err = ParsePathInt64("-3", "productID")
	require.Error(t, err)
}
