package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	"github.com/bazaarhq/bazaar-inventory/pkg/config"
	"github.com/bazaarhq/bazaar-inventory/pkg/db/models"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
	"github.com/bazaarhq/bazaar-inventory/pkg/metrics"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type alwaysUpPinger struct{}

func (alwaysUpPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.StockMovement{},
		&models.StockLevel{},
		&models.Store{},
	))

	registry := prometheus.NewRegistry()
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	repo := ledger.NewRepository(conn)
	svc, err := ledger.NewService(testTxRunner{db: conn}, repo, ledgerMetrics)
	require.NoError(t, err)
	queries, err := ledger.NewQueries(repo)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"

	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})

	return NewRouter(cfg, logg, alwaysUpPinger{}, svc, queries, registry)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var root map[string]string
	decodeData(t, rec, &root)
	assert.Equal(t, "Welcome to Bazaar Inventory API", root["message"])

	rec = doJSON(t, router, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Bazaar-Env"))

	rec = doJSON(t, router, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProductLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/products/", map[string]string{
		"name":        "Basmati Rice 5kg",
		"description": "Long grain",
		"sku":         "RICE-5KG",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created ledger.ProductDTO
	decodeData(t, rec, &created)
	assert.Equal(t, "RICE-5KG", created.SKU)
	require.NotZero(t, created.ID)

	rec = doJSON(t, router, http.MethodPost, "/products/", map[string]string{
		"name": "Duplicate",
		"sku":  "RICE-5KG",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", decodeErrorCode(t, rec))

	rec = doJSON(t, router, http.MethodGet, "/products/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []ledger.ProductDTO
	decodeData(t, rec, &list)
	require.Len(t, list, 1)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched ledger.ProductDTO
	decodeData(t, rec, &fetched)
	assert.Equal(t, created.ID, fetched.ID)

	rec = doJSON(t, router, http.MethodGet, "/products/9999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))

	rec = doJSON(t, router, http.MethodGet, "/products/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateProductRejectsMissingSKU(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/products/", map[string]string{"name": "No SKU"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeErrorCode(t, rec))
}

func TestStockMovementFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/products/", map[string]string{
		"name": "Sugar 1kg",
		"sku":  "SUGAR-1KG",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var product ledger.ProductDTO
	decodeData(t, rec, &product)

	levelPath := fmt.Sprintf("/stock-levels/%d", product.ID)

	rec = doJSON(t, router, http.MethodGet, levelPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var level ledger.StockLevelDTO
	decodeData(t, rec, &level)
	assert.Equal(t, int64(0), level.Quantity)
	assert.Nil(t, level.LastUpdated)

	rec = doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
		"product_id":    product.ID,
		"quantity":      10,
		"movement_type": "stock_in",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
		"product_id":    product.ID,
		"quantity":      4,
		"movement_type": "sale",
		"notes":         "walk-in customer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
		"product_id":    product.ID,
		"quantity":      100,
		"movement_type": "sale",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeErrorCode(t, rec))

	rec = doJSON(t, router, http.MethodGet, levelPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &level)
	assert.Equal(t, int64(6), level.Quantity)
	assert.NotNil(t, level.LastUpdated)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/stock-movements/?product_id=%d", product.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var movements []ledger.MovementDTO
	decodeData(t, rec, &movements)
	require.Len(t, movements, 2)

	rec = doJSON(t, router, http.MethodGet, "/stock-movements/?movement_type=sale", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &movements)
	require.Len(t, movements, 1)
	assert.Equal(t, "walk-in customer", *movements[0].Notes)

	rec = doJSON(t, router, http.MethodGet, "/stock-movements/?movement_type=refund", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordMovementValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknownProduct", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
			"product_id":    424242,
			"quantity":      1,
			"movement_type": "stock_in",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("zeroQuantity", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
			"product_id":    1,
			"quantity":      0,
			"movement_type": "stock_in",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknownMovementType", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
			"product_id":    1,
			"quantity":      1,
			"movement_type": "teleport",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknownBodyField", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/stock-movements/", map[string]any{
			"product_id":    1,
			"quantity":      1,
			"movement_type": "stock_in",
			"price":         9.99,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStockLevelUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/stock-levels/31337", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeErrorCode(t, rec))
}
