package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarhq/bazaar-inventory/pkg/config"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("error"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestHealthLiveSetsEnvHeader(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "dev"

	rec := httptest.NewRecorder()
	HealthLive(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dev", rec.Header().Get("X-Bazaar-Env"))
}

func TestHealthReadyWithoutDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = "dev"

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateProductNilService(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products/", strings.NewReader(`{"name":"x","sku":"y"}`))

	CreateProduct(nil, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetProductNilQueries(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	req = withURLParam(req, "productID", "1")

	rec := httptest.NewRecorder()
	GetProduct(nil, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecordMovementNilService(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/stock-movements/", strings.NewReader(`{}`))

	rec := httptest.NewRecorder()
	RecordMovement(nil, testLogger()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
