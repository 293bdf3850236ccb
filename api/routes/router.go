package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazaarhq/bazaar-inventory/api/controllers"
	"github.com/bazaarhq/bazaar-inventory/api/middleware"
	"github.com/bazaarhq/bazaar-inventory/internal/ledger"
	"github.com/bazaarhq/bazaar-inventory/pkg/config"
	"github.com/bazaarhq/bazaar-inventory/pkg/db"
	"github.com/bazaarhq/bazaar-inventory/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	ledgerService ledger.Service,
	ledgerQueries *ledger.Queries,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/", controllers.Root())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Post("/", controllers.CreateProduct(ledgerService, logg))
		r.Get("/", controllers.ListProducts(ledgerQueries, logg))
		r.Get("/{productID}", controllers.GetProduct(ledgerQueries, logg))
	})

	r.Route("/stock-movements", func(r chi.Router) {
		r.Post("/", controllers.RecordMovement(ledgerService, logg))
		r.Get("/", controllers.ListMovements(ledgerQueries, logg))
	})

	r.Route("/stock-levels", func(r chi.Router) {
		r.Get("/{productID}", controllers.GetStockLevel(ledgerQueries, logg))
	})

	return r
}
