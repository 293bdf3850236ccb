package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records counters for ledger writes.
type LedgerMetrics struct {
	movements  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	products   prometheus.Counter
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_recorded_total",
		Help: "Accepted stock movements by movement type.",
	}, []string{"movement_type"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_rejected_total",
		Help: "Rejected stock movements by reason.",
	}, []string{"reason"})
	products := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Products added to the catalog.",
	})
	reg.MustRegister(movements, rejections, products)
	return &LedgerMetrics{
		movements:  movements,
		rejections: rejections,
		products:   products,
	}
}

// IncMovement increments the accepted-movement counter for the type.
func (m *LedgerMetrics) IncMovement(movementType string) {
	if m == nil || m.movements == nil {
		return
	}
	m.movements.WithLabelValues(normalizeLabel(movementType)).Inc()
}

// IncRejection increments the rejected-movement counter for the reason.
func (m *LedgerMetrics) IncRejection(reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncProductCreated increments the product creation counter.
func (m *LedgerMetrics) IncProductCreated() {
	if m == nil || m.products == nil {
		return
	}
	m.products.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
