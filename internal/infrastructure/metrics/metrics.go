// Package metrics expone contadores Prometheus de las operaciones de negocio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores de la aplicación, registrados en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	movementsTotal *prometheus.CounterVec
	ordersTotal    *prometheus.CounterVec
	transfersTotal prometheus.Counter
	rejectedTotal  *prometheus.CounterVec
}

// New crea y registra los contadores.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		movementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "almacen_stock_movements_total",
			Help: "Movimientos del ledger por tipo.",
		}, []string{"movement_type"}),
		ordersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "almacen_orders_total",
			Help: "Órdenes procesadas por clase y resultado.",
		}, []string{"kind", "result"}),
		transfersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "almacen_transfers_total",
			Help: "Traslados completados.",
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "almacen_operations_rejected_total",
			Help: "Operaciones rechazadas por motivo.",
		}, []string{"reason"}),
	}
	registry.MustRegister(m.movementsTotal, m.ordersTotal, m.transfersTotal, m.rejectedTotal)
	return m
}

// ObserveMovement anota un movimiento de ledger confirmado.
func (m *Metrics) ObserveMovement(movementType string) {
	m.movementsTotal.WithLabelValues(movementType).Inc()
}

// ObserveOrder anota el resultado de una orden ("sales"/"purchase", "ok"/"rejected").
func (m *Metrics) ObserveOrder(kind, result string) {
	m.ordersTotal.WithLabelValues(kind, result).Inc()
}

// ObserveTransfer anota un traslado completado.
func (m *Metrics) ObserveTransfer() {
	m.transfersTotal.Inc()
}

// ObserveRejection anota una operación rechazada (p. ej. "insufficient_stock").
func (m *Metrics) ObserveRejection(reason string) {
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

// Handler devuelve el handler HTTP del endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
