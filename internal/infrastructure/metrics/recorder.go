// Package metrics expone contadores Prometheus del almacén.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "paintshop"

// Recorder implementa los observadores de movimientos y de BOM sobre un registro propio.
type Recorder struct {
	registry        *prometheus.Registry
	movements       *prometheus.CounterVec
	movedQuantity   *prometheus.CounterVec
	negativeStock   prometheus.Counter
	missingCategory *prometheus.CounterVec
}

// NewRecorder crea el registro con los contadores del almacén y los colectores de proceso y runtime.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "warehouse",
			Name:      "movements_total",
			Help:      "Movimientos de material registrados, por tipo.",
		}, []string{"type"}),
		movedQuantity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "warehouse",
			Name:      "moved_quantity_total",
			Help:      "Cantidad absoluta movida, por tipo de movimiento.",
		}, []string{"type"}),
		negativeStock: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "warehouse",
			Name:      "negative_stock_total",
			Help:      "Movimientos que dejaron un saldo negativo.",
		}),
		missingCategory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bom",
			Name:      "missing_category_total",
			Help:      "Líneas BOM omitidas por falta de material activo en la categoría.",
		}, []string{"category"}),
	}
	r.registry.MustRegister(
		r.movements,
		r.movedQuantity,
		r.negativeStock,
		r.missingCategory,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// MovementRecorded cuenta un movimiento confirmado.
func (r *Recorder) MovementRecorded(movementType string, quantity decimal.Decimal) {
	r.movements.WithLabelValues(movementType).Inc()
	r.movedQuantity.WithLabelValues(movementType).Add(quantity.Abs().InexactFloat64())
}

// NegativeStock cuenta un saldo que quedó bajo cero.
func (r *Recorder) NegativeStock(string) {
	r.negativeStock.Inc()
}

// MissingCategory cuenta una categoría sin material activo al generar un BOM.
func (r *Recorder) MissingCategory(category string) {
	r.missingCategory.WithLabelValues(category).Inc()
}

// Registry registro subyacente.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler sirve el registro en formato de exposición Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
