// Package metrics instrumentación Prometheus del API.
//
// Cada Registry es independiente (los tests crean el suyo). El servidor expone
// Handler() en GET /metrics y observa cada request con ObserveRequest.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bizboard"

// Registry agrupa el registro y las métricas del proceso.
type Registry struct {
	reg *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	RequestInFlight prometheus.Gauge

	TransactionsCreated *prometheus.CounterVec
	StockRejections     prometheus.Counter
}

// New crea el registro con las métricas de runtime, proceso, HTTP y dominio.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		RequestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		TransactionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transactions",
			Name:      "created_total",
			Help:      "Transactions recorded, by type.",
		}, []string{"type"}),
		StockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "insufficient_stock_total",
			Help:      "Income transactions rejected for insufficient stock.",
		}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestDuration,
		r.RequestTotal,
		r.RequestInFlight,
		r.TransactionsCreated,
		r.StockRejections,
	)
	return r
}

// ObserveRequest registra duración y conteo de una request ya respondida.
// route debe ser el patrón de la ruta (/api/products/:id), no el path real.
func (r *Registry) ObserveRequest(method, route string, status int, start time.Time) {
	s := strconv.Itoa(status)
	r.RequestDuration.WithLabelValues(method, route, s).Observe(time.Since(start).Seconds())
	r.RequestTotal.WithLabelValues(method, route, s).Inc()
}

// Handler expone el registro en formato Prometheus/OpenMetrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
