// Package metrics exposes Prometheus collectors for feed loading.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// Row results
const (
	RowKept    = "kept"
	RowDropped = "dropped"
)

// Metrics holds the collectors on a dedicated registry.
// All methods are safe for concurrent use and for a nil receiver.
type Metrics struct {
	Registry *prometheus.Registry

	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	rows          *prometheus.CounterVec
	loaded        *prometheus.GaugeVec
}

// Default is the process-wide metrics set used when no other is supplied
var Default = New()

// New creates a metrics set registered on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheet_events_fetch_total",
			Help: "Feed fetch attempts by transport and outcome.",
		}, []string{"transport", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sheet_events_fetch_duration_seconds",
			Help:    "Time spent fetching and decoding the feed.",
			Buckets: prometheus.DefBuckets,
		}, []string{"transport"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sheet_events_rows_total",
			Help: "Feed rows assembled into events or dropped as placeholders.",
		}, []string{"result"}),
		loaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sheet_events_loaded",
			Help: "Events in the current session set, by source.",
		}, []string{"source"}),
	}
	m.Registry.MustRegister(m.fetches, m.fetchDuration, m.rows, m.loaded)
	return m
}

// ObserveFetch records one fetch attempt
func (m *Metrics) ObserveFetch(transport, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(transport, outcome).Inc()
	m.fetchDuration.WithLabelValues(transport).Observe(d.Seconds())
}

// AddRows counts assembled or dropped rows
func (m *Metrics) AddRows(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rows.WithLabelValues(result).Add(float64(n))
}

// SetLoaded records the size of the current set. Other sources are reset to zero
// since exactly one set is live at a time.
func (m *Metrics) SetLoaded(source string, n int) {
	if m == nil {
		return
	}
	m.loaded.Reset()
	m.loaded.WithLabelValues(source).Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
