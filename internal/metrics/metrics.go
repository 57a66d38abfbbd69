// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder owns a private registry so tests can build isolated instances.
type Recorder struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
	BulkActions  *prometheus.CounterVec
	BulkAffected *prometheus.CounterVec
	Exports      *prometheus.CounterVec
	PersistFails prometheus.Counter
}

func New() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blackpiston",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "blackpiston",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BulkActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blackpiston",
			Name:      "bulk_actions_total",
			Help:      "Bulk actions executed by resource and action.",
		}, []string{"resource", "action"}),
		BulkAffected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blackpiston",
			Name:      "bulk_records_affected_total",
			Help:      "Records changed by bulk actions.",
		}, []string{"resource", "action"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blackpiston",
			Name:      "exports_total",
			Help:      "Exports produced by resource and format.",
		}, []string{"resource", "format"}),
		PersistFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blackpiston",
			Name:      "snapshot_failures_total",
			Help:      "Snapshot saves that failed.",
		}),
	}
	r.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.HTTPRequests, r.HTTPLatency, r.BulkActions, r.BulkAffected, r.Exports, r.PersistFails,
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// Request observes one served HTTP request. Nil-safe.
func (r *Recorder) Request(method, route, status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(method, route, status).Inc()
	r.HTTPLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Bulk records one bulk action and how many records it changed. Nil-safe.
func (r *Recorder) Bulk(resource, action string, affected int) {
	if r == nil {
		return
	}
	r.BulkActions.WithLabelValues(resource, action).Inc()
	r.BulkAffected.WithLabelValues(resource, action).Add(float64(affected))
}

// Export counts one produced export. Nil-safe.
func (r *Recorder) Export(resource, format string) {
	if r == nil {
		return
	}
	r.Exports.WithLabelValues(resource, format).Inc()
}

// PersistFailed counts one failed snapshot save. Nil-safe.
func (r *Recorder) PersistFailed() {
	if r == nil {
		return
	}
	r.PersistFails.Inc()
}
