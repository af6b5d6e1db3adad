package obs

import (
	"fish-logistics-service/internal/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OptimizationsTotal   *prometheus.CounterVec
	OptimizationDuration prometheus.Histogram
	CandidatesEvaluated  prometheus.Counter
	CandidatesFeasible   prometheus.Counter

	CatalogCacheLookups *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		OptimizationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "optimizations_total",
			Help:      "Optimization calls by result status.",
		}, []string{"status"}),
		OptimizationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "optimization_duration_seconds",
			Help:      "Time spent enumerating, scoring and ranking routes.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		CandidatesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_candidates_evaluated_total",
			Help:      "Candidates produced by enumeration.",
		}),
		CandidatesFeasible: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_candidates_feasible_total",
			Help:      "Candidates that scored successfully.",
		}),
		CatalogCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_lookups_total",
			Help:      "Catalog cache lookups by outcome (hit, miss, error).",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OptimizationsTotal,
		m.OptimizationDuration,
		m.CandidatesEvaluated,
		m.CandidatesFeasible,
		m.CatalogCacheLookups,
	)

	return m
}

// RecordOptimization implements services.MetricsRecorder.
func (m *Metrics) RecordOptimization(status domain.ResultStatus, evaluated, feasible int, dur time.Duration) {
	m.OptimizationsTotal.WithLabelValues(string(status)).Inc()
	m.OptimizationDuration.Observe(dur.Seconds())
	m.CandidatesEvaluated.Add(float64(evaluated))
	m.CandidatesFeasible.Add(float64(feasible))
}

// RecordCacheLookup counts one catalog cache lookup outcome.
func (m *Metrics) RecordCacheLookup(outcome string) {
	m.CatalogCacheLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordHTTP(method, path string, status int, dur time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
