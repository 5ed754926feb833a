// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus registry for the API process.

Every collector lives on a dedicated [prometheus.Registry] (never the global
default) so that tests can build isolated instances and /metrics only exposes
what this service registers.

Families:

  - http_*: request count, latency and in-flight gauge labelled by chi route pattern.
  - auth_logins_total / authz_denials_total: security outcomes.
  - dues_*: dues processor runs and generated rows.
  - db_pool_*: pgxpool connection gauges.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "churchwallet"

// # Label Values

const (
	LoginSuccess  = "success"
	LoginFailure  = "failure"
	LoginDisabled = "disabled"

	DenialUnauthenticated = "unauthenticated"
	DenialRole            = "role"
	DenialOwnership       = "ownership"

	RunCompleted = "completed"
	RunSkipped   = "skipped"
	RunFailed    = "failed"
)

// Metrics bundles every collector exported by the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	logins       *prometheus.CounterVec
	denials      *prometheus.CounterVec
	duesRuns     *prometheus.CounterVec
	duesCreated  prometheus.Counter
	duesOverdue  prometheus.Counter
	duesDuration prometheus.Histogram
}

// New constructs the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route pattern and status.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Requests currently being served.",
		}),

		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),

		denials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authz_denials_total",
			Help:      "Requests rejected by the RBAC guards, by reason.",
		}, []string{"reason"}),

		duesRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dues_runs_total",
			Help:      "Dues processor runs by result.",
		}, []string{"result"}),

		duesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dues_generated_total",
			Help:      "Pending dues rows created by the processor.",
		}),

		duesOverdue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dues_marked_overdue_total",
			Help:      "Dues rows rolled from pending to overdue.",
		}),

		duesDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dues_run_duration_seconds",
			Help:      "Wall time of completed dues processor runs.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpDuration,
		metrics.httpInflight,
		metrics.logins,
		metrics.denials,
		metrics.duesRuns,
		metrics.duesCreated,
		metrics.duesOverdue,
		metrics.duesDuration,
	)

	return metrics
}

// Registry exposes the underlying registry (tests gather from it directly).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// # Pool Statistics

// RegisterPool exports pgxpool connection gauges.
func (m *Metrics) RegisterPool(pool *pgxpool.Pool) {
	gauge := func(name, help string, read func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return read(pool.Stat()) })
	}

	m.registry.MustRegister(
		gauge("db_pool_total_conns", "Open connections in the pool.", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("db_pool_idle_conns", "Idle connections in the pool.", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("db_pool_acquired_conns", "Connections currently checked out.", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
	)
}

// # HTTP Instrumentation

// Instrument records request count, latency and in-flight requests.
//
// The route label is the chi route pattern (e.g. "/api/v1/churches/{churchId}")
// so that identifiers never explode label cardinality. Unmatched requests are
// labelled "unmatched".
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		m.httpInflight.Inc()
		defer m.httpInflight.Dec()

		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.httpRequests.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// # Domain Events

// ObserveLogin counts a login attempt.
func (m *Metrics) ObserveLogin(result string) {
	m.logins.WithLabelValues(result).Inc()
}

// ObserveDenial counts an RBAC rejection.
func (m *Metrics) ObserveDenial(reason string) {
	m.denials.WithLabelValues(reason).Inc()
}

// ObserveDuesRun counts a processor run and, for completed runs, its output.
func (m *Metrics) ObserveDuesRun(result string, created, overdue int64, elapsed time.Duration) {
	m.duesRuns.WithLabelValues(result).Inc()
	if result != RunCompleted {
		return
	}
	m.duesCreated.Add(float64(created))
	m.duesOverdue.Add(float64(overdue))
	m.duesDuration.Observe(elapsed.Seconds())
}
