// Package metrics собирает Prometheus-метрики сервиса: HTTP, запросы к БД,
// состояние пула соединений
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpen  *prometheus.GaugeVec
	dbPoolIdle  *prometheus.GaugeVec
	dbPoolInUse *prometheus.GaugeVec

	eventsPublished *prometheus.CounterVec
}

// New создает и регистрирует коллекторы метрик
func New(serviceName string) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
		dbPoolOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_pool_open_connections",
				Help:        "Number of open connections in the pool.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		dbPoolIdle: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_pool_idle_connections",
				Help:        "Number of idle connections in the pool.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		dbPoolInUse: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_pool_in_use_connections",
				Help:        "Number of connections currently in use.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{},
		),
		eventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "events_published_total",
				Help:        "Domain events published, by type and outcome.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"event", "outcome"},
		),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbPoolOpen,
		m.dbPoolIdle,
		m.dbPoolInUse,
		m.eventsPublished,
	)

	return m
}

// ObserveHTTPRequest records one handled HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery records the duration of one database query.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats publishes the current connection pool state.
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpen.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbPoolIdle.WithLabelValues().Set(float64(stats.Idle))
	m.dbPoolInUse.WithLabelValues().Set(float64(stats.InUse))
}

// ObserveEventPublished records a publish attempt for a domain event.
func (m *Metrics) ObserveEventPublished(event string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.eventsPublished.WithLabelValues(event, outcome).Inc()
}
