package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service's Prometheus registry. A nil *Collector is
// valid and records nothing.
type Collector struct {
	registry        *prometheus.Registry
	webhookEvents   *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	lookups         *prometheus.CounterVec
	derived         *prometheus.CounterVec
	queueDropped    prometheus.Counter
	fetchDuration   prometheus.Histogram
	httpRequests    *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		webhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Webhook events received, by event type and outcome",
		}, []string{"type", "outcome"}),
		reconciliations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "status_reconciliations_total",
			Help: "Status reconciliations, by source and result",
		}, []string{"source", "result"}),
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "status_lookups_total",
			Help: "Status queries, by result",
		}, []string{"result"}),
		derived: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "status_derived_total",
			Help: "Derived account statuses, by status",
		}, []string{"status"}),
		queueDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "reconcile_queue_dropped_total",
			Help: "Events dropped because the reconcile queue was full",
		}),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "account_fetch_duration_seconds",
			Help:    "Time taken to fetch an account from Stripe",
			Buckets: prometheus.DefBuckets,
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests, by route pattern and status code",
		}, []string{"route", "code"}),
	}
}

func (m *Collector) WebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func (m *Collector) Reconciliation(source, result string) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(source, result).Inc()
}

func (m *Collector) Lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *Collector) Derived(status string) {
	if m == nil {
		return
	}
	m.derived.WithLabelValues(status).Inc()
}

func (m *Collector) QueueDropped() {
	if m == nil {
		return
	}
	m.queueDropped.Inc()
}

func (m *Collector) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(d.Seconds())
}

func (m *Collector) HTTPRequest(route, code string) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
}

func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
