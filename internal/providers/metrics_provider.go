package providers

import (
	"time"
	"warboard/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Poll outcome label values.
const (
	PollFound    = "found"
	PollNotFound = "not_found"
	PollFailed   = "failed"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncPollsTotal(outcome string)
	ObservePollDuration(duration time.Duration)
	IncEventsPublished(event string)
	SetActiveSessions(count int)
	SetSubscribers(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	pollsTotal      *prometheus.CounterVec
	pollDuration    prometheus.Histogram
	eventsPublished *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	subscribers     prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncPollsTotal(outcome string) {
	m.pollsTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObservePollDuration(duration time.Duration) {
	m.pollDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncEventsPublished(event string) {
	m.eventsPublished.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) SetActiveSessions(count int) {
	m.activeSessions.Set(float64(count))
}

func (m *MetricsProvider) SetSubscribers(count int) {
	m.subscribers.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warboard_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "warboard_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warboard_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "warboard_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		}),

		pollsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warboard_polls_total",
			Help: "Total number of war polls by outcome",
		}, []string{"outcome"}),

		pollDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "warboard_poll_duration_seconds",
			Help:    "Duration of a single war poll in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		eventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "warboard_events_published_total",
			Help: "Total number of events published to subscribers",
		}, []string{"event"}),

		activeSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warboard_active_sessions",
			Help: "Number of clan sessions with a running poller",
		}),

		subscribers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "warboard_event_subscribers",
			Help: "Number of connected event stream subscribers",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncPollsTotal(_ string)                           {}
func (n *noopMetrics) ObservePollDuration(_ time.Duration)              {}
func (n *noopMetrics) IncEventsPublished(_ string)                      {}
func (n *noopMetrics) SetActiveSessions(_ int)                          {}
func (n *noopMetrics) SetSubscribers(_ int)                             {}
