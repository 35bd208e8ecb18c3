package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"codetrack/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveFetch(host string, outcome string, duration time.Duration)
	IncSourceResult(platform string, result string)
	ObserveRefreshDuration(duration time.Duration)
	SetHistorySize(count int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	fetchAttempts   *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	sourceResults   *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	historySize     prometheus.Gauge
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

func (m *MetricsProvider) ObserveFetch(host string, outcome string, duration time.Duration) {
	m.fetchAttempts.WithLabelValues(host, outcome).Inc()
	m.fetchDuration.WithLabelValues(host).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSourceResult(platform string, result string) {
	m.sourceResults.WithLabelValues(platform, result).Inc()
}

func (m *MetricsProvider) ObserveRefreshDuration(duration time.Duration) {
	m.refreshDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetHistorySize(count int) {
	m.historySize.Set(float64(count))
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
			Name: "codetrack_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "codetrack_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetrack_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "codetrack_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		fetchAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "codetrack_fetch_attempts_total",
			Help: "Upstream fetch attempts by host and outcome",
		}, []string{"host", "outcome"}),

		fetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "codetrack_fetch_duration_seconds",
			Help:    "Upstream fetch duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 15, 20},
		}, []string{"host"}),

		sourceResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "codetrack_source_results_total",
			Help: "Platform acquisition results (live, cache, failed)",
		}, []string{"platform", "result"}),

		refreshDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "codetrack_refresh_duration_seconds",
			Help:    "Duration of a full refresh cycle in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		historySize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "codetrack_history_entries",
			Help: "Number of snapshots in the progress ledger",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveFetch(_ string, _ string, _ time.Duration) {}
func (n *noopMetrics) IncSourceResult(_ string, _ string)               {}
func (n *noopMetrics) ObserveRefreshDuration(_ time.Duration)           {}
func (n *noopMetrics) SetHistorySize(_ int)                             {}
