// Package metrics provides Prometheus metrics for the blackjack strategy service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Registry Metrics - what the API is serving
	strategiesLoaded     prometheus.Gauge
	registryLoadDuration prometheus.Histogram
	registryLoadErrors   prometheus.Counter
	summaryLookups       *prometheus.CounterVec
	summaryLookupMisses  prometheus.Counter

	// Aggregation Metrics - preprocessing runs
	aggregationsTotal   prometheus.Counter
	aggregationFailures *prometheus.CounterVec
	aggregationLatency  prometheus.Histogram
	handsAggregated     prometheus.Counter

	// Batch Pool Metrics
	workerActiveCount prometheus.Gauge
	jobsProcessed     *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "blackjack",
		subsystem:        "strategies",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// name applies the configured metric prefix.
func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.strategiesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("loaded"),
		Help:        "Number of strategy summaries in the registry",
		ConstLabels: constLabels,
	})

	m.registryLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("registry_load_duration_milliseconds"),
		Help:        "Time spent loading summary files into the registry",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		ConstLabels: constLabels,
	})

	m.registryLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("registry_load_errors_total"),
		Help:        "Total number of failed registry loads",
		ConstLabels: constLabels,
	})

	m.summaryLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("summary_lookups_total"),
		Help:        "Total number of summary lookups by view",
		ConstLabels: constLabels,
	}, []string{"view"})

	m.summaryLookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("summary_lookup_misses_total"),
		Help:        "Total number of lookups for unknown strategy keys",
		ConstLabels: constLabels,
	})

	m.aggregationsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("aggregations_total"),
		Help:        "Total number of strategy summaries produced",
		ConstLabels: constLabels,
	})

	m.aggregationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("aggregation_failures_total"),
		Help:        "Total number of strategies whose aggregation failed, by reason",
		ConstLabels: constLabels,
	}, []string{"reason"})

	m.aggregationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("aggregation_latency_milliseconds"),
		Help:        "Time spent aggregating one strategy",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.handsAggregated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("hands_aggregated_total"),
		Help:        "Total number of simulated hands folded into summaries",
		ConstLabels: constLabels,
	})

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "worker",
		Name:        m.name("active_count"),
		Help:        "Number of batch workers currently running a job",
		ConstLabels: constLabels,
	})

	m.jobsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "worker",
		Name:        m.name("jobs_total"),
		Help:        "Total number of batch jobs by status",
		ConstLabels: constLabels,
	}, []string{"status"})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_requests_total"),
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("http_request_duration_milliseconds"),
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_type_total"),
			Help:        "Total number of errors by type and severity",
			ConstLabels: constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        m.name("errors_by_endpoint_total"),
			Help:        "Total number of errors by endpoint",
			ConstLabels: constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Current memory usage in bytes",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutine_count"),
		Help:        "Current number of goroutines",
		ConstLabels: constLabels,
	})
}

// Enabled reports whether this manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauge metrics should be refreshed by callers.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// SetEnabled toggles recording on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// UpdateStrategiesLoaded sets the number of summaries in the registry.
func UpdateStrategiesLoaded(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.strategiesLoaded.Set(float64(count))
}

// RecordRegistryLoad records how long a registry load took.
func RecordRegistryLoad(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.registryLoadDuration.Observe(durationMs)
}

// RecordRegistryLoadError increments the failed registry loads counter.
func RecordRegistryLoadError() {
	if !globalManager.enabled {
		return
	}
	globalManager.registryLoadErrors.Inc()
}

// RecordSummaryLookup counts a read of the given view (one, all, comparison, quick_comparison).
func RecordSummaryLookup(view string) {
	if !globalManager.enabled {
		return
	}
	globalManager.summaryLookups.WithLabelValues(view).Inc()
}

// RecordSummaryLookupMiss counts a lookup for an unknown strategy key.
func RecordSummaryLookupMiss() {
	if !globalManager.enabled {
		return
	}
	globalManager.summaryLookupMisses.Inc()
}

// RecordAggregation records one successful strategy aggregation.
func RecordAggregation(hands int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.aggregationsTotal.Inc()
	globalManager.handsAggregated.Add(float64(hands))
	globalManager.aggregationLatency.Observe(latencyMs)
}

// RecordAggregationFailure records a failed aggregation (empty_input, malformed_record, io).
func RecordAggregationFailure(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.aggregationFailures.WithLabelValues(reason).Inc()
}

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) {
	if !globalManager.enabled {
		return
	}
	globalManager.workerActiveCount.Add(float64(delta))
}

// RecordJob counts a finished batch job (ok, failed, cancelled).
func RecordJob(status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.jobsProcessed.WithLabelValues(status).Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType increments the error counter for a specific type and severity.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
