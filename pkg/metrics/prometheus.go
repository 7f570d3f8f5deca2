// Package metrics provides Prometheus metrics for the fantasy league
// scoring service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every Prometheus metric exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Scoring engine metrics
	commits              prometheus.Counter
	corrections          prometheus.Counter
	eliminations         prometheus.Counter
	previews             prometheus.Counter
	duplicateSubmissions prometheus.Counter
	standingsLatency     prometheus.Histogram
	ledgerWriteLatency   prometheus.Histogram

	// Refresh pipeline metrics
	refreshesEnqueued prometheus.Counter
	refreshesApplied  prometheus.Counter
	refreshQueueSize  prometheus.Gauge

	// Season gauges
	totalTeams       prometheus.Gauge
	totalContestants prometheus.Gauge
	airedEpisodes    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorLatency      *prometheus.HistogramVec
}

// Global manager on a custom registry so default Go collectors stay
// out of the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "league",
		subsystem:        "scoring",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.commits = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "commits_total",
		Help: "Episodes committed to the ledger.",
	})
	m.corrections = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "corrections_total",
		Help: "Committed episode entries corrected.",
	})
	m.eliminations = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "eliminations_total",
		Help: "Contestants eliminated.",
	})
	m.previews = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "previews_total",
		Help: "Draft preview computations served.",
	})
	m.duplicateSubmissions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "duplicate_submissions_total",
		Help: "Commit submissions answered as duplicates.",
	})
	m.standingsLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "standings_latency_ms",
		Help:    "Standings recompute latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.ledgerWriteLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "ledger_write_latency_ms",
		Help:    "Ledger write latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.refreshesEnqueued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refreshes_enqueued_total",
		Help: "Season snapshot refreshes accepted into the queue.",
	})
	m.refreshesApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refreshes_applied_total",
		Help: "Season snapshot refreshes applied.",
	})
	m.refreshQueueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "refresh_queue_size",
		Help: "Snapshots waiting in the refresh queue.",
	})

	m.totalTeams = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "teams",
		Help: "Teams in the season.",
	})
	m.totalContestants = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "contestants",
		Help: "Contestants in the season.",
	})
	m.airedEpisodes = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "aired_episodes",
		Help: "Episodes committed so far.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_component_total",
		Help: "Errors by component and kind.",
	}, []string{"component", "kind"})
	m.errorsByEndpoint = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_endpoint_total",
		Help: "HTTP errors by endpoint, method and type.",
	}, []string{"endpoint", "method", "type"})
	m.errorsByType = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_type_total",
		Help: "Errors by type and severity.",
	}, []string{"type", "severity"})
	m.errorLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "error_latency_ms",
		Help:    "Latency of failed operations in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"component", "type"})
}

// Handler returns the scrape handler for the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Handler returns the global scrape handler.
func Handler() http.Handler { return globalManager.Handler() }

// Package-level recording helpers delegating to the global manager.

func RecordCommit()              { globalManager.commits.Inc() }
func RecordCorrection()          { globalManager.corrections.Inc() }
func RecordElimination()         { globalManager.eliminations.Inc() }
func RecordPreview()             { globalManager.previews.Inc() }
func RecordDuplicateSubmission() { globalManager.duplicateSubmissions.Inc() }
func RecordRefreshEnqueued()     { globalManager.refreshesEnqueued.Inc() }
func RecordRefreshApplied()      { globalManager.refreshesApplied.Inc() }

func RecordStandingsLatency(ms float64) {
	globalManager.standingsLatency.Observe(ms)
}

func RecordLedgerWriteLatency(ms float64) {
	globalManager.ledgerWriteLatency.Observe(ms)
}

func UpdateRefreshQueueSize(n int) {
	globalManager.refreshQueueSize.Set(float64(n))
}

func UpdateTotalTeams(n int) { globalManager.totalTeams.Set(float64(n)) }

func UpdateTotalContestants(n int) {
	globalManager.totalContestants.Set(float64(n))
}

func UpdateAiredEpisodes(n int) {
	globalManager.airedEpisodes.Set(float64(n))
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

func RecordErrorLatency(component, errorType string, ms float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(ms)
}
