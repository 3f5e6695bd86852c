package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Console metrics
	BatchesTotal    *prometheus.CounterVec
	BatchDuration   prometheus.Histogram
	RemoteCalls     *prometheus.CounterVec
	RemoteDuration  prometheus.Histogram
	BreakerState    prometheus.Gauge
	LinesScanned    prometheus.Counter
	LinesIgnored    prometheus.Counter
	EventsApplied   *prometheus.CounterVec
	ExplorerDisks   prometheus.Gauge
	ExplorerParts   prometheus.Gauge
	ExplorerFolders prometheus.Gauge
	ExplorerFiles   prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	TotalBatches      int64   `json:"total_batches"`
	FailedBatches     int64   `json:"failed_batches"`
	ActiveConnections int64   `json:"active_connections"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a metrics collector registered with reg. A nil reg
// falls back to the default Prometheus registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "godisk_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "godisk_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "godisk_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "godisk_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Console metrics
		BatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "godisk_batches_total",
				Help: "Total number of console batches by outcome",
			},
			[]string{"outcome"},
		),
		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "godisk_batch_duration_seconds",
				Help:    "Time to execute and reconcile a console batch",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		RemoteCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "godisk_remote_commands_total",
				Help: "Total number of commands sent to the backend",
			},
			[]string{"status"},
		),
		RemoteDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "godisk_remote_command_duration_seconds",
				Help:    "Backend command round-trip time in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		BreakerState: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_remote_breaker_state",
				Help: "Backend circuit breaker state (0 closed, 1 half-open, 2 open)",
			},
		),
		LinesScanned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "godisk_output_lines_total",
				Help: "Total number of output lines scanned by the reconciler",
			},
		),
		LinesIgnored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "godisk_output_lines_unrecognized_total",
				Help: "Total number of output lines that matched no marker",
			},
		),
		EventsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "godisk_events_applied_total",
				Help: "Total number of recognized events applied to the explorer",
			},
			[]string{"kind"},
		),
		ExplorerDisks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_explorer_disks",
				Help: "Number of disks in the explorer model",
			},
		),
		ExplorerParts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_explorer_partitions",
				Help: "Number of partitions in the explorer model",
			},
		),
		ExplorerFolders: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_explorer_folders",
				Help: "Number of folders in the explorer tree",
			},
		),
		ExplorerFiles: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_explorer_files",
				Help: "Number of files in the explorer tree",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "godisk_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "godisk_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "godisk_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordBatch records a finished console batch. outcome is "applied",
// "failed" or "rejected".
func (m *Metrics) RecordBatch(outcome string, duration time.Duration) {
	m.BatchesTotal.WithLabelValues(outcome).Inc()
	m.BatchDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalBatches++
	if outcome != "applied" {
		m.snapshot.FailedBatches++
	}
	m.mu.Unlock()
}

// RecordRemoteCall records one backend command round-trip
func (m *Metrics) RecordRemoteCall(status string, duration time.Duration) {
	m.RemoteCalls.WithLabelValues(status).Inc()
	m.RemoteDuration.Observe(duration.Seconds())
}

// SetBreakerState records the backend breaker state
func (m *Metrics) SetBreakerState(state int) {
	m.BreakerState.Set(float64(state))
}

// RecordReconcile records the outcome of one reconciliation pass
func (m *Metrics) RecordReconcile(lines, unrecognized int, applied map[string]int) {
	m.LinesScanned.Add(float64(lines))
	m.LinesIgnored.Add(float64(unrecognized))
	for kind, n := range applied {
		m.EventsApplied.WithLabelValues(kind).Add(float64(n))
	}
}

// SetExplorerSize updates the explorer model gauges
func (m *Metrics) SetExplorerSize(disks, partitions, folders, files int) {
	m.ExplorerDisks.Set(float64(disks))
	m.ExplorerParts.Set(float64(partitions))
	m.ExplorerFolders.Set(float64(folders))
	m.ExplorerFiles.Set(float64(files))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current JSON-friendly counters
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgDurationMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
