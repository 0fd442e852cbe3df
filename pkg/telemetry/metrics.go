package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Check results used as metric label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics provides Prometheus metrics for validation runs.
type Metrics struct {
	config MetricsConfig

	checksTotal     *prometheus.CounterVec
	checkDuration   *prometheus.HistogramVec
	violationsTotal *prometheus.CounterVec
	loadFailures    *prometheus.CounterVec
	datasetRecords  *prometheus.GaugeVec
	lastCheckValid  prometheus.Gauge
	lastCheckTime   prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
// A disabled configuration yields a no-op collector.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	namespace := cfg.Namespace
	registry := prometheus.NewRegistry()

	m := &Metrics{
		config:   cfg,
		registry: registry,

		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Total number of integrity checks by result",
			},
			[]string{"result"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "check_duration_seconds",
				Help:      "Duration of integrity checks in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"result"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Total number of violations reported by kind",
			},
			[]string{"kind"},
		),
		loadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "load_failures_total",
				Help:      "Total number of dataset load failures",
			},
			[]string{"dataset"},
		),
		datasetRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "dataset_records",
				Help:      "Number of records in the last checked datasets",
			},
			[]string{"record"},
		),
		lastCheckValid: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_check_valid",
				Help:      "Whether the last check found no violation (1) or not (0)",
			},
		),
		lastCheckTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_check_timestamp_seconds",
				Help:      "Unix time of the last completed check",
			},
		),
	}

	registry.MustRegister(
		m.checksTotal,
		m.checkDuration,
		m.violationsTotal,
		m.loadFailures,
		m.datasetRecords,
		m.lastCheckValid,
		m.lastCheckTime,
	)

	return m
}

// RecordCheck records a completed check with its result and duration.
func (m *Metrics) RecordCheck(result string, duration time.Duration) {
	if m.checksTotal == nil {
		return
	}
	m.checksTotal.WithLabelValues(result).Inc()
	m.checkDuration.WithLabelValues(result).Observe(duration.Seconds())
	if result == ResultValid {
		m.lastCheckValid.Set(1)
	} else {
		m.lastCheckValid.Set(0)
	}
	m.lastCheckTime.SetToCurrentTime()
}

// RecordViolation records a reported violation by kind.
func (m *Metrics) RecordViolation(kind string) {
	if m.violationsTotal == nil {
		return
	}
	m.violationsTotal.WithLabelValues(kind).Inc()
}

// RecordLoadFailure records a dataset that could not be loaded.
func (m *Metrics) RecordLoadFailure(dataset string) {
	if m.loadFailures == nil {
		return
	}
	m.loadFailures.WithLabelValues(dataset).Inc()
}

// SetDatasetRecords sets the record count for people, sessions, talks or
// days.
func (m *Metrics) SetDatasetRecords(record string, count int) {
	if m.datasetRecords == nil {
		return
	}
	m.datasetRecords.WithLabelValues(record).Set(float64(count))
}

// Registry returns the underlying registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes the metrics endpoint until ctx is cancelled. It returns
// immediately when metrics are disabled or no listen address is set.
func (m *Metrics) Serve(ctx context.Context) error {
	if !m.config.Enabled || m.config.ListenAddress == "" {
		return nil
	}

	path := m.config.Path
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// Timer times an operation.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
