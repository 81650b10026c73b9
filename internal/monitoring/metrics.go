package monitoring

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/GriffinCanCode/quadrature/internal/quadrature"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for quadrature_integrations_total.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Integrations  *prometheus.CounterVec
	Evaluations   prometheus.Counter
	Frames        prometheus.Counter
	DepthExceeded prometheus.Counter
	Duration      prometheus.Histogram

	registry *prometheus.Registry

	// Snapshot for plain reporting - track current values
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds current metric values
type Snapshot struct {
	Integrations  int64   `json:"integrations"`
	Degraded      int64   `json:"degraded"`
	Errors        int64   `json:"errors"`
	Evaluations   int64   `json:"evaluations"`
	Frames        int64   `json:"frames"`
	DepthExceeded int64   `json:"depth_exceeded"`
	TotalSeconds  float64 `json:"total_seconds"`
}

// NewMetrics creates a metrics collector on its own registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith registers the collectors on reg.
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Integrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quadrature_integrations_total",
				Help: "Total number of integrations by outcome",
			},
			[]string{"outcome"},
		),
		Evaluations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quadrature_evaluations_total",
				Help: "Total number of integrand evaluations",
			},
		),
		Frames: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quadrature_frames_total",
				Help: "Total number of refinement frames processed",
			},
		),
		DepthExceeded: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quadrature_depth_exceeded_total",
				Help: "Total number of branches stopped by the depth guard",
			},
		),
		Duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quadrature_duration_seconds",
				Help:    "Integration duration in seconds",
				Buckets: []float64{.00001, .0001, .001, .01, .1, 1, 10},
			},
		),
	}
}

// ObserveIntegration implements quadrature.Recorder.
func (m *Metrics) ObserveIntegration(res quadrature.Result, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case res.Degraded():
		outcome = OutcomeDegraded
	}

	m.Integrations.WithLabelValues(outcome).Inc()
	m.Evaluations.Add(float64(res.Evaluations))
	m.Frames.Add(float64(res.Frames))
	m.DepthExceeded.Add(float64(res.DepthExceeded))
	m.Duration.Observe(elapsed.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot.Integrations++
	switch outcome {
	case OutcomeDegraded:
		m.snapshot.Degraded++
	case OutcomeError:
		m.snapshot.Errors++
	}
	m.snapshot.Evaluations += int64(res.Evaluations)
	m.snapshot.Frames += int64(res.Frames)
	m.snapshot.DepthExceeded += int64(res.DepthExceeded)
	m.snapshot.TotalSeconds += elapsed.Seconds()
}

// Snapshot returns a copy of the running totals.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	var errs []error
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
