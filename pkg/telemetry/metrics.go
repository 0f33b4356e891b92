package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arbor-dev/arbor/pkg/vdom"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "arbor").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for diff duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "arbor",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics observes diff and render cycles. The engine itself stays pure;
// callers record what they measure.
type Metrics struct {
	diffsTotal   prometheus.Counter
	patchesTotal *prometheus.CounterVec
	batchesTotal prometheus.Counter
	diffDuration prometheus.Histogram
	renderBytes  prometheus.Histogram
}

// NewMetrics creates and registers the metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	return &Metrics{
		diffsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "diffs_total",
			Help:        "Total number of diff cycles",
			ConstLabels: config.ConstLabels,
		}),
		patchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "patches_total",
			Help:        "Total patches emitted, by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
		batchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "batches_total",
			Help:        "Total batched patch sequences emitted",
			ConstLabels: config.ConstLabels,
		}),
		diffDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "diff_duration_seconds",
			Help:        "Diff duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
		renderBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "render_bytes",
			Help:        "Size of rendered markup in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(64, 4, 10),
		}),
	}
}

// ObserveDiff records one diff cycle.
func (m *Metrics) ObserveDiff(d time.Duration, patches []vdom.Patch) {
	if m == nil {
		return
	}
	m.diffsTotal.Inc()
	m.diffDuration.Observe(d.Seconds())
	for i := range patches {
		m.patchesTotal.WithLabelValues(patches[i].Op.String()).Inc()
	}
}

// ObserveBatch records that a diff cycle emitted a batched sequence.
func (m *Metrics) ObserveBatch() {
	if m == nil {
		return
	}
	m.batchesTotal.Inc()
}

// ObserveRender records one render and its output size.
func (m *Metrics) ObserveRender(n int) {
	if m == nil {
		return
	}
	m.renderBytes.Observe(float64(n))
}
