package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records pipeline and cache events as Prometheus metrics on a
// private registry. Feature states are recorded separately with
// [Metrics.SetFeatureState]. The result is written in the text exposition
// format with [Metrics.WriteTextfile], for a node_exporter textfile collector
// or a CI artifact.
type Metrics struct {
	registry *prometheus.Registry

	durations    *prometheus.HistogramVec
	reportFiles  prometheus.Gauge
	cacheEvents  *prometheus.CounterVec
	featureState *prometheus.GaugeVec
	productState *prometheus.GaugeVec
}

// NewMetrics creates and registers the aplet metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aplet_stage_duration_seconds",
			Help:    "Duration of pipeline stages.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage", "result"}),
		reportFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aplet_report_files",
			Help: "Number of test report files in the last collection.",
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aplet_cache_events_total",
			Help: "Cache lookups and writes by key type.",
		}, []string{"key_type", "event"}),
		featureState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "aplet_feature_state",
			Help: "Test state per feature (1 for the current state, 0 otherwise).",
		}, []string{"product", "feature", "state"}),
		productState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "aplet_product_state",
			Help: "Root test state per product (1 for the current state, 0 otherwise).",
		}, []string{"product", "state"}),
	}
	m.registry.MustRegister(m.durations, m.reportFiles, m.cacheEvents, m.featureState, m.productState)
	return m
}

// States lists the label values used for state gauges.
var States = []string{"inconclusive", "passed", "failed"}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnModelParsed(_ context.Context, _ string, _ int, d time.Duration, err error) {
	m.durations.WithLabelValues("parse_model", result(err)).Observe(d.Seconds())
}

func (m *Metrics) OnReportsCollected(_ context.Context, _ string, files int, d time.Duration, err error) {
	m.durations.WithLabelValues("collect_reports", result(err)).Observe(d.Seconds())
	if err == nil {
		m.reportFiles.Set(float64(files))
	}
}

func (m *Metrics) OnStatusComputed(_ context.Context, product, state string, d time.Duration) {
	m.durations.WithLabelValues("compute_status", "ok").Observe(d.Seconds())
	setOneHot(m.productState, state, product)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
}

// SetFeatureState records the state of one feature within product ("" for
// the whole product line).
func (m *Metrics) SetFeatureState(product, feature, state string) {
	setOneHot(m.featureState, state, product, feature)
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func setOneHot(g *prometheus.GaugeVec, state string, labels ...string) {
	for _, s := range States {
		v := 0.0
		if s == state {
			v = 1
		}
		g.WithLabelValues(append(labels, s)...).Set(v)
	}
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
)
