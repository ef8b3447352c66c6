// Package prom records observability hooks as Prometheus metrics.
//
//	reg := prometheus.NewRegistry()
//	m := prom.New(reg)
//	m.Install()
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/slicereveal/pkg/observability"
)

const namespace = "slicereveal"

// Metrics implements the sequencer, render and cache hooks.
type Metrics struct {
	phases        *prometheus.CounterVec
	cancellations prometheus.Counter
	exports       *prometheus.CounterVec
	exportFrames  prometheus.Counter
	exportSeconds prometheus.Histogram
	cacheRequests *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		phases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Phase entries by phase name.",
		}, []string{"phase"}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loop_cancellations_total",
			Help:      "Loops cancelled by a restart or stop.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Finished exports by status.",
		}, []string{"status"}),
		exportFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_frames_total",
			Help:      "Frames scheduled by started exports.",
		}),
		exportSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Wall time of finished exports.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		cacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by key type and result.",
		}, []string{"type", "result"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_write_bytes_total",
			Help:      "Bytes written to the cache by key type.",
		}, []string{"type"}),
	}
	reg.MustRegister(m.phases, m.cancellations, m.exports, m.exportFrames,
		m.exportSeconds, m.cacheRequests, m.cacheBytes)
	return m
}

// Install registers m as the process-wide hooks.
func (m *Metrics) Install() {
	observability.SetSequencerHooks(m)
	observability.SetRenderHooks(m)
	observability.SetCacheHooks(m)
}

func (m *Metrics) OnPhase(instance, phase string, generation uint64) {
	m.phases.WithLabelValues(phase).Inc()
}

func (m *Metrics) OnCancel(instance string, generation uint64) {
	m.cancellations.Inc()
}

func (m *Metrics) OnExportStart(ctx context.Context, formats []string, frames int) {
	m.exportFrames.Add(float64(frames))
}

func (m *Metrics) OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.exports.WithLabelValues(status).Inc()
	m.exportSeconds.Observe(duration.Seconds())
}

func (m *Metrics) OnCacheHit(ctx context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(ctx context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(ctx context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ observability.SequencerHooks = (*Metrics)(nil)
	_ observability.RenderHooks    = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
)
