package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/slicereveal/pkg/observability"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := New(prometheus.NewRegistry())

	m.OnPhase("a", "scatter", 1)
	m.OnPhase("b", "scatter", 1)
	m.OnPhase("a", "fade_out", 1)
	m.OnCancel("a", 1)
	m.OnExportStart(ctx, []string{"gif"}, 38)
	m.OnExportComplete(ctx, []string{"gif"}, time.Second, nil)
	m.OnExportComplete(ctx, []string{"gif"}, time.Second, errors.New("boom"))
	m.OnCacheHit(ctx, "layer")
	m.OnCacheMiss(ctx, "layer")
	m.OnCacheMiss(ctx, "layer")
	m.OnCacheSet(ctx, "layer", 512)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"scatter", m.phases.WithLabelValues("scatter"), 2},
		{"fade_out", m.phases.WithLabelValues("fade_out"), 1},
		{"cancellations", m.cancellations, 1},
		{"frames", m.exportFrames, 38},
		{"exports ok", m.exports.WithLabelValues("ok"), 1},
		{"exports error", m.exports.WithLabelValues("error"), 1},
		{"cache hit", m.cacheRequests.WithLabelValues("layer", "hit"), 1},
		{"cache miss", m.cacheRequests.WithLabelValues("layer", "miss"), 2},
		{"cache bytes", m.cacheBytes.WithLabelValues("layer"), 512},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := testutil.CollectAndCount(m.exportSeconds); got != 1 {
		t.Errorf("export histogram series = %d, want 1", got)
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()
	m := New(prometheus.NewRegistry())
	m.Install()

	observability.Sequencer().OnPhase("x", "reassemble", 3)
	observability.Cache().OnCacheHit(context.Background(), "layer")

	if got := testutil.ToFloat64(m.phases.WithLabelValues("reassemble")); got != 1 {
		t.Errorf("reassemble = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("layer", "hit")); got != 1 {
		t.Errorf("cache hit = %v, want 1", got)
	}
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	defer func() {
		if recover() == nil {
			t.Error("second New on one registry did not panic")
		}
	}()
	New(reg)
}
