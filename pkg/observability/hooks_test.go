package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSequencerHooks{}
	s.OnPhase("id", "scatter", 1)
	s.OnCancel("id", 1)

	r := NoopRenderHooks{}
	r.OnExportStart(ctx, []string{"gif"}, 10)
	r.OnExportComplete(ctx, []string{"gif"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "color")
	c.OnCacheMiss(ctx, "sketch")
	c.OnCacheSet(ctx, "sketch", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Sequencer().(NoopSequencerHooks); !ok {
		t.Error("Sequencer() should return NoopSequencerHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customSeq := &testSequencerHooks{}
	SetSequencerHooks(customSeq)
	if Sequencer() != customSeq {
		t.Error("SetSequencerHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Sequencer().(NoopSequencerHooks); !ok {
		t.Error("Reset() should restore NoopSequencerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSequencerHooks{}
	SetSequencerHooks(custom)
	SetSequencerHooks(nil)

	if Sequencer() != custom {
		t.Error("SetSequencerHooks(nil) should not replace existing hooks")
	}
}

type testSequencerHooks struct{ NoopSequencerHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
