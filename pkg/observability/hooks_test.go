package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Layout hooks
	l := NoopLayoutHooks{}
	l.OnRebuildStart(12)
	l.OnRebuildComplete(12, time.Millisecond, nil)
	l.OnPassStart(12)
	l.OnPassComplete(4, time.Millisecond)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "solve")
	c.OnCacheMiss(ctx, "solve")
	c.OnCacheSet(ctx, "solve", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testLayoutHooks{}
	SetLayoutHooks(custom)
	SetLayoutHooks(nil)
	if Layout() != custom {
		t.Error("SetLayoutHooks(nil) should keep the previous hooks")
	}

	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should keep the previous hooks")
	}
}

func TestHooksRecordEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testLayoutHooks{}
	SetLayoutHooks(h)

	Layout().OnRebuildStart(3)
	Layout().OnRebuildComplete(3, time.Millisecond, nil)
	Layout().OnPassStart(3)
	Layout().OnPassComplete(2, time.Millisecond)

	if h.rebuilds != 1 || h.passes != 1 {
		t.Errorf("recorded rebuilds=%d passes=%d, want 1 and 1", h.rebuilds, h.passes)
	}
}

// testLayoutHooks counts events for registry tests.
type testLayoutHooks struct {
	rebuilds int
	passes   int
}

func (h *testLayoutHooks) OnRebuildStart(int)                          {}
func (h *testLayoutHooks) OnRebuildComplete(int, time.Duration, error) { h.rebuilds++ }
func (h *testLayoutHooks) OnPassStart(int)                             {}
func (h *testLayoutHooks) OnPassComplete(int, time.Duration)           { h.passes++ }

// testCacheHooks is a minimal CacheHooks implementation.
type testCacheHooks struct{}

func (testCacheHooks) OnCacheHit(context.Context, string)      {}
func (testCacheHooks) OnCacheMiss(context.Context, string)     {}
func (testCacheHooks) OnCacheSet(context.Context, string, int) {}
