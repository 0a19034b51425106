package observability

import (
	"testing"
	"time"
)

type testLoaderHooks struct {
	starts    int
	completes int
}

func (h *testLoaderHooks) OnLoadStart(string) { h.starts++ }
func (h *testLoaderHooks) OnLoadComplete(string, int, int, time.Duration, error) {
	h.completes++
}

type testCacheHooks struct {
	hits int
}

func (h *testCacheHooks) OnCacheHit(string)      { h.hits++ }
func (h *testCacheHooks) OnCacheMiss(string)     {}
func (h *testCacheHooks) OnCacheSet(string, int) {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	l := NoopLoaderHooks{}
	l.OnLoadStart("search.log")
	l.OnLoadComplete("search.log", 10, 2, time.Second, nil)

	r := NoopRenderHooks{}
	r.OnRenderStart("svg")
	r.OnRenderComplete("svg", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit("artifact")
	c.OnCacheMiss("artifact")
	c.OnCacheSet("artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Loader().(NoopLoaderHooks); !ok {
		t.Error("Loader() should return NoopLoaderHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	custom := &testLoaderHooks{}
	SetLoaderHooks(custom)
	if Loader() != LoaderHooks(custom) {
		t.Error("SetLoaderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != CacheHooks(customCache) {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil registration keeps the previous hooks.
	SetLoaderHooks(nil)
	if Loader() != LoaderHooks(custom) {
		t.Error("nil registration replaced hooks")
	}

	Reset()
	if _, ok := Loader().(NoopLoaderHooks); !ok {
		t.Error("Reset should restore noop hooks")
	}
}

func TestLoaderHooksObserved(t *testing.T) {
	Reset()
	defer Reset()

	h := &testLoaderHooks{}
	SetLoaderHooks(h)

	Loader().OnLoadStart("search.log")
	Loader().OnLoadComplete("search.log", 3, 1, time.Millisecond, nil)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("starts = %d, completes = %d, want 1, 1", h.starts, h.completes)
	}
}
