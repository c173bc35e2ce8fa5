// Package observability lets applications watch the layout pipeline, the
// caches and the preview server without those packages depending on a
// metrics backend.
//
// Hooks are registered once at startup and looked up at each event:
//
//	observability.Register(observability.NewLogHooks(logger))
//	observability.Pipeline().OnLayoutComplete(ctx, panels, fits, took, nil)
//
// Anything not registered is a no-op.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks observes layout computation and rendering.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, panelCount int)
	OnLayoutComplete(ctx context.Context, panelCount int, fits bool, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks observes cache lookups. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks observes HTTP requests to the preview server.
type ServerHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, statusCode int, duration time.Duration)
}

// No-op implementations. Embed them to implement only some methods.
type (
	NoopPipelineHooks struct{}
	NoopCacheHooks    struct{}
	NoopServerHooks   struct{}
)

func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

func (NoopServerHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}

var registry struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	server   ServerHooks
}

func init() { Reset() }

func store[T any](slot *T, h T) {
	if any(h) == nil {
		return
	}
	registry.Lock()
	*slot = h
	registry.Unlock()
}

func load[T any](slot *T) T {
	registry.RLock()
	defer registry.RUnlock()
	return *slot
}

// Register installs h for every hook interface it implements and reports
// whether it implemented any.
func Register(h any) bool {
	ok := false
	if p, is := h.(PipelineHooks); is {
		SetPipelineHooks(p)
		ok = true
	}
	if c, is := h.(CacheHooks); is {
		SetCacheHooks(c)
		ok = true
	}
	if s, is := h.(ServerHooks); is {
		SetServerHooks(s)
		ok = true
	}
	return ok
}

// SetPipelineHooks replaces the pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) { store(&registry.pipeline, h) }

// SetCacheHooks replaces the cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) { store(&registry.cache, h) }

// SetServerHooks replaces the server hooks. Nil is ignored.
func SetServerHooks(h ServerHooks) { store(&registry.server, h) }

func Pipeline() PipelineHooks { return load(&registry.pipeline) }
func Cache() CacheHooks       { return load(&registry.cache) }
func Server() ServerHooks     { return load(&registry.server) }

// Reset restores the no-op hooks.
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.server = NoopServerHooks{}
}
