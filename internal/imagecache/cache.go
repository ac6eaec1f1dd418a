// Package imagecache memoizes image loads so every consumer of the same
// image shares one fetch and can cheaply ask whether it is ready to paint.
package imagecache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/observability"
)

// ErrLoadFailed wraps every loader failure delivered through a Handle.
var ErrLoadFailed = errors.New("image load failed")

// Loader fetches src and returns nil once the image is ready to be shown.
type Loader interface {
	Load(ctx context.Context, src string) error
}

// State of a cache entry.
type State int

const (
	Absent State = iota
	Pending
	Loaded
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	default:
		return "absent"
	}
}

// Handle resolves once the load it belongs to settles. It is shared by every
// caller that asked for the same key while the load was in flight.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle { return &Handle{done: make(chan struct{})} }

func resolvedHandle() *Handle {
	h := newHandle()
	close(h.done)
	return h
}

func (h *Handle) Done() <-chan struct{} { return h.done }

// Err is nil while pending and after success.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the load settles or ctx is done. Giving up does not
// cancel the load itself.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type entry struct {
	handle *Handle
	loaded bool
}

// Cache keys entries by Key(src, scope). Entries are never evicted; a failed
// load removes its entry so the next request starts over.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry

	loader  Loader
	timeout time.Duration
	logger  *zap.Logger
	metrics observability.Metrics
}

// New returns an empty cache. timeout bounds a single load; zero means none.
func New(loader Loader, timeout time.Duration, logger *zap.Logger, metrics observability.Metrics) *Cache {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Cache{
		entries: make(map[string]*entry),
		loader:  loader,
		timeout: timeout,
		logger:  logger,
		metrics: metrics,
	}
}

// Key joins scope and src. An empty scope means the image is not scoped.
func Key(src, scope string) string {
	if scope == "" {
		return src
	}
	return scope + ":" + src
}

func (c *Cache) IsLoaded(src, scope string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key(src, scope)]
	return ok && e.loaded
}

func (c *Cache) State(src, scope string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key(src, scope)]
	switch {
	case !ok:
		return Absent
	case e.loaded:
		return Loaded
	default:
		return Pending
	}
}

// Load returns the handle for src under scope, starting a fetch when none is
// loaded or in flight. The fetch runs detached from ctx cancellation.
func (c *Cache) Load(ctx context.Context, src, scope string) *Handle {
	key := Key(src, scope)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		if e.loaded {
			return resolvedHandle()
		}
		return e.handle
	}
	e := &entry{handle: newHandle()}
	c.entries[key] = e
	c.mu.Unlock()

	go c.run(context.WithoutCancel(ctx), key, src, e)
	return e.handle
}

func (c *Cache) run(ctx context.Context, key, src string, e *entry) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	t0 := time.Now()
	err := c.loader.Load(ctx, src)
	loadMs := float64(time.Since(t0).Microseconds()) / 1000.0
	c.metrics.ObserveImageLoad(loadMs, err == nil)

	c.mu.Lock()
	if err != nil {
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		e.handle.err = fmt.Errorf("%w: %s: %v", ErrLoadFailed, src, err)
	} else {
		e.loaded = true
	}
	c.mu.Unlock()
	close(e.handle.done)

	if err != nil {
		c.logger.Warn("Image load failed",
			zap.String("key", key),
			zap.Float64("load_ms", loadMs),
			zap.Error(err),
		)
		return
	}
	c.logger.Debug("Image loaded", zap.String("key", key), zap.Float64("load_ms", loadMs))
}

// Len is the number of pending and loaded entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
