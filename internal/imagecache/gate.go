package imagecache

import (
	"context"
	"sync"
)

// GateState is what a render node should show for its image.
type GateState int

const (
	NotRequested GateState = iota
	Loading
	Ready
	Failed
)

func (s GateState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "not_requested"
	}
}

// Source is what a Gate loads through. *Cache implements it.
type Source interface {
	IsLoaded(src, scope string) bool
	Load(ctx context.Context, src, scope string) *Handle
}

// Gate tracks one image for one render node. A node shows a placeholder
// until the gate is Ready, then the image.
type Gate struct {
	cache      Source
	src, scope string

	mu      sync.Mutex
	state   GateState
	err     error
	changed chan struct{}
}

// NewGate starts Ready when the image is already loaded, NotRequested otherwise.
func NewGate(cache Source, src, scope string) *Gate {
	g := &Gate{
		cache:   cache,
		src:     src,
		scope:   scope,
		changed: make(chan struct{}),
	}
	if cache.IsLoaded(src, scope) {
		g.state = Ready
	}
	return g
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Err is the last load failure, set only in Failed.
func (g *Gate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Changed is closed on the next state transition. Call it again afterwards
// for the following one.
func (g *Gate) Changed() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.changed
}

// Request starts loading when nothing was requested yet. Other states are
// left alone.
func (g *Gate) Request(ctx context.Context) {
	g.start(ctx, NotRequested)
}

// Retry re-enters Loading after a failure.
func (g *Gate) Retry(ctx context.Context) {
	g.start(ctx, Failed)
}

// Wait requests the image if needed and blocks until it is Ready or Failed.
func (g *Gate) Wait(ctx context.Context) (GateState, error) {
	g.Request(ctx)
	for {
		g.mu.Lock()
		state, err, ch := g.state, g.err, g.changed
		g.mu.Unlock()
		if state == Ready || state == Failed {
			return state, err
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return state, ctx.Err()
		}
	}
}

func (g *Gate) start(ctx context.Context, from GateState) {
	g.mu.Lock()
	if g.state != from {
		g.mu.Unlock()
		return
	}
	g.err = nil
	g.setLocked(Loading)
	g.mu.Unlock()

	h := g.cache.Load(ctx, g.src, g.scope)
	go func() {
		<-h.Done()
		g.mu.Lock()
		defer g.mu.Unlock()
		if err := h.Err(); err != nil {
			g.err = err
			g.setLocked(Failed)
			return
		}
		g.setLocked(Ready)
	}()
}

func (g *Gate) setLocked(s GateState) {
	g.state = s
	close(g.changed)
	g.changed = make(chan struct{})
}
