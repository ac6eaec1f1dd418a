package observability

import "sync"

type observe struct {
	Kind   string
	Source string
	Method string
	Route  string
	Status int
	Dur    float64
	Extra  float64
	OK     bool
}

// Inmem keeps the last max observations plus cache counters. It backs the
// /debug/metrics endpoint.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[len(m.last)-m.max:]
	}
}

func (m *Inmem) ObserveLookup(source string, cacheMs, upstreamMs float64) {
	m.push(&observe{Kind: "lookup", Source: source, Dur: cacheMs, Extra: upstreamMs, OK: true})
}

func (m *Inmem) ObserveCartWrite(writeMs float64, ok bool) {
	m.push(&observe{Kind: "cart_write", Dur: writeMs, OK: ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Method: method, Route: route, Status: status, Dur: durMs, OK: status < 500})
}

func (m *Inmem) ObserveFeed(processMs float64, ok bool) {
	m.push(&observe{Kind: "feed", Dur: processMs, OK: ok})
}

func (m *Inmem) ObserveImageLoad(loadMs float64, ok bool) {
	m.push(&observe{Kind: "image", Dur: loadMs, OK: ok})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// Snapshot is a point-in-time copy of the recorded observations.
type Snapshot struct {
	CacheHits   int              `json:"cache_hits"`
	CacheMisses int              `json:"cache_misses"`
	Recent      []map[string]any `json:"recent"`
}

func (m *Inmem) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		CacheHits:   m.totals.cacheHits,
		CacheMisses: m.totals.cacheMiss,
		Recent:      make([]map[string]any, 0, len(m.last)),
	}
	for _, o := range m.last {
		entry := map[string]any{"kind": o.Kind, "dur_ms": o.Dur, "ok": o.OK}
		switch o.Kind {
		case "lookup":
			entry["source"] = o.Source
			entry["upstream_ms"] = o.Extra
		case "http":
			entry["method"] = o.Method
			entry["route"] = o.Route
			entry["status"] = o.Status
		}
		s.Recent = append(s.Recent, entry)
	}
	return s
}
