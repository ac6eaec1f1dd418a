package observability

type Metrics interface {
	ObserveLookup(source string, cacheMs, upstreamMs float64)
	ObserveCartWrite(writeMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveFeed(processMs float64, ok bool)
	ObserveImageLoad(loadMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, float64, float64)   {}
func (Noop) ObserveCartWrite(float64, bool)           {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveFeed(float64, bool)                {}
func (Noop) ObserveImageLoad(float64, bool)           {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
