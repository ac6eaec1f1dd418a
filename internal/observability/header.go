package observability

import (
	"net/http"
	"strconv"
	"strings"
)

// Timing is one Server-Timing metric. A non-positive Ms drops the dur
// parameter and an empty Desc drops desc.
type Timing struct {
	Name string
	Ms   float64
	Desc string
}

func (t Timing) String() string {
	if t.Ms <= 0 && t.Desc == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(t.Name)
	if t.Ms > 0 {
		b.WriteString(";dur=")
		b.WriteString(formatMs(t.Ms))
	}
	if t.Desc != "" {
		b.WriteString(";desc=")
		b.WriteString(strconv.Quote(t.Desc))
	}
	return b.String()
}

// WriteTimings adds a Server-Timing value for every timing that carries data.
func WriteTimings(h http.Header, timings ...Timing) {
	for _, t := range timings {
		if v := t.String(); v != "" {
			h.Add("Server-Timing", v)
		}
	}
}

// WriteLookup describes where a catalog answer came from, both as
// Server-Timing entries and as the X-Source / X-Cache-Time /
// X-Upstream-Time headers the storefront reads.
func WriteLookup(h http.Header, source string, cacheMs, upstreamMs float64) {
	WriteTimings(h,
		Timing{Name: "cache", Ms: cacheMs},
		Timing{Name: "upstream", Ms: upstreamMs},
		Timing{Name: "source", Desc: source},
	)
	if source != "" {
		h.Set("X-Source", source)
	}
	SetDuration(h, "X-Cache-Time", cacheMs)
	SetDuration(h, "X-Upstream-Time", upstreamMs)
}

// SetDuration sets key to ms with two decimals. Non-positive values leave
// the header untouched.
func SetDuration(h http.Header, key string, ms float64) {
	if ms > 0 {
		h.Set(key, formatMs(ms))
	}
}

func formatMs(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 2, 64)
}
