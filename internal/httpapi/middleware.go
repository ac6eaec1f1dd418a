package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iamcryptofennec/simple-store/internal/observability"
)

// ServerTimingApp measures each request, adds app;dur=... to Server-Timing
// just before the headers go out, and reports the request to
// Metrics.ObserveHTTP under its route pattern.
func ServerTimingApp(m observability.Metrics) func(http.Handler) http.Handler {
	if m == nil {
		m = observability.Noop{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			tw := &timingWriter{WrapResponseWriter: ww, start: start}
			next.ServeHTTP(tw, r)

			dur := float64(time.Since(start).Microseconds()) / 1000.0
			route := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, route, status, dur)
		})
	}
}

// timingWriter stamps Server-Timing on the first WriteHeader or Write.
type timingWriter struct {
	middleware.WrapResponseWriter
	start   time.Time
	stamped bool
}

func (w *timingWriter) stamp() {
	if w.stamped {
		return
	}
	w.stamped = true
	dur := float64(time.Since(w.start).Microseconds()) / 1000.0
	observability.WriteTimings(w.Header(), observability.Timing{Name: "app", Ms: dur})
}

func (w *timingWriter) WriteHeader(code int) {
	w.stamp()
	w.WrapResponseWriter.WriteHeader(code)
}

func (w *timingWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.WrapResponseWriter.Write(b)
}
