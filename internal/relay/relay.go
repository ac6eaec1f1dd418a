// Package relay forwards storefront API calls to a fixed upstream so the
// browser-facing side never talks to the catalog host directly.
package relay

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"
)

const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const maxRedirects = 10

// Headers that describe this hop rather than the request.
var skipHeaders = map[string]bool{
	"Connection":        true,
	"Content-Length":    true,
	"Accept-Encoding":   true,
	"Keep-Alive":        true,
	"Te":                true,
	"Trailer":           true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
}

type Relay struct {
	upstream string
	host     string
	client   *resty.Client
	logger   *zap.Logger
}

// New builds a relay for upstream, e.g. "https://fakestoreapi.com".
// A zero timeout leaves requests bounded only by the caller's context.
func New(upstream string, timeout time.Duration, logger *zap.Logger) *Relay {
	upstream = strings.TrimRight(upstream, "/")
	host := upstream
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}

	client := resty.New().
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Relay{
		upstream: upstream,
		host:     host,
		client:   client,
		logger:   logger,
	}
}

func (rl *Relay) Close() error { return rl.client.Close() }

func (rl *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := rl.upstream + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req := rl.client.R().
		SetContext(r.Context()).
		SetDoNotParseResponse(true)
	for k, vv := range r.Header {
		if skipHeaders[http.CanonicalHeaderKey(k)] {
			continue
		}
		req.Header[k] = append([]string(nil), vv...)
	}
	req.SetHeader("Host", rl.host).
		SetHeader("Referer", rl.upstream+"/").
		SetHeader("User-Agent", browserUserAgent)

	resp, err := req.Execute(r.Method, target)
	if err != nil {
		rl.logger.Warn("relay fetch failed",
			zap.String("method", r.Method),
			zap.String("target", target),
			zap.Error(err),
		)
		writeFailure(w, err)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(resp.StatusCode())
	if _, err := io.Copy(w, resp.Body); err != nil && !errors.Is(err, r.Context().Err()) {
		rl.logger.Warn("relay copy interrupted", zap.String("target", target), zap.Error(err))
	}
}

func writeFailure(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}{
		Error:   "Failed to fetch from API",
		Details: err.Error(),
	})
}
