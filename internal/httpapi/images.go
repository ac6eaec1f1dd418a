package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iamcryptofennec/simple-store/internal/imagecache"
)

type imageStateJSON struct {
	Key   string `json:"key"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

type loadImageRequest struct {
	Src     string `json:"src"`
	Scope   string `json:"scope"`
	Wait    bool   `json:"wait"`
	Retries int    `json:"retries"`
}

const maxImageRetries = 3

func (s *Server) imageState(w http.ResponseWriter, r *http.Request) {
	src := strings.TrimSpace(r.URL.Query().Get("src"))
	if src == "" {
		writeError(w, http.StatusBadRequest, "src is required")
		return
	}
	scope := r.URL.Query().Get("scope")
	writeJSON(w, http.StatusOK, imageStateJSON{
		Key:   imagecache.Key(src, scope),
		State: s.images.State(src, scope).String(),
	})
}

func (s *Server) loadImage(w http.ResponseWriter, r *http.Request) {
	var req loadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	req.Src = strings.TrimSpace(req.Src)
	if req.Src == "" {
		writeError(w, http.StatusBadRequest, "src is required")
		return
	}

	if req.Retries < 0 || req.Retries > maxImageRetries {
		writeError(w, http.StatusBadRequest, "retries must be between 0 and 3")
		return
	}

	key := imagecache.Key(req.Src, req.Scope)
	if !req.Wait {
		s.images.Load(r.Context(), req.Src, req.Scope)
		writeJSON(w, http.StatusAccepted, imageStateJSON{
			Key:   key,
			State: s.images.State(req.Src, req.Scope).String(),
		})
		return
	}

	g := imagecache.NewGate(s.images, req.Src, req.Scope)
	state, err := g.Wait(r.Context())
	for attempt := 0; state == imagecache.Failed && attempt < req.Retries; attempt++ {
		g.Retry(r.Context())
		state, err = g.Wait(r.Context())
	}
	if state != imagecache.Ready {
		writeJSON(w, http.StatusBadGateway, imageStateJSON{
			Key:   key,
			State: s.images.State(req.Src, req.Scope).String(),
			Error: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, imageStateJSON{Key: key, State: imagecache.Loaded.String()})
}
