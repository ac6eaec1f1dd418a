package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/application/service"
	"github.com/iamcryptofennec/simple-store/internal/cart"
	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/imagecache"
	"github.com/iamcryptofennec/simple-store/internal/observability"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type ProductsWithStats interface {
	ListProductsWithStats(ctx context.Context) ([]domain.Product, service.LookupStats, error)
	GetProductWithStats(ctx context.Context, id int) (*domain.Product, service.LookupStats, error)
}

type Cart interface {
	Items() []domain.CartItem
	Count() int
	Total() decimal.Decimal
	AddQuantity(ctx context.Context, p domain.Product, quantity int)
	ChangeQuantity(ctx context.Context, id, delta int, removeAtZero bool) cart.Change
	RemoveItem(ctx context.Context, id int) bool
	Subscribe() (<-chan []domain.CartItem, func())
}

type Images interface {
	IsLoaded(src, scope string) bool
	State(src, scope string) imagecache.State
	Load(ctx context.Context, src, scope string) *imagecache.Handle
}

type Snapshotter interface {
	Snapshot() observability.Snapshot
}

type Server struct {
	products ProductsWithStats
	cart     Cart
	images   Images
	relay    http.Handler
	snap     Snapshotter

	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

type Option func(*Server)

// WithRelay mounts h under /relay.
func WithRelay(h http.Handler) Option { return func(s *Server) { s.relay = h } }

// WithDebug exposes recent observations on /debug/metrics.
func WithDebug(snap Snapshotter) Option { return func(s *Server) { s.snap = snap } }

func New(products ProductsWithStats, store Cart, images Images, logger *zap.Logger, metrics observability.Metrics, opts ...Option) *Server {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	s := &Server{
		products: products,
		cart:     store,
		images:   images,
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.listProducts)
		r.Get("/grouped", s.groupedProducts)
		r.Get("/{id}", s.getProduct)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", s.getCart)
		r.Get("/watch", s.watchCart)
		r.Post("/items", s.addItem)
		r.Patch("/items/{id}", s.updateItem)
		r.Delete("/items/{id}", s.removeItem)
		r.Post("/checkout", s.checkout)
	})

	r.Get("/images/state", s.imageState)
	r.Post("/images/load", s.loadImage)

	if s.relay != nil {
		r.Mount("/relay", http.StripPrefix("/relay", s.relay))
	}
	if s.snap != nil {
		r.Get("/debug/metrics", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, s.snap.Snapshot())
		})
	}

	s.router = r
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// lookupStatus maps query-layer errors onto HTTP statuses.
func lookupStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "invalid product id"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "product not found"
	default:
		return http.StatusBadGateway, "catalog unavailable"
	}
}

func setLookupHeaders(w http.ResponseWriter, st service.LookupStats) {
	observability.WriteLookup(w.Header(), string(st.Source), st.CacheMs, st.UpstreamMs)
}
