package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/client"
	"github.com/iamcryptofennec/simple-store/internal/config"
	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/kafka"
	"github.com/iamcryptofennec/simple-store/internal/pkg/breaker"
)

const maxRate = 1000

type catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Feeder replays the upstream catalog onto the change topic at a fixed rate.
type Feeder struct {
	writer    kafka.Writer
	catalog   catalog
	logger    *zap.Logger
	isRunning atomic.Bool
	wg        sync.WaitGroup
	mu        sync.Mutex
	cancel    context.CancelFunc
	totalSent atomic.Int64
	startedAt time.Time
}

type FeedRequest struct {
	Rate     int    `json:"rate"`
	Duration string `json:"duration"`
}

type FeedStats struct {
	IsRunning bool    `json:"is_running"`
	TotalSent int64   `json:"total_sent"`
	Rate      float64 `json:"rate"`
}

func NewFeeder(writer kafka.Writer, catalog catalog, logger *zap.Logger) *Feeder {
	return &Feeder{
		writer:  writer,
		catalog: catalog,
		logger:  logger,
	}
}

// Start loads the catalog once, then publishes its products round-robin
// until duration elapses or Stop is called.
func (f *Feeder) Start(ctx context.Context, rate int, duration time.Duration) error {
	if !f.isRunning.CompareAndSwap(false, true) {
		return nil
	}

	products, err := f.catalog.ListProducts(ctx)
	if err != nil {
		f.isRunning.Store(false)
		return err
	}
	if len(products) == 0 {
		f.isRunning.Store(false)
		return errors.New("upstream catalog is empty")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	f.mu.Lock()
	f.cancel = cancel
	f.startedAt = time.Now()
	f.mu.Unlock()
	f.totalSent.Store(0)

	f.logger.Info("Starting feed",
		zap.Int("rate", rate),
		zap.Duration("duration", duration),
		zap.Int("products", len(products)),
	)

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer f.isRunning.Store(false)
		defer cancel()

		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		timer := time.NewTimer(duration)
		defer timer.Stop()

		for i := 0; ; i++ {
			select {
			case <-ticker.C:
				p := products[i%len(products)]
				if err := kafka.PublishProduct(runCtx, f.writer, p); err != nil {
					f.logger.Warn("publish failed", zap.Int("id", p.ID), zap.Error(err))
					continue
				}
				f.totalSent.Add(1)

			case <-timer.C:
				f.logger.Info("Feed completed", zap.Int64("total_sent", f.totalSent.Load()))
				return

			case <-runCtx.Done():
				f.logger.Info("Feed stopped", zap.Int64("total_sent", f.totalSent.Load()))
				return
			}
		}
	}()
	return nil
}

func (f *Feeder) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	f.wg.Wait()
}

func (f *Feeder) Stats() FeedStats {
	f.mu.Lock()
	started := f.startedAt
	f.mu.Unlock()

	st := FeedStats{
		IsRunning: f.isRunning.Load(),
		TotalSent: f.totalSent.Load(),
	}
	if secs := time.Since(started).Seconds(); !started.IsZero() && secs > 0 {
		st.Rate = float64(st.TotalSent) / secs
	}
	return st
}

func (f *Feeder) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Post("/start", func(w http.ResponseWriter, r *http.Request) {
		var req FeedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Rate <= 0 {
			req.Rate = 10
		}
		if req.Rate > maxRate {
			req.Rate = maxRate
		}
		duration, err := time.ParseDuration(req.Duration)
		if err != nil || duration <= 0 {
			http.Error(w, "Invalid duration format", http.StatusBadRequest)
			return
		}

		if err := f.Start(r.Context(), req.Rate, duration); err != nil {
			f.logger.Error("feed start failed", zap.Error(err))
			http.Error(w, "catalog unavailable: "+err.Error(), http.StatusBadGateway)
			return
		}

		writeJSON(w, map[string]any{
			"status":   "started",
			"rate":     req.Rate,
			"duration": duration.String(),
		})
	})

	r.Post("/stop", func(w http.ResponseWriter, _ *http.Request) {
		f.Stop()
		writeJSON(w, map[string]any{
			"status":     "stopped",
			"total_sent": f.totalSent.Load(),
		})
	})

	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, f.Stats())
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	if !cfg.KafkaEnabled() {
		logger.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kafka.EnsureTopic(ctx, cfg.Kafka, logger); err != nil {
		logger.Fatal("ensure topic", zap.Error(err))
	}

	writer := kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func(w *kafkago.Writer) { _ = w.Close() }(writer)

	upstream := client.NewCatalog(cfg.Catalog, breaker.New(cfg.Breaker), logger.Named("catalog"))
	defer upstream.Close()

	feeder := NewFeeder(writer, upstream, logger)
	defer feeder.Stop()

	addr := ":8082"
	if v := os.Getenv("FEEDER_ADDR"); v != "" {
		addr = v
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           feeder.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Feeder started", zap.String("addr", addr), zap.String("topic", cfg.Kafka.Topic))
	logger.Info("Endpoints: POST /start, POST /stop, GET /stats")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("feeder server", zap.Error(err))
	}
}
