package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/iamcryptofennec/simple-store/internal/application/handler"
	"github.com/iamcryptofennec/simple-store/internal/application/service"
	"github.com/iamcryptofennec/simple-store/internal/cache"
	"github.com/iamcryptofennec/simple-store/internal/cart"
	"github.com/iamcryptofennec/simple-store/internal/client"
	"github.com/iamcryptofennec/simple-store/internal/config"
	"github.com/iamcryptofennec/simple-store/internal/httpapi"
	"github.com/iamcryptofennec/simple-store/internal/imagecache"
	"github.com/iamcryptofennec/simple-store/internal/kafka"
	"github.com/iamcryptofennec/simple-store/internal/observability"
	"github.com/iamcryptofennec/simple-store/internal/pkg/breaker"
	"github.com/iamcryptofennec/simple-store/internal/relay"
	"github.com/iamcryptofennec/simple-store/internal/storage"
)

const (
	imageTimeout = 30 * time.Second
	recentLimit  = 256
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("storefront exited with error", zap.Error(err))
	}
	logger.Info("storefront stopped")
}

// newLogger builds a development logger for APP_ENV=dev and a JSON
// production logger otherwise, both at LOG_LEVEL.
func newLogger(env, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	if env == "dev" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	metrics := observability.NewInmem(recentLimit)

	persister, closeStorage, err := openPersister(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	store := cart.New(ctx, persister, logger.Named("cart"), metrics)

	upstream := client.NewCatalog(cfg.Catalog, breaker.New(cfg.Breaker), logger.Named("catalog"))
	defer upstream.Close()

	products := cache.New(cfg.Catalog.CacheCap, cfg.Catalog.TTL)
	if n := products.Warm(ctx, upstream); n > 0 {
		logger.Info("product cache warmed", zap.Int("products", n))
	}
	svc := service.NewService(products, upstream, logger.Named("service"), metrics)

	loader := imagecache.NewHTTPLoader(imageTimeout)
	defer loader.Close()
	images := imagecache.New(loader, imageTimeout, logger.Named("images"), metrics)
	prefetcher := imagecache.NewPrefetcher(images, cfg.PrefetchWorkers)
	defer prefetcher.Close()

	rl := relay.New(cfg.Relay.Upstream, cfg.Catalog.Timeout, logger.Named("relay"))
	defer rl.Close()

	api := httpapi.New(svc, store, images, logger.Named("http"), metrics,
		httpapi.WithRelay(rl),
		httpapi.WithDebug(metrics),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return api.ListenAndServe(ctx, cfg.HTTPAddr)
	})

	if cfg.Relay.Addr != "" {
		g.Go(func() error {
			return serveRelay(ctx, cfg.Relay.Addr, rl, logger)
		})
	}

	g.Go(func() error {
		list, err := svc.ListProducts(ctx)
		if err != nil {
			logger.Warn("image prefetch skipped", zap.Error(err))
			return nil
		}
		srcs := make([]string, 0, len(list))
		for _, p := range list {
			srcs = append(srcs, p.Image)
		}
		n := prefetcher.Prefetch(ctx, srcs, "")
		logger.Info("list images prefetched", zap.Int("loaded", n), zap.Int("requested", len(srcs)))
		return nil
	})

	if cfg.KafkaEnabled() {
		g.Go(func() error {
			return runFeed(ctx, cfg, svc, metrics, logger.Named("feed"))
		})
	}

	return g.Wait()
}

// openPersister picks the durable backend for the cart record. A nil
// Persister means the cart lives in memory only.
func openPersister(ctx context.Context, cfg config.Config, logger *zap.Logger) (cart.Persister, func(), error) {
	noop := func() {}

	switch cfg.Cart.Storage {
	case config.StorageNone:
		logger.Info("cart storage disabled")
		return nil, noop, nil

	case config.StorageFile:
		fs, err := storage.NewFile(cfg.Cart.Dir)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("cart storage ready", zap.String("backend", "file"), zap.String("dir", cfg.Cart.Dir))
		return cart.NewKVPersister(fs, cfg.Cart.StorageKey), noop, nil

	case config.StoragePostgres:
		pool, err := storage.Connect(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, noop, err
		}
		pg := storage.NewPostgres(pool, cfg.Cart.Table)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("cart storage ready", zap.String("backend", "postgres"), zap.String("table", cfg.Cart.Table))
		return cart.NewKVPersister(pg, cfg.Cart.StorageKey), pool.Close, nil

	case config.StorageRedis:
		rdb, err := storage.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("cart storage ready", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
		return cart.NewKVPersister(storage.NewRedis(rdb), cfg.Cart.StorageKey), func() { _ = rdb.Close() }, nil
	}
	return nil, noop, errors.New("unknown cart storage " + cfg.Cart.Storage)
}

func serveRelay(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("relay listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runFeed(ctx context.Context, cfg config.Config, svc *service.Service, metrics observability.Metrics, logger *zap.Logger) error {
	if err := kafka.EnsureTopic(ctx, cfg.Kafka, logger); err != nil {
		return err
	}

	reader := kafka.NewReader(cfg.Kafka)
	defer reader.Close()

	h := handler.NewHandler(svc, breaker.New(cfg.Breaker), cfg.Retry, logger, metrics)
	return kafka.NewConsumer(h, reader, cfg.Kafka.Workers, logger).Start(ctx)
}
