package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/observability"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type Cache interface {
	GetList() ([]domain.Product, bool)
	SetList([]domain.Product)
	InvalidateList()
	Get(int) (*domain.Product, bool)
	Set(*domain.Product)
	Remove(int)
}

type Catalog interface {
	ListProducts(context.Context) ([]domain.Product, error)
	GetProduct(context.Context, int) (*domain.Product, error)
}

// Service answers product queries from the cache and falls back to the
// upstream catalog. Concurrent misses for the same key share one fetch.
type Service struct {
	cache   Cache
	catalog Catalog
	logger  *zap.Logger
	metrics observability.Metrics
	group   singleflight.Group
}

func NewService(cache Cache, catalog Catalog, logger *zap.Logger, metrics observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Service{
		cache:   cache,
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
	}
}

// ParseID accepts a decimal id > 0. An empty id is rejected before any fetch.
func ParseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, _, err := s.ListProductsWithStats(ctx)
	return products, err
}

func (s *Service) ListProductsWithStats(ctx context.Context) ([]domain.Product, LookupStats, error) {
	var st LookupStats

	tCacheStart := time.Now()
	if products, ok := s.cache.GetList(); ok {
		st.Source = SourceCache
		st.CacheMs = convertToMs(tCacheStart)
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)
		return products, st, nil
	}

	s.metrics.IncCacheMiss()
	st.CacheMs = convertToMs(tCacheStart)

	tUpstreamStart := time.Now()
	v, shared, err := s.shared(ctx, "list", func(ctx context.Context) (any, error) {
		products, err := s.catalog.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.SetList(products)
		return products, nil
	})
	if err != nil {
		s.logger.Error("Can't fetch product list",
			zap.Error(err),
			zap.Float64("cache_ms", st.CacheMs),
		)
		return nil, st, err
	}

	st.Source = SourceUpstream
	st.UpstreamMs = convertToMs(tUpstreamStart)

	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.UpstreamMs)
	s.logger.Info("Product list fetched from upstream",
		zap.Int("count", len(v.([]domain.Product))),
		zap.Bool("shared", shared),
		zap.Float64("upstream_ms", st.UpstreamMs),
	)

	out := make([]domain.Product, len(v.([]domain.Product)))
	copy(out, v.([]domain.Product))
	return out, st, nil
}

func (s *Service) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	p, _, err := s.GetProductWithStats(ctx, id)
	return p, err
}

func (s *Service) GetProductWithStats(ctx context.Context, id int) (*domain.Product, LookupStats, error) {
	var st LookupStats
	if id <= 0 {
		return nil, st, domain.ErrInvalidID
	}

	tCacheStart := time.Now()
	if p, ok := s.cache.Get(id); ok {
		st.Source = SourceCache
		st.CacheMs = convertToMs(tCacheStart)
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs, 0)

		s.logger.Debug("Product fetched from cache",
			zap.Int("id", id),
			zap.Float64("cache_ms", st.CacheMs),
		)
		return p, st, nil
	}

	s.metrics.IncCacheMiss()
	st.CacheMs = convertToMs(tCacheStart)

	tUpstreamStart := time.Now()
	v, _, err := s.shared(ctx, "product:"+strconv.Itoa(id), func(ctx context.Context) (any, error) {
		p, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.Set(p)
		return p, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Info("Product not found", zap.Int("id", id))
		} else {
			s.logger.Error("Can't fetch product",
				zap.Int("id", id),
				zap.Error(err),
				zap.Float64("cache_ms", st.CacheMs),
			)
		}
		return nil, st, err
	}

	st.Source = SourceUpstream
	st.UpstreamMs = convertToMs(tUpstreamStart)

	s.metrics.ObserveLookup(string(st.Source), st.CacheMs, st.UpstreamMs)
	s.logger.Info("Product fetched from upstream",
		zap.Int("id", id),
		zap.Float64("cache_ms", st.CacheMs),
		zap.Float64("upstream_ms", st.UpstreamMs),
	)

	p := *v.(*domain.Product)
	return &p, st, nil
}

// shared runs fn once per key for all concurrent callers. fn gets a context
// that outlives any single caller, so one caller going away does not fail the
// others; each caller still stops waiting when its own ctx is done.
func (s *Service) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, bool, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Refresh replaces the cached copy of product id with the upstream one and
// drops the cached list. A product gone upstream is evicted.
func (s *Service) Refresh(ctx context.Context, id int) error {
	if id <= 0 {
		return domain.ErrInvalidID
	}
	p, err := s.catalog.GetProduct(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.cache.Remove(id)
	case err != nil:
		return err
	default:
		s.cache.Set(p)
	}
	s.cache.InvalidateList()
	s.logger.Info("Product refreshed", zap.Int("id", id), zap.Bool("removed", p == nil))
	return nil
}
