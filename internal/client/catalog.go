// Package client talks to the upstream product catalog API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
	"resty.dev/v3"

	"github.com/iamcryptofennec/simple-store/internal/config"
	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/pkg/breaker"
)

type brk interface {
	Allow() error
	Success()
	Failure()
	Release()
}

// Catalog is a rate-limited client for /products and /products/{id}.
// Transport errors and 5xx responses count against the breaker; once it is
// open calls fail fast with domain.ErrUpstream.
type Catalog struct {
	http    *resty.Client
	rl      ratelimit.Limiter
	breaker brk
	logger  *zap.Logger
}

func NewCatalog(cfg config.Catalog, b brk, logger *zap.Logger) *Catalog {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.RPS > 0 {
		rl = ratelimit.New(cfg.RPS)
	}
	if b == nil {
		b = breaker.New(config.Breaker{})
	}
	return &Catalog{
		http:    client,
		rl:      rl,
		breaker: b,
		logger:  logger,
	}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: decode product list: %v", domain.ErrUpstream, err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// GetProduct maps 404 and an empty body to domain.ErrNotFound; the public
// catalog answers unknown ids with 200 and no content.
func (c *Catalog) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	body, err := c.get(ctx, "/products/"+strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil, domain.ErrNotFound
	}
	var p domain.Product
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return nil, fmt.Errorf("%w: decode product %d: %v", domain.ErrUpstream, id, err)
	}
	return &p, nil
}

func (c *Catalog) get(ctx context.Context, path string) ([]byte, error) {
	c.rl.Take()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.breaker.Allow(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		// An abandoned call says nothing about the upstream.
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.breaker.Release()
			return nil, ctxErr
		}
		c.breaker.Failure()
		c.logger.Warn("Catalog request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusNotFound:
		c.breaker.Success()
		return nil, domain.ErrNotFound
	case code >= http.StatusInternalServerError:
		c.breaker.Failure()
		c.logger.Warn("Catalog upstream error", zap.String("path", path), zap.Int("status", code))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, code)
	case resp.IsError():
		c.breaker.Success()
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, code)
	}

	c.breaker.Success()
	return []byte(resp.String()), nil
}

func (c *Catalog) Close() error {
	return c.http.Close()
}
