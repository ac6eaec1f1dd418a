package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/config"
	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/observability"
	"github.com/iamcryptofennec/simple-store/internal/pkg/retry"
)

//go:generate mockgen -source internal/application/handler/handler.go -destination=internal/application/handler/handler_mock_test.go -package=handler

var (
	ErrBadJSON     = errors.New("bad json")
	ErrRefresh     = errors.New("refresh failed")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

type Service interface {
	Refresh(ctx context.Context, id int) error
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

// Handler applies catalog change messages to the product cache.
type Handler struct {
	service     Service
	breaker     brk
	logger      *zap.Logger
	metrics     observability.Metrics
	retryPolicy config.Retry
}

func NewHandler(service Service, brk brk, retryPolicy config.Retry, logger *zap.Logger, metrics observability.Metrics) *Handler {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Handler{
		service:     service,
		breaker:     brk,
		logger:      logger,
		metrics:     metrics,
		retryPolicy: retryPolicy,
	}
}

// Handle is called by the consumer for a single message. The consumer
// commits the offset only after Handle returns nil.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	t0 := time.Now()
	err := h.handle(ctx, message)
	h.metrics.ObserveFeed(float64(time.Since(t0).Microseconds())/1000.0, err == nil)
	return err
}

func (h *Handler) handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	var product domain.Product
	if err := json.Unmarshal(message.Value, &product); err != nil {
		h.logger.Error("bad json format",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}
	if product.ID <= 0 {
		h.logger.Error("missing product id",
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrBadJSON
	}

	if err := retry.Do(ctx, h.retryPolicy, func() error {
		return h.service.Refresh(ctx, product.ID)
	}); err != nil {
		h.logger.Error("refresh failed after retries",
			zap.Int("id", product.ID),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return ErrRefresh
	}

	h.breaker.Success()
	h.logger.Info("successfully processed product change",
		zap.Int("id", product.ID),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
		zap.Int("key_bytes", len(message.Key)),
		zap.Int("value_bytes", len(message.Value)),
	)
	return nil
}
