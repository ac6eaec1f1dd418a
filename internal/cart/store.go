// Package cart holds the shopper's in-progress selections and writes them
// through to durable storage after every mutation.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iamcryptofennec/simple-store/internal/domain"
	"github.com/iamcryptofennec/simple-store/internal/observability"
)

// Store is the single source of truth for cart contents. Only its mutating
// methods change state; readers always get copies.
//
// Mutations are serialized and each one is persisted while the lock is still
// held, so durable writes happen in mutation order.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	persister Persister
	logger    *zap.Logger
	metrics   observability.Metrics

	subMu   sync.Mutex
	subs    map[int]chan []domain.CartItem
	nextSub int
}

// New seeds the store from persister. A nil persister means there is no
// durable storage in this context: the cart starts empty and is never written.
func New(ctx context.Context, persister Persister, logger *zap.Logger, metrics observability.Metrics) *Store {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	s := &Store{
		persister: persister,
		logger:    logger,
		metrics:   metrics,
		subs:      make(map[int]chan []domain.CartItem),
	}
	s.items = s.restore(ctx)
	return s
}

func (s *Store) restore(ctx context.Context) []domain.CartItem {
	if s.persister == nil {
		return nil
	}
	items, err := s.persister.Load(ctx)
	if err != nil {
		var vm *ErrVersionMismatch
		if errors.As(err, &vm) {
			s.logger.Warn("Ignoring cart record with unknown version",
				zap.Int("got", vm.Got),
				zap.Int("want", vm.Want),
			)
			return nil
		}
		s.logger.Warn("Can't restore cart, starting empty", zap.Error(err))
		return nil
	}
	s.logger.Info("Cart restored", zap.Int("lines", len(items)))
	return items
}

// AddToCart adds one unit of p.
func (s *Store) AddToCart(ctx context.Context, p domain.Product) {
	s.AddQuantity(ctx, p, 1)
}

// AddQuantity merges quantity into the line for p.ID, or appends a new line.
// quantity is taken as given, zero and negative values included.
func (s *Store) AddQuantity(ctx context.Context, p domain.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		s.items = append(s.items, domain.CartItem{Product: p, Quantity: quantity})
	}
	s.commit(ctx)
}

// UpdateQuantity shifts the quantity of line id by delta. Unknown ids and
// changes that would leave the quantity at zero or below are ignored; it
// reports whether the cart changed.
func (s *Store) UpdateQuantity(ctx context.Context, id, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if s.items[i].Quantity+delta <= 0 {
		return false
	}
	s.items[i].Quantity += delta
	s.commit(ctx)
	return true
}

// Change reports what ChangeQuantity did.
type Change int

const (
	// ChangeMissing means there is no line with that id.
	ChangeMissing Change = iota
	// ChangeNeedsConfirm means the line would drop to zero and was left alone.
	ChangeNeedsConfirm
	ChangeUpdated
	ChangeRemoved
)

// ChangeQuantity shifts line id by delta. When the result would be zero or
// below the line is removed if removeAtZero is set and kept unchanged
// otherwise. The check and the write happen under one lock.
func (s *Store) ChangeQuantity(ctx context.Context, id, delta int, removeAtZero bool) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ChangeMissing
	}
	if s.items[i].Quantity+delta > 0 {
		s.items[i].Quantity += delta
		s.commit(ctx)
		return ChangeUpdated
	}
	if !removeAtZero {
		return ChangeNeedsConfirm
	}
	kept := make([]domain.CartItem, 0, len(s.items)-1)
	kept = append(kept, s.items[:i]...)
	s.items = append(kept, s.items[i+1:]...)
	s.commit(ctx)
	return ChangeRemoved
}

// RemoveItem drops line id and reports whether it existed. The record is
// rewritten either way.
func (s *Store) RemoveItem(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	kept := s.items[:0:0]
	for _, it := range s.items {
		if it.ID == id {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.commit(ctx)
	return removed
}

// Total is the sum of price*quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) Item(id int) (domain.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return domain.CartItem{}, false
}

// Count is the number of lines, not units.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe delivers a snapshot after every mutation. Slow readers only see
// the latest snapshot. Call the returned func to unsubscribe.
func (s *Store) Subscribe() (<-chan []domain.CartItem, func()) {
	ch := make(chan []domain.CartItem, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	}
}

func (s *Store) indexOf(id int) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// commit runs with s.mu held. A mutation is never abandoned halfway, so the
// write ignores cancellation of the caller's context.
func (s *Store) commit(ctx context.Context) {
	snap := s.snapshot()
	s.persist(context.WithoutCancel(ctx), snap)
	s.publish(snap)
}

func (s *Store) persist(ctx context.Context, items []domain.CartItem) {
	if s.persister == nil {
		return
	}
	t0 := time.Now()
	err := s.persister.Save(ctx, items)
	writeMs := float64(time.Since(t0).Microseconds()) / 1000.0
	s.metrics.ObserveCartWrite(writeMs, err == nil)
	if err != nil {
		s.logger.Warn("Cart write-through failed, keeping in-memory state",
			zap.Int("lines", len(items)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Cart persisted",
		zap.Int("lines", len(items)),
		zap.Float64("write_ms", writeMs),
	)
}

func (s *Store) publish(items []domain.CartItem) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		snap := make([]domain.CartItem, len(items))
		copy(snap, items)
		select {
		case ch <- snap:
		default:
		}
	}
}
