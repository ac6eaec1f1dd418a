package imagecache

import (
	"context"
	"sync"

	"github.com/iamcryptofennec/simple-store/internal/pkg/pool"
)

// Prefetcher warms batches of images on a bounded number of goroutines.
type Prefetcher struct {
	cache *Cache
	pool  *pool.Pool
}

func NewPrefetcher(cache *Cache, workers int) *Prefetcher {
	return &Prefetcher{cache: cache, pool: pool.New(workers)}
}

// Prefetch loads every src under scope and waits for all of them to settle
// or for ctx to be done. It returns how many are loaded.
func (p *Prefetcher) Prefetch(ctx context.Context, srcs []string, scope string) int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		loaded int
	)
	for _, src := range srcs {
		if src == "" {
			continue
		}
		src := src
		wg.Add(1)
		ok := p.pool.Submit(func() {
			defer wg.Done()
			if p.cache.Load(ctx, src, scope).Wait(ctx) == nil {
				mu.Lock()
				loaded++
				mu.Unlock()
			}
		})
		if !ok {
			wg.Done()
		}
	}
	wg.Wait()
	return loaded
}

// Close drains queued work and stops the workers.
func (p *Prefetcher) Close() {
	p.pool.Close()
	p.pool.Wait()
}
