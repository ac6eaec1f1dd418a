package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/iamcryptofennec/simple-store/internal/domain"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

const listKey = "products"

// Cache holds the product list and single products for ttl.
type Cache struct {
	size  int
	list  *expirable.LRU[string, []domain.Product]
	items *expirable.LRU[int, domain.Product]
}

func New(size int, ttl time.Duration) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		size:  size,
		list:  expirable.NewLRU[string, []domain.Product](1, nil, ttl),
		items: expirable.NewLRU[int, domain.Product](size, nil, ttl),
	}
}

// Warm fills the cache from one list fetch. Errors leave it cold.
func (c *Cache) Warm(ctx context.Context, catalog catalog) int {
	products, err := catalog.ListProducts(ctx)
	if err != nil {
		return 0
	}
	c.SetList(products)
	if len(products) > c.size {
		return c.size
	}
	return len(products)
}

func (c *Cache) GetList() ([]domain.Product, bool) {
	products, ok := c.list.Get(listKey)
	if !ok {
		return nil, false
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, true
}

// SetList caches the list and every product in it.
func (c *Cache) SetList(products []domain.Product) {
	stored := make([]domain.Product, len(products))
	copy(stored, products)
	c.list.Add(listKey, stored)
	for _, p := range stored {
		c.items.Add(p.ID, p)
	}
}

func (c *Cache) InvalidateList() {
	c.list.Remove(listKey)
}

func (c *Cache) Get(id int) (*domain.Product, bool) {
	p, ok := c.items.Get(id)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (c *Cache) Set(p *domain.Product) {
	c.items.Add(p.ID, *p)
}

func (c *Cache) Remove(id int) {
	c.items.Remove(id)
}
