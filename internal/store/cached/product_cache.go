// Package cached wraps internal/store.ProductStore's GetProductByID read
// path with internal/cache's TTL cache, the same in-memory-with-expiry idiom
// the Frontier uses. Neither cmd binary wires it in; both use the Postgres
// ProductStore directly.
package cached

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/cache"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// ProductStore wraps a store.ProductStore, caching GetProductByID reads and
// invalidating on every write so callers never observe stale data after
// their own mutation.
type ProductStore struct {
	store.ProductStore
	cache *cache.TTLCache
}

func NewProductStore(inner store.ProductStore, ttl time.Duration) *ProductStore {
	return &ProductStore{
		ProductStore: inner,
		cache:        cache.New(ttl, ttl*2),
	}
}

func (c *ProductStore) GetProductByID(ctx context.Context, exec store.Querier, id uuid.UUID) (*models.Product, error) {
	key := id.String()
	if cached, ok := c.cache.Get(key); ok {
		if p, ok := cached.(*models.Product); ok {
			return p, nil
		}
	}
	p, err := c.ProductStore.GetProductByID(ctx, exec, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, p)
	return p, nil
}

func (c *ProductStore) CreateProduct(ctx context.Context, exec store.Querier, p *models.Product) error {
	if err := c.ProductStore.CreateProduct(ctx, exec, p); err != nil {
		return err
	}
	c.cache.Delete(p.ID.String())
	return nil
}

func (c *ProductStore) UpdateProduct(ctx context.Context, exec store.Querier, p *models.Product) error {
	if err := c.ProductStore.UpdateProduct(ctx, exec, p); err != nil {
		return err
	}
	c.cache.Delete(p.ID.String())
	return nil
}
