package observability

import (
	"context"

	"movie-collections/internal/core/ports"
)

// InstrumentedCache is a decorator to intercept movie-cache calls and
// record hit/miss metrics.
type InstrumentedCache struct {
	inner ports.MovieCache
}

// NewInstrumentedCache creates a new instrumented cache wrapper.
func NewInstrumentedCache(inner ports.MovieCache) *InstrumentedCache {
	return &InstrumentedCache{inner: inner}
}

var _ ports.MovieCache = (*InstrumentedCache)(nil)

func (c *InstrumentedCache) Set(ctx context.Context, id string, data []byte) error {
	return c.inner.Set(ctx, id, data)
}

func (c *InstrumentedCache) Remove(ctx context.Context, id string) error {
	return c.inner.Remove(ctx, id)
}

func (c *InstrumentedCache) GetBatch(ctx context.Context, ids []string) (map[string][]byte, error) {
	res, err := c.inner.GetBatch(ctx, ids)
	if err == nil {
		hits := float64(len(res))
		misses := float64(len(ids) - len(res))
		cacheHits.Add(hits)
		cacheMisses.Add(misses)
	}
	return res, err
}

func (c *InstrumentedCache) SetGenres(ctx context.Context, genres []string) error {
	return c.inner.SetGenres(ctx, genres)
}

func (c *InstrumentedCache) GetGenres(ctx context.Context) ([]string, error) {
	genres, err := c.inner.GetGenres(ctx)
	if err == nil {
		if len(genres) > 0 {
			cacheHits.Add(1)
		} else {
			cacheMisses.Add(1)
		}
	}
	return genres, err
}
