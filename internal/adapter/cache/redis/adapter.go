package redis

import (
	"context"
	"time"

	"movie-collections/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// Adapter caches immutable movie records. Membership state is never
// cached here; the store owns it.
type Adapter struct {
	client *redis.Client
}

func NewAdapter(addr string) *Adapter {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Adapter{client: rdb}
}

// Ensure Adapter implements ports.MovieCache
var _ ports.MovieCache = (*Adapter)(nil)

const (
	moviePrefix = "movie:"
	genresKey   = "catalog:genres"

	movieTTL  = 24 * time.Hour
	genresTTL = time.Hour
)

func (a *Adapter) Set(ctx context.Context, id string, data []byte) error {
	return a.client.Set(ctx, moviePrefix+id, data, movieTTL).Err()
}

func (a *Adapter) GetBatch(ctx context.Context, ids []string) (map[string][]byte, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = moviePrefix + id
	}

	vals, err := a.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[string][]byte)
	for i, val := range vals {
		if v, ok := val.(string); ok {
			result[ids[i]] = []byte(v)
		}
	}
	return result, nil
}

func (a *Adapter) Remove(ctx context.Context, id string) error {
	return a.client.Del(ctx, moviePrefix+id).Err()
}

func (a *Adapter) SetGenres(ctx context.Context, genres []string) error {
	pipe := a.client.Pipeline()
	pipe.Del(ctx, genresKey)
	if len(genres) > 0 {
		members := make([]any, len(genres))
		for i, g := range genres {
			members[i] = g
		}
		pipe.RPush(ctx, genresKey, members...)
		pipe.Expire(ctx, genresKey, genresTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (a *Adapter) GetGenres(ctx context.Context) ([]string, error) {
	return a.client.LRange(ctx, genresKey, 0, -1).Result()
}
