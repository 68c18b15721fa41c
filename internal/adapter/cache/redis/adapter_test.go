package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisAdapter_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("failed to start redis: %v", err)
	}
	defer func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis: %v", err)
		}
	}()

	endpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// The redis-container module returns a URL like redis://localhost:port
	// but redis.NewClient expects just the host:port.
	addr := endpoint
	if len(addr) > 8 && addr[:8] == "redis://" {
		addr = addr[8:]
	}

	adapter := NewAdapter(addr)
	defer adapter.client.Close()

	t.Run("Set and GetBatch", func(t *testing.T) {
		data := []byte(`{"id":"m1","title":"Cached Movie"}`)

		err := adapter.Set(ctx, "m1", data)
		assert.NoError(t, err)

		batch, err := adapter.GetBatch(ctx, []string{"m1", "non-existent"})
		assert.NoError(t, err)
		assert.Equal(t, data, batch["m1"])
		assert.NotContains(t, batch, "non-existent")
	})

	t.Run("GetBatch with no ids", func(t *testing.T) {
		batch, err := adapter.GetBatch(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, batch)
	})

	t.Run("Remove", func(t *testing.T) {
		assert.NoError(t, adapter.Set(ctx, "m2", []byte(`{}`)))
		assert.NoError(t, adapter.Remove(ctx, "m2"))

		batch, err := adapter.GetBatch(ctx, []string{"m2"})
		assert.NoError(t, err)
		assert.NotContains(t, batch, "m2")
	})

	t.Run("Genres round trip", func(t *testing.T) {
		genres := []string{"Comedy", "Crime", "Drama"}
		assert.NoError(t, adapter.SetGenres(ctx, genres))

		got, err := adapter.GetGenres(ctx)
		assert.NoError(t, err)
		assert.Equal(t, genres, got)
	})

	t.Run("SetGenres replaces the list", func(t *testing.T) {
		assert.NoError(t, adapter.SetGenres(ctx, []string{"Action"}))

		got, err := adapter.GetGenres(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []string{"Action"}, got)
	})
}
