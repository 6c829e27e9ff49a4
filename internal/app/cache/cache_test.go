package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/webapis/internal/app/cache"
	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NopCache{}

	require.NoError(t, c.Set(ctx, models.ShortURL{Handle: 1, OriginalURL: "https://example.com"}))
	_, ok, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Close())
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := cache.NewRedisCacheWithClient(client, time.Minute)
	defer c.Close()

	_, ok, err := c.Get(ctx, 1)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, models.ShortURL{Handle: 1, OriginalURL: "https://example.com"}))

	_, err = cache.NewRedisCache(ctx, "redis://127.0.0.1:1/0", time.Minute)
	assert.Error(t, err)
}
