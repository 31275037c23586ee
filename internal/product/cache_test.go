package product

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss", func(t *testing.T) {
		cache, _ := setupTestRedis(t)

		_, err := cache.Get(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Set then Get", func(t *testing.T) {
		cache, mr := setupTestRedis(t)
		p := &Product{ID: primitive.NewObjectID(), Name: "Phone X", Price: 99.5, Images: []string{"a.png"}}

		require.NoError(t, cache.Set(ctx, p))

		ttl := mr.TTL(cacheKey(p.ID))
		assert.GreaterOrEqual(t, ttl, 10*time.Minute)
		assert.Less(t, ttl, 15*time.Minute)

		got, err := cache.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, 99.5, got.Price)
		assert.Equal(t, []string{"a.png"}, got.Images)
	})

	t.Run("Delete", func(t *testing.T) {
		cache, mr := setupTestRedis(t)
		p := &Product{ID: primitive.NewObjectID()}
		require.NoError(t, cache.Set(ctx, p))

		require.NoError(t, cache.Delete(ctx, p.ID))
		assert.False(t, mr.Exists(cacheKey(p.ID)))
	})

	t.Run("Corrupt entry", func(t *testing.T) {
		cache, mr := setupTestRedis(t)
		id := primitive.NewObjectID()
		require.NoError(t, mr.Set(cacheKey(id), "{not json"))

		_, err := cache.Get(ctx, id)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCacheMiss)
	})
}
