package redis

import (
	"context"
	"testing"
	"time"

	"cat-rescue/internal/domain/cats"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *AvailableCats) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewAvailableCats(client, time.Minute)
}

func TestAvailableCats_MissThenHit(t *testing.T) {
	_, cache := setupTestRedis(t)
	ctx := context.Background()
	age := 2

	_, ok, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetAvailable(ctx, []cats.Cat{
		{ID: "c1", Name: "Michi", Age: &age, Status: cats.StatusAvailable},
	}))

	items, ok, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Michi", items[0].Name)
	require.NotNil(t, items[0].Age)
	assert.Equal(t, 2, *items[0].Age)
}

func TestAvailableCats_EmptyListIsAHit(t *testing.T) {
	_, cache := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.SetAvailable(ctx, nil))

	items, ok, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, items)
}

func TestAvailableCats_InvalidateAndTTL(t *testing.T) {
	mr, cache := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.SetAvailable(ctx, []cats.Cat{{ID: "c1"}}))
	assert.Equal(t, time.Minute, mr.TTL(availableKey))

	require.NoError(t, cache.InvalidateAvailable(ctx))
	_, ok, err := cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SetAvailable(ctx, []cats.Cat{{ID: "c1"}}))
	mr.FastForward(2 * time.Minute)
	_, ok, err = cache.GetAvailable(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAvailableCats_CorruptEntryIsAMiss(t *testing.T) {
	mr, cache := setupTestRedis(t)
	require.NoError(t, mr.Set(availableKey, "{not json"))

	_, ok, err := cache.GetAvailable(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	_, err = Connect(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
