package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, ttl), server
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store, server := newTestRedisStore(t, time.Hour)

	c, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.Items)

	c.AddItem(shoeA(), "9")
	c.AddItem(shoeA(), "9")
	c.Toggle()
	require.NoError(t, store.Save(ctx, "session-1", c))
	assert.True(t, server.Exists("cart:session-1"))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, "399.98", loaded.Total().StringFixed(2))
	assert.True(t, loaded.IsOpen)

	other, err := store.Load(ctx, "session-2")
	require.NoError(t, err)
	assert.True(t, other.IsEmpty())

	require.NoError(t, store.Delete(ctx, "session-1"))
	loaded, err = store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())

	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, store.Save(ctx, "", c), ErrNoSession)
}

func TestRedisStoreExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	store, server := newTestRedisStore(t, time.Hour)

	c := New()
	c.AddItem(shoeA(), "10")
	require.NoError(t, store.Save(ctx, "idle", c))
	assert.Equal(t, time.Hour, server.TTL("cart:idle"))

	server.FastForward(59 * time.Minute)
	loaded, err := store.Load(ctx, "idle")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)

	// Saving again restarts the clock.
	require.NoError(t, store.Save(ctx, "idle", loaded))
	server.FastForward(59 * time.Minute)
	loaded, err = store.Load(ctx, "idle")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)

	server.FastForward(2 * time.Minute)
	loaded, err = store.Load(ctx, "idle")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestRedisStoreCorruptValue(t *testing.T) {
	store, server := newTestRedisStore(t, time.Hour)
	require.NoError(t, server.Set("cart:broken", "not json"))

	_, err := store.Load(context.Background(), "broken")
	assert.Error(t, err)
}

func TestNewRedisStoreFromURL(t *testing.T) {
	server := miniredis.RunT(t)

	store, err := NewRedisStoreFromURL(context.Background(), "redis://"+server.Addr()+"/0", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "s", New()))
	assert.True(t, server.Exists("cart:s"))

	_, err = NewRedisStoreFromURL(context.Background(), "not a url", time.Hour)
	assert.Error(t, err)
}
