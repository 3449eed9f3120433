package cache_test

import (
	"context"
	"testing"

	"workforce/config"
	"workforce/infras/otel/mocks"
	"workforce/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lodging struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.Cache.Enable = true

	return cache.NewRedisCache(client, mocks.NewOtel(), cfg), mr
}

func TestSaveAndGet(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "lodging:get:1", lodging{ID: "1", Name: "Villa"}, 60))

	var got lodging
	require.NoError(t, c.Get(ctx, "lodging:get:1", &got))
	assert.Equal(t, "Villa", got.Name)

	require.NoError(t, c.Save(ctx, "greeting", "hello", 60))

	var str string
	require.NoError(t, c.Get(ctx, "greeting", &str))
	assert.Equal(t, "hello", str)
}

func TestGetMiss(t *testing.T) {
	c, _ := newCache(t)

	var got lodging
	err := c.Get(context.Background(), "missing", &got)

	assert.ErrorIs(t, err, cache.Nil)
}

func TestDeleteAndClear(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "lodging:gets:a", []int{1}, 60))
	require.NoError(t, c.Save(ctx, "lodging:gets:b", []int{2}, 60))
	require.NoError(t, c.Save(ctx, "booking:gets:a", []int{3}, 60))

	require.NoError(t, c.Clear(ctx, "lodging:gets*"))
	assert.False(t, mr.Exists("lodging:gets:a"))
	assert.False(t, mr.Exists("lodging:gets:b"))
	assert.True(t, mr.Exists("booking:gets:a"))

	require.NoError(t, c.Delete(ctx, "booking:gets:a"))
	assert.False(t, mr.Exists("booking:gets:a"))
}

func TestDisabledCache(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel(), &config.Config{})
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k", "v", 60))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), cache.Nil)
	assert.NoError(t, c.Clear(ctx, "k*"))
}

func TestVersionAndBump(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	version, err := c.Version(ctx, "lodging")
	require.NoError(t, err)
	assert.Zero(t, version)

	require.NoError(t, c.Bump(ctx, "lodging"))
	require.NoError(t, c.Bump(ctx, "lodging"))

	version, err = c.Version(ctx, "lodging")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	version, err = c.Version(ctx, "booking")
	require.NoError(t, err)
	assert.Zero(t, version)

	disabled := cache.NewRedisCache(nil, mocks.NewOtel(), &config.Config{})
	require.NoError(t, disabled.Bump(ctx, "lodging"))

	version, err = disabled.Version(ctx, "lodging")
	require.NoError(t, err)
	assert.Zero(t, version)
}
