package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestRedisJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var got cachedThing
	ok, err := RedisGetJSON(ctx, rdb, "thing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, RedisSetJSON(ctx, rdb, "thing", cachedThing{Name: "a", Items: []string{"x"}}, time.Minute))
	ok, err = RedisGetJSON(ctx, rdb, "thing", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cachedThing{Name: "a", Items: []string{"x"}}, got)
	assert.Equal(t, time.Minute, mr.TTL("thing"))

	require.NoError(t, RedisInvalidate(ctx, rdb, "thing:v", 0, "thing"))
	assert.False(t, mr.Exists("thing"))
}

func TestRedisGetJSON_CorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, mr.Set("thing", "{not json"))

	var got cachedThing
	ok, err := RedisGetJSON(context.Background(), rdb, "thing", &got)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisSetJSONIfVersion(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	v, err := RedisVersion(ctx, rdb, "thing:v")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	ok, err := RedisSetJSONIfVersion(ctx, rdb, "thing", "thing:v", v, cachedThing{Name: "fresh"}, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("thing"))

	require.NoError(t, RedisInvalidate(ctx, rdb, "thing:v", time.Hour, "thing"))
	assert.False(t, mr.Exists("thing"))
	assert.Equal(t, time.Hour, mr.TTL("thing:v"))

	// fill computed at the old version is dropped
	ok, err = RedisSetJSONIfVersion(ctx, rdb, "thing", "thing:v", v, cachedThing{Name: "stale"}, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("thing"))

	v, err = RedisVersion(ctx, rdb, "thing:v")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}
