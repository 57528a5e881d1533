package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookView struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func newTestCache(t *testing.T) (*ViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewViewCache(client, time.Minute), mr
}

func TestVersionedKey(t *testing.T) {
	assert.Equal(t, "bookshelf:v0:book:1", versionedKey(0, "book:1"))
	assert.Equal(t, "bookshelf:v42:authors", versionedKey(42, "authors"))
}

func TestViewCache(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	var got bookView
	gen, hit, err := cache.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(0), gen, "代数key不存在时为0")

	require.NoError(t, cache.Set(ctx, gen, "book:1", bookView{ID: 1, Title: "Dune"}))
	assert.True(t, mr.Exists("bookshelf:v0:book:1"))
	assert.Equal(t, time.Minute, mr.TTL("bookshelf:v0:book:1"))

	_, hit, err = cache.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, bookView{ID: 1, Title: "Dune"}, got)

	require.NoError(t, cache.Invalidate(ctx))

	gen, hit, err = cache.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "失效后应未命中")
	assert.Equal(t, int64(1), gen)
}

func TestViewCache_Expire(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.Set(ctx, 0, "books", []bookView{{ID: 1, Title: "Dune"}}))
	mr.FastForward(time.Minute + time.Second)

	var got []bookView
	_, hit, err := cache.Get(ctx, "books", &got)
	require.NoError(t, err)
	assert.False(t, hit, "超过TTL后应未命中")
}

func TestViewCache_StaleFillAfterInvalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	// 读者未命中，随后从数据库读到旧数据
	var got bookView
	gen, hit, err := cache.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	require.False(t, hit)

	// 写操作在读者回填之前提交并使缓存失效
	require.NoError(t, cache.Invalidate(ctx))

	// 读者按读取时的代数回填旧数据
	require.NoError(t, cache.Set(ctx, gen, "book:1", bookView{ID: 1, Title: "OLD TITLE"}))

	_, hit, err = cache.Get(ctx, "book:1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "旧代数下回填的数据不应被读到")
}

func TestViewCache_RedisDown(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	var got bookView
	_, hit, err := cache.Get(ctx, "book:1", &got)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, cache.Invalidate(ctx))
}

func TestViewCache_CorruptValue(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	require.NoError(t, mr.Set("bookshelf:v0:book:1", "{not json"))

	var got bookView
	_, hit, err := cache.Get(ctx, "book:1", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}
