package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// mapCache 内存版ViewCache，按版本+key存储JSON以模拟Redis
type mapCache struct {
	version     int64
	data        map[string][]byte
	getErr      error
	invalidErr  error
	invalidated int
	sets        int
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) slot(version int64, key string) string {
	return fmt.Sprintf("v%d:%s", version, key)
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (int64, bool, error) {
	if c.getErr != nil {
		return 0, false, c.getErr
	}
	raw, ok := c.data[c.slot(c.version, key)]
	if !ok {
		return c.version, false, nil
	}
	return c.version, true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, version int64, key string, value interface{}) error {
	c.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[c.slot(version, key)] = raw
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.invalidated++
	if c.invalidErr != nil {
		return c.invalidErr
	}
	c.version++
	return nil
}

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.events = append(p.events, e)
	return p.err
}

type view struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestReadThrough(t *testing.T) {
	ctx := context.Background()

	t.Run("未命中时加载并回填", func(t *testing.T) {
		cache := newMapCache()
		loads := 0
		load := func(context.Context) (*view, error) {
			loads++
			return &view{ID: 1, Name: "Dune"}, nil
		}

		first, err := ReadThrough(ctx, cache, zap.NewNop(), BookKey(1), load)
		require.NoError(t, err)
		second, err := ReadThrough(ctx, cache, zap.NewNop(), BookKey(1), load)
		require.NoError(t, err)

		assert.Equal(t, 1, loads, "第二次应命中缓存")
		assert.Equal(t, first, second)
	})

	t.Run("加载失败不回填", func(t *testing.T) {
		cache := newMapCache()
		boom := errors.New("not found")
		_, err := ReadThrough(ctx, cache, zap.NewNop(), BookKey(2), func(context.Context) (*view, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, cache.data)
	})

	t.Run("缓存故障降级到加载", func(t *testing.T) {
		cache := newMapCache()
		cache.getErr = errors.New("redis down")
		core, logs := observer.New(zap.WarnLevel)

		got, err := ReadThrough(ctx, cache, zap.New(core), AuthorKey(3), func(context.Context) ([]view, error) {
			return []view{{ID: 3}}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []view{{ID: 3}}, got)
		assert.Equal(t, 1, logs.FilterMessage("读取缓存失败").Len())
		assert.Zero(t, cache.sets, "版本未知时不回填")
	})

	t.Run("加载期间发生写操作时旧数据不可见", func(t *testing.T) {
		cache := newMapCache()
		title := "Dune"
		load := func(ctx context.Context) (*view, error) {
			loaded := &view{ID: 1, Name: title}
			// 读到旧数据后，并发的写操作提交并使缓存失效
			title = "Dune Messiah"
			require.NoError(t, cache.Invalidate(ctx))
			return loaded, nil
		}

		stale, err := ReadThrough(ctx, cache, zap.NewNop(), BookKey(1), load)
		require.NoError(t, err)
		assert.Equal(t, "Dune", stale.Name)

		fresh, err := ReadThrough(ctx, cache, zap.NewNop(), BookKey(1), func(context.Context) (*view, error) {
			return &view{ID: 1, Name: title}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", fresh.Name, "旧版本下回填的数据不应被读到")
	})
}

func TestAfterWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("失效缓存并发布事件", func(t *testing.T) {
		cache := newMapCache()
		require.NoError(t, cache.Set(ctx, 0, KeyBookList, []view{}))
		pub := &recordingPublisher{}

		AfterWrite(ctx, cache, pub, zap.NewNop(), NewEvent(EventBookCreated, 7, nil))

		var got []view
		_, hit, err := cache.Get(ctx, KeyBookList, &got)
		require.NoError(t, err)
		assert.False(t, hit)
		require.Len(t, pub.events, 1)
		assert.Equal(t, EventBookCreated, pub.events[0].Type)
		assert.Equal(t, uint(7), pub.events[0].ID)
		assert.False(t, pub.events[0].OccurredAt.IsZero())
	})

	t.Run("失败只记录日志", func(t *testing.T) {
		cache := newMapCache()
		cache.invalidErr = errors.New("redis down")
		pub := &recordingPublisher{err: errors.New("broker down")}
		core, logs := observer.New(zap.WarnLevel)

		AfterWrite(ctx, cache, pub, zap.New(core), NewEvent(EventAuthorDeleted, 1, nil))

		assert.Equal(t, 1, cache.invalidated)
		assert.Len(t, pub.events, 1, "缓存失效失败不应阻止事件发布")
		assert.Equal(t, 2, logs.Len())
	})
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "book:42", BookKey(42))
	assert.Equal(t, "author:7", AuthorKey(7))
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c ViewCache = NopCache{}
	_, hit, err := c.Get(ctx, "k", &view{})
	assert.False(t, hit)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(ctx, 0, "k", view{}))
	assert.NoError(t, c.Invalidate(ctx))

	var p EventPublisher = NopPublisher{}
	assert.NoError(t, p.Publish(ctx, NewEvent(EventBookDeleted, 1, nil)))
}
