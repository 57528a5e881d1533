package common

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// ViewCache 视图缓存接口
// 由infrastructure/persistence/redis实现，未启用Redis时使用NopCache
//
// Get返回读取时的缓存版本，回填时必须把该版本原样传给Set：
// 读取之后发生的写操作会推进版本，旧版本下回填的数据不会再被读到
type ViewCache interface {
	// Get 读取缓存到dest，未命中返回false
	Get(ctx context.Context, key string, dest interface{}) (version int64, hit bool, err error)

	// Set 在version下写入缓存
	Set(ctx context.Context, version int64, key string, value interface{}) error

	// Invalidate 使全部视图缓存失效
	Invalidate(ctx context.Context) error
}

// NopCache 不缓存
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (int64, bool, error) { return 0, false, nil }
func (NopCache) Set(context.Context, int64, string, interface{}) error         { return nil }
func (NopCache) Invalidate(context.Context) error                              { return nil }

// 缓存key
const (
	KeyBookList   = "books"
	KeyAuthorList = "authors"
)

// BookKey 单本图书视图的缓存key
func BookKey(id uint) string {
	return "book:" + uitoa(id)
}

// AuthorKey 单个作者视图的缓存key
func AuthorKey(id uint) string {
	return "author:" + uitoa(id)
}

// ReadThrough 先读缓存，未命中再调用load并按读取时的版本回填
// 缓存读写失败只记录日志，不影响请求；读取失败时版本未知，不回填
func ReadThrough[T any](ctx context.Context, cache ViewCache, logger *zap.Logger, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	version, hit, err := cache.Get(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.RecordCache("error")
		logger.Warn("读取缓存失败", zap.String("key", key), zap.Error(err))
		return load(ctx)
	case hit:
		metrics.RecordCache("hit")
		return cached, nil
	default:
		metrics.RecordCache("miss")
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := cache.Set(ctx, version, key, value); err != nil {
		logger.Warn("写入缓存失败", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}
