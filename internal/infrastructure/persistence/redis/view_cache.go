package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "bookshelf"
	generationKey = keyPrefix + ":gen"
)

// ViewCache 图书/作者视图缓存(Cache-Aside)
//
// 设计说明：
// 1. 所有key都带代数前缀：bookshelf:v{gen}:{key}
// 2. 任何写操作只需INCR代数，旧代数的key自然过期，不需要SCAN删除
// 3. 删除作者会级联删除图书，作者改名会影响图书视图，
//    按代数整体失效避免维护跨聚合的失效关系
// 4. Get返回读取时的代数，回填时Set沿用该代数：
//    加载期间发生写操作时，回填的旧数据落在旧代数下，不会再被读到
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache 创建视图缓存
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{client: client, ttl: ttl}
}

// Get 读取缓存，返回读取时的代数，未命中时hit为false
func (c *ViewCache) Get(ctx context.Context, key string, dest interface{}) (gen int64, hit bool, err error) {
	gen, err = c.generation(ctx)
	if err != nil {
		return 0, false, err
	}

	val, err := c.client.Get(ctx, versionedKey(gen, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return gen, false, nil
		}
		return 0, false, fmt.Errorf("获取缓存失败: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return 0, false, fmt.Errorf("反序列化失败: %w", err)
	}
	return gen, true, nil
}

// Set 在gen代数下写入缓存，gen应来自同一次读取的Get
func (c *ViewCache) Set(ctx context.Context, gen int64, key string, value interface{}) error {
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, versionedKey(gen, key), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Invalidate 使全部视图缓存失效
func (c *ViewCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("更新缓存代数失败: %w", err)
	}
	return nil
}

// generation 当前缓存代数，key不存在时为0
func (c *ViewCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("获取缓存代数失败: %w", err)
	}
	return gen, nil
}

func versionedKey(gen int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, gen, key)
}
