package utils

import (
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis cache client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

// Get reads a cached value.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set writes a cached value.
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, string(data), expiration).Err()
}

// Delete removes a cache entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// DeleteByPattern deletes cache entries by pattern.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

// Exists checks whether a cache key exists.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type CacheManager struct {
	cache Cache
}

var globalCacheManager *CacheManager
var cacheManagerOnce sync.Once

// InitCacheManager initializes the cache manager.
func InitCacheManager() {
	cacheManagerOnce.Do(func() {
		globalCacheManager = &CacheManager{
			cache: NewRedisCache(repo.Redis),
		}
	})
}

// GetCacheManager returns the cache manager.
func GetCacheManager() *CacheManager {
	if globalCacheManager == nil {
		InitCacheManager()
	}
	return globalCacheManager
}

// BuildCacheKey builds a cache key.
func BuildCacheKey(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key += fmt.Sprintf(":%v", param)
	}
	return key
}

const (
	CacheKeyModelList   = "model:list"
	CacheKeyModelDetail = "model:detail"
)

type ModelListCache struct {
	Models []model.Model `json:"models"`
	Total  int64         `json:"total"`
}

// GetModelListFromCache reads the cached approved-model listing.
func GetModelListFromCache(ctx context.Context, page, pageSize int) (*ModelListCache, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyModelList, page, pageSize)

	var result ModelListCache
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetModelListToCache writes the cached approved-model listing.
func SetModelListToCache(ctx context.Context, page, pageSize int, data *ModelListCache, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyModelList, page, pageSize)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateModelListCache clears all cached listing pages. Called whenever a
// model is approved, archived, deleted or liked.
func InvalidateModelListCache(ctx context.Context) error {
	manager := GetCacheManager()
	pattern := CacheKeyModelList + ":*"
	cache, ok := manager.cache.(*RedisCache)
	if !ok {
		return manager.cache.Delete(ctx, pattern)
	}
	return cache.DeleteByPattern(ctx, pattern)
}

// GetModelDetailFromCache reads a cached model detail.
func GetModelDetailFromCache(ctx context.Context, modelID uint64) (*model.Model, bool) {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyModelDetail, modelID)

	var result model.Model
	if err := manager.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetModelDetailToCache writes a cached model detail.
func SetModelDetailToCache(ctx context.Context, modelID uint64, data *model.Model, expiration time.Duration) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyModelDetail, modelID)
	return manager.cache.Set(ctx, key, data, expiration)
}

// InvalidateModelDetailCache clears a cached model detail.
func InvalidateModelDetailCache(ctx context.Context, modelID uint64) error {
	manager := GetCacheManager()
	key := BuildCacheKey(CacheKeyModelDetail, modelID)
	return manager.cache.Delete(ctx, key)
}
