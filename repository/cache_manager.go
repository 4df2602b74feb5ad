package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yashrajoria/streetwear-backend/models"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
	DefaultCacheTTL        = 5 * time.Minute
)

// RedisStore is the subset of *redis.Client used by the cache and the
// idempotency store.
type RedisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CacheManager caches public product listings under a version key that is
// bumped on every product write.
type CacheManager struct {
	redis RedisStore
	ttl   time.Duration
}

func NewCacheManager(redis RedisStore) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList decodes a cached listing into out.
func (cm *CacheManager) GetProductList(ctx context.Context, filter models.ProductFilter, out interface{}) bool {
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		return false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, filter)).Bytes()
	if err != nil {
		return false
	}

	if err := json.Unmarshal(cached, out); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return false
	}
	return true
}

// SetProductListAsync caches a listing in the background.
func (cm *CacheManager) SetProductListAsync(filter models.ProductFilter, value interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.SetProductList(bgCtx, filter, value); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// SetProductList caches a listing under the current version.
func (cm *CacheManager) SetProductList(ctx context.Context, filter models.ProductFilter, value interface{}) error {
	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal product list: %w", err)
	}
	return cm.redis.Set(ctx, cm.listCacheKey(version, filter), data, cm.ttl).Err()
}

// Invalidate orphans every cached listing by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, CacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	zap.L().Info("Cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent Invalidate is never overwritten.
		if _, err := cm.redis.SetNX(ctx, CacheVersionKey, 1, 0).Result(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CacheVersionKey).Int64()
	}
	if err == nil {
		return 0, fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (cm *CacheManager) listCacheKey(version int64, f models.ProductFilter) string {
	return fmt.Sprintf(
		"%s%d:p:%d:l:%d:c:%s:cs:%s:f:%s:cu:%s:g:%s:q:%s:min:%s:max:%s:s:%s",
		ProductListCachePrefix,
		version,
		f.Page,
		f.Limit,
		formatUUIDForCache(f.CategoryID),
		f.CategorySlug,
		formatBoolForCache(f.Featured),
		formatBoolForCache(f.Customizable),
		f.GiftType,
		f.Search,
		formatFloatForCache(f.MinPrice),
		formatFloatForCache(f.MaxPrice),
		f.Sort,
	)
}

func formatFloatForCache(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func formatBoolForCache(value *bool) string {
	if value == nil {
		return ""
	}
	return strconv.FormatBool(*value)
}

func formatUUIDForCache(value *uuid.UUID) string {
	if value == nil {
		return ""
	}
	return value.String()
}
