package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Akashx1550/TrendMart-backend/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CatalogCachePrefix     = "catalog:v"
	CatalogCacheVersionKey = "catalog:version"
	DefaultCatalogCacheTTL = 10 * time.Minute

	// noVersion marks a lookup that could not read the version. Nothing is
	// cached for it.
	noVersion int64 = -1
)

// Cached catalog views.
const (
	ViewAllProducts    = "allproducts"
	ViewNewCollections = "newcollections"
	ViewPopularInWomen = "popularinwomen"
)

// CatalogCache caches the deterministic catalog views in Redis. Keys embed a
// version number so one INCR invalidates every view. A nil client or any
// Redis failure degrades to a cache miss.
type CatalogCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &CatalogCache{redis: client, ttl: ttl}
}

// Get returns the cached view. On a miss it also returns the version the
// lookup ran against; the caller passes it to SetAsync so that a view loaded
// before an invalidation is never stored under the newer version.
func (cc *CatalogCache) Get(ctx context.Context, view string) ([]models.Product, int64, bool) {
	if cc == nil || cc.redis == nil {
		return nil, noVersion, false
	}

	version, err := cc.version(ctx)
	if err != nil {
		zap.L().Debug("catalog cache unavailable", zap.Error(err))
		return nil, noVersion, false
	}

	raw, err := cc.redis.Get(ctx, cc.key(version, view)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Debug("catalog cache read failed", zap.String("view", view), zap.Error(err))
		}
		return nil, version, false
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached catalog view", zap.String("view", view), zap.Error(err))
		return nil, version, false
	}
	return products, version, true
}

// Set stores a view under version.
func (cc *CatalogCache) Set(ctx context.Context, view string, version int64, products []models.Product) error {
	if cc == nil || cc.redis == nil || version < 0 {
		return nil
	}
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog view %s: %w", view, err)
	}
	if err := cc.redis.Set(ctx, cc.key(version, view), payload, cc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache catalog view %s: %w", view, err)
	}
	return nil
}

// SetAsync stores a view in the background so the response is not delayed.
func (cc *CatalogCache) SetAsync(view string, version int64, products []models.Product) {
	if cc == nil || cc.redis == nil || version < 0 {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cc.Set(bgCtx, view, version, products); err != nil {
			zap.L().Warn("Failed to cache catalog view", zap.String("view", view), zap.Error(err))
		}
	}()
}

// Invalidate bumps the version so every cached view becomes unreachable.
func (cc *CatalogCache) Invalidate(ctx context.Context) error {
	if cc == nil || cc.redis == nil {
		return nil
	}
	newVersion, err := cc.redis.Incr(ctx, CatalogCacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	zap.L().Debug("catalog cache invalidated", zap.Int64("version", newVersion))
	return nil
}

// version returns the current version, treating a missing key as zero.
func (cc *CatalogCache) version(ctx context.Context) (int64, error) {
	ver, err := cc.redis.Get(ctx, CatalogCacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (cc *CatalogCache) key(version int64, view string) string {
	return fmt.Sprintf("%s%d:%s", CatalogCachePrefix, version, view)
}
