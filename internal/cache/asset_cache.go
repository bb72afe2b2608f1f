package cache

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/database"
)

// AssetsCachePrefix is the key prefix for per-user asset listings.
const AssetsCachePrefix = "assets-user-"

// AssetCache caches the asset listing of each user.
// A nil *AssetCache is valid and never caches anything.
type AssetCache struct {
	listings *PrefixedCache[[]database.FinancialAsset]
}

// NewAssetCache creates the asset cache for the configured backend.
// It returns nil when caching is disabled (ttl of zero).
func NewAssetCache(cfg *config.CacheConfig) *AssetCache {
	if cfg == nil || cfg.TTL == 0 {
		log.Debug("asset cache disabled")
		return nil
	}
	return &AssetCache{
		listings: NewPrefixedCache[[]database.FinancialAsset](
			newCacheInstanceByType(cfg),
			AssetsCachePrefix,
			cfg.TTL,
		),
	}
}

// Get returns the cached listing for the user.
func (a *AssetCache) Get(ctx context.Context, userID uint) ([]database.FinancialAsset, bool) {
	if a == nil {
		return nil, false
	}
	assets, err := a.listings.Get(ctx, userID)
	if err != nil {
		if err != ErrMiss {
			log.Warn("failed to read asset cache", "user", userID, "error", err)
		}
		return nil, false
	}
	return assets, true
}

// Set stores the listing for the user.
func (a *AssetCache) Set(ctx context.Context, userID uint, assets []database.FinancialAsset) {
	if a == nil {
		return
	}
	if assets == nil {
		assets = []database.FinancialAsset{}
	}
	if err := a.listings.Set(ctx, userID, assets); err != nil {
		log.Warn("failed to write asset cache", "user", userID, "error", err)
	}
}

// Invalidate drops the cached listing for the user.
func (a *AssetCache) Invalidate(ctx context.Context, userID uint) {
	if a == nil {
		return
	}
	if err := a.listings.Delete(ctx, userID); err != nil {
		log.Debug("failed to invalidate asset cache", "user", userID, "error", err)
	}
}
