// Package assets manages the financial assets of a user.
package assets

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/moneta-finance/moneta/internal/cache"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ErrAssetNotFound is returned when an asset doesn't exist or belongs to another user.
var ErrAssetNotFound = database.ErrAssetNotFound

// Manager implements asset CRUD scoped to the owning user.
type Manager struct {
	db    database.DB
	cache *cache.AssetCache

	// generations counts mutations per user. A listing read from the
	// database is only cached if no mutation happened since the read began.
	mu          sync.Mutex
	generations map[uint]uint64
}

// Summary holds the totals over a set of assets.
type Summary struct {
	Count       int
	Income      decimal.Decimal
	Expenditure decimal.Decimal
	Net         decimal.Decimal
}

// NewManager creates a new asset manager. The cache may be nil.
func NewManager(db database.DB, c *cache.AssetCache) *Manager {
	return &Manager{
		db:          db,
		cache:       c,
		generations: make(map[uint]uint64),
	}
}

// List returns all assets owned by the user.
func (m *Manager) List(ctx context.Context, userID uint) ([]database.FinancialAsset, error) {
	if assets, ok := m.cache.Get(ctx, userID); ok {
		return assets, nil
	}

	m.mu.Lock()
	gen := m.generations[userID]
	m.mu.Unlock()

	assets, err := m.db.GetAssets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generations[userID] == gen {
		m.cache.Set(ctx, userID, assets)
	}
	return assets, nil
}

// invalidate drops the cached listing and makes in-flight List calls skip caching.
func (m *Manager) invalidate(ctx context.Context, userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[userID]++
	m.cache.Invalidate(ctx, userID)
}

// Add validates the input and creates a new asset for the user.
func (m *Manager) Add(ctx context.Context, userID uint, in Input) (*database.FinancialAsset, error) {
	parsed, err := in.Parse()
	if err != nil {
		return nil, err
	}

	asset := &database.FinancialAsset{
		UserID:      userID,
		Name:        parsed.Name,
		Income:      parsed.Income,
		Expenditure: parsed.Expenditure,
	}
	if err := m.db.CreateAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to add asset: %w", err)
	}

	m.invalidate(ctx, userID)
	log.Debug("asset added", "user", userID, "asset", asset.ID)
	return asset, nil
}

// Get returns an asset only if it is owned by the user.
func (m *Manager) Get(ctx context.Context, userID, assetID uint) (*database.FinancialAsset, error) {
	asset, err := m.db.GetAsset(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

// Modify validates the input and updates an asset owned by the user.
// It returns ErrAssetNotFound if the user doesn't own an asset with that id.
func (m *Manager) Modify(ctx context.Context, userID, assetID uint, in Input) error {
	parsed, err := in.Parse()
	if err != nil {
		return err
	}

	if err := m.db.UpdateAsset(ctx, userID, assetID, parsed.Name, parsed.Income, parsed.Expenditure); err != nil {
		return err
	}

	m.invalidate(ctx, userID)
	log.Debug("asset updated", "user", userID, "asset", assetID)
	return nil
}

// Remove deletes an asset owned by the user.
// It returns ErrAssetNotFound if the user doesn't own an asset with that id.
func (m *Manager) Remove(ctx context.Context, userID, assetID uint) error {
	if err := m.db.DeleteAsset(ctx, userID, assetID); err != nil {
		return err
	}

	m.invalidate(ctx, userID)
	log.Debug("asset removed", "user", userID, "asset", assetID)
	return nil
}

// Summarize computes totals over the given assets.
func Summarize(assets []database.FinancialAsset) Summary {
	income := lo.Reduce(assets, func(acc decimal.Decimal, a database.FinancialAsset, _ int) decimal.Decimal {
		return acc.Add(a.Income)
	}, decimal.Zero)
	expenditure := lo.Reduce(assets, func(acc decimal.Decimal, a database.FinancialAsset, _ int) decimal.Decimal {
		return acc.Add(a.Expenditure)
	}, decimal.Zero)

	return Summary{
		Count:       len(assets),
		Income:      income,
		Expenditure: expenditure,
		Net:         income.Sub(expenditure),
	}
}
