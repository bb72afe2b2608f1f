package mock

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/moneta-finance/moneta/internal/database"
	"github.com/shopspring/decimal"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is a mock implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	// User storage
	users      map[uint]*database.User
	nextUserID uint

	// Asset storage
	assets      map[uint]*database.FinancialAsset
	nextAssetID uint

	// Call counters
	GetAssetsCalls int
	optimizeCalls  int

	// AfterGetAssets runs after GetAssets has read the rows.
	AfterGetAssets func()

	// Error simulation
	CreateUserError        error
	GetUserByUsernameError error
	CreateAssetError       error
	GetAssetsError         error
	GetAssetError          error
	UpdateAssetError       error
	DeleteAssetError       error
	PingError              error
	OptimizeError          error
}

// NewMockDB creates a new MockDB instance.
func NewMockDB() *MockDB {
	return &MockDB{
		users:       make(map[uint]*database.User),
		nextUserID:  1,
		assets:      make(map[uint]*database.FinancialAsset),
		nextAssetID: 1,
	}
}

// User operations

func (m *MockDB) CreateUser(ctx context.Context, username, passwordHash string) (*database.User, error) {
	if m.CreateUserError != nil {
		return nil, m.CreateUserError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return nil, database.ErrUsernameTaken
		}
	}

	user := &database.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.users[user.ID] = user
	m.nextUserID++

	copied := *user
	return &copied, nil
}

func (m *MockDB) GetUserByUsername(ctx context.Context, username string) (*database.User, error) {
	if m.GetUserByUsernameError != nil {
		return nil, m.GetUserByUsernameError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, database.ErrUserNotFound
}

// Asset operations

func (m *MockDB) CreateAsset(ctx context.Context, asset *database.FinancialAsset) error {
	if m.CreateAssetError != nil {
		return m.CreateAssetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	asset.ID = m.nextAssetID
	asset.CreatedAt = now
	asset.UpdatedAt = now
	m.nextAssetID++

	copied := *asset
	m.assets[asset.ID] = &copied
	return nil
}

func (m *MockDB) GetAssets(ctx context.Context, userID uint) ([]database.FinancialAsset, error) {
	m.mu.Lock()
	m.GetAssetsCalls++
	m.mu.Unlock()

	if m.GetAssetsError != nil {
		return nil, m.GetAssetsError
	}

	m.mu.RLock()
	var assets []database.FinancialAsset
	for _, a := range m.assets {
		if a.UserID == userID {
			assets = append(assets, *a)
		}
	}
	hook := m.AfterGetAssets
	m.mu.RUnlock()

	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	if hook != nil {
		hook()
	}
	return assets, nil
}

func (m *MockDB) GetAsset(ctx context.Context, userID, assetID uint) (*database.FinancialAsset, error) {
	if m.GetAssetError != nil {
		return nil, m.GetAssetError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.assets[assetID]
	if !ok || a.UserID != userID {
		return nil, database.ErrAssetNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *MockDB) UpdateAsset(ctx context.Context, userID, assetID uint, name string, income, expenditure decimal.Decimal) error {
	if m.UpdateAssetError != nil {
		return m.UpdateAssetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[assetID]
	if !ok || a.UserID != userID {
		return database.ErrAssetNotFound
	}
	a.Name = name
	a.Income = income
	a.Expenditure = expenditure
	a.UpdatedAt = time.Now()
	return nil
}

func (m *MockDB) DeleteAsset(ctx context.Context, userID, assetID uint) error {
	if m.DeleteAssetError != nil {
		return m.DeleteAssetError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.assets[assetID]
	if !ok || a.UserID != userID {
		return database.ErrAssetNotFound
	}
	delete(m.assets, assetID)
	return nil
}

// Maintenance operations

func (m *MockDB) Ping(ctx context.Context) error {
	return m.PingError
}

func (m *MockDB) Optimize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.optimizeCalls++
	return m.OptimizeError
}

// OptimizeCalls returns how often Optimize was called.
func (m *MockDB) OptimizeCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.optimizeCalls
}

func (m *MockDB) GetStats(ctx context.Context) (*database.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &database.Stats{
		Users:  int64(len(m.users)),
		Assets: int64(len(m.assets)),
	}, nil
}

func (m *MockDB) Close() error {
	return nil
}
