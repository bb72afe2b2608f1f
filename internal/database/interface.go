package database

import (
	"context"

	"github.com/shopspring/decimal"
)

// DB defines the storage operations used by the application.
type DB interface {
	// Users
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// Financial assets, always scoped to the owning user
	CreateAsset(ctx context.Context, asset *FinancialAsset) error
	GetAssets(ctx context.Context, userID uint) ([]FinancialAsset, error)
	GetAsset(ctx context.Context, userID, assetID uint) (*FinancialAsset, error)
	UpdateAsset(ctx context.Context, userID, assetID uint, name string, income, expenditure decimal.Decimal) error
	DeleteAsset(ctx context.Context, userID, assetID uint) error

	// Maintenance
	Ping(ctx context.Context) error
	Optimize(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds basic row counts.
type Stats struct {
	Users  int64
	Assets int64
}
