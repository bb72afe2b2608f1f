package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

var (
	// ErrUsernameTaken is returned when a user with the same username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrAssetNotFound is returned when an asset doesn't exist or isn't owned by the requesting user.
	ErrAssetNotFound = errors.New("asset not found or access denied")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
func New(dbpath string) (*Client, error) {
	if dir := filepath.Dir(dbpath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbpath+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&FinancialAsset{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Ping checks that the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Optimize runs sqlite's query planner maintenance.
func (c *Client) Optimize(ctx context.Context) error {
	if err := c.db.WithContext(ctx).Exec("PRAGMA optimize").Error; err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}
	return nil
}

// GetStats returns row counts for the stats command.
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.db.WithContext(ctx).Model(&User{}).Count(&stats.Users).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := c.db.WithContext(ctx).Model(&FinancialAsset{}).Count(&stats.Assets).Error; err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}
	return &stats, nil
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
