package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialAsset is a named income/expenditure pair owned by a user.
type FinancialAsset struct {
	ID          uint            `gorm:"column:asset_id;primaryKey;autoIncrement" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"userId"`
	Name        string          `gorm:"column:asset_name;not null" json:"name"`
	Income      decimal.Decimal `gorm:"column:asset_income;type:real;not null" json:"income"`
	Expenditure decimal.Decimal `gorm:"column:asset_expenditure;type:real;not null" json:"expenditure"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (FinancialAsset) TableName() string { return "financial_assets" }

func (c *Client) CreateAsset(ctx context.Context, asset *FinancialAsset) error {
	if err := c.db.WithContext(ctx).Create(asset).Error; err != nil {
		log.Error("failed to create asset", "error", err)
		return err
	}
	return nil
}

// GetAssets returns all assets owned by the user, in storage order.
func (c *Client) GetAssets(ctx context.Context, userID uint) ([]FinancialAsset, error) {
	var assets []FinancialAsset
	if err := c.db.WithContext(ctx).Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		log.Error("failed to get assets", "error", err)
		return nil, err
	}
	return assets, nil
}

func (c *Client) GetAsset(ctx context.Context, userID, assetID uint) (*FinancialAsset, error) {
	var asset FinancialAsset
	err := c.db.WithContext(ctx).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		log.Error("failed to get asset", "error", err)
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset updates an asset owned by the user.
// It returns ErrAssetNotFound if no row matched both the asset and the owner.
func (c *Client) UpdateAsset(ctx context.Context, userID, assetID uint, name string, income, expenditure decimal.Decimal) error {
	result := c.db.WithContext(ctx).
		Model(&FinancialAsset{}).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		Updates(map[string]any{
			"asset_name":        name,
			"asset_income":      income,
			"asset_expenditure": expenditure,
		})
	if result.Error != nil {
		log.Error("failed to update asset", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}

// DeleteAsset deletes an asset owned by the user.
// It returns ErrAssetNotFound if no row matched both the asset and the owner.
func (c *Client) DeleteAsset(ctx context.Context, userID, assetID uint) error {
	result := c.db.WithContext(ctx).
		Where("asset_id = ? AND user_id = ?", assetID, userID).
		Delete(&FinancialAsset{})
	if result.Error != nil {
		log.Error("failed to delete asset", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssetNotFound
	}
	return nil
}
