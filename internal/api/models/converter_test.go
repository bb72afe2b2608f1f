package models

import (
	"testing"
	"time"

	"github.com/moneta-finance/moneta/internal/api/flash"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAssets(t *testing.T) {
	items := []database.FinancialAsset{
		{ID: 1, Name: "Salary", Income: decimal.NewFromInt(50000), Expenditure: decimal.Zero, UpdatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: 2, Name: "Rent", Income: decimal.Zero, Expenditure: decimal.RequireFromString("1200.5")},
	}

	got := ToAssets(items)
	require.Len(t, got, 2)

	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, "50,000", got[0].Income)
	assert.Equal(t, "50,000", got[0].Net)
	assert.False(t, got[0].Negative)
	assert.Equal(t, "2 hours ago", got[0].UpdatedAgo)

	assert.Equal(t, "-1,200.5", got[1].Net)
	assert.True(t, got[1].Negative)
	assert.Empty(t, got[1].UpdatedAgo)

	assert.Empty(t, ToAssets(nil))
}

func TestToSummary(t *testing.T) {
	s := ToSummary(assets.Summary{
		Count:       2,
		Income:      decimal.NewFromInt(55000),
		Expenditure: decimal.NewFromInt(1000),
		Net:         decimal.NewFromInt(54000),
	})
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "55,000", s.Income)
	assert.Equal(t, "54,000", s.Net)
	assert.False(t, s.Negative)
}

func TestToFlashes(t *testing.T) {
	got := ToFlashes([]flash.Message{{Category: flash.Danger, Text: "boom"}})
	assert.Equal(t, []Flash{{Category: "danger", Text: "boom"}}, got)
}

func TestToAssetForm(t *testing.T) {
	form := ToAssetForm(Page{Title: "Modify"}, database.FinancialAsset{
		ID: 7, Name: "Salary", Income: decimal.RequireFromString("55000"), Expenditure: decimal.RequireFromString("1000.25"),
	})
	assert.Equal(t, uint(7), form.ID)
	assert.Equal(t, "55000", form.Income)
	assert.Equal(t, "1000.25", form.Expenditure)
	assert.Equal(t, "Modify", form.Title)
}

func TestPage_AddNotice(t *testing.T) {
	var p Page
	assert.False(t, p.LoggedIn())
	p.AddNotice("danger", "Income must be a number")
	assert.Len(t, p.Flashes, 1)
	p.User = "alice"
	assert.True(t, p.LoggedIn())
}
