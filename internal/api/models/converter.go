package models

import (
	"github.com/moneta-finance/moneta/internal/api/flash"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/moneta-finance/moneta/web/templates/components"
	"github.com/samber/lo"
)

// ToAsset converts a database.FinancialAsset to its display form.
func ToAsset(a database.FinancialAsset) Asset {
	net := a.Income.Sub(a.Expenditure)
	return Asset{
		ID:          a.ID,
		Name:        a.Name,
		Income:      components.FormatMoney(a.Income),
		Expenditure: components.FormatMoney(a.Expenditure),
		Net:         components.FormatMoney(net),
		Negative:    net.IsNegative(),
		UpdatedAgo:  components.FormatRelativeTime(a.UpdatedAt),
	}
}

// ToAssets converts a slice of database.FinancialAsset to display assets.
func ToAssets(items []database.FinancialAsset) []Asset {
	return lo.Map(items, func(item database.FinancialAsset, _ int) Asset {
		return ToAsset(item)
	})
}

// ToSummary converts computed totals to their display form.
func ToSummary(s assets.Summary) Summary {
	return Summary{
		Count:       s.Count,
		Income:      components.FormatMoney(s.Income),
		Expenditure: components.FormatMoney(s.Expenditure),
		Net:         components.FormatMoney(s.Net),
		Negative:    s.Net.IsNegative(),
	}
}

// ToFlashes converts session notices to page notices.
func ToFlashes(messages []flash.Message) []Flash {
	return lo.Map(messages, func(m flash.Message, _ int) Flash {
		return Flash{Category: string(m.Category), Text: m.Text}
	})
}

// ToAssetForm prefills the modify form with the stored values.
// Amounts are shown unformatted so they can be submitted back unchanged.
func ToAssetForm(page Page, a database.FinancialAsset) AssetForm {
	return AssetForm{
		Page:        page,
		ID:          a.ID,
		Name:        a.Name,
		Income:      a.Income.String(),
		Expenditure: a.Expenditure.String(),
	}
}
