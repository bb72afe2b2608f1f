package models

import "html/template"

// Flash is a notice rendered at the top of a page.
type Flash struct {
	Category string
	Text     string
}

// Page holds the data shared by every rendered page.
type Page struct {
	Title   string
	User    string
	Flashes []Flash
}

// AddNotice appends an inline notice that is not stored in the session.
func (p *Page) AddNotice(category, text string) {
	p.Flashes = append(p.Flashes, Flash{Category: category, Text: text})
}

// LoggedIn reports whether the page is rendered for an authenticated user.
func (p Page) LoggedIn() bool {
	return p.User != ""
}

// Asset is a financial asset prepared for display.
type Asset struct {
	ID          uint
	Name        string
	Income      string
	Expenditure string
	Net         string
	Negative    bool
	UpdatedAgo  string
}

// Summary holds the formatted dashboard totals.
type Summary struct {
	Count       int
	Income      string
	Expenditure string
	Net         string
	Negative    bool
}

// DashboardPage is the data of the dashboard.
type DashboardPage struct {
	Page
	Assets           []Asset
	Summary          Summary
	AssistantEnabled bool
	Prompt           string
	IncludeAsset     bool
	Response         template.HTML
}

// AssetForm is the data of the add and modify asset forms.
type AssetForm struct {
	Page
	// ID is zero when adding a new asset.
	ID          uint
	Name        string
	Income      string
	Expenditure string
}

// CredentialsForm is the data of the login and register forms.
type CredentialsForm struct {
	Page
	Username string
}
