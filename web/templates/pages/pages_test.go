package pages

import (
	"bytes"
	"context"
	"html/template"
	"testing"

	"github.com/a-h/templ"
	"github.com/moneta-finance/moneta/internal/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestLayout(t *testing.T) {
	out := render(t, Index(models.Page{
		Title:   "Home",
		Flashes: []models.Flash{{Category: "success", Text: "Registration successful! You can now log in."}},
	}))

	assert.Contains(t, out, "<title>Home - Moneta</title>")
	assert.Contains(t, out, `class="flash flash-success"`)
	assert.Contains(t, out, "Registration successful! You can now log in.")
	assert.Contains(t, out, `href="/login"`)
	assert.NotContains(t, out, `href="/logout"`)
}

func TestLayout_LoggedIn(t *testing.T) {
	out := render(t, About(models.Page{Title: "About", User: "alice"}))
	assert.Contains(t, out, `href="/logout"`)
	assert.Contains(t, out, "alice")
}

func TestDashboard(t *testing.T) {
	data := models.DashboardPage{
		Page: models.Page{Title: "Dashboard", User: "alice"},
		Assets: []models.Asset{
			{ID: 3, Name: "Salary", Income: "50,000", Expenditure: "0", Net: "50,000"},
			{ID: 4, Name: "<b>Rent</b>", Income: "0", Expenditure: "1,200", Net: "-1,200", Negative: true},
		},
		Summary:          models.Summary{Count: 2, Income: "50,000", Expenditure: "1,200", Net: "48,800"},
		AssistantEnabled: true,
		Response:         template.HTML("<p>Save more.</p>"),
	}

	out := render(t, Dashboard(data))
	assert.Contains(t, out, `action="/dashboard/remove_asset/3"`)
	assert.Contains(t, out, `href="/dashboard/modify_asset/4"`)
	assert.Contains(t, out, "&lt;b&gt;Rent&lt;/b&gt;", "asset names must be escaped")
	assert.Contains(t, out, "<p>Save more.</p>", "assistant output is rendered as HTML")
	assert.Contains(t, out, `name="include_asset"`)
	assert.Contains(t, out, "48,800")
}

func TestDashboard_AssistantDisabled(t *testing.T) {
	out := render(t, Dashboard(models.DashboardPage{Page: models.Page{Title: "Dashboard", User: "alice"}}))
	assert.NotContains(t, out, `name="prompt"`)
	assert.Contains(t, out, "You have no assets yet.")
}

func TestAssetForm(t *testing.T) {
	add := render(t, AssetForm(models.AssetForm{Page: models.Page{Title: "Add asset"}}))
	assert.Contains(t, add, `action="/dashboard/add_asset"`)

	modify := render(t, AssetForm(models.AssetForm{
		Page: models.Page{Title: "Modify asset"},
		ID:   9, Name: "Salary", Income: "55000", Expenditure: "1000",
	}))
	assert.Contains(t, modify, `action="/dashboard/modify_asset/9"`)
	assert.Contains(t, modify, `value="55000"`)
}

func TestCredentialForms(t *testing.T) {
	login := render(t, Login(models.CredentialsForm{Page: models.Page{Title: "Login"}, Username: "alice"}))
	assert.Contains(t, login, `value="alice"`)
	assert.NotContains(t, login, "confirmPassword")

	register := render(t, Register(models.CredentialsForm{Page: models.Page{Title: "Register"}}))
	assert.Contains(t, register, `name="confirmPassword"`)
}
