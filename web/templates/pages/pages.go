// Package pages renders the HTML pages of the web interface.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/moneta-finance/moneta/internal/api/models"
)

//go:embed html/*.html
var files embed.FS

const layoutFile = "html/layout.html"

var templates = map[string]*template.Template{}

func init() {
	for _, name := range []string{"index", "about", "login", "register", "dashboard", "asset_form"} {
		templates[name] = template.Must(
			template.New(name).ParseFS(files, layoutFile, "html/"+name+".html"),
		)
	}
}

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		tmpl, ok := templates[name]
		if !ok {
			return fmt.Errorf("unknown page %q", name)
		}
		return tmpl.ExecuteTemplate(w, "layout", data)
	})
}

// Index renders the landing page.
func Index(p models.Page) templ.Component {
	return page("index", p)
}

// About renders the about page.
func About(p models.Page) templ.Component {
	return page("about", p)
}

// Login renders the login form.
func Login(f models.CredentialsForm) templ.Component {
	return page("login", f)
}

// Register renders the registration form.
func Register(f models.CredentialsForm) templ.Component {
	return page("register", f)
}

// Dashboard renders the asset overview and the assistant form.
func Dashboard(d models.DashboardPage) templ.Component {
	return page("dashboard", d)
}

// AssetForm renders the add asset form, or the modify form when f.ID is set.
func AssetForm(f models.AssetForm) templ.Component {
	return page("asset_form", f)
}
