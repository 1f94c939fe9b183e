// Package view renders the two HTML surfaces (login form and dashboard).
// Handlers hand it plain data through echo's Renderer interface; everything
// else in the service speaks JSON.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer satisfies echo.Renderer using the embedded templates.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates. Panics on a malformed template, which
// can only happen at build time.
func New() *Renderer {
	return &Renderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
