package http

import (
	"html/template"
	"io"

	"github.com/arpansethi30/finagent/pkg/utils"
	"github.com/arpansethi30/finagent/web"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer implements echo.Renderer over the embedded page templates.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the embedded templates with the display helpers.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"marketCap":    utils.FormatMarketCap,
		"volume":       utils.FormatVolume,
		"price":        utils.FormatPrice,
		"signedChange": utils.FormatSignedChange,
		"ratio":        utils.FormatRatio,
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

// Render implements echo.Renderer.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
