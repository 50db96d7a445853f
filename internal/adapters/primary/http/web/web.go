// Package web holds the embedded page templates and static assets for the UI.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/style.css
var StyleCSS []byte

// Templates parses the embedded pages with the helpers the stats page
// uses to line up its text tables.
func Templates() (*template.Template, error) {
	funcs := template.FuncMap{
		"formatNum": func(v int64, width int) string {
			return fmt.Sprintf("%*s", width, humanize.Comma(v))
		},
		"padRight": func(s string, width int) string {
			return fmt.Sprintf("%-*s", width, s)
		},
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}
