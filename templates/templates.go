// Package templates embeds the HTML pages of the admin panel.
// File: templates/templates.go
package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html partials/*.html
var files embed.FS

// Load parses every page and partial. Pages are named by file name,
// e.g. "reviews.html".
func Load() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(files, "partials/*.html", "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}
