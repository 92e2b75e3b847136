package router

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"
)

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
}

// LoadTemplates parses every *.html file in dir into one set. Each page is
// addressed by its file name, e.g. "index.html".
func LoadTemplates(dir string) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parsing templates in %s: %w", dir, err)
	}
	return tmpl, nil
}
