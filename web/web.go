// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/*.html
var templatesDir embed.FS

//go:embed static
var staticDir embed.FS

// Static is the asset tree served under /static.
var Static fs.FS

func init() {
	Static, _ = fs.Sub(staticDir, "static")
}

const (
	dateFormat     = "02.01.2006"
	dateTimeFormat = "02.01.2006 15:04"
)

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"date": func(t any) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format(dateFormat)
		case *time.Time:
			if v == nil {
				return "-"
			}
			return v.Format(dateFormat)
		}
		return "-"
	},
	"datetime": func(t time.Time) string { return t.Format(dateTimeFormat) },
	"dict":     dict,
}

// dict builds a map from key/value pairs so partial templates can take
// more than one argument.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, goerr.New("dict needs an even number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, goerr.New("dict keys must be strings", goerr.V("key", kv[i]))
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// Templates parses every page template.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templatesDir, "templates/*.html")
}
