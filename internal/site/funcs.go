package site

import (
	"html/template"
	"net/url"

	"github.com/starford/cheatsheets/internal/catalog"
)

var funcs = template.FuncMap{
	"toggleTag": func(f catalog.Filter, tag string) string {
		return homeURL(f.ToggleTag(tag))
	},
	"toggleCategory": func(f catalog.Filter, c string) string {
		return homeURL(f.ToggleCategory(c))
	},
	"clearFacets": func(f catalog.Filter) string {
		return homeURL(f.ClearFacets())
	},
	"indent": func(level int) int {
		return (level - 1) * 12
	},
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
	"pathEscape": url.PathEscape,
}

func homeURL(f catalog.Filter) string {
	if q := f.Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}
