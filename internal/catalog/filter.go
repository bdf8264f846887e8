package catalog

import (
	"net/url"
	"slices"
	"strings"

	"github.com/starford/cheatsheets/internal/models"
)

// Filter is the search configuration for a collection. The zero value
// matches everything. Methods never mutate the receiver.
type Filter struct {
	Query    string   `json:"query,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ParseFilter reads a Filter from the q, category and repeated tag
// parameters of a query string.
func ParseFilter(v url.Values) Filter {
	f := Filter{
		Query:    v.Get("q"),
		Category: v.Get("category"),
	}
	for _, t := range v["tag"] {
		if t != "" && !slices.Contains(f.Tags, t) {
			f.Tags = append(f.Tags, t)
		}
	}
	return f
}

// Apply returns the documents matching all three criteria, in input order:
// the query is a case-insensitive substring of the title, description or
// content; the category is equal (case-sensitive); at least one selected
// tag is present.
func (f Filter) Apply(docs []models.Cheatsheet) []models.Cheatsheet {
	out := make([]models.Cheatsheet, 0, len(docs))
	q := strings.ToLower(f.Query)
	for _, d := range docs {
		if q != "" && !containsFold(d, q) {
			continue
		}
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, d.HasTag) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func containsFold(d models.Cheatsheet, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(d.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(d.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(d.Content), lowerQuery)
}

// Active reports whether a category or any tag is selected.
func (f Filter) Active() bool {
	return f.Category != "" || len(f.Tags) > 0
}

// HasTag reports whether tag is selected.
func (f Filter) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

// ToggleCategory selects c, or clears the category when c is already selected.
func (f Filter) ToggleCategory(c string) Filter {
	out := f.clone()
	if out.Category == c {
		out.Category = ""
	} else {
		out.Category = c
	}
	return out
}

// ToggleTag adds tag to the selection, or removes it when already selected.
func (f Filter) ToggleTag(tag string) Filter {
	out := f.clone()
	if i := slices.Index(out.Tags, tag); i >= 0 {
		out.Tags = slices.Delete(out.Tags, i, i+1)
	} else {
		out.Tags = append(out.Tags, tag)
	}
	return out
}

// ClearFacets drops the category and tag selection but keeps the query.
func (f Filter) ClearFacets() Filter {
	return Filter{Query: f.Query}
}

// Values encodes the filter back into query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	for _, t := range f.Tags {
		v.Add("tag", t)
	}
	return v
}

// Encode returns the filter as a URL query string, without the leading '?'.
func (f Filter) Encode() string {
	return f.Values().Encode()
}

func (f Filter) clone() Filter {
	f.Tags = slices.Clone(f.Tags)
	return f
}
