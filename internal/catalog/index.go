// Package catalog derives facets from a cheatsheet collection and filters it.
package catalog

import "github.com/starford/cheatsheets/internal/models"

// Facets holds the distinct categories and tags of a collection.
type Facets struct {
	Categories     []string       `json:"categories"`
	Tags           []string       `json:"tags"`
	CategoryCounts map[string]int `json:"category_counts"`
	TagCounts      map[string]int `json:"tag_counts"`
}

// Index returns the distinct categories and distinct tags of docs, each in
// first-seen order. Counts are the number of documents carrying the value.
func Index(docs []models.Cheatsheet) Facets {
	f := Facets{
		Categories:     []string{},
		Tags:           []string{},
		CategoryCounts: make(map[string]int),
		TagCounts:      make(map[string]int),
	}
	for i := range docs {
		d := &docs[i]
		if _, seen := f.CategoryCounts[d.Category]; !seen {
			f.Categories = append(f.Categories, d.Category)
		}
		f.CategoryCounts[d.Category]++

		counted := make(map[string]struct{}, len(d.Tags))
		for _, t := range d.Tags {
			if _, seen := f.TagCounts[t]; !seen {
				f.Tags = append(f.Tags, t)
			}
			if _, dup := counted[t]; dup {
				continue
			}
			counted[t] = struct{}{}
			f.TagCounts[t]++
		}
	}
	return f
}
