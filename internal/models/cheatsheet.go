// Package models defines the domain types for the cheatsheet site.
package models

import "time"

// DefaultCategory is assigned to documents whose front-matter has no category.
const DefaultCategory = "Uncategorized"

// Cheatsheet is a parsed document from the content directory.
type Cheatsheet struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Content     string    `json:"content"`
	Checksum    string    `json:"checksum"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasTag reports whether the document carries tag.
func (c *Cheatsheet) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TOCEntry is one heading in a document's table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// FileMeta describes a content file without parsing it.
type FileMeta struct {
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
