// Package parser splits cheatsheet files into front-matter metadata and a
// Markdown body.
package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/models"
)

// Meta holds the recognised front-matter keys.
type Meta struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Category    string   `yaml:"category" toml:"category" json:"category"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Result holds the output of parsing a cheatsheet file.
type Result struct {
	Meta Meta
	Body string
	// HasFrontmatter is false when the file carried no delimited metadata block.
	HasFrontmatter bool
}

// Parse extracts front-matter and body from raw file bytes. YAML (---),
// TOML (+++) and JSON (;;;) delimited blocks are accepted. Missing keys are
// filled with defaults; a block that fails to decode returns an error
// wrapping apperr.ErrMalformedMetadata.
func Parse(data []byte) (*Result, error) {
	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, fmt.Errorf("parser: %w: %w", apperr.ErrMalformedMetadata, err)
	}

	return &Result{
		Meta:           meta.withDefaults(),
		Body:           strings.TrimLeft(string(body), "\r\n"),
		HasFrontmatter: len(body) != len(data),
	}, nil
}

func (m Meta) withDefaults() Meta {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.TrimSpace(m.Category)
	if m.Category == "" {
		m.Category = models.DefaultCategory
	}
	m.Tags = normalizeTags(m.Tags)
	return m
}

// normalizeTags trims entries, drops empties and duplicates, keeping order.
func normalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
