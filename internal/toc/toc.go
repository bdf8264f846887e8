// Package toc builds a table of contents from Markdown heading lines.
package toc

import (
	"regexp"
	"strings"

	"github.com/starford/cheatsheets/internal/models"
)

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	nonAlnum  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Extract scans body line by line and returns one entry per heading line:
// one to six '#' markers, whitespace, then text. Lines inside fenced code
// blocks are not special-cased and neither are duplicate ids.
func Extract(body string) []models.TOCEntry {
	entries := []models.TOCEntry{}
	for _, line := range strings.Split(body, "\n") {
		m := headingRe.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			continue
		}
		entries = append(entries, models.TOCEntry{
			ID:    Slugify(m[2]),
			Text:  m[2],
			Level: len(m[1]),
		})
	}
	return entries
}

// Slugify lowercases text, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends.
func Slugify(text string) string {
	id := nonAlnum.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(id, "-")
}

// Duplicates returns ids that occur more than once, in first-seen order.
func Duplicates(entries []models.TOCEntry) []string {
	counts := make(map[string]int, len(entries))
	var dups []string
	for _, e := range entries {
		counts[e.ID]++
		if counts[e.ID] == 2 {
			dups = append(dups, e.ID)
		}
	}
	return dups
}
