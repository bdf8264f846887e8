package api

import (
	"github.com/starford/cheatsheets/internal/models"
	"github.com/starford/cheatsheets/internal/sheetservice"
)

// ListResponse is the payload of GET /api/cheatsheets.
type ListResponse struct {
	Cheatsheets []models.Cheatsheet `json:"cheatsheets"`
	Count       int                 `json:"count"`
	Total       int                 `json:"total"`
	Categories  []string            `json:"categories"`
	Tags        []string            `json:"tags"`
}

// CheatsheetDetail is the payload of GET /api/cheatsheets/{slug}.
type CheatsheetDetail = sheetservice.Detail

// TOCResponse is the payload of GET /api/cheatsheets/{slug}/toc.
type TOCResponse struct {
	Slug string            `json:"slug"`
	TOC  []models.TOCEntry `json:"toc"`
}

// FacetsResponse is the payload of GET /api/facets.
type FacetsResponse struct {
	Categories     []string       `json:"categories"`
	Tags           []string       `json:"tags"`
	CategoryCounts map[string]int `json:"category_counts"`
	TagCounts      map[string]int `json:"tag_counts"`
}
