// Package sheetservice coordinates loading, filtering and rendering of
// cheatsheets for the presentation layers.
package sheetservice

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/content"
	"github.com/starford/cheatsheets/internal/models"
	"github.com/starford/cheatsheets/internal/render"
	"github.com/starford/cheatsheets/internal/toc"
)

// Listing is a filtered view over the whole collection.
type Listing struct {
	Filter  catalog.Filter      `json:"filter"`
	Results []models.Cheatsheet `json:"cheatsheets"`
	Total   int                 `json:"total"`
	Facets  catalog.Facets      `json:"facets"`
	// Missing is set when the content directory does not exist.
	Missing bool `json:"-"`
}

// Detail is a single cheatsheet with its table of contents and rendered body.
type Detail struct {
	models.Cheatsheet
	TOC  []models.TOCEntry `json:"toc"`
	HTML template.HTML     `json:"html"`
}

// Service serves cheatsheets. Every call reloads from disk.
type Service struct {
	loader   *content.Loader
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewService creates a new cheatsheet service.
func NewService(loader *content.Loader, renderer *render.Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{loader: loader, renderer: renderer, logger: logger}
}

// List loads the collection, indexes its facets and applies f. A missing
// content directory yields an empty listing with Missing set.
func (s *Service) List(ctx context.Context, f catalog.Filter) (*Listing, error) {
	docs, err := s.loader.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Warn("content directory missing", slog.String("error", err.Error()))
			return &Listing{
				Filter:  f,
				Results: []models.Cheatsheet{},
				Facets:  catalog.Index(nil),
				Missing: true,
			}, nil
		}
		return nil, err
	}
	return &Listing{
		Filter:  f,
		Results: f.Apply(docs),
		Total:   len(docs),
		Facets:  catalog.Index(docs),
	}, nil
}

// Facets returns the categories and tags of the whole collection.
func (s *Service) Facets(ctx context.Context) (catalog.Facets, error) {
	l, err := s.List(ctx, catalog.Filter{})
	if err != nil {
		return catalog.Facets{}, err
	}
	return l.Facets, nil
}

// Get loads one cheatsheet, extracts its table of contents and renders its
// body. Every failure is reported as apperr.ErrNotFound; failures other
// than a missing file are logged.
func (s *Service) Get(ctx context.Context, slug string) (*Detail, error) {
	doc, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	html, err := s.renderer.Render(doc.Content)
	if err != nil {
		s.logger.Error("render failed", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, fmt.Errorf("sheetservice: get %s: %w", slug, apperr.ErrNotFound)
	}
	return &Detail{
		Cheatsheet: *doc,
		TOC:        toc.Extract(doc.Content),
		HTML:       html,
	}, nil
}

// TOC returns only the table of contents of one cheatsheet.
func (s *Service) TOC(ctx context.Context, slug string) ([]models.TOCEntry, error) {
	doc, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toc.Extract(doc.Content), nil
}

// Raw returns the parsed record without rendering.
func (s *Service) Raw(ctx context.Context, slug string) (*models.Cheatsheet, error) {
	return s.load(ctx, slug)
}

func (s *Service) load(ctx context.Context, slug string) (*models.Cheatsheet, error) {
	doc, err := s.loader.Load(ctx, slug)
	if err == nil {
		return doc, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		s.logger.Warn("cheatsheet unavailable", slog.String("slug", slug), slog.String("error", err.Error()))
	}
	return nil, fmt.Errorf("sheetservice: load %s: %w: %v", slug, apperr.ErrNotFound, err)
}
