// Package content loads cheatsheet records from the content directory.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/models"
	"github.com/starford/cheatsheets/internal/parser"
	"github.com/starford/cheatsheets/internal/storage"
)

// Loader reads and parses cheatsheet files. It holds no state between
// calls; every load goes back to the file system.
type Loader struct {
	store   storage.Provider
	logger  *slog.Logger
	workers int
}

// NewLoader creates a Loader over store. workers bounds concurrent file
// reads in LoadAll; values <= 0 use GOMAXPROCS.
func NewLoader(store storage.Provider, logger *slog.Logger, workers int) *Loader {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, logger: logger, workers: workers}
}

// LoadAll returns every cheatsheet in the directory sorted by slug.
//
// A missing directory returns apperr.ErrNotFound and any other list or read
// failure aborts the whole listing. Files with malformed metadata are
// skipped and logged.
func (l *Loader) LoadAll(ctx context.Context) ([]models.Cheatsheet, error) {
	metas, err := l.store.List()
	if err != nil {
		return nil, fmt.Errorf("content: list: %w", err)
	}

	results := make([]*models.Cheatsheet, len(metas))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, m := range metas {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := l.Load(gCtx, m.Slug)
			switch {
			case err == nil:
				results[i] = doc
			case errors.Is(err, apperr.ErrMalformedMetadata):
				l.logger.Warn("content: skipping malformed document",
					slog.String("slug", m.Slug),
					slog.String("error", err.Error()))
			case errors.Is(err, apperr.ErrNotFound):
				// Removed between List and Read.
				l.logger.Debug("content: document vanished", slog.String("slug", m.Slug))
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]models.Cheatsheet, 0, len(results))
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	slices.SortFunc(docs, func(a, b models.Cheatsheet) int {
		return strings.Compare(a.Slug, b.Slug)
	})
	return docs, nil
}

// Load returns the cheatsheet for slug. A slug with no file returns an
// error wrapping apperr.ErrNotFound.
func (l *Loader) Load(ctx context.Context, slug string) (*models.Cheatsheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.store.Read(slug)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", slug, err)
	}
	return Build(f)
}

// Build turns a raw file into a cheatsheet record.
func Build(f *storage.File) (*models.Cheatsheet, error) {
	res, err := parser.Parse(f.Data)
	if err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", f.Slug, err)
	}
	return &models.Cheatsheet{
		Slug:        f.Slug,
		Title:       res.Meta.Title,
		Description: res.Meta.Description,
		Category:    res.Meta.Category,
		Tags:        res.Meta.Tags,
		Content:     res.Body,
		Checksum:    f.Checksum,
		UpdatedAt:   f.UpdatedAt,
	}, nil
}
