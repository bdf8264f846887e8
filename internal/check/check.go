// Package check validates the content directory: front-matter that fails
// to parse, missing titles and headings whose anchors collide.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/content"
	"github.com/starford/cheatsheets/internal/storage"
	"github.com/starford/cheatsheets/internal/toc"
)

// Severity of an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a document.
type Issue struct {
	Slug     string   `json:"slug"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Slug, i.Message)
}

// Report is the result of a full pass.
type Report struct {
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// HasErrors reports whether any issue is an error.
func (r Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Checker validates documents and remembers the checksum of each file it
// has seen, so Watch only re-checks files whose bytes changed.
type Checker struct {
	store  storage.Provider
	logger *slog.Logger

	mu   sync.Mutex
	sums map[string]string // slug -> checksum
}

// New creates a Checker over store.
func New(store storage.Provider, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{store: store, logger: logger, sums: make(map[string]string)}
}

// Run checks every document in the content directory.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	metas, err := c.store.List()
	if err != nil {
		return Report{}, fmt.Errorf("check: list: %w", err)
	}

	report := Report{Issues: []Issue{}}
	seen := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		f, err := c.store.Read(m.Slug)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return report, fmt.Errorf("check: %w", err)
		}
		seen[m.Slug] = struct{}{}
		report.Checked++
		report.Issues = append(report.Issues, Document(f)...)
		c.remember(f.Slug, f.Checksum)
	}

	c.mu.Lock()
	for slug := range c.sums {
		if _, ok := seen[slug]; !ok {
			delete(c.sums, slug)
		}
	}
	c.mu.Unlock()

	c.logger.Info("check: done",
		slog.Int("checked", report.Checked),
		slog.Int("issues", len(report.Issues)))
	return report, nil
}

// Document returns the issues found in one file.
func Document(f *storage.File) []Issue {
	doc, err := content.Build(f)
	if err != nil {
		return []Issue{{Slug: f.Slug, Severity: SeverityError, Message: err.Error()}}
	}

	var issues []Issue
	if doc.Title == "" {
		issues = append(issues, Issue{Slug: f.Slug, Severity: SeverityWarning, Message: "missing title"})
	}
	for _, id := range toc.Duplicates(toc.Extract(doc.Content)) {
		issues = append(issues, Issue{
			Slug:     f.Slug,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("duplicate heading anchor #%s", id),
		})
	}
	return issues
}

// remember stores sum for slug and reports whether it differs from the
// previous one.
func (c *Checker) remember(slug, sum string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sums[slug] == sum {
		return false
	}
	c.sums[slug] = sum
	return true
}

// forget drops slug and reports whether it was known.
func (c *Checker) forget(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sums[slug]; !ok {
		return false
	}
	delete(c.sums, slug)
	return true
}
