// Package testutil provides shared helpers for setting up content directories.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/cheatsheets/internal/storage"
)

// Sheet renders a YAML front-matter document.
func Sheet(title, category string, tags []string, body string) string {
	s := "---\ntitle: " + title + "\n"
	if category != "" {
		s += "category: " + category + "\n"
	}
	if len(tags) > 0 {
		s += "tags:\n"
		for _, t := range tags {
			s += "  - " + t + "\n"
		}
	}
	return s + "---\n" + body
}

// TestContent creates a temporary content directory holding files (name →
// content) and a storage.Provider over it.
func TestContent(t *testing.T, files map[string]string) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	store, err := storage.NewFS(dir, storage.DefaultExt)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes content to dir/name, failing the test on error.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
