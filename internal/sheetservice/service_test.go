package sheetservice

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/content"
	"github.com/starford/cheatsheets/internal/render"
	"github.com/starford/cheatsheets/internal/storage"
	"github.com/starford/cheatsheets/internal/testutil"
)

func testService(t *testing.T, files map[string]string) *Service {
	t.Helper()
	_, store := testutil.TestContent(t, files)
	return newService(store)
}

func newService(store storage.Provider) *Service {
	logger := testutil.Logger()
	return NewService(content.NewLoader(store, logger, 2), render.New(), logger)
}

func TestList_FiltersAndIndexes(t *testing.T) {
	svc := testService(t, map[string]string{
		"a.md": testutil.Sheet("A", "X", []string{"go"}, "alpha\n"),
		"b.md": testutil.Sheet("B", "Y", []string{"rust"}, "beta\n"),
	})

	l, err := svc.List(context.Background(), catalog.Filter{Category: "X"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(l.Results) != 1 || l.Results[0].Slug != "a" {
		t.Errorf("results = %+v", l.Results)
	}
	if l.Total != 2 {
		t.Errorf("total = %d, want 2", l.Total)
	}
	if strings.Join(l.Facets.Categories, ",") != "X,Y" || strings.Join(l.Facets.Tags, ",") != "go,rust" {
		t.Errorf("facets = %+v", l.Facets)
	}
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	store, err := storage.NewFS(filepath.Join(t.TempDir(), "none"), ".md")
	if err != nil {
		t.Fatal(err)
	}
	l, err := newService(store).List(context.Background(), catalog.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !l.Missing || len(l.Results) != 0 || l.Results == nil {
		t.Errorf("listing = %+v", l)
	}
}

func TestGet(t *testing.T) {
	svc := testService(t, map[string]string{
		"git.md": testutil.Sheet("Git", "Tools", nil, "## Hello, World!\n\ntext\n"),
	})

	d, err := svc.Get(context.Background(), "git")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Title != "Git" || d.Category != "Tools" {
		t.Errorf("detail = %+v", d.Cheatsheet)
	}
	if len(d.TOC) != 1 || d.TOC[0].ID != "hello-world" || d.TOC[0].Level != 2 {
		t.Errorf("toc = %+v", d.TOC)
	}
	if !strings.Contains(string(d.HTML), `id="hello-world"`) {
		t.Errorf("html = %s", d.HTML)
	}
}

func TestGet_FailsClosed(t *testing.T) {
	svc := testService(t, map[string]string{
		"bad.md": "---\ntitle: [oops\n---\n",
	})
	for _, slug := range []string{"bad", "missing", "../etc/passwd"} {
		if _, err := svc.Get(context.Background(), slug); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Get(%q) err = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestTOC(t *testing.T) {
	svc := testService(t, map[string]string{
		"x.md": "# One\n## Two\n####### Seven\n",
	})
	entries, err := svc.TOC(context.Background(), "x")
	if err != nil {
		t.Fatalf("TOC: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestFacets(t *testing.T) {
	svc := testService(t, map[string]string{
		"a.md": testutil.Sheet("A", "", []string{"x", "y"}, ""),
		"b.md": testutil.Sheet("B", "", []string{"y", "z"}, ""),
	})
	f, err := svc.Facets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(f.Categories, ",") != "Uncategorized" {
		t.Errorf("categories = %v", f.Categories)
	}
	if strings.Join(f.Tags, ",") != "x,y,z" || f.TagCounts["y"] != 2 {
		t.Errorf("tags = %v counts = %v", f.Tags, f.TagCounts)
	}
}
