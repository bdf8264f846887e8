package parser

import (
	"errors"
	"testing"

	"github.com/starford/cheatsheets/internal/apperr"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte("---\ntitle: Git\ndescription: Everyday commands\ncategory: VCS\ntags:\n  - git\n  - cli\n---\n# Git\nBody text.\n")
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Meta.Title != "Git" {
		t.Errorf("title = %q, want %q", r.Meta.Title, "Git")
	}
	if r.Meta.Description != "Everyday commands" {
		t.Errorf("description = %q", r.Meta.Description)
	}
	if r.Meta.Category != "VCS" {
		t.Errorf("category = %q", r.Meta.Category)
	}
	if len(r.Meta.Tags) != 2 || r.Meta.Tags[0] != "git" || r.Meta.Tags[1] != "cli" {
		t.Errorf("tags = %v, want [git cli]", r.Meta.Tags)
	}
	if r.Body != "# Git\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
	if !r.HasFrontmatter {
		t.Error("HasFrontmatter = false")
	}
}

func TestParse_Defaults(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: Only title\n---\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Meta.Category != "Uncategorized" {
		t.Errorf("category = %q, want Uncategorized", r.Meta.Category)
	}
	if r.Meta.Description != "" {
		t.Errorf("description = %q, want empty", r.Meta.Description)
	}
	if r.Meta.Tags == nil || len(r.Meta.Tags) != 0 {
		t.Errorf("tags = %#v, want empty non-nil", r.Meta.Tags)
	}
}

func TestParse_TrimsWhitespace(t *testing.T) {
	r, err := Parse([]byte("---\ntitle: \"  Git  \"\ndescription: \"\\tcommands \"\ncategory: \"   \"\n---\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Meta.Title != "Git" {
		t.Errorf("title = %q, want Git", r.Meta.Title)
	}
	if r.Meta.Description != "commands" {
		t.Errorf("description = %q, want commands", r.Meta.Description)
	}
	if r.Meta.Category != "Uncategorized" {
		t.Errorf("blank category = %q, want Uncategorized", r.Meta.Category)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r, err := Parse([]byte("# Just a heading\nSome text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasFrontmatter {
		t.Error("HasFrontmatter = true")
	}
	if r.Meta.Title != "" || r.Meta.Category != "Uncategorized" {
		t.Errorf("meta = %+v", r.Meta)
	}
	if r.Body != "# Just a heading\nSome text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_TOML(t *testing.T) {
	r, err := Parse([]byte("+++\ntitle = \"Tmux\"\ntags = [\"terminal\"]\n+++\nbody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Meta.Title != "Tmux" || len(r.Meta.Tags) != 1 || r.Meta.Tags[0] != "terminal" {
		t.Errorf("meta = %+v", r.Meta)
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("---\ntitle: [unclosed\n---\nBody\n"))
	if !errors.Is(err, apperr.ErrMalformedMetadata) {
		t.Fatalf("err = %v, want ErrMalformedMetadata", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" go ", "", "rust", "go"})
	if len(got) != 2 || got[0] != "go" || got[1] != "rust" {
		t.Errorf("tags = %v, want [go rust]", got)
	}
}
