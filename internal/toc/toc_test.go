package toc

import (
	"testing"

	"github.com/starford/cheatsheets/internal/models"
)

func TestExtract_Basic(t *testing.T) {
	got := Extract("## Hello, World!")
	want := models.TOCEntry{ID: "hello-world", Text: "Hello, World!", Level: 2}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %+v, want [%+v]", got, want)
	}
}

func TestExtract_TooDeep(t *testing.T) {
	if got := Extract("####### too deep"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}

func TestExtract_Levels(t *testing.T) {
	body := "# One\ntext\n### Three\n###### Six\n#NoSpace\n  # indented\n"
	got := Extract(body)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	wantLevels := []int{1, 3, 6}
	for i, e := range got {
		if e.Level != wantLevels[i] {
			t.Errorf("entry %d level = %d, want %d", i, e.Level, wantLevels[i])
		}
	}
}

func TestExtract_NoDeduplication(t *testing.T) {
	got := Extract("## A/B\n## A B\n")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "a-b" || got[1].ID != "a-b" {
		t.Errorf("ids = %q, %q, want both a-b", got[0].ID, got[1].ID)
	}
	if dups := Duplicates(got); len(dups) != 1 || dups[0] != "a-b" {
		t.Errorf("Duplicates = %v", dups)
	}
}

func TestExtract_CRLF(t *testing.T) {
	got := Extract("# Title\r\nbody\r\n## Next\r\n")
	if len(got) != 2 || got[0].Text != "Title" || got[1].Text != "Next" {
		t.Errorf("got %+v", got)
	}
}

func TestExtract_Empty(t *testing.T) {
	got := Extract("")
	if got == nil || len(got) != 0 {
		t.Errorf("got %#v, want empty slice", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":      "hello-world",
		"  --Leading--  ":    "leading",
		"git rebase -i HEAD": "git-rebase-i-head",
		"C++ & Go":           "c-go",
		"Ünïcode":            "n-code",
		"!!!":                "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
