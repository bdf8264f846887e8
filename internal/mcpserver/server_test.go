package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/content"
	"github.com/starford/cheatsheets/internal/models"
	"github.com/starford/cheatsheets/internal/render"
	"github.com/starford/cheatsheets/internal/sheetservice"
	"github.com/starford/cheatsheets/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	_, store := testutil.TestContent(t, map[string]string{
		"git.md":   testutil.Sheet("Git", "VCS", []string{"cli"}, "# Basics\n## Hello, World!\nuse git status\n"),
		"cargo.md": testutil.Sheet("Cargo", "Rust", []string{"rust", "cli"}, "cargo build\n"),
		"bad.md":   "---\ntitle: [oops\n---\n",
	})
	logger := testutil.Logger()
	svc := sheetservice.NewService(content.NewLoader(store, logger, 2), render.New(), logger)
	return New(svc, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_cheatsheets":
		result, err = srv.searchCheatsheets(ctx, req)
	case "read_cheatsheet":
		result, err = srv.readCheatsheet(ctx, req)
	case "get_toc":
		result, err = srv.getTOC(ctx, req)
	case "list_facets":
		result, err = srv.listFacets(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchCheatsheets(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_cheatsheets", map[string]interface{}{})
	var all searchResult
	if err := json.Unmarshal([]byte(resultText(r)), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if all.Count != 2 || all.Total != 2 {
		t.Errorf("count=%d total=%d, want 2/2", all.Count, all.Total)
	}

	r = callTool(t, srv, "search_cheatsheets", map[string]interface{}{
		"query": "STATUS",
	})
	var byQuery searchResult
	_ = json.Unmarshal([]byte(resultText(r)), &byQuery)
	if byQuery.Count != 1 || byQuery.Cheatsheets[0].Slug != "git" {
		t.Errorf("query result = %+v", byQuery)
	}

	r = callTool(t, srv, "search_cheatsheets", map[string]interface{}{
		"category": "Rust",
		"tags":     []interface{}{"cli", "missing"},
	})
	var combined searchResult
	_ = json.Unmarshal([]byte(resultText(r)), &combined)
	if combined.Count != 1 || combined.Cheatsheets[0].Slug != "cargo" {
		t.Errorf("combined result = %+v", combined)
	}
}

func TestReadCheatsheet(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "read_cheatsheet", map[string]interface{}{"slug": "git"})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	text := resultText(r)
	if !strings.HasPrefix(text, "# Git\n") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "Category: VCS\nTags: cli\n") {
		t.Errorf("missing metadata: %q", text)
	}
	if !strings.HasSuffix(text, "use git status\n") {
		t.Errorf("missing body: %q", text)
	}
}

func TestReadCheatsheetErrors(t *testing.T) {
	srv := testServer(t)

	for _, args := range []map[string]interface{}{
		{"slug": "nope"},
		{"slug": "bad"},
		{"slug": "../etc/passwd"},
		{},
	} {
		r := callTool(t, srv, "read_cheatsheet", args)
		if !r.IsError {
			t.Errorf("args %v: expected error, got %q", args, resultText(r))
		}
	}

	r := callTool(t, srv, "read_cheatsheet", map[string]interface{}{"slug": "nope"})
	if resultText(r) != "not found: nope" {
		t.Errorf("message = %q", resultText(r))
	}
}

func TestGetTOC(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_toc", map[string]interface{}{"slug": "git"})
	var entries []models.TOCEntry
	if err := json.Unmarshal([]byte(resultText(r)), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []models.TOCEntry{
		{ID: "basics", Text: "Basics", Level: 1},
		{ID: "hello-world", Text: "Hello, World!", Level: 2},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %+v", entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestListFacets(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_facets", map[string]interface{}{})
	var facets catalog.Facets
	if err := json.Unmarshal([]byte(resultText(r)), &facets); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Listing is sorted by slug, so cargo is seen first.
	if strings.Join(facets.Categories, ",") != "Rust,VCS" {
		t.Errorf("categories = %v", facets.Categories)
	}
	if strings.Join(facets.Tags, ",") != "rust,cli" {
		t.Errorf("tags = %v", facets.Tags)
	}
	if facets.TagCounts["cli"] != 2 {
		t.Errorf("cli count = %d", facets.TagCounts["cli"])
	}
}

func TestFormatResource(t *testing.T) {
	srv := testServer(t)

	contents, err := srv.readFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != FormatURI {
		t.Fatalf("contents = %+v", contents)
	}
	if !strings.Contains(tc.Text, "Uncategorized") {
		t.Error("format should document the default category")
	}
}
