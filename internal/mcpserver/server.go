// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the cheatsheet collection to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/cheatsheets/internal/apperr"
	"github.com/starford/cheatsheets/internal/catalog"
	"github.com/starford/cheatsheets/internal/models"
	"github.com/starford/cheatsheets/internal/sheetservice"
)

// FormatURI is the resource describing the cheatsheet document format.
const FormatURI = "cheatsheets://format"

// Server wraps the MCP server with cheatsheet tools.
type Server struct {
	mcp *server.MCPServer
	svc *sheetservice.Service
}

// New creates a new MCP server with all cheatsheet tools registered.
func New(svc *sheetservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Cheatsheets",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_cheatsheets",
		mcp.WithDescription("Search cheatsheets by text, category and tags. "+
			"The query is a case-insensitive substring of title, description or body. "+
			"Tags match if the cheatsheet has any of them. All criteria must hold."),
		mcp.WithString("query", mcp.Description("Substring to search for (empty matches all)")),
		mcp.WithString("category", mcp.Description("Exact category name (case-sensitive)")),
		mcp.WithArray("tags",
			mcp.WithStringItems(),
			mcp.Description("Tags; a cheatsheet matches if it carries at least one"),
		),
	), s.searchCheatsheets)

	s.mcp.AddTool(mcp.NewTool("read_cheatsheet",
		mcp.WithDescription("Read the Markdown body of a cheatsheet, preceded by its metadata."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Cheatsheet slug (file name without extension, e.g. git)")),
	), s.readCheatsheet)

	s.mcp.AddTool(mcp.NewTool("get_toc",
		mcp.WithDescription("Return the table of contents of a cheatsheet as JSON (id, text, level)."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Cheatsheet slug")),
	), s.getTOC)

	s.mcp.AddTool(mcp.NewTool("list_facets",
		mcp.WithDescription("List every category and tag in the collection, in first-seen order, with counts."),
	), s.listFacets)

	s.mcp.AddResource(
		mcp.NewResource(FormatURI, "Cheatsheet Format",
			mcp.WithResourceDescription("Front-matter fields and Markdown conventions of a cheatsheet document."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type searchHit struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type searchResult struct {
	Count       int         `json:"count"`
	Total       int         `json:"total"`
	Cheatsheets []searchHit `json:"cheatsheets"`
}

func (s *Server) searchCheatsheets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := catalog.Filter{
		Query:    req.GetString("query", ""),
		Category: req.GetString("category", ""),
		Tags:     req.GetStringSlice("tags", nil),
	}
	listing, err := s.svc.List(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := searchResult{
		Count:       len(listing.Results),
		Total:       listing.Total,
		Cheatsheets: make([]searchHit, 0, len(listing.Results)),
	}
	for _, c := range listing.Results {
		out.Cheatsheets = append(out.Cheatsheets, searchHit{
			Slug:        c.Slug,
			Title:       c.Title,
			Description: c.Description,
			Category:    c.Category,
			Tags:        c.Tags,
		})
	}
	return jsonResult(out)
}

func (s *Server) readCheatsheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.Raw(ctx, slug)
	if err != nil {
		return notFound(slug, err), nil
	}
	return mcp.NewToolResultText(withHeader(doc)), nil
}

func (s *Server) getTOC(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.svc.TOC(ctx, slug)
	if err != nil {
		return notFound(slug, err), nil
	}
	return jsonResult(entries)
}

func (s *Server) listFacets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	facets, err := s.svc.Facets(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(facets)
}

func (s *Server) readFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      FormatURI,
			MIMEType: "text/markdown",
			Text:     FormatContract,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func notFound(slug string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug))
	}
	return mcp.NewToolResultError(err.Error())
}

// withHeader prefixes the body with a short metadata block.
func withHeader(c *models.Cheatsheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Description)
	}
	fmt.Fprintf(&b, "Category: %s\n", c.Category)
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(c.Tags, ", "))
	}
	b.WriteString("\n---\n\n")
	b.WriteString(c.Content)
	return b.String()
}
