// Package render converts cheatsheet Markdown to HTML with goldmark.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/starford/cheatsheets/internal/toc"
)

// TOCHeading is the heading text (case-insensitive) under which an inline
// table of contents is inserted into the rendered body.
const TOCHeading = "table of contents"

// HighlightStyle is the chroma style written by WriteCSS.
const HighlightStyle = "github"

// Renderer renders Markdown bodies. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub Flavored Markdown enabled, heading ids
// matching toc.Slugify, self-linking headings, class-based syntax
// highlighting of fenced code and raw HTML suppressed.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(HighlightStyle),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
					highlighting.WithWrapperRenderer(codeBlockWrapper),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(
					util.Prioritized(inlineTOC{}, 100),
					util.Prioritized(headingLinks{}, 200),
				),
			),
		),
	}
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(slugIDs{}))
	if err := r.md.Convert([]byte(src), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark output with raw HTML disabled
}

// WriteCSS writes the stylesheet for the highlighting classes.
func WriteCSS(w io.Writer) error {
	return chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(w, styles.Get(HighlightStyle))
}

// codeBlockWrapper puts every fenced block in a container labelled with its
// language. Blocks chroma has no lexer for are written as plain pre/code.
func codeBlockWrapper(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	lang, hasLang := c.Language()
	if entering {
		_, _ = w.WriteString(`<div class="code-block">`)
		if hasLang && len(lang) > 0 {
			_, _ = w.WriteString(`<div class="code-lang">`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_, _ = w.WriteString(`</div>`)
		}
		if !c.Highlighted() {
			_, _ = w.WriteString("<pre><code")
			if hasLang && len(lang) > 0 {
				_, _ = w.WriteString(` class="language-`)
				_, _ = w.Write(util.EscapeHTML(lang))
				_, _ = w.WriteString(`"`)
			}
			_, _ = w.WriteString(">")
		}
		return
	}
	if !c.Highlighted() {
		_, _ = w.WriteString("</code></pre>")
	}
	_, _ = w.WriteString("</div>\n")
}

// slugIDs generates heading ids with toc.Slugify so rendered anchors equal
// the ids of the extracted table of contents. Collisions are kept.
type slugIDs struct{}

func (slugIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(toc.Slugify(string(value)))
}

func (slugIDs) Put([]byte) {}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return ""
}

// headingLinks wraps the content of every heading in a link to itself. A
// heading that already holds a link gets a trailing "#" anchor instead, as
// links cannot nest.
type headingLinks struct{}

func (headingLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := headingID(h)
		if id == "" {
			h.RemoveAttributes()
			return ast.WalkSkipChildren, nil
		}
		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte("heading-anchor"))
		if containsLink(h) {
			link.AppendChild(link, ast.NewString([]byte("#")))
			h.AppendChild(h, link)
			return ast.WalkSkipChildren, nil
		}
		for c := h.FirstChild(); c != nil; {
			next := c.NextSibling()
			h.RemoveChild(h, c)
			link.AppendChild(link, c)
			c = next
		}
		h.AppendChild(h, link)
		return ast.WalkSkipChildren, nil
	})
}

func containsLink(n ast.Node) bool {
	found := false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && (c.Kind() == ast.KindLink || c.Kind() == ast.KindAutoLink) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// inlineTOC inserts a nested list of links after the first heading named
// TOCHeading, covering every heading that follows it.
type inlineTOC struct{}

type tocItem struct {
	id    string
	text  string
	level int
}

func (inlineTOC) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()

	var anchor *ast.Heading
	var items []tocItem
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		label := headingText(h, src)
		if anchor == nil {
			if strings.EqualFold(label, TOCHeading) {
				anchor = h
			}
			continue
		}
		items = append(items, tocItem{id: headingID(h), text: label, level: h.Level})
	}
	if anchor == nil || len(items) == 0 {
		return
	}
	doc.InsertAfter(doc, anchor, buildList(items))
}

func headingText(h *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}

func buildList(items []tocItem) *ast.List {
	type frame struct {
		level int
		list  *ast.List
	}
	root := newList()
	stack := []frame{{level: items[0].level, list: root}}

	for _, it := range items {
		for len(stack) > 1 && it.level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if it.level > top.level && top.list.LastChild() != nil {
			sub := newList()
			parent := top.list.LastChild()
			parent.AppendChild(parent, sub)
			stack = append(stack, frame{level: it.level, list: sub})
			top = stack[len(stack)-1]
		}

		link := ast.NewLink()
		link.Destination = []byte("#" + it.id)
		link.AppendChild(link, ast.NewString([]byte(it.text)))
		block := ast.NewTextBlock()
		block.AppendChild(block, link)
		item := ast.NewListItem(2)
		item.AppendChild(item, block)
		top.list.AppendChild(top.list, item)
	}
	return root
}

func newList() *ast.List {
	l := ast.NewList('-')
	l.IsTight = true
	return l
}
