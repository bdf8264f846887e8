package mcpserver

// FormatContract describes the cheatsheet document format served at
// FormatURI.
const FormatContract = `# Cheatsheet Format

Each cheatsheet is one Markdown file in the content directory. The file name
without extension is the slug (` + "`git.md`" + ` is served at ` + "`/cheatsheets/git`" + `).
Sub-directories are not scanned.

## Front-matter

` + "```" + `markdown
---
title: Git                      # shown on cards and as the page heading
description: Everyday commands  # OPTIONAL, shown under the title
category: Version Control       # OPTIONAL, defaults to "Uncategorized"
tags:                           # OPTIONAL, YAML list
  - cli
  - git
---
` + "```" + `

YAML (` + "`---`" + `), TOML (` + "`+++`" + `) and JSON (` + "`;;;`" + `) front-matter are accepted. A file
without front-matter is all body and gets the defaults. A file whose
front-matter cannot be parsed is left out of listings and is not served.

## Body

- GitHub-flavoured Markdown: tables, task lists, strikethrough, autolinks.
- Every ATX heading (` + "`#`" + ` to ` + "`######`" + `) becomes a table-of-contents entry.
  Its anchor id is the heading text lowercased, with every run of characters
  outside a-z and 0-9 replaced by ` + "`-`" + ` and leading/trailing dashes removed.
  ` + "`## Hello, World!`" + ` links as ` + "`#hello-world`" + `.
- Headings with the same text share an id; keep heading text unique.
- A heading named "Table of contents" is followed by a generated list of links.
- Fenced code with a language (` + "```go" + `) is syntax-highlighted.
- Raw HTML is not rendered.

## Search

Search matches a case-insensitive substring of title, description or body.
Category filters are exact and case-sensitive. Tag filters match any
selected tag.
`
