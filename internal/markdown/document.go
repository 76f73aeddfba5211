// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package markdown builds Markdown documents block by block.
package markdown

import (
	"fmt"
	"strings"
)

// block is one top-level element of a document.
type block interface {
	markdown() string
}

type rawBlock string

func (r rawBlock) markdown() string { return string(r) }

type quoteBlock struct{ doc *Document }

func (q quoteBlock) markdown() string {
	inner := strings.TrimRight(q.doc.String(), "\n")
	if inner == "" {
		return ""
	}
	lines := strings.Split(inner, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// Document is a sequence of Markdown blocks. Blocks are separated by a
// blank line when rendered.
type Document struct {
	blocks []block
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Header appends an ATX header. Levels are clamped to 1..6.
func (d *Document) Header(text string, level int) *Document {
	level = max(1, min(level, 6))
	return d.Raw(strings.Repeat("#", level) + " " + oneLine(text))
}

// Paragraph appends a paragraph. Empty text is ignored.
func (d *Document) Paragraph(text string) *Document {
	text = strings.TrimSpace(text)
	if text == "" {
		return d
	}
	return d.Raw(text)
}

// Code appends a fenced code block. The fence grows when the code itself
// contains backtick runs.
func (d *Document) Code(lang, code string) *Document {
	fence := "```"
	for strings.Contains(code, fence) {
		fence += "`"
	}
	return d.Raw(fence + lang + "\n" + strings.TrimRight(code, "\n") + "\n" + fence)
}

// List appends a bulleted list.
func (d *Document) List(items ...string) *Document {
	if len(items) == 0 {
		return d
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + oneLine(it)
	}
	return d.Raw(strings.Join(lines, "\n"))
}

// Table appends a table. Rows shorter than the header are padded; cells
// have pipes escaped and line breaks turned into <br>.
func (d *Document) Table(header []string, rows [][]string) *Document {
	if len(header) == 0 {
		return d
	}
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := range header {
			cell := ""
			if i < len(cells) {
				cell = tableCell(cells[i])
			}
			fmt.Fprintf(&b, " %s |", cell)
		}
		b.WriteString("\n")
	}
	writeRow(header)
	b.WriteString("|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range rows {
		writeRow(r)
	}
	return d.Raw(strings.TrimRight(b.String(), "\n"))
}

// Rule appends a horizontal rule.
func (d *Document) Rule() *Document {
	return d.Raw("---")
}

// Blockquote appends a nested document rendered as a block quote and
// returns it for writing.
func (d *Document) Blockquote() *Document {
	inner := New()
	d.blocks = append(d.blocks, quoteBlock{doc: inner})
	return inner
}

// Raw appends pre-rendered Markdown.
func (d *Document) Raw(text string) *Document {
	d.blocks = append(d.blocks, rawBlock(text))
	return d
}

// String renders the document with a trailing newline.
func (d *Document) String() string {
	parts := make([]string, 0, len(d.blocks))
	for _, b := range d.blocks {
		if s := b.markdown(); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func tableCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}
