// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package markdown

import "strings"

var chevrons = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeChevrons replaces angle brackets with HTML entities so generic
// type names survive outside code spans.
func EscapeChevrons(s string) string {
	return chevrons.Replace(s)
}

// Code returns s as an inline code span.
func Code(s string) string {
	if s == "" {
		return ""
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

// Link returns an inline link. An empty url yields the bare text.
func Link(text, url string) string {
	if url == "" {
		return text
	}
	return "[" + strings.ReplaceAll(text, "]", `\]`) + "](" + strings.ReplaceAll(url, " ", "%20") + ")"
}

// LineBreak separates lines inside a paragraph or table cell.
const LineBreak = "<br>"
