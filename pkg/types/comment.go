// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "strings"

// CommentSource looks up structured documentation by member ID
// (e.g. "T:Acme.Widgets.Widget" or "M:Acme.Widgets.Widget.Spin(System.Int32)").
type CommentSource interface {
	Lookup(memberID string) (*MemberDoc, bool)
}

// Segment is one piece of documentation text. Exactly one of Text and
// Cref is set; Cref carries a cross-reference such as "T:Acme.Widget".
type Segment struct {
	Text string
	Cref string
}

// Text is a run of segments forming one block of documentation.
type Text []Segment

// Plain joins the segments, rendering cross-references by their target
// name without the member-type prefix.
func (t Text) Plain() string {
	var b strings.Builder
	for _, s := range t {
		if s.Cref != "" {
			name := s.Cref
			if len(name) > 2 && name[1] == ':' {
				name = name[2:]
			}
			b.WriteString(name)
			continue
		}
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// IsEmpty reports whether the text has no visible content.
func (t Text) IsEmpty() bool {
	return t.Plain() == ""
}

// ExceptionDoc documents one exception a member may throw.
type ExceptionDoc struct {
	Cref string
	Text string
}

// MemberDoc is the structured documentation of one member.
type MemberDoc struct {
	Summary    Text
	Remarks    Text
	Params     map[string]string // Parameter name → description
	TypeParams map[string]string // Type parameter name → description
	Returns    string
	Value      string
	Exceptions []ExceptionDoc
}
