// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package metadata

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Ref is a parsed type reference. Both documentation-file and source
// spellings are accepted: "Acme.Map`2[System.String, Acme.Item]",
// "Map<string, Item>", "Outer`1+Inner", "int[]", "Item?".
type Ref struct {
	Name   string // Dotted name; nested types joined with "+"
	Args   []*Ref
	Suffix string // Trailing "[]", "?", and "*" markers

	// nested is set when Name already spells the arity of every segment,
	// as for "Outer<T>.Inner" whose Args include the enclosing arguments.
	nested bool
}

// Arity returns the number of generic parameters the innermost named type
// declares itself.
func (r *Ref) Arity() int {
	last := lastSegment(r.Name)
	if i := strings.IndexByte(last, '`'); i >= 0 {
		if n, err := strconv.Atoi(last[i+1:]); err == nil {
			return n
		}
	}
	if r.nested {
		return 0
	}
	return len(r.Args)
}

// Canonical returns the name with the arity suffix made explicit.
func (r *Ref) Canonical() string {
	if r.nested || strings.IndexByte(lastSegment(r.Name), '`') >= 0 || len(r.Args) == 0 {
		return r.Name
	}
	return r.Name + "`" + strconv.Itoa(len(r.Args))
}

// String renders the reference in documentation-file spelling.
func (r *Ref) String() string {
	var b strings.Builder
	b.WriteString(r.Canonical())
	if len(r.Args) > 0 {
		b.WriteByte('[')
		for i, a := range r.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(']')
	}
	b.WriteString(r.Suffix)
	return b.String()
}

func lastSegment(name string) string {
	if i := strings.LastIndexAny(name, ".+"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// ParseRef parses a type reference.
func ParseRef(s string) (*Ref, error) {
	p := &refParser{src: strings.TrimSpace(s)}
	r, err := p.parse()
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidManifest, "type reference %q: %v", s, err)
	}
	if p.pos != len(p.src) {
		return nil, errors.Wrapf(ErrInvalidManifest, "type reference %q: unexpected %q", s, p.src[p.pos:])
	}
	return r, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func isNameChar(c byte) bool {
	return c == '.' || c == '+' || c == '`' || c == '_' || c == '@' || c > unicode.MaxASCII ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func (p *refParser) parse() (*Ref, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isNameChar(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return nil, errors.Newf("expected a type name at offset %d", p.pos)
	}
	r := &Ref{Name: strings.TrimPrefix(p.src[start:p.pos], "@")}
	if strings.HasPrefix(r.Name, ".") || strings.HasSuffix(r.Name, ".") || strings.Contains(r.Name, "..") {
		return nil, errors.Newf("malformed name %q", r.Name)
	}

	// Generic argument list: <...> or [...] unless it is an array "[]".
	if c := p.peek(); c == '<' || (c == '[' && !p.arrayAhead()) {
		closing := byte('>')
		if c == '[' {
			closing = ']'
		}
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return nil, err
			}
			r.Args = append(r.Args, arg)
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case closing:
				p.pos++
			default:
				return nil, errors.Newf("expected ',' or %q at offset %d", closing, p.pos)
			}
			break
		}
		// Nested type of a constructed generic: Outer<T>.Inner or Outer`1[T]+Inner.
		if c := p.peek(); c == '.' || c == '+' {
			p.pos++
			rest, err := p.parse()
			if err != nil {
				return nil, err
			}
			rest.Name = r.Canonical() + "+" + rest.Canonical()
			rest.Args = append(r.Args, rest.Args...)
			rest.nested = true
			return rest, nil
		}
	}

	for {
		switch {
		case strings.HasPrefix(p.src[p.pos:], "[]"):
			r.Suffix += "[]"
			p.pos += 2
		case strings.HasPrefix(p.src[p.pos:], "[,]"):
			r.Suffix += "[,]"
			p.pos += 3
		case p.peek() == '?' || p.peek() == '*':
			r.Suffix += string(p.peek())
			p.pos++
		default:
			return r, nil
		}
	}
}

// arrayAhead reports whether the "[" at the cursor opens an array rank
// specifier rather than an argument list.
func (p *refParser) arrayAhead() bool {
	rest := p.src[p.pos:]
	return strings.HasPrefix(rest, "[]") || strings.HasPrefix(rest, "[,")
}
