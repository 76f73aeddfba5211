// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package comments reads structured documentation comments and keys them
// by member ID. Sources are documentation XML files, single "///" comment
// blocks, and in-memory maps filled by descriptor loaders.
package comments

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// ErrMalformedComment is returned for documentation that is not
// well-formed XML.
var ErrMalformedComment = errors.New("malformed documentation comment")

type xmlFile struct {
	Assembly struct {
		Name string `xml:"name"`
	} `xml:"assembly"`
	Members []struct {
		Name  string `xml:"name,attr"`
		Inner string `xml:",innerxml"`
	} `xml:"members>member"`
}

// File is a parsed documentation XML file.
type File struct {
	Assembly string
	members  Map
}

// Lookup implements types.CommentSource.
func (f *File) Lookup(id string) (*types.MemberDoc, bool) {
	return f.members.Lookup(id)
}

// Len returns the number of documented members.
func (f *File) Len() int { return len(f.members) }

// Parse reads a documentation XML file.
func Parse(r io.Reader) (*File, error) {
	var raw xmlFile
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(ErrMalformedComment, err.Error())
	}
	f := &File{Assembly: strings.TrimSpace(raw.Assembly.Name), members: make(Map, len(raw.Members))}
	for _, m := range raw.Members {
		doc, err := parseMember(m.Inner)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", m.Name)
		}
		f.members[m.Name] = doc
	}
	return f, nil
}

// Load reads the documentation XML file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening documentation file")
	}
	defer fh.Close()
	f, err := Parse(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return f, nil
}

// ParseBlock parses the XML body of one comment, such as the joined
// contents of a "///" block.
func ParseBlock(block string) (*types.MemberDoc, error) {
	return parseMember(block)
}

func parseMember(inner string) (*types.MemberDoc, error) {
	dec := xml.NewDecoder(strings.NewReader("<member>" + inner + "</member>"))
	doc := &types.MemberDoc{
		Params:     make(map[string]string),
		TypeParams: make(map[string]string),
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return doc, nil
		}
		if err != nil {
			return nil, errors.Wrap(ErrMalformedComment, err.Error())
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local == "member" {
			continue
		}
		text, err := readText(dec, start)
		if err != nil {
			return nil, err
		}
		switch start.Name.Local {
		case "summary":
			doc.Summary = text
		case "remarks":
			doc.Remarks = text
		case "param":
			doc.Params[attr(start, "name")] = text.Plain()
		case "typeparam":
			doc.TypeParams[attr(start, "name")] = text.Plain()
		case "returns":
			doc.Returns = text.Plain()
		case "value":
			doc.Value = text.Plain()
		case "exception":
			doc.Exceptions = append(doc.Exceptions, types.ExceptionDoc{Cref: attr(start, "cref"), Text: text.Plain()})
		}
	}
}

// readText consumes the element opened by start and returns its content.
// Cross-references become Cref segments; inline code is wrapped in
// backticks.
func readText(dec *xml.Decoder, start xml.StartElement) (types.Text, error) {
	var out types.Text
	add := func(s string) {
		if s == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Cref == "" {
			out[n-1].Text += s
			return
		}
		out = append(out, types.Segment{Text: s})
	}

	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedComment, "in <%s>: %v", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			add(collapse(string(t)))
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "see", "seealso":
				if cref := attr(t, "cref"); cref != "" {
					out = append(out, types.Segment{Cref: cref})
				} else if word := attr(t, "langword"); word != "" {
					add("`" + word + "`")
				} else if href := attr(t, "href"); href != "" {
					add(href)
				}
			case "paramref", "typeparamref":
				add(attr(t, "name"))
			case "c", "code":
				add("`")
			case "para", "br":
				add("\n\n")
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "c" || t.Name.Local == "code" {
				add("`")
			}
		}
	}
	return out, nil
}

// collapse replaces runs of white space with one space.
func collapse(s string) string {
	if s == "" {
		return ""
	}
	joined := strings.Join(strings.Fields(s), " ")
	if joined == "" {
		return " "
	}
	if isSpace(s[0]) {
		joined = " " + joined
	}
	if isSpace(s[len(s)-1]) {
		joined += " "
	}
	return joined
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
