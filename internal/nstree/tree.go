// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package nstree maps dotted namespace strings to a collision-free
// directory layout. Namespaces are inserted into a trie keyed by dot
// segment; chains of single-child pass-through nodes collapse into one
// directory named with periods, and every branching point (two or more
// children, or a namespace that also has sub-namespaces) becomes a real
// sub-directory.
//
// Directory paths always use "/" as the separator. Callers convert with
// filepath.FromSlash when touching the file system.
package nstree

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	segmentSep = "."
	dirSep     = "/"
)

var (
	// ErrEmptyNamespace is returned when a zero-length namespace is added.
	ErrEmptyNamespace = errors.New("empty namespace")
	// ErrMalformedNamespace is returned for namespaces with empty segments
	// or path separator characters.
	ErrMalformedNamespace = errors.New("malformed namespace")
)

// node is one dot segment of the trie.
type node struct {
	segment  string
	terminal bool // some namespace ends exactly here
	children map[string]*node
}

func newNode(segment string) *node {
	return &node{segment: segment, children: make(map[string]*node)}
}

// child returns the child for segment, creating it if needed.
func (n *node) child(segment string) *node {
	c, ok := n.children[segment]
	if !ok {
		c = newNode(segment)
		n.children[segment] = c
	}
	return c
}

// sortedChildren returns children ordered by segment so enumeration does
// not depend on insertion order.
func (n *node) sortedChildren() []*node {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*node, len(keys))
	for i, k := range keys {
		out[i] = n.children[k]
	}
	return out
}

// joiner is "." while the node is a pure pass-through (exactly one child,
// not terminal) and "/" at every branching point.
func (n *node) joiner() string {
	if len(n.children) == 1 && !n.terminal {
		return segmentSep
	}
	return dirSep
}

// Entry pairs a namespace with its relative directory.
type Entry struct {
	Namespace string
	Directory string
}

// collect appends the (namespace, directory) pairs of the subtree rooted at
// n. Both values are relative to n: the namespace is dot-joined, the
// directory uses the joiner chosen at each level.
func (n *node) collect(out []Entry) []Entry {
	if n.terminal {
		out = append(out, Entry{Namespace: n.segment, Directory: n.segment})
	}
	sep := n.joiner()
	for _, c := range n.sortedChildren() {
		start := len(out)
		out = c.collect(out)
		for i := start; i < len(out); i++ {
			out[i].Namespace = n.segment + segmentSep + out[i].Namespace
			out[i].Directory = n.segment + sep + out[i].Directory
		}
	}
	return out
}

// Tree is the namespace trie. The zero value is not usable; call New.
// A Tree is not safe for concurrent mutation; it is built once per batch
// and read afterwards.
type Tree struct {
	root *node
}

// New builds a tree from the given namespaces. Duplicates are allowed.
// The first malformed namespace aborts construction.
func New(namespaces ...string) (*Tree, error) {
	t := &Tree{root: newNode("")}
	for _, ns := range namespaces {
		if err := t.Add(ns); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add inserts one namespace.
func (t *Tree) Add(ns string) error {
	segments, err := Split(ns)
	if err != nil {
		return err
	}
	n := t.root
	for _, s := range segments {
		n = n.child(s)
	}
	n.terminal = true
	return nil
}

// Split validates a namespace and returns its dot segments.
func Split(ns string) ([]string, error) {
	if len(ns) == 0 {
		return nil, ErrEmptyNamespace
	}
	segments := strings.Split(ns, segmentSep)
	for _, s := range segments {
		if s == "" {
			return nil, errors.Wrapf(ErrMalformedNamespace, "%q has an empty segment", ns)
		}
		if strings.ContainsAny(s, `/\`) {
			return nil, errors.Wrapf(ErrMalformedNamespace, "%q contains a path separator", ns)
		}
	}
	return segments, nil
}

// Len returns the number of distinct namespaces in the tree.
func (t *Tree) Len() int {
	count := 0
	queue := []*node{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.terminal {
			count++
		}
		for _, c := range n.children {
			queue = append(queue, c)
		}
	}
	return count
}

// Entries returns every distinct namespace with its directory, ordered
// depth-first by segment.
func (t *Tree) Entries() []Entry {
	var out []Entry
	// The root carries no segment and passes child paths through unchanged.
	for _, c := range t.root.sortedChildren() {
		out = c.collect(out)
	}
	return out
}

// Directories returns the namespace → directory map.
func (t *Tree) Directories() map[string]string {
	entries := t.Entries()
	dirs := make(map[string]string, len(entries))
	for _, e := range entries {
		dirs[e.Namespace] = e.Directory
	}
	return dirs
}

// Directory returns the directory assigned to a single namespace.
func (t *Tree) Directory(ns string) (string, bool) {
	segments, err := Split(ns)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	n := t.root
	for i, s := range segments {
		c, ok := n.children[s]
		if !ok {
			return "", false
		}
		if i > 0 {
			b.WriteString(n.joiner())
		}
		b.WriteString(s)
		n = c
	}
	if !n.terminal {
		return "", false
	}
	return b.String(), true
}

// Clear removes all namespaces.
func (t *Tree) Clear() {
	t.root = newNode("")
}
