// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package symbol

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-typedoc/internal/nstree"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// DefaultExternalDocsBase is the root of the framework reference
// documentation linked for external types.
const DefaultExternalDocsBase = "https://learn.microsoft.com/en-us/"

// Registry maps symbol identifiers to the symbols of one documentation
// run. Create one per run and share it between workers; it is safe for
// concurrent use. The first symbol registered under an identifier wins
// and is never replaced.
type Registry struct {
	mu       sync.RWMutex
	symbols  map[string]*TypeSymbol
	logger   *zap.Logger
	docsBase string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Duplicates are logged at debug level and
// batches at info level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithExternalDocsBase sets the root URL for external type links.
func WithExternalDocsBase(url string) Option {
	return func(r *Registry) {
		if url != "" {
			r.docsBase = url
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		symbols:  make(map[string]*TypeSymbol),
		logger:   zap.NewNop(),
		docsBase: DefaultExternalDocsBase,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register places one batch of descriptors, typically one artifact's
// types, and inserts a symbol for each. Directories come from a namespace
// tree built over the whole batch. Descriptors without a namespace and
// generic parameters are skipped. Identifiers already present are left
// untouched. It returns the number of symbols inserted.
//
// All symbols are built before any is inserted, so an error leaves the
// registry unchanged.
func (r *Registry) Register(descs []types.TypeDescriptor) (int, error) {
	eligible := make([]types.TypeDescriptor, 0, len(descs))
	namespaces := make([]string, 0, len(descs))
	for _, d := range descs {
		if d == nil || d.IsGenericParameter() {
			continue
		}
		ns := NamespaceOf(d)
		if ns == "" {
			r.logger.Debug("skipping type without namespace", zap.String("type", d.Name()))
			continue
		}
		eligible = append(eligible, d)
		namespaces = append(namespaces, ns)
	}

	tree, err := nstree.New(namespaces...)
	if err != nil {
		return 0, errors.Wrap(err, "building namespace directories")
	}
	dirs := tree.Directories()

	built := make([]*TypeSymbol, 0, len(eligible))
	for _, d := range eligible {
		ns := NamespaceOf(d)
		dir, ok := dirs[ns]
		if !ok {
			return 0, errors.Wrapf(ErrUnknownNamespace, "%s", ns)
		}
		s, err := NewTypeSymbol(d, dir, FileStem(d), r)
		if err != nil {
			return 0, err
		}
		built = append(built, s)
	}

	inserted := 0
	r.mu.Lock()
	for _, s := range built {
		if _, exists := r.symbols[s.identifier]; exists {
			r.logger.Debug("dropping duplicate symbol", zap.String("identifier", s.identifier))
			continue
		}
		r.symbols[s.identifier] = s
		inserted++
	}
	r.mu.Unlock()

	r.logger.Info("registered symbols",
		zap.Int("inserted", inserted),
		zap.Int("batch", len(descs)),
		zap.Int("namespaces", tree.Len()),
	)
	return inserted, nil
}

// RegisterPlaceholder inserts a page that is not backed by a type, such
// as the index. It reports whether the identifier was free.
func (r *Registry) RegisterPlaceholder(identifier, directory, fileStem string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.symbols[identifier]; exists {
		return false
	}
	r.symbols[identifier] = NewPlaceholder(identifier, directory, fileStem)
	return true
}

// Get returns the symbol registered under identifier.
func (r *Registry) Get(identifier string) (*TypeSymbol, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.symbols[identifier]
	return s, ok
}

// Resolve returns the symbol for a referenced type. Registered generic
// definitions and plain types resolve to their registered symbol.
// Constructed types, generic parameters, and unregistered types get a
// fresh symbol; constructed types share the location of their
// registered definition.
func (r *Registry) Resolve(desc types.TypeDescriptor) *TypeSymbol {
	if desc.IsGenericParameter() {
		return reference(desc, r, nil)
	}
	registered, ok := r.Get(Identifier(desc))
	if ok && registered.desc == nil {
		registered, ok = nil, false
	}
	if ok && len(desc.GenericArguments()) == 0 {
		return registered
	}
	return reference(desc, r, registered)
}

// Len returns the number of registered entries, placeholders included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.symbols)
}

// Symbols returns every registered type symbol ordered by identifier.
// Placeholders are excluded.
func (r *Registry) Symbols() []*TypeSymbol {
	r.mu.RLock()
	out := make([]*TypeSymbol, 0, len(r.symbols))
	for _, s := range r.symbols {
		if s.desc != nil {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].identifier < out[j].identifier })
	return out
}
