// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package metadata

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/petar-djukic/go-typedoc/internal/comments"
	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// Builder resolves type specs into descriptors. Add every spec of one
// artifact, then call Build once.
type Builder struct {
	// Usings lists namespaces searched for unqualified references in every
	// type, after the type's own namespace.
	Usings []string

	artifact  string
	external  bool
	framework *Framework
	specs     []TypeSpec

	keys      []string
	byKey     map[string]*Type
	keyByType map[*Type]string
	built     []*Type
	stubs     map[string]*Type
	done      bool
}

// NewBuilder returns a builder for the named artifact. Types of an
// external artifact are linked to reference documentation instead of
// getting pages.
func NewBuilder(artifact string, external bool) *Builder {
	return &Builder{
		artifact:  artifact,
		external:  external,
		framework: Builtins(),
		byKey:     make(map[string]*Type),
		keyByType: make(map[*Type]string),
		stubs:     make(map[string]*Type),
	}
}

// Add queues one type spec.
func (b *Builder) Add(spec TypeSpec) {
	b.specs = append(b.specs, spec)
}

// Build resolves every queued spec and returns the descriptors in spec
// order.
func (b *Builder) Build() ([]types.TypeDescriptor, error) {
	if b.done {
		return nil, errors.Wrap(ErrInvalidManifest, "builder already used")
	}
	b.done = true

	if err := b.assignKeys(); err != nil {
		return nil, err
	}
	if err := b.declare(); err != nil {
		return nil, err
	}
	for i, t := range b.built {
		if err := b.resolve(t, b.specs[i]); err != nil {
			return nil, errors.Wrapf(err, "type %s", b.keys[i])
		}
	}
	if err := b.checkInheritance(); err != nil {
		return nil, err
	}

	out := make([]types.TypeDescriptor, len(b.built))
	for i, t := range b.built {
		out[i] = t
	}
	return out, nil
}

// Comments returns the inline documentation of the built types.
func (b *Builder) Comments() (comments.Map, error) {
	return specComments(b.built, b.specs)
}

func ownName(spec TypeSpec) string {
	if strings.IndexByte(spec.Name, '`') >= 0 || len(spec.Generics) == 0 {
		return spec.Name
	}
	return spec.Name + "`" + strconv.Itoa(len(spec.Generics))
}

// assignKeys computes the full name of every spec. Nested specs are keyed
// below their declaring spec, so they are resolved in rounds until no
// more progress is made.
func (b *Builder) assignKeys() error {
	b.keys = make([]string, len(b.specs))
	index := make(map[string]int, len(b.specs))
	pending := 0

	for i, spec := range b.specs {
		if spec.Name == "" {
			return errors.Wrapf(ErrInvalidManifest, "type %d has no name", i)
		}
		if spec.DeclaringType != "" {
			pending++
			continue
		}
		if spec.Namespace == "" {
			return errors.Wrapf(ErrInvalidManifest, "type %s has no namespace", spec.Name)
		}
		key := spec.Namespace + "." + ownName(spec)
		if _, dup := index[key]; dup {
			return errors.Wrapf(ErrInvalidManifest, "duplicate type %s", key)
		}
		index[key] = i
		b.keys[i] = key
	}

	for pending > 0 {
		progress := false
		for i, spec := range b.specs {
			if b.keys[i] != "" {
				continue
			}
			parent, ok := b.declaringKey(spec, index)
			if !ok {
				continue
			}
			key := parent + "+" + ownName(spec)
			if _, dup := index[key]; dup {
				return errors.Wrapf(ErrInvalidManifest, "duplicate type %s", key)
			}
			index[key] = i
			b.keys[i] = key
			pending--
			progress = true
		}
		if !progress {
			break
		}
	}

	for i, spec := range b.specs {
		if b.keys[i] == "" {
			return errors.Wrapf(ErrUnresolvedType, "declaring type %s of %s", spec.DeclaringType, spec.Name)
		}
	}
	return nil
}

func (b *Builder) declaringKey(spec TypeSpec, index map[string]int) (string, bool) {
	ref, err := ParseRef(spec.DeclaringType)
	if err != nil {
		return "", false
	}
	name := ref.Canonical()
	candidates := []string{name}
	if spec.Namespace != "" {
		candidates = append(candidates, spec.Namespace+"."+name)
	}
	for _, c := range candidates {
		if i, ok := index[c]; ok && b.keys[i] == c {
			return c, true
		}
	}
	return "", false
}

// declare creates the Type of every spec, enclosing types first.
func (b *Builder) declare() error {
	b.built = make([]*Type, len(b.specs))
	index := make(map[string]int, len(b.keys))
	for i, k := range b.keys {
		index[k] = i
	}

	var create func(i int) (*Type, error)
	create = func(i int) (*Type, error) {
		if t := b.built[i]; t != nil {
			return t, nil
		}
		spec := b.specs[i]
		kind, ok := types.ParseKind(spec.Kind)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidManifest, "type %s has unknown kind %q", b.keys[i], spec.Kind)
		}
		t := &Type{
			namespace:  spec.Namespace,
			name:       ownName(spec),
			kind:       kind,
			visibility: parseVisibility(spec.Visibility),
			abstract:   spec.Abstract,
			sealed:     spec.Sealed,
			static:     spec.Static,
			external:   b.external,
			artifact:   b.artifact,
		}
		if cut := strings.LastIndexByte(b.keys[i], '+'); cut >= 0 {
			parent, err := create(index[b.keys[i][:cut]])
			if err != nil {
				return nil, err
			}
			t.declaring = parent
			t.namespace = parent.namespace
			t.params = append(t.params, parent.params...)
		}
		for _, g := range spec.Generics {
			t.params = append(t.params, genericParameter(g))
		}
		b.built[i] = t
		b.byKey[b.keys[i]] = t
		b.keyByType[t] = b.keys[i]
		return t, nil
	}

	for i := range b.specs {
		if _, err := create(i); err != nil {
			return err
		}
	}
	return nil
}

func parseVisibility(s string) types.Visibility {
	if s == "" {
		return types.Public
	}
	return types.ParseVisibility(s)
}

// scope is the context an unqualified reference is resolved in.
type scope struct {
	owner     *Type
	namespace string
	usings    []string
	generics  map[string]types.TypeDescriptor
}

func (sc scope) withGenerics(params []types.TypeDescriptor) scope {
	g := make(map[string]types.TypeDescriptor, len(sc.generics)+len(params))
	for k, v := range sc.generics {
		g[k] = v
	}
	for _, p := range params {
		g[p.Name()] = p
	}
	sc.generics = g
	return sc
}

func (b *Builder) scopeFor(t *Type, spec TypeSpec) scope {
	usings := append(append([]string(nil), spec.Usings...), b.Usings...)
	return scope{owner: t, namespace: t.namespace, usings: usings}.withGenerics(t.params)
}

// resolve fills in base type, interfaces, and members.
func (b *Builder) resolve(t *Type, spec TypeSpec) error {
	sc := b.scopeFor(t, spec)

	var listed []types.TypeDescriptor
	for _, s := range spec.Interfaces {
		d, _, err := b.resolveString(s, sc)
		if err != nil {
			return err
		}
		listed = append(listed, d)
	}

	switch t.kind {
	case types.Class:
		if spec.Base != "" {
			d, _, err := b.resolveString(spec.Base, sc)
			if err != nil {
				return err
			}
			t.base = d
		} else if len(listed) > 0 && listed[0].Kind() == types.Class && !listed[0].IsGenericParameter() && !t.static {
			// Source base lists name the base class first, mixed with interfaces.
			t.base = listed[0]
			listed = listed[1:]
		}
		if t.base == nil {
			t.base = b.frameworkType("System.Object")
		}
	case types.Struct:
		t.base = b.frameworkType("System.ValueType")
	case types.Enum:
		t.base = b.frameworkType("System.Enum")
	}
	t.interfaces = listed

	for _, ms := range spec.Members {
		m, err := b.member(t, spec, ms, sc)
		if err != nil {
			return errors.Wrapf(err, "member %s", ms.Name)
		}
		t.members = append(t.members, m)
	}
	return nil
}

func (b *Builder) member(t *Type, spec TypeSpec, ms MemberSpec, sc scope) (types.Member, error) {
	kind, ok := types.ParseMemberKind(ms.Kind)
	if !ok {
		return types.Member{}, errors.Wrapf(ErrInvalidManifest, "unknown member kind %q", ms.Kind)
	}
	m := types.Member{
		Kind:       kind,
		Name:       ms.Name,
		Visibility: parseVisibility(ms.Visibility),
		Static:     ms.Static,
		Abstract:   ms.Abstract,
		Value:      ms.Value,
	}
	if kind == types.Constructor && m.Name == "" {
		m.Name = spec.Name
	}
	if t.kind == types.Enum && kind == types.Field {
		m.Static = true
	}

	for _, g := range ms.Generics {
		m.TypeParams = append(m.TypeParams, genericParameter(g))
	}
	msc := sc.withGenerics(m.TypeParams)

	if ms.Type != "" && ms.Type != "void" && kind != types.Constructor {
		d, suffix, err := b.resolveString(ms.Type, msc)
		if err != nil {
			return types.Member{}, err
		}
		m.Type, m.TypeSuffix = d, suffix
	}
	for _, ps := range ms.Parameters {
		d, suffix, err := b.resolveString(ps.Type, msc)
		if err != nil {
			return types.Member{}, errors.Wrapf(err, "parameter %s", ps.Name)
		}
		m.Parameters = append(m.Parameters, types.Parameter{Name: ps.Name, Type: d, Suffix: suffix})
	}
	return m, nil
}

func (b *Builder) resolveString(s string, sc scope) (types.TypeDescriptor, string, error) {
	ref, err := ParseRef(s)
	if err != nil {
		return nil, "", err
	}
	d, err := b.resolveRef(ref, sc)
	if err != nil {
		return nil, "", err
	}
	return d, ref.Suffix, nil
}

// resolveRef binds a reference to a generic parameter in scope, a type of
// this artifact, a framework type, or a stub for a type documented
// elsewhere.
func (b *Builder) resolveRef(r *Ref, sc scope) (types.TypeDescriptor, error) {
	if len(r.Args) == 0 && !strings.ContainsAny(r.Name, ".+`") {
		if p, ok := sc.generics[r.Name]; ok {
			return p, nil
		}
		if full, ok := keywords[r.Name]; ok {
			return b.frameworkType(full), nil
		}
	}

	def := b.definition(r.Canonical(), sc)
	if len(r.Args) == 0 {
		return def, nil
	}
	args := make([]types.TypeDescriptor, len(r.Args))
	for i, a := range r.Args {
		d, err := b.resolveRef(a, sc)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	return def.construct(args), nil
}

func (b *Builder) definition(name string, sc scope) *Type {
	var candidates []string
	for o := sc.owner; o != nil; o = o.declaring {
		if k, ok := b.keyByType[o]; ok {
			candidates = append(candidates, k+"+"+name)
		}
	}
	candidates = append(candidates, name)
	for ns := sc.namespace; ns != ""; ns = parentNamespace(ns) {
		candidates = append(candidates, ns+"."+name)
	}
	for _, u := range sc.usings {
		candidates = append(candidates, u+"."+name)
	}

	for _, c := range candidates {
		if t, ok := b.byKey[c]; ok {
			return t
		}
	}
	for _, c := range candidates {
		if t, ok := b.framework.Lookup(c); ok {
			return t
		}
	}
	if !strings.ContainsAny(name, ".+") {
		if t, ok := b.framework.LookupShort(name); ok {
			return t
		}
	}
	return b.stub(name)
}

func parentNamespace(ns string) string {
	if i := strings.LastIndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}
	return ""
}

func (b *Builder) frameworkType(full string) *Type {
	t, _ := b.framework.Lookup(full)
	return t
}

// stub returns a placeholder for a type outside this artifact and the
// framework. Its kind is guessed from the interface naming convention.
func (b *Builder) stub(name string) *Type {
	if t, ok := b.stubs[name]; ok {
		return t
	}
	var t *Type
	if cut := strings.LastIndexByte(name, '+'); cut >= 0 {
		parent := b.stub(name[:cut])
		t = &Type{declaring: parent, namespace: parent.namespace, name: name[cut+1:]}
	} else {
		ns, simple := parentNamespace(name), name
		if ns != "" {
			simple = name[len(ns)+1:]
		}
		t = &Type{namespace: ns, name: simple}
	}
	t.visibility = types.Public
	t.kind = types.Class
	if looksLikeInterface(t.name) {
		t.kind = types.Interface
	}
	t.external = isFrameworkNamespace(t.namespace)
	if n := arityOf(t.name); n > 0 {
		for i := 0; i < n; i++ {
			t.params = append(t.params, genericParameter("T"+strconv.Itoa(i+1)))
		}
	}
	b.stubs[name] = t
	return t
}

func looksLikeInterface(name string) bool {
	return len(name) > 1 && name[0] == 'I' && unicode.IsUpper(rune(name[1]))
}

func isFrameworkNamespace(ns string) bool {
	return ns == "System" || strings.HasPrefix(ns, "System.") ||
		ns == "Microsoft" || strings.HasPrefix(ns, "Microsoft.")
}

func arityOf(name string) int {
	i := strings.IndexByte(name, '`')
	if i < 0 {
		return 0
	}
	n, _ := strconv.Atoi(name[i+1:])
	return n
}

// checkInheritance rejects base-class cycles inside the artifact.
func (b *Builder) checkInheritance() error {
	for i, t := range b.built {
		seen := map[*Type]bool{t: true}
		for d := t.base; d != nil; d = d.BaseType() {
			bt, ok := d.(*Type)
			if !ok {
				break
			}
			bt = bt.origin()
			if seen[bt] {
				return errors.Wrapf(ErrInvalidManifest, "inheritance cycle through %s", b.keys[i])
			}
			seen[bt] = true
		}
	}
	return nil
}
