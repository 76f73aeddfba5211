// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"strings"

	"github.com/petar-djukic/go-typedoc/pkg/types"
)

// typeName returns the display name of a member type with its suffix.
// A nil type is void.
func (r *Renderer) typeName(t types.TypeDescriptor, suffix string) (string, error) {
	if t == nil {
		return "void", nil
	}
	name, err := r.reg.Resolve(t).DisplayName()
	if err != nil {
		return "", err
	}
	return name + suffix, nil
}

// simplifiedName is typeName with the compact generic form.
func (r *Renderer) simplifiedName(t types.TypeDescriptor, suffix string) (string, error) {
	if t == nil {
		return "void", nil
	}
	if t.IsGenericParameter() {
		return t.Name() + suffix, nil
	}
	name, err := r.reg.Resolve(t).SimplifiedName()
	if err != nil {
		return "", err
	}
	return name + suffix, nil
}

func trimArity(name string) string {
	if i := strings.IndexByte(name, '`'); i >= 0 {
		return name[:i]
	}
	return name
}

// memberSignature renders a member declaration. The compact form is the
// member name with generic and parameter types; the full form adds
// modifiers, the member type, and parameter names.
func (p *typePage) memberSignature(m types.Member, full bool) (string, error) {
	var parts []string
	if full {
		if k := p.desc.Kind(); k == types.Class || k == types.Struct {
			if v := m.Visibility.Print(); v != "" {
				parts = append(parts, v)
			}
			if m.Static && m.Kind != types.Constructor && !(m.Kind == types.Field && k == types.Enum) {
				parts = append(parts, "static")
			}
			if m.Abstract {
				parts = append(parts, "abstract")
			}
		}
		switch m.Kind {
		case types.Event:
			parts = append(parts, "event")
			fallthrough
		case types.Method, types.Property:
			name, err := p.typeName(m.Type, m.TypeSuffix)
			if err != nil {
				return "", err
			}
			parts = append(parts, name)
		case types.Field:
			if p.desc.Kind() != types.Enum {
				name, err := p.typeName(m.Type, m.TypeSuffix)
				if err != nil {
					return "", err
				}
				parts = append(parts, name)
			}
		}
	}

	name := m.Name
	if m.Kind == types.Constructor {
		name = trimArity(p.desc.Name())
	}
	name = trimArity(name)

	switch m.Kind {
	case types.Method, types.Constructor:
		if len(m.TypeParams) > 0 {
			tps := make([]string, len(m.TypeParams))
			for i, tp := range m.TypeParams {
				tps[i] = tp.Name()
			}
			name += "<" + strings.Join(tps, ", ") + ">"
		}
		params := make([]string, len(m.Parameters))
		for i, param := range m.Parameters {
			pt, err := p.typeName(param.Type, param.Suffix)
			if err != nil {
				return "", err
			}
			if full {
				pt += " " + param.Name
			}
			params[i] = pt
		}
		name += "(" + strings.Join(params, ", ") + ")"
	case types.Field:
		if full && m.Value != "" {
			name += " = " + m.Value
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, " "), nil
}
