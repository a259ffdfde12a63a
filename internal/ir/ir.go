// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package ir is the structural form of a preference group that target
// generators format. Lowering fixes every generated name, so generators only
// decide syntax.
package ir

import (
	"fmt"
	"slices"

	"github.com/albertocavalcante/prefgen/model"
)

// Style selects accessor naming.
type Style int

const (
	// StyleFluent names accessors X and SetX.
	StyleFluent Style = iota
	// StyleBean names accessors GetX (IsX for bool) and SetX.
	StyleBean
)

func (s Style) String() string {
	if s == StyleBean {
		return "bean"
	}
	return "fluent"
}

// ParseStyle parses a style name. The empty string is fluent.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "fluent":
		return StyleFluent, nil
	case "bean":
		return StyleBean, nil
	}
	return 0, fmt.Errorf("unknown accessor style %q (want fluent or bean)", s)
}

// MethodKind is the role of a generated accessor.
type MethodKind int

const (
	MethodGet MethodKind = iota
	MethodSet
	MethodHas
	MethodRemove
)

func (k MethodKind) String() string {
	switch k {
	case MethodGet:
		return "get"
	case MethodSet:
		return "set"
	case MethodHas:
		return "has"
	case MethodRemove:
		return "remove"
	}
	return fmt.Sprintf("MethodKind(%d)", int(k))
}

// Method is one generated accessor.
type Method struct {
	Kind MethodKind
	Name string
}

// Class is a lowered group.
type Class struct {
	Name    string
	Package string
	Group   string
	Doc     string
	Source  string
	Style   Style

	Properties []*Property

	// Imports are the import paths referenced by declared types, sorted.
	Imports []string
}

// Property is a lowered entry.
type Property struct {
	// Name is the member name, e.g. DarkMode.
	Name string
	// Entry is the declared entry name.
	Entry string
	Key   string
	// KeyConst is the name of the exported key constant.
	KeyConst string
	Doc      string

	Type       model.TypeRef
	Storage    model.Storage
	Conversion *model.Conversion
	Default    *model.Literal
	Nullable   bool

	// Methods are the accessors in emission order.
	Methods []Method

	// Pos and Index locate the declaring entry for diagnostics.
	Pos   model.Pos
	Index int
}

// Void reports whether the property is key-only.
func (p *Property) Void() bool {
	return p.Storage == model.StorageVoid
}

// Fallible reports whether the accessors return errors.
func (p *Property) Fallible() bool {
	return p.Conversion.Fallible()
}

// Method returns the accessor of the given kind.
func (p *Property) Method(kind MethodKind) (Method, bool) {
	for _, m := range p.Methods {
		if m.Kind == kind {
			return m, true
		}
	}
	return Method{}, false
}

// Keys returns the storage keys in declaration order.
func (c *Class) Keys() []string {
	keys := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		keys[i] = p.Key
	}
	return keys
}

// Fallible reports whether any property has fallible accessors.
func (c *Class) Fallible() bool {
	return slices.ContainsFunc(c.Properties, (*Property).Fallible)
}

// Lower converts a built group to a class.
func Lower(g *model.Group, style Style) *Class {
	c := &Class{
		Name:    g.Class,
		Package: g.Package,
		Group:   g.Name,
		Doc:     g.Doc,
		Source:  g.Source,
		Style:   style,
	}

	var imports []string
	for _, e := range g.Entries {
		c.Properties = append(c.Properties, lowerEntry(c.Name, e, style))
		imports = append(imports, e.Declared.Imports()...)
	}
	slices.Sort(imports)
	c.Imports = slices.Compact(imports)
	return c
}

func lowerEntry(class string, e *model.Entry, style Style) *Property {
	p := &Property{
		Name:       e.Member,
		Entry:      e.Name,
		Key:        e.Key,
		KeyConst:   class + e.Member + "Key",
		Doc:        e.Doc,
		Type:       e.Declared,
		Storage:    e.Storage,
		Conversion: e.Conversion,
		Default:    e.Default,
		Nullable:   e.Nullable,
		Pos:        e.Pos,
		Index:      e.Index,
	}
	if !p.Void() {
		p.Methods = append(p.Methods,
			Method{Kind: MethodGet, Name: getterName(e, style)},
			Method{Kind: MethodSet, Name: "Set" + e.Member},
		)
	}
	p.Methods = append(p.Methods,
		Method{Kind: MethodHas, Name: "Has" + e.Member},
		Method{Kind: MethodRemove, Name: "Remove" + e.Member},
	)
	return p
}

func getterName(e *model.Entry, style Style) string {
	if style == StyleFluent {
		return e.Member
	}
	if e.Declared.ID() == "bool" && !e.Nullable {
		return "Is" + e.Member
	}
	return "Get" + e.Member
}
