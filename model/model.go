// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the semantic model of preference schemas.
//
// A Group is built once per build pass from scanned declarations, validated,
// and handed to code generators. Groups and entries are never mutated after
// the model builder returns them.
package model

// Group is one preference schema unit, compiled to one accessor type.
type Group struct {
	// Name is the schema name (e.g., the annotated interface name).
	Name string

	// Class is the name of the generated accessor type.
	Class string

	// Package is the package (or namespace) of the generated code.
	Package string

	// Prefix and Suffix wrap derived storage keys. Explicit keys are used verbatim.
	Prefix string
	Suffix string

	// Doc is the schema documentation, without comment markers.
	Doc string

	// Source names the declaration source (file or document) of the group.
	Source string

	// Pos is the declaring location.
	Pos Pos

	// Entries lists the valid entries in declaration order.
	Entries []*Entry
}

// Entry is one named, typed preference.
type Entry struct {
	// Name is the logical name as declared (e.g., "darkMode").
	Name string

	// Key is the storage key.
	Key string

	// KeyExplicit reports whether Key came from an explicit override.
	KeyExplicit bool

	// Member is the derived member name (e.g., "DarkMode").
	Member string

	// Doc is the entry documentation.
	Doc string

	// Declared is the declared semantic type.
	Declared TypeRef

	// Storage is the resolved storage primitive.
	Storage Storage

	// Conversion bridges Declared and Storage. Nil for native types.
	Conversion *Conversion

	// Default is the default value in the storage domain. Nil means the
	// zero value of the storage primitive (or absent for nullable entries).
	Default *Literal

	// Nullable entries report absence instead of a default.
	Nullable bool

	// Pos is the declaring location.
	Pos Pos

	// Index is the position of the entry among the declared entries of its group.
	Index int
}

// Void reports whether the entry only reserves a key and stores no value.
func (e *Entry) Void() bool {
	return e.Storage == StorageVoid
}

// Fallible reports whether accessors of the entry can fail at runtime.
func (e *Entry) Fallible() bool {
	return e.Conversion.Fallible()
}

// Keys returns the storage keys of all entries in declaration order.
func (g *Group) Keys() []string {
	keys := make([]string, 0, len(g.Entries))
	for _, e := range g.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}
