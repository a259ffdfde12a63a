// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"fmt"
	"go/token"
	"strings"
)

// Storage is a value type natively supported by the backing store.
type Storage uint8

// Storage primitives. StorageVoid entries reserve a key but hold no value.
const (
	StorageVoid Storage = iota
	StorageBool
	StorageInt
	StorageLong
	StorageFloat
	StorageString
	StorageStringSet
)

var storageNames = [...]string{
	StorageVoid:      "void",
	StorageBool:      "bool",
	StorageInt:       "int",
	StorageLong:      "long",
	StorageFloat:     "float",
	StorageString:    "string",
	StorageStringSet: "stringset",
}

func (s Storage) String() string {
	if int(s) < len(storageNames) {
		return storageNames[s]
	}
	return fmt.Sprintf("Storage(%d)", uint8(s))
}

// ParseStorage returns the storage primitive for name. Both the store
// vocabulary ("long", "stringset") and Go spellings ("int64", "[]string")
// are accepted.
func ParseStorage(name string) (Storage, bool) {
	switch strings.TrimSpace(name) {
	case "void":
		return StorageVoid, true
	case "bool", "boolean":
		return StorageBool, true
	case "int", "int32", "integer":
		return StorageInt, true
	case "long", "int64":
		return StorageLong, true
	case "float", "float32":
		return StorageFloat, true
	case "string", "text":
		return StorageString, true
	case "stringset", "[]string", "set":
		return StorageStringSet, true
	}
	return StorageVoid, false
}

// ConversionKind identifies how a declared type maps onto its storage.
type ConversionKind uint8

const (
	// ConvCast converts with a plain type conversion in both directions.
	ConvCast ConversionKind = iota + 1
	// ConvFloatBits stores a float64 as the int64 of its IEEE-754 bits.
	ConvFloatBits
	// ConvCodec delegates to an adapter codec. Codec conversions can fail.
	ConvCodec
)

func (k ConversionKind) String() string {
	switch k {
	case ConvCast:
		return "cast"
	case ConvFloatBits:
		return "float-bits"
	case ConvCodec:
		return "codec"
	}
	return "none"
}

// Conversion is a pair of pure functions bridging a declared type and a
// storage primitive. It carries no state and is shared between entries.
type Conversion struct {
	Kind ConversionKind

	// Underlying is the basic type under a named type for casts
	// (e.g., "string" for `type Theme string`). Empty for builtin casts.
	Underlying string

	// Adapter is the adapter name of codec conversions (e.g., "json").
	Adapter string

	// Codec references user conversion logic. Empty for builtin adapters,
	// whose codec is chosen by each target.
	Codec string

	// Builtin reports whether the adapter ships with prefgen.
	Builtin bool
}

// Fallible reports whether encode or decode may fail at runtime.
func (c *Conversion) Fallible() bool {
	return c != nil && c.Kind == ConvCodec
}

// Literal is a default value. Value holds the parsed value in the storage
// domain: bool, int32, int64, float32, string or []string.
type Literal struct {
	Raw   string
	Value any
}

// TypeRef is a reference to a declared type as written in the schema.
type TypeRef struct {
	// Name is the type name (e.g., "bool", "Theme", "Duration").
	// Empty for slice types.
	Name string

	// Qualifier is the package qualifier as written (e.g., "time").
	Qualifier string

	// ImportPath is the import path of a qualified type.
	ImportPath string

	// Pointer marks the nullable form *T.
	Pointer bool

	// Elem is the element type of a slice type.
	Elem *TypeRef
}

// Void is the declared type of key-only entries.
var Void = TypeRef{Name: "void"}

// IsVoid reports whether t is the void type.
func (t TypeRef) IsVoid() bool {
	return t.Name == "void" && t.Qualifier == "" && t.Elem == nil && !t.Pointer
}

// Base returns t without its pointer.
func (t TypeRef) Base() TypeRef {
	t.Pointer = false
	return t
}

// ID returns the identity of the type, ignoring nullability.
// Qualified types are identified by import path.
func (t TypeRef) ID() string {
	switch {
	case t.Elem != nil:
		return "[]" + t.Elem.ID()
	case t.ImportPath != "":
		return t.ImportPath + "." + t.Name
	default:
		return t.Name
	}
}

// String returns the type as written in Go syntax.
func (t TypeRef) String() string {
	var sb strings.Builder
	if t.Pointer {
		sb.WriteByte('*')
	}
	switch {
	case t.Elem != nil:
		sb.WriteString("[]")
		sb.WriteString(t.Elem.String())
	case t.Qualifier != "":
		sb.WriteString(t.Qualifier)
		sb.WriteByte('.')
		sb.WriteString(t.Name)
	default:
		sb.WriteString(t.Name)
	}
	return sb.String()
}

// Imports returns the import paths referenced by t.
func (t TypeRef) Imports() []string {
	switch {
	case t.Elem != nil:
		return t.Elem.Imports()
	case t.ImportPath != "":
		return []string{t.ImportPath}
	}
	return nil
}

// ParseTypeRef parses a type written in Go syntax: T, pkg.T, *T or []T.
// Qualifiers are resolved through imports (qualifier -> import path); an
// unknown qualifier is taken to be its own import path.
func ParseTypeRef(s string, imports map[string]string) (TypeRef, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return TypeRef{}, fmt.Errorf("empty type")
	}

	var t TypeRef
	if rest, ok := strings.CutPrefix(src, "*"); ok {
		if strings.HasPrefix(rest, "*") {
			return TypeRef{}, fmt.Errorf("type %q: multiple indirection is not supported", s)
		}
		inner, err := ParseTypeRef(rest, imports)
		if err != nil {
			return TypeRef{}, err
		}
		inner.Pointer = true
		return inner, nil
	}

	if rest, ok := strings.CutPrefix(src, "[]"); ok {
		elem, err := ParseTypeRef(rest, imports)
		if err != nil {
			return TypeRef{}, err
		}
		t.Elem = &elem
		return t, nil
	}

	qual, name, qualified := strings.Cut(src, ".")
	if !qualified {
		if !token.IsIdentifier(src) {
			return TypeRef{}, fmt.Errorf("type %q: not an identifier", s)
		}
		t.Name = src
		return t, nil
	}
	if !token.IsIdentifier(qual) || !token.IsIdentifier(name) {
		return TypeRef{}, fmt.Errorf("type %q: malformed qualified name", s)
	}
	t.Qualifier = qual
	t.Name = name
	t.ImportPath = qual
	if path, ok := imports[qual]; ok {
		t.ImportPath = path
	}
	return t, nil
}
