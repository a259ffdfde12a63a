// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package scan extracts raw preference declarations from schema sources.
//
// Scanning only records syntax-level facts. Misplaced or malformed
// annotations become scan-error diagnostics and scanning continues with the
// next declaration; the error return of Source.Scan is reserved for input
// that cannot be read or parsed at all.
package scan

import (
	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/model"
)

// Source is a schema declaration source.
type Source interface {
	// Name identifies the source in logs (a directory, file or document).
	Name() string

	// Scan extracts every declared group, enum and adapter.
	Scan() (*Result, error)
}

// Result is the raw output of one source.
type Result struct {
	// Package is the package of the schema, used for generated code.
	Package string

	Groups   []*RawGroup
	Enums    []*RawEnum
	Adapters []*RawAdapter

	// Diagnostics are scan errors not attributed to any group.
	Diagnostics []diag.Diagnostic
}

// RawGroup is an unvalidated group declaration.
type RawGroup struct {
	Name   string
	Class  string
	Prefix string
	Suffix string
	Doc    string
	Source string
	Pos    model.Pos

	// Imports maps package qualifiers to import paths for the types of
	// the group's entries.
	Imports map[string]string

	Entries []*RawEntry

	// Diagnostics are scan errors inside the group. GroupIndex is assigned
	// by the model builder.
	Diagnostics []diag.Diagnostic
}

// RawEntry is an unvalidated entry declaration.
type RawEntry struct {
	Name string

	// Key is the explicit key, nil when the key is derived.
	Key *string

	// Type is the declared type as written. Empty for void entries.
	Type string

	// Default is the raw default literal, nil when absent.
	Default *string

	// Adapter names an adapter, "" for none.
	Adapter string

	Doc string
	Pos model.Pos

	// Index is the declaration index of the entry in its group, counting
	// declarations that failed to scan.
	Index int
}

// Void reports whether the entry was declared without a value type.
func (e *RawEntry) Void() bool {
	return e.Type == "" || e.Type == "void"
}

// RawEnum is a named type over a basic type.
type RawEnum struct {
	Name       string
	Underlying string

	// Consts maps constant names to their values as written. Values are
	// unquoted for string enums.
	Consts []RawConst

	// Open is set when some constant value could not be determined
	// statically (iota, expressions), leaving the value set open.
	Open bool

	Pos model.Pos
}

// RawConst is one typed constant of an enum.
type RawConst struct {
	Name  string
	Value string
}

// Values returns the enum's value set, or nil when it is open.
func (e *RawEnum) Values() []string {
	if e.Open || len(e.Consts) == 0 {
		return nil
	}
	vals := make([]string, len(e.Consts))
	for i, c := range e.Consts {
		vals[i] = c.Value
	}
	return vals
}

// RawAdapter is an adapter registration.
type RawAdapter struct {
	Name    string
	Type    string
	Storage string
	Codec   string
	Imports map[string]string
	Pos     model.Pos
}

// scanError returns a scan-error diagnostic for a group (or file, when
// entry is diag.NoIndex and no group applies).
func scanError(pos model.Pos, entry string, entryIndex int, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity:   diag.SevError,
		Code:       diag.ScanError,
		Message:    msg,
		Pos:        pos,
		Entry:      entry,
		GroupIndex: diag.NoIndex,
		EntryIndex: entryIndex,
	}
}
