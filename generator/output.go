// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"maps"
	"slices"

	"github.com/albertocavalcante/prefgen/internal/ir"
)

// Output contains generated files.
type Output struct {
	// Files maps filename to content.
	Files map[string][]byte

	// Symbols are the package-level identifiers the files declare. Two
	// classes of one package and target must not share any.
	Symbols []string

	// Warnings are target-specific notes on single properties.
	Warnings []Warning
}

// Warning is a non-fatal note about how a property is emitted.
type Warning struct {
	Property *ir.Property
	Message  string
}

// Names returns the file names, sorted.
func (o *Output) Names() []string {
	return slices.Sorted(maps.Keys(o.Files))
}

// Warn records a warning about p.
func (o *Output) Warn(p *ir.Property, format string, args ...any) {
	o.Warnings = append(o.Warnings, Warning{Property: p, Message: fmt.Sprintf(format, args...)})
}

// Single returns an Output with a single file.
func Single(name string, content []byte) *Output {
	return &Output{Files: map[string][]byte{name: content}}
}
