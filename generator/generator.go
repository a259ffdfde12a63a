// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for accessor code generators.
//
// A generator formats one lowered preference class into source files of its
// target language. Generators do no file I/O; the caller writes the
// returned [Output].
package generator

import (
	"context"

	"github.com/albertocavalcante/prefgen/internal/ir"
)

// Generator is the interface that all code generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate produces output files for one preference class.
	Generate(ctx context.Context, c *ir.Class, cfg Config) (*Output, error)
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "go", "kotlin").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".go"], [".kt"]).
	FileExtensions []string
}
