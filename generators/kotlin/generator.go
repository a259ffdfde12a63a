// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package kotlin

import (
	"context"

	"github.com/albertocavalcante/prefgen/generator"
	"github.com/albertocavalcante/prefgen/internal/ir"
)

// Generator implements [generator.Generator] for Kotlin code generation.
type Generator struct{}

// NewGenerator creates a new Kotlin generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "kotlin",
		Version:        "1.0.0",
		Description:    "Generate Kotlin accessors over Android SharedPreferences",
		FileExtensions: []string{".kt"},
	}
}

// Generate produces the Kotlin source file for c.
func (g *Generator) Generate(ctx context.Context, c *ir.Class, cfg generator.Config) (*generator.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := New(c, Config{
		PackageName: cfg.Option("kotlin_package", c.Package),
		Source:      cfg.Source,
		Version:     cfg.Version,
	}).Generate()

	out := generator.Single(c.Name+".kt", src)
	for _, p := range c.Properties {
		if rawCodec(p) {
			out.Warn(p, "entry %q is exposed as its stored %s; decode it with the %s adapter", p.Entry, kotlinStorageType(p.Storage), p.Conversion.Adapter)
		}
	}
	return out, nil
}
