// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"context"

	"github.com/albertocavalcante/prefgen/generator"
	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/naming"
)

// GoGenerator implements [generator.Generator] for Go code generation.
type GoGenerator struct{}

// NewGenerator creates a new Go generator.
func NewGenerator() *GoGenerator {
	return &GoGenerator{}
}

// Metadata returns information about this generator.
func (g *GoGenerator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           "go",
		Version:        "1.0.0",
		Description:    "Generate Go preference accessors backed by prefstore.Store",
		FileExtensions: []string{".go"},
	}
}

// Generate produces the Go source file for c.
func (g *GoGenerator) Generate(ctx context.Context, c *ir.Class, cfg generator.Config) (*generator.Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := New(c, Config{
		Source:      cfg.Source,
		Version:     cfg.Version,
		StoreImport: cfg.Option("store_import", ""),
	}).Generate()
	if err != nil {
		return nil, err
	}

	out := generator.Single(FileName(c), src)
	out.Symbols = Symbols(c)
	return out, nil
}

// Symbols returns the package-level identifiers declared for c.
func Symbols(c *ir.Class) []string {
	syms := []string{c.Name, "New" + c.Name, editorName(c)}
	for _, p := range c.Properties {
		syms = append(syms, p.KeyConst)
	}
	return syms
}

// FileName returns the default output file name for c, e.g.
// settings_prefs.go for SettingsPrefs.
func FileName(c *ir.Class) string {
	return naming.Snake(c.Name) + ".go"
}
