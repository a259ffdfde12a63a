// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package golang generates Go accessor types for preference classes.
//
// For a class C the generated file holds one exported key constant per
// entry (C<Member>Key), a struct wrapping a [prefstore.Store], a constructor
// NewC, the group-level methods Store, Keys, Clear and Edit, and per entry
// a getter, a setter and Has/Remove helpers. Edit returns a CEditor that
// stages writes until Apply. Codec-backed accessors return errors; nullable
// entries use pointer types.
//
// [prefstore.Store]: https://pkg.go.dev/github.com/albertocavalcante/prefgen/prefstore#Store
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/model"
)

// StoreImport is the import path of the runtime store package.
const StoreImport = "github.com/albertocavalcante/prefgen/prefstore"

// Config controls code generation behavior.
type Config struct {
	// PackageName is the Go package name for generated code.
	PackageName string

	// Source describes where the schema came from (for header comment).
	Source string

	// Version is the prefgen version (for header comment).
	Version string

	// StoreImport overrides the import path of the store package.
	StoreImport string
}

// Codegen produces Go code for one class.
type Codegen struct {
	class   *ir.Class
	config  Config
	imports *importSet
}

// New creates a new Codegen.
func New(c *ir.Class, cfg Config) *Codegen {
	if cfg.PackageName == "" {
		cfg.PackageName = c.Package
	}
	if cfg.StoreImport == "" {
		cfg.StoreImport = StoreImport
	}
	return &Codegen{class: c, config: cfg, imports: newImportSet()}
}

// Generate returns the formatted source file.
func (g *Codegen) Generate() ([]byte, error) {
	var body bytes.Buffer
	g.imports.add(g.config.StoreImport, "prefstore")
	g.collectTypeImports()

	g.writeKeys(&body)
	g.writeStruct(&body)
	for _, p := range g.class.Properties {
		g.writeProperty(&body, p)
	}
	g.writeEditor(&body)

	var buf bytes.Buffer
	buf.WriteString(g.fileHeader())
	fmt.Fprintf(&buf, "package %s\n\n", g.config.PackageName)
	g.writeImports(&buf)
	buf.Write(body.Bytes())

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", g.class.Name, err)
	}
	return src, nil
}

func (g *Codegen) collectTypeImports() {
	for _, p := range g.class.Properties {
		g.addTypeImports(p.Type)
		if p.Conversion != nil && p.Conversion.Kind == model.ConvFloatBits {
			g.imports.add("math", "math")
		}
	}
}

func (g *Codegen) addTypeImports(t model.TypeRef) {
	switch {
	case t.Elem != nil:
		g.addTypeImports(*t.Elem)
	case t.ImportPath != "":
		g.imports.add(t.ImportPath, t.Qualifier)
	}
}

func (g *Codegen) fileHeader() string {
	lines := []string{"// Code generated by prefgen. DO NOT EDIT."}
	if g.config.Source != "" {
		lines = append(lines, fmt.Sprintf("// Source: %s", g.config.Source))
	}
	if g.config.Version != "" {
		lines = append(lines, fmt.Sprintf("// prefgen version: %s", g.config.Version))
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}

func (g *Codegen) writeImports(buf *bytes.Buffer) {
	std, other := g.imports.groups()
	buf.WriteString("import (\n")
	for _, p := range std {
		fmt.Fprintf(buf, "\t%s\n", g.imports.spec(p))
	}
	if len(std) > 0 && len(other) > 0 {
		buf.WriteString("\n")
	}
	for _, p := range other {
		fmt.Fprintf(buf, "\t%s\n", g.imports.spec(p))
	}
	buf.WriteString(")\n\n")
}

func (g *Codegen) writeKeys(buf *bytes.Buffer) {
	if len(g.class.Properties) == 0 {
		return
	}
	fmt.Fprintf(buf, "// Storage keys of %s.\n", g.class.Name)
	buf.WriteString("const (\n")
	for _, p := range g.class.Properties {
		fmt.Fprintf(buf, "\t%s = %s\n", p.KeyConst, quote(p.Key))
	}
	buf.WriteString(")\n\n")
}

func (g *Codegen) writeStruct(buf *bytes.Buffer) {
	c := g.class
	fmt.Fprintf(buf, "// %s provides typed access to the %s preferences.\n", c.Name, c.Group)
	if c.Doc != "" {
		buf.WriteString("//\n")
		writeDocComment(buf, c.Doc)
	}
	fmt.Fprintf(buf, "type %s struct {\n\tstore prefstore.Store\n}\n\n", c.Name)

	fmt.Fprintf(buf, "// New%s returns accessors backed by store.\n", c.Name)
	fmt.Fprintf(buf, "func New%[1]s(store prefstore.Store) *%[1]s {\n\treturn &%[1]s{store: store}\n}\n\n", c.Name)

	buf.WriteString("// Store returns the backing store.\n")
	fmt.Fprintf(buf, "func (p *%s) Store() prefstore.Store {\n\treturn p.store\n}\n\n", c.Name)

	buf.WriteString("// Keys returns the storage keys of the group, in declaration order.\n")
	fmt.Fprintf(buf, "func (p *%s) Keys() []string {\n", c.Name)
	if len(c.Properties) == 0 {
		buf.WriteString("\treturn nil\n}\n\n")
	} else {
		buf.WriteString("\treturn []string{\n")
		for _, prop := range c.Properties {
			fmt.Fprintf(buf, "\t\t%s,\n", prop.KeyConst)
		}
		buf.WriteString("\t}\n}\n\n")
	}

	buf.WriteString("// Clear removes every key of the group from the store.\n")
	fmt.Fprintf(buf, "func (p *%s) Clear() {\n", c.Name)
	buf.WriteString("\tfor _, key := range p.Keys() {\n\t\tp.store.Remove(key)\n\t}\n}\n\n")

	g.writeEditMethod(buf)
}

func writeDocComment(buf *bytes.Buffer, doc string) {
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			buf.WriteString("//\n")
			continue
		}
		fmt.Fprintf(buf, "// %s\n", line)
	}
}
