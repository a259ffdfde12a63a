// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package kotlin generates Kotlin accessor classes over Android
// SharedPreferences.
//
// The generated code uses idiomatic Kotlin patterns:
//   - a class taking the SharedPreferences instance in its constructor
//   - a companion object holding the key constants and the key list
//   - var properties (fluent style) or get/set functions (bean style)
//
// Kotlin cannot name the declared Go types, so entries are exposed in their
// storage type. The exceptions are float64 (Double), int8 (Byte) and int16
// (Short). Codec entries surface the encoded string, and the generator
// warns about each one.
//
// edit() returns a nested Editor that batches writes into one
// SharedPreferences.Editor and stores them on apply() or commit().
package kotlin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/naming"
	"github.com/albertocavalcante/prefgen/model"
)

const indent = "    "

// Codegen generates Kotlin source for one class.
type Codegen struct {
	class  *ir.Class
	config Config
}

// New creates a new Kotlin Codegen.
func New(c *ir.Class, cfg Config) *Codegen {
	if cfg.PackageName == "" {
		cfg.PackageName = c.Package
	}
	return &Codegen{class: c, config: cfg}
}

// Generate produces the Kotlin source file.
func (g *Codegen) Generate() []byte {
	var buf bytes.Buffer
	c := g.class

	buf.WriteString(g.fileHeader())
	fmt.Fprintf(&buf, "package %s\n\n", g.config.PackageName)
	buf.WriteString("import android.content.SharedPreferences\n\n")

	doc := fmt.Sprintf("Typed access to the %s preferences.", c.Group)
	if c.Doc != "" {
		doc += "\n\n" + c.Doc
	}
	writeKdoc(&buf, doc, "")
	fmt.Fprintf(&buf, "class %s(private val prefs: SharedPreferences) {\n", c.Name)

	g.writeCompanion(&buf)
	for _, p := range c.Properties {
		buf.WriteString("\n")
		g.writeProperty(&buf, p)
	}

	buf.WriteString("\n")
	writeKdoc(&buf, "Removes every key of the group.", indent)
	fmt.Fprintf(&buf, "%sfun clear() {\n", indent)
	fmt.Fprintf(&buf, "%[1]s%[1]sval editor = prefs.edit()\n", indent)
	fmt.Fprintf(&buf, "%[1]s%[1]sKEYS.forEach { editor.remove(it) }\n", indent)
	fmt.Fprintf(&buf, "%[1]s%[1]seditor.apply()\n", indent)
	fmt.Fprintf(&buf, "%s}\n", indent)

	buf.WriteString("\n")
	writeKdoc(&buf, "Returns an editor that batches writes until [Editor.apply] or [Editor.commit].", indent)
	fmt.Fprintf(&buf, "%sfun edit(): Editor = Editor(prefs.edit())\n\n", indent)
	g.writeEditor(&buf)
	buf.WriteString("}\n")

	return buf.Bytes()
}

func (g *Codegen) writeCompanion(buf *bytes.Buffer) {
	c := g.class
	fmt.Fprintf(buf, "%scompanion object {\n", indent)
	consts := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		consts[i] = keyConst(p)
		fmt.Fprintf(buf, "%[1]s%[1]sconst val %s = %s\n", indent, consts[i], quote(p.Key))
	}
	if len(consts) > 0 {
		buf.WriteString("\n")
	}
	fmt.Fprintf(buf, "%[1]s%[1]sval KEYS: List<String> = listOf(%s)\n", indent, strings.Join(consts, ", "))
	fmt.Fprintf(buf, "%s}\n", indent)
}

func (g *Codegen) writeProperty(buf *bytes.Buffer, p *ir.Property) {
	key := keyConst(p)

	if !p.Void() {
		typ := kotlinType(p)
		get := getExpr(p, key)
		getter, _ := p.Method(ir.MethodGet)
		setter, _ := p.Method(ir.MethodSet)

		writeKdoc(buf, p.Doc, indent)
		if g.class.Style == ir.StyleFluent {
			fmt.Fprintf(buf, "%svar %s: %s\n", indent, ident(naming.LowerCamel(p.Name)), typ)
			fmt.Fprintf(buf, "%[1]s%[1]sget() = %s\n", indent, get)
			fmt.Fprintf(buf, "%[1]s%[1]sset(value) = %s\n", indent, putExpr(p, key))
		} else {
			fmt.Fprintf(buf, "%sfun %s(): %s = %s\n\n", indent, funName(getter.Name), typ, get)
			fmt.Fprintf(buf, "%sfun %s(value: %s) = %s\n", indent, funName(setter.Name), typ, putExpr(p, key))
		}
		buf.WriteString("\n")
	}

	has, _ := p.Method(ir.MethodHas)
	remove, _ := p.Method(ir.MethodRemove)
	fmt.Fprintf(buf, "%sfun %s(): Boolean = prefs.contains(%s)\n\n", indent, funName(has.Name), key)
	fmt.Fprintf(buf, "%sfun %s() = prefs.edit().remove(%s).apply()\n", indent, funName(remove.Name), key)
}

func (g *Codegen) writeEditor(buf *bytes.Buffer) {
	in2 := indent + indent
	fmt.Fprintf(buf, "%sclass Editor(private val editor: SharedPreferences.Editor) {\n", indent)
	for _, p := range g.class.Properties {
		key := keyConst(p)
		if set, ok := p.Method(ir.MethodSet); ok {
			write := putCall(p, "editor", key)
			if p.Nullable {
				write = fmt.Sprintf("if (value == null) editor.remove(%s) else %s", key, write)
			}
			fmt.Fprintf(buf, "%sfun %s(value: %s): Editor {\n", in2, funName(set.Name), kotlinType(p))
			fmt.Fprintf(buf, "%s%s%s\n", in2, indent, write)
			fmt.Fprintf(buf, "%s%sreturn this\n%s}\n\n", in2, indent, in2)
		}
		remove, _ := p.Method(ir.MethodRemove)
		fmt.Fprintf(buf, "%sfun %s(): Editor {\n", in2, funName(remove.Name))
		fmt.Fprintf(buf, "%s%seditor.remove(%s)\n", in2, indent, key)
		fmt.Fprintf(buf, "%s%sreturn this\n%s}\n\n", in2, indent, in2)
	}
	fmt.Fprintf(buf, "%sfun apply() = editor.apply()\n\n", in2)
	fmt.Fprintf(buf, "%sfun commit(): Boolean = editor.commit()\n", in2)
	fmt.Fprintf(buf, "%s}\n", indent)
}

// getExpr returns the read expression of p.
func getExpr(p *ir.Property, key string) string {
	def := defaultLiteral(p)
	var read string
	switch p.Storage {
	case model.StorageBool:
		read = fmt.Sprintf("prefs.getBoolean(%s, %s)", key, def)
	case model.StorageInt:
		read = fmt.Sprintf("prefs.getInt(%s, %s)", key, def)
	case model.StorageLong:
		read = fmt.Sprintf("prefs.getLong(%s, %s)", key, def)
	case model.StorageFloat:
		read = fmt.Sprintf("prefs.getFloat(%s, %s)", key, def)
	case model.StorageString:
		read = fmt.Sprintf("(prefs.getString(%s, %s) ?: %s)", key, def, def)
	case model.StorageStringSet:
		read = fmt.Sprintf("(prefs.getStringSet(%s, %s)?.toSet() ?: %s)", key, def, def)
	}
	if floatBits(p) {
		read = fmt.Sprintf("java.lang.Double.longBitsToDouble(%s)", read)
	}
	switch narrow(p) {
	case "Byte":
		read += ".toByte()"
	case "Short":
		read += ".toShort()"
	}
	if p.Nullable && p.Default == nil {
		return fmt.Sprintf("if (prefs.contains(%s)) %s else null", key, read)
	}
	return read
}

// putCall returns the call on editor storing the parameter "value" of p.
func putCall(p *ir.Property, editor, key string) string {
	value := "value"
	if floatBits(p) {
		value = "java.lang.Double.doubleToRawLongBits(value)"
	} else if narrow(p) != "" {
		value = "value.toInt()"
	}
	var put string
	switch p.Storage {
	case model.StorageBool:
		put = "putBoolean"
	case model.StorageInt:
		put = "putInt"
	case model.StorageLong:
		put = "putLong"
	case model.StorageFloat:
		put = "putFloat"
	case model.StorageString:
		put = "putString"
	case model.StorageStringSet:
		put = "putStringSet"
	}
	return fmt.Sprintf("%s.%s(%s, %s)", editor, put, key, value)
}

// putExpr returns the write expression of p for the parameter "value".
func putExpr(p *ir.Property, key string) string {
	write := putCall(p, "prefs.edit()", key) + ".apply()"
	if p.Nullable {
		return fmt.Sprintf("if (value == null) prefs.edit().remove(%s).apply() else %s", key, write)
	}
	return write
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

func writeKdoc(buf *bytes.Buffer, doc, prefix string) {
	if doc == "" {
		return
	}
	if !strings.Contains(doc, "\n") {
		fmt.Fprintf(buf, "%s/** %s */\n", prefix, doc)
		return
	}
	fmt.Fprintf(buf, "%s/**\n", prefix)
	for line := range strings.SplitSeq(doc, "\n") {
		if line == "" {
			fmt.Fprintf(buf, "%s *\n", prefix)
			continue
		}
		fmt.Fprintf(buf, "%s * %s\n", prefix, line)
	}
	fmt.Fprintf(buf, "%s */\n", prefix)
}
