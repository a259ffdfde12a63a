// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/internal/naming"
	"github.com/albertocavalcante/prefgen/model"
)

// YAMLSource scans a YAML schema document:
//
//	package: settings
//	imports:
//	  geo: example.com/app/geo
//	enums:
//	  Theme:
//	    type: string
//	    values: [light, dark]
//	adapters:
//	  - name: point
//	    type: geo.Point
//	    storage: string
//	    codec: geo.PointCodec{}
//	groups:
//	  - name: settings
//	    prefix: ui.
//	    entries:
//	      - name: darkMode
//	        type: bool
//	        default: false
//
// An entry without a type is a key-only entry.
type YAMLSource struct {
	name string
	data []byte
}

// NewYAMLSource returns a source over an in-memory document.
func NewYAMLSource(name string, data []byte) *YAMLSource {
	return &YAMLSource{name: name, data: data}
}

// YAMLFile returns a source over a YAML file, read when scanned.
func YAMLFile(filename string) *YAMLSource {
	return &YAMLSource{name: filename}
}

// Name implements Source.
func (s *YAMLSource) Name() string { return s.name }

// Scan implements Source.
func (s *YAMLSource) Scan() (*Result, error) {
	data := s.data
	if data == nil {
		var err error
		if data, err = os.ReadFile(s.name); err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.name, err)
	}

	ys := &yamlScanner{name: s.name, res: &Result{}, imports: map[string]string{}}
	if len(doc.Content) == 0 {
		return ys.res, nil
	}
	ys.scanDocument(doc.Content[0])
	return ys.res, nil
}

type yamlScanner struct {
	name    string
	res     *Result
	imports map[string]string
}

func (ys *yamlScanner) pos(n *yaml.Node) model.Pos {
	return model.Pos{File: ys.name, Line: n.Line, Column: n.Column}
}

func (ys *yamlScanner) fileError(n *yaml.Node, format string, args ...any) {
	ys.res.Diagnostics = append(ys.res.Diagnostics,
		scanError(ys.pos(n), "", diag.NoIndex, fmt.Sprintf(format, args...)))
}

// fields iterates the key/value pairs of a mapping node, reporting keys
// not in allowed through report.
func fields(n *yaml.Node, allowed []string, report func(*yaml.Node, string), fn func(key string, value *yaml.Node)) {
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch {
		case allowed != nil && !slices.Contains(allowed, k.Value):
			report(k, fmt.Sprintf("unknown key %q (allowed: %s)", k.Value, strings.Join(allowed, ", ")))
			continue
		case seen[k.Value]:
			report(k, fmt.Sprintf("duplicate key %q", k.Value))
			continue
		}
		seen[k.Value] = true
		fn(k.Value, v)
	}
}

// scalar returns the value of a scalar node, or false with a reported error.
func scalar(n *yaml.Node, what string, report func(*yaml.Node, string)) (string, bool) {
	if n.Kind != yaml.ScalarNode {
		report(n, fmt.Sprintf("%s must be a scalar", what))
		return "", false
	}
	return n.Value, true
}

func (ys *yamlScanner) scanDocument(root *yaml.Node) {
	report := func(n *yaml.Node, msg string) { ys.fileError(n, "%s", msg) }
	if root.Kind != yaml.MappingNode {
		report(root, "schema must be a mapping")
		return
	}

	var groups *yaml.Node
	fields(root, []string{"package", "imports", "enums", "adapters", "groups"}, report, func(key string, v *yaml.Node) {
		switch key {
		case "package":
			if s, ok := scalar(v, "package", report); ok {
				ys.res.Package = s
			}
		case "imports":
			ys.scanImports(v)
		case "enums":
			ys.scanEnums(v)
		case "adapters":
			ys.scanAdapters(v)
		case "groups":
			groups = v
		}
	})

	// Groups last, so imports are known regardless of key order.
	if groups == nil {
		return
	}
	if groups.Kind != yaml.SequenceNode {
		report(groups, "groups must be a list")
		return
	}
	for _, g := range groups.Content {
		ys.scanGroup(g)
	}
}

func (ys *yamlScanner) scanImports(n *yaml.Node) {
	report := func(n *yaml.Node, msg string) { ys.fileError(n, "%s", msg) }
	if n.Kind != yaml.MappingNode {
		report(n, "imports must be a mapping of qualifier to import path")
		return
	}
	fields(n, nil, report, func(qual string, v *yaml.Node) {
		if p, ok := scalar(v, "import path", report); ok {
			ys.imports[qual] = p
		}
	})
}

func (ys *yamlScanner) scanEnums(n *yaml.Node) {
	report := func(n *yaml.Node, msg string) { ys.fileError(n, "%s", msg) }
	if n.Kind != yaml.MappingNode {
		report(n, "enums must be a mapping of type name to enum")
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		e := &RawEnum{Name: k.Value, Underlying: "string", Pos: ys.pos(k)}
		if v.Kind != yaml.MappingNode {
			report(v, fmt.Sprintf("enum %s must be a mapping", k.Value))
			continue
		}
		fields(v, []string{"type", "values"}, report, func(key string, fv *yaml.Node) {
			switch key {
			case "type":
				if s, ok := scalar(fv, "enum type", report); ok {
					e.Underlying = s
				}
			case "values":
				if fv.Kind != yaml.SequenceNode {
					report(fv, "enum values must be a list")
					return
				}
				for _, item := range fv.Content {
					if s, ok := scalar(item, "enum value", report); ok {
						e.Consts = append(e.Consts, RawConst{Name: s, Value: s})
					}
				}
			}
		})
		ys.res.Enums = append(ys.res.Enums, e)
	}
}

func (ys *yamlScanner) scanAdapters(n *yaml.Node) {
	report := func(n *yaml.Node, msg string) { ys.fileError(n, "%s", msg) }
	if n.Kind != yaml.SequenceNode {
		report(n, "adapters must be a list")
		return
	}
	for _, an := range n.Content {
		if an.Kind != yaml.MappingNode {
			report(an, "adapter must be a mapping")
			continue
		}
		a := &RawAdapter{Storage: "string", Imports: ys.imports, Pos: ys.pos(an)}
		fields(an, []string{"name", "type", "storage", "codec"}, report, func(key string, v *yaml.Node) {
			s, ok := scalar(v, "adapter "+key, report)
			if !ok {
				return
			}
			switch key {
			case "name":
				a.Name = s
			case "type":
				a.Type = s
			case "storage":
				a.Storage = s
			case "codec":
				a.Codec = s
			}
		})
		missing := false
		for _, req := range []struct{ key, val string }{{"name", a.Name}, {"type", a.Type}, {"codec", a.Codec}} {
			if req.val == "" {
				report(an, fmt.Sprintf("adapter: missing %s", req.key))
				missing = true
			}
		}
		if !missing {
			ys.res.Adapters = append(ys.res.Adapters, a)
		}
	}
}

func (ys *yamlScanner) scanGroup(n *yaml.Node) {
	if n.Kind != yaml.MappingNode {
		ys.fileError(n, "group must be a mapping")
		return
	}
	g := &RawGroup{Source: ys.name, Pos: ys.pos(n), Imports: ys.imports}
	report := func(at *yaml.Node, msg string) {
		g.Diagnostics = append(g.Diagnostics, scanError(ys.pos(at), "", diag.NoIndex, msg))
	}

	var entries *yaml.Node
	classSet := false
	fields(n, []string{"name", "class", "prefix", "suffix", "doc", "entries"}, report, func(key string, v *yaml.Node) {
		if key == "entries" {
			entries = v
			return
		}
		s, ok := scalar(v, "group "+key, report)
		if !ok {
			return
		}
		switch key {
		case "name":
			g.Name = s
		case "class":
			g.Class = s
			classSet = true
		case "prefix":
			g.Prefix = s
		case "suffix":
			g.Suffix = s
		case "doc":
			g.Doc = strings.TrimSpace(s)
		}
	})
	if g.Name == "" {
		report(n, "group: missing name")
	}
	if !classSet {
		g.Class = naming.ExportName(naming.Member(g.Name)) + "Prefs"
	}

	if entries != nil {
		if entries.Kind != yaml.SequenceNode {
			report(entries, "entries must be a list")
		} else {
			for i, en := range entries.Content {
				ys.scanEntry(g, i, en)
			}
		}
	}
	ys.res.Groups = append(ys.res.Groups, g)
}

func (ys *yamlScanner) scanEntry(g *RawGroup, index int, n *yaml.Node) {
	e := &RawEntry{Pos: ys.pos(n), Index: index}
	report := func(at *yaml.Node, msg string) {
		g.Diagnostics = append(g.Diagnostics, scanError(ys.pos(at), e.Name, index, msg))
	}
	if n.Kind != yaml.MappingNode {
		report(n, "entry must be a mapping")
		return
	}

	// The name is needed for attribution before the other keys.
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "name" && n.Content[i+1].Kind == yaml.ScalarNode {
			e.Name = n.Content[i+1].Value
		}
	}

	fields(n, []string{"name", "key", "type", "default", "adapter", "doc"}, report, func(key string, v *yaml.Node) {
		if v.Kind == yaml.ScalarNode && v.Tag == "!!null" && (key == "key" || key == "default") {
			return
		}
		if key == "default" {
			if raw, ok := defaultLiteral(v); ok {
				e.Default = &raw
			} else {
				report(v, "default must be a scalar or a list of scalars")
			}
			return
		}
		s, ok := scalar(v, "entry "+key, report)
		if !ok {
			return
		}
		switch key {
		case "key":
			e.Key = &s
		case "type":
			e.Type = s
		case "adapter":
			e.Adapter = s
		case "doc":
			e.Doc = strings.TrimSpace(s)
		}
	})
	if e.Name == "" {
		report(n, "entry: missing name")
		return
	}
	g.Entries = append(g.Entries, e)
}

// defaultLiteral returns the raw default text of a node. Lists are
// rendered as a flow sequence of quoted strings.
func defaultLiteral(n *yaml.Node) (string, bool) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, true
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return "", false
			}
			items = append(items, strconv.Quote(item.Value))
		}
		return "[" + strings.Join(items, ", ") + "]", true
	}
	return "", false
}
