// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/internal/naming"
	"github.com/albertocavalcante/prefgen/model"
)

// GoSource scans Go files for //prefs: directives.
//
// A group is an interface type marked with //prefs:group. Each method of
// the interface is an entry: no parameters, and either no result (a
// key-only entry) or one result (the declared type). //prefs:entry on a
// method adds key, default and adapter attributes.
//
//	//prefs:group prefix=ui.
//	type Settings interface {
//		// DarkMode switches the UI theme.
//		//prefs:entry default=false
//		DarkMode() bool
//	}
//
// Named types over a basic type, with their typed constants, are collected
// as enums. //prefs:adapter registers a codec variable or type.
type GoSource struct {
	name  string
	files []goFile
}

type goFile struct {
	name string
	src  []byte // nil: read from name
}

// NewGoSource returns a source over Go files. Files are read when scanned.
func NewGoSource(name string, filenames ...string) *GoSource {
	s := &GoSource{name: name}
	for _, f := range filenames {
		s.files = append(s.files, goFile{name: f})
	}
	return s
}

// GoBytes returns a source over one in-memory Go file.
func GoBytes(filename string, src []byte) *GoSource {
	return &GoSource{name: filename, files: []goFile{{name: filename, src: src}}}
}

// GoDir returns a source over the non-test Go files of dir, in name order.
// Generated files are skipped when scanned.
func GoDir(dir string) (*GoSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	s := &GoSource{name: dir}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		s.files = append(s.files, goFile{name: filepath.Join(dir, name)})
	}
	return s, nil
}

// Name implements Source.
func (s *GoSource) Name() string { return s.name }

// Scan implements Source.
func (s *GoSource) Scan() (*Result, error) {
	res := &Result{}
	fset := token.NewFileSet()

	for _, f := range s.files {
		file, err := parser.ParseFile(fset, f.name, srcOf(f), parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
		if ast.IsGenerated(file) {
			continue
		}
		if res.Package == "" {
			res.Package = file.Name.Name
		} else if res.Package != file.Name.Name {
			return nil, fmt.Errorf("%s: package %s, expected %s", f.name, file.Name.Name, res.Package)
		}
		fs := &fileScanner{fset: fset, file: file, res: res, consumed: make(map[*ast.Comment]bool)}
		fs.scan()
	}
	return res, nil
}

func srcOf(f goFile) any {
	if f.src == nil {
		return nil
	}
	return f.src
}

// fileScanner scans one parsed file into a shared result.
type fileScanner struct {
	fset     *token.FileSet
	file     *ast.File
	res      *Result
	imports  map[string]string
	consumed map[*ast.Comment]bool
}

func (fs *fileScanner) pos(p token.Pos) model.Pos {
	position := fs.fset.Position(p)
	return model.Pos{File: position.Filename, Line: position.Line, Column: position.Column}
}

func (fs *fileScanner) fileError(p token.Pos, format string, args ...any) {
	fs.res.Diagnostics = append(fs.res.Diagnostics,
		scanError(fs.pos(p), "", diag.NoIndex, fmt.Sprintf(format, args...)))
}

func (fs *fileScanner) scan() {
	fs.imports = fileImports(fs.file)
	enums := fs.collectEnums()

	for _, decl := range fs.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gen.Tok {
		case token.TYPE:
			for _, spec := range gen.Specs {
				fs.scanTypeSpec(gen, spec.(*ast.TypeSpec))
			}
		case token.VAR:
			for _, spec := range gen.Specs {
				fs.scanVarSpec(gen, spec.(*ast.ValueSpec))
			}
		}
	}
	fs.res.Enums = append(fs.res.Enums, enums...)

	// Directives not consumed by a supported declaration are misplaced.
	for _, cg := range fs.file.Comments {
		for _, c := range cg.List {
			if !IsDirective(c.Text) || fs.consumed[c] {
				continue
			}
			d, err := ParseDirective(c.Text)
			if err != nil {
				fs.fileError(c.Slash, "%v", err)
				continue
			}
			fs.fileError(c.Slash, "//prefs:%s is not attached to a %s", d.Kind, supportedTarget(d.Kind))
		}
	}
}

func supportedTarget(kind string) string {
	switch kind {
	case KindGroup:
		return "type declaration"
	case KindEntry:
		return "method of a //prefs:group interface"
	default:
		return "var or type declaration"
	}
}

// directives returns the //prefs: directives of the given doc comments,
// marking them consumed. Parse failures are returned as errors with the
// comment position.
func (fs *fileScanner) directives(docs ...*ast.CommentGroup) ([]*Directive, []token.Pos, []error) {
	var (
		out  []*Directive
		poss []token.Pos
		errs []error
	)
	for _, cg := range docs {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if !IsDirective(c.Text) || fs.consumed[c] {
				continue
			}
			fs.consumed[c] = true
			d, err := ParseDirective(c.Text)
			if err != nil {
				errs = append(errs, err)
				poss = append(poss, c.Slash)
				continue
			}
			out = append(out, d)
			poss = append(poss, c.Slash)
		}
	}
	return out, poss, errs
}

// docText returns the documentation of the first non-empty comment group,
// without directive lines.
func docText(docs ...*ast.CommentGroup) string {
	for _, cg := range docs {
		if cg == nil {
			continue
		}
		if text := strings.TrimSpace(cg.Text()); text != "" {
			return text
		}
	}
	return ""
}

func (fs *fileScanner) scanTypeSpec(gen *ast.GenDecl, spec *ast.TypeSpec) {
	docs := []*ast.CommentGroup{spec.Doc}
	if len(gen.Specs) == 1 {
		docs = append(docs, gen.Doc)
	}

	ds, poss, errs := fs.directives(docs...)
	for i, err := range errs {
		fs.fileError(poss[i], "%v", err)
	}

	var group *Directive
	for i, d := range ds {
		switch d.Kind {
		case KindGroup:
			if group != nil {
				fs.fileError(poss[i], "duplicate //prefs:group on %s", spec.Name.Name)
				continue
			}
			group = d
		case KindAdapter:
			fs.addAdapter(d, spec.Name.Name+"{}", spec.Name.Pos())
		default:
			fs.fileError(poss[i], "//prefs:%s is not allowed on type %s", d.Kind, spec.Name.Name)
		}
	}

	iface, isIface := spec.Type.(*ast.InterfaceType)
	if group == nil {
		if isIface {
			fs.rejectEntryMarkers(spec.Name.Name, iface)
		}
		return
	}
	if !isIface {
		fs.fileError(spec.Name.Pos(), "//prefs:group requires an interface type, %s is not an interface", spec.Name.Name)
		return
	}
	if spec.TypeParams != nil {
		fs.fileError(spec.Name.Pos(), "//prefs:group interface %s must not have type parameters", spec.Name.Name)
		return
	}
	fs.scanGroup(group, spec, iface, docText(docs...))
}

func (fs *fileScanner) rejectEntryMarkers(name string, iface *ast.InterfaceType) {
	for _, field := range iface.Methods.List {
		ds, poss, _ := fs.directives(field.Doc)
		for i, d := range ds {
			fs.fileError(poss[i], "//prefs:%s in interface %s, which is not a //prefs:group", d.Kind, name)
		}
	}
}

func (fs *fileScanner) scanGroup(d *Directive, spec *ast.TypeSpec, iface *ast.InterfaceType, doc string) {
	g := &RawGroup{
		Name:    spec.Name.Name,
		Doc:     doc,
		Source:  fs.pos(spec.Name.Pos()).File,
		Pos:     fs.pos(spec.Name.Pos()),
		Imports: fs.imports,
	}
	if v, ok := d.Attr("name"); ok {
		g.Name = v
	}
	g.Class = naming.ExportName(g.Name) + "Prefs"
	if v, ok := d.Attr("class"); ok {
		g.Class = v
	}
	g.Prefix, _ = d.Attr("prefix")
	g.Suffix, _ = d.Attr("suffix")

	for i, field := range iface.Methods.List {
		fs.scanEntry(g, i, field)
	}
	fs.res.Groups = append(fs.res.Groups, g)
}

func (fs *fileScanner) scanEntry(g *RawGroup, index int, field *ast.Field) {
	groupError := func(p token.Pos, entry string, format string, args ...any) {
		g.Diagnostics = append(g.Diagnostics, scanError(fs.pos(p), entry, index, fmt.Sprintf(format, args...)))
	}

	ds, poss, errs := fs.directives(field.Doc)
	if len(field.Names) == 0 {
		groupError(field.Pos(), "", "embedded element %s is not allowed in group interface %s",
			types.ExprString(field.Type), g.Name)
		return
	}
	name := field.Names[0].Name
	for i, err := range errs {
		groupError(poss[i], name, "%v", err)
	}

	fn, ok := field.Type.(*ast.FuncType)
	if !ok {
		groupError(field.Pos(), name, "%s is not a method", name)
		return
	}
	if fn.Params.NumFields() > 0 {
		groupError(fn.Params.Pos(), name, "entry method %s must not take parameters", name)
		return
	}

	e := &RawEntry{
		Name:  name,
		Doc:   docText(field.Doc),
		Pos:   fs.pos(field.Names[0].Pos()),
		Index: index,
	}
	switch n := fn.Results.NumFields(); {
	case n == 0:
	case n == 1:
		e.Type = types.ExprString(fn.Results.List[0].Type)
	default:
		groupError(fn.Results.Pos(), name, "entry method %s must return at most one value, returns %d", name, n)
		return
	}

	var seen bool
	for i, d := range ds {
		if d.Kind != KindEntry {
			groupError(poss[i], name, "//prefs:%s is not allowed on method %s", d.Kind, name)
			continue
		}
		if seen {
			groupError(poss[i], name, "duplicate //prefs:entry on method %s", name)
			continue
		}
		seen = true
		if v, ok := d.Attr("key"); ok {
			e.Key = &v
		}
		if v, ok := d.Attr("default"); ok {
			e.Default = &v
		}
		e.Adapter, _ = d.Attr("adapter")
	}
	g.Entries = append(g.Entries, e)
}

func (fs *fileScanner) scanVarSpec(gen *ast.GenDecl, spec *ast.ValueSpec) {
	docs := []*ast.CommentGroup{spec.Doc}
	if len(gen.Specs) == 1 {
		docs = append(docs, gen.Doc)
	}
	ds, poss, errs := fs.directives(docs...)
	for i, err := range errs {
		fs.fileError(poss[i], "%v", err)
	}
	for i, d := range ds {
		if d.Kind != KindAdapter {
			fs.fileError(poss[i], "//prefs:%s is not allowed on a var declaration", d.Kind)
			continue
		}
		if len(spec.Names) != 1 {
			fs.fileError(poss[i], "//prefs:adapter must annotate a single variable, found %d", len(spec.Names))
			continue
		}
		fs.addAdapter(d, spec.Names[0].Name, spec.Names[0].Pos())
	}
}

func (fs *fileScanner) addAdapter(d *Directive, codec string, p token.Pos) {
	a := &RawAdapter{
		Name:    d.Args[0],
		Codec:   codec,
		Imports: fs.imports,
		Pos:     fs.pos(p),
	}
	typ, ok := d.Attr("type")
	if !ok || typ == "" {
		fs.fileError(p, "//prefs:adapter %s: missing type attribute", a.Name)
		return
	}
	a.Type = typ
	a.Storage = "string"
	if v, ok := d.Attr("storage"); ok {
		a.Storage = v
	}
	fs.res.Adapters = append(fs.res.Adapters, a)
}

// enumBasics are the basic types a named type may be declared over to be
// collected as an enum.
var enumBasics = []string{
	"string", "int", "int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "byte", "rune",
}

// collectEnums finds named basic types and their typed constants.
func (fs *fileScanner) collectEnums() []*RawEnum {
	var enums []*RawEnum
	byName := make(map[string]*RawEnum)

	for _, decl := range fs.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			ident, ok := ts.Type.(*ast.Ident)
			if !ok || ts.Assign.IsValid() || ts.TypeParams != nil || !slices.Contains(enumBasics, ident.Name) {
				continue
			}
			e := &RawEnum{Name: ts.Name.Name, Underlying: ident.Name, Pos: fs.pos(ts.Name.Pos())}
			enums = append(enums, e)
			byName[e.Name] = e
		}
	}

	for _, decl := range fs.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST {
			continue
		}
		// Within a const block, a spec without type and values repeats the
		// previous spec's type.
		var last *RawEnum
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			e, values := constEnum(vs, byName)
			if vs.Type == nil && len(vs.Values) == 0 {
				e = last
			}
			last = e
			if e == nil {
				continue
			}
			for i, n := range vs.Names {
				if n.Name == "_" {
					continue
				}
				if i >= len(values) {
					e.Open = true
					continue
				}
				v, ok := constValue(values[i])
				if !ok {
					e.Open = true
					continue
				}
				e.Consts = append(e.Consts, RawConst{Name: n.Name, Value: v})
			}
		}
	}
	return enums
}

// constEnum returns the enum a constant spec is typed with, and the value
// expressions with any conversion stripped (Theme("dark") -> "dark").
func constEnum(vs *ast.ValueSpec, byName map[string]*RawEnum) (*RawEnum, []ast.Expr) {
	if id, ok := vs.Type.(*ast.Ident); ok {
		return byName[id.Name], vs.Values
	}
	if vs.Type != nil || len(vs.Values) == 0 {
		return nil, nil
	}
	call, ok := vs.Values[0].(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return nil, nil
	}
	id, ok := call.Fun.(*ast.Ident)
	if !ok || byName[id.Name] == nil {
		return nil, nil
	}
	values := make([]ast.Expr, len(vs.Values))
	for i, v := range vs.Values {
		values[i] = v
		if c, ok := v.(*ast.CallExpr); ok && len(c.Args) == 1 {
			values[i] = c.Args[0]
		}
	}
	return byName[id.Name], values
}

// constValue returns the literal value of a constant expression.
func constValue(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok {
		return "", false
	}
	switch lit.Kind {
	case token.STRING:
		v, err := strconv.Unquote(lit.Value)
		return v, err == nil
	case token.INT:
		return lit.Value, true
	}
	return "", false
}

// fileImports maps the qualifiers of a file's imports to their paths.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		qual := path.Base(p)
		if imp.Name != nil {
			qual = imp.Name.Name
		}
		if qual == "_" || qual == "." {
			continue
		}
		imports[qual] = p
	}
	return imports
}
