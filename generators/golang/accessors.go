// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"bytes"
	"fmt"

	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/model"
)

// accessor holds the pieces shared by the methods of one property.
type accessor struct {
	class string
	p     *ir.Property
	// kind is the store method suffix, e.g. Bool or StringSet.
	kind string
	// decl is the declared type without pointer.
	decl string
	def  string
	zero string
}

func (g *Codegen) writeProperty(buf *bytes.Buffer, p *ir.Property) {
	a := accessor{
		class: g.class.Name,
		p:     p,
		kind:  storeKind(p.Storage),
		decl:  p.Type.Base().String(),
		zero:  zeroValue(p.Storage),
	}
	a.def = a.zero
	if p.Default != nil {
		a.def = literal(p.Default.Value)
	}

	for _, m := range p.Methods {
		switch m.Kind {
		case ir.MethodGet:
			switch {
			case p.Fallible():
				a.writeCodecGetter(buf, m.Name)
			default:
				a.writeGetter(buf, m.Name)
			}
		case ir.MethodSet:
			switch {
			case p.Fallible():
				a.writeCodecSetter(buf, m.Name)
			default:
				a.writeSetter(buf, m.Name)
			}
		case ir.MethodHas:
			fmt.Fprintf(buf, "// %s reports whether the %s preference is set.\n", m.Name, p.Entry)
			fmt.Fprintf(buf, "func (p *%s) %s() bool {\n\treturn p.store.Contains(%s)\n}\n\n", a.class, m.Name, p.KeyConst)
		case ir.MethodRemove:
			fmt.Fprintf(buf, "// %s deletes the %s preference.\n", m.Name, p.Entry)
			fmt.Fprintf(buf, "func (p *%s) %s() {\n\tp.store.Remove(%s)\n}\n\n", a.class, m.Name, p.KeyConst)
		}
	}
}

func (a *accessor) writeGetterDoc(buf *bytes.Buffer, name string) {
	p := a.p
	if p.Doc != "" {
		writeDocComment(buf, p.Doc)
		buf.WriteString("//\n")
	}
	switch {
	case p.Nullable && p.Default == nil:
		fmt.Fprintf(buf, "// %s returns the %s preference, or nil when it is not set.\n", name, p.Entry)
	case p.Default != nil:
		fmt.Fprintf(buf, "// %s returns the %s preference. The default is %s.\n", name, p.Entry, p.Default.Raw)
	default:
		fmt.Fprintf(buf, "// %s returns the %s preference.\n", name, p.Entry)
	}
}

// get returns the store read expression.
func (a *accessor) get(def string) string {
	return fmt.Sprintf("p.store.Get%s(%s, %s)", a.kind, a.p.KeyConst, def)
}

// toDeclared converts a storage expression to the declared type.
func (a *accessor) toDeclared(expr string) string {
	c := a.p.Conversion
	switch {
	case c == nil:
		return expr
	case c.Kind == model.ConvFloatBits:
		return fmt.Sprintf("math.Float64frombits(uint64(%s))", expr)
	default:
		return fmt.Sprintf("%s(%s)", a.decl, expr)
	}
}

// toStorage converts a declared-type expression to the storage type.
func (a *accessor) toStorage(expr string) string {
	c := a.p.Conversion
	switch {
	case c == nil:
		return expr
	case c.Kind == model.ConvFloatBits:
		return fmt.Sprintf("int64(math.Float64bits(%s))", expr)
	default:
		return fmt.Sprintf("%s(%s)", storageType(a.p.Storage), expr)
	}
}

func (a *accessor) writeGetter(buf *bytes.Buffer, name string) {
	p := a.p
	a.writeGetterDoc(buf, name)
	if !p.Nullable {
		fmt.Fprintf(buf, "func (p *%s) %s() %s {\n", a.class, name, a.decl)
		fmt.Fprintf(buf, "\treturn %s\n}\n\n", a.toDeclared(a.get(a.def)))
		return
	}
	fmt.Fprintf(buf, "func (p *%s) %s() *%s {\n", a.class, name, a.decl)
	if p.Default == nil {
		fmt.Fprintf(buf, "\tif !p.store.Contains(%s) {\n\t\treturn nil\n\t}\n", p.KeyConst)
	}
	fmt.Fprintf(buf, "\tv := %s\n\treturn &v\n}\n\n", a.toDeclared(a.get(a.def)))
}

func (a *accessor) writeSetter(buf *bytes.Buffer, name string) {
	p := a.p
	if !p.Nullable {
		fmt.Fprintf(buf, "// %s stores the %s preference.\n", name, p.Entry)
		fmt.Fprintf(buf, "func (p *%s) %s(v %s) {\n", a.class, name, a.decl)
		fmt.Fprintf(buf, "\tp.store.Put%s(%s, %s)\n}\n\n", a.kind, p.KeyConst, a.toStorage("v"))
		return
	}
	fmt.Fprintf(buf, "// %s stores the %s preference. A nil value removes it.\n", name, p.Entry)
	fmt.Fprintf(buf, "func (p *%s) %s(v *%s) {\n", a.class, name, a.decl)
	fmt.Fprintf(buf, "\tif v == nil {\n\t\tp.store.Remove(%s)\n\t\treturn\n\t}\n", p.KeyConst)
	fmt.Fprintf(buf, "\tp.store.Put%s(%s, %s)\n}\n\n", a.kind, p.KeyConst, a.toStorage("*v"))
}

// codec returns the expression of the property's codec value.
func (a *accessor) codec() string {
	c := a.p.Conversion
	if c.Builtin {
		switch c.Adapter {
		case "msgpack":
			return fmt.Sprintf("prefstore.Msgpack[%s]{}", a.decl)
		default:
			return fmt.Sprintf("prefstore.JSON[%s]{}", a.decl)
		}
	}
	return c.Codec
}

func (a *accessor) codecError(op string) string {
	return fmt.Sprintf("&prefstore.CodecError{Key: %s, Op: %q, Err: err}", a.p.KeyConst, op)
}

func (a *accessor) writeCodecGetter(buf *bytes.Buffer, name string) {
	p := a.p
	a.writeGetterDoc(buf, name)
	result, absent, failed, found := a.decl, "zero, nil", "v", "v"
	if p.Nullable {
		result, absent, failed, found = "*"+a.decl, "nil, nil", "nil", "&v"
	}
	fmt.Fprintf(buf, "func (p *%s) %s() (%s, error) {\n", a.class, name, result)
	if p.Default == nil {
		fmt.Fprintf(buf, "\tif !p.store.Contains(%s) {\n", p.KeyConst)
		if !p.Nullable {
			fmt.Fprintf(buf, "\t\tvar zero %s\n", a.decl)
		}
		fmt.Fprintf(buf, "\t\treturn %s\n\t}\n", absent)
	}
	fmt.Fprintf(buf, "\tv, err := %s.Decode(%s)\n", a.codec(), a.get(a.def))
	fmt.Fprintf(buf, "\tif err != nil {\n\t\treturn %s, %s\n\t}\n", failed, a.codecError("decode"))
	fmt.Fprintf(buf, "\treturn %s, nil\n}\n\n", found)
}

func (a *accessor) writeCodecSetter(buf *bytes.Buffer, name string) {
	p := a.p
	arg := "v"
	if p.Nullable {
		fmt.Fprintf(buf, "// %s stores the %s preference. A nil value removes it.\n", name, p.Entry)
		fmt.Fprintf(buf, "func (p *%s) %s(v *%s) error {\n", a.class, name, a.decl)
		fmt.Fprintf(buf, "\tif v == nil {\n\t\tp.store.Remove(%s)\n\t\treturn nil\n\t}\n", p.KeyConst)
		arg = "*v"
	} else {
		fmt.Fprintf(buf, "// %s stores the %s preference.\n", name, p.Entry)
		fmt.Fprintf(buf, "func (p *%s) %s(v %s) error {\n", a.class, name, a.decl)
	}
	fmt.Fprintf(buf, "\ts, err := %s.Encode(%s)\n", a.codec(), arg)
	fmt.Fprintf(buf, "\tif err != nil {\n\t\treturn %s\n\t}\n", a.codecError("encode"))
	fmt.Fprintf(buf, "\tp.store.Put%s(%s, s)\n\treturn nil\n}\n\n", a.kind, p.KeyConst)
}
