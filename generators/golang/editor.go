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
)

func editorName(c *ir.Class) string {
	return c.Name + "Editor"
}

func (g *Codegen) writeEditMethod(buf *bytes.Buffer) {
	c := g.class
	buf.WriteString("// Edit returns an editor that stages writes until Apply.\n")
	fmt.Fprintf(buf, "func (p *%s) Edit() *%s {\n\treturn &%[2]s{p: p}\n}\n\n", c.Name, editorName(c))
}

// writeEditor emits the editor type: one staged setter and remover per
// entry, and Apply.
func (g *Codegen) writeEditor(buf *bytes.Buffer) {
	c := g.class
	ed := editorName(c)
	fmt.Fprintf(buf, "// %s batches writes to %s. Nothing reaches the store before Apply.\n", ed, c.Name)
	fmt.Fprintf(buf, "type %s struct {\n\tp   *%s\n\tops []func() error\n}\n\n", ed, c.Name)

	for _, p := range c.Properties {
		if set, ok := p.Method(ir.MethodSet); ok {
			param := p.Type.Base().String()
			if p.Nullable {
				param = "*" + param
			}
			call := fmt.Sprintf("e.p.%s(v)\n\t\treturn nil", set.Name)
			if p.Fallible() {
				call = fmt.Sprintf("return e.p.%s(v)", set.Name)
			}
			fmt.Fprintf(buf, "// %s stages %s.%[1]s.\n", set.Name, c.Name)
			fmt.Fprintf(buf, "func (e *%s) %s(v %s) *%[1]s {\n", ed, set.Name, param)
			fmt.Fprintf(buf, "\te.ops = append(e.ops, func() error {\n\t\t%s\n\t})\n\treturn e\n}\n\n", call)
		}
		if remove, ok := p.Method(ir.MethodRemove); ok {
			fmt.Fprintf(buf, "// %s stages %s.%[1]s.\n", remove.Name, c.Name)
			fmt.Fprintf(buf, "func (e *%s) %s() *%[1]s {\n", ed, remove.Name)
			fmt.Fprintf(buf, "\te.ops = append(e.ops, func() error {\n\t\te.p.%s()\n\t\treturn nil\n\t})\n\treturn e\n}\n\n", remove.Name)
		}
	}

	buf.WriteString("// Apply performs the staged writes in order and empties the editor.\n")
	buf.WriteString("// A failed write does not stop later ones; the first error is returned.\n")
	fmt.Fprintf(buf, "func (e *%s) Apply() error {\n", ed)
	buf.WriteString("\tops := e.ops\n\te.ops = nil\n\tvar first error\n")
	buf.WriteString("\tfor _, op := range ops {\n\t\tif err := op(); err != nil && first == nil {\n\t\t\tfirst = err\n\t\t}\n\t}\n")
	buf.WriteString("\treturn first\n}\n")
}
