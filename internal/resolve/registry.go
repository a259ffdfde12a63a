// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package resolve maps declared preference types to storage primitives.
//
// Resolution order for a declared type T (pointer stripped):
//
//  1. an explicit adapter named by the entry
//  2. an adapter registered for T
//  3. a built-in type
//  4. a registered enum
//
// Anything else is unsupported. Resolution is pure: the same registry and
// input always give the same result.
package resolve

import (
	"fmt"

	"github.com/albertocavalcante/prefgen/model"
)

// Enum is a named type over a basic type, optionally with a known value set.
type Enum struct {
	Type       model.TypeRef
	Underlying string
	// Values are the declared constant values, as written. Nil means the
	// value set is open.
	Values []string
	// Consts maps constant names to values, so defaults may name a
	// constant instead of spelling its value.
	Consts map[string]string
	Pos    model.Pos
}

// Adapter is a named codec bridging a declared type and a storage primitive.
type Adapter struct {
	Name string
	// Type is the declared type the adapter converts. Zero for built-in
	// adapters, which accept any type.
	Type    model.TypeRef
	Storage model.Storage
	// Codec is the expression of the codec value in generated code.
	Codec   string
	Builtin bool
	Pos     model.Pos

	conv *model.Conversion
}

// Resolved is the storage mapping of a declared type.
type Resolved struct {
	Storage    model.Storage
	Conversion *model.Conversion
	Nullable   bool

	// Enum is set when the type resolved through a registered enum.
	Enum *Enum
	// Adapter is set when the type resolved through an adapter.
	Adapter *Adapter
}

// Registry holds the conversions known to one build pass.
type Registry struct {
	enums    map[string]*Enum
	adapters map[string]*Adapter
	byType   map[string]*Adapter
	enumConv map[string]*model.Conversion
}

// NewRegistry returns a registry with the built-in adapters.
func NewRegistry() *Registry {
	r := &Registry{
		enums:    make(map[string]*Enum),
		adapters: make(map[string]*Adapter),
		byType:   make(map[string]*Adapter),
		enumConv: make(map[string]*model.Conversion),
	}
	for _, a := range builtinAdapters() {
		a.conv = &model.Conversion{Kind: model.ConvCodec, Adapter: a.Name, Builtin: true}
		r.adapters[a.Name] = a
	}
	return r
}

// RegisterEnum registers a named type over a basic type.
func (r *Registry) RegisterEnum(e Enum) error {
	id := e.Type.ID()
	if _, ok := r.enums[id]; ok {
		return &DuplicateError{Kind: "enum", Name: e.Type.String()}
	}
	if Builtin(id) {
		return &DuplicateError{Kind: "built-in type", Name: e.Type.String()}
	}
	if !enumUnderlying[e.Underlying] {
		return fmt.Errorf("enum %s: underlying type %s must be a string or integer type", e.Type, e.Underlying)
	}
	r.enums[id] = &e
	r.enumConv[id] = &model.Conversion{Kind: model.ConvCast, Underlying: e.Underlying}
	return nil
}

// RegisterAdapter registers a user adapter. An adapter with a Type also
// applies to entries of that type that do not name an adapter.
func (r *Registry) RegisterAdapter(a Adapter) error {
	if _, ok := r.adapters[a.Name]; ok {
		return &DuplicateError{Kind: "adapter", Name: a.Name}
	}
	if a.Storage == model.StorageVoid {
		return fmt.Errorf("adapter %q: storage must be a value type", a.Name)
	}
	if a.Codec == "" {
		return fmt.Errorf("adapter %q: no codec", a.Name)
	}
	a.Builtin = false
	a.conv = &model.Conversion{Kind: model.ConvCodec, Adapter: a.Name, Codec: a.Codec}
	if a.Type.Name != "" || a.Type.Elem != nil {
		a.Type = a.Type.Base()
		id := a.Type.ID()
		if prev, ok := r.byType[id]; ok {
			return fmt.Errorf("adapter %q: type %s already has adapter %q", a.Name, a.Type, prev.Name)
		}
		r.byType[id] = &a
	}
	r.adapters[a.Name] = &a
	return nil
}

// Enum returns the enum registered for a type identity.
func (r *Registry) Enum(id string) (*Enum, bool) {
	e, ok := r.enums[id]
	return e, ok
}

// Adapter returns the adapter registered under name.
func (r *Registry) Adapter(name string) (*Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Resolve maps t to its storage. adapter is the adapter named by the entry,
// or "" for none.
func (r *Registry) Resolve(t model.TypeRef, adapter string) (Resolved, error) {
	base := t.Base()
	id := base.ID()
	res := Resolved{Nullable: t.Pointer}

	if base.IsVoid() {
		if t.Pointer {
			return Resolved{}, &UnsupportedError{Type: t.String(), Reason: "void cannot be nullable"}
		}
		if adapter != "" {
			return Resolved{}, &AdapterError{Adapter: adapter, Type: "void", Bound: "values", Err: ErrAdapterMismatch}
		}
		res.Storage = model.StorageVoid
		return res, nil
	}

	if adapter != "" {
		a, ok := r.adapters[adapter]
		if !ok {
			return Resolved{}, &AdapterError{Adapter: adapter, Type: base.String(), Err: ErrUnknownAdapter}
		}
		if !a.Builtin && a.Type.ID() != id {
			return Resolved{}, &AdapterError{
				Adapter: adapter, Type: base.String(), Bound: a.Type.String(), Err: ErrAdapterMismatch,
			}
		}
		return r.viaAdapter(res, a), nil
	}

	if a, ok := r.byType[id]; ok {
		return r.viaAdapter(res, a), nil
	}

	if b, ok := builtins[id]; ok {
		res.Storage = b.storage
		res.Conversion = b.conv
		return res, nil
	}

	if e, ok := r.enums[id]; ok {
		res.Storage = builtins[e.Underlying].storage
		res.Conversion = r.enumConv[id]
		res.Enum = e
		return res, nil
	}

	return Resolved{}, &UnsupportedError{Type: t.String()}
}

func (r *Registry) viaAdapter(res Resolved, a *Adapter) Resolved {
	res.Storage = a.Storage
	res.Conversion = a.conv
	res.Adapter = a
	return res
}
