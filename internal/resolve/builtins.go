// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package resolve

import "github.com/albertocavalcante/prefgen/model"

// Built-in adapter names.
const (
	AdapterJSON    = "json"
	AdapterMsgpack = "msgpack"
)

type builtin struct {
	storage model.Storage
	conv    *model.Conversion
}

var (
	castConv      = &model.Conversion{Kind: model.ConvCast}
	floatBitsConv = &model.Conversion{Kind: model.ConvFloatBits}
)

// builtins maps type identities to their storage. A nil conversion means
// the declared type is the storage type.
var builtins = map[string]builtin{
	"void":    {storage: model.StorageVoid},
	"bool":    {storage: model.StorageBool},
	"int32":   {storage: model.StorageInt},
	"rune":    {storage: model.StorageInt},
	"int8":    {storage: model.StorageInt, conv: castConv},
	"int16":   {storage: model.StorageInt, conv: castConv},
	"uint8":   {storage: model.StorageInt, conv: castConv},
	"byte":    {storage: model.StorageInt, conv: castConv},
	"uint16":  {storage: model.StorageInt, conv: castConv},
	"int64":   {storage: model.StorageLong},
	"int":     {storage: model.StorageLong, conv: castConv},
	"uint32":  {storage: model.StorageLong, conv: castConv},
	"float32": {storage: model.StorageFloat},
	"float64": {storage: model.StorageLong, conv: floatBitsConv},
	"string":  {storage: model.StorageString},

	"time.Duration": {storage: model.StorageLong, conv: castConv},
	"[]string":      {storage: model.StorageStringSet},
}

// Builtin reports whether id names a type with built-in storage.
func Builtin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// enumUnderlying lists the basic types an enum may be declared over.
var enumUnderlying = map[string]bool{
	"string": true,
	"int":    true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "byte": true, "rune": true,
}

func builtinAdapters() []*Adapter {
	return []*Adapter{
		{Name: AdapterJSON, Storage: model.StorageString, Builtin: true},
		{Name: AdapterMsgpack, Storage: model.StorageString, Builtin: true},
	}
}
