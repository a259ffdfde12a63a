// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package kotlin

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albertocavalcante/prefgen/internal/ir"
	"github.com/albertocavalcante/prefgen/internal/naming"
	"github.com/albertocavalcante/prefgen/model"
)

// kotlinType returns the Kotlin type of a property.
// Nullable properties get a trailing "?".
func kotlinType(p *ir.Property) string {
	t := kotlinStorageType(p.Storage)
	if floatBits(p) {
		t = "Double"
	} else if n := narrow(p); n != "" {
		t = n
	}
	if p.Nullable {
		t += "?"
	}
	return t
}

func kotlinStorageType(s model.Storage) string {
	switch s {
	case model.StorageBool:
		return "Boolean"
	case model.StorageInt:
		return "Int"
	case model.StorageLong:
		return "Long"
	case model.StorageFloat:
		return "Float"
	case model.StorageString:
		return "String"
	case model.StorageStringSet:
		return "Set<String>"
	}
	return ""
}

func floatBits(p *ir.Property) bool {
	return p.Conversion != nil && p.Conversion.Kind == model.ConvFloatBits
}

// narrow returns Byte or Short for int8 and int16 entries, which are
// stored as Int.
func narrow(p *ir.Property) string {
	if p.Storage != model.StorageInt {
		return ""
	}
	switch p.Type.Base().ID() {
	case "int8":
		return "Byte"
	case "int16":
		return "Short"
	}
	return ""
}

// rawCodec reports whether p is exposed in its encoded form. Codecs are Go
// values, so Kotlin callers see the stored string.
func rawCodec(p *ir.Property) bool {
	return p.Conversion != nil && p.Conversion.Kind == model.ConvCodec
}

// defaultLiteral formats the default of p in the storage domain, or the
// storage zero value.
func defaultLiteral(p *ir.Property) string {
	if p.Default == nil {
		switch p.Storage {
		case model.StorageBool:
			return "false"
		case model.StorageLong:
			return "0L"
		case model.StorageFloat:
			return "0f"
		case model.StorageString:
			return `""`
		case model.StorageStringSet:
			return "emptySet()"
		}
		return "0"
	}
	return literal(p.Default.Value)
}

func literal(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int32:
		if v == math.MinInt32 {
			return "Int.MIN_VALUE"
		}
		return strconv.FormatInt(int64(v), 10)
	case int64:
		if v == math.MinInt64 {
			return "Long.MIN_VALUE"
		}
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case string:
		return quote(v)
	case []string:
		if len(v) == 0 {
			return "emptySet()"
		}
		elems := make([]string, len(v))
		for i, s := range v {
			elems[i] = quote(s)
		}
		return "setOf(" + strings.Join(elems, ", ") + ")"
	}
	panic(fmt.Sprintf("kotlin: unexpected default value %T", v))
}

// quote returns s as a Kotlin string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '$':
			sb.WriteString(`\$`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// keyConst returns the companion constant name of a property's key,
// e.g. DARK_MODE_KEY.
func keyConst(p *ir.Property) string {
	return naming.KeyConst(p.Name)
}

// funName lowers the first word of an accessor name: SetDarkMode becomes
// setDarkMode.
func funName(method string) string {
	return ident(naming.LowerCamel(method))
}

func ident(name string) string {
	if keywords[name] {
		return "`" + name + "`"
	}
	return name
}
