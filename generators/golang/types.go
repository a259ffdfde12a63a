// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package golang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/albertocavalcante/prefgen/model"
)

// storeKind returns the Store method suffix for a storage primitive.
func storeKind(s model.Storage) string {
	switch s {
	case model.StorageBool:
		return "Bool"
	case model.StorageInt:
		return "Int"
	case model.StorageLong:
		return "Long"
	case model.StorageFloat:
		return "Float"
	case model.StorageString:
		return "String"
	case model.StorageStringSet:
		return "StringSet"
	}
	return ""
}

// storageType returns the Go type of a storage primitive.
func storageType(s model.Storage) string {
	switch s {
	case model.StorageBool:
		return "bool"
	case model.StorageInt:
		return "int32"
	case model.StorageLong:
		return "int64"
	case model.StorageFloat:
		return "float32"
	case model.StorageString:
		return "string"
	case model.StorageStringSet:
		return "[]string"
	}
	return ""
}

func zeroValue(s model.Storage) string {
	switch s {
	case model.StorageBool:
		return "false"
	case model.StorageString:
		return `""`
	case model.StorageStringSet:
		return "nil"
	}
	return "0"
}

// literal formats a default value of the storage domain as a Go expression.
func literal(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case string:
		return quote(v)
	case []string:
		elems := make([]string, len(v))
		for i, s := range v {
			elems[i] = quote(s)
		}
		return "[]string{" + strings.Join(elems, ", ") + "}"
	}
	panic(fmt.Sprintf("golang: unexpected default value %T", v))
}

func quote(s string) string {
	return strconv.Quote(s)
}
