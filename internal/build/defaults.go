// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package build

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/prefgen/internal/resolve"
	"github.com/albertocavalcante/prefgen/model"
)

var (
	errNotBool   = errors.New(`want "true" or "false"`)
	errNotFinite = errors.New("value must be finite")
)

// parseDefault validates a raw default literal against the declared type
// and returns it in the storage domain.
//
// Codec-backed entries take their default in serialized form, validated
// against the storage primitive only; the codec runs at runtime.
func parseDefault(raw string, declared model.TypeRef, res resolve.Resolved) (*model.Literal, error) {
	base := declared.Base()

	switch {
	case res.Conversion != nil && res.Conversion.Kind == model.ConvCodec:
		v, err := parseStorage(raw, res.Storage)
		if err != nil {
			return nil, err
		}
		return &model.Literal{Raw: raw, Value: v}, nil

	case res.Enum != nil:
		value := raw
		if v, ok := res.Enum.Consts[raw]; ok {
			value = v
		}
		if res.Enum.Values != nil && !slices.Contains(res.Enum.Values, value) {
			return nil, fmt.Errorf("not one of %s", strings.Join(res.Enum.Values, ", "))
		}
		v, err := parseBasic(value, res.Enum.Underlying)
		if err != nil {
			return nil, err
		}
		return &model.Literal{Raw: raw, Value: v}, nil

	case res.Conversion != nil && res.Conversion.Kind == model.ConvFloatBits:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, numError(err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errNotFinite
		}
		return &model.Literal{Raw: raw, Value: int64(math.Float64bits(f))}, nil

	case base.ID() == "time.Duration":
		if d, err := time.ParseDuration(raw); err == nil {
			return &model.Literal{Raw: raw, Value: int64(d)}, nil
		}
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("want a duration such as 1m30s or integer nanoseconds")
		}
		return &model.Literal{Raw: raw, Value: n}, nil

	case base.Elem != nil:
		v, err := parseStorage(raw, model.StorageStringSet)
		if err != nil {
			return nil, err
		}
		return &model.Literal{Raw: raw, Value: v}, nil
	}

	v, err := parseBasic(raw, base.Name)
	if err != nil {
		return nil, err
	}
	return &model.Literal{Raw: raw, Value: v}, nil
}

// parseBasic parses raw as a value of a basic Go type, range-checked for
// the type's width, and returns it in the storage domain.
func parseBasic(raw, typ string) (any, error) {
	switch typ {
	case "bool":
		return parseStorage(raw, model.StorageBool)
	case "string":
		return raw, nil
	case "float32":
		return parseStorage(raw, model.StorageFloat)
	case "int64":
		return parseStorage(raw, model.StorageLong)
	case "rune":
		if strings.HasPrefix(raw, "'") {
			s, err := strconv.Unquote(raw)
			if err != nil || len([]rune(s)) != 1 {
				return nil, fmt.Errorf("bad rune literal")
			}
			return []rune(s)[0], nil
		}
		return asInt32[int32](raw)
	case "int32":
		return asInt32[int32](raw)
	case "int8":
		return asInt32[int8](raw)
	case "int16":
		return asInt32[int16](raw)
	case "uint8", "byte":
		return asInt32[uint8](raw)
	case "uint16":
		return asInt32[uint16](raw)
	case "int":
		return asInt64[int](raw)
	case "uint32":
		return asInt64[uint32](raw)
	}
	return nil, fmt.Errorf("no literal syntax for type %s", typ)
}

// parseStorage parses raw as a value of a storage primitive.
func parseStorage(raw string, s model.Storage) (any, error) {
	switch s {
	case model.StorageBool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, errNotBool
	case model.StorageInt:
		return asInt32[int32](raw)
	case model.StorageLong:
		n, err := strconv.ParseInt(raw, 0, 64)
		if err != nil {
			return nil, numError(err)
		}
		return n, nil
	case model.StorageFloat:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, numError(err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errNotFinite
		}
		return float32(f), nil
	case model.StorageString:
		return raw, nil
	case model.StorageStringSet:
		return parseStringSet(raw)
	}
	return nil, fmt.Errorf("%s entries take no default", s)
}

// parseStringSet parses a YAML or JSON flow list of strings.
func parseStringSet(raw string) ([]string, error) {
	var set []string
	if err := yaml.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf(`want a list such as ["a", "b"]`)
	}
	if set == nil {
		set = []string{}
	}
	seen := make(map[string]bool, len(set))
	for _, s := range set {
		if seen[s] {
			return nil, fmt.Errorf("duplicate element %q in set", s)
		}
		seen[s] = true
	}
	return set, nil
}

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

// intOf parses raw as an integer literal (any Go base prefix) and checks
// that it fits T.
func intOf[T integer](raw string) (T, error) {
	n, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, numError(err)
	}
	v, err := safecast.Conv[T](n)
	if err != nil {
		return 0, fmt.Errorf("%d is out of range for %T", n, v)
	}
	return v, nil
}

// asInt32 parses a T stored as an int.
func asInt32[T integer](raw string) (any, error) {
	v, err := intOf[T](raw)
	if err != nil {
		return nil, err
	}
	return int32(v), nil
}

// asInt64 parses a T stored as a long.
func asInt64[T integer](raw string) (any, error) {
	v, err := intOf[T](raw)
	if err != nil {
		return nil, err
	}
	return int64(v), nil
}

func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		if errors.Is(ne.Err, strconv.ErrRange) {
			return fmt.Errorf("value out of range")
		}
		return fmt.Errorf("not a number")
	}
	return err
}
