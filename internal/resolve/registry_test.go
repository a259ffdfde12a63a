// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package resolve

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/prefgen/model"
)

func typ(t *testing.T, s string) model.TypeRef {
	t.Helper()
	ref, err := model.ParseTypeRef(s, nil)
	require.NoError(t, err)
	return ref
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.RegisterEnum(Enum{
		Type:       model.TypeRef{Name: "Theme"},
		Underlying: "string",
		Values:     []string{"light", "dark"},
	}))
	require.NoError(t, r.RegisterEnum(Enum{Type: model.TypeRef{Name: "Level"}, Underlying: "int8"}))
	require.NoError(t, r.RegisterAdapter(Adapter{
		Name:    "point",
		Type:    model.TypeRef{Name: "Point"},
		Storage: model.StorageString,
		Codec:   "pointCodec",
	}))
	return r
}

func TestResolve_Builtins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		input    string
		storage  model.Storage
		conv     model.ConversionKind
		nullable bool
	}{
		{input: "bool", storage: model.StorageBool},
		{input: "int32", storage: model.StorageInt},
		{input: "rune", storage: model.StorageInt},
		{input: "int8", storage: model.StorageInt, conv: model.ConvCast},
		{input: "uint16", storage: model.StorageInt, conv: model.ConvCast},
		{input: "int64", storage: model.StorageLong},
		{input: "int", storage: model.StorageLong, conv: model.ConvCast},
		{input: "time.Duration", storage: model.StorageLong, conv: model.ConvCast},
		{input: "float32", storage: model.StorageFloat},
		{input: "float64", storage: model.StorageLong, conv: model.ConvFloatBits},
		{input: "string", storage: model.StorageString},
		{input: "[]string", storage: model.StorageStringSet},
		{input: "*string", storage: model.StorageString, nullable: true},
		{input: "*[]string", storage: model.StorageStringSet, nullable: true},
		{input: "void", storage: model.StorageVoid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.Resolve(typ(t, tt.input), "")
			require.NoError(t, err)
			assert.Equal(t, tt.storage, got.Storage)
			assert.Equal(t, tt.nullable, got.Nullable)
			if tt.conv == 0 {
				assert.Nil(t, got.Conversion)
			} else {
				require.NotNil(t, got.Conversion)
				assert.Equal(t, tt.conv, got.Conversion.Kind)
			}
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	r := newTestRegistry(t)
	first, err := r.Resolve(typ(t, "Theme"), "")
	require.NoError(t, err)
	for range 5 {
		again, err := r.Resolve(typ(t, "Theme"), "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Same(t, first.Conversion, again.Conversion)
	}
}

func TestResolve_Enums(t *testing.T) {
	r := newTestRegistry(t)

	got, err := r.Resolve(typ(t, "Theme"), "")
	require.NoError(t, err)
	assert.Equal(t, model.StorageString, got.Storage)
	require.NotNil(t, got.Enum)
	assert.Equal(t, []string{"light", "dark"}, got.Enum.Values)
	assert.Equal(t, "string", got.Conversion.Underlying)

	got, err = r.Resolve(typ(t, "*Level"), "")
	require.NoError(t, err)
	assert.Equal(t, model.StorageInt, got.Storage)
	assert.True(t, got.Nullable)
	assert.Equal(t, model.ConvCast, got.Conversion.Kind)
}

func TestResolve_Adapters(t *testing.T) {
	r := newTestRegistry(t)

	t.Run("bound by type", func(t *testing.T) {
		got, err := r.Resolve(typ(t, "Point"), "")
		require.NoError(t, err)
		assert.Equal(t, model.StorageString, got.Storage)
		assert.True(t, got.Conversion.Fallible())
		assert.Equal(t, "pointCodec", got.Conversion.Codec)
	})

	t.Run("explicit by name", func(t *testing.T) {
		got, err := r.Resolve(typ(t, "*Point"), "point")
		require.NoError(t, err)
		assert.True(t, got.Nullable)
		assert.Equal(t, "point", got.Adapter.Name)
	})

	t.Run("builtin json accepts any type", func(t *testing.T) {
		got, err := r.Resolve(typ(t, "[]int"), AdapterJSON)
		require.NoError(t, err)
		assert.Equal(t, model.StorageString, got.Storage)
		assert.True(t, got.Conversion.Builtin)
		assert.Equal(t, AdapterJSON, got.Conversion.Adapter)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := r.Resolve(typ(t, "Point"), "geo")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownAdapter))
		assert.Contains(t, err.Error(), `"geo"`)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := r.Resolve(typ(t, "string"), "point")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrAdapterMismatch))
		assert.False(t, errors.Is(err, ErrUnknownAdapter))
	})

	t.Run("void with adapter", func(t *testing.T) {
		_, err := r.Resolve(model.Void, AdapterJSON)
		assert.True(t, errors.Is(err, ErrAdapterMismatch))
	})
}

func TestResolve_Unsupported(t *testing.T) {
	r := newTestRegistry(t)

	for _, in := range []string{"complex128", "[]int", "Widget", "geo.Point", "*void"} {
		t.Run(in, func(t *testing.T) {
			_, err := r.Resolve(typ(t, in), "")
			require.Error(t, err)
			var ue *UnsupportedError
			assert.True(t, errors.As(err, &ue))
			assert.True(t, errors.Is(err, ErrUnsupported))
		})
	}
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := newTestRegistry(t)

	err := r.RegisterEnum(Enum{Type: model.TypeRef{Name: "Theme"}, Underlying: "string"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	err = r.RegisterEnum(Enum{Type: model.TypeRef{Name: "string"}, Underlying: "string"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	err = r.RegisterEnum(Enum{Type: model.TypeRef{Name: "Ratio"}, Underlying: "float64"})
	assert.Error(t, err)

	err = r.RegisterAdapter(Adapter{Name: AdapterJSON, Storage: model.StorageString, Codec: "x"})
	assert.True(t, errors.Is(err, ErrDuplicate))

	err = r.RegisterAdapter(Adapter{Name: "point2", Type: model.TypeRef{Name: "Point"}, Storage: model.StorageString, Codec: "c"})
	assert.ErrorContains(t, err, `already has adapter "point"`)

	err = r.RegisterAdapter(Adapter{Name: "empty", Storage: model.StorageString})
	assert.ErrorContains(t, err, "no codec")

	err = r.RegisterAdapter(Adapter{Name: "nothing", Storage: model.StorageVoid, Codec: "c"})
	assert.Error(t, err)
}

func TestResolve_AdapterOverridesBuiltin(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.RegisterAdapter(Adapter{
		Name:    "iso",
		Type:    model.TypeRef{Name: "Duration", Qualifier: "time", ImportPath: "time"},
		Storage: model.StorageString,
		Codec:   "isoDuration",
	}))

	got, err := r.Resolve(typ(t, "time.Duration"), "")
	require.NoError(t, err)
	assert.Equal(t, model.StorageString, got.Storage)
	assert.Equal(t, model.ConvCodec, got.Conversion.Kind)
}
