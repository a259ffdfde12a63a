// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/prefgen/internal/diag"
	"github.com/albertocavalcante/prefgen/internal/resolve"
	"github.com/albertocavalcante/prefgen/internal/scan"
	"github.com/albertocavalcante/prefgen/model"
)

func ptr(s string) *string { return &s }

func group(entries ...*scan.RawEntry) *scan.RawGroup {
	for i, e := range entries {
		e.Index = i
		e.Pos = model.Pos{File: "settings.go", Line: 10 + i, Column: 2}
	}
	return &scan.RawGroup{
		Name:    "Settings",
		Class:   "SettingsPrefs",
		Pos:     model.Pos{File: "settings.go", Line: 8, Column: 6},
		Entries: entries,
	}
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func build(t *testing.T, raw *scan.RawGroup) *Result {
	t.Helper()
	return New(resolve.NewRegistry()).Build(0, "settings", raw)
}

func TestBuild_Valid(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "darkMode", Type: "bool", Default: ptr("false")},
		&scan.RawEntry{Name: "retryCount", Type: "int32", Default: ptr("3")},
		&scan.RawEntry{Name: "timeout", Type: "*time.Duration"},
		&scan.RawEntry{Name: "firstRun"},
	)
	raw.Prefix = "ui."

	res := build(t, raw)
	require.False(t, res.Failed(), "diagnostics: %v", res.Diagnostics.Items())
	assert.Zero(t, res.Diagnostics.Len())

	g := res.Group
	assert.Equal(t, "SettingsPrefs", g.Class)
	assert.Equal(t, "settings", g.Package)
	require.Len(t, g.Entries, 4)

	dark := g.Entries[0]
	assert.Equal(t, "ui.dark_mode", dark.Key)
	assert.False(t, dark.KeyExplicit)
	assert.Equal(t, "DarkMode", dark.Member)
	assert.Equal(t, model.StorageBool, dark.Storage)
	require.NotNil(t, dark.Default)
	assert.Equal(t, false, dark.Default.Value)

	retry := g.Entries[1]
	assert.Equal(t, model.StorageInt, retry.Storage)
	assert.Equal(t, int32(3), retry.Default.Value)

	timeout := g.Entries[2]
	assert.True(t, timeout.Nullable)
	assert.Equal(t, model.StorageLong, timeout.Storage)
	require.NotNil(t, timeout.Conversion)
	assert.Equal(t, model.ConvCast, timeout.Conversion.Kind)

	first := g.Entries[3]
	assert.True(t, first.Void())
	assert.Equal(t, "ui.first_run", first.Key)
}

func TestBuild_DuplicateName(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "darkMode", Type: "bool", Default: ptr("false")},
		&scan.RawEntry{Name: "darkMode", Key: ptr("dark_mode_enabled"), Type: "bool", Default: ptr("true")},
	)

	res := build(t, raw)
	assert.True(t, res.Failed())

	ds := res.Diagnostics.Sorted()
	assert.Equal(t, []diag.Code{diag.NameCollision}, codes(ds))
	assert.Equal(t, 1, ds[0].EntryIndex)
	assert.Equal(t, "Settings", ds[0].Group)

	require.Len(t, res.Group.Entries, 1)
	assert.Equal(t, "dark_mode", res.Group.Entries[0].Key)
}

func TestBuild_InvalidDefault(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "darkMode", Type: "bool"},
		&scan.RawEntry{Name: "retryCount", Type: "int", Default: ptr("abc")},
	)

	res := build(t, raw)
	assert.True(t, res.Failed())

	ds := res.Diagnostics.Sorted()
	require.Equal(t, []diag.Code{diag.InvalidDefault}, codes(ds))
	assert.Contains(t, ds[0].Message, `default "abc" is not a valid int`)
	assert.Equal(t, "retryCount", ds[0].Entry)

	require.Len(t, res.Group.Entries, 1)
	assert.Equal(t, "darkMode", res.Group.Entries[0].Name)
}

func TestBuild_ExplicitKeyVerbatim(t *testing.T) {
	raw := group(&scan.RawEntry{Name: "darkMode", Key: ptr("Dark Mode!"), Type: "bool"})
	raw.Prefix = "ui."

	res := build(t, raw)
	require.False(t, res.Failed())
	e := res.Group.Entries[0]
	assert.Equal(t, "Dark Mode!", e.Key)
	assert.True(t, e.KeyExplicit)
}

func TestBuild_DuplicateKey(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "a", Key: ptr("k"), Type: "bool"},
		&scan.RawEntry{Name: "b", Key: ptr("k"), Type: "bool"},
		&scan.RawEntry{Name: "c", Key: ptr("K"), Type: "bool"},
	)

	res := build(t, raw)
	ds := res.Diagnostics.Sorted()
	require.Equal(t, []diag.Code{diag.DuplicateKey}, codes(ds))
	assert.Contains(t, ds[0].Message, `already used by entry "a"`)

	require.Len(t, res.Group.Entries, 2)
	assert.Equal(t, []string{"k", "K"}, res.Group.Keys())
}

func TestBuild_KeysInjective(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "dark_mode", Type: "bool"},
		&scan.RawEntry{Name: "darkMode", Type: "bool"},
	)

	res := build(t, raw)
	assert.True(t, res.Failed())
	// Both the derived key and the member collide; one error per entry.
	ds := res.Diagnostics.Sorted()
	errs := 0
	for _, d := range ds {
		if d.IsError() {
			assert.Equal(t, 1, d.EntryIndex)
			errs++
		}
	}
	assert.Equal(t, 2, errs)
	assert.Len(t, res.Group.Entries, 1)
	assert.Equal(t, diag.NameAdjusted, ds[0].Code)
}

func TestBuild_GeneratedNameCollisions(t *testing.T) {
	tests := []struct {
		name    string
		first   string
		second  string
		message string
	}{
		{"key constant", "serverURL", "serverUrl", "generated key constant SERVER_URL_KEY collides with entry \"serverURL\""},
		{"kotlin member", "URLValue", "urlValue", "generated Kotlin member urlValue collides with entry \"URLValue\""},
		{"is form in fluent style", "on", "isOn", "generated member IsOn collides with entry \"on\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := group(
				&scan.RawEntry{Name: tt.first, Key: ptr("a"), Type: "bool"},
				&scan.RawEntry{Name: tt.second, Key: ptr("b"), Type: "bool"},
			)

			res := build(t, raw)
			assert.True(t, res.Failed())
			ds := res.Diagnostics.Sorted()
			require.Len(t, ds, 1, "diagnostics: %v", ds)
			assert.Equal(t, diag.NameCollision, ds[0].Code)
			assert.Equal(t, 1, ds[0].EntryIndex)
			assert.Contains(t, ds[0].Message, tt.message)
			require.Len(t, res.Group.Entries, 1)
			assert.Equal(t, tt.first, res.Group.Entries[0].Name)
		})
	}
}

func TestBuild_EntryErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry *scan.RawEntry
		code  diag.Code
	}{
		{"bad name", &scan.RawEntry{Name: "1st", Type: "bool"}, diag.InvalidName},
		{"empty name", &scan.RawEntry{Name: "", Type: "bool"}, diag.InvalidName},
		{"punctuation", &scan.RawEntry{Name: "a/b", Type: "bool"}, diag.InvalidName},
		{"empty key", &scan.RawEntry{Name: "a", Key: ptr(""), Type: "bool"}, diag.InvalidKey},
		{"unsupported", &scan.RawEntry{Name: "a", Type: "complex128"}, diag.UnsupportedType},
		{"malformed type", &scan.RawEntry{Name: "a", Type: "**int"}, diag.UnsupportedType},
		{"nullable void", &scan.RawEntry{Name: "a", Type: "*void"}, diag.UnsupportedType},
		{"unknown adapter", &scan.RawEntry{Name: "a", Type: "string", Adapter: "nope"}, diag.UnsupportedType},
		{"reserved", &scan.RawEntry{Name: "keys", Type: "bool"}, diag.NameCollision},
		{"reserved accessor", &scan.RawEntry{Name: "store", Type: "bool"}, diag.NameCollision},
		{"backing field", &scan.RawEntry{Name: "prefs", Type: "bool"}, diag.NameCollision},
		{"editor", &scan.RawEntry{Name: "edit", Type: "bool"}, diag.NameCollision},
		{"bool default", &scan.RawEntry{Name: "a", Type: "bool", Default: ptr("yes")}, diag.InvalidDefault},
		{"int32 range", &scan.RawEntry{Name: "a", Type: "int32", Default: ptr("3000000000")}, diag.InvalidDefault},
		{"int8 range", &scan.RawEntry{Name: "a", Type: "int8", Default: ptr("200")}, diag.InvalidDefault},
		{"uint16 negative", &scan.RawEntry{Name: "a", Type: "uint16", Default: ptr("-1")}, diag.InvalidDefault},
		{"float nan", &scan.RawEntry{Name: "a", Type: "float32", Default: ptr("NaN")}, diag.InvalidDefault},
		{"set duplicate", &scan.RawEntry{Name: "a", Type: "[]string", Default: ptr("[x, x]")}, diag.InvalidDefault},
		{"duration", &scan.RawEntry{Name: "a", Type: "time.Duration", Default: ptr("soon")}, diag.InvalidDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := build(t, group(tt.entry))
			assert.True(t, res.Failed())
			ds := res.Diagnostics.Sorted()
			require.Len(t, ds, 1, "diagnostics: %v", ds)
			assert.Equal(t, tt.code, ds[0].Code)
			assert.Equal(t, diag.SevError, ds[0].Severity)
			assert.Equal(t, 0, ds[0].EntryIndex)
			assert.Empty(t, res.Group.Entries)
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	tests := []struct {
		typ   string
		raw   string
		value any
	}{
		{"bool", "true", true},
		{"int32", "0x10", int32(16)},
		{"rune", "'é'", int32('é')},
		{"byte", "255", int32(255)},
		{"int64", "-9223372036854775808", int64(-9223372036854775808)},
		{"int", "42", int64(42)},
		{"uint32", "4294967295", int64(4294967295)},
		{"float32", "1.5", float32(1.5)},
		{"float64", "0.25", int64(0x3FD0000000000000)},
		{"string", "hello", "hello"},
		{"time.Duration", "1m30s", int64(90e9)},
		{"time.Duration", "1000", int64(1000)},
		{"[]string", `["a", "b"]`, []string{"a", "b"}},
		{"[]string", "[]", []string{}},
		{"*int32", "7", int32(7)},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"="+tt.raw, func(t *testing.T) {
			res := build(t, group(&scan.RawEntry{Name: "v", Type: tt.typ, Default: ptr(tt.raw)}))
			require.False(t, res.Failed(), "diagnostics: %v", res.Diagnostics.Items())
			e := res.Group.Entries[0]
			require.NotNil(t, e.Default)
			assert.Equal(t, tt.raw, e.Default.Raw)
			assert.Equal(t, tt.value, e.Default.Value)
		})
	}
}

func TestBuild_Warnings(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "first-run", Default: ptr("true")},
		&scan.RawEntry{Name: "ok", Type: "bool"},
	)

	res := build(t, raw)
	assert.False(t, res.Failed())
	ds := res.Diagnostics.Sorted()
	assert.Equal(t, []diag.Code{diag.NameAdjusted, diag.DefaultIgnored}, codes(ds))
	require.Len(t, res.Group.Entries, 2)
	assert.Equal(t, "FirstRun", res.Group.Entries[0].Member)
	assert.Equal(t, "first_run", res.Group.Entries[0].Key)
	assert.Nil(t, res.Group.Entries[0].Default)
}

func TestBuild_InvalidGroup(t *testing.T) {
	tests := []struct {
		name  string
		class string
		pkg   string
	}{
		{"bad class", "1Prefs", "settings"},
		{"class is keyword", "func", "settings"},
		{"class equals name", "Settings", "settings"},
		{"no package", "SettingsPrefs", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := group(&scan.RawEntry{Name: "a", Type: "bool"})
			raw.Class = tt.class
			res := New(resolve.NewRegistry()).Build(2, tt.pkg, raw)
			assert.True(t, res.Failed())
			assert.Nil(t, res.Group)
			ds := res.Diagnostics.Sorted()
			require.Len(t, ds, 1)
			assert.Equal(t, diag.InvalidGroup, ds[0].Code)
			assert.Equal(t, 2, ds[0].GroupIndex)
		})
	}
}

func TestBuild_InvalidGroupStillChecksEntries(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "On", Type: "bool"},
		&scan.RawEntry{Name: "RetryCount", Type: "int32", Default: ptr("abc")},
		&scan.RawEntry{Name: "Small", Type: "int8", Default: ptr("300")},
	)
	raw.Name = "Flags"
	raw.Class = "Flags"

	res := build(t, raw)
	assert.True(t, res.Failed())
	assert.Nil(t, res.Group)
	ds := res.Diagnostics.Sorted()
	assert.Equal(t, []diag.Code{diag.InvalidGroup, diag.InvalidDefault, diag.InvalidDefault}, codes(ds))
	assert.Equal(t, "RetryCount", ds[1].Entry)
	assert.Equal(t, "Small", ds[2].Entry)
}

func TestBuild_ScanDiagnosticsSeedBag(t *testing.T) {
	raw := group(
		&scan.RawEntry{Name: "a", Type: "bool"},
		&scan.RawEntry{Name: "b", Type: "bool"},
	)
	raw.Diagnostics = []diag.Diagnostic{{
		Severity:   diag.SevError,
		Code:       diag.ScanError,
		Message:    "unknown attribute",
		Entry:      "b",
		GroupIndex: diag.NoIndex,
		EntryIndex: 1,
	}}

	res := New(resolve.NewRegistry()).Build(3, "settings", raw)
	assert.True(t, res.Failed())
	ds := res.Diagnostics.Items()
	require.Len(t, ds, 1)
	assert.Equal(t, 3, ds[0].GroupIndex)
	assert.Equal(t, "Settings", ds[0].Group)

	require.Len(t, res.Group.Entries, 1)
	assert.Equal(t, "a", res.Group.Entries[0].Name)
}

func TestBuild_EnumsAndAdapters(t *testing.T) {
	bag := diag.NewBag()
	reg := Registry([]*scan.Result{{
		Enums: []*scan.RawEnum{{
			Name:       "Theme",
			Underlying: "string",
			Consts:     []scan.RawConst{{Name: "ThemeLight", Value: "light"}, {Name: "ThemeDark", Value: "dark"}},
		}},
		Adapters: []*scan.RawAdapter{{
			Name:    "point",
			Type:    "geo.Point",
			Storage: "string",
			Codec:   "pointCodec",
			Imports: map[string]string{"geo": "example.com/app/geo"},
		}},
	}}, bag)
	require.Zero(t, bag.Len(), "registry diagnostics: %v", bag.Items())

	raw := group(
		&scan.RawEntry{Name: "theme", Type: "Theme", Default: ptr("ThemeDark")},
		&scan.RawEntry{Name: "mode", Type: "Theme", Default: ptr("light")},
		&scan.RawEntry{Name: "bad", Type: "Theme", Default: ptr("blue")},
		&scan.RawEntry{Name: "home", Type: "geo.Point", Default: ptr("0,0")},
		&scan.RawEntry{Name: "blob", Type: "Widget", Adapter: "json"},
		&scan.RawEntry{Name: "widget", Type: "Widget"},
	)
	raw.Imports = map[string]string{"geo": "example.com/app/geo"}

	res := New(reg).Build(0, "settings", raw)
	ds := res.Diagnostics.Sorted()
	require.Len(t, ds, 2, "diagnostics: %v", ds)
	assert.Equal(t, diag.InvalidDefault, ds[0].Code)
	assert.Contains(t, ds[0].Message, "not one of light, dark")
	assert.Equal(t, diag.UnsupportedType, ds[1].Code)

	require.Len(t, res.Group.Entries, 4)
	theme := res.Group.Entries[0]
	assert.Equal(t, model.StorageString, theme.Storage)
	assert.Equal(t, "dark", theme.Default.Value)
	assert.Equal(t, "light", res.Group.Entries[1].Default.Value)

	home := res.Group.Entries[2]
	assert.Equal(t, model.ConvCodec, home.Conversion.Kind)
	assert.Equal(t, "pointCodec", home.Conversion.Codec)
	assert.True(t, home.Fallible())
	assert.Equal(t, "example.com/app/geo", home.Declared.ImportPath)

	blob := res.Group.Entries[3]
	assert.Equal(t, resolve.AdapterJSON, blob.Conversion.Adapter)
	assert.True(t, blob.Conversion.Builtin)
	assert.Equal(t, model.StorageString, blob.Storage)
}

func TestRegistry_Errors(t *testing.T) {
	bag := diag.NewBag()
	Registry([]*scan.Result{
		{Enums: []*scan.RawEnum{{Name: "Theme", Underlying: "string"}}},
		{
			Enums: []*scan.RawEnum{
				{Name: "Theme", Underlying: "string"},
				{Name: "Ratio", Underlying: "float64"},
			},
			Adapters: []*scan.RawAdapter{
				{Name: "a", Type: "**T", Storage: "string", Codec: "c"},
				{Name: "b", Type: "T", Storage: "blob", Codec: "c"},
				{Name: "json", Type: "T", Storage: "string", Codec: "c"},
			},
		},
	}, bag)

	ds := bag.Sorted()
	require.Len(t, ds, 5, "diagnostics: %v", ds)
	for _, d := range ds {
		assert.Equal(t, diag.ScanError, d.Code)
		assert.Equal(t, diag.NoIndex, d.GroupIndex)
	}
}
