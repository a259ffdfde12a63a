// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/prefgen/internal/diag"
)

const settingsSrc = `package settings

import (
	"time"

	"example.com/app/geo"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Level int8

const (
	LevelLow Level = iota
	LevelHigh
)

//prefs:adapter point type=geo.Point
var pointCodec = geo.PointCodec{}

// Settings holds user preferences.
//
//prefs:group prefix=ui.
type Settings interface {
	// DarkMode switches the UI theme.
	//prefs:entry default=false
	DarkMode() bool

	//prefs:entry key=ui_theme default=dark
	Theme() Theme

	Timeout() *time.Duration

	//prefs:entry adapter=point
	Home() geo.Point

	// FirstRun marks that onboarding has been shown.
	FirstRun()
}
`

func scanGo(t *testing.T, src string) *Result {
	t.Helper()
	res, err := GoBytes("settings.go", []byte(src)).Scan()
	require.NoError(t, err)
	return res
}

func TestGoSource_Group(t *testing.T) {
	res := scanGo(t, settingsSrc)

	assert.Equal(t, "settings", res.Package)
	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Groups, 1)

	g := res.Groups[0]
	assert.Equal(t, "Settings", g.Name)
	assert.Equal(t, "SettingsPrefs", g.Class)
	assert.Equal(t, "ui.", g.Prefix)
	assert.Equal(t, "Settings holds user preferences.", g.Doc)
	assert.Equal(t, "settings.go", g.Pos.File)
	assert.Equal(t, "example.com/app/geo", g.Imports["geo"])
	assert.Empty(t, g.Diagnostics)

	require.Len(t, g.Entries, 5)

	dark := g.Entries[0]
	assert.Equal(t, "DarkMode", dark.Name)
	assert.Equal(t, "bool", dark.Type)
	assert.Nil(t, dark.Key)
	require.NotNil(t, dark.Default)
	assert.Equal(t, "false", *dark.Default)
	assert.Equal(t, "DarkMode switches the UI theme.", dark.Doc)
	assert.Equal(t, 0, dark.Index)

	theme := g.Entries[1]
	require.NotNil(t, theme.Key)
	assert.Equal(t, "ui_theme", *theme.Key)
	assert.Equal(t, "Theme", theme.Type)

	timeout := g.Entries[2]
	assert.Equal(t, "*time.Duration", timeout.Type)
	assert.Nil(t, timeout.Default)

	home := g.Entries[3]
	assert.Equal(t, "geo.Point", home.Type)
	assert.Equal(t, "point", home.Adapter)

	first := g.Entries[4]
	assert.True(t, first.Void())
	assert.Equal(t, 4, first.Index)
}

func TestGoSource_EnumsAndAdapters(t *testing.T) {
	res := scanGo(t, settingsSrc)

	require.Len(t, res.Enums, 2)
	theme := res.Enums[0]
	assert.Equal(t, "Theme", theme.Name)
	assert.Equal(t, "string", theme.Underlying)
	assert.Equal(t, []string{"light", "dark"}, theme.Values())
	assert.Equal(t, "ThemeDark", theme.Consts[1].Name)

	level := res.Enums[1]
	assert.Equal(t, "int8", level.Underlying)
	assert.True(t, level.Open)
	assert.Nil(t, level.Values())

	require.Len(t, res.Adapters, 1)
	a := res.Adapters[0]
	assert.Equal(t, "point", a.Name)
	assert.Equal(t, "geo.Point", a.Type)
	assert.Equal(t, "string", a.Storage)
	assert.Equal(t, "pointCodec", a.Codec)
}

func TestGoSource_AdapterOnType(t *testing.T) {
	res := scanGo(t, `package p

//prefs:adapter rgb type=Color storage=long
type rgbCodec struct{}
`)
	require.Len(t, res.Adapters, 1)
	assert.Equal(t, "rgbCodec{}", res.Adapters[0].Codec)
	assert.Equal(t, "long", res.Adapters[0].Storage)
}

func TestGoSource_ConversionConsts(t *testing.T) {
	res := scanGo(t, `package p

type Mode string

const Fast = Mode("fast")

const (
	Slow, Safe = Mode("slow"), Mode("safe")
)
`)
	require.Len(t, res.Enums, 1)
	assert.Equal(t, []string{"fast", "slow", "safe"}, res.Enums[0].Values())
}

func TestGoSource_ScanErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		fileLevel bool
		message   string
	}{
		{
			name: "group on struct",
			src: `package p
//prefs:group
type S struct{}
`,
			fileLevel: true,
			message:   "requires an interface type",
		},
		{
			name: "entry on func",
			src: `package p
//prefs:entry key=x
func F() {}
`,
			fileLevel: true,
			message:   "not attached to a method of a //prefs:group interface",
		},
		{
			name: "entry in plain interface",
			src: `package p
type I interface {
	//prefs:entry
	M() bool
}
`,
			fileLevel: true,
			message:   "which is not a //prefs:group",
		},
		{
			name: "method with params",
			src: `package p
//prefs:group
type S interface {
	M(x int) bool
}
`,
			message: "must not take parameters",
		},
		{
			name: "two results",
			src: `package p
//prefs:group
type S interface {
	M() (bool, error)
}
`,
			message: "at most one value",
		},
		{
			name: "embedded",
			src: `package p
//prefs:group
type S interface {
	fmt.Stringer
}
`,
			message: "embedded element fmt.Stringer",
		},
		{
			name: "bad attribute",
			src: `package p
//prefs:group
type S interface {
	//prefs:entry dflt=1
	M() int32
}
`,
			message: `unknown attribute "dflt"`,
		},
		{
			name: "adapter without type",
			src: `package p
//prefs:adapter a
var c = 1
`,
			fileLevel: true,
			message:   "missing type attribute",
		},
		{
			name: "entry on var",
			src: `package p
//prefs:entry
var c = 1
`,
			fileLevel: true,
			message:   "not allowed on a var declaration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scanGo(t, tt.src)

			var ds []diag.Diagnostic
			if tt.fileLevel {
				ds = res.Diagnostics
			} else {
				require.Len(t, res.Groups, 1)
				ds = res.Groups[0].Diagnostics
			}
			require.Len(t, ds, 1, "diagnostics: %v", ds)
			assert.Equal(t, diag.ScanError, ds[0].Code)
			assert.Equal(t, diag.SevError, ds[0].Severity)
			assert.Contains(t, ds[0].Message, tt.message)
			assert.True(t, ds[0].Pos.IsValid())
		})
	}
}

func TestGoSource_ScanContinuesAfterError(t *testing.T) {
	res := scanGo(t, `package p

//prefs:group
type Bad struct{}

//prefs:group
type Good interface {
	M(x int) bool
	N() bool
}
`)
	require.Len(t, res.Diagnostics, 1)
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	require.Len(t, g.Diagnostics, 1)
	assert.Equal(t, 0, g.Diagnostics[0].EntryIndex)
	require.Len(t, g.Entries, 1)
	assert.Equal(t, "N", g.Entries[0].Name)
	assert.Equal(t, 1, g.Entries[0].Index)
}

func TestGoSource_SyntaxError(t *testing.T) {
	_, err := GoBytes("bad.go", []byte("package p\nfunc {")).Scan()
	assert.Error(t, err)
}

func TestGoDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("settings.go", settingsSrc)
	write("settings_test.go", "package settings\n\n//prefs:group\ntype T interface{}\n")
	write("settings_prefs.go", "// Code generated by prefgen. DO NOT EDIT.\n\npackage settings\n\n//prefs:group\ntype G interface{}\n")
	write("README.md", "not go")

	src, err := GoDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, src.Name())

	res, err := src.Scan()
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, "Settings", res.Groups[0].Name)
}

func TestGoDir_Missing(t *testing.T) {
	_, err := GoDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
