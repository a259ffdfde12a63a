// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package naming implements the transform from declared entry names to
// storage keys and generated member names.
//
// A name is NFC-normalized and split into words at separators ('_', '-',
// '.', ' ') and at case boundaries ("darkMode" -> dark, Mode;
// "HTTPServer" -> HTTP, Server). Digits stay with the preceding word
// ("ipv6Enabled" -> ipv6, Enabled). Keys join the lowercased words with
// '_'; members concatenate the words with their first letter uppercased.
//
// Entries of one group must not produce clashing generated names on any
// target. Claims lists every name an entry occupies across targets,
// including the Kotlin key constant. Accessor forms are claimed regardless
// of the accessor style, so a schema that builds in one style builds in the
// other ("On" and "IsOn" always collide).
package naming

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Reserved are member names taken by group-level accessors and by the
// backing fields of generated classes.
var Reserved = []string{"Store", "Keys", "Clear", "Edit", "Prefs"}

// accessorPrefixes are the prefixes an entry member may be emitted with.
var accessorPrefixes = []string{"", "Get", "Is", "Set", "Has", "Remove"}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

// Words splits name into its words.
func Words(name string) []string {
	name = norm.NFC.String(name)

	var words []string
	for _, seg := range strings.FieldsFunc(name, isSeparator) {
		runes := []rune(seg)
		start := 0
		for i := 1; i < len(runes); i++ {
			prev, cur := runes[i-1], runes[i]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(cur):
			case unicode.IsDigit(prev) && unicode.IsUpper(cur):
			case unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			default:
				continue
			}
			words = append(words, string(runes[start:i]))
			start = i
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

// Valid reports whether name can be used as an entry name: it starts with
// a letter and contains only letters, digits and separators.
func Valid(name string) bool {
	name = norm.NFC.String(name)
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !isSeparator(r) {
			return false
		}
	}
	return true
}

// Snake returns the snake_case form of name ("darkMode" -> "dark_mode").
func Snake(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// Key derives the storage key of an entry without an explicit key.
func Key(prefix, name, suffix string) string {
	return prefix + Snake(name) + suffix
}

// Member returns the exported member name for name ("dark_mode" -> "DarkMode").
// Acronyms keep their case ("serverURL" -> "ServerURL").
func Member(name string) string {
	var sb strings.Builder
	for _, w := range Words(name) {
		sb.WriteString(Capitalize(w))
	}
	return sb.String()
}

// LowerCamel returns the lowerCamelCase form of name. A leading acronym is
// lowered as a whole ("URLValue" -> "urlValue").
func LowerCamel(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		sb.WriteString(Capitalize(w))
	}
	return sb.String()
}

// Adjusted reports whether the transform changes name beyond the case of
// its first letter, i.e. whether name is not already in camel form.
func Adjusted(name string) bool {
	return Member(name) != Capitalize(name)
}

// Accessors returns every generated method name an entry with the given
// member name may occupy, in a fixed order.
func Accessors(member string) []string {
	names := make([]string, len(accessorPrefixes))
	for i, p := range accessorPrefixes {
		names[i] = p + member
	}
	return names
}

// Claim is one generated name taken by an entry.
type Claim struct {
	Form string // kind of name, for diagnostics
	Name string
}

// Claims returns the names an entry with the given member name occupies.
func Claims(member string) []Claim {
	var claims []Claim
	for _, name := range Accessors(member) {
		claims = append(claims, Claim{Form: "member", Name: name})
	}
	for _, name := range Accessors(member) {
		claims = append(claims, Claim{Form: "Kotlin member", Name: LowerCamel(name)})
	}
	return append(claims, Claim{Form: "key constant", Name: KeyConst(member)})
}

// KeyConst returns the Kotlin companion constant holding the key of member.
// It is not injective: "ServerURL" and "ServerUrl" both give SERVER_URL_KEY.
func KeyConst(member string) string {
	return CamelToScreamingSnake(member) + "_KEY"
}

// IsReserved reports whether member is taken by a group-level accessor.
func IsReserved(member string) bool {
	for _, r := range Reserved {
		if member == r {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether s is a valid Go identifier that is not a
// keyword.
func IsIdentifier(s string) bool {
	return token.IsIdentifier(s)
}

// Capitalize returns name with the first letter uppercased.
// Returns empty string for empty input.
func Capitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ExportName returns an exported Go identifier for name.
// Names starting with "_" are prefixed with "X" (e.g., "_foo" -> "Xfoo").
// All other names get their first letter uppercased.
func ExportName(name string) string {
	if name == "" {
		return ""
	}
	if name[0] == '_' {
		return "X" + name[1:]
	}
	return Capitalize(name)
}

// CamelToScreamingSnake converts a CamelCase name to SCREAMING_SNAKE_CASE.
// Acronyms stay together ("ServerURL" -> "SERVER_URL").
func CamelToScreamingSnake(name string) string {
	return strings.ToUpper(Snake(name))
}
