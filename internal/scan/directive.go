// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package scan

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Directive kinds.
const (
	KindGroup   = "group"
	KindEntry   = "entry"
	KindAdapter = "adapter"
)

const directivePrefix = "//prefs:"

// directivePattern matches the head of a directive comment.
var directivePattern = regexp.MustCompile(`^//prefs:([a-z]+)(?:\s+(.*))?$`)

// allowedAttrs lists the attributes accepted by each directive kind.
var allowedAttrs = map[string][]string{
	KindGroup:   {"name", "class", "prefix", "suffix"},
	KindEntry:   {"key", "default", "adapter"},
	KindAdapter: {"type", "storage"},
}

// Directive is one parsed //prefs: comment.
type Directive struct {
	Kind string
	// Args are positional arguments, in order.
	Args []string
	// Attrs are name=value attributes.
	Attrs map[string]string
}

// IsDirective reports whether comment is a //prefs: directive.
func IsDirective(comment string) bool {
	return strings.HasPrefix(comment, directivePrefix)
}

// ParseDirective parses a //prefs: comment line.
//
//	//prefs:<kind> [arg ...] [name=value ...]
//
// Values may be Go-quoted strings ("..." or `...`).
func ParseDirective(comment string) (*Directive, error) {
	m := directivePattern.FindStringSubmatch(strings.TrimRightFunc(comment, unicode.IsSpace))
	if m == nil {
		return nil, fmt.Errorf("malformed directive %q", comment)
	}
	d := &Directive{Kind: m[1], Attrs: make(map[string]string)}
	allowed, ok := allowedAttrs[d.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown directive //prefs:%s", d.Kind)
	}

	rest := m[2]
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}
		name, value, tail, isAttr, err := nextToken(rest)
		if err != nil {
			return nil, fmt.Errorf("//prefs:%s: %w", d.Kind, err)
		}
		rest = tail
		if !isAttr {
			if len(d.Attrs) > 0 {
				return nil, fmt.Errorf("//prefs:%s: argument %q after attributes", d.Kind, value)
			}
			d.Args = append(d.Args, value)
			continue
		}
		if !slices.Contains(allowed, name) {
			return nil, fmt.Errorf("//prefs:%s: unknown attribute %q (allowed: %s)", d.Kind, name, strings.Join(allowed, ", "))
		}
		if _, dup := d.Attrs[name]; dup {
			return nil, fmt.Errorf("//prefs:%s: attribute %q given twice", d.Kind, name)
		}
		d.Attrs[name] = value
	}

	switch d.Kind {
	case KindAdapter:
		if len(d.Args) != 1 {
			return nil, fmt.Errorf("//prefs:adapter: want exactly one adapter name, got %d", len(d.Args))
		}
	default:
		if len(d.Args) > 0 {
			return nil, fmt.Errorf("//prefs:%s: unexpected argument %q", d.Kind, d.Args[0])
		}
	}
	return d, nil
}

// Attr returns the attribute name, if present.
func (d *Directive) Attr(name string) (string, bool) {
	v, ok := d.Attrs[name]
	return v, ok
}

// nextToken consumes one argument or attribute from s.
func nextToken(s string) (name, value, rest string, isAttr bool, err error) {
	if s[0] == '"' || s[0] == '`' {
		v, tail, qerr := unquotePrefix(s)
		if qerr != nil {
			return "", "", "", false, qerr
		}
		return "", v, tail, false, nil
	}

	word := s
	if i := strings.IndexFunc(s, func(r rune) bool { return r == '=' || unicode.IsSpace(r) }); i >= 0 {
		word = s[:i]
	}
	rest = s[len(word):]

	if !strings.HasPrefix(rest, "=") {
		return "", word, rest, false, nil
	}

	if word == "" {
		return "", "", "", false, fmt.Errorf("attribute without a name near %q", s)
	}
	rest = rest[1:]
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return word, "", rest, true, nil
	}
	if rest[0] == '"' || rest[0] == '`' {
		v, tail, qerr := unquotePrefix(rest)
		if qerr != nil {
			return "", "", "", false, fmt.Errorf("attribute %q: %w", word, qerr)
		}
		if tail != "" && !unicode.IsSpace(rune(tail[0])) {
			return "", "", "", false, fmt.Errorf("attribute %q: unexpected text after quoted value", word)
		}
		return word, v, tail, true, nil
	}
	end := strings.IndexFunc(rest, unicode.IsSpace)
	if end < 0 {
		end = len(rest)
	}
	return word, rest[:end], rest[end:], true, nil
}

func unquotePrefix(s string) (value, rest string, err error) {
	q, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", fmt.Errorf("bad quoted value near %q", s)
	}
	v, err := strconv.Unquote(q)
	if err != nil {
		return "", "", fmt.Errorf("bad quoted value %s: %w", q, err)
	}
	return v, s[len(q):], nil
}
