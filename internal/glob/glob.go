// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package glob compiles glob patterns into anchored path matchers.
//
// Supported syntax:
//
//	*       any run of characters except "/"
//	**      any run of characters including "/" (whole segment only)
//	{a,b}   alternation
//
// A pattern starting with "/" is matched against absolute paths as-is.
// Any other pattern is resolved relative to a base directory.
package glob

import (
	"path"
	"regexp"
	"strings"
)

// Rewrite rules applied to the regexp-escaped pattern.
var (
	globstarRe = regexp.MustCompile(`(^|/)\\\*\\\*(?:/|$)`)
	wildcardRe = regexp.MustCompile(`\\\*`)
	setRe      = regexp.MustCompile(`\\\{(.*?)\\\}`)
)

// Matcher reports whether a path matches a compiled glob.
type Matcher struct {
	re *regexp.Regexp
}

// Compile turns pattern into a Matcher. Relative patterns are prefixed with
// base so that they match absolute paths under it.
func Compile(pattern, base string) (*Matcher, error) {
	absolute := strings.HasPrefix(pattern, "/")
	src := EscapeRegexp(path.Clean(pattern))

	for {
		m := globstarRe.FindStringSubmatchIndex(src)
		if m == nil {
			break
		}
		src = src[:m[0]] + src[m[2]:m[3]] + ".*" + src[m[1]:]
	}

	for {
		m := wildcardRe.FindStringIndex(src)
		if m == nil {
			break
		}
		src = src[:m[0]] + "[^/]*" + src[m[1]:]
	}

	for {
		m := setRe.FindStringSubmatchIndex(src)
		if m == nil {
			break
		}
		members := strings.ReplaceAll(src[m[2]:m[3]], ",", "|")
		src = src[:m[0]] + "(?:" + members + ")" + src[m[1]:]
	}

	prefix := ""
	if !absolute {
		prefix = EscapeRegexp(EnsureTrailingSlash(path.Clean(base)))
	}

	re, err := regexp.Compile("^" + prefix + src + "$")
	if err != nil {
		return nil, err
	}
	return &Matcher{re: re}, nil
}

// Match reports whether p matches the glob.
func (m *Matcher) Match(p string) bool {
	return m.re.MatchString(p)
}

// String returns the compiled regular expression.
func (m *Matcher) String() string { return m.re.String() }

// EscapeRegexp escapes all regular expression metacharacters in s.
func EscapeRegexp(s string) string {
	return regexp.QuoteMeta(s)
}

// EnsureTrailingSlash appends "/" to p unless it already ends with one.
func EnsureTrailingSlash(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}
