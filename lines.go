// Copyright 2025 The gfmpipe Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package gfmpipe classifies and rewrites lines of [GitHub-Flavored Markdown].
//
// The package provides the building blocks of a Markdown round-trip
// pipeline: an HTML block classifier covering the seven GFM block types,
// a scanner that turns a document's lines into non-overlapping HTML block
// ranges, table row and separator detectors, a cache of backslash-escape
// patterns, and the GFM tagfilter for disallowed raw HTML.
//
// [GitHub-Flavored Markdown]: https://github.github.com/gfm/
package gfmpipe

import "strings"

// tabStopSize is the multiple of columns that a [tab] advances to.
//
// [tab]: https://spec.commonmark.org/0.30/#tabs
const tabStopSize = 4

// codeIndentLimit is the indentation width at which a line stops being
// eligible for HTML block starts and becomes indented code instead.
const codeIndentLimit = 4

// SplitLines splits text on newlines.
// It is the inverse of [JoinLines]: no trailing-newline semantics are
// implied beyond the split itself.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines joins lines with newlines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// IsBlankLine reports whether line contains only spaces, tabs,
// or line endings.
func IsBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		if b := line[i]; !(b == '\r' || b == '\n' || b == ' ' || b == '\t') {
			return false
		}
	}
	return true
}

// indentWidth returns the column width of the leading space
// in line, with tabs advancing to the next tab stop.
func indentWidth(line string) int {
	w := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			w++
		case '\t':
			w += tabStopSize - w%tabStopSize
		default:
			return w
		}
	}
	return w
}

func trimIndent(line string) string {
	return strings.TrimLeft(line, " \t")
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toLowerASCII(s[i]) != toLowerASCII(prefix[i]) {
			return false
		}
	}
	return true
}

func caseInsensitiveContains(s, search string) bool {
	for i := 0; i+len(search) <= len(s); i++ {
		if hasCaseInsensitivePrefix(s[i:], search) {
			return true
		}
	}
	return false
}
