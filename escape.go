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

package gfmpipe

import (
	"regexp"
	"sync"
)

// An EscapeCache memoizes the compiled backslash-escape patterns for
// single characters. Patterns are compiled on first use and kept for
// the life of the cache; cardinality is bounded by the small set of
// Markdown special characters, so there is no eviction.
//
// The zero value is not usable; call [NewEscapeCache]. A cache is safe
// for concurrent use.
type EscapeCache struct {
	mu       sync.RWMutex
	patterns map[byte]escapePatterns
}

type escapePatterns struct {
	single   *regexp.Regexp // \X
	double   *regexp.Regexp // \\X
	combined *regexp.Regexp // \\X or \X, double preferred
}

// NewEscapeCache returns an empty cache.
func NewEscapeCache() *EscapeCache {
	return &EscapeCache{patterns: make(map[byte]escapePatterns)}
}

// Single returns the compiled pattern matching a single-escaped ch
// (a backslash followed by ch).
func (c *EscapeCache) Single(ch byte) *regexp.Regexp {
	return c.get(ch).single
}

// Double returns the compiled pattern matching a double-escaped ch
// (two backslashes followed by ch).
func (c *EscapeCache) Double(ch byte) *regexp.Regexp {
	return c.get(ch).double
}

func (c *EscapeCache) get(ch byte) escapePatterns {
	c.mu.RLock()
	p, ok := c.patterns[ch]
	c.mu.RUnlock()
	if ok {
		return p
	}

	quoted := regexp.QuoteMeta(string(ch))
	p = escapePatterns{
		single:   regexp.MustCompile(`\\` + quoted),
		double:   regexp.MustCompile(`\\\\` + quoted),
		combined: regexp.MustCompile(`\\\\` + quoted + `|\\` + quoted),
	}
	c.mu.Lock()
	c.patterns[ch] = p
	c.mu.Unlock()
	return p
}

// Unescape removes one level of backslash escaping from every
// occurrence of the given characters in s. Both escape forms are
// handled in a single left-to-right pass, the double-escaped form
// taking precedence at each position, so `\\X` becomes `\X` (not `X`)
// while `\X` becomes `X`. Text containing neither form is returned
// unchanged, which makes the operation idempotent on its own
// escape-free output.
func (c *EscapeCache) Unescape(s string, chars ...byte) string {
	for _, ch := range chars {
		if !containsEscape(s, ch) {
			continue
		}
		// Dropping the leading backslash of the match handles both
		// forms: `\\X` keeps `\X`, `\X` keeps `X`.
		s = c.get(ch).combined.ReplaceAllStringFunc(s, func(m string) string {
			return m[1:]
		})
	}
	return s
}

func containsEscape(s string, ch byte) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '\\' && s[i+1] == ch {
			return true
		}
	}
	return false
}
