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

package pipeline

import (
	"github.com/quillmark/gfmpipe"
)

// defaultTableUnescapeChars are the characters literal inside table
// cells that the serializer escapes everywhere.
var defaultTableUnescapeChars = []byte{'|', '*', '_', '~'}

// A TableContextPlugin unescapes characters only on lines that belong
// to an actual table. Membership is stricter than "the line looks like
// a row": a table opens where a row is immediately followed by a valid
// separator of the same arity, and continues through contiguous row or
// separator lines. Prose containing a stray pipe is never touched.
type TableContextPlugin struct {
	chars []byte
	cache *gfmpipe.EscapeCache
}

// NewTableContextPlugin returns the pass with the given characters to
// unescape; nil means pipe, asterisk, underscore, and tilde. A nil
// cache gets a private one.
func NewTableContextPlugin(cache *gfmpipe.EscapeCache, chars ...byte) *TableContextPlugin {
	if cache == nil {
		cache = gfmpipe.NewEscapeCache()
	}
	if len(chars) == 0 {
		chars = defaultTableUnescapeChars
	}
	return &TableContextPlugin{chars: chars, cache: cache}
}

// Name implements [Plugin].
func (p *TableContextPlugin) Name() string { return "tableContextEscaper" }

// Transform unescapes the configured characters on in-table lines.
// Both escape forms are handled, double-escape taking precedence, so a
// cell's `\\|` resolves to `\|` and its `\|` to `|`. Running the pass
// on its own output is a no-op: an unescaped pipe has no backslash left
// to strip.
func (p *TableContextPlugin) Transform(text string) string {
	lines := gfmpipe.SplitLines(text)
	inTable := false
	for i, line := range lines {
		if inTable {
			if !gfmpipe.IsTableRow(line) && !gfmpipe.IsSeparatorRow(line) {
				inTable = false
			}
		} else if gfmpipe.IsTableRow(line) &&
			i+1 < len(lines) &&
			gfmpipe.IsValidTableHeader(line, lines[i+1]) {
			inTable = true
		}
		if inTable {
			lines[i] = p.cache.Unescape(line, p.chars...)
		}
	}
	return gfmpipe.JoinLines(lines)
}
