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

package mdtree

import "strings"

// textEscaper backslash-escapes the characters that would otherwise be
// read as Markdown syntax when text content is serialized. The
// backslash pair comes first; replacement is a single pass, so escapes
// it introduces are not reprocessed.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	`|`, `\|`,
	`~`, `\~`,
	"`", "\\`",
	`[`, `\[`,
	`]`, `\]`,
)

// EscapeText backslash-escapes Markdown special characters in text
// content. Context-sensitive passes downstream (the table-context
// escaper, for one) selectively undo this where the characters are
// literal by position.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// UnescapeText removes one level of backslash escaping from every
// escaped ASCII punctuation character, per the CommonMark
// backslash-escape rule. A backslash before anything else is literal.
func UnescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isASCIIPunct(c byte) bool {
	return '!' <= c && c <= '/' ||
		':' <= c && c <= '@' ||
		'[' <= c && c <= '`' ||
		'{' <= c && c <= '~'
}
