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
	"strings"

	"golang.org/x/net/html/atom"
)

// DisallowedTagNames is the fixed list of raw HTML tag names the GFM
// [tagfilter] extension neutralizes. The list is lowercase-canonical
// and never mutated; matching is case-insensitive.
//
// [tagfilter]: https://github.github.com/gfm/#disallowed-raw-html-extension-
var DisallowedTagNames = []string{
	atom.Title.String(),
	atom.Textarea.String(),
	atom.Style.String(),
	atom.Xmp.String(),
	atom.Iframe.String(),
	atom.Noembed.String(),
	atom.Noframes.String(),
	atom.Script.String(),
	atom.Plaintext.String(),
}

var disallowedTagRE = regexp.MustCompile(
	`(?i)<(` + strings.Join(DisallowedTagNames, "|") + `)((?:\s[^>]*)?)(/?)>`)

// FilterDisallowedTags rewrites every opening tag whose name is in
// [DisallowedTagNames] so that its leading angle bracket becomes the
// &lt; entity. Attributes, a self-closing slash, and the closing '>'
// are preserved verbatim. Closing tags like </script> are left alone:
// once the opening tag is inert, the closing tag is stray text.
// The rewrite is idempotent because &lt; no longer matches '<'.
func FilterDisallowedTags(text string) string {
	return disallowedTagRE.ReplaceAllString(text, "&lt;${1}${2}${3}>")
}
