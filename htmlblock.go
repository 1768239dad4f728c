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
	"strings"

	"golang.org/x/net/html/atom"
)

// HTMLBlockKind identifies one of the seven [HTML block] types
// of GitHub-Flavored Markdown.
// The kinds are mutually exclusive by construction:
// [ClassifyBlockStart] tries them in ascending order
// and returns the first match.
//
// [HTML block]: https://github.github.com/gfm/#html-blocks
type HTMLBlockKind int

const (
	// KindNone means the line does not start an HTML block.
	KindNone HTMLBlockKind = iota
	// KindScriptStylePre is a block opened by <script>, <style>, or <pre>.
	KindScriptStylePre
	// KindComment is an HTML comment block.
	KindComment
	// KindProcessingInstruction is a <? ... ?> block.
	KindProcessingInstruction
	// KindDeclaration is a <!LETTER ...> declaration block.
	KindDeclaration
	// KindCDATA is a <![CDATA[ ... ]]> block.
	KindCDATA
	// KindBlockLevel is a block opened by a standard block-level tag.
	KindBlockLevel
	// KindOther is a block whose first line is exactly one complete
	// open or close tag of any other name.
	KindOther
)

// String returns the GFM type name of the kind.
func (kind HTMLBlockKind) String() string {
	switch kind {
	case KindNone:
		return "none"
	case KindScriptStylePre:
		return "script/style/pre"
	case KindComment:
		return "comment"
	case KindProcessingInstruction:
		return "processing instruction"
	case KindDeclaration:
		return "declaration"
	case KindCDATA:
		return "cdata"
	case KindBlockLevel:
		return "block-level tag"
	case KindOther:
		return "other tag"
	default:
		return "invalid"
	}
}

var (
	rawTextStarters = []string{
		"<script",
		"<pre",
		"<style",
	}
	rawTextEnders = []string{
		"</script>",
		"</pre>",
		"</style>",
	}
)

// ClassifyBlockStart reports which HTML block kind line begins,
// or [KindNone] if it begins none.
// Up to three columns of leading indentation are permitted;
// four or more mean indented code, which is never an HTML block.
func ClassifyBlockStart(line string) HTMLBlockKind {
	if indentWidth(line) >= codeIndentLimit {
		return KindNone
	}
	s := trimIndent(line)
	if s == "" || s[0] != '<' {
		return KindNone
	}

	for _, starter := range rawTextStarters {
		if hasCaseInsensitivePrefix(s, starter) {
			rest := s[len(starter):]
			if rest == "" || isSpaceOrTab(rest[0]) || rest[0] == '>' {
				return KindScriptStylePre
			}
		}
	}
	if strings.HasPrefix(s, "<!--") {
		return KindComment
	}
	if strings.HasPrefix(s, "<?") {
		return KindProcessingInstruction
	}
	if strings.HasPrefix(s, "<!") && len(s) >= 3 && isASCIILetter(s[2]) {
		return KindDeclaration
	}
	if strings.HasPrefix(s, "<![CDATA[") {
		return KindCDATA
	}
	if isBlockLevelStart(s) {
		return KindBlockLevel
	}
	if isWholeLineTag(s) {
		return KindOther
	}
	return KindNone
}

// IsBlockEnd reports whether line ends an open HTML block of the given
// kind. [KindBlockLevel] and [KindOther] blocks end at the first blank
// line instead, which is the scanner's job; IsBlockEnd always reports
// false for them.
func IsBlockEnd(line string, kind HTMLBlockKind) bool {
	switch kind {
	case KindScriptStylePre:
		for _, ender := range rawTextEnders {
			if caseInsensitiveContains(line, ender) {
				return true
			}
		}
		return false
	case KindComment:
		return strings.Contains(line, "-->")
	case KindProcessingInstruction:
		return strings.Contains(line, "?>")
	case KindDeclaration:
		return strings.Contains(line, ">")
	case KindCDATA:
		return strings.Contains(line, "]]>")
	default:
		return false
	}
}

// isBlockLevelStart reports whether s begins with an open or close tag
// whose name is in the block-level set and whose tag is syntactically
// closed on the line. A dangling "<div" with no '>' does not count.
func isBlockLevelStart(s string) bool {
	i := 1
	if i < len(s) && s[i] == '/' {
		i++
	}
	start := i
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || s[i] == '-') {
		i++
	}
	if i == start || !isASCIILetter(s[start]) {
		return false
	}
	name := make([]byte, i-start)
	for j := start; j < i; j++ {
		name[j-start] = toLowerASCII(s[j])
	}
	if _, ok := blockLevelNames[string(name)]; !ok {
		return false
	}
	if i == len(s) {
		return false
	}
	switch {
	case s[i] == '>':
		return true
	case strings.HasPrefix(s[i:], "/>"):
		return true
	case isSpaceOrTab(s[i]):
		return strings.IndexByte(s[i:], '>') >= 0
	default:
		return false
	}
}

// isWholeLineTag reports whether s is exactly one complete open or
// close tag with nothing but the tag on the line. Mixed content
// (a tag with surrounding text) does not count; this is what separates
// the "other" block kind from inline HTML embedded in prose.
func isWholeLineTag(s string) bool {
	if len(s) < 2 || s[0] != '<' {
		return false
	}
	var end int
	if s[1] == '/' {
		end = parseClosingTag(s, 1)
	} else {
		end = parseOpenTag(s, 1)
	}
	return end == len(s)
}

// parseOpenTag parses an [open tag] in s starting after the '<' at
// position i, returning the position just past the closing '>' or -1.
//
// [open tag]: https://spec.commonmark.org/0.30/#open-tag
func parseOpenTag(s string, i int) (end int) {
	i = parseTagName(s, i)
	if i < 0 {
		return -1
	}
	for {
		beforeSpace := i
		i = skipTagSpace(s, i)
		if i >= len(s) {
			return -1
		}
		switch s[i] {
		case '/':
			if !strings.HasPrefix(s[i:], "/>") {
				return -1
			}
			return i + 2
		case '>':
			return i + 1
		}
		if i == beforeSpace {
			return -1
		}
		i = parseAttribute(s, i)
		if i < 0 {
			return -1
		}
	}
}

// parseClosingTag parses a [closing tag] in s starting at the '/' at
// position i, returning the position just past the closing '>' or -1.
//
// [closing tag]: https://spec.commonmark.org/0.30/#closing-tag
func parseClosingTag(s string, i int) (end int) {
	if i >= len(s) || s[i] != '/' {
		return -1
	}
	i = parseTagName(s, i+1)
	if i < 0 {
		return -1
	}
	i = skipTagSpace(s, i)
	if i >= len(s) || s[i] != '>' {
		return -1
	}
	return i + 1
}

func parseTagName(s string, i int) (end int) {
	if i >= len(s) || !isASCIILetter(s[i]) {
		return -1
	}
	i++
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || s[i] == '-') {
		i++
	}
	return i
}

func parseAttribute(s string, i int) (end int) {
	// Attribute name.
	if i >= len(s) {
		return -1
	}
	if c := s[i]; !isASCIILetter(c) && c != '_' && c != ':' {
		return -1
	}
	i++
	for i < len(s) && (isASCIILetter(s[i]) || isASCIIDigit(s[i]) || strings.IndexByte("_.:-", s[i]) >= 0) {
		i++
	}

	// Attribute value specification.
	// Don't consume space unless it is followed by an equal sign,
	// since it will cause future attributes to fail.
	afterName := i
	i = skipTagSpace(s, i)
	if i >= len(s) || s[i] != '=' {
		return afterName
	}
	i = skipTagSpace(s, i+1)
	if i >= len(s) {
		// Must have an attribute value following the equals sign.
		return -1
	}
	switch c := s[i]; {
	case c == '\'', c == '"':
		quote := c
		i++
		for i < len(s) && s[i] != quote {
			i++
		}
		if i >= len(s) {
			return -1
		}
		return i + 1
	case isUnquotedAttributeValueChar(c):
		for i < len(s) && isUnquotedAttributeValueChar(s[i]) {
			i++
		}
		return i
	default:
		return -1
	}
}

func skipTagSpace(s string, i int) int {
	for i < len(s) && isSpaceOrTab(s[i]) {
		i++
	}
	return i
}

func isUnquotedAttributeValueChar(c byte) bool {
	return !isSpaceOrTab(c) && c != '\r' && c != '\n' && strings.IndexByte("\"'=<>`", c) < 0
}

// blockLevelNames is the set of tag names that open a block-level HTML
// block, per the GFM type 6 condition.
var blockLevelNames = newTagNameSet(
	atom.Address,
	atom.Article,
	atom.Aside,
	atom.Base,
	atom.Basefont,
	atom.Blockquote,
	atom.Body,
	atom.Caption,
	atom.Center,
	atom.Col,
	atom.Colgroup,
	atom.Dd,
	atom.Details,
	atom.Dialog,
	atom.Dir,
	atom.Div,
	atom.Dl,
	atom.Dt,
	atom.Fieldset,
	atom.Figcaption,
	atom.Figure,
	atom.Footer,
	atom.Form,
	atom.Frame,
	atom.Frameset,
	atom.H1,
	atom.H2,
	atom.H3,
	atom.H4,
	atom.H5,
	atom.H6,
	atom.Head,
	atom.Header,
	atom.Hr,
	atom.Html,
	atom.Iframe,
	atom.Legend,
	atom.Li,
	atom.Link,
	atom.Main,
	atom.Menu,
	atom.Menuitem,
	atom.Nav,
	atom.Noframes,
	atom.Ol,
	atom.Optgroup,
	atom.Option,
	atom.P,
	atom.Param,
	atom.Section,
	atom.Source,
	atom.Summary,
	atom.Table,
	atom.Tbody,
	atom.Td,
	atom.Tfoot,
	atom.Th,
	atom.Thead,
	atom.Title,
	atom.Tr,
	atom.Track,
	atom.Ul,
)

func newTagNameSet(atoms ...atom.Atom) map[string]struct{} {
	set := make(map[string]struct{}, len(atoms))
	for _, a := range atoms {
		set[a.String()] = struct{}{}
	}
	return set
}
