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

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/quillmark/gfmpipe"
)

// A MatchFunc tries to start a block at lines[i].
// It returns the parsed node and the number of lines consumed,
// or (nil, 0) when the block does not start there.
// Returning a nil node with a positive count consumes lines
// without adding to the tree.
type MatchFunc func(lines []string, i int) (*Node, int)

// A BlockRule is a named block start, tried in order during parsing.
type BlockRule struct {
	Name  string
	Match MatchFunc
}

// A Parser converts Markdown text into a document tree.
// It is line-oriented: every block starts at a line boundary,
// and malformed input degrades to paragraphs rather than erroring.
type Parser struct {
	rules []BlockRule
}

// NewParser returns a parser whose rule table is the given rules
// followed by [DefaultBlockRules]. Rules are tried in order; the first
// rule to consume lines wins, so callers place more specific rules
// first.
func NewParser(rules ...BlockRule) *Parser {
	p := &Parser{rules: append([]BlockRule(nil), rules...)}
	p.rules = append(p.rules, DefaultBlockRules()...)
	return p
}

// Parse converts markdown into a document tree.
// Input is NFC-normalized first; editor paste paths feed arbitrary
// Unicode and the tree should not distinguish canonically equivalent
// text.
func (p *Parser) Parse(markdown string) *Node {
	markdown = norm.NFC.String(markdown)
	lines := gfmpipe.SplitLines(markdown)
	doc := NewNode(DocType)
	for i := 0; i < len(lines); {
		if gfmpipe.IsBlankLine(lines[i]) {
			i++
			continue
		}
		node, n := p.matchBlock(lines, i)
		if node != nil {
			doc.AppendChild(node)
		}
		i += n
	}
	return doc
}

func (p *Parser) matchBlock(lines []string, i int) (*Node, int) {
	for _, rule := range p.rules {
		if node, n := rule.Match(lines, i); n > 0 {
			return node, n
		}
	}
	return p.matchParagraph(lines, i)
}

// startsBlock reports whether any rule would start a block at lines[j].
// Paragraphs end where the next block begins, blank line or not.
func (p *Parser) startsBlock(lines []string, j int) bool {
	for _, rule := range p.rules {
		if _, n := rule.Match(lines, j); n > 0 {
			return true
		}
	}
	return false
}

// DefaultBlockRules returns the built-in block rules:
// ATX headings, fenced code, HTML blocks, thematic breaks, and
// blockquotes. Paragraphs are the fallback, not a rule.
func DefaultBlockRules() []BlockRule {
	return []BlockRule{
		{Name: "heading", Match: matchHeading},
		{Name: "fencedCode", Match: matchFencedCode},
		{Name: "htmlBlock", Match: matchHTMLBlock},
		{Name: "thematicBreak", Match: matchThematicBreak},
		{Name: "blockquote", Match: matchBlockquote},
	}
}

func matchHeading(lines []string, i int) (*Node, int) {
	s := lines[i]
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return nil, 0
	}
	rest := s[level:]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		return nil, 0
	}
	node := NewNode(HeadingType, NewText(UnescapeText(strings.TrimSpace(rest))))
	node.SetAttr("level", strconv.Itoa(level))
	return node, 1
}

func matchFencedCode(lines []string, i int) (*Node, int) {
	const fence = "```"
	if !strings.HasPrefix(lines[i], fence) {
		return nil, 0
	}
	info := strings.TrimSpace(lines[i][len(fence):])
	var body []string
	for j := i + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fence {
			node := NewNode(CodeBlockType).SetText(strings.Join(body, "\n"))
			node.SetAttr("info", info)
			return node, j - i + 1
		}
		body = append(body, lines[j])
	}
	// Unterminated fence runs to the end of the document.
	node := NewNode(CodeBlockType).SetText(strings.Join(body, "\n"))
	node.SetAttr("info", info)
	return node, len(lines) - i
}

func matchHTMLBlock(lines []string, i int) (*Node, int) {
	kind := gfmpipe.ClassifyBlockStart(lines[i])
	if kind == gfmpipe.KindNone {
		return nil, 0
	}
	end := len(lines) - 1
	if kind == gfmpipe.KindBlockLevel || kind == gfmpipe.KindOther {
		for j := i + 1; j < len(lines); j++ {
			if gfmpipe.IsBlankLine(lines[j]) {
				end = j - 1
				break
			}
		}
	} else {
		for j := i; j < len(lines); j++ {
			if gfmpipe.IsBlockEnd(lines[j], kind) {
				end = j
				break
			}
		}
	}
	node := NewNode(HTMLBlockType).SetText(strings.Join(lines[i:end+1], "\n"))
	node.SetAttr("kind", kind.String())
	return node, end - i + 1
}

func matchThematicBreak(lines []string, i int) (*Node, int) {
	s := strings.TrimSpace(lines[i])
	if len(s) < 3 {
		return nil, 0
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return nil, 0
	}
	for j := 1; j < len(s); j++ {
		if s[j] != c {
			return nil, 0
		}
	}
	return NewNode(ThematicBreakType), 1
}

func matchBlockquote(lines []string, i int) (*Node, int) {
	if !strings.HasPrefix(lines[i], ">") {
		return nil, 0
	}
	var content []string
	j := i
	for ; j < len(lines) && strings.HasPrefix(lines[j], ">"); j++ {
		s := strings.TrimPrefix(lines[j], ">")
		s = strings.TrimPrefix(s, " ")
		content = append(content, s)
	}
	node := NewNode(BlockquoteType).SetText(strings.Join(content, "\n"))
	return node, j - i
}

func (p *Parser) matchParagraph(lines []string, i int) (*Node, int) {
	j := i + 1
	for ; j < len(lines); j++ {
		if gfmpipe.IsBlankLine(lines[j]) || p.startsBlock(lines, j) {
			break
		}
	}
	text := UnescapeText(strings.Join(lines[i:j], "\n"))
	return NewNode(ParagraphType, NewText(text)), j - i
}
