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
	"fmt"
	"strconv"
	"strings"
)

// A NodeFunc writes the Markdown form of one node.
type NodeFunc func(s *Serializer, sb *strings.Builder, n *Node) error

// A MarkRule describes how a text mark serializes: delimiters written
// around the text, and whether the text between them is emitted raw
// (code spans) or with Markdown specials escaped.
type MarkRule struct {
	Open  string
	Close string
	Raw   bool
}

// A Serializer converts a document tree back into Markdown text using
// per-node-type and per-mark rule tables. Extensions add rules with
// [Serializer.HandleNode] and [Serializer.HandleMark].
//
// Serialize is all-or-nothing: it either returns the complete string
// or an error, with no partial output visible to the caller.
type Serializer struct {
	nodes map[string]NodeFunc
	marks map[string]MarkRule
}

// NewSerializer returns a serializer with rules for the builtin node
// types and the strong, em, and code marks.
func NewSerializer() *Serializer {
	s := &Serializer{
		nodes: make(map[string]NodeFunc),
		marks: make(map[string]MarkRule),
	}
	s.HandleNode(ParagraphType, writeParagraph)
	s.HandleNode(HeadingType, writeHeading)
	s.HandleNode(CodeBlockType, writeCodeBlock)
	s.HandleNode(HTMLBlockType, writeVerbatim)
	s.HandleNode(BlockquoteType, writeBlockquote)
	s.HandleNode(ThematicBreakType, writeThematicBreak)
	s.HandleNode(TextType, writeTextNode)
	s.HandleMark("strong", MarkRule{Open: "**", Close: "**"})
	s.HandleMark("em", MarkRule{Open: "*", Close: "*"})
	s.HandleMark("code", MarkRule{Open: "`", Close: "`", Raw: true})
	return s
}

// HandleNode registers fn for the named node type,
// replacing any existing rule.
func (s *Serializer) HandleNode(name string, fn NodeFunc) {
	s.nodes[name] = fn
}

// HandleMark registers a mark rule, replacing any existing rule.
func (s *Serializer) HandleMark(name string, rule MarkRule) {
	s.marks[name] = rule
}

// Serialize converts the document tree into Markdown,
// separating top-level blocks with blank lines.
// An unregistered node type is an error.
func (s *Serializer) Serialize(doc *Node) (string, error) {
	sb := new(strings.Builder)
	for i, child := range doc.Children() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if err := s.WriteNode(sb, child); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// WriteNode writes one node using its registered rule.
func (s *Serializer) WriteNode(sb *strings.Builder, n *Node) error {
	fn := s.nodes[n.Type()]
	if fn == nil {
		return fmt.Errorf("serialize markdown: unknown node type %q", n.Type())
	}
	return fn(s, sb, n)
}

// WriteInlineChildren writes the node's children as inline content.
func (s *Serializer) WriteInlineChildren(sb *strings.Builder, n *Node) error {
	for _, child := range n.Children() {
		if child.Type() == TextType {
			if err := s.writeText(sb, child); err != nil {
				return err
			}
			continue
		}
		if err := s.WriteNode(sb, child); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) writeText(sb *strings.Builder, n *Node) error {
	raw := false
	marks := n.Marks()
	for _, name := range marks {
		rule, ok := s.marks[name]
		if !ok {
			return fmt.Errorf("serialize markdown: unknown mark %q", name)
		}
		sb.WriteString(rule.Open)
		raw = raw || rule.Raw
	}
	if raw {
		sb.WriteString(n.Text())
	} else {
		sb.WriteString(EscapeText(n.Text()))
	}
	for i := len(marks) - 1; i >= 0; i-- {
		sb.WriteString(s.marks[marks[i]].Close)
	}
	return nil
}

func writeParagraph(s *Serializer, sb *strings.Builder, n *Node) error {
	return s.WriteInlineChildren(sb, n)
}

func writeHeading(s *Serializer, sb *strings.Builder, n *Node) error {
	level, err := strconv.Atoi(n.Attr("level"))
	if err != nil || level < 1 || level > 6 {
		level = 1
	}
	sb.WriteString(strings.Repeat("#", level))
	sb.WriteString(" ")
	return s.WriteInlineChildren(sb, n)
}

func writeCodeBlock(s *Serializer, sb *strings.Builder, n *Node) error {
	sb.WriteString("```")
	sb.WriteString(n.Attr("info"))
	sb.WriteString("\n")
	sb.WriteString(n.Text())
	sb.WriteString("\n```")
	return nil
}

func writeVerbatim(s *Serializer, sb *strings.Builder, n *Node) error {
	sb.WriteString(n.Text())
	return nil
}

func writeBlockquote(s *Serializer, sb *strings.Builder, n *Node) error {
	for i, line := range strings.Split(n.Text(), "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		if line == "" {
			sb.WriteString(">")
		} else {
			sb.WriteString("> ")
			sb.WriteString(line)
		}
	}
	return nil
}

func writeThematicBreak(s *Serializer, sb *strings.Builder, n *Node) error {
	sb.WriteString("---")
	return nil
}

func writeTextNode(s *Serializer, sb *strings.Builder, n *Node) error {
	return s.writeText(sb, n)
}
