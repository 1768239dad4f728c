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

// Package mdtree provides the typed document tree that the round-trip
// pipeline wraps, along with a line-oriented Markdown parser and a
// rule-table serializer for it.
//
// The tree is deliberately small: an ordered tree of nodes with a type
// name, optional text content, optional marks on text, and string
// attributes. It is not a CommonMark AST; block nesting, link reference
// resolution, and inline emphasis scanning are out of scope. Extensions
// register additional block rules, node rules, and mark rules through
// [Parser] and [Serializer].
package mdtree

import "strings"

// Builtin node type names used by the default parser and serializer
// rules.
const (
	DocType           = "doc"
	ParagraphType     = "paragraph"
	HeadingType       = "heading"
	CodeBlockType     = "code_block"
	HTMLBlockType     = "html_block"
	BlockquoteType    = "blockquote"
	ThematicBreakType = "thematic_break"
	TextType          = "text"
)

// A Node is an element of the document tree.
// Methods on Node tolerate a nil receiver,
// returning zero values rather than panicking.
type Node struct {
	typ      string
	text     string
	marks    []string
	attrs    map[string]string
	children []*Node
}

// NewNode returns a node of the given type with the given children.
func NewNode(typ string, children ...*Node) *Node {
	return &Node{typ: typ, children: children}
}

// NewText returns a text node carrying the given marks.
func NewText(text string, marks ...string) *Node {
	return &Node{typ: TextType, text: text, marks: marks}
}

// Type returns the node's type name.
func (n *Node) Type() string {
	if n == nil {
		return ""
	}
	return n.typ
}

// Text returns the node's own text content.
// Use [Node.PlainText] for the text of a whole subtree.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Marks returns the mark names on the node, in application order.
func (n *Node) Marks() []string {
	if n == nil {
		return nil
	}
	return n.marks
}

// HasMark reports whether the node carries the named mark.
func (n *Node) HasMark(name string) bool {
	for _, m := range n.Marks() {
		if m == name {
			return true
		}
	}
	return false
}

// Attr returns the named attribute or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	return n.attrs[name]
}

// SetAttr sets an attribute on the node and returns the node.
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// SetText replaces the node's text content and returns the node.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Children returns the node's children.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on a nil node returns 0.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i'th child of the node
// or nil if i is out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// AppendChild appends children to the node and returns the node.
func (n *Node) AppendChild(children ...*Node) *Node {
	n.children = append(n.children, children...)
	return n
}

// PlainText returns the concatenated text content of the subtree,
// with the top-level blocks separated by newlines. It is the fallback
// representation when serialization fails.
func (n *Node) PlainText() string {
	sb := new(strings.Builder)
	for i, child := range n.Children() {
		if i > 0 {
			sb.WriteString("\n")
		}
		appendPlainText(sb, child)
	}
	if n.Type() == TextType || n.ChildCount() == 0 {
		sb.WriteString(n.Text())
	}
	return sb.String()
}

func appendPlainText(sb *strings.Builder, n *Node) {
	Walk(n, &WalkOptions{
		Pre: func(c *Cursor) bool {
			if t := c.Node().Text(); t != "" {
				sb.WriteString(t)
			}
			return true
		},
	})
}
