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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// summarize renders the tree's blocks as "type[:text]" strings
// for compact comparison.
func summarize(doc *Node) []string {
	var out []string
	for _, child := range doc.Children() {
		entry := child.Type()
		if t := child.PlainText(); t != "" {
			entry += ":" + t
		}
		out = append(out, entry)
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []string
	}{
		{
			name:     "Empty",
			markdown: "",
			want:     nil,
		},
		{
			name:     "SingleParagraph",
			markdown: "Hello, World!",
			want:     []string{"paragraph:Hello, World!"},
		},
		{
			name:     "TwoParagraphs",
			markdown: "one\n\ntwo",
			want:     []string{"paragraph:one", "paragraph:two"},
		},
		{
			name:     "WrappedParagraph",
			markdown: "line one\nline two",
			want:     []string{"paragraph:line one\nline two"},
		},
		{
			name:     "EscapedPunctuation",
			markdown: `a \* b`,
			want:     []string{"paragraph:a * b"},
		},
		{
			name:     "Heading",
			markdown: "## Title",
			want:     []string{"heading:Title"},
		},
		{
			name:     "FencedCode",
			markdown: "```go\nx := 1\n```",
			want:     []string{"code_block:x := 1"},
		},
		{
			name:     "UnterminatedFence",
			markdown: "```\ncode to the end",
			want:     []string{"code_block:code to the end"},
		},
		{
			name:     "HTMLBlock",
			markdown: "<div>\ncontent\n</div>",
			want:     []string{"html_block:<div>\ncontent\n</div>"},
		},
		{
			name:     "Comment",
			markdown: "<!-- note -->\n\nafter",
			want:     []string{"html_block:<!-- note -->", "paragraph:after"},
		},
		{
			name:     "ThematicBreak",
			markdown: "before\n\n---\n\nafter",
			want:     []string{"paragraph:before", "thematic_break", "paragraph:after"},
		},
		{
			name:     "Blockquote",
			markdown: "> quoted\n> more",
			want:     []string{"blockquote:quoted\nmore"},
		},
		{
			name:     "ParagraphStopsAtFence",
			markdown: "prose\n```\ncode\n```",
			want:     []string{"paragraph:prose", "code_block:code"},
		},
	}
	p := NewParser()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := p.Parse(test.markdown)
			if diff := cmp.Diff(test.want, summarize(doc)); diff != "" {
				t.Errorf("Parse(%q) blocks (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

func TestParseHeadingAttrs(t *testing.T) {
	doc := NewParser().Parse("### Three")
	h := doc.Child(0)
	if got := h.Type(); got != HeadingType {
		t.Fatalf("Child(0).Type() = %q; want %q", got, HeadingType)
	}
	if got := h.Attr("level"); got != "3" {
		t.Errorf(`Attr("level") = %q; want "3"`, got)
	}
}

func TestParseHTMLBlockKinds(t *testing.T) {
	tests := []struct {
		markdown string
		wantKind string
	}{
		{"<script>\nx\n</script>", "script/style/pre"},
		{"<!-- c -->", "comment"},
		{"<?php ?>", "processing instruction"},
		{"<!DOCTYPE html>", "declaration"},
		{"<![CDATA[x]]>", "cdata"},
		{"<table>", "block-level tag"},
		{"<span>", "other tag"},
	}
	p := NewParser()
	for _, test := range tests {
		doc := p.Parse(test.markdown)
		block := doc.Child(0)
		if got := block.Type(); got != HTMLBlockType {
			t.Errorf("Parse(%q): type = %q; want %q", test.markdown, got, HTMLBlockType)
			continue
		}
		if got := block.Attr("kind"); got != test.wantKind {
			t.Errorf("Parse(%q): kind = %q; want %q", test.markdown, got, test.wantKind)
		}
	}
}

func TestParseCustomRule(t *testing.T) {
	callout := BlockRule{
		Name: "callout",
		Match: func(lines []string, i int) (*Node, int) {
			if !strings.HasPrefix(lines[i], "!!! ") {
				return nil, 0
			}
			return NewNode("callout", NewText(lines[i][4:])), 1
		},
	}
	doc := NewParser(callout).Parse("!!! watch out\n\nprose")
	want := []string{"callout:watch out", "paragraph:prose"}
	if diff := cmp.Diff(want, summarize(doc)); diff != "" {
		t.Errorf("blocks (-want +got):\n%s", diff)
	}
}

func TestParseNormalizesToNFC(t *testing.T) {
	// U+0065 U+0301 (decomposed form) normalizes to U+00E9.
	doc := NewParser().Parse("cafe\u0301")
	if got, want := doc.Child(0).PlainText(), "caf\u00e9"; got != want {
		t.Errorf("PlainText() = %q; want %q", got, want)
	}
}
