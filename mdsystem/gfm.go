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

package mdsystem

import (
	"regexp"
	"strings"

	"github.com/quillmark/gfmpipe"
	"github.com/quillmark/gfmpipe/mdtree"
	"github.com/quillmark/gfmpipe/pipeline"
)

// Node type names contributed by [Table].
const (
	TableType    = "table"
	TableRowType = "table_row"
)

// GFMExtensions returns the stock GitHub Flavored Markdown extension
// set: tables, strikethrough, and the disallowed raw HTML filter.
func GFMExtensions() []Extension {
	return []Extension{Table(), Strikethrough(), DisallowedHTML()}
}

// Table returns the pipe table extension. It parses a header row
// followed by a matching delimiter row into a "table" node with one
// "table_row" child per line and one text-node cell per column, and
// serializes such nodes back, regenerating the delimiter row from the
// table's "align" attribute. It also contributes the table-context
// escape pass.
func Table() Extension { return tableExtension{} }

type tableExtension struct{}

func (tableExtension) ExtensionName() string { return "table" }

func (tableExtension) BlockRules() []mdtree.BlockRule {
	return []mdtree.BlockRule{{Name: "table", Match: matchTable}}
}

func (tableExtension) NodeRules() map[string]mdtree.NodeFunc {
	return map[string]mdtree.NodeFunc{
		TableType:    writeTable,
		TableRowType: writeTableRow,
	}
}

func (tableExtension) Plugins(cache *gfmpipe.EscapeCache) []pipeline.Plugin {
	return []pipeline.Plugin{pipeline.NewTableContextPlugin(cache)}
}

func matchTable(lines []string, i int) (*mdtree.Node, int) {
	if i+1 >= len(lines) ||
		!gfmpipe.IsTableRow(lines[i]) ||
		!gfmpipe.IsValidTableHeader(lines[i], lines[i+1]) {
		return nil, 0
	}
	table := mdtree.NewNode(TableType, parseTableRow(lines[i]))
	table.SetAttr("align", strings.Join(separatorAlignments(lines[i+1]), ","))
	j := i + 2
	for ; j < len(lines) && gfmpipe.IsTableRow(lines[j]); j++ {
		table.AppendChild(parseTableRow(lines[j]))
	}
	return table, j - i
}

func parseTableRow(line string) *mdtree.Node {
	row := mdtree.NewNode(TableRowType)
	for _, cell := range splitRowCells(line) {
		row.AppendChild(mdtree.NewText(mdtree.UnescapeText(cell)))
	}
	return row
}

// splitRowCells splits a row line on its unescaped pipes, dropping the
// optional leading and trailing delimiter and trimming each cell.
func splitRowCells(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	if strings.HasSuffix(s, "|") && !endsEscaped(s[:len(s)-1]) {
		s = s[:len(s)-1]
	}
	var cells []string
	start := 0
	escaped := false
	for k := 0; k < len(s); k++ {
		switch {
		case escaped:
			escaped = false
		case s[k] == '\\':
			escaped = true
		case s[k] == '|':
			cells = append(cells, strings.TrimSpace(s[start:k]))
			start = k + 1
		}
	}
	return append(cells, strings.TrimSpace(s[start:]))
}

func endsEscaped(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func separatorAlignments(line string) []string {
	cells := splitRowCells(line)
	aligns := make([]string, len(cells))
	for i, cell := range cells {
		colonLeft := strings.HasPrefix(cell, ":")
		colonRight := strings.HasSuffix(cell, ":")
		switch {
		case colonLeft && colonRight:
			aligns[i] = "center"
		case colonLeft:
			aligns[i] = "left"
		case colonRight:
			aligns[i] = "right"
		}
	}
	return aligns
}

func writeTable(s *mdtree.Serializer, sb *strings.Builder, n *mdtree.Node) error {
	aligns := strings.Split(n.Attr("align"), ",")
	for i, row := range n.Children() {
		if i > 0 {
			sb.WriteString("\n")
		}
		if err := s.WriteNode(sb, row); err != nil {
			return err
		}
		if i == 0 {
			sb.WriteString("\n")
			writeTableSeparator(sb, row.ChildCount(), aligns)
		}
	}
	return nil
}

func writeTableSeparator(sb *strings.Builder, cells int, aligns []string) {
	sb.WriteString("|")
	for k := 0; k < cells; k++ {
		align := ""
		if k < len(aligns) {
			align = aligns[k]
		}
		switch align {
		case "left":
			sb.WriteString(" :--- |")
		case "right":
			sb.WriteString(" ---: |")
		case "center":
			sb.WriteString(" :---: |")
		default:
			sb.WriteString(" --- |")
		}
	}
}

func writeTableRow(s *mdtree.Serializer, sb *strings.Builder, n *mdtree.Node) error {
	sb.WriteString("|")
	for _, cell := range n.Children() {
		sb.WriteString(" ")
		if err := s.WriteNode(sb, cell); err != nil {
			return err
		}
		sb.WriteString(" |")
	}
	return nil
}

// Strikethrough returns the strikethrough extension: a "strike" mark
// serialized with ~~ delimiters, plus a text pass that unescapes tilde
// everywhere. A single tilde never opens strikethrough, so the escaped
// form is noise the pipeline can always drop.
func Strikethrough() Extension { return strikethroughExtension{} }

type strikethroughExtension struct{}

func (strikethroughExtension) ExtensionName() string { return "strikethrough" }

func (strikethroughExtension) MarkRules() map[string]mdtree.MarkRule {
	return map[string]mdtree.MarkRule{
		"strike": {Open: "~~", Close: "~~"},
	}
}

var strikethroughLineRE = regexp.MustCompile(`~~`)

func (strikethroughExtension) Plugins(cache *gfmpipe.EscapeCache) []pipeline.Plugin {
	p, err := pipeline.NewPatternPlugin(pipeline.PatternConfig{
		Name:                "strikethroughUnescape",
		Pattern:             strikethroughLineRE,
		GlobalUnescapeChars: []byte{'~'},
		Cache:               cache,
	})
	if err != nil {
		// The pattern is set above; construction cannot fail.
		panic(err)
	}
	return []pipeline.Plugin{p}
}

// DisallowedHTML returns the extension that neutralizes GitHub's
// disallowed raw HTML tags in serialized output.
func DisallowedHTML() Extension { return disallowedHTMLExtension{} }

type disallowedHTMLExtension struct{}

func (disallowedHTMLExtension) ExtensionName() string { return "disallowedHTML" }

func (disallowedHTMLExtension) Plugins(*gfmpipe.EscapeCache) []pipeline.Plugin {
	return []pipeline.Plugin{pipeline.TagFilterPlugin{}}
}
