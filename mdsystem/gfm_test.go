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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quillmark/gfmpipe/mdtree"
)

func TestTableParsesPerRow(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := sys.Parser.Parse("| Name | Value |\n| --- | --- |\n| a | 1 |\n| b | 2 |")
	if doc.ChildCount() != 1 {
		t.Fatalf("document has %d blocks; want 1", doc.ChildCount())
	}
	table := doc.Child(0)
	if table.Type() != TableType {
		t.Fatalf("block type = %q; want %q", table.Type(), TableType)
	}
	var rows [][]string
	for _, row := range table.Children() {
		if row.Type() != TableRowType {
			t.Errorf("row type = %q; want %q", row.Type(), TableRowType)
		}
		var cells []string
		for _, cell := range row.Children() {
			cells = append(cells, cell.Text())
		}
		rows = append(rows, cells)
	}
	want := [][]string{
		{"Name", "Value"},
		{"a", "1"},
		{"b", "2"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("table rows (-want +got):\n%s", diff)
	}
}

func TestTableAlignment(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := sys.Parser.Parse("| L | C | R | D |\n| :--- | :---: | ---: | --- |\n| 1 | 2 | 3 | 4 |")
	table := doc.Child(0)
	if got, want := table.Attr("align"), "left,center,right,"; got != want {
		t.Errorf("align = %q; want %q", got, want)
	}
}

func TestTableCellEscapes(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := sys.Parser.Parse("| A | B |\n| --- | --- |\n| a \\| b | c |")
	body := doc.Child(0).Child(1)
	if got, want := body.ChildCount(), 2; got != want {
		t.Fatalf("body row has %d cells; want %d", got, want)
	}
	if got, want := body.Child(0).Text(), "a | b"; got != want {
		t.Errorf("cell text = %q; want %q", got, want)
	}
}

func TestTableStopsAtProse(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := sys.Parser.Parse("| A | B |\n| --- | --- |\n| 1 | 2 |\nplain prose after")
	if doc.ChildCount() != 2 {
		t.Fatalf("document has %d blocks; want 2", doc.ChildCount())
	}
	if got := doc.Child(0).ChildCount(); got != 2 {
		t.Errorf("table has %d rows; want 2", got)
	}
	if got, want := doc.Child(1).Type(), mdtree.ParagraphType; got != want {
		t.Errorf("second block type = %q; want %q", got, want)
	}
}

func TestRowWithoutSeparatorIsNotATable(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := sys.Parser.Parse("| looks like | a row |\nbut no separator")
	if got, want := doc.Child(0).Type(), mdtree.ParagraphType; got != want {
		t.Errorf("block type = %q; want %q", got, want)
	}
}

func TestWriteTableRegeneratesSeparator(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	table := mdtree.NewNode(TableType,
		mdtree.NewNode(TableRowType, mdtree.NewText("H1"), mdtree.NewText("H2")),
		mdtree.NewNode(TableRowType, mdtree.NewText("a"), mdtree.NewText("b")),
	)
	table.SetAttr("align", "center,right")
	doc := mdtree.NewNode(mdtree.DocType, table)
	got, err := sys.Serializer.Serialize(doc)
	if err != nil {
		t.Fatal("Serialize:", err)
	}
	want := "| H1 | H2 |\n| :---: | ---: |\n| a | b |"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Serialize (-want +got):\n%s", diff)
	}
}

func TestStrikeMark(t *testing.T) {
	sys, err := New(GFMExtensions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	doc := mdtree.NewNode(mdtree.DocType,
		mdtree.NewNode(mdtree.ParagraphType,
			mdtree.NewText("this is "),
			mdtree.NewText("gone", "strike"),
		))
	got, err := sys.Serializer.Serialize(doc)
	if err != nil {
		t.Fatal("Serialize:", err)
	}
	if want := "this is ~~gone~~"; got != want {
		t.Errorf("Serialize = %q; want %q", got, want)
	}
}

func TestSplitRowCells(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"| a | b |", []string{"a", "b"}},
		{"a | b", []string{"a", "b"}},
		{"| a \\| b | c |", []string{`a \| b`, "c"}},
		{"|  spaced  |", []string{"spaced"}},
		{"| trailing \\\\|", []string{`trailing \\`}},
	}
	for _, test := range tests {
		if got := splitRowCells(test.line); !cmp.Equal(test.want, got) {
			t.Errorf("splitRowCells(%q) = %q; want %q", test.line, got, test.want)
		}
	}
}

func TestSeparatorAlignments(t *testing.T) {
	got := separatorAlignments("| :--- | :---: | ---: | --- |")
	want := []string{"left", "center", "right", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("separatorAlignments (-want +got):\n%s", diff)
	}
}
