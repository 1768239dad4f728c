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

import "testing"

func TestClassifyBlockStart(t *testing.T) {
	tests := []struct {
		line string
		want HTMLBlockKind
	}{
		// Script/style/pre.
		{"<script>", KindScriptStylePre},
		{"<script src=\"main.js\">", KindScriptStylePre},
		{"<SCRIPT>", KindScriptStylePre},
		{"<pre", KindScriptStylePre},
		{"<style type=\"text/css\">", KindScriptStylePre},
		{"<scripting>", KindOther},
		{"<prefix>", KindOther},

		// Comments.
		{"<!--", KindComment},
		{"<!-- hi -->", KindComment},

		// Processing instructions.
		{"<?xml version=\"1.0\"?>", KindProcessingInstruction},
		{"<?php", KindProcessingInstruction},

		// Declarations are case-insensitive, matching the GFM
		// production.
		{"<!DOCTYPE html>", KindDeclaration},
		{"<!doctype html>", KindDeclaration},

		// CDATA.
		{"<![CDATA[", KindCDATA},
		{"<![CDATA[x]]>", KindCDATA},
		{"<![cdata[", KindNone},

		// Block-level tags.
		{"<div class=\"x\">", KindBlockLevel},
		{"<div>trailing text", KindBlockLevel},
		{"</div>", KindBlockLevel},
		{"<table>", KindBlockLevel},
		{"<hr/>", KindBlockLevel},
		{"<H2 id=\"a\">", KindBlockLevel},
		{"<div", KindNone},

		// Other complete tags must be alone on the line.
		{"<span>", KindOther},
		{"</span>", KindOther},
		{"<a href=\"x\">", KindOther},
		{"<custom-element data-x='1'/>", KindOther},
		{"text<span>", KindNone},
		{"<span>text", KindNone},
		{"<span", KindNone},
		{"<1bad>", KindNone},

		// Indentation.
		{"   <div>", KindBlockLevel},
		{"    <div>", KindNone},
		{"\t<div>", KindNone},

		// Not HTML at all.
		{"", KindNone},
		{"   ", KindNone},
		{"plain prose", KindNone},
		{"a < b", KindNone},
	}
	for _, test := range tests {
		if got := ClassifyBlockStart(test.line); got != test.want {
			t.Errorf("ClassifyBlockStart(%q) = %v; want %v", test.line, got, test.want)
		}
	}
}

func TestIsBlockEnd(t *testing.T) {
	tests := []struct {
		line string
		kind HTMLBlockKind
		want bool
	}{
		{"</script>", KindScriptStylePre, true},
		{"x = 1; </SCRIPT> done", KindScriptStylePre, true},
		{"</pre>", KindScriptStylePre, true},
		{"</style>", KindScriptStylePre, true},
		{"</div>", KindScriptStylePre, false},
		{"done -->", KindComment, true},
		{"still going", KindComment, false},
		{"?>", KindProcessingInstruction, true},
		{">", KindDeclaration, true},
		{"]]>", KindCDATA, true},
		{"]] >", KindCDATA, false},

		// Blank-line kinds are the scanner's job.
		{"", KindBlockLevel, false},
		{"", KindOther, false},
	}
	for _, test := range tests {
		if got := IsBlockEnd(test.line, test.kind); got != test.want {
			t.Errorf("IsBlockEnd(%q, %v) = %t; want %t", test.line, test.kind, got, test.want)
		}
	}
}
