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
)

// IsTableRow reports whether line is a table data row for the purpose
// of context-sensitive escaping: it must contain at least two unescaped
// pipes. This deliberately disagrees with [HasPipeDelimiters]; the
// stricter count avoids treating prose with a single stray pipe as a
// table.
func IsTableRow(line string) bool {
	return countUnescapedPipes(line) >= 2
}

// HasPipeDelimiters reports whether the trimmed line starts or ends
// with a pipe. It is the looser of the two row predicates, intended for
// editor-surface styling where a false positive only mis-highlights.
// Use [IsTableRow] when deciding whether to rewrite escapes.
func HasPipeDelimiters(line string) bool {
	s := strings.TrimSpace(line)
	return s != "" && (s[0] == '|' || s[len(s)-1] == '|')
}

func countUnescapedPipes(line string) int {
	n := 0
	escaped := false
	for i := 0; i < len(line); i++ {
		switch {
		case escaped:
			escaped = false
		case line[i] == '\\':
			escaped = true
		case line[i] == '|':
			n++
		}
	}
	return n
}

// separatorCellRE matches one delimiter-row cell:
// dashes with optional alignment colons.
var separatorCellRE = regexp.MustCompile(`^:?-+:?$`)

// IsSeparatorRow reports whether line is a table [delimiter row]:
// after stripping one optional leading and one optional trailing pipe,
// every pipe-delimited cell is dashes with optional alignment colons.
//
// [delimiter row]: https://github.github.com/gfm/#delimiter-row
func IsSeparatorRow(line string) bool {
	cells, ok := splitCells(line)
	if !ok {
		return false
	}
	for _, cell := range cells {
		if !separatorCellRE.MatchString(strings.TrimSpace(cell)) {
			return false
		}
	}
	return true
}

// CountCells returns the number of pipe-delimited cells in line after
// stripping one optional leading and one optional trailing pipe.
// GFM requires the header row and the delimiter row to have the same
// count for the pair to open a table.
func CountCells(line string) int {
	cells, ok := splitCells(line)
	if !ok {
		return 0
	}
	return len(cells)
}

// IsValidTableHeader reports whether header followed by separator opens
// a GFM table: separator must be a delimiter row and the two rows must
// have the same cell arity.
func IsValidTableHeader(header, separator string) bool {
	return IsSeparatorRow(separator) && CountCells(header) == CountCells(separator)
}

func splitCells(line string) ([]string, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, false
	}
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	if strings.TrimSpace(s) == "" {
		return nil, false
	}
	return strings.Split(s, "|"), true
}
