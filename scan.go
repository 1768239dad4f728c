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

// An HTMLBlockRange is a contiguous run of lines forming one HTML block.
// Start and End are zero-based line indices, inclusive on both ends.
// Ranges produced by a single [FindHTMLBlocks] scan never overlap
// and always satisfy Start <= End.
type HTMLBlockRange struct {
	Start int
	End   int
	Kind  HTMLBlockKind
}

// Contains reports whether the zero-based line index n is in the range.
func (r HTMLBlockRange) Contains(n int) bool {
	return r.Start <= n && n <= r.End
}

// FindHTMLBlocks scans lines in a single forward pass and returns the
// HTML block ranges it finds, in order. Scanning resumes just past the
// end of each range, so ranges never overlap. A block whose end
// condition never occurs extends to the last line; malformed input is
// never an error.
func FindHTMLBlocks(lines []string) []HTMLBlockRange {
	var ranges []HTMLBlockRange
	for i := 0; i < len(lines); {
		kind := ClassifyBlockStart(lines[i])
		if kind == KindNone {
			i++
			continue
		}
		end := blockEnd(lines, i, kind)
		ranges = append(ranges, HTMLBlockRange{Start: i, End: end, Kind: kind})
		i = end + 1
	}
	return ranges
}

// blockEnd returns the index of the last line of a block of the given
// kind starting at lines[start].
func blockEnd(lines []string, start int, kind HTMLBlockKind) int {
	if kind == KindBlockLevel || kind == KindOther {
		// These kinds end at the first blank line after the start;
		// the blank line itself is not part of the block.
		for i := start + 1; i < len(lines); i++ {
			if IsBlankLine(lines[i]) {
				return i - 1
			}
		}
		return len(lines) - 1
	}
	// The start line may satisfy the end condition itself,
	// as in a single-line comment.
	for i := start; i < len(lines); i++ {
		if IsBlockEnd(lines[i], kind) {
			return i
		}
	}
	return len(lines) - 1
}

// BlockAt reports the HTML block range containing the zero-based line
// index n, if any.
func BlockAt(lines []string, n int) (HTMLBlockRange, bool) {
	for _, r := range FindHTMLBlocks(lines) {
		if r.Contains(n) {
			return r, true
		}
		if r.Start > n {
			break
		}
	}
	return HTMLBlockRange{}, false
}
