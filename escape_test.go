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
	"sync"
	"testing"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		s     string
		chars []byte
		want  string
	}{
		{`\|`, []byte{'|'}, `|`},
		{`a \| b \| c`, []byte{'|'}, `a | b | c`},
		{`\*bold\*`, []byte{'*'}, `*bold*`},
		{`\| and \*`, []byte{'|', '*'}, `| and *`},
		{`nothing here`, []byte{'|'}, `nothing here`},
		{`\~`, []byte{'~'}, `~`},
		{`|`, []byte{'|'}, `|`},

		// The escape character itself is untouched when it guards a
		// character that is not configured.
		{`\x`, []byte{'|'}, `\x`},
	}
	c := NewEscapeCache()
	for _, test := range tests {
		if got := c.Unescape(test.s, test.chars...); got != test.want {
			t.Errorf("Unescape(%q, %q) = %q; want %q", test.s, test.chars, got, test.want)
		}
	}
}

// A double-escaped character resolves to its single-escaped form, not
// to the bare character: the two forms are distinct unescape steps and
// must not conflate.
func TestUnescapeDoubleEscape(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{`\\|`, `\|`},
		{`\|`, `|`},
		{`\\| and \|`, `\| and |`},
		{`a \\| b`, `a \| b`},
	}
	c := NewEscapeCache()
	for _, test := range tests {
		if got := c.Unescape(test.s, '|'); got != test.want {
			t.Errorf("Unescape(%q, '|') = %q; want %q", test.s, got, test.want)
		}
	}
}

func TestUnescapeIdempotentOnEscapeFreeText(t *testing.T) {
	c := NewEscapeCache()
	inputs := []string{
		"plain | pipes * stars _ underscores",
		"| a | b |",
		"",
	}
	for _, s := range inputs {
		once := c.Unescape(s, '|', '*', '_', '~')
		twice := c.Unescape(once, '|', '*', '_', '~')
		if once != s {
			t.Errorf("Unescape(%q) = %q; want unchanged", s, once)
		}
		if twice != once {
			t.Errorf("Unescape(Unescape(%q)) = %q; want %q", s, twice, once)
		}
	}
}

func TestEscapeCachePatterns(t *testing.T) {
	c := NewEscapeCache()
	if got, want := c.Single('|').String(), `\\\|`; got != want {
		t.Errorf("Single('|') = %q; want %q", got, want)
	}
	if got, want := c.Double('|').String(), `\\\\\|`; got != want {
		t.Errorf("Double('|') = %q; want %q", got, want)
	}
	// Same compiled pattern comes back on the second lookup.
	if c.Single('*') != c.Single('*') {
		t.Error("Single('*') not cached")
	}
}

func TestEscapeCacheConcurrent(t *testing.T) {
	c := NewEscapeCache()
	chars := []byte{'|', '*', '_', '~', '`', '['}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, ch := range chars {
				if got := c.Unescape(`\`+string(ch), ch); got != string(ch) {
					t.Errorf("Unescape(%q) = %q; want %q", `\`+string(ch), got, string(ch))
				}
			}
		}()
	}
	wg.Wait()
}
