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

package pipeline

import (
	"errors"
	"regexp"
	"strings"

	"go4.org/bytereplacer"

	"github.com/quillmark/gfmpipe"
)

// A Replacement is one ordered find/replace substitution.
// OldPattern, when set, takes precedence over the literal Old.
type Replacement struct {
	Old        string
	OldPattern *regexp.Regexp
	New        string
}

// PatternConfig configures [NewPatternPlugin].
type PatternConfig struct {
	// Name identifies the plugin for the composition guard.
	// Defaults to "pattern:" plus the pattern source.
	Name string

	// Pattern is the per-line predicate. Required.
	Pattern *regexp.Regexp

	// UnescapeChars are unescaped on every line matching Pattern,
	// double-escaped form before single.
	UnescapeChars []byte

	// GlobalUnescapeChars are unescaped across the whole output,
	// regardless of Pattern. Only characters with no remaining
	// syntactic role after serialization belong here.
	GlobalUnescapeChars []byte

	// Replacements apply, in order, to each line matching Pattern,
	// after unescaping.
	Replacements []Replacement

	// Cache supplies the escape patterns. Defaults to a private cache.
	Cache *gfmpipe.EscapeCache
}

// A PatternPlugin rewrites serialized Markdown line by line wherever
// its pattern matches. See [PatternConfig].
type PatternPlugin struct {
	name    string
	pattern *regexp.Regexp
	chars   []byte
	repls   []Replacement
	global  *bytereplacer.Replacer
	cache   *gfmpipe.EscapeCache
}

// NewPatternPlugin returns a plugin for the given configuration.
// A missing Pattern is a configuration error, reported here rather
// than at serialize time.
func NewPatternPlugin(cfg PatternConfig) (*PatternPlugin, error) {
	if cfg.Pattern == nil {
		return nil, errors.New("pattern plugin: no line pattern configured")
	}
	p := &PatternPlugin{
		name:    cfg.Name,
		pattern: cfg.Pattern,
		chars:   append([]byte(nil), cfg.UnescapeChars...),
		repls:   append([]Replacement(nil), cfg.Replacements...),
		cache:   cfg.Cache,
	}
	if p.name == "" {
		p.name = "pattern:" + cfg.Pattern.String()
	}
	if p.cache == nil {
		p.cache = gfmpipe.NewEscapeCache()
	}
	if len(cfg.GlobalUnescapeChars) > 0 {
		// Double-escape pairs listed first so the replacer prefers
		// them at each position over the single-escape pairs.
		var pairs []string
		for _, ch := range cfg.GlobalUnescapeChars {
			pairs = append(pairs, `\\`+string(ch), `\`+string(ch))
		}
		for _, ch := range cfg.GlobalUnescapeChars {
			pairs = append(pairs, `\`+string(ch), string(ch))
		}
		p.global = bytereplacer.New(pairs...)
	}
	return p, nil
}

// Name implements [Plugin].
func (p *PatternPlugin) Name() string { return p.name }

// Transform applies the global unescapes to the whole text, then
// rewrites each line matching the pattern: configured characters are
// unescaped first, replacements run after, in their given order.
func (p *PatternPlugin) Transform(text string) string {
	if p.global != nil {
		text = string(p.global.Replace([]byte(text)))
	}
	lines := gfmpipe.SplitLines(text)
	for i, line := range lines {
		if !p.pattern.MatchString(line) {
			continue
		}
		line = p.cache.Unescape(line, p.chars...)
		for _, r := range p.repls {
			if r.OldPattern != nil {
				line = r.OldPattern.ReplaceAllString(line, r.New)
			} else if r.Old != "" {
				line = strings.ReplaceAll(line, r.Old, r.New)
			}
		}
		lines[i] = line
	}
	return gfmpipe.JoinLines(lines)
}
