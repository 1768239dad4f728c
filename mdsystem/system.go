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
	"fmt"
	"log/slog"

	"github.com/quillmark/gfmpipe"
	"github.com/quillmark/gfmpipe/mdtree"
	"github.com/quillmark/gfmpipe/pipeline"
)

// Options tune a [System] beyond what extensions contribute.
type Options struct {
	// TextProcessing runs after every extension-contributed pass,
	// in slice order.
	TextProcessing []pipeline.Plugin

	// Logger receives serialization fallback warnings.
	// Nil means slog.Default.
	Logger *slog.Logger

	// Cache is the escape-pattern cache shared with extensions.
	// Nil means a fresh private cache.
	Cache *gfmpipe.EscapeCache
}

// A System is a matched parser/serializer pair built from one
// extension list. Markdown parsed by Parser serializes back through
// Serializer with the same syntax rules in effect on both sides.
type System struct {
	Parser     *mdtree.Parser
	Serializer pipeline.Serializer
	Cache      *gfmpipe.EscapeCache
}

// New builds a system from the given extensions. Extension order is
// contribution order: earlier extensions' block rules match first and
// their text passes run first. Two extensions with the same name are a
// configuration error.
func New(extensions []Extension, opts Options) (*System, error) {
	cache := opts.Cache
	if cache == nil {
		cache = gfmpipe.NewEscapeCache()
	}

	seen := make(map[string]bool)
	var blockRules []mdtree.BlockRule
	var plugins []pipeline.Plugin
	base := mdtree.NewSerializer()
	for _, ext := range extensions {
		name := ext.ExtensionName()
		if seen[name] {
			return nil, fmt.Errorf("markdown system: duplicate extension %q", name)
		}
		seen[name] = true

		if c, ok := ext.(BlockRuleContributor); ok {
			blockRules = append(blockRules, c.BlockRules()...)
		}
		if c, ok := ext.(NodeRuleContributor); ok {
			for typ, fn := range c.NodeRules() {
				base.HandleNode(typ, fn)
			}
		}
		if c, ok := ext.(MarkRuleContributor); ok {
			for mark, rule := range c.MarkRules() {
				base.HandleMark(mark, rule)
			}
		}
		if c, ok := ext.(PluginContributor); ok {
			plugins = append(plugins, c.Plugins(cache)...)
		}
	}
	plugins = append(plugins, opts.TextProcessing...)

	return &System{
		Parser:     mdtree.NewParser(blockRules...),
		Serializer: pipeline.Compose(pipeline.NewSafeSerializer(base, opts.Logger), plugins...),
		Cache:      cache,
	}, nil
}

// Convert parses Markdown and serializes it back. It is the round-trip
// entry point: with no extensions and no plugins the output is a
// normalized form of the input, and running Convert on its own output
// is a fixed point.
func (sys *System) Convert(markdown string) (string, error) {
	return sys.Serializer.Serialize(sys.Parser.Parse(markdown))
}
