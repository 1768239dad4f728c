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

// Package mdsystem assembles a Markdown parser/serializer pair from a
// list of extensions.
//
// An extension declares capabilities by implementing the optional
// contributor interfaces alongside [Extension]. Capabilities are
// resolved once, at [New] time; there is no runtime duck-checking of
// extension descriptors.
package mdsystem

import (
	"github.com/quillmark/gfmpipe"
	"github.com/quillmark/gfmpipe/mdtree"
	"github.com/quillmark/gfmpipe/pipeline"
)

// An Extension contributes syntax to the Markdown system.
// Contribution happens through the optional capability interfaces:
// [BlockRuleContributor], [NodeRuleContributor], [MarkRuleContributor],
// and [PluginContributor]. An extension may implement any subset.
type Extension interface {
	// ExtensionName returns a name unique within one system.
	ExtensionName() string
}

// A BlockRuleContributor adds parser block rules.
// Contributed rules run before the builtin rules.
type BlockRuleContributor interface {
	BlockRules() []mdtree.BlockRule
}

// A NodeRuleContributor adds serializer rules for node types.
type NodeRuleContributor interface {
	NodeRules() map[string]mdtree.NodeFunc
}

// A MarkRuleContributor adds serializer rules for text marks.
type MarkRuleContributor interface {
	MarkRules() map[string]mdtree.MarkRule
}

// A PluginContributor adds post-serialization text passes.
// The system's escape cache is shared with every contributor.
type PluginContributor interface {
	Plugins(cache *gfmpipe.EscapeCache) []pipeline.Plugin
}
