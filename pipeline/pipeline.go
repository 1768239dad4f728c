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

// Package pipeline composes text-processing passes over a single
// Markdown serialize call.
//
// Each pass is a [Plugin]: a named Markdown-text-to-Markdown-text
// transform. [Compose] chains plugins after a base [Serializer] as an
// explicit decorator, so no method on the base serializer is ever
// mutated. A plugin name already applied to a given composed serializer
// is skipped on re-application, which makes composition idempotent per
// serializer instance without any global state.
package pipeline

import (
	"github.com/quillmark/gfmpipe/mdtree"
)

// A Serializer converts a document tree into Markdown text.
// *mdtree.Serializer is the usual base implementation.
type Serializer interface {
	Serialize(doc *mdtree.Node) (string, error)
}

// A Plugin is one post-serialization rewrite pass.
// Transform must be pure: same input, same output, no shared state.
type Plugin interface {
	Name() string
	Transform(text string) string
}

// NewPlugin adapts a function into a [Plugin].
func NewPlugin(name string, fn func(string) string) Plugin {
	return funcPlugin{name: name, fn: fn}
}

type funcPlugin struct {
	name string
	fn   func(string) string
}

func (p funcPlugin) Name() string                 { return p.name }
func (p funcPlugin) Transform(text string) string { return p.fn(text) }

// A Composed serializer applies its plugins, in order, to the output of
// the base serializer.
type Composed struct {
	base    Serializer
	plugins []Plugin
	applied map[string]bool
}

// Compose appends plugins to base. If base is already a *Composed, the
// same instance is extended; plugins whose names were already applied
// to it are skipped, so composing twice with the same plugin cannot
// double-transform. Distinct composed serializers share nothing: the
// guard is per instance.
func Compose(base Serializer, plugins ...Plugin) *Composed {
	c, ok := base.(*Composed)
	if !ok {
		c = &Composed{base: base, applied: make(map[string]bool)}
	}
	for _, p := range plugins {
		if c.applied[p.Name()] {
			continue
		}
		c.applied[p.Name()] = true
		c.plugins = append(c.plugins, p)
	}
	return c
}

// Applied reports whether a plugin with the given name has been
// composed onto this serializer.
func (c *Composed) Applied(name string) bool {
	return c.applied[name]
}

// Serialize runs the base serializer, then each plugin in composition
// order. A base error is returned as-is with no partial output.
func (c *Composed) Serialize(doc *mdtree.Node) (string, error) {
	text, err := c.base.Serialize(doc)
	if err != nil {
		return "", err
	}
	for _, p := range c.plugins {
		text = p.Transform(text)
	}
	return text, nil
}
