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
	"log/slog"

	"github.com/quillmark/gfmpipe/mdtree"
)

// A SafeSerializer falls back to the document's plain text content when
// the wrapped serializer fails. The editor surface prefers showing
// something over propagating an error; the swallowed error is logged,
// never silent.
type SafeSerializer struct {
	base Serializer
	log  *slog.Logger
}

// NewSafeSerializer wraps base. A nil logger means [slog.Default].
func NewSafeSerializer(base Serializer, logger *slog.Logger) *SafeSerializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SafeSerializer{base: base, log: logger}
}

// Serialize implements [Serializer]. It never returns an error.
func (s *SafeSerializer) Serialize(doc *mdtree.Node) (string, error) {
	text, err := s.base.Serialize(doc)
	if err != nil {
		s.log.Warn("markdown serialize failed; falling back to plain text", "error", err)
		return doc.PlainText(), nil
	}
	return text, nil
}
