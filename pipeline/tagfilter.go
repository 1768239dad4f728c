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

import "github.com/quillmark/gfmpipe"

// A TagFilterPlugin neutralizes the GFM disallowed raw HTML tags in
// serialized output. See [gfmpipe.FilterDisallowedTags].
type TagFilterPlugin struct{}

// Name implements [Plugin].
func (TagFilterPlugin) Name() string { return "disallowedTagFilter" }

// Transform implements [Plugin].
func (TagFilterPlugin) Transform(text string) string {
	return gfmpipe.FilterDisallowedTags(text)
}
