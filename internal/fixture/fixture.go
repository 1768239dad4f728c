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

// Package fixture provides the shared round-trip documents used by the
// pipeline tests.
package fixture

import (
	_ "embed"
	"encoding/json"
)

// Example is one round-trip document: Markdown that converting through
// a GFM system must reproduce unchanged.
type Example struct {
	Name     string
	Markdown string
}

//go:embed roundtrip.json
var roundtripData []byte

// Load returns the round-trip examples.
func Load() ([]Example, error) {
	var examples []Example
	if err := json.Unmarshal(roundtripData, &examples); err != nil {
		return nil, err
	}
	return examples, nil
}
