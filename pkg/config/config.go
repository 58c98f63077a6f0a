// Copyright (c) 2026, The logicforge Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config centralizes the resource bounds the engines are
// required to respect.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Limits bounds the otherwise-unbounded recursive algorithms in the
// engine layer. Every field has a sensible built-in default.
type Limits struct {
	// DerivationDepth bounds backward derivation search.
	DerivationDepth int `yaml:"derivationDepth"`

	// EnumerationTermDepth bounds the constructor depth of terms
	// considered during example enumeration.
	EnumerationTermDepth int `yaml:"enumerationTermDepth"`

	// EnumerationMaxPerPosition bounds the number of terms considered
	// per argument position.
	EnumerationMaxPerPosition int `yaml:"enumerationMaxPerPosition"`

	// EnumerationMaxPerSort bounds the number of terms considered per
	// sort across all positions.
	EnumerationMaxPerSort int `yaml:"enumerationMaxPerSort"`

	// EnumerationMaxPositive/MaxNegative bound how many positive and
	// negative examples are returned.
	EnumerationMaxPositive int `yaml:"enumerationMaxPositive"`
	EnumerationMaxNegative int `yaml:"enumerationMaxNegative"`
}

// Default returns the module's built-in resource bounds.
func Default() Limits {
	return Limits{
		DerivationDepth:           10,
		EnumerationTermDepth:      3,
		EnumerationMaxPerPosition: 20,
		EnumerationMaxPerSort:     30,
		EnumerationMaxPositive:    4,
		EnumerationMaxNegative:    4,
	}
}

// Load reads Limits from a YAML file on top of Default's values: a
// field absent from the file keeps its default, while a field the file
// sets, even to zero, takes the file's value.
func Load(path string) (Limits, error) {
	l := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Limits{}, err
	}
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Limits{}, err
	}
	return l, nil
}
