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

// Package metamodel represents the object-language metamodel: sorts,
// constructors, judgments, meta-variables, patterns, inference rules,
// and recursive function definitions, plus the Registry that owns
// them all and enforces referential-integrity deletion.
package metamodel

import "github.com/logicforge/logicforge/pkg/ids"

// SortKind distinguishes inductive sorts (defined by constructors)
// from atom sorts (an infinite family of distinct names).
type SortKind int

const (
	KindInductive SortKind = iota
	KindAtom
)

func (k SortKind) String() string {
	switch k {
	case KindInductive:
		return "inductive"
	case KindAtom:
		return "atom"
	default:
		return "unknown"
	}
}

// Sort is a syntactic category. Atom sorts carry a non-empty
// AtomPrefix; inductive sorts carry none. This invariant is enforced
// by the Registry at creation/update time, not by this type itself.
type Sort struct {
	ID         ids.ID
	Name       string
	Kind       SortKind
	IsBinder   bool
	AtomPrefix string
}

// ConstructorArg is one positional argument of a Constructor.
type ConstructorArg struct {
	ID       ids.ID
	SortID   ids.ID
	Label    string
	IsBinder bool
	BindsIn  []ids.ID // ids of sibling ConstructorArgs this arg's binder scopes over
}

// Constructor introduces one case of an inductive Sort.
type Constructor struct {
	ID     ids.ID
	SortID ids.ID
	Name   string
	Args   []ConstructorArg
}

// Terminal reports whether c is a terminal constructor: no argument
// of c recurses into c's own sort. This is a derived attribute and is
// never stored; callers recompute it on demand.
func (c *Constructor) Terminal() bool {
	for _, a := range c.Args {
		if a.SortID == c.SortID {
			return false
		}
	}
	return true
}

// JudgmentArg is one positional argument slot of a Judgment.
type JudgmentArg struct {
	SortID ids.ID
	Label  string
}

// Judgment is a named relation on a tuple of sort-typed positions,
// rendered with Separators interleaved between the arguments.
//
// Invariant: len(Separators) == len(ArgSorts) + 1.
type Judgment struct {
	ID         ids.ID
	Name       string
	Symbol     string
	ArgSorts   []JudgmentArg
	Separators []string
}

// MetaVariable stands for any term of the given sort within a rule's
// local scope.
type MetaVariable struct {
	ID     ids.ID
	Name   string
	SortID ids.ID
}
