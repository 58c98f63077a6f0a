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

// Package pattern implements pattern/term matching and pattern
// substitution, the two operations the rest of the engine (rule
// conclusions, premises, and function cases) is built from.
//
// This generalizes the pointer-identity unification this package is
// modeled on (datalog.go's unify/chase/env) from "two pointers are the same
// variable" to "two meta-variable ids are the same meta-variable,"
// and from unbounded variable-to-variable unification (Datalog terms
// can unify two open variables) to one-directional matching (a
// Pattern's meta-variables bind to a closed Term; Terms have no
// meta-variables of their own).
package pattern

import (
	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/term"
)

// Bindings maps meta-variable ids to the terms they are bound to.
type Bindings map[ids.ID]term.Term

// Clone returns a shallow copy of b.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Match attempts to match t against p, returning the resulting
// bindings and true on success, or nil and false on failure. A
// meta-variable pattern unconditionally binds; a constructor pattern
// requires t to be a matching constructor application of equal arity
// and recurses pairwise, merging bindings so that a meta-variable
// bound twice must map to structurally equal terms (tie-break: this
// equality is always structural, never an id comparison). Atom terms never match constructor patterns. Empty
// holes never match anything.
func Match(t term.Term, p metamodel.Pattern) (Bindings, bool) {
	return matchInto(t, p, Bindings{})
}

func matchInto(t term.Term, p metamodel.Pattern, acc Bindings) (Bindings, bool) {
	switch p := p.(type) {
	case *metamodel.HolePattern:
		return nil, false
	case *metamodel.MetaVarPattern:
		if existing, ok := acc[p.MetaVarID]; ok {
			if !term.Equal(existing, t) {
				return nil, false
			}
			return acc, true
		}
		acc[p.MetaVarID] = t
		return acc, true
	case *metamodel.CtorPattern:
		apply, ok := t.(*term.Apply)
		if !ok || apply.ConstructorID != p.ConstructorID || len(apply.Args) != len(p.Args) {
			return nil, false
		}
		for i, subPattern := range p.Args {
			var ok bool
			acc, ok = matchInto(apply.Args[i], subPattern, acc)
			if !ok {
				return nil, false
			}
		}
		return acc, true
	default:
		return nil, false
	}
}

// Substitute applies bindings to a complete pattern, producing a
// concrete term. A meta-variable pattern returns its bound term
// (engerr.NotFound if unbound); a constructor pattern recursively
// substitutes its args; an empty hole always fails with
// engerr.IncompletePattern.
func Substitute(p metamodel.Pattern, b Bindings) (term.Term, error) {
	switch p := p.(type) {
	case *metamodel.HolePattern:
		return nil, &engerr.IncompletePattern{Context: "Substitute"}
	case *metamodel.MetaVarPattern:
		t, ok := b[p.MetaVarID]
		if !ok {
			return nil, &engerr.NotFound{Kind: "binding for MetaVariable", ID: string(p.MetaVarID)}
		}
		return t, nil
	case *metamodel.CtorPattern:
		args := make([]term.Term, len(p.Args))
		for i, sub := range p.Args {
			t, err := Substitute(sub, b)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &term.Apply{ConstructorID: p.ConstructorID, Args: args}, nil
	default:
		return nil, &engerr.ShapeMismatch{Context: "Substitute", Expected: "a known Pattern kind", Actual: "unknown"}
	}
}

// IsComplete reports whether p contains no empty hole.
func IsComplete(p metamodel.Pattern) bool {
	return metamodel.IsComplete(p)
}

// IsRuleComplete reports whether every pattern reachable from a
// rule's conclusion and premises is complete.
func IsRuleComplete(r *metamodel.InferenceRule) bool {
	return metamodel.IsRuleComplete(r)
}
