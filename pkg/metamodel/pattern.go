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

package metamodel

import "github.com/logicforge/logicforge/pkg/ids"

// Pattern is a partial term shape: a rose tree whose leaves are
// either a meta-variable reference, a nullary constructor, or an
// empty hole, and whose interior nodes are constructor applications.
//
// The three leaf shapes and the interior shape are modeled as
// distinct types implementing this sealed interface, so a type switch
// over Pattern is exhaustiveness-checked by the compiler in spirit
// (a missing case is caught by go vet's exhaustive checks and by
// review, since Go has no enforced sealed interfaces).
type Pattern interface {
	isPattern()
}

// MetaVarPattern references a MetaVariable; it carries no children
// and unconditionally binds on match.
type MetaVarPattern struct {
	MetaVarID ids.ID
}

func (*MetaVarPattern) isPattern() {}

// HolePattern is an empty hole: no constructor, no meta-variable. It
// never matches and is the only source of pattern incompleteness.
type HolePattern struct{}

func (*HolePattern) isPattern() {}

// CtorPattern applies a Constructor to a sequence of sub-patterns.
// Args must have exactly the constructor's arity; a CtorPattern with
// no args represents a nullary-constructor leaf.
type CtorPattern struct {
	ConstructorID ids.ID
	Args          []Pattern
}

func (*CtorPattern) isPattern() {}

// IsComplete reports whether p contains no empty hole anywhere in its
// tree.
func IsComplete(p Pattern) bool {
	switch p := p.(type) {
	case *MetaVarPattern:
		return true
	case *HolePattern:
		return false
	case *CtorPattern:
		for _, a := range p.Args {
			if !IsComplete(a) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// JudgmentInstance applies a Judgment to a tuple of argument
// patterns, one per ArgSorts position.
type JudgmentInstance struct {
	ID         ids.ID
	JudgmentID ids.ID
	Args       []Pattern
}

// SideCondPred names the ten side-condition predicate shapes.
type SideCondPred int

const (
	SCEq SideCondPred = iota
	SCNeq
	SCLt
	SCLeq
	SCGt
	SCGeq
	SCIsEmpty
	SCNotEmpty
	SCIn
	SCNotIn
)

// SideCondition is a tagged-union predicate applied to a function
// call result, an argument pattern, and (where applicable) a literal
// integer or a membership-element pattern.
type SideCondition struct {
	ID      ids.ID
	Pred    SideCondPred
	FuncID  ids.ID  // the function identifier the predicate calls
	Arg     Pattern // the argument pattern passed to FuncID
	Literal *int    // used by Eq/Neq/Lt/Leq/Gt/Geq
	Elem    Pattern // used by In/NotIn, the membership-element pattern
}

// InferenceRule relates premises and side conditions to a conclusion.
// Meta-variables referenced by Conclusion may be reused in Premises
// and SideConditions; their scope is this rule.
type InferenceRule struct {
	ID             ids.ID
	Name           string
	Premises       []*JudgmentInstance
	SideConditions []*SideCondition
	Conclusion     *JudgmentInstance
	PositionX      float64
	PositionY      float64
}

// IsRuleComplete reports whether every pattern reachable from the
// rule's conclusion and premises is complete.
func IsRuleComplete(r *InferenceRule) bool {
	if r.Conclusion == nil {
		return false
	}
	for _, a := range r.Conclusion.Args {
		if !IsComplete(a) {
			return false
		}
	}
	for _, p := range r.Premises {
		for _, a := range p.Args {
			if !IsComplete(a) {
				return false
			}
		}
	}
	return true
}
