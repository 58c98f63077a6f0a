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

// Package derive implements syntax-directedness analysis and bounded
// backward derivation search.
//
// The search loop generalizes the SLD-resolution prover this package
// is modeled on (datalog.go's query/subgoal/waiter machinery, search/discovered/
// resolve) from an unbounded, memoized, coroutine-style search over a
// fact/rule database to a directly-recursive, depth-bounded search
// over InferenceRules: instead of waiting on a subgoal's eventual
// facts, each premise is derived to completion (or failure) before
// the next is attempted, since object-language derivation is not
// guaranteed to terminate without an explicit bound.
package derive

import (
	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/function"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/pattern"
	"github.com/logicforge/logicforge/pkg/term"
)

// Derivation is the witness returned by a successful backward
// derivation: a proof tree rooted at the matched rule's conclusion.
type Derivation struct {
	RuleName   string
	RuleID     ids.ID
	JudgmentID ids.ID
	Terms      []term.Term
	Premises   []*Derivation
}

// Derive attempts to derive judgmentId applied to terms, backward
// chaining through InferenceRules up to maxDepth levels deep. Side
// conditions are evaluated after a rule's premises are fully derived;
// a condition evaluating to false or undefined prunes that rule. This
// favors soundness over completeness whenever a side condition's
// function case is not fully defined for the derived bindings.
func Derive(reg *metamodel.Registry, judgmentID ids.ID, terms []term.Term, maxDepth int) (*Derivation, error) {
	if _, err := reg.GetJudgment(judgmentID); err != nil {
		return nil, err
	}
	d, ok := derive(reg, judgmentID, terms, maxDepth)
	if !ok {
		return nil, &engerr.DerivationNotFound{Judgment: string(judgmentID), Depth: maxDepth}
	}
	return d, nil
}

func derive(reg *metamodel.Registry, judgmentID ids.ID, terms []term.Term, depth int) (*Derivation, bool) {
	if depth < 0 {
		return nil, false
	}
	rules := reg.RulesConcluding(judgmentID)
	for _, rule := range rules {
		if rule.Conclusion == nil || len(rule.Conclusion.Args) != len(terms) {
			continue
		}
		bindings, ok := matchAll(rule.Conclusion.Args, terms)
		if !ok {
			continue
		}
		premiseTerms := make([][]term.Term, len(rule.Premises))
		ok = true
		for i, premise := range rule.Premises {
			ts := make([]term.Term, len(premise.Args))
			for j, p := range premise.Args {
				t, err := pattern.Substitute(p, bindings)
				if err != nil {
					ok = false
					break
				}
				ts[j] = t
			}
			if !ok {
				break
			}
			premiseTerms[i] = ts
		}
		if !ok {
			continue
		}
		premiseDerivations := make([]*Derivation, len(rule.Premises))
		allDerived := true
		for i, premise := range rule.Premises {
			pd, ok := derive(reg, premise.JudgmentID, premiseTerms[i], depth-1)
			if !ok {
				allDerived = false
				break
			}
			premiseDerivations[i] = pd
		}
		if !allDerived {
			continue
		}
		if !sideConditionsHold(reg, rule.SideConditions, bindings) {
			continue
		}
		return &Derivation{
			RuleName:   rule.Name,
			RuleID:     rule.ID,
			JudgmentID: judgmentID,
			Terms:      terms,
			Premises:   premiseDerivations,
		}, true
	}
	return nil, false
}

// sideConditionsHold evaluates every side condition of a rule against
// the bindings produced by matching its conclusion (premises are
// instantiated from those bindings and add none of their own). A
// side condition whose function call gets stuck, or whose result has
// the wrong shape for its predicate, is treated as false: this rule
// is simply not applicable to these terms, which is weaker than (and
// safer than) surfacing an evaluation error from Derive.
func sideConditionsHold(reg *metamodel.Registry, conditions []*metamodel.SideCondition, bindings pattern.Bindings) bool {
	for _, sc := range conditions {
		if !sideConditionHolds(reg, sc, bindings) {
			return false
		}
	}
	return true
}

func sideConditionHolds(reg *metamodel.Registry, sc *metamodel.SideCondition, bindings pattern.Bindings) bool {
	argTerm, err := pattern.Substitute(sc.Arg, bindings)
	if err != nil {
		return false
	}
	f, err := reg.GetFunction(sc.FuncID)
	if err != nil {
		return false
	}
	val, err := function.Eval(reg, f, argTerm, function.Env{})
	if err != nil {
		return false
	}
	switch sc.Pred {
	case metamodel.SCEq, metamodel.SCNeq, metamodel.SCLt, metamodel.SCLeq, metamodel.SCGt, metamodel.SCGeq:
		iv, ok := val.(function.IntValue)
		if !ok || sc.Literal == nil {
			return false
		}
		switch sc.Pred {
		case metamodel.SCEq:
			return iv.N == *sc.Literal
		case metamodel.SCNeq:
			return iv.N != *sc.Literal
		case metamodel.SCLt:
			return iv.N < *sc.Literal
		case metamodel.SCLeq:
			return iv.N <= *sc.Literal
		case metamodel.SCGt:
			return iv.N > *sc.Literal
		case metamodel.SCGeq:
			return iv.N >= *sc.Literal
		}
	case metamodel.SCIsEmpty, metamodel.SCNotEmpty:
		sv, ok := val.(function.SetValue)
		if !ok {
			return false
		}
		empty := len(sv.Names) == 0
		if sc.Pred == metamodel.SCIsEmpty {
			return empty
		}
		return !empty
	case metamodel.SCIn, metamodel.SCNotIn:
		sv, ok := val.(function.SetValue)
		if !ok {
			return false
		}
		elemTerm, err := pattern.Substitute(sc.Elem, bindings)
		if err != nil {
			return false
		}
		atom, ok := elemTerm.(*term.Atom)
		if !ok {
			return false
		}
		in := sv.Names[atom.VariableName]
		if sc.Pred == metamodel.SCIn {
			return in
		}
		return !in
	}
	return false
}

func matchAll(patterns []metamodel.Pattern, terms []term.Term) (pattern.Bindings, bool) {
	acc := pattern.Bindings{}
	for i, p := range patterns {
		next, ok := pattern.Match(terms[i], p)
		if !ok {
			return nil, false
		}
		for k, v := range next {
			if existing, already := acc[k]; already {
				if !term.Equal(existing, v) {
					return nil, false
				}
			} else {
				acc[k] = v
			}
		}
	}
	return acc, true
}

// AnalyzeResult is the outcome of syntax-directedness analysis.
type AnalyzeResult struct {
	SyntaxDirected    bool
	OverlappingRules  [][2]ids.ID // pairs of rule ids whose conclusions could overlap
	OverlappingAtArgs []int       // conclusion argument positions found overlapping, appended in OverlappingRules order
}

// AnalyzeSyntaxDirected reports whether the rules concluding j have
// pairwise-disjoint conclusion patterns in at least one argument
// position. Overlap at a position is conservative: it is true unless
// both rules have constructor patterns there with different
// constructor ids; a meta-variable is maximally overlapping. For each
// overlapping pair, every position that contributed to the overlap
// (couldOverlap returned true there) is appended to OverlappingAtArgs
// alongside the pair's entry in OverlappingRules.
func AnalyzeSyntaxDirected(reg *metamodel.Registry, judgmentID ids.ID) (*AnalyzeResult, error) {
	j, err := reg.GetJudgment(judgmentID)
	if err != nil {
		return nil, err
	}
	rules := reg.RulesConcluding(judgmentID)
	result := &AnalyzeResult{SyntaxDirected: true}
	for i := 0; i < len(rules); i++ {
		for k := i + 1; k < len(rules); k++ {
			var atArgs []int
			overlaps := true
			for pos := 0; pos < len(j.ArgSorts); pos++ {
				if !couldOverlap(rules[i].Conclusion.Args[pos], rules[k].Conclusion.Args[pos]) {
					overlaps = false
					break
				}
				atArgs = append(atArgs, pos)
			}
			if overlaps {
				result.SyntaxDirected = false
				result.OverlappingRules = append(result.OverlappingRules, [2]ids.ID{rules[i].ID, rules[k].ID})
				result.OverlappingAtArgs = append(result.OverlappingAtArgs, atArgs...)
			}
		}
	}
	return result, nil
}

// couldOverlap reports whether two conclusion patterns at the same
// position could both match some common term.
func couldOverlap(a, b metamodel.Pattern) bool {
	ac, aIsCtor := a.(*metamodel.CtorPattern)
	bc, bIsCtor := b.(*metamodel.CtorPattern)
	if aIsCtor && bIsCtor {
		if ac.ConstructorID != bc.ConstructorID {
			return false
		}
		for i := range ac.Args {
			if i >= len(bc.Args) {
				break
			}
			if !couldOverlap(ac.Args[i], bc.Args[i]) {
				return false
			}
		}
		return true
	}
	// a meta-variable or hole is maximally overlapping with anything.
	return true
}
