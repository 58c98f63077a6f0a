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

package derive

import (
	"sort"

	"go.uber.org/zap"

	"github.com/logicforge/logicforge/pkg/config"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/term"
)

// EnumerateTerms returns every distinct (by rendered string) closed
// term of sortId up to maxDepth constructor applications, generated
// breadth-first by size so small terms appear first, capped at
// limits.EnumerationMaxPerSort. Truncation is logged, never silent.
func EnumerateTerms(reg *metamodel.Registry, sortID ids.ID, maxDepth int, limits config.Limits, log *zap.Logger) ([]term.Term, error) {
	s, err := reg.GetSort(sortID)
	if err != nil {
		return nil, err
	}
	if s.Kind == metamodel.KindAtom {
		return atomCandidates(reg, s), nil
	}
	var frontier []term.Term
	seen := map[string]bool{}
	for depth := 0; depth <= maxDepth; depth++ {
		next := enumerateAtDepth(reg, sortID, depth)
		for _, t := range next {
			r := term.Render(reg, t)
			if seen[r] {
				continue
			}
			seen[r] = true
			frontier = append(frontier, t)
			if len(frontier) >= limits.EnumerationMaxPerSort {
				if log != nil {
					log.Info("enumeration truncated",
						zap.String("sortId", string(sortID)),
						zap.Int("cap", limits.EnumerationMaxPerSort))
				}
				return frontier, nil
			}
		}
	}
	return frontier, nil
}

// enumerateAtDepth returns the terms of sortId generated at step depth:
// at depth 0 the nullary constructors (or an atom sort's candidates);
// at depth d > 0 every non-nullary constructor applied to arguments
// drawn from depths 0..d-1, so a term already produced at a smaller
// depth can appear again (EnumerateTerms drops such repeats by
// rendered string). It recomputes smaller depths internally;
// callers enumerating multiple depths in sequence pay redundant work
// in exchange for a simple, allocation-light recursive shape.
func enumerateAtDepth(reg *metamodel.Registry, sortID ids.ID, depth int) []term.Term {
	if s, err := reg.GetSort(sortID); err == nil && s.Kind == metamodel.KindAtom {
		if depth != 0 {
			return nil
		}
		return atomCandidates(reg, s)
	}
	ctors := reg.ConstructorsOf(sortID)
	var out []term.Term
	for _, c := range ctors {
		if len(c.Args) == 0 {
			if depth == 0 {
				out = append(out, &term.Apply{ConstructorID: c.ID, Args: nil})
			}
			continue
		}
		if depth == 0 {
			continue
		}
		out = append(out, combineArgs(reg, c, depth-1)...)
	}
	return out
}

// atomVariantsPerSort bounds how many distinct fresh atoms are offered
// as candidates for an atom-sorted constructor argument, so examples
// exercising a binder-sorted position (e.g. a side condition
// distinguishing two bound names) stay possible without the product
// size exploding the way an unbounded fresh-atom stream would.
const atomVariantsPerSort = 2

func atomCandidates(reg *metamodel.Registry, s *metamodel.Sort) []term.Term {
	term.ResetAtomCounter(s.ID)
	out := make([]term.Term, 0, atomVariantsPerSort)
	for i := 0; i < atomVariantsPerSort; i++ {
		out = append(out, term.NextAtom(s))
	}
	return out
}

// combineArgs produces every way to fill c's arguments with terms of
// depth up to maxArgDepth each, taking the cartesian
// product of each argument's candidate set across depths 0..maxArgDepth.
func combineArgs(reg *metamodel.Registry, c *metamodel.Constructor, maxArgDepth int) []term.Term {
	candidates := make([][]term.Term, len(c.Args))
	for i, arg := range c.Args {
		var all []term.Term
		for d := 0; d <= maxArgDepth; d++ {
			all = append(all, enumerateAtDepth(reg, arg.SortID, d)...)
		}
		candidates[i] = all
	}
	var out []term.Term
	var build func(i int, acc []term.Term)
	build = func(i int, acc []term.Term) {
		if i == len(candidates) {
			args := make([]term.Term, len(acc))
			copy(args, acc)
			out = append(out, &term.Apply{ConstructorID: c.ID, Args: args})
			return
		}
		for _, t := range candidates[i] {
			build(i+1, append(acc, t))
		}
	}
	if len(candidates) > 0 {
		build(0, nil)
	}
	return out
}

// ExampleClass distinguishes the two buckets an enumerated tuple is
// classified into.
type ExampleClass int

const (
	ClassPositive ExampleClass = iota
	ClassNegative
)

// Example is one classified tuple produced by EnumerateExamples.
type Example struct {
	Terms []term.Term
	Class ExampleClass
}

// EnumerateExamples enumerates tuples of terms (one per judgment
// argument position) breadth-first by combined size, feeds each
// through Derive, and classifies it as a positive (derivable) or
// negative (not derivable within maxDerivationDepth) example. It stops
// once it has limits.EnumerationMaxPositive positive and
// limits.EnumerationMaxNegative negative examples, or exhausts the
// per-position term pools, whichever comes first; any exhaustion
// before both buckets fill is logged.
func EnumerateExamples(reg *metamodel.Registry, judgmentID ids.ID, limits config.Limits, maxDerivationDepth int, log *zap.Logger) ([]Example, error) {
	j, err := reg.GetJudgment(judgmentID)
	if err != nil {
		return nil, err
	}
	pools := make([][]term.Term, len(j.ArgSorts))
	for i, arg := range j.ArgSorts {
		terms, err := EnumerateTerms(reg, arg.SortID, limits.EnumerationTermDepth, limits, log)
		if err != nil {
			return nil, err
		}
		if len(terms) > limits.EnumerationMaxPerPosition {
			if log != nil {
				log.Info("enumeration position truncated",
					zap.String("judgmentId", string(judgmentID)),
					zap.Int("position", i),
					zap.Int("cap", limits.EnumerationMaxPerPosition))
			}
			terms = terms[:limits.EnumerationMaxPerPosition]
		}
		pools[i] = terms
	}

	var tuples [][]term.Term
	var build func(i int, acc []term.Term)
	build = func(i int, acc []term.Term) {
		if i == len(pools) {
			tupleCopy := make([]term.Term, len(acc))
			copy(tupleCopy, acc)
			tuples = append(tuples, tupleCopy)
			return
		}
		for _, t := range pools[i] {
			build(i+1, append(acc, t))
		}
	}
	build(0, nil)

	sort.SliceStable(tuples, func(a, b int) bool {
		return combinedSize(reg, tuples[a]) < combinedSize(reg, tuples[b])
	})

	var out []Example
	positives, negatives := 0, 0
	seen := map[string]bool{}
	for _, tuple := range tuples {
		if positives >= limits.EnumerationMaxPositive && negatives >= limits.EnumerationMaxNegative {
			break
		}
		key := tupleKey(reg, tuple)
		if seen[key] {
			continue
		}
		seen[key] = true
		_, err := Derive(reg, judgmentID, tuple, maxDerivationDepth)
		if err == nil {
			if positives >= limits.EnumerationMaxPositive {
				continue
			}
			out = append(out, Example{Terms: tuple, Class: ClassPositive})
			positives++
		} else {
			if negatives >= limits.EnumerationMaxNegative {
				continue
			}
			out = append(out, Example{Terms: tuple, Class: ClassNegative})
			negatives++
		}
	}
	if log != nil && (positives < limits.EnumerationMaxPositive || negatives < limits.EnumerationMaxNegative) {
		log.Info("enumeration exhausted term pools before filling example buckets",
			zap.String("judgmentId", string(judgmentID)),
			zap.Int("positives", positives),
			zap.Int("negatives", negatives))
	}
	return out, nil
}

func combinedSize(reg *metamodel.Registry, terms []term.Term) int {
	total := 0
	for _, t := range terms {
		total += termSize(t)
	}
	return total
}

func termSize(t term.Term) int {
	switch t := t.(type) {
	case *term.Atom:
		return 1
	case *term.Apply:
		n := 1
		for _, a := range t.Args {
			n += termSize(a)
		}
		return n
	default:
		return 1
	}
}

func tupleKey(reg *metamodel.Registry, terms []term.Term) string {
	key := ""
	for i, t := range terms {
		if i > 0 {
			key += "\x1f"
		}
		key += term.Render(reg, t)
	}
	return key
}
