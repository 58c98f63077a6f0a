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

// Package term implements object-language Terms: immutable,
// structurally-identified values, plus structural equality,
// rendering, free-variable analysis, and random term generation.
package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
)

// Term is either an atom occurrence of an atom sort, or a constructor
// application. Terms are immutable; identity is structural, not
// pointer-based.
type Term interface {
	isTerm()
	// Sort returns the id of this term's sort.
	Sort(reg *metamodel.Registry) (ids.ID, error)
}

// Atom is an occurrence of a variable name drawn from an atom sort's
// infinite family.
type Atom struct {
	VariableName string
	SortID       ids.ID
}

func (*Atom) isTerm() {}

// Sort returns the atom's own sort id directly.
func (a *Atom) Sort(reg *metamodel.Registry) (ids.ID, error) {
	return a.SortID, nil
}

// Apply is a constructor application: len(Args) must equal the
// constructor's arity, and each arg's sort must match the
// constructor's corresponding ConstructorArg sort.
type Apply struct {
	ConstructorID ids.ID
	Args          []Term
}

func (*Apply) isTerm() {}

// Sort returns the sort of the applied constructor.
func (a *Apply) Sort(reg *metamodel.Registry) (ids.ID, error) {
	c, err := reg.GetConstructor(a.ConstructorID)
	if err != nil {
		return "", err
	}
	return c.SortID, nil
}

// New constructs an Apply term, validating arity against the
// registered constructor. It does not validate argument sorts
// recursively (callers building terms bottom-up get that for free);
// deep validation is provided by Validate.
func New(reg *metamodel.Registry, constructorID ids.ID, args ...Term) (*Apply, error) {
	c, err := reg.GetConstructor(constructorID)
	if err != nil {
		return nil, err
	}
	if len(args) != len(c.Args) {
		return nil, &engerr.ShapeMismatch{
			Context:  "term.New",
			Expected: fmt.Sprintf("%d args for constructor %s", len(c.Args), c.Name),
			Actual:   fmt.Sprintf("%d args", len(args)),
		}
	}
	return &Apply{ConstructorID: constructorID, Args: args}, nil
}

// Validate deep-checks that every argument's sort matches the
// constructor's declared argument sorts, recursively.
func Validate(reg *metamodel.Registry, t Term) error {
	switch t := t.(type) {
	case *Atom:
		s, err := reg.GetSort(t.SortID)
		if err != nil {
			return err
		}
		if s.Kind != metamodel.KindAtom {
			return &engerr.ShapeMismatch{Context: "term.Validate", Expected: "atom sort", Actual: s.Kind.String()}
		}
		return nil
	case *Apply:
		c, err := reg.GetConstructor(t.ConstructorID)
		if err != nil {
			return err
		}
		if len(t.Args) != len(c.Args) {
			return &engerr.ShapeMismatch{Context: "term.Validate", Expected: fmt.Sprintf("%d args", len(c.Args)), Actual: fmt.Sprintf("%d args", len(t.Args))}
		}
		for i, arg := range t.Args {
			if err := Validate(reg, arg); err != nil {
				return err
			}
			s, err := arg.Sort(reg)
			if err != nil {
				return err
			}
			if s != c.Args[i].SortID {
				return &engerr.ShapeMismatch{Context: "term.Validate", Expected: string(c.Args[i].SortID), Actual: string(s)}
			}
		}
		return nil
	default:
		return &engerr.ShapeMismatch{Context: "term.Validate", Expected: "Atom or Apply", Actual: fmt.Sprintf("%T", t)}
	}
}

// Equal reports whether two terms are structurally identical.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case *Atom:
		bAtom, ok := b.(*Atom)
		return ok && a.VariableName == bAtom.VariableName && a.SortID == bAtom.SortID
	case *Apply:
		bApply, ok := b.(*Apply)
		if !ok || a.ConstructorID != bApply.ConstructorID || len(a.Args) != len(bApply.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], bApply.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Render produces a Unicode-friendly rendering of a term, e.g.
// "S(S(Z))" or, for an atom, its variable name.
func Render(reg *metamodel.Registry, t Term) string {
	var b strings.Builder
	render(&b, reg, t)
	return b.String()
}

func render(b *strings.Builder, reg *metamodel.Registry, t Term) {
	switch t := t.(type) {
	case *Atom:
		b.WriteString(t.VariableName)
	case *Apply:
		c, err := reg.GetConstructor(t.ConstructorID)
		name := string(t.ConstructorID)
		if err == nil {
			name = c.Name
		}
		b.WriteString(name)
		if len(t.Args) > 0 {
			b.WriteByte('(')
			for i, arg := range t.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				render(b, reg, arg)
			}
			b.WriteByte(')')
		}
	}
}

// FreeAtomNames returns every distinct atom variable name occurring
// anywhere in t. Binder marks are treated as opaque metadata here, so
// this is a plain occurrence walk, not an alpha-aware free-variable
// computation.
func FreeAtomNames(t Term) map[string]bool {
	names := make(map[string]bool)
	collectAtomNames(t, names)
	return names
}

func collectAtomNames(t Term, out map[string]bool) {
	switch t := t.(type) {
	case *Atom:
		out[t.VariableName] = true
	case *Apply:
		for _, arg := range t.Args {
			collectAtomNames(arg, out)
		}
	}
}

// atomCounters tracks, per atom sort, how many fresh names have been
// generated since the last reset. This module is single-threaded
// (per the concurrency model), so a plain map needs no locking.
var atomCounters = make(map[ids.ID]int)

// ResetAtomCounter resets the fresh-name counter for the given atom
// sort, so the next GenerateRandomTerm (or NextAtom) call reproduces
// the sort's first generated name again.
func ResetAtomCounter(sortID ids.ID) {
	delete(atomCounters, sortID)
}

// NextAtom returns the next fresh atom name for the given sort, using
// its AtomPrefix and a subscript counter, e.g. prefix "x" yields
// x1, x2, x3, ... in successive calls.
func NextAtom(s *metamodel.Sort) *Atom {
	n := atomCounters[s.ID] + 1
	atomCounters[s.ID] = n
	return &Atom{VariableName: s.AtomPrefix + strconv.Itoa(n), SortID: s.ID}
}

// Rng is the minimal random-bit source GenerateRandomTerm needs,
// satisfied by *rand.Rand constructed with an explicit seed so
// generation stays deterministic given the same seed.
type Rng interface {
	Intn(n int) int
}

// GenerateRandomTerm builds a random, closed term of the given sort
// bounded by maxDepth constructor applications. Atom sorts always
// produce a fresh atom (depth is irrelevant to atoms). Inductive
// sorts pick uniformly among constructors that keep the term within
// maxDepth: at depth 0, only terminal constructors are eligible; if
// none exist, the sort has no term of depth 0 and an error is
// returned.
func GenerateRandomTerm(reg *metamodel.Registry, sortID ids.ID, maxDepth int, rng Rng) (Term, error) {
	s, err := reg.GetSort(sortID)
	if err != nil {
		return nil, err
	}
	if s.Kind == metamodel.KindAtom {
		return NextAtom(s), nil
	}
	ctors := reg.ConstructorsOf(sortID)
	var eligible []*metamodel.Constructor
	if maxDepth <= 0 {
		for _, c := range ctors {
			if c.Terminal() {
				eligible = append(eligible, c)
			}
		}
	} else {
		eligible = ctors
	}
	if len(eligible) == 0 {
		return nil, &engerr.ShapeMismatch{Context: "GenerateRandomTerm", Expected: "a constructor within maxDepth", Actual: "none"}
	}
	c := eligible[rng.Intn(len(eligible))]
	args := make([]Term, len(c.Args))
	for i, arg := range c.Args {
		childDepth := maxDepth - 1
		if arg.SortID != sortID {
			// Unrelated sorts don't consume the depth budget the same
			// way; give them their own full budget.
			childDepth = maxDepth
		}
		t, err := GenerateRandomTerm(reg, arg.SortID, childDepth, rng)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return &Apply{ConstructorID: c.ID, Args: args}, nil
}
