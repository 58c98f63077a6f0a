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

// Package tactic implements proof goals, proofs, and the tactic
// interpreter that steps a proof's open goals forward.
//
// Property and Proof are kept here rather than in pkg/metamodel
// because a Property's statement is a formula.Formula, and
// pkg/formula already imports pkg/metamodel (for name resolution in
// rendering and unfolding); owning Property/Proof in pkg/metamodel
// too would close that into an import cycle. pkg/api composes a
// *metamodel.Registry with a *tactic.Store behind one facade instead.
package tactic

import (
	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/ids"
)

// ContextVar is one variable bound in a goal's context.
type ContextVar struct {
	Name   string
	SortID ids.ID
}

// Hypothesis is one named formula available to a goal.
type Hypothesis struct {
	Name    string
	Formula formula.Formula
}

// GoalContext is the set of variables and hypotheses a ProofGoal may
// refer to.
type GoalContext struct {
	Variables  []ContextVar
	Hypotheses []Hypothesis
}

func (c GoalContext) hasVariable(name string) bool {
	for _, v := range c.Variables {
		if v.Name == name {
			return true
		}
	}
	return false
}

func (c GoalContext) hasHypothesis(name string) bool {
	for _, h := range c.Hypotheses {
		if h.Name == name {
			return true
		}
	}
	return false
}

func (c GoalContext) findHypothesis(name string) (Hypothesis, bool) {
	for _, h := range c.Hypotheses {
		if h.Name == name {
			return h, true
		}
	}
	return Hypothesis{}, false
}

func (c GoalContext) findVariable(name string) (ContextVar, bool) {
	for _, v := range c.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return ContextVar{}, false
}

// hypothesisFormulas returns every hypothesis's formula, in context
// order, as the hypothesis set passed to the arithmetic decider.
func (c GoalContext) hypothesisFormulas() []formula.Formula {
	out := make([]formula.Formula, len(c.Hypotheses))
	for i, h := range c.Hypotheses {
		out[i] = h.Formula
	}
	return out
}

func copyVariables(vs []ContextVar) []ContextVar {
	out := make([]ContextVar, len(vs))
	copy(out, vs)
	return out
}

func copyHypotheses(hs []Hypothesis) []Hypothesis {
	out := make([]Hypothesis, len(hs))
	copy(out, hs)
	return out
}

// ProofGoal is one open or closed node of a Proof: a context plus the
// formula remaining to prove in that context.
type ProofGoal struct {
	ID      ids.ID
	Context GoalContext
	Goal    formula.Formula
}

// Step records one tactic application: the goal it closed and the
// goals (if any) it produced, in order.
type Step struct {
	GoalID          ids.ID
	Tactic          string
	ProducedGoalIDs []ids.ID
}

// ProofStatus discriminates whether a Proof has any open goals left.
type ProofStatus int

const (
	Incomplete ProofStatus = iota
	Complete
)

// Proof is a property's in-progress or finished proof: a growing set
// of goals, an ordered frontier of open ones, and an append-only step
// log. Steps and OpenGoals are only ever appended to or replaced
// wholesale by ApplyTactic's atomic update — nothing in this package
// truncates or rewrites past entries.
type Proof struct {
	ID         ids.ID
	PropertyID ids.ID
	Goals      map[ids.ID]*ProofGoal
	RootGoalID ids.ID
	OpenGoals  []ids.ID
	Steps      []Step
	Status     ProofStatus
}

// Property names a Formula to be proved.
type Property struct {
	ID        ids.ID
	Name      string
	Statement formula.Formula
}

// Store owns every Property and Proof. It mirrors
// metamodel.Registry's "single owner, plain keyed maps" shape, kept
// separate from the Registry itself to avoid the import cycle noted
// in the package doc.
type Store struct {
	Properties map[ids.ID]*Property
	Proofs     map[ids.ID]*Proof
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		Properties: make(map[ids.ID]*Property),
		Proofs:     make(map[ids.ID]*Proof),
	}
}

// CreateProperty registers a new named statement to be proved.
func (s *Store) CreateProperty(name string, statement formula.Formula) *Property {
	p := &Property{ID: ids.New(), Name: name, Statement: statement}
	s.Properties[p.ID] = p
	return p
}

// GetProperty looks up a property by id.
func (s *Store) GetProperty(id ids.ID) (*Property, error) {
	p, ok := s.Properties[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "Property", ID: string(id)}
	}
	return p, nil
}

// DeleteProperty removes a property and cascades to its proof, if any.
func (s *Store) DeleteProperty(id ids.ID) error {
	if _, err := s.GetProperty(id); err != nil {
		return err
	}
	for pid, proof := range s.Proofs {
		if proof.PropertyID == id {
			delete(s.Proofs, pid)
		}
	}
	delete(s.Properties, id)
	return nil
}

// GetProof looks up a proof by id.
func (s *Store) GetProof(id ids.ID) (*Proof, error) {
	p, ok := s.Proofs[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "Proof", ID: string(id)}
	}
	return p, nil
}

// StartProof creates a fresh, single-goal proof of property's
// statement in an empty context.
func (s *Store) StartProof(propertyID ids.ID) (*Proof, error) {
	prop, err := s.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	root := &ProofGoal{ID: ids.New(), Goal: prop.Statement}
	proof := &Proof{
		ID:         ids.New(),
		PropertyID: propertyID,
		Goals:      map[ids.ID]*ProofGoal{root.ID: root},
		RootGoalID: root.ID,
		OpenGoals:  []ids.ID{root.ID},
		Status:     Incomplete,
	}
	s.Proofs[proof.ID] = proof
	return proof, nil
}

// DeleteProof removes a proof.
func (s *Store) DeleteProof(id ids.ID) error {
	if _, err := s.GetProof(id); err != nil {
		return err
	}
	delete(s.Proofs, id)
	return nil
}
