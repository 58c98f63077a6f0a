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

package api

import (
	"sort"

	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/tactic"
)

// Snapshot is the serializable form of an Engine's entire state: every
// registry-owned entity plus every property and proof. Entries are
// stored as sorted slices rather than maps so two snapshots of the
// same state marshal to byte-identical YAML.
type Snapshot struct {
	Sorts         []SortDTO         `yaml:"sorts"`
	Constructors  []ConstructorDTO  `yaml:"constructors"`
	Judgments     []JudgmentDTO     `yaml:"judgments"`
	MetaVariables []MetaVariableDTO `yaml:"metaVariables"`
	Rules         []RuleDTO         `yaml:"rules"`
	Funcs         []FuncDTO         `yaml:"funcs"`
	Properties    []PropertyDTO     `yaml:"properties"`
	Proofs        []ProofDTO        `yaml:"proofs"`
}

type SortDTO struct {
	ID         ids.ID `yaml:"id"`
	Name       string `yaml:"name"`
	Kind       metamodel.SortKind `yaml:"kind"`
	IsBinder   bool   `yaml:"isBinder"`
	AtomPrefix string `yaml:"atomPrefix,omitempty"`
}

type ConstructorArgDTO struct {
	ID       ids.ID   `yaml:"id"`
	SortID   ids.ID   `yaml:"sortId"`
	Label    string   `yaml:"label"`
	IsBinder bool     `yaml:"isBinder"`
	BindsIn  []ids.ID `yaml:"bindsIn,omitempty"`
}

type ConstructorDTO struct {
	ID     ids.ID              `yaml:"id"`
	SortID ids.ID              `yaml:"sortId"`
	Name   string              `yaml:"name"`
	Args   []ConstructorArgDTO `yaml:"args"`
}

type JudgmentArgDTO struct {
	SortID ids.ID `yaml:"sortId"`
	Label  string `yaml:"label"`
}

type JudgmentDTO struct {
	ID         ids.ID           `yaml:"id"`
	Name       string           `yaml:"name"`
	Symbol     string           `yaml:"symbol"`
	ArgSorts   []JudgmentArgDTO `yaml:"argSorts"`
	Separators []string         `yaml:"separators"`
}

type MetaVariableDTO struct {
	ID     ids.ID `yaml:"id"`
	Name   string `yaml:"name"`
	SortID ids.ID `yaml:"sortId"`
}

type RuleDTO struct {
	ID             ids.ID                 `yaml:"id"`
	Name           string                 `yaml:"name"`
	Premises       []JudgmentInstanceDTO  `yaml:"premises"`
	SideConditions []SideConditionDTO     `yaml:"sideConditions"`
	Conclusion     JudgmentInstanceDTO    `yaml:"conclusion"`
	PositionX      float64                `yaml:"positionX"`
	PositionY      float64                `yaml:"positionY"`
}

type ExtraArgDTO struct {
	Name   string `yaml:"name"`
	SortID ids.ID `yaml:"sortId"`
}

type FuncReturnTypeDTO struct {
	Kind          metamodel.FuncReturnTypeKind `yaml:"kind"`
	ElementSortID ids.ID                       `yaml:"elementSortId,omitempty"`
	SortID        ids.ID                       `yaml:"sortId,omitempty"`
}

type FuncCaseDTO struct {
	ConstructorID ids.ID       `yaml:"constructorId"`
	BoundVars     []string     `yaml:"boundVars"`
	Body          *FuncExprDTO `yaml:"body,omitempty"`
}

type TerminationErrorDTO struct {
	ConstructorName string `yaml:"constructorName"`
	Reason          string `yaml:"reason"`
}

type FuncDTO struct {
	ID               ids.ID               `yaml:"id"`
	Name             string               `yaml:"name"`
	PrincipalSortID  ids.ID               `yaml:"principalSortId"`
	ExtraArgs        []ExtraArgDTO        `yaml:"extraArgs"`
	ReturnType       FuncReturnTypeDTO    `yaml:"returnType"`
	Cases            []FuncCaseDTO        `yaml:"cases"`
	Terminates       bool                 `yaml:"terminates"`
	TerminationError *TerminationErrorDTO `yaml:"terminationError,omitempty"`
}

type PropertyDTO struct {
	ID        ids.ID      `yaml:"id"`
	Name      string      `yaml:"name"`
	Statement *FormulaDTO `yaml:"statement"`
}

type ContextVarDTO struct {
	Name   string `yaml:"name"`
	SortID ids.ID `yaml:"sortId"`
}

type HypothesisDTO struct {
	Name    string      `yaml:"name"`
	Formula *FormulaDTO `yaml:"formula"`
}

type GoalContextDTO struct {
	Variables  []ContextVarDTO `yaml:"variables"`
	Hypotheses []HypothesisDTO `yaml:"hypotheses"`
}

type ProofGoalDTO struct {
	ID      ids.ID         `yaml:"id"`
	Context GoalContextDTO `yaml:"context"`
	Goal    *FormulaDTO    `yaml:"goal"`
}

type StepDTO struct {
	GoalID          ids.ID   `yaml:"goalId"`
	Tactic          string   `yaml:"tactic"`
	ProducedGoalIDs []ids.ID `yaml:"producedGoalIds,omitempty"`
}

type ProofDTO struct {
	ID         ids.ID              `yaml:"id"`
	PropertyID ids.ID              `yaml:"propertyId"`
	Goals      []ProofGoalDTO      `yaml:"goals"`
	RootGoalID ids.ID              `yaml:"rootGoalId"`
	OpenGoals  []ids.ID            `yaml:"openGoals"`
	Steps      []StepDTO           `yaml:"steps"`
	Status     tactic.ProofStatus  `yaml:"status"`
}

// ToSnapshot serializes every entity the Engine owns into a Snapshot,
// in a deterministic (sorted by id) order.
func (e *Engine) ToSnapshot() Snapshot {
	s := Snapshot{}

	for _, id := range sortedIDs(e.Reg.Sorts) {
		so := e.Reg.Sorts[id]
		s.Sorts = append(s.Sorts, SortDTO{ID: so.ID, Name: so.Name, Kind: so.Kind, IsBinder: so.IsBinder, AtomPrefix: so.AtomPrefix})
	}
	for _, id := range sortedIDs(e.Reg.Constructors) {
		c := e.Reg.Constructors[id]
		args := make([]ConstructorArgDTO, len(c.Args))
		for i, a := range c.Args {
			args[i] = ConstructorArgDTO{ID: a.ID, SortID: a.SortID, Label: a.Label, IsBinder: a.IsBinder, BindsIn: a.BindsIn}
		}
		s.Constructors = append(s.Constructors, ConstructorDTO{ID: c.ID, SortID: c.SortID, Name: c.Name, Args: args})
	}
	for _, id := range sortedIDs(e.Reg.Judgments) {
		j := e.Reg.Judgments[id]
		argSorts := make([]JudgmentArgDTO, len(j.ArgSorts))
		for i, a := range j.ArgSorts {
			argSorts[i] = JudgmentArgDTO{SortID: a.SortID, Label: a.Label}
		}
		s.Judgments = append(s.Judgments, JudgmentDTO{ID: j.ID, Name: j.Name, Symbol: j.Symbol, ArgSorts: argSorts, Separators: j.Separators})
	}
	for _, id := range sortedIDs(e.Reg.MetaVariables) {
		mv := e.Reg.MetaVariables[id]
		s.MetaVariables = append(s.MetaVariables, MetaVariableDTO{ID: mv.ID, Name: mv.Name, SortID: mv.SortID})
	}
	for _, id := range sortedIDs(e.Reg.Rules) {
		r := e.Reg.Rules[id]
		premises := make([]JudgmentInstanceDTO, len(r.Premises))
		for i, p := range r.Premises {
			premises[i] = *judgmentInstanceToDTO(p)
		}
		scs := make([]SideConditionDTO, len(r.SideConditions))
		for i, sc := range r.SideConditions {
			scs[i] = *sideConditionToDTO(sc)
		}
		s.Rules = append(s.Rules, RuleDTO{
			ID: r.ID, Name: r.Name, Premises: premises, SideConditions: scs,
			Conclusion: *judgmentInstanceToDTO(r.Conclusion), PositionX: r.PositionX, PositionY: r.PositionY,
		})
	}
	for _, id := range sortedIDs(e.Reg.Funcs) {
		f := e.Reg.Funcs[id]
		extraArgs := make([]ExtraArgDTO, len(f.ExtraArgs))
		for i, a := range f.ExtraArgs {
			extraArgs[i] = ExtraArgDTO{Name: a.Name, SortID: a.SortID}
		}
		cases := make([]FuncCaseDTO, len(f.Cases))
		for i, c := range f.Cases {
			cases[i] = FuncCaseDTO{ConstructorID: c.ConstructorID, BoundVars: c.BoundVars, Body: funcExprToDTO(c.Body)}
		}
		var tErr *TerminationErrorDTO
		if f.TerminationError != nil {
			tErr = &TerminationErrorDTO{ConstructorName: f.TerminationError.ConstructorName, Reason: f.TerminationError.Reason}
		}
		s.Funcs = append(s.Funcs, FuncDTO{
			ID: f.ID, Name: f.Name, PrincipalSortID: f.PrincipalSortID, ExtraArgs: extraArgs,
			ReturnType: FuncReturnTypeDTO{Kind: f.ReturnType.Kind, ElementSortID: f.ReturnType.ElementSortID, SortID: f.ReturnType.SortID},
			Cases: cases, Terminates: f.Terminates, TerminationError: tErr,
		})
	}
	for _, id := range sortedIDs(e.Tactics.Properties) {
		p := e.Tactics.Properties[id]
		s.Properties = append(s.Properties, PropertyDTO{ID: p.ID, Name: p.Name, Statement: formulaToDTO(p.Statement)})
	}
	for _, id := range sortedIDs(e.Tactics.Proofs) {
		p := e.Tactics.Proofs[id]
		s.Proofs = append(s.Proofs, proofToDTO(p))
	}
	return s
}

func proofToDTO(p *tactic.Proof) ProofDTO {
	goals := make([]ProofGoalDTO, 0, len(p.Goals))
	for _, gid := range sortedIDs(p.Goals) {
		g := p.Goals[gid]
		vars := make([]ContextVarDTO, len(g.Context.Variables))
		for i, v := range g.Context.Variables {
			vars[i] = ContextVarDTO{Name: v.Name, SortID: v.SortID}
		}
		hyps := make([]HypothesisDTO, len(g.Context.Hypotheses))
		for i, h := range g.Context.Hypotheses {
			hyps[i] = HypothesisDTO{Name: h.Name, Formula: formulaToDTO(h.Formula)}
		}
		goals = append(goals, ProofGoalDTO{
			ID:      g.ID,
			Context: GoalContextDTO{Variables: vars, Hypotheses: hyps},
			Goal:    formulaToDTO(g.Goal),
		})
	}
	steps := make([]StepDTO, len(p.Steps))
	for i, st := range p.Steps {
		steps[i] = StepDTO{GoalID: st.GoalID, Tactic: st.Tactic, ProducedGoalIDs: st.ProducedGoalIDs}
	}
	return ProofDTO{
		ID: p.ID, PropertyID: p.PropertyID, Goals: goals, RootGoalID: p.RootGoalID,
		OpenGoals: p.OpenGoals, Steps: steps, Status: p.Status,
	}
}

// FromSnapshot replaces e's registry and proof store wholesale with the
// entities encoded in s. Each kind is loaded in one pass, by id;
// entities refer to one another only by id (rule premises and
// conclusions reference meta-variables and constructors, never rules),
// so load order within each kind does not matter.
func (e *Engine) FromSnapshot(s Snapshot) {
	e.Reg = metamodel.NewRegistry()
	e.Tactics = tactic.NewStore()

	for _, so := range s.Sorts {
		e.Reg.Sorts[so.ID] = &metamodel.Sort{ID: so.ID, Name: so.Name, Kind: so.Kind, IsBinder: so.IsBinder, AtomPrefix: so.AtomPrefix}
	}
	for _, c := range s.Constructors {
		args := make([]metamodel.ConstructorArg, len(c.Args))
		for i, a := range c.Args {
			args[i] = metamodel.ConstructorArg{ID: a.ID, SortID: a.SortID, Label: a.Label, IsBinder: a.IsBinder, BindsIn: a.BindsIn}
		}
		e.Reg.Constructors[c.ID] = &metamodel.Constructor{ID: c.ID, SortID: c.SortID, Name: c.Name, Args: args}
	}
	for _, j := range s.Judgments {
		argSorts := make([]metamodel.JudgmentArg, len(j.ArgSorts))
		for i, a := range j.ArgSorts {
			argSorts[i] = metamodel.JudgmentArg{SortID: a.SortID, Label: a.Label}
		}
		e.Reg.Judgments[j.ID] = &metamodel.Judgment{ID: j.ID, Name: j.Name, Symbol: j.Symbol, ArgSorts: argSorts, Separators: j.Separators}
	}
	for _, mv := range s.MetaVariables {
		e.Reg.MetaVariables[mv.ID] = &metamodel.MetaVariable{ID: mv.ID, Name: mv.Name, SortID: mv.SortID}
	}
	for _, r := range s.Rules {
		premises := make([]*metamodel.JudgmentInstance, len(r.Premises))
		for i, p := range r.Premises {
			p := p
			premises[i] = dtoToJudgmentInstance(&p)
		}
		scs := make([]*metamodel.SideCondition, len(r.SideConditions))
		for i, sc := range r.SideConditions {
			sc := sc
			scs[i] = dtoToSideCondition(&sc)
		}
		e.Reg.Rules[r.ID] = &metamodel.InferenceRule{
			ID: r.ID, Name: r.Name, Premises: premises, SideConditions: scs,
			Conclusion: dtoToJudgmentInstance(&r.Conclusion), PositionX: r.PositionX, PositionY: r.PositionY,
		}
	}
	for _, f := range s.Funcs {
		extraArgs := make([]metamodel.ExtraArg, len(f.ExtraArgs))
		for i, a := range f.ExtraArgs {
			extraArgs[i] = metamodel.ExtraArg{Name: a.Name, SortID: a.SortID}
		}
		cases := make([]*metamodel.FuncCase, len(f.Cases))
		for i, c := range f.Cases {
			cases[i] = &metamodel.FuncCase{ConstructorID: c.ConstructorID, BoundVars: c.BoundVars, Body: dtoToFuncExpr(c.Body)}
		}
		var tErr *metamodel.TerminationError
		if f.TerminationError != nil {
			tErr = &metamodel.TerminationError{ConstructorName: f.TerminationError.ConstructorName, Reason: f.TerminationError.Reason}
		}
		e.Reg.Funcs[f.ID] = &metamodel.RecursiveFunc{
			ID: f.ID, Name: f.Name, PrincipalSortID: f.PrincipalSortID, ExtraArgs: extraArgs,
			ReturnType: metamodel.FuncReturnType{Kind: f.ReturnType.Kind, ElementSortID: f.ReturnType.ElementSortID, SortID: f.ReturnType.SortID},
			Cases: cases, Terminates: f.Terminates, TerminationError: tErr,
		}
	}
	for _, p := range s.Properties {
		e.Tactics.Properties[p.ID] = &tactic.Property{ID: p.ID, Name: p.Name, Statement: dtoToFormula(p.Statement)}
	}
	for _, p := range s.Proofs {
		e.Tactics.Proofs[p.ID] = dtoToProof(p)
	}
}

func dtoToProof(d ProofDTO) *tactic.Proof {
	goals := make(map[ids.ID]*tactic.ProofGoal, len(d.Goals))
	for _, g := range d.Goals {
		vars := make([]tactic.ContextVar, len(g.Context.Variables))
		for i, v := range g.Context.Variables {
			vars[i] = tactic.ContextVar{Name: v.Name, SortID: v.SortID}
		}
		hyps := make([]tactic.Hypothesis, len(g.Context.Hypotheses))
		for i, h := range g.Context.Hypotheses {
			hyps[i] = tactic.Hypothesis{Name: h.Name, Formula: dtoToFormula(h.Formula)}
		}
		goals[g.ID] = &tactic.ProofGoal{
			ID:      g.ID,
			Context: tactic.GoalContext{Variables: vars, Hypotheses: hyps},
			Goal:    dtoToFormula(g.Goal),
		}
	}
	steps := make([]tactic.Step, len(d.Steps))
	for i, st := range d.Steps {
		steps[i] = tactic.Step{GoalID: st.GoalID, Tactic: st.Tactic, ProducedGoalIDs: st.ProducedGoalIDs}
	}
	return &tactic.Proof{
		ID: d.ID, PropertyID: d.PropertyID, Goals: goals, RootGoalID: d.RootGoalID,
		OpenGoals: d.OpenGoals, Steps: steps, Status: d.Status,
	}
}

func sortedIDs[T any](m map[ids.ID]T) []ids.ID {
	out := make([]ids.ID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
