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

package tactic

import (
	"fmt"

	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
)

// Tactic is the sealed tagged union of every tactic a proof step can
// name. Variants carry whatever argument the tactic's contract needs.
type Tactic interface {
	isTactic()
	name() string
}

type Intro struct{ VarName string }

func (Intro) isTactic()     {}
func (Intro) name() string  { return "intro" }

type IntroHyp struct{ Name string }

func (IntroHyp) isTactic()    {}
func (IntroHyp) name() string { return "intro_hyp" }

type ExistsWitness struct{ Witness formula.FormulaExpr }

func (ExistsWitness) isTactic()    {}
func (ExistsWitness) name() string { return "exists_witness" }

type Split struct{}

func (Split) isTactic()    {}
func (Split) name() string { return "split" }

type Left struct{}

func (Left) isTactic()    {}
func (Left) name() string { return "left" }

type Right struct{}

func (Right) isTactic()    {}
func (Right) name() string { return "right" }

type Induction struct{ VarName string }

func (Induction) isTactic()    {}
func (Induction) name() string { return "induction" }

type CaseAnalysis struct{ VarName string }

func (CaseAnalysis) isTactic()    {}
func (CaseAnalysis) name() string { return "case_analysis" }

type Reflexivity struct{}

func (Reflexivity) isTactic()    {}
func (Reflexivity) name() string { return "reflexivity" }

type Trivial struct{}

func (Trivial) isTactic()    {}
func (Trivial) name() string { return "trivial" }

type Exact struct{ Name string }

func (Exact) isTactic()    {}
func (Exact) name() string { return "exact" }

type Apply struct{ Name string }

func (Apply) isTactic()    {}
func (Apply) name() string { return "apply" }

type Discriminate struct{ Name string }

func (Discriminate) isTactic()    {}
func (Discriminate) name() string { return "discriminate" }

// Side names which side of a comparison unfold targets.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

type Unfold struct {
	FuncID ids.ID
	Side   Side
}

func (Unfold) isTactic()    {}
func (Unfold) name() string { return "unfold" }

type Simplify struct{}

func (Simplify) isTactic()    {}
func (Simplify) name() string { return "simplify" }

// Reserved names one of the tactics the contract table lists as
// reserved and unimplemented: rewrite, derivation_induction,
// apply_rule, contradiction, compute.
type Reserved struct{ Name string }

func (Reserved) isTactic()    {}
func (r Reserved) name() string { return r.Name }

// ApplyTactic steps goalID forward in proof by tactic t. On success
// it removes goalID from OpenGoals, splices in the produced goals at
// that position (preserving their order), adds them to Goals,
// appends a Step, and flips Status to Complete once OpenGoals is
// empty — all as one update, so no observer sees an intermediate
// state where the step log disagrees with OpenGoals. On failure,
// proof is left completely unchanged and a typed error is returned.
func ApplyTactic(reg *metamodel.Registry, proof *Proof, goalID ids.ID, t Tactic) error {
	idx := -1
	for i, id := range proof.OpenGoals {
		if id == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &engerr.TacticMismatch{Tactic: t.name(), Reason: "goal is not open"}
	}
	goal, ok := proof.Goals[goalID]
	if !ok {
		return &engerr.TacticMismatch{Tactic: t.name(), Reason: "goal not found"}
	}

	produced, err := step(reg, goal, t)
	if err != nil {
		return err
	}

	newOpen := make([]ids.ID, 0, len(proof.OpenGoals)-1+len(produced))
	newOpen = append(newOpen, proof.OpenGoals[:idx]...)
	producedIDs := make([]ids.ID, len(produced))
	for i, g := range produced {
		proof.Goals[g.ID] = g
		producedIDs[i] = g.ID
		newOpen = append(newOpen, g.ID)
	}
	newOpen = append(newOpen, proof.OpenGoals[idx+1:]...)
	proof.OpenGoals = newOpen
	proof.Steps = append(proof.Steps, Step{GoalID: goalID, Tactic: t.name(), ProducedGoalIDs: producedIDs})
	if len(proof.OpenGoals) == 0 {
		proof.Status = Complete
	}
	return nil
}

func step(reg *metamodel.Registry, goal *ProofGoal, t Tactic) ([]*ProofGoal, error) {
	switch t := t.(type) {
	case Intro:
		return stepIntro(goal, t.VarName)
	case IntroHyp:
		return stepIntroHyp(goal, t.Name)
	case ExistsWitness:
		return stepExistsWitness(goal, t.Witness)
	case Split:
		return stepSplit(goal)
	case Left:
		return stepLeft(goal)
	case Right:
		return stepRight(goal)
	case Induction:
		return stepInduction(reg, goal, t.VarName, true)
	case CaseAnalysis:
		return stepInduction(reg, goal, t.VarName, false)
	case Reflexivity:
		return stepReflexivity(goal)
	case Trivial:
		return stepTrivial(goal)
	case Exact:
		return stepExact(goal, t.Name)
	case Apply:
		return stepApply(goal, t.Name)
	case Discriminate:
		return stepDiscriminate(goal, t.Name)
	case Unfold:
		return stepUnfold(reg, goal, t.FuncID, t.Side)
	case Simplify:
		return stepSimplify(goal)
	case Reserved:
		return nil, &engerr.Unsupported{Operation: t.Name}
	default:
		return nil, &engerr.Unsupported{Operation: fmt.Sprintf("unknown tactic %T", t)}
	}
}

func stepIntro(goal *ProofGoal, varName string) ([]*ProofGoal, error) {
	forall, ok := goal.Goal.(*formula.Forall)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "intro", Reason: "goal is not a universal quantifier"}
	}
	if goal.Context.hasVariable(varName) {
		return nil, &engerr.TacticMismatch{Tactic: "intro", Reason: fmt.Sprintf("variable %q already in context", varName)}
	}
	body := forall.Body
	if forall.VarName != varName {
		body = formula.SubstFormula(body, forall.VarName, &formula.Var{Name: varName})
	}
	newCtx := GoalContext{
		Variables:  append(copyVariables(goal.Context.Variables), ContextVar{Name: varName, SortID: forall.SortID}),
		Hypotheses: copyHypotheses(goal.Context.Hypotheses),
	}
	return []*ProofGoal{{ID: ids.New(), Context: newCtx, Goal: body}}, nil
}

func stepIntroHyp(goal *ProofGoal, name string) ([]*ProofGoal, error) {
	implies, ok := goal.Goal.(*formula.Implies)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "intro_hyp", Reason: "goal is not an implication"}
	}
	if goal.Context.hasHypothesis(name) {
		return nil, &engerr.TacticMismatch{Tactic: "intro_hyp", Reason: fmt.Sprintf("hypothesis %q already in context", name)}
	}
	newCtx := GoalContext{
		Variables:  copyVariables(goal.Context.Variables),
		Hypotheses: append(copyHypotheses(goal.Context.Hypotheses), Hypothesis{Name: name, Formula: implies.Left}),
	}
	return []*ProofGoal{{ID: ids.New(), Context: newCtx, Goal: implies.Right}}, nil
}

func stepExistsWitness(goal *ProofGoal, witness formula.FormulaExpr) ([]*ProofGoal, error) {
	exists, ok := goal.Goal.(*formula.Exists)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "exists_witness", Reason: "goal is not an existential quantifier"}
	}
	for v := range formula.FreeVarsExpr(witness) {
		if !goal.Context.hasVariable(v) {
			return nil, &engerr.TacticMismatch{Tactic: "exists_witness", Reason: fmt.Sprintf("witness refers to %q, not bound in the current context", v)}
		}
	}
	newGoal := formula.SubstFormula(exists.Body, exists.VarName, witness)
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: newGoal}}, nil
}

func stepSplit(goal *ProofGoal) ([]*ProofGoal, error) {
	and, ok := goal.Goal.(*formula.And)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "split", Reason: "goal is not a conjunction"}
	}
	return []*ProofGoal{
		{ID: ids.New(), Context: goal.Context, Goal: and.Left},
		{ID: ids.New(), Context: goal.Context, Goal: and.Right},
	}, nil
}

func stepLeft(goal *ProofGoal) ([]*ProofGoal, error) {
	or, ok := goal.Goal.(*formula.Or)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "left", Reason: "goal is not a disjunction"}
	}
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: or.Left}}, nil
}

func stepRight(goal *ProofGoal) ([]*ProofGoal, error) {
	or, ok := goal.Goal.(*formula.Or)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "right", Reason: "goal is not a disjunction"}
	}
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: or.Right}}, nil
}

// stepInduction implements both induction and case_analysis: the
// latter is the former with withIH=false, skipping the induction
// hypotheses the contract table describes.
func stepInduction(reg *metamodel.Registry, goal *ProofGoal, varName string, withIH bool) ([]*ProofGoal, error) {
	tacticName := "case_analysis"
	if withIH {
		tacticName = "induction"
	}
	ctxVar, ok := goal.Context.findVariable(varName)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: tacticName, Reason: fmt.Sprintf("%q is not in the context", varName)}
	}
	sort_, err := reg.GetSort(ctxVar.SortID)
	if err != nil {
		return nil, err
	}
	if sort_.Kind != metamodel.KindInductive {
		return nil, &engerr.TacticMismatch{Tactic: tacticName, Reason: fmt.Sprintf("%q's sort is not inductive", varName)}
	}
	ctors := reg.ConstructorsOf(ctxVar.SortID)

	baseVariables := make([]ContextVar, 0, len(goal.Context.Variables))
	for _, v := range goal.Context.Variables {
		if v.Name != varName {
			baseVariables = append(baseVariables, v)
		}
	}

	taken := make(map[string]bool, len(baseVariables)+len(goal.Context.Hypotheses))
	for _, v := range baseVariables {
		taken[v.Name] = true
	}
	for _, h := range goal.Context.Hypotheses {
		taken[h.Name] = true
	}

	goals := make([]*ProofGoal, 0, len(ctors))
	for _, c := range ctors {
		caseVariables := copyVariables(baseVariables)
		caseHypotheses := copyHypotheses(goal.Context.Hypotheses)
		argVars := make([]string, len(c.Args))
		for i, arg := range c.Args {
			label := arg.Label
			if label == "" {
				label = sort_.AtomPrefix
			}
			freshName := nextFreshName(label, taken)
			taken[freshName] = true
			argVars[i] = freshName
			caseVariables = append(caseVariables, ContextVar{Name: freshName, SortID: arg.SortID})
		}
		constructArgs := make([]formula.FormulaExpr, len(argVars))
		for i, v := range argVars {
			constructArgs[i] = &formula.Var{Name: v}
		}
		constructExpr := &formula.Construct{ConstructorID: c.ID, Args: constructArgs}
		if withIH {
			for i, arg := range c.Args {
				if arg.SortID != ctxVar.SortID {
					continue
				}
				ihName := nextFreshName("IH_"+argVars[i], taken)
				taken[ihName] = true
				ihFormula := formula.SubstFormula(goal.Goal, varName, &formula.Var{Name: argVars[i]})
				caseHypotheses = append(caseHypotheses, Hypothesis{Name: ihName, Formula: ihFormula})
			}
		}
		caseGoal := formula.SubstFormula(goal.Goal, varName, constructExpr)
		goals = append(goals, &ProofGoal{
			ID:      ids.New(),
			Context: GoalContext{Variables: caseVariables, Hypotheses: caseHypotheses},
			Goal:    caseGoal,
		})
	}
	return goals, nil
}

func nextFreshName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

func stepReflexivity(goal *ProofGoal) ([]*ProofGoal, error) {
	switch g := goal.Goal.(type) {
	case *formula.TermEq:
		if formula.EqualExpr(formula.SimplifyExpr(g.Left), formula.SimplifyExpr(g.Right)) {
			return nil, nil
		}
	case *formula.NumCmp:
		if g.Op == formula.CmpEq || g.Op == formula.CmpLeq || g.Op == formula.CmpGeq {
			if formula.EqualExpr(formula.SimplifyExpr(g.Left), formula.SimplifyExpr(g.Right)) {
				return nil, nil
			}
		}
	}
	return nil, &engerr.TacticMismatch{Tactic: "reflexivity", Reason: "goal sides are not syntactically equal"}
}

func stepTrivial(goal *ProofGoal) ([]*ProofGoal, error) {
	if _, ok := formula.SimplifyFormula(goal.Goal).(formula.True); ok {
		return nil, nil
	}
	for _, h := range goal.Context.Hypotheses {
		if formula.EqualFormula(h.Formula, goal.Goal) {
			return nil, nil
		}
	}
	return nil, &engerr.TacticMismatch{Tactic: "trivial", Reason: "goal is not true and matches no hypothesis"}
}

func stepExact(goal *ProofGoal, name string) ([]*ProofGoal, error) {
	h, ok := goal.Context.findHypothesis(name)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "exact", Reason: fmt.Sprintf("no hypothesis named %q", name)}
	}
	if !formula.EqualFormula(h.Formula, goal.Goal) {
		return nil, &engerr.TacticMismatch{Tactic: "exact", Reason: fmt.Sprintf("hypothesis %q does not match the goal", name)}
	}
	return nil, nil
}

func stepApply(goal *ProofGoal, name string) ([]*ProofGoal, error) {
	h, ok := goal.Context.findHypothesis(name)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "apply", Reason: fmt.Sprintf("no hypothesis named %q", name)}
	}
	implies, ok := h.Formula.(*formula.Implies)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "apply", Reason: fmt.Sprintf("hypothesis %q is not an implication", name)}
	}
	if !formula.EqualFormula(implies.Right, goal.Goal) {
		return nil, &engerr.TacticMismatch{Tactic: "apply", Reason: fmt.Sprintf("hypothesis %q's conclusion does not match the goal", name)}
	}
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: implies.Left}}, nil
}

func stepDiscriminate(goal *ProofGoal, name string) ([]*ProofGoal, error) {
	h, ok := goal.Context.findHypothesis(name)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "discriminate", Reason: fmt.Sprintf("no hypothesis named %q", name)}
	}
	eq, ok := h.Formula.(*formula.TermEq)
	if !ok {
		return nil, &engerr.TacticMismatch{Tactic: "discriminate", Reason: fmt.Sprintf("hypothesis %q is not a term equality", name)}
	}
	l, lok := eq.Left.(*formula.Construct)
	r, rok := eq.Right.(*formula.Construct)
	if !lok || !rok || l.ConstructorID == r.ConstructorID {
		return nil, &engerr.TacticMismatch{Tactic: "discriminate", Reason: fmt.Sprintf("hypothesis %q's sides are not head-constructor-distinct", name)}
	}
	return nil, nil
}

func stepUnfold(reg *metamodel.Registry, goal *ProofGoal, funcID ids.ID, side Side) ([]*ProofGoal, error) {
	f, err := reg.GetFunction(funcID)
	if err != nil {
		return nil, err
	}

	var target formula.FormulaExpr
	var rebuild func(rewritten formula.FormulaExpr) formula.Formula
	switch g := goal.Goal.(type) {
	case *formula.TermEq:
		if side == SideLeft {
			target = g.Left
			rebuild = func(rewritten formula.FormulaExpr) formula.Formula { return &formula.TermEq{Left: rewritten, Right: g.Right} }
		} else {
			target = g.Right
			rebuild = func(rewritten formula.FormulaExpr) formula.Formula { return &formula.TermEq{Left: g.Left, Right: rewritten} }
		}
	case *formula.NumCmp:
		if side == SideLeft {
			target = g.Left
			rebuild = func(rewritten formula.FormulaExpr) formula.Formula { return &formula.NumCmp{Op: g.Op, Left: rewritten, Right: g.Right} }
		} else {
			target = g.Right
			rebuild = func(rewritten formula.FormulaExpr) formula.Formula { return &formula.NumCmp{Op: g.Op, Left: g.Left, Right: rewritten} }
		}
	default:
		return nil, &engerr.TacticMismatch{Tactic: "unfold", Reason: "goal is not a comparison"}
	}

	rewritten, found, err := formula.UnfoldFuncApp(reg, f, target)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &engerr.TacticMismatch{Tactic: "unfold", Reason: "no applicable occurrence on that side"}
	}
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: rebuild(rewritten)}}, nil
}

func stepSimplify(goal *ProofGoal) ([]*ProofGoal, error) {
	simplified := formula.SimplifyFormula(goal.Goal)
	if _, ok := simplified.(formula.True); ok {
		return nil, nil
	}
	hyps := goal.Context.hypothesisFormulas()
	if cmp, ok := simplified.(*formula.NumCmp); ok {
		switch cmp.Op {
		case formula.CmpEq:
			if formula.EqualExpr(cmp.Left, cmp.Right) {
				return nil, nil
			}
		case formula.CmpGeq:
			if formula.CanProveGeq(cmp.Left, cmp.Right, hyps) {
				return nil, nil
			}
		case formula.CmpLeq:
			if formula.CanProveGeq(cmp.Right, cmp.Left, hyps) {
				return nil, nil
			}
		}
	}
	return []*ProofGoal{{ID: ids.New(), Context: goal.Context, Goal: simplified}}, nil
}
