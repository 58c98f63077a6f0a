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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/pkg/config"
	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/function"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/pattern"
	"github.com/logicforge/logicforge/pkg/tactic"
	"github.com/logicforge/logicforge/pkg/term"
)

func newTestEngine() *Engine {
	return NewEngine(config.Default(), nil)
}

// TestPeanoEvenOddDerivation builds the even/odd judgments over ℕ and
// checks that derive(even, S(S(Z))) succeeds with the expected tree
// and derive(even, S(Z)) fails.
func TestPeanoEvenOddDerivation(t *testing.T) {
	e := newTestEngine()
	nat, err := e.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := e.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	s, err := e.CreateConstructor(nat.ID, "S", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "n"}})
	require.NoError(t, err)

	even, err := e.CreateJudgment("even", "even", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"", " even"})
	require.NoError(t, err)
	odd, err := e.CreateJudgment("odd", "odd", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"", " odd"})
	require.NoError(t, err)

	_, err = e.CreateRule("E-Zero", &metamodel.JudgmentInstance{JudgmentID: even.ID, Args: []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: z.ID}}})
	require.NoError(t, err)

	eSucc, err := e.CreateRule("E-Succ", &metamodel.JudgmentInstance{
		JudgmentID: even.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: s.ID, Args: []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: "n"}}}},
	})
	require.NoError(t, err)
	require.NoError(t, e.AddPremise(eSucc.ID, &metamodel.JudgmentInstance{JudgmentID: odd.ID, Args: []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: "n"}}}))

	oSucc, err := e.CreateRule("O-Succ", &metamodel.JudgmentInstance{
		JudgmentID: odd.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: s.ID, Args: []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: "n"}}}},
	})
	require.NoError(t, err)
	require.NoError(t, e.AddPremise(oSucc.ID, &metamodel.JudgmentInstance{JudgmentID: even.ID, Args: []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: "n"}}}))

	two, err := term.New(e.Reg, s.ID, &term.Apply{ConstructorID: s.ID, Args: []term.Term{&term.Apply{ConstructorID: z.ID}}})
	require.NoError(t, err)
	d, err := e.Derive(even.ID, []term.Term{two})
	require.NoError(t, err)
	require.Equal(t, "E-Succ(O-Succ(E-Zero))", RenderDerivation(d))

	one, err := term.New(e.Reg, s.ID, &term.Apply{ConstructorID: z.ID})
	require.NoError(t, err)
	_, err = e.Derive(even.ID, []term.Term{one})
	require.Error(t, err)
}

type sizeFixture struct {
	e    *Engine
	nat  metamodel.Sort
	z, s metamodel.Constructor
	size *metamodel.RecursiveFunc
}

func newSizeFixture(t *testing.T) *sizeFixture {
	t.Helper()
	e := newTestEngine()
	nat, err := e.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := e.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	s, err := e.CreateConstructor(nat.ID, "S", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "n"}})
	require.NoError(t, err)

	size, err := e.CreateFunction("size", nat.ID, nil, metamodel.FuncReturnType{Kind: metamodel.ReturnInt})
	require.NoError(t, err)
	require.NoError(t, e.UpdateFuncCase(size.ID, z.ID, nil, &metamodel.IntLit{Value: 0}))
	require.NoError(t, e.UpdateFuncCase(size.ID, s.ID, []string{"n"}, &metamodel.BinOp{
		Op:    metamodel.OpAdd,
		Left:  &metamodel.IntLit{Value: 1},
		Right: &metamodel.Call{FuncID: size.ID, Args: []metamodel.FuncExpr{&metamodel.VarRef{Name: "n"}}},
	}))
	return &sizeFixture{e: e, nat: *nat, z: *z, s: *s, size: size}
}

// TestSizeFunctionTerminatesAndUnfoldsToReflexivity covers the
// termination check, ground evaluation, and unfold+reflexivity
// closing of the size-succ goal.
func TestSizeFunctionTerminatesAndUnfoldsToReflexivity(t *testing.T) {
	f := newSizeFixture(t)
	got, err := f.e.Reg.GetFunction(f.size.ID)
	require.NoError(t, err)
	require.True(t, got.Terminates)
	require.Nil(t, got.TerminationError)

	three, err := term.New(f.e.Reg, f.s.ID,
		&term.Apply{ConstructorID: f.s.ID, Args: []term.Term{
			&term.Apply{ConstructorID: f.s.ID, Args: []term.Term{&term.Apply{ConstructorID: f.z.ID}}},
		}})
	require.NoError(t, err)
	val, err := function.Eval(f.e.Reg, got, three, function.Env{})
	require.NoError(t, err)
	require.Equal(t, function.IntValue{N: 3}, val)

	nVar := &formula.Var{Name: "n"}
	goalFormula := &formula.TermEq{
		Left: &formula.FuncApp{FuncID: f.size.ID, Args: []formula.FormulaExpr{&formula.Construct{ConstructorID: f.s.ID, Args: []formula.FormulaExpr{nVar}}}},
		Right: &formula.ArithOp{Op: formula.ArithAdd, Left: formula.IntLit{Value: 1},
			Right: &formula.FuncApp{FuncID: f.size.ID, Args: []formula.FormulaExpr{nVar}}},
	}
	prop, err := f.e.CreateProperty("size succ unfold", goalFormula)
	require.NoError(t, err)
	proof, err := f.e.StartProof(prop.ID)
	require.NoError(t, err)
	proof.Goals[proof.RootGoalID].Context = tactic.GoalContext{Variables: []tactic.ContextVar{{Name: "n", SortID: f.nat.ID}}}

	require.NoError(t, f.e.ApplyTactic(proof.ID, proof.RootGoalID, tactic.Unfold{FuncID: f.size.ID, Side: tactic.SideLeft}))
	unfolded := lastProducedGoal(t, proof)
	require.NoError(t, f.e.ApplyTactic(proof.ID, unfolded.ID, tactic.Reflexivity{}))

	reloaded, err := f.e.GetProof(proof.ID)
	require.NoError(t, err)
	require.Empty(t, reloaded.OpenGoals)
	require.Equal(t, tactic.Complete, reloaded.Status)
}

// TestInductionOnSizeGeqZero covers the induction-on-size(n)≥0
// scenario: the zero case folds to 0 ≥ 0 via unfold+simplify, and the
// successor case closes using the induction hypothesis.
func TestInductionOnSizeGeqZero(t *testing.T) {
	f := newSizeFixture(t)
	sizeOfN := &formula.FuncApp{FuncID: f.size.ID, Args: []formula.FormulaExpr{&formula.Var{Name: "n"}}}
	statement := &formula.Forall{
		VarName: "n",
		SortID:  f.nat.ID,
		Body:    &formula.NumCmp{Op: formula.CmpGeq, Left: sizeOfN, Right: formula.IntLit{Value: 0}},
	}
	prop, err := f.e.CreateProperty("size non-negative", statement)
	require.NoError(t, err)
	proof, err := f.e.StartProof(prop.ID)
	require.NoError(t, err)

	require.NoError(t, f.e.ApplyTactic(proof.ID, proof.RootGoalID, tactic.Intro{VarName: "n"}))
	require.Len(t, proof.OpenGoals, 1)
	introduced := proof.Goals[proof.OpenGoals[0]]

	require.NoError(t, f.e.ApplyTactic(proof.ID, introduced.ID, tactic.Induction{VarName: "n"}))
	require.Len(t, proof.OpenGoals, 2)

	var zeroGoal, succGoal *tactic.ProofGoal
	for _, id := range proof.OpenGoals {
		g := proof.Goals[id]
		if len(g.Context.Hypotheses) == 0 {
			zeroGoal = g
		} else {
			succGoal = g
		}
	}
	require.NotNil(t, zeroGoal)
	require.NotNil(t, succGoal)
	require.Contains(t, succGoal.Context.Hypotheses[0].Name, "IH_")

	require.NoError(t, f.e.ApplyTactic(proof.ID, zeroGoal.ID, tactic.Unfold{FuncID: f.size.ID, Side: tactic.SideLeft}))
	zeroUnfolded := lastProducedGoal(t, proof)
	require.NoError(t, f.e.ApplyTactic(proof.ID, zeroUnfolded.ID, tactic.Simplify{}))

	require.NoError(t, f.e.ApplyTactic(proof.ID, succGoal.ID, tactic.Unfold{FuncID: f.size.ID, Side: tactic.SideLeft}))
	succUnfolded := lastProducedGoal(t, proof)
	require.NoError(t, f.e.ApplyTactic(proof.ID, succUnfolded.ID, tactic.Simplify{}))

	require.Empty(t, proof.OpenGoals)
	require.Equal(t, tactic.Complete, proof.Status)
}

func lastProducedGoal(t *testing.T, proof *tactic.Proof) *tactic.ProofGoal {
	t.Helper()
	last := proof.Steps[len(proof.Steps)-1]
	require.Len(t, last.ProducedGoalIDs, 1)
	return proof.Goals[last.ProducedGoalIDs[0]]
}

// TestSyntaxDirectednessRegression checks that a judgment with rules
// concluding P(Z) and P(x) (a meta-variable) is reported as NOT
// syntax-directed, with position 0 flagged as overlapping.
func TestSyntaxDirectednessRegression(t *testing.T) {
	e := newTestEngine()
	nat, err := e.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := e.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)

	p, err := e.CreateJudgment("P", "P", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"P(", ")"})
	require.NoError(t, err)
	_, err = e.CreateRule("P-Zero", &metamodel.JudgmentInstance{JudgmentID: p.ID, Args: []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: z.ID}}})
	require.NoError(t, err)
	_, err = e.CreateRule("P-Any", &metamodel.JudgmentInstance{JudgmentID: p.ID, Args: []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: "x"}}})
	require.NoError(t, err)

	result, err := e.AnalyzeSyntaxDirected(p.ID)
	require.NoError(t, err)
	require.False(t, result.SyntaxDirected)
	require.Len(t, result.OverlappingRules, 1)
	require.Equal(t, []int{0}, result.OverlappingAtArgs)
}

// TestDiscriminateClosesAnyGoal covers the discriminate tactic: a
// hypothesis H : Z = S(n) closes any goal outright.
func TestDiscriminateClosesAnyGoal(t *testing.T) {
	f := newSizeFixture(t)
	prop, err := f.e.CreateProperty("anything", formula.True{})
	require.NoError(t, err)
	proof, err := f.e.StartProof(prop.ID)
	require.NoError(t, err)
	nVar := &formula.Var{Name: "n"}
	proof.Goals[proof.RootGoalID].Context = tactic.GoalContext{
		Hypotheses: []tactic.Hypothesis{{
			Name: "H",
			Formula: &formula.TermEq{
				Left:  &formula.Construct{ConstructorID: f.z.ID},
				Right: &formula.Construct{ConstructorID: f.s.ID, Args: []formula.FormulaExpr{nVar}},
			},
		}},
	}
	require.NoError(t, f.e.ApplyTactic(proof.ID, proof.RootGoalID, tactic.Discriminate{Name: "H"}))
	require.Empty(t, proof.OpenGoals)
	require.Equal(t, tactic.Complete, proof.Status)
}

// TestPatternBindingConsistency covers matching Pair(x, x) against
// Pair(Z, S(Z)) (fails, inconsistent binding) and Pair(Z, Z)
// (succeeds with {x -> Z}).
func TestPatternBindingConsistency(t *testing.T) {
	e := newTestEngine()
	nat, err := e.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := e.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	s, err := e.CreateConstructor(nat.ID, "S", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "n"}})
	require.NoError(t, err)
	pairSort, err := e.CreateSort("Pair", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	pair, err := e.CreateConstructor(pairSort.ID, "Pair", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "l"}, {SortID: nat.ID, Label: "r"}})
	require.NoError(t, err)
	mv, err := e.CreateMetaVariable("x", nat.ID)
	require.NoError(t, err)

	p := &metamodel.CtorPattern{ConstructorID: pair.ID, Args: []metamodel.Pattern{
		&metamodel.MetaVarPattern{MetaVarID: mv.ID}, &metamodel.MetaVarPattern{MetaVarID: mv.ID},
	}}

	zTerm, err := term.New(e.Reg, z.ID)
	require.NoError(t, err)
	sZ, err := term.New(e.Reg, s.ID, zTerm)
	require.NoError(t, err)
	mismatched, err := term.New(e.Reg, pair.ID, zTerm, sZ)
	require.NoError(t, err)
	_, ok := e.MatchPattern(mismatched, p)
	require.False(t, ok)

	matching, err := term.New(e.Reg, pair.ID, zTerm, zTerm)
	require.NoError(t, err)
	bindings, ok := e.MatchPattern(matching, p)
	require.True(t, ok)
	require.Equal(t, pattern.Bindings{mv.ID: zTerm}, bindings)
}
