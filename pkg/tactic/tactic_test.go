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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
)

type peanoSizeFixture struct {
	reg  *metamodel.Registry
	nat  ids.ID
	z    ids.ID
	s    ids.ID
	size ids.ID
}

func newPeanoSizeFixture(t *testing.T) *peanoSizeFixture {
	t.Helper()
	reg := metamodel.NewRegistry()
	nat, err := reg.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := reg.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	s, err := reg.CreateConstructor(nat.ID, "S", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "n"}})
	require.NoError(t, err)

	size, err := reg.CreateFunction("size", nat.ID, nil, metamodel.FuncReturnType{Kind: metamodel.ReturnInt})
	require.NoError(t, err)
	require.NoError(t, reg.UpdateFuncCase(size.ID, z.ID, nil, &metamodel.IntLit{Value: 0}))
	require.NoError(t, reg.UpdateFuncCase(size.ID, s.ID, []string{"n"}, &metamodel.BinOp{
		Op:   metamodel.OpAdd,
		Left: &metamodel.IntLit{Value: 1},
		Right: &metamodel.Call{
			FuncID: size.ID,
			Args:   []metamodel.FuncExpr{&metamodel.VarRef{Name: "n"}},
		},
	}))
	return &peanoSizeFixture{reg: reg, nat: nat.ID, z: z.ID, s: s.ID, size: size.ID}
}

func sizeGeqZeroProperty(f *peanoSizeFixture) formula.Formula {
	sizeOfN := &formula.FuncApp{FuncID: f.size, Args: []formula.FormulaExpr{&formula.Var{Name: "n"}}}
	return &formula.Forall{
		VarName: "n",
		SortID:  f.nat,
		Body:    &formula.NumCmp{Op: formula.CmpGeq, Left: sizeOfN, Right: formula.IntLit{0}},
	}
}

// isZeroCase reports whether goal's comparison talks about size(Z)
// rather than size(S(...)).
func isZeroCase(t *testing.T, f *peanoSizeFixture, g *ProofGoal) bool {
	t.Helper()
	cmp, ok := g.Goal.(*formula.NumCmp)
	require.True(t, ok)
	app, ok := cmp.Left.(*formula.FuncApp)
	require.True(t, ok)
	construct, ok := app.Args[0].(*formula.Construct)
	require.True(t, ok)
	return construct.ConstructorID == f.z
}

func TestInductionSizeGeqZeroScenario(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	prop := store.CreateProperty("size non-negative", sizeGeqZeroProperty(f))
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)

	require.NoError(t, ApplyTactic(f.reg, proof, proof.RootGoalID, Intro{VarName: "n"}))
	require.Len(t, proof.OpenGoals, 1)
	introduced := proof.Goals[proof.OpenGoals[0]]

	require.NoError(t, ApplyTactic(f.reg, proof, introduced.ID, Induction{VarName: "n"}))
	require.Len(t, proof.OpenGoals, 2)

	var zeroGoal, succGoal *ProofGoal
	for _, id := range proof.OpenGoals {
		g := proof.Goals[id]
		if isZeroCase(t, f, g) {
			zeroGoal = g
		} else {
			succGoal = g
		}
	}
	require.NotNil(t, zeroGoal)
	require.NotNil(t, succGoal)
	require.Empty(t, zeroGoal.Context.Variables)
	require.Len(t, succGoal.Context.Hypotheses, 1)
	require.Contains(t, succGoal.Context.Hypotheses[0].Name, "IH_")

	require.NoError(t, ApplyTactic(f.reg, proof, zeroGoal.ID, Unfold{FuncID: f.size, Side: SideLeft}))
	zeroUnfolded := lastProducedGoal(t, proof)
	require.NoError(t, ApplyTactic(f.reg, proof, zeroUnfolded.ID, Simplify{}))

	require.NoError(t, ApplyTactic(f.reg, proof, succGoal.ID, Unfold{FuncID: f.size, Side: SideLeft}))
	succUnfolded := lastProducedGoal(t, proof)
	require.NoError(t, ApplyTactic(f.reg, proof, succUnfolded.ID, Simplify{}))

	require.Empty(t, proof.OpenGoals)
	require.Equal(t, Complete, proof.Status)
}

func lastProducedGoal(t *testing.T, proof *Proof) *ProofGoal {
	t.Helper()
	last := proof.Steps[len(proof.Steps)-1]
	require.Len(t, last.ProducedGoalIDs, 1)
	return proof.Goals[last.ProducedGoalIDs[0]]
}

func TestUnfoldThenReflexivityClosesSizeSuccGoal(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	nVar := &formula.Var{Name: "n"}
	goalFormula := &formula.TermEq{
		Left: &formula.FuncApp{FuncID: f.size, Args: []formula.FormulaExpr{&formula.Construct{ConstructorID: f.s, Args: []formula.FormulaExpr{nVar}}}},
		Right: &formula.ArithOp{Op: formula.ArithAdd, Left: formula.IntLit{1},
			Right: &formula.FuncApp{FuncID: f.size, Args: []formula.FormulaExpr{nVar}}},
	}
	prop := store.CreateProperty("size succ unfold", goalFormula)
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)
	proof.Goals[proof.RootGoalID].Context = GoalContext{Variables: []ContextVar{{Name: "n", SortID: f.nat}}}

	require.NoError(t, ApplyTactic(f.reg, proof, proof.RootGoalID, Unfold{FuncID: f.size, Side: SideLeft}))
	unfolded := lastProducedGoal(t, proof)
	require.NoError(t, ApplyTactic(f.reg, proof, unfolded.ID, Reflexivity{}))
	require.Empty(t, proof.OpenGoals)
	require.Equal(t, Complete, proof.Status)
}

func TestDiscriminateClosesAnyGoal(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	prop := store.CreateProperty("anything", formula.True{})
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)
	nVar := &formula.Var{Name: "n"}
	proof.Goals[proof.RootGoalID].Context = GoalContext{
		Hypotheses: []Hypothesis{{
			Name: "H",
			Formula: &formula.TermEq{
				Left:  &formula.Construct{ConstructorID: f.z},
				Right: &formula.Construct{ConstructorID: f.s, Args: []formula.FormulaExpr{nVar}},
			},
		}},
	}
	require.NoError(t, ApplyTactic(f.reg, proof, proof.RootGoalID, Discriminate{Name: "H"}))
	require.Empty(t, proof.OpenGoals)
	require.Equal(t, Complete, proof.Status)
}

func TestIntroHypLeftTrivial(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	prop := store.CreateProperty("p", &formula.Implies{
		Left:  formula.True{},
		Right: &formula.Or{Left: formula.True{}, Right: formula.False{}},
	})
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)

	require.NoError(t, ApplyTactic(f.reg, proof, proof.RootGoalID, IntroHyp{Name: "h"}))
	or := lastProducedGoal(t, proof)
	require.Len(t, or.Context.Hypotheses, 1)

	require.NoError(t, ApplyTactic(f.reg, proof, or.ID, Left{}))
	disjunct := lastProducedGoal(t, proof)
	require.NoError(t, ApplyTactic(f.reg, proof, disjunct.ID, Trivial{}))
	require.Empty(t, proof.OpenGoals)
	require.Equal(t, Complete, proof.Status)
}

func TestReservedTacticsAreUnsupported(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	prop := store.CreateProperty("p", formula.True{})
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)
	err = ApplyTactic(f.reg, proof, proof.RootGoalID, Reserved{Name: "rewrite"})
	require.Error(t, err)
	require.NotEmpty(t, proof.OpenGoals)
}

func TestApplyTacticOnClosedGoalFails(t *testing.T) {
	f := newPeanoSizeFixture(t)
	store := NewStore()
	prop := store.CreateProperty("p", formula.True{})
	proof, err := store.StartProof(prop.ID)
	require.NoError(t, err)
	require.NoError(t, ApplyTactic(f.reg, proof, proof.RootGoalID, Trivial{}))
	err = ApplyTactic(f.reg, proof, proof.RootGoalID, Trivial{})
	require.Error(t, err)
}
