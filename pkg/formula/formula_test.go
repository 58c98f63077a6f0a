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

package formula

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/pkg/metamodel"
)

func TestSimplifyExprIdentities(t *testing.T) {
	cases := []struct {
		name string
		in   FormulaExpr
		want FormulaExpr
	}{
		{"0+x", &ArithOp{Op: ArithAdd, Left: IntLit{0}, Right: &Var{Name: "x"}}, &Var{Name: "x"}},
		{"x+0", &ArithOp{Op: ArithAdd, Left: &Var{Name: "x"}, Right: IntLit{0}}, &Var{Name: "x"}},
		{"x-0", &ArithOp{Op: ArithSub, Left: &Var{Name: "x"}, Right: IntLit{0}}, &Var{Name: "x"}},
		{"x-x", &ArithOp{Op: ArithSub, Left: &Var{Name: "x"}, Right: &Var{Name: "x"}}, IntLit{0}},
		{"0*x", &ArithOp{Op: ArithMul, Left: IntLit{0}, Right: &Var{Name: "x"}}, IntLit{0}},
		{"x*0", &ArithOp{Op: ArithMul, Left: &Var{Name: "x"}, Right: IntLit{0}}, IntLit{0}},
		{"1*x", &ArithOp{Op: ArithMul, Left: IntLit{1}, Right: &Var{Name: "x"}}, &Var{Name: "x"}},
		{"x*1", &ArithOp{Op: ArithMul, Left: &Var{Name: "x"}, Right: IntLit{1}}, &Var{Name: "x"}},
		{"max(x,x)", &ArithOp{Op: ArithMax, Left: &Var{Name: "x"}, Right: &Var{Name: "x"}}, &Var{Name: "x"}},
		{"min(x,x)", &ArithOp{Op: ArithMin, Left: &Var{Name: "x"}, Right: &Var{Name: "x"}}, &Var{Name: "x"}},
		{"const fold", &ArithOp{Op: ArithAdd, Left: IntLit{1}, Right: IntLit{2}}, IntLit{3}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SimplifyExpr(c.in)
			require.True(t, EqualExpr(got, c.want), "got %#v want %#v", got, c.want)
		})
	}
}

func TestSimplifyExprIdempotent(t *testing.T) {
	e := &ArithOp{Op: ArithAdd, Left: &ArithOp{Op: ArithAdd, Left: IntLit{0}, Right: &Var{Name: "n"}}, Right: IntLit{0}}
	once := SimplifyExpr(e)
	twice := SimplifyExpr(once)
	require.True(t, EqualExpr(once, twice))
}

func TestSimplifyFormulaCollapsesAndOr(t *testing.T) {
	require.Equal(t, True{}, SimplifyFormula(&Or{Left: True{}, Right: &NumCmp{Op: CmpEq, Left: IntLit{1}, Right: IntLit{2}}}))
	require.Equal(t, False{}, SimplifyFormula(&And{Left: False{}, Right: True{}}))
}

func TestCanProveGeqReflexivity(t *testing.T) {
	n := &Var{Name: "n"}
	require.True(t, CanProveGeq(n, n, nil))
}

func TestCanProveGeqConstant(t *testing.T) {
	require.True(t, CanProveGeq(IntLit{5}, IntLit{3}, nil))
	require.False(t, CanProveGeq(IntLit{2}, IntLit{3}, nil))
}

func TestCanProveGeqZeroNonNegativeSum(t *testing.T) {
	// 1 + size(n) ≥ 0, where size(n) is an opaque, unconstrained
	// non-negative-unknown call. We can't prove size(n) ≥ 0 without a
	// hypothesis, but 1 + x ≥ 0 follows once x's own non-negativity is
	// established as a hypothesis.
	sizeCall := &FuncApp{Args: []FormulaExpr{&Var{Name: "n"}}}
	hyps := []Formula{&NumCmp{Op: CmpGeq, Left: sizeCall, Right: IntLit{0}}}
	sum := &ArithOp{Op: ArithAdd, Left: IntLit{1}, Right: sizeCall}
	require.True(t, CanProveGeq(sum, IntLit{0}, hyps))
}

func TestCanProveGeqFromHypothesis(t *testing.T) {
	l := &Var{Name: "x"}
	r := &Var{Name: "y"}
	hyps := []Formula{&NumCmp{Op: CmpGeq, Left: l, Right: r}}
	require.True(t, CanProveGeq(l, r, hyps))
}

func TestUnfoldSizeFunction(t *testing.T) {
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

	// goal: size(S(n)) = 1 + size(n)
	nVar := &Var{Name: "n"}
	lhs := &FuncApp{FuncID: size.ID, Args: []FormulaExpr{&Construct{ConstructorID: s.ID, Args: []FormulaExpr{nVar}}}}
	rhs := &ArithOp{Op: ArithAdd, Left: IntLit{1}, Right: &FuncApp{FuncID: size.ID, Args: []FormulaExpr{nVar}}}

	unfolded, found, err := UnfoldFuncApp(reg, size, lhs)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, EqualExpr(SimplifyExpr(unfolded), SimplifyExpr(rhs)))
}

func TestUnfoldRefusesUnsupportedOps(t *testing.T) {
	reg := metamodel.NewRegistry()
	nat, err := reg.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := reg.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)

	f, err := reg.CreateFunction("weird", nat.ID, nil, metamodel.FuncReturnType{Kind: metamodel.ReturnInt})
	require.NoError(t, err)
	require.NoError(t, reg.UpdateFuncCase(f.ID, z.ID, nil, &metamodel.BinOp{
		Op:   metamodel.OpMul,
		Left: &metamodel.IntLit{Value: 2},
		Right: &metamodel.IntLit{Value: 3},
	}))

	app := &FuncApp{FuncID: f.ID, Args: []FormulaExpr{&Construct{ConstructorID: z.ID}}}
	_, _, err = UnfoldFuncApp(reg, f, app)
	require.Error(t, err)
}
