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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/term"
)

// peanoFixture builds ℕ with Z/S and the even/odd judgments and rules
// from the end-to-end scenario: E-Zero, E-Succ, O-Succ.
type peanoFixture struct {
	reg          *metamodel.Registry
	nat          ids.ID
	z, s         ids.ID
	even, odd    ids.ID
	eZero, eSucc ids.ID
	oSucc        ids.ID
	n            ids.ID // meta-variable n : ℕ
}

func newPeanoFixture(t *testing.T) *peanoFixture {
	reg := metamodel.NewRegistry()
	nat, err := reg.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := reg.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	s, err := reg.CreateConstructor(nat.ID, "S", []metamodel.ConstructorArg{{SortID: nat.ID, Label: "n"}})
	require.NoError(t, err)

	even, err := reg.CreateJudgment("even", "even", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"", " even"})
	require.NoError(t, err)
	odd, err := reg.CreateJudgment("odd", "odd", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"", " odd"})
	require.NoError(t, err)

	n, err := reg.CreateMetaVariable("n", nat.ID)
	require.NoError(t, err)
	nVar := &metamodel.MetaVarPattern{MetaVarID: n.ID}

	eZero, err := reg.CreateRule("E-Zero", &metamodel.JudgmentInstance{
		JudgmentID: even.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: z.ID}},
	})
	require.NoError(t, err)

	eSucc, err := reg.CreateRule("E-Succ", &metamodel.JudgmentInstance{
		JudgmentID: even.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: s.ID, Args: []metamodel.Pattern{nVar}}},
	})
	require.NoError(t, err)
	require.NoError(t, reg.AddPremise(eSucc.ID, &metamodel.JudgmentInstance{JudgmentID: odd.ID, Args: []metamodel.Pattern{nVar}}))

	oSucc, err := reg.CreateRule("O-Succ", &metamodel.JudgmentInstance{
		JudgmentID: odd.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: s.ID, Args: []metamodel.Pattern{nVar}}},
	})
	require.NoError(t, err)
	require.NoError(t, reg.AddPremise(oSucc.ID, &metamodel.JudgmentInstance{JudgmentID: even.ID, Args: []metamodel.Pattern{nVar}}))

	return &peanoFixture{
		reg: reg, nat: nat.ID, z: z.ID, s: s.ID,
		even: even.ID, odd: odd.ID,
		eZero: eZero.ID, eSucc: eSucc.ID, oSucc: oSucc.ID,
		n: n.ID,
	}
}

func (f *peanoFixture) zero() term.Term { return &term.Apply{ConstructorID: f.z} }
func (f *peanoFixture) succ(t term.Term) term.Term {
	return &term.Apply{ConstructorID: f.s, Args: []term.Term{t}}
}

func TestDeriveEvenSucc2(t *testing.T) {
	f := newPeanoFixture(t)
	two := f.succ(f.succ(f.zero()))
	d, err := Derive(f.reg, f.even, []term.Term{two}, 10)
	require.NoError(t, err)
	require.Equal(t, "E-Succ", d.RuleName)
	require.Len(t, d.Premises, 1)
	require.Equal(t, "O-Succ", d.Premises[0].RuleName)
	require.Len(t, d.Premises[0].Premises, 1)
	require.Equal(t, "E-Zero", d.Premises[0].Premises[0].RuleName)
}

func TestDeriveEvenSucc1Fails(t *testing.T) {
	f := newPeanoFixture(t)
	one := f.succ(f.zero())
	_, err := Derive(f.reg, f.even, []term.Term{one}, 10)
	require.Error(t, err)
}

func TestDeriveRespectsDepthBound(t *testing.T) {
	f := newPeanoFixture(t)
	two := f.succ(f.succ(f.zero()))
	_, err := Derive(f.reg, f.even, []term.Term{two}, 1)
	require.Error(t, err)
}

func TestAnalyzeSyntaxDirectedPeanoIsDirected(t *testing.T) {
	f := newPeanoFixture(t)
	result, err := AnalyzeSyntaxDirected(f.reg, f.even)
	require.NoError(t, err)
	require.True(t, result.SyntaxDirected)
}

func TestAnalyzeSyntaxDirectedRegression(t *testing.T) {
	reg := metamodel.NewRegistry()
	nat, err := reg.CreateSort("ℕ", metamodel.KindInductive, false, "")
	require.NoError(t, err)
	z, err := reg.CreateConstructor(nat.ID, "Z", nil)
	require.NoError(t, err)
	p, err := reg.CreateJudgment("P", "P", []metamodel.JudgmentArg{{SortID: nat.ID, Label: "n"}}, []string{"", ""})
	require.NoError(t, err)
	x, err := reg.CreateMetaVariable("x", nat.ID)
	require.NoError(t, err)

	_, err = reg.CreateRule("P-Zero", &metamodel.JudgmentInstance{
		JudgmentID: p.ID,
		Args:       []metamodel.Pattern{&metamodel.CtorPattern{ConstructorID: z.ID}},
	})
	require.NoError(t, err)
	_, err = reg.CreateRule("P-Var", &metamodel.JudgmentInstance{
		JudgmentID: p.ID,
		Args:       []metamodel.Pattern{&metamodel.MetaVarPattern{MetaVarID: x.ID}},
	})
	require.NoError(t, err)

	result, err := AnalyzeSyntaxDirected(reg, p.ID)
	require.NoError(t, err)
	require.False(t, result.SyntaxDirected)
	require.Len(t, result.OverlappingRules, 1)
}
