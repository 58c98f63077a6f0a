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
	"fmt"

	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
)

// The DTO types in this file give every tagged-union type in the
// metamodel and formula packages a flat, YAML/JSON-friendly shape: one
// struct with a Kind discriminator string and a field per variant's
// payload (unused fields left zero). Each DTO field maps one-to-one
// onto an ADT variant's payload, nothing invented.

// PatternDTO encodes metamodel.Pattern.
type PatternDTO struct {
	Kind          string       `yaml:"kind"`
	MetaVarID     ids.ID       `yaml:"metaVarId,omitempty"`
	ConstructorID ids.ID       `yaml:"constructorId,omitempty"`
	Args          []PatternDTO `yaml:"args,omitempty"`
}

func patternToDTO(p metamodel.Pattern) PatternDTO {
	switch p := p.(type) {
	case *metamodel.MetaVarPattern:
		return PatternDTO{Kind: "meta", MetaVarID: p.MetaVarID}
	case *metamodel.HolePattern:
		return PatternDTO{Kind: "hole"}
	case *metamodel.CtorPattern:
		args := make([]PatternDTO, len(p.Args))
		for i, a := range p.Args {
			args[i] = patternToDTO(a)
		}
		return PatternDTO{Kind: "ctor", ConstructorID: p.ConstructorID, Args: args}
	default:
		return PatternDTO{Kind: "hole"}
	}
}

func dtoToPattern(d PatternDTO) metamodel.Pattern {
	switch d.Kind {
	case "meta":
		return &metamodel.MetaVarPattern{MetaVarID: d.MetaVarID}
	case "ctor":
		args := make([]metamodel.Pattern, len(d.Args))
		for i, a := range d.Args {
			args[i] = dtoToPattern(a)
		}
		return &metamodel.CtorPattern{ConstructorID: d.ConstructorID, Args: args}
	default:
		return &metamodel.HolePattern{}
	}
}

// JudgmentInstanceDTO encodes metamodel.JudgmentInstance.
type JudgmentInstanceDTO struct {
	ID         ids.ID       `yaml:"id"`
	JudgmentID ids.ID       `yaml:"judgmentId"`
	Args       []PatternDTO `yaml:"args"`
}

func judgmentInstanceToDTO(j *metamodel.JudgmentInstance) *JudgmentInstanceDTO {
	if j == nil {
		return nil
	}
	args := make([]PatternDTO, len(j.Args))
	for i, a := range j.Args {
		args[i] = patternToDTO(a)
	}
	return &JudgmentInstanceDTO{ID: j.ID, JudgmentID: j.JudgmentID, Args: args}
}

func dtoToJudgmentInstance(d *JudgmentInstanceDTO) *metamodel.JudgmentInstance {
	if d == nil {
		return nil
	}
	args := make([]metamodel.Pattern, len(d.Args))
	for i, a := range d.Args {
		args[i] = dtoToPattern(a)
	}
	return &metamodel.JudgmentInstance{ID: d.ID, JudgmentID: d.JudgmentID, Args: args}
}

// SideConditionDTO encodes metamodel.SideCondition.
type SideConditionDTO struct {
	ID      ids.ID              `yaml:"id"`
	Pred    metamodel.SideCondPred `yaml:"pred"`
	FuncID  ids.ID              `yaml:"funcId"`
	Arg     PatternDTO          `yaml:"arg"`
	Literal *int                `yaml:"literal,omitempty"`
	Elem    *PatternDTO         `yaml:"elem,omitempty"`
}

func sideConditionToDTO(sc *metamodel.SideCondition) *SideConditionDTO {
	d := &SideConditionDTO{ID: sc.ID, Pred: sc.Pred, FuncID: sc.FuncID, Arg: patternToDTO(sc.Arg), Literal: sc.Literal}
	if sc.Elem != nil {
		elem := patternToDTO(sc.Elem)
		d.Elem = &elem
	}
	return d
}

func dtoToSideCondition(d *SideConditionDTO) *metamodel.SideCondition {
	sc := &metamodel.SideCondition{ID: d.ID, Pred: d.Pred, FuncID: d.FuncID, Arg: dtoToPattern(d.Arg), Literal: d.Literal}
	if d.Elem != nil {
		sc.Elem = dtoToPattern(*d.Elem)
	}
	return sc
}

// FuncExprDTO encodes metamodel.FuncExpr.
type FuncExprDTO struct {
	Kind          string         `yaml:"kind"`
	Value         int            `yaml:"value,omitempty"`
	Name          string         `yaml:"name,omitempty"`
	FuncID        ids.ID         `yaml:"funcId,omitempty"`
	ConstructorID ids.ID         `yaml:"constructorId,omitempty"`
	Args          []FuncExprDTO  `yaml:"args,omitempty"`
	Op            metamodel.BinOpKind `yaml:"op,omitempty"`
	Left          *FuncExprDTO   `yaml:"left,omitempty"`
	Right         *FuncExprDTO   `yaml:"right,omitempty"`
	Elem          *FuncExprDTO   `yaml:"elem,omitempty"`
	Pred          *FuncPredicateDTO `yaml:"pred,omitempty"`
	Then          *FuncExprDTO   `yaml:"then,omitempty"`
	Else          *FuncExprDTO   `yaml:"else,omitempty"`
}

func funcExprToDTO(e metamodel.FuncExpr) *FuncExprDTO {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *metamodel.IntLit:
		return &FuncExprDTO{Kind: "intlit", Value: e.Value}
	case *metamodel.EmptySet:
		return &FuncExprDTO{Kind: "emptyset"}
	case *metamodel.VarRef:
		return &FuncExprDTO{Kind: "varref", Name: e.Name}
	case *metamodel.Singleton:
		return &FuncExprDTO{Kind: "singleton", Elem: funcExprToDTO(e.Elem)}
	case *metamodel.Call:
		args := make([]FuncExprDTO, len(e.Args))
		for i, a := range e.Args {
			args[i] = *funcExprToDTO(a)
		}
		return &FuncExprDTO{Kind: "call", FuncID: e.FuncID, Args: args}
	case *metamodel.Construct:
		args := make([]FuncExprDTO, len(e.Args))
		for i, a := range e.Args {
			args[i] = *funcExprToDTO(a)
		}
		return &FuncExprDTO{Kind: "construct", ConstructorID: e.ConstructorID, Args: args}
	case *metamodel.BinOp:
		return &FuncExprDTO{Kind: "binop", Op: e.Op, Left: funcExprToDTO(e.Left), Right: funcExprToDTO(e.Right)}
	case *metamodel.If:
		return &FuncExprDTO{Kind: "if", Pred: funcPredicateToDTO(e.Pred), Then: funcExprToDTO(e.Then), Else: funcExprToDTO(e.Else)}
	default:
		panic(fmt.Sprintf("api: unknown FuncExpr variant %T", e))
	}
}

func dtoToFuncExpr(d *FuncExprDTO) metamodel.FuncExpr {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "intlit":
		return &metamodel.IntLit{Value: d.Value}
	case "emptyset":
		return &metamodel.EmptySet{}
	case "varref":
		return &metamodel.VarRef{Name: d.Name}
	case "singleton":
		return &metamodel.Singleton{Elem: dtoToFuncExpr(d.Elem)}
	case "call":
		args := make([]metamodel.FuncExpr, len(d.Args))
		for i, a := range d.Args {
			a := a
			args[i] = dtoToFuncExpr(&a)
		}
		return &metamodel.Call{FuncID: d.FuncID, Args: args}
	case "construct":
		args := make([]metamodel.FuncExpr, len(d.Args))
		for i, a := range d.Args {
			a := a
			args[i] = dtoToFuncExpr(&a)
		}
		return &metamodel.Construct{ConstructorID: d.ConstructorID, Args: args}
	case "binop":
		return &metamodel.BinOp{Op: d.Op, Left: dtoToFuncExpr(d.Left), Right: dtoToFuncExpr(d.Right)}
	case "if":
		return &metamodel.If{Pred: dtoToFuncPredicate(d.Pred), Then: dtoToFuncExpr(d.Then), Else: dtoToFuncExpr(d.Else)}
	default:
		return nil
	}
}

// FuncPredicateDTO encodes metamodel.FuncPredicate.
type FuncPredicateDTO struct {
	Kind  string            `yaml:"kind"`
	Op    metamodel.CmpKind `yaml:"op,omitempty"`
	Left  *FuncExprDTO      `yaml:"left,omitempty"`
	Right *FuncExprDTO      `yaml:"right,omitempty"`
	Elem  *FuncExprDTO      `yaml:"elem,omitempty"`
	Set   *FuncExprDTO      `yaml:"set,omitempty"`
	Not   bool              `yaml:"not,omitempty"`
	LHS   *FuncPredicateDTO `yaml:"lhs,omitempty"`
	RHS   *FuncPredicateDTO `yaml:"rhs,omitempty"`
	Inner *FuncPredicateDTO `yaml:"inner,omitempty"`
}

func funcPredicateToDTO(p metamodel.FuncPredicate) *FuncPredicateDTO {
	if p == nil {
		return nil
	}
	switch p := p.(type) {
	case *metamodel.IntCmp:
		return &FuncPredicateDTO{Kind: "intcmp", Op: p.Op, Left: funcExprToDTO(p.Left), Right: funcExprToDTO(p.Right)}
	case *metamodel.AtomCmp:
		return &FuncPredicateDTO{Kind: "atomcmp", Op: p.Op, Left: funcExprToDTO(p.Left), Right: funcExprToDTO(p.Right)}
	case *metamodel.SetMember:
		return &FuncPredicateDTO{Kind: "setmember", Elem: funcExprToDTO(p.Elem), Set: funcExprToDTO(p.Set), Not: p.Not}
	case *metamodel.PredAnd:
		return &FuncPredicateDTO{Kind: "and", LHS: funcPredicateToDTO(p.Left), RHS: funcPredicateToDTO(p.Right)}
	case *metamodel.PredOr:
		return &FuncPredicateDTO{Kind: "or", LHS: funcPredicateToDTO(p.Left), RHS: funcPredicateToDTO(p.Right)}
	case *metamodel.PredNot:
		return &FuncPredicateDTO{Kind: "not", Inner: funcPredicateToDTO(p.Operand)}
	default:
		panic(fmt.Sprintf("api: unknown FuncPredicate variant %T", p))
	}
}

func dtoToFuncPredicate(d *FuncPredicateDTO) metamodel.FuncPredicate {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "intcmp":
		return &metamodel.IntCmp{Op: d.Op, Left: dtoToFuncExpr(d.Left), Right: dtoToFuncExpr(d.Right)}
	case "atomcmp":
		return &metamodel.AtomCmp{Op: d.Op, Left: dtoToFuncExpr(d.Left), Right: dtoToFuncExpr(d.Right)}
	case "setmember":
		return &metamodel.SetMember{Elem: dtoToFuncExpr(d.Elem), Set: dtoToFuncExpr(d.Set), Not: d.Not}
	case "and":
		return &metamodel.PredAnd{Left: dtoToFuncPredicate(d.LHS), Right: dtoToFuncPredicate(d.RHS)}
	case "or":
		return &metamodel.PredOr{Left: dtoToFuncPredicate(d.LHS), Right: dtoToFuncPredicate(d.RHS)}
	case "not":
		return &metamodel.PredNot{Operand: dtoToFuncPredicate(d.Inner)}
	default:
		return nil
	}
}

// FormulaExprDTO encodes formula.FormulaExpr.
type FormulaExprDTO struct {
	Kind          string          `yaml:"kind"`
	Name          string          `yaml:"name,omitempty"`
	ConstructorID ids.ID          `yaml:"constructorId,omitempty"`
	FuncID        ids.ID          `yaml:"funcId,omitempty"`
	Args          []FormulaExprDTO `yaml:"args,omitempty"`
	Value         int             `yaml:"value,omitempty"`
	Op            formula.ArithOpKind `yaml:"op,omitempty"`
	Left          *FormulaExprDTO `yaml:"left,omitempty"`
	Right         *FormulaExprDTO `yaml:"right,omitempty"`
}

func formulaExprToDTO(e formula.FormulaExpr) *FormulaExprDTO {
	if e == nil {
		return nil
	}
	switch e := e.(type) {
	case *formula.Var:
		return &FormulaExprDTO{Kind: "var", Name: e.Name}
	case *formula.Construct:
		args := make([]FormulaExprDTO, len(e.Args))
		for i, a := range e.Args {
			args[i] = *formulaExprToDTO(a)
		}
		return &FormulaExprDTO{Kind: "construct", ConstructorID: e.ConstructorID, Args: args}
	case *formula.FuncApp:
		args := make([]FormulaExprDTO, len(e.Args))
		for i, a := range e.Args {
			args[i] = *formulaExprToDTO(a)
		}
		return &FormulaExprDTO{Kind: "funcapp", FuncID: e.FuncID, Args: args}
	case formula.IntLit:
		return &FormulaExprDTO{Kind: "intlit", Value: e.Value}
	case formula.EmptySet:
		return &FormulaExprDTO{Kind: "emptyset"}
	case *formula.ArithOp:
		return &FormulaExprDTO{Kind: "arithop", Op: e.Op, Left: formulaExprToDTO(e.Left), Right: formulaExprToDTO(e.Right)}
	default:
		panic(fmt.Sprintf("api: unknown FormulaExpr variant %T", e))
	}
}

func dtoToFormulaExpr(d *FormulaExprDTO) formula.FormulaExpr {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "var":
		return &formula.Var{Name: d.Name}
	case "construct":
		args := make([]formula.FormulaExpr, len(d.Args))
		for i, a := range d.Args {
			a := a
			args[i] = dtoToFormulaExpr(&a)
		}
		return &formula.Construct{ConstructorID: d.ConstructorID, Args: args}
	case "funcapp":
		args := make([]formula.FormulaExpr, len(d.Args))
		for i, a := range d.Args {
			a := a
			args[i] = dtoToFormulaExpr(&a)
		}
		return &formula.FuncApp{FuncID: d.FuncID, Args: args}
	case "intlit":
		return formula.IntLit{Value: d.Value}
	case "emptyset":
		return formula.EmptySet{}
	case "arithop":
		return &formula.ArithOp{Op: d.Op, Left: dtoToFormulaExpr(d.Left), Right: dtoToFormulaExpr(d.Right)}
	default:
		return nil
	}
}

// FormulaDTO encodes formula.Formula.
type FormulaDTO struct {
	Kind       string           `yaml:"kind"`
	VarName    string           `yaml:"varName,omitempty"`
	SortID     ids.ID           `yaml:"sortId,omitempty"`
	Body       *FormulaDTO      `yaml:"body,omitempty"`
	Left       *FormulaDTO      `yaml:"left,omitempty"`
	Right      *FormulaDTO      `yaml:"right,omitempty"`
	JudgmentID ids.ID           `yaml:"judgmentId,omitempty"`
	Args       []FormulaExprDTO `yaml:"args,omitempty"`
	ExprLeft   *FormulaExprDTO  `yaml:"exprLeft,omitempty"`
	ExprRight  *FormulaExprDTO  `yaml:"exprRight,omitempty"`
	Op         formula.CmpKind  `yaml:"op,omitempty"`
	FuncID     ids.ID           `yaml:"funcId,omitempty"`
	Arg        *FormulaExprDTO  `yaml:"arg,omitempty"`
	Value      *FormulaExprDTO  `yaml:"value,omitempty"`
	Elem       *FormulaExprDTO  `yaml:"elem,omitempty"`
	Not        bool             `yaml:"not,omitempty"`
}

func formulaToDTO(f formula.Formula) *FormulaDTO {
	if f == nil {
		return nil
	}
	switch f := f.(type) {
	case *formula.Forall:
		return &FormulaDTO{Kind: "forall", VarName: f.VarName, SortID: f.SortID, Body: formulaToDTO(f.Body)}
	case *formula.Exists:
		return &FormulaDTO{Kind: "exists", VarName: f.VarName, SortID: f.SortID, Body: formulaToDTO(f.Body)}
	case *formula.Implies:
		return &FormulaDTO{Kind: "implies", Left: formulaToDTO(f.Left), Right: formulaToDTO(f.Right)}
	case *formula.And:
		return &FormulaDTO{Kind: "and", Left: formulaToDTO(f.Left), Right: formulaToDTO(f.Right)}
	case *formula.Or:
		return &FormulaDTO{Kind: "or", Left: formulaToDTO(f.Left), Right: formulaToDTO(f.Right)}
	case *formula.Not:
		return &FormulaDTO{Kind: "not", Body: formulaToDTO(f.Body)}
	case *formula.JudgmentApp:
		args := make([]FormulaExprDTO, len(f.Args))
		for i, a := range f.Args {
			args[i] = *formulaExprToDTO(a)
		}
		return &FormulaDTO{Kind: "judgmentapp", JudgmentID: f.JudgmentID, Args: args}
	case *formula.TermEq:
		return &FormulaDTO{Kind: "termeq", ExprLeft: formulaExprToDTO(f.Left), ExprRight: formulaExprToDTO(f.Right)}
	case *formula.NumCmp:
		return &FormulaDTO{Kind: "numcmp", Op: f.Op, ExprLeft: formulaExprToDTO(f.Left), ExprRight: formulaExprToDTO(f.Right)}
	case *formula.FuncEq:
		return &FormulaDTO{Kind: "funceq", FuncID: f.FuncID, Arg: formulaExprToDTO(f.Arg), Value: formulaExprToDTO(f.Value)}
	case *formula.SetIn:
		return &FormulaDTO{Kind: "setin", FuncID: f.FuncID, Arg: formulaExprToDTO(f.Arg), Elem: formulaExprToDTO(f.Elem), Not: f.Not}
	case formula.True:
		return &FormulaDTO{Kind: "true"}
	case formula.False:
		return &FormulaDTO{Kind: "false"}
	default:
		panic(fmt.Sprintf("api: unknown Formula variant %T", f))
	}
}

// ToPatternDTO and PatternFromDTO expose the Pattern<->DTO
// conversion to callers outside this package, e.g. the headless
// driver in cmd/logicforge decoding a request's pattern argument.
func ToPatternDTO(p metamodel.Pattern) PatternDTO { return patternToDTO(p) }
func PatternFromDTO(d PatternDTO) metamodel.Pattern { return dtoToPattern(d) }

func ToJudgmentInstanceDTO(j *metamodel.JudgmentInstance) *JudgmentInstanceDTO {
	return judgmentInstanceToDTO(j)
}
func JudgmentInstanceFromDTO(d *JudgmentInstanceDTO) *metamodel.JudgmentInstance {
	return dtoToJudgmentInstance(d)
}

func ToFuncExprDTO(e metamodel.FuncExpr) *FuncExprDTO  { return funcExprToDTO(e) }
func FuncExprFromDTO(d *FuncExprDTO) metamodel.FuncExpr { return dtoToFuncExpr(d) }

func ToFormulaDTO(f formula.Formula) *FormulaDTO  { return formulaToDTO(f) }
func FormulaFromDTO(d *FormulaDTO) formula.Formula { return dtoToFormula(d) }

func ToFormulaExprDTO(e formula.FormulaExpr) *FormulaExprDTO  { return formulaExprToDTO(e) }
func FormulaExprFromDTO(d *FormulaExprDTO) formula.FormulaExpr { return dtoToFormulaExpr(d) }

func dtoToFormula(d *FormulaDTO) formula.Formula {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "forall":
		return &formula.Forall{VarName: d.VarName, SortID: d.SortID, Body: dtoToFormula(d.Body)}
	case "exists":
		return &formula.Exists{VarName: d.VarName, SortID: d.SortID, Body: dtoToFormula(d.Body)}
	case "implies":
		return &formula.Implies{Left: dtoToFormula(d.Left), Right: dtoToFormula(d.Right)}
	case "and":
		return &formula.And{Left: dtoToFormula(d.Left), Right: dtoToFormula(d.Right)}
	case "or":
		return &formula.Or{Left: dtoToFormula(d.Left), Right: dtoToFormula(d.Right)}
	case "not":
		return &formula.Not{Body: dtoToFormula(d.Body)}
	case "judgmentapp":
		args := make([]formula.FormulaExpr, len(d.Args))
		for i, a := range d.Args {
			a := a
			args[i] = dtoToFormulaExpr(&a)
		}
		return &formula.JudgmentApp{JudgmentID: d.JudgmentID, Args: args}
	case "termeq":
		return &formula.TermEq{Left: dtoToFormulaExpr(d.ExprLeft), Right: dtoToFormulaExpr(d.ExprRight)}
	case "numcmp":
		return &formula.NumCmp{Op: d.Op, Left: dtoToFormulaExpr(d.ExprLeft), Right: dtoToFormulaExpr(d.ExprRight)}
	case "funceq":
		return &formula.FuncEq{FuncID: d.FuncID, Arg: dtoToFormulaExpr(d.Arg), Value: dtoToFormulaExpr(d.Value)}
	case "setin":
		return &formula.SetIn{FuncID: d.FuncID, Arg: dtoToFormulaExpr(d.Arg), Elem: dtoToFormulaExpr(d.Elem), Not: d.Not}
	case "true":
		return formula.True{}
	case "false":
		return formula.False{}
	default:
		return nil
	}
}
