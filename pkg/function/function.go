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

// Package function implements the structural-termination checker and
// the evaluator for RecursiveFunc definitions, plus rendering of
// FuncExpr/FuncPredicate trees to Unicode strings.
package function

import (
	"fmt"
	"strings"

	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/term"
)

// CheckTermination walks every case of f and verifies that each
// recursive call to f passes, as its principal (first) argument,
// exactly a structural variable: a bound variable whose corresponding
// ConstructorArg has sort f.PrincipalSortID. It returns the first
// violation found, or nil if f terminates.
func CheckTermination(reg *metamodel.Registry, f *metamodel.RecursiveFunc) *metamodel.TerminationError {
	for _, c := range f.Cases {
		ctor, err := reg.GetConstructor(c.ConstructorID)
		if err != nil {
			return &metamodel.TerminationError{ConstructorName: string(c.ConstructorID), Reason: "case references an unknown constructor"}
		}
		structural := make(map[string]bool)
		for i, arg := range ctor.Args {
			if i >= len(c.BoundVars) {
				break
			}
			if arg.SortID == f.PrincipalSortID {
				structural[c.BoundVars[i]] = true
			}
		}
		if c.Body == nil {
			continue
		}
		if tErr := walkExpr(c.Body, f.ID, structural); tErr != nil {
			tErr.ConstructorName = ctor.Name
			return tErr
		}
	}
	return nil
}

func walkExpr(e metamodel.FuncExpr, selfID ids.ID, structural map[string]bool) *metamodel.TerminationError {
	switch e := e.(type) {
	case *metamodel.IntLit, *metamodel.EmptySet, *metamodel.VarRef:
		return nil
	case *metamodel.Singleton:
		return walkExpr(e.Elem, selfID, structural)
	case *metamodel.Call:
		if e.FuncID == selfID {
			if len(e.Args) == 0 {
				return &metamodel.TerminationError{Reason: "recursive call has no arguments"}
			}
			v, ok := e.Args[0].(*metamodel.VarRef)
			if !ok || !structural[v.Name] {
				return &metamodel.TerminationError{Reason: fmt.Sprintf("recursive call's principal argument must be a structural variable, not %T", e.Args[0])}
			}
		}
		for _, a := range e.Args {
			if err := walkExpr(a, selfID, structural); err != nil {
				return err
			}
		}
		return nil
	case *metamodel.Construct:
		for _, a := range e.Args {
			if err := walkExpr(a, selfID, structural); err != nil {
				return err
			}
		}
		return nil
	case *metamodel.BinOp:
		if err := walkExpr(e.Left, selfID, structural); err != nil {
			return err
		}
		return walkExpr(e.Right, selfID, structural)
	case *metamodel.If:
		if err := walkPred(e.Pred, selfID, structural); err != nil {
			return err
		}
		if err := walkExpr(e.Then, selfID, structural); err != nil {
			return err
		}
		return walkExpr(e.Else, selfID, structural)
	default:
		return &metamodel.TerminationError{Reason: fmt.Sprintf("unknown expression node %T", e)}
	}
}

func walkPred(p metamodel.FuncPredicate, selfID ids.ID, structural map[string]bool) *metamodel.TerminationError {
	switch p := p.(type) {
	case *metamodel.IntCmp:
		if err := walkExpr(p.Left, selfID, structural); err != nil {
			return err
		}
		return walkExpr(p.Right, selfID, structural)
	case *metamodel.AtomCmp:
		if err := walkExpr(p.Left, selfID, structural); err != nil {
			return err
		}
		return walkExpr(p.Right, selfID, structural)
	case *metamodel.SetMember:
		if err := walkExpr(p.Elem, selfID, structural); err != nil {
			return err
		}
		return walkExpr(p.Set, selfID, structural)
	case *metamodel.PredAnd:
		if err := walkPred(p.Left, selfID, structural); err != nil {
			return err
		}
		return walkPred(p.Right, selfID, structural)
	case *metamodel.PredOr:
		if err := walkPred(p.Left, selfID, structural); err != nil {
			return err
		}
		return walkPred(p.Right, selfID, structural)
	case *metamodel.PredNot:
		return walkPred(p.Operand, selfID, structural)
	default:
		return &metamodel.TerminationError{Reason: fmt.Sprintf("unknown predicate node %T", p)}
	}
}

// ---- Evaluation ----

// Value is the tagged-union result of evaluating a FuncExpr: an
// integer, a finite set of atom names, or a Term.
type Value interface {
	isValue()
}

// IntValue wraps an integer result.
type IntValue struct{ N int }

func (IntValue) isValue() {}

// SetValue wraps a finite set of atom variable names.
type SetValue struct{ Names map[string]bool }

func (SetValue) isValue() {}

// TermValue wraps a Term result.
type TermValue struct{ T term.Term }

func (TermValue) isValue() {}

func newSet(names ...string) SetValue {
	s := SetValue{Names: make(map[string]bool, len(names))}
	for _, n := range names {
		s.Names[n] = true
	}
	return s
}

func unionSets(a, b SetValue) SetValue {
	out := newSet()
	for n := range a.Names {
		out.Names[n] = true
	}
	for n := range b.Names {
		out.Names[n] = true
	}
	return out
}

func intersectSets(a, b SetValue) SetValue {
	out := newSet()
	for n := range a.Names {
		if b.Names[n] {
			out.Names[n] = true
		}
	}
	return out
}

func diffSets(a, b SetValue) SetValue {
	out := newSet()
	for n := range a.Names {
		if !b.Names[n] {
			out.Names[n] = true
		}
	}
	return out
}

// Env binds names (constructor-case bound variables and extra
// arguments) to terms. All bound variables in this engine are
// term-sorted, per the data model's (name, sortId) shape for extra
// arguments.
type Env map[string]term.Term

// Eval evaluates f on a concrete principal term and an environment of
// extra-argument bindings. It selects the case matching principal's
// constructor, extends the environment with the case's pattern-bound
// subterms, and evaluates the body. Any type mismatch produces
// engerr.EvaluationStuck; no coercion is ever performed.
func Eval(reg *metamodel.Registry, f *metamodel.RecursiveFunc, principal term.Term, extra Env) (Value, error) {
	apply, ok := principal.(*term.Apply)
	if !ok {
		return nil, &engerr.EvaluationStuck{Reason: "principal argument is not a constructor application"}
	}
	var c *metamodel.FuncCase
	for _, cc := range f.Cases {
		if cc.ConstructorID == apply.ConstructorID {
			c = cc
			break
		}
	}
	if c == nil {
		return nil, &engerr.EvaluationStuck{Reason: "no case matches the principal term's constructor"}
	}
	env := make(Env, len(c.BoundVars)+len(extra))
	for i, name := range c.BoundVars {
		if i < len(apply.Args) {
			env[name] = apply.Args[i]
		}
	}
	for k, v := range extra {
		env[k] = v
	}
	return evalExpr(reg, c.Body, env)
}

func evalExpr(reg *metamodel.Registry, e metamodel.FuncExpr, env Env) (Value, error) {
	switch e := e.(type) {
	case *metamodel.IntLit:
		return IntValue{N: e.Value}, nil
	case *metamodel.EmptySet:
		return newSet(), nil
	case *metamodel.VarRef:
		t, ok := env[e.Name]
		if !ok {
			return nil, &engerr.EvaluationStuck{Reason: fmt.Sprintf("unbound variable %q", e.Name)}
		}
		return TermValue{T: t}, nil
	case *metamodel.Singleton:
		v, err := evalExpr(reg, e.Elem, env)
		if err != nil {
			return nil, err
		}
		tv, ok := v.(TermValue)
		if !ok {
			return nil, &engerr.EvaluationStuck{Reason: "singleton element did not resolve to a term"}
		}
		atom, ok := tv.T.(*term.Atom)
		if !ok {
			return nil, &engerr.EvaluationStuck{Reason: "singleton element is not an atom"}
		}
		return newSet(atom.VariableName), nil
	case *metamodel.Call:
		return evalCall(reg, e, env)
	case *metamodel.Construct:
		args := make([]term.Term, len(e.Args))
		for i, a := range e.Args {
			v, err := evalExpr(reg, a, env)
			if err != nil {
				return nil, err
			}
			tv, ok := v.(TermValue)
			if !ok {
				return nil, &engerr.EvaluationStuck{Reason: "constructor argument did not resolve to a term"}
			}
			args[i] = tv.T
		}
		return TermValue{T: &term.Apply{ConstructorID: e.ConstructorID, Args: args}}, nil
	case *metamodel.BinOp:
		return evalBinOp(reg, e, env)
	case *metamodel.If:
		pred, err := evalPred(reg, e.Pred, env)
		if err != nil {
			return nil, err
		}
		if pred {
			return evalExpr(reg, e.Then, env)
		}
		return evalExpr(reg, e.Else, env)
	default:
		return nil, &engerr.EvaluationStuck{Reason: fmt.Sprintf("unknown expression node %T", e)}
	}
}

func evalCall(reg *metamodel.Registry, e *metamodel.Call, env Env) (Value, error) {
	g, err := reg.GetFunction(e.FuncID)
	if err != nil {
		return nil, err
	}
	if len(e.Args) == 0 {
		return nil, &engerr.EvaluationStuck{Reason: "call has no principal argument"}
	}
	principalVal, err := evalExpr(reg, e.Args[0], env)
	if err != nil {
		return nil, err
	}
	principalTerm, ok := principalVal.(TermValue)
	if !ok {
		return nil, &engerr.EvaluationStuck{Reason: "call's principal argument did not resolve to a term"}
	}
	extra := make(Env, len(e.Args)-1)
	for i := 1; i < len(e.Args); i++ {
		v, err := evalExpr(reg, e.Args[i], env)
		if err != nil {
			return nil, err
		}
		tv, ok := v.(TermValue)
		if !ok {
			return nil, &engerr.EvaluationStuck{Reason: "call's extra argument did not resolve to a term"}
		}
		if i-1 < len(g.ExtraArgs) {
			extra[g.ExtraArgs[i-1].Name] = tv.T
		}
	}
	return Eval(reg, g, principalTerm.T, extra)
}

func evalBinOp(reg *metamodel.Registry, e *metamodel.BinOp, env Env) (Value, error) {
	l, err := evalExpr(reg, e.Left, env)
	if err != nil {
		return nil, err
	}
	r, err := evalExpr(reg, e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case metamodel.OpAdd, metamodel.OpSub, metamodel.OpMul, metamodel.OpMax, metamodel.OpMin:
		li, lok := l.(IntValue)
		ri, rok := r.(IntValue)
		if !lok || !rok {
			return nil, &engerr.EvaluationStuck{Reason: "arithmetic operator requires integer operands"}
		}
		switch e.Op {
		case metamodel.OpAdd:
			return IntValue{N: li.N + ri.N}, nil
		case metamodel.OpSub:
			return IntValue{N: li.N - ri.N}, nil
		case metamodel.OpMul:
			return IntValue{N: li.N * ri.N}, nil
		case metamodel.OpMax:
			if li.N > ri.N {
				return IntValue{N: li.N}, nil
			}
			return IntValue{N: ri.N}, nil
		case metamodel.OpMin:
			if li.N < ri.N {
				return IntValue{N: li.N}, nil
			}
			return IntValue{N: ri.N}, nil
		}
	case metamodel.OpUnion, metamodel.OpIntersect, metamodel.OpDiff:
		ls, lok := l.(SetValue)
		rs, rok := r.(SetValue)
		if !lok || !rok {
			return nil, &engerr.EvaluationStuck{Reason: "set operator requires set operands"}
		}
		switch e.Op {
		case metamodel.OpUnion:
			return unionSets(ls, rs), nil
		case metamodel.OpIntersect:
			return intersectSets(ls, rs), nil
		case metamodel.OpDiff:
			return diffSets(ls, rs), nil
		}
	}
	return nil, &engerr.EvaluationStuck{Reason: "unknown binary operator"}
}

func evalPred(reg *metamodel.Registry, p metamodel.FuncPredicate, env Env) (bool, error) {
	switch p := p.(type) {
	case *metamodel.IntCmp:
		l, err := evalExpr(reg, p.Left, env)
		if err != nil {
			return false, err
		}
		r, err := evalExpr(reg, p.Right, env)
		if err != nil {
			return false, err
		}
		li, lok := l.(IntValue)
		ri, rok := r.(IntValue)
		if !lok || !rok {
			return false, &engerr.EvaluationStuck{Reason: "integer comparison requires integer operands"}
		}
		switch p.Op {
		case metamodel.CmpEq:
			return li.N == ri.N, nil
		case metamodel.CmpNeq:
			return li.N != ri.N, nil
		case metamodel.CmpLt:
			return li.N < ri.N, nil
		case metamodel.CmpLeq:
			return li.N <= ri.N, nil
		case metamodel.CmpGt:
			return li.N > ri.N, nil
		case metamodel.CmpGeq:
			return li.N >= ri.N, nil
		}
		return false, &engerr.EvaluationStuck{Reason: "unknown comparison operator"}
	case *metamodel.AtomCmp:
		l, err := evalExpr(reg, p.Left, env)
		if err != nil {
			return false, err
		}
		r, err := evalExpr(reg, p.Right, env)
		if err != nil {
			return false, err
		}
		lt, lok := l.(TermValue)
		rt, rok := r.(TermValue)
		if !lok || !rok {
			return false, &engerr.EvaluationStuck{Reason: "atom comparison requires term operands"}
		}
		la, laok := lt.T.(*term.Atom)
		ra, raok := rt.T.(*term.Atom)
		if !laok || !raok {
			return false, &engerr.EvaluationStuck{Reason: "atom comparison requires atom operands"}
		}
		switch p.Op {
		case metamodel.CmpEq:
			return la.VariableName == ra.VariableName, nil
		case metamodel.CmpNeq:
			return la.VariableName != ra.VariableName, nil
		}
		return false, &engerr.EvaluationStuck{Reason: "atom comparison only supports eq/neq"}
	case *metamodel.SetMember:
		elemVal, err := evalExpr(reg, p.Elem, env)
		if err != nil {
			return false, err
		}
		setVal, err := evalExpr(reg, p.Set, env)
		if err != nil {
			return false, err
		}
		elemTerm, ok := elemVal.(TermValue)
		if !ok {
			return false, &engerr.EvaluationStuck{Reason: "membership element must resolve to a term"}
		}
		atom, ok := elemTerm.T.(*term.Atom)
		if !ok {
			return false, &engerr.EvaluationStuck{Reason: "membership element must be an atom"}
		}
		set, ok := setVal.(SetValue)
		if !ok {
			return false, &engerr.EvaluationStuck{Reason: "membership requires a set"}
		}
		in := set.Names[atom.VariableName]
		if p.Not {
			return !in, nil
		}
		return in, nil
	case *metamodel.PredAnd:
		l, err := evalPred(reg, p.Left, env)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evalPred(reg, p.Right, env)
	case *metamodel.PredOr:
		l, err := evalPred(reg, p.Left, env)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evalPred(reg, p.Right, env)
	case *metamodel.PredNot:
		v, err := evalPred(reg, p.Operand, env)
		if err != nil {
			return false, err
		}
		return !v, nil
	default:
		return false, &engerr.EvaluationStuck{Reason: fmt.Sprintf("unknown predicate node %T", p)}
	}
}

// RenderExpr renders a FuncExpr to a Unicode-friendly string.
func RenderExpr(reg *metamodel.Registry, e metamodel.FuncExpr) string {
	var b strings.Builder
	renderExpr(&b, reg, e)
	return b.String()
}

func renderExpr(b *strings.Builder, reg *metamodel.Registry, e metamodel.FuncExpr) {
	switch e := e.(type) {
	case *metamodel.IntLit:
		fmt.Fprintf(b, "%d", e.Value)
	case *metamodel.EmptySet:
		b.WriteString("{}")
	case *metamodel.VarRef:
		b.WriteString(e.Name)
	case *metamodel.Singleton:
		b.WriteByte('{')
		renderExpr(b, reg, e.Elem)
		b.WriteByte('}')
	case *metamodel.Call:
		name := string(e.FuncID)
		if g, err := reg.GetFunction(e.FuncID); err == nil {
			name = g.Name
		}
		b.WriteString(name)
		b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			renderExpr(b, reg, a)
		}
		b.WriteByte(')')
	case *metamodel.Construct:
		name := string(e.ConstructorID)
		if c, err := reg.GetConstructor(e.ConstructorID); err == nil {
			name = c.Name
		}
		b.WriteString(name)
		if len(e.Args) > 0 {
			b.WriteByte('(')
			for i, a := range e.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, reg, a)
			}
			b.WriteByte(')')
		}
	case *metamodel.BinOp:
		b.WriteByte('(')
		renderExpr(b, reg, e.Left)
		fmt.Fprintf(b, " %s ", binOpSymbol(e.Op))
		renderExpr(b, reg, e.Right)
		b.WriteByte(')')
	case *metamodel.If:
		b.WriteString("if ")
		renderPred(b, reg, e.Pred)
		b.WriteString(" then ")
		renderExpr(b, reg, e.Then)
		b.WriteString(" else ")
		renderExpr(b, reg, e.Else)
	}
}

func binOpSymbol(op metamodel.BinOpKind) string {
	switch op {
	case metamodel.OpAdd:
		return "+"
	case metamodel.OpSub:
		return "-"
	case metamodel.OpMul:
		return "*"
	case metamodel.OpMax:
		return "max"
	case metamodel.OpMin:
		return "min"
	case metamodel.OpUnion:
		return "∪"
	case metamodel.OpIntersect:
		return "∩"
	case metamodel.OpDiff:
		return "\\"
	default:
		return "?"
	}
}

// RenderPredicate renders a FuncPredicate to a Unicode-friendly
// string.
func RenderPredicate(reg *metamodel.Registry, p metamodel.FuncPredicate) string {
	var b strings.Builder
	renderPred(&b, reg, p)
	return b.String()
}

func renderPred(b *strings.Builder, reg *metamodel.Registry, p metamodel.FuncPredicate) {
	switch p := p.(type) {
	case *metamodel.IntCmp:
		renderExpr(b, reg, p.Left)
		fmt.Fprintf(b, " %s ", cmpSymbol(p.Op))
		renderExpr(b, reg, p.Right)
	case *metamodel.AtomCmp:
		renderExpr(b, reg, p.Left)
		fmt.Fprintf(b, " %s ", cmpSymbol(p.Op))
		renderExpr(b, reg, p.Right)
	case *metamodel.SetMember:
		renderExpr(b, reg, p.Elem)
		if p.Not {
			b.WriteString(" ∉ ")
		} else {
			b.WriteString(" ∈ ")
		}
		renderExpr(b, reg, p.Set)
	case *metamodel.PredAnd:
		renderPred(b, reg, p.Left)
		b.WriteString(" ∧ ")
		renderPred(b, reg, p.Right)
	case *metamodel.PredOr:
		renderPred(b, reg, p.Left)
		b.WriteString(" ∨ ")
		renderPred(b, reg, p.Right)
	case *metamodel.PredNot:
		b.WriteString("¬")
		renderPred(b, reg, p.Operand)
	}
}

func cmpSymbol(op metamodel.CmpKind) string {
	switch op {
	case metamodel.CmpEq:
		return "="
	case metamodel.CmpNeq:
		return "≠"
	case metamodel.CmpLt:
		return "<"
	case metamodel.CmpLeq:
		return "≤"
	case metamodel.CmpGt:
		return ">"
	case metamodel.CmpGeq:
		return "≥"
	default:
		return "?"
	}
}
