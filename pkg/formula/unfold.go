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
	"fmt"

	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/metamodel"
)

// UnfoldFuncApp finds the outermost subexpression of the form
// f(C(...), ...extra) where C matches one of f's cases by constructor
// id, instantiates that case's body with bindings drawn from the
// constructor's children and the call's extra arguments, translates
// the resulting FuncExpr to FormulaExpr node-wise, and substitutes it
// for the matched subexpression. It returns (rewritten, true, nil) on
// success, or (expr, false, nil) if no applicable occurrence exists.
//
// Unlike a translation that silently maps unsupported FuncExpr nodes
// (mul, max, min, set operations, if) to the literal 0, this refuses
// with engerr.Unsupported when the matched case's body contains one,
// rather than silently producing an unsound rewrite.
func UnfoldFuncApp(reg *metamodel.Registry, f *metamodel.RecursiveFunc, expr FormulaExpr) (FormulaExpr, bool, error) {
	if app, ok := expr.(*FuncApp); ok && app.FuncID == f.ID {
		if rewritten, matched, err := unfoldCall(reg, f, app); err != nil {
			return nil, false, err
		} else if matched {
			return rewritten, true, nil
		}
	}
	switch e := expr.(type) {
	case *Construct:
		for i, a := range e.Args {
			rewritten, found, err := UnfoldFuncApp(reg, f, a)
			if err != nil {
				return nil, false, err
			}
			if found {
				args := append([]FormulaExpr(nil), e.Args...)
				args[i] = rewritten
				return &Construct{ConstructorID: e.ConstructorID, Args: args}, true, nil
			}
		}
	case *FuncApp:
		for i, a := range e.Args {
			rewritten, found, err := UnfoldFuncApp(reg, f, a)
			if err != nil {
				return nil, false, err
			}
			if found {
				args := append([]FormulaExpr(nil), e.Args...)
				args[i] = rewritten
				return &FuncApp{FuncID: e.FuncID, Args: args}, true, nil
			}
		}
	case *ArithOp:
		if rewritten, found, err := UnfoldFuncApp(reg, f, e.Left); err != nil {
			return nil, false, err
		} else if found {
			return &ArithOp{Op: e.Op, Left: rewritten, Right: e.Right}, true, nil
		}
		if rewritten, found, err := UnfoldFuncApp(reg, f, e.Right); err != nil {
			return nil, false, err
		} else if found {
			return &ArithOp{Op: e.Op, Left: e.Left, Right: rewritten}, true, nil
		}
	}
	return expr, false, nil
}

func unfoldCall(reg *metamodel.Registry, f *metamodel.RecursiveFunc, app *FuncApp) (FormulaExpr, bool, error) {
	if len(app.Args) == 0 {
		return nil, false, nil
	}
	principal, ok := app.Args[0].(*Construct)
	if !ok {
		return nil, false, nil
	}
	var c *metamodel.FuncCase
	for _, cc := range f.Cases {
		if cc.ConstructorID == principal.ConstructorID {
			c = cc
			break
		}
	}
	if c == nil {
		return nil, false, nil
	}
	env := make(map[string]FormulaExpr, len(c.BoundVars)+len(f.ExtraArgs))
	for i, name := range c.BoundVars {
		if i < len(principal.Args) {
			env[name] = principal.Args[i]
		}
	}
	for i, extra := range f.ExtraArgs {
		if i+1 < len(app.Args) {
			env[extra.Name] = app.Args[i+1]
		}
	}
	translated, err := translateFuncExpr(c.Body, env)
	if err != nil {
		return nil, false, err
	}
	return translated, true, nil
}

// translateFuncExpr node-wise translates a FuncExpr into FormulaExpr,
// resolving VarRef leaves against env. Of the binary operators only add
// and sub are translated; mul, max, min, the set operations, if and
// singleton cause a refusal rather than an unsound literal-0
// substitution.
func translateFuncExpr(e metamodel.FuncExpr, env map[string]FormulaExpr) (FormulaExpr, error) {
	switch e := e.(type) {
	case *metamodel.IntLit:
		return IntLit{Value: e.Value}, nil
	case *metamodel.EmptySet:
		return EmptySet{}, nil
	case *metamodel.VarRef:
		v, ok := env[e.Name]
		if !ok {
			return nil, &engerr.Unsupported{Operation: fmt.Sprintf("unfold: unbound variable %q", e.Name)}
		}
		return v, nil
	case *metamodel.Call:
		args := make([]FormulaExpr, len(e.Args))
		for i, a := range e.Args {
			t, err := translateFuncExpr(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &FuncApp{FuncID: e.FuncID, Args: args}, nil
	case *metamodel.Construct:
		args := make([]FormulaExpr, len(e.Args))
		for i, a := range e.Args {
			t, err := translateFuncExpr(a, env)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		return &Construct{ConstructorID: e.ConstructorID, Args: args}, nil
	case *metamodel.BinOp:
		switch e.Op {
		case metamodel.OpAdd, metamodel.OpSub:
			l, err := translateFuncExpr(e.Left, env)
			if err != nil {
				return nil, err
			}
			r, err := translateFuncExpr(e.Right, env)
			if err != nil {
				return nil, err
			}
			op := ArithAdd
			if e.Op == metamodel.OpSub {
				op = ArithSub
			}
			return &ArithOp{Op: op, Left: l, Right: r}, nil
		default:
			return nil, &engerr.Unsupported{Operation: "unfold: only + and - operators are translated"}
		}
	case *metamodel.Singleton:
		return nil, &engerr.Unsupported{Operation: "unfold: singleton has no FormulaExpr equivalent"}
	case *metamodel.If:
		return nil, &engerr.Unsupported{Operation: "unfold: conditional has no FormulaExpr equivalent"}
	default:
		return nil, &engerr.Unsupported{Operation: fmt.Sprintf("unfold: unknown expression node %T", e)}
	}
}
