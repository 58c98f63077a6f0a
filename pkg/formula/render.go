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
	"strings"

	"github.com/logicforge/logicforge/pkg/metamodel"
)

// RenderExpr renders a FormulaExpr to a Unicode-friendly string.
func RenderExpr(reg *metamodel.Registry, e FormulaExpr) string {
	var b strings.Builder
	renderExpr(&b, reg, e)
	return b.String()
}

func renderExpr(b *strings.Builder, reg *metamodel.Registry, e FormulaExpr) {
	switch e := e.(type) {
	case *Var:
		b.WriteString(e.Name)
	case *Construct:
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
	case *FuncApp:
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
	case IntLit:
		fmt.Fprintf(b, "%d", e.Value)
	case EmptySet:
		b.WriteString("{}")
	case *ArithOp:
		b.WriteByte('(')
		renderExpr(b, reg, e.Left)
		fmt.Fprintf(b, " %s ", arithOpSymbol(e.Op))
		renderExpr(b, reg, e.Right)
		b.WriteByte(')')
	}
}

func arithOpSymbol(op ArithOpKind) string {
	switch op {
	case ArithAdd:
		return "+"
	case ArithSub:
		return "-"
	case ArithMul:
		return "*"
	case ArithMax:
		return "max"
	case ArithMin:
		return "min"
	default:
		return "?"
	}
}

func cmpSymbol(op CmpKind) string {
	switch op {
	case CmpEq:
		return "="
	case CmpNeq:
		return "≠"
	case CmpLt:
		return "<"
	case CmpLeq:
		return "≤"
	case CmpGt:
		return ">"
	case CmpGeq:
		return "≥"
	default:
		return "?"
	}
}

// RenderFormula renders a Formula to a Unicode-friendly string.
func RenderFormula(reg *metamodel.Registry, f Formula) string {
	var b strings.Builder
	renderFormula(&b, reg, f)
	return b.String()
}

func renderFormula(b *strings.Builder, reg *metamodel.Registry, f Formula) {
	switch f := f.(type) {
	case *Forall:
		fmt.Fprintf(b, "∀%s. ", f.VarName)
		renderFormula(b, reg, f.Body)
	case *Exists:
		fmt.Fprintf(b, "∃%s. ", f.VarName)
		renderFormula(b, reg, f.Body)
	case *Implies:
		b.WriteByte('(')
		renderFormula(b, reg, f.Left)
		b.WriteString(" → ")
		renderFormula(b, reg, f.Right)
		b.WriteByte(')')
	case *And:
		b.WriteByte('(')
		renderFormula(b, reg, f.Left)
		b.WriteString(" ∧ ")
		renderFormula(b, reg, f.Right)
		b.WriteByte(')')
	case *Or:
		b.WriteByte('(')
		renderFormula(b, reg, f.Left)
		b.WriteString(" ∨ ")
		renderFormula(b, reg, f.Right)
		b.WriteByte(')')
	case *Not:
		b.WriteString("¬")
		renderFormula(b, reg, f.Body)
	case *JudgmentApp:
		j, err := reg.GetJudgment(f.JudgmentID)
		if err != nil || len(j.Separators) != len(f.Args)+1 {
			b.WriteString(string(f.JudgmentID))
			b.WriteByte('(')
			for i, a := range f.Args {
				if i > 0 {
					b.WriteString(", ")
				}
				renderExpr(b, reg, a)
			}
			b.WriteByte(')')
			return
		}
		b.WriteString(j.Separators[0])
		for i, a := range f.Args {
			renderExpr(b, reg, a)
			b.WriteString(j.Separators[i+1])
		}
	case *TermEq:
		renderExpr(b, reg, f.Left)
		b.WriteString(" = ")
		renderExpr(b, reg, f.Right)
	case *NumCmp:
		renderExpr(b, reg, f.Left)
		fmt.Fprintf(b, " %s ", cmpSymbol(f.Op))
		renderExpr(b, reg, f.Right)
	case *FuncEq:
		name := string(f.FuncID)
		if g, err := reg.GetFunction(f.FuncID); err == nil {
			name = g.Name
		}
		fmt.Fprintf(b, "%s(", name)
		renderExpr(b, reg, f.Arg)
		b.WriteString(") = ")
		renderExpr(b, reg, f.Value)
	case *SetIn:
		name := string(f.FuncID)
		if g, err := reg.GetFunction(f.FuncID); err == nil {
			name = g.Name
		}
		renderExpr(b, reg, f.Elem)
		if f.Not {
			b.WriteString(" ∉ ")
		} else {
			b.WriteString(" ∈ ")
		}
		fmt.Fprintf(b, "%s(", name)
		renderExpr(b, reg, f.Arg)
		b.WriteByte(')')
	case True:
		b.WriteString("⊤")
	case False:
		b.WriteString("⊥")
	}
}
