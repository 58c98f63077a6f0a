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
	"strings"

	"github.com/pkg/errors"

	"github.com/logicforge/logicforge/pkg/derive"
	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/function"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/pattern"
	"github.com/logicforge/logicforge/pkg/term"
)

func (e *Engine) EnumerateTerms(sortID ids.ID, maxDepth int) ([]term.Term, error) {
	ts, err := derive.EnumerateTerms(e.Reg, sortID, maxDepth, e.Limits, e.log.Desugar())
	if err != nil {
		return nil, errors.Wrap(err, "enumerateTerms")
	}
	return ts, nil
}

func (e *Engine) MatchPattern(t term.Term, p metamodel.Pattern) (pattern.Bindings, bool) {
	return pattern.Match(t, p)
}

func (e *Engine) Derive(judgmentID ids.ID, terms []term.Term) (*derive.Derivation, error) {
	d, err := derive.Derive(e.Reg, judgmentID, terms, e.Limits.DerivationDepth)
	if err != nil {
		return nil, errors.Wrap(err, "derive")
	}
	return d, nil
}

func (e *Engine) AnalyzeSyntaxDirected(judgmentID ids.ID) (*derive.AnalyzeResult, error) {
	r, err := derive.AnalyzeSyntaxDirected(e.Reg, judgmentID)
	if err != nil {
		return nil, errors.Wrap(err, "analyzeSyntaxDirected")
	}
	return r, nil
}

// EnumerateExamples enumerates positive and negative examples of
// judgmentID up to the engine's configured depth and per-class caps.
func (e *Engine) EnumerateExamples(judgmentID ids.ID, maxDerivationDepth int) ([]derive.Example, error) {
	exs, err := derive.EnumerateExamples(e.Reg, judgmentID, e.Limits, maxDerivationDepth, e.log.Desugar())
	if err != nil {
		return nil, errors.Wrap(err, "enumerateExamples")
	}
	return exs, nil
}

func (e *Engine) RenderFormula(f formula.Formula) string {
	return formula.RenderFormula(e.Reg, f)
}

func (e *Engine) RenderFuncExpr(expr metamodel.FuncExpr) string {
	return function.RenderExpr(e.Reg, expr)
}

func (e *Engine) RenderTerm(t term.Term) string {
	return term.Render(e.Reg, t)
}

// RenderDerivation renders a Derivation tree as ruleName(premise1,
// premise2, ...), e.g. "E-Succ(O-Succ(E-Zero))", following the same
// recursive, parenthesized-children shape RenderExpr/term.Render
// already use for constructor applications.
func RenderDerivation(d *derive.Derivation) string {
	if len(d.Premises) == 0 {
		return d.RuleName
	}
	parts := make([]string, len(d.Premises))
	for i, p := range d.Premises {
		parts[i] = RenderDerivation(p)
	}
	var b strings.Builder
	b.WriteString(d.RuleName)
	b.WriteByte('(')
	b.WriteString(strings.Join(parts, ", "))
	b.WriteByte(')')
	return b.String()
}
