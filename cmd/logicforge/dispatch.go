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

package main

import (
	"encoding/json"
	"fmt"

	"github.com/logicforge/logicforge/pkg/api"
	"github.com/logicforge/logicforge/pkg/derive"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/term"
)

// opFunc handles one decoded op's raw JSON args against engine,
// returning the JSON-able result or a wrapped error.
type opFunc func(e *api.Engine, args json.RawMessage) (interface{}, error)

var ops map[string]opFunc

func init() {
	ops = map[string]opFunc{
		"createSort":            opCreateSort,
		"updateSort":            opUpdateSort,
		"deleteSort":            opDeleteSort,
		"createConstructor":     opCreateConstructor,
		"updateConstructor":     opUpdateConstructor,
		"deleteConstructor":     opDeleteConstructor,
		"createJudgment":        opCreateJudgment,
		"updateJudgment":        opUpdateJudgment,
		"deleteJudgment":        opDeleteJudgment,
		"createMetaVariable":    opCreateMetaVariable,
		"deleteMetaVariable":    opDeleteMetaVariable,
		"createRule":            opCreateRule,
		"updateRule":            opUpdateRule,
		"deleteRule":            opDeleteRule,
		"addPremise":            opAddPremise,
		"removePremise":         opRemovePremise,
		"addSideCondition":      opAddSideCondition,
		"removeSideCondition":   opRemoveSideCondition,
		"updateSideCondition":   opUpdateSideCondition,
		"updateRulePosition":    opUpdateRulePosition,
		"createFunction":        opCreateFunction,
		"updateFunction":        opUpdateFunction,
		"updateFuncCase":        opUpdateFuncCase,
		"deleteFunction":        opDeleteFunction,
		"createProperty":        opCreateProperty,
		"deleteProperty":        opDeleteProperty,
		"startProof":            opStartProof,
		"applyTactic":           opApplyTactic,
		"deleteProof":           opDeleteProof,
		"getProof":              opGetProof,
		"getProperty":           opGetProperty,
		"enumerateTerms":        opEnumerateTerms,
		"matchPattern":          opMatchPattern,
		"derive":                opDerive,
		"analyzeSyntaxDirected": opAnalyzeSyntaxDirected,
		"enumerateExamples":     opEnumerateExamples,
		"renderFormula":         opRenderFormula,
		"renderFuncExpr":        opRenderFuncExpr,
		"renderTerm":            opRenderTerm,
		"snapshot":              opSnapshot,
	}
}

func dispatch(e *api.Engine, req Request) (interface{}, error) {
	fn, ok := ops[req.Op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q", req.Op)
	}
	return fn(e, req.Args)
}

func decode(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

func parseSortKind(s string) (metamodel.SortKind, error) {
	switch s {
	case "inductive":
		return metamodel.KindInductive, nil
	case "atom":
		return metamodel.KindAtom, nil
	default:
		return 0, fmt.Errorf("unknown sort kind %q", s)
	}
}

// --- Sorts ---

func opCreateSort(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name       string `json:"name"`
		Kind       string `json:"kind"`
		IsBinder   bool   `json:"isBinder"`
		AtomPrefix string `json:"atomPrefix"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	kind, err := parseSortKind(a.Kind)
	if err != nil {
		return nil, err
	}
	return e.CreateSort(a.Name, kind, a.IsBinder, a.AtomPrefix)
}

func opUpdateSort(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID       ids.ID `json:"id"`
		Name     string `json:"name"`
		IsBinder bool   `json:"isBinder"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateSort(a.ID, a.Name, a.IsBinder)
}

func opDeleteSort(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteSort(a.ID)
}

// --- Constructors ---

func opCreateConstructor(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		SortID ids.ID                      `json:"sortId"`
		Name   string                      `json:"name"`
		Args   []metamodel.ConstructorArg  `json:"args"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateConstructor(a.SortID, a.Name, a.Args)
}

func opUpdateConstructor(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID   ids.ID                     `json:"id"`
		Name string                     `json:"name"`
		Args []metamodel.ConstructorArg `json:"args"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateConstructor(a.ID, a.Name, a.Args)
}

func opDeleteConstructor(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteConstructor(a.ID)
}

// --- Judgments ---

func opCreateJudgment(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name       string                   `json:"name"`
		Symbol     string                   `json:"symbol"`
		ArgSorts   []metamodel.JudgmentArg  `json:"argSorts"`
		Separators []string                 `json:"separators"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateJudgment(a.Name, a.Symbol, a.ArgSorts, a.Separators)
}

func opUpdateJudgment(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID         ids.ID                  `json:"id"`
		Name       string                  `json:"name"`
		Symbol     string                  `json:"symbol"`
		ArgSorts   []metamodel.JudgmentArg `json:"argSorts"`
		Separators []string                `json:"separators"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateJudgment(a.ID, a.Name, a.Symbol, a.ArgSorts, a.Separators)
}

func opDeleteJudgment(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteJudgment(a.ID)
}

// --- Meta-variables ---

func opCreateMetaVariable(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name   string `json:"name"`
		SortID ids.ID `json:"sortId"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateMetaVariable(a.Name, a.SortID)
}

func opDeleteMetaVariable(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteMetaVariable(a.ID)
}

// --- Rules ---

func opCreateRule(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name       string                  `json:"name"`
		Conclusion api.JudgmentInstanceDTO `json:"conclusion"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateRule(a.Name, api.JudgmentInstanceFromDTO(&a.Conclusion))
}

func opUpdateRule(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID         ids.ID                  `json:"id"`
		Name       string                  `json:"name"`
		Conclusion api.JudgmentInstanceDTO `json:"conclusion"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateRule(a.ID, a.Name, api.JudgmentInstanceFromDTO(&a.Conclusion))
}

func opDeleteRule(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteRule(a.ID)
}

func opAddPremise(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		RuleID  ids.ID                  `json:"ruleId"`
		Premise api.JudgmentInstanceDTO `json:"premise"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.AddPremise(a.RuleID, api.JudgmentInstanceFromDTO(&a.Premise))
}

func opRemovePremise(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		RuleID ids.ID `json:"ruleId"`
		Index  int    `json:"index"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.RemovePremise(a.RuleID, a.Index)
}

func opAddSideCondition(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		RuleID        ids.ID                `json:"ruleId"`
		SideCondition api.SideConditionDTO  `json:"sideCondition"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.AddSideCondition(a.RuleID, dtoToSideConditionPublic(&a.SideCondition))
}

func opRemoveSideCondition(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		RuleID          ids.ID `json:"ruleId"`
		SideConditionID ids.ID `json:"sideConditionId"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.RemoveSideCondition(a.RuleID, a.SideConditionID)
}

func opUpdateSideCondition(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		RuleID        ids.ID               `json:"ruleId"`
		SideCondition api.SideConditionDTO `json:"sideCondition"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateSideCondition(a.RuleID, dtoToSideConditionPublic(&a.SideCondition))
}

func opUpdateRulePosition(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID  `json:"id"`
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateRulePosition(a.ID, a.X, a.Y)
}

// --- Functions ---

func opCreateFunction(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name            string                    `json:"name"`
		PrincipalSortID ids.ID                    `json:"principalSortId"`
		ExtraArgs       []metamodel.ExtraArg      `json:"extraArgs"`
		ReturnType      metamodel.FuncReturnType  `json:"returnType"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateFunction(a.Name, a.PrincipalSortID, a.ExtraArgs, a.ReturnType)
}

func opUpdateFunction(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID         ids.ID                   `json:"id"`
		Name       string                   `json:"name"`
		ExtraArgs  []metamodel.ExtraArg     `json:"extraArgs"`
		ReturnType metamodel.FuncReturnType `json:"returnType"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateFunction(a.ID, a.Name, a.ExtraArgs, a.ReturnType)
}

func opUpdateFuncCase(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		FuncID        ids.ID          `json:"funcId"`
		ConstructorID ids.ID          `json:"constructorId"`
		BoundVars     []string        `json:"boundVars"`
		Body          api.FuncExprDTO `json:"body"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.UpdateFuncCase(a.FuncID, a.ConstructorID, a.BoundVars, api.FuncExprFromDTO(&a.Body))
}

func opDeleteFunction(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteFunction(a.ID)
}

// --- Properties and proofs ---

func opCreateProperty(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Name      string         `json:"name"`
		Statement api.FormulaDTO `json:"statement"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.CreateProperty(a.Name, api.FormulaFromDTO(&a.Statement))
}

func opDeleteProperty(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteProperty(a.ID)
}

func opStartProof(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		PropertyID ids.ID `json:"propertyId"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.StartProof(a.PropertyID)
}

func opApplyTactic(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ProofID ids.ID    `json:"proofId"`
		GoalID  ids.ID    `json:"goalId"`
		Tactic  TacticDTO `json:"tactic"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	t, err := dtoToTactic(a.Tactic)
	if err != nil {
		return nil, err
	}
	return nil, e.ApplyTactic(a.ProofID, a.GoalID, t)
}

func opDeleteProof(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return nil, e.DeleteProof(a.ID)
}

func opGetProof(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.GetProof(a.ID)
}

func opGetProperty(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		ID ids.ID `json:"id"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.GetProperty(a.ID)
}

// --- Queries ---

func opEnumerateTerms(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		SortID   ids.ID `json:"sortId"`
		MaxDepth int    `json:"maxDepth"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	ts, err := e.EnumerateTerms(a.SortID, a.MaxDepth)
	if err != nil {
		return nil, err
	}
	out := make([]TermDTO, len(ts))
	for i, t := range ts {
		out[i] = termToDTO(t)
	}
	return out, nil
}

func opMatchPattern(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Term    TermDTO        `json:"term"`
		Pattern api.PatternDTO `json:"pattern"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	bindings, ok := e.MatchPattern(dtoToTerm(a.Term), api.PatternFromDTO(a.Pattern))
	result := struct {
		Matched  bool              `json:"matched"`
		Bindings map[ids.ID]TermDTO `json:"bindings,omitempty"`
	}{Matched: ok}
	if ok {
		result.Bindings = make(map[ids.ID]TermDTO, len(bindings))
		for k, v := range bindings {
			result.Bindings[k] = termToDTO(v)
		}
	}
	return result, nil
}

// derivationDTO is the wire shape of derive.Derivation: a proof tree
// plus its ruleName(premise, ...) rendering, so a caller never has to
// reimplement RenderDerivation client-side.
type derivationDTO struct {
	RuleName   string           `json:"ruleName"`
	RuleID     ids.ID           `json:"ruleId"`
	JudgmentID ids.ID           `json:"judgmentId"`
	Terms      []TermDTO        `json:"terms"`
	Premises   []*derivationDTO `json:"premises,omitempty"`
	Rendered   string           `json:"rendered"`
}

func toDerivationDTO(d *derive.Derivation) *derivationDTO {
	if d == nil {
		return nil
	}
	terms := make([]TermDTO, len(d.Terms))
	for i, t := range d.Terms {
		terms[i] = termToDTO(t)
	}
	premises := make([]*derivationDTO, len(d.Premises))
	for i, p := range d.Premises {
		premises[i] = toDerivationDTO(p)
	}
	return &derivationDTO{
		RuleName:   d.RuleName,
		RuleID:     d.RuleID,
		JudgmentID: d.JudgmentID,
		Terms:      terms,
		Premises:   premises,
		Rendered:   api.RenderDerivation(d),
	}
}

func opDerive(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		JudgmentID ids.ID    `json:"judgmentId"`
		Terms      []TermDTO `json:"terms"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	terms := make([]term.Term, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = dtoToTerm(t)
	}
	d, err := e.Derive(a.JudgmentID, terms)
	if err != nil {
		return nil, err
	}
	return toDerivationDTO(d), nil
}

func opAnalyzeSyntaxDirected(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		JudgmentID ids.ID `json:"judgmentId"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.AnalyzeSyntaxDirected(a.JudgmentID)
}

func opEnumerateExamples(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		JudgmentID         ids.ID `json:"judgmentId"`
		MaxDerivationDepth int    `json:"maxDerivationDepth"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	exs, err := e.EnumerateExamples(a.JudgmentID, a.MaxDerivationDepth)
	if err != nil {
		return nil, err
	}
	type exampleDTO struct {
		Terms []TermDTO `json:"terms"`
		Class string    `json:"class"`
	}
	out := make([]exampleDTO, len(exs))
	for i, ex := range exs {
		terms := make([]TermDTO, len(ex.Terms))
		for k, t := range ex.Terms {
			terms[k] = termToDTO(t)
		}
		class := "positive"
		if ex.Class == derive.ClassNegative {
			class = "negative"
		}
		out[i] = exampleDTO{Terms: terms, Class: class}
	}
	return out, nil
}

func opRenderFormula(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Formula api.FormulaDTO `json:"formula"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.RenderFormula(api.FormulaFromDTO(&a.Formula)), nil
}

func opRenderFuncExpr(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Expr api.FuncExprDTO `json:"expr"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.RenderFuncExpr(api.FuncExprFromDTO(&a.Expr)), nil
}

func opRenderTerm(e *api.Engine, args json.RawMessage) (interface{}, error) {
	var a struct {
		Term TermDTO `json:"term"`
	}
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return e.RenderTerm(dtoToTerm(a.Term)), nil
}

func opSnapshot(e *api.Engine, args json.RawMessage) (interface{}, error) {
	return e.ToSnapshot(), nil
}

// dtoToSideConditionPublic adapts api.SideConditionDTO (whose
// arg/elem patterns are private to pkg/api's own conversion helpers)
// into a *metamodel.SideCondition by round-tripping through the
// exported Pattern conversions.
func dtoToSideConditionPublic(d *api.SideConditionDTO) *metamodel.SideCondition {
	sc := &metamodel.SideCondition{
		ID:      d.ID,
		Pred:    d.Pred,
		FuncID:  d.FuncID,
		Arg:     api.PatternFromDTO(d.Arg),
		Literal: d.Literal,
	}
	if d.Elem != nil {
		sc.Elem = api.PatternFromDTO(*d.Elem)
	}
	return sc
}
