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

// Package api is the single façade the UI layer (or the headless
// driver in cmd/logicforge) talks to: it composes a
// *metamodel.Registry and a *tactic.Store behind one set of ordinary
// Go methods, one per command or query the engine exposes, the same
// way an Engine type typically exposes assert/retract/query as its
// own single entry surface.
package api

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/logicforge/logicforge/pkg/config"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/metamodel"
	"github.com/logicforge/logicforge/pkg/tactic"
)

// Engine is the façade over the registry, property/proof store, and
// resource limits. It holds no other state: every command is a
// synchronous, in-process call, and callers are expected to serialize
// their edits from one goroutine at a time.
type Engine struct {
	Reg     *metamodel.Registry
	Tactics *tactic.Store
	Limits  config.Limits
	log     *zap.SugaredLogger
}

// NewEngine returns an Engine with an empty registry and store. A nil
// logger is replaced with zap's no-op logger, so callers that don't
// care about logging never need to construct one.
func NewEngine(limits config.Limits, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		Reg:     metamodel.NewRegistry(),
		Tactics: tactic.NewStore(),
		Limits:  limits,
		log:     log.Sugar(),
	}
}

// --- Sorts ---

func (e *Engine) CreateSort(name string, kind metamodel.SortKind, isBinder bool, atomPrefix string) (*metamodel.Sort, error) {
	s, err := e.Reg.CreateSort(name, kind, isBinder, atomPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "createSort")
	}
	e.log.Infow("sort created", "id", s.ID, "name", name)
	return s, nil
}

func (e *Engine) UpdateSort(id ids.ID, name string, isBinder bool) error {
	if err := e.Reg.UpdateSort(id, name, isBinder); err != nil {
		return errors.Wrap(err, "updateSort")
	}
	return nil
}

func (e *Engine) DeleteSort(id ids.ID) error {
	if err := e.Reg.DeleteSort(id); err != nil {
		return errors.Wrap(err, "deleteSort")
	}
	e.log.Infow("sort deleted, cascading to its constructors", "id", id)
	return nil
}

// --- Constructors ---

func (e *Engine) CreateConstructor(sortID ids.ID, name string, args []metamodel.ConstructorArg) (*metamodel.Constructor, error) {
	c, err := e.Reg.CreateConstructor(sortID, name, args)
	if err != nil {
		return nil, errors.Wrap(err, "createConstructor")
	}
	return c, nil
}

func (e *Engine) UpdateConstructor(id ids.ID, name string, args []metamodel.ConstructorArg) error {
	if err := e.Reg.UpdateConstructor(id, name, args); err != nil {
		return errors.Wrap(err, "updateConstructor")
	}
	return nil
}

func (e *Engine) DeleteConstructor(id ids.ID) error {
	if err := e.Reg.DeleteConstructor(id); err != nil {
		return errors.Wrap(err, "deleteConstructor")
	}
	return nil
}

// --- Judgments ---

func (e *Engine) CreateJudgment(name, symbol string, argSorts []metamodel.JudgmentArg, separators []string) (*metamodel.Judgment, error) {
	j, err := e.Reg.CreateJudgment(name, symbol, argSorts, separators)
	if err != nil {
		return nil, errors.Wrap(err, "createJudgment")
	}
	return j, nil
}

func (e *Engine) UpdateJudgment(id ids.ID, name, symbol string, argSorts []metamodel.JudgmentArg, separators []string) error {
	if err := e.Reg.UpdateJudgment(id, name, symbol, argSorts, separators); err != nil {
		return errors.Wrap(err, "updateJudgment")
	}
	return nil
}

func (e *Engine) DeleteJudgment(id ids.ID) error {
	if err := e.Reg.DeleteJudgment(id); err != nil {
		return errors.Wrap(err, "deleteJudgment")
	}
	e.log.Infow("judgment deleted, cascading to its concluding rules", "id", id)
	return nil
}

// --- Meta-variables ---

func (e *Engine) CreateMetaVariable(name string, sortID ids.ID) (*metamodel.MetaVariable, error) {
	mv, err := e.Reg.CreateMetaVariable(name, sortID)
	if err != nil {
		return nil, errors.Wrap(err, "createMetaVariable")
	}
	return mv, nil
}

func (e *Engine) DeleteMetaVariable(id ids.ID) error {
	if err := e.Reg.DeleteMetaVariable(id); err != nil {
		return errors.Wrap(err, "deleteMetaVariable")
	}
	return nil
}

// --- Rules ---

func (e *Engine) CreateRule(name string, conclusion *metamodel.JudgmentInstance) (*metamodel.InferenceRule, error) {
	r, err := e.Reg.CreateRule(name, conclusion)
	if err != nil {
		return nil, errors.Wrap(err, "createRule")
	}
	return r, nil
}

func (e *Engine) UpdateRule(id ids.ID, name string, conclusion *metamodel.JudgmentInstance) error {
	if err := e.Reg.UpdateRule(id, name, conclusion); err != nil {
		return errors.Wrap(err, "updateRule")
	}
	return nil
}

func (e *Engine) DeleteRule(id ids.ID) error {
	if err := e.Reg.DeleteRule(id); err != nil {
		return errors.Wrap(err, "deleteRule")
	}
	return nil
}

func (e *Engine) AddPremise(ruleID ids.ID, premise *metamodel.JudgmentInstance) error {
	if err := e.Reg.AddPremise(ruleID, premise); err != nil {
		return errors.Wrap(err, "addPremise")
	}
	return nil
}

func (e *Engine) RemovePremise(ruleID ids.ID, index int) error {
	if err := e.Reg.RemovePremise(ruleID, index); err != nil {
		return errors.Wrap(err, "removePremise")
	}
	return nil
}

func (e *Engine) AddSideCondition(ruleID ids.ID, sc *metamodel.SideCondition) error {
	if err := e.Reg.AddSideCondition(ruleID, sc); err != nil {
		return errors.Wrap(err, "addSideCondition")
	}
	return nil
}

func (e *Engine) RemoveSideCondition(ruleID, scID ids.ID) error {
	if err := e.Reg.RemoveSideCondition(ruleID, scID); err != nil {
		return errors.Wrap(err, "removeSideCondition")
	}
	return nil
}

func (e *Engine) UpdateSideCondition(ruleID ids.ID, sc *metamodel.SideCondition) error {
	if err := e.Reg.UpdateSideCondition(ruleID, sc); err != nil {
		return errors.Wrap(err, "updateSideCondition")
	}
	return nil
}

func (e *Engine) UpdateRulePosition(id ids.ID, x, y float64) error {
	if err := e.Reg.UpdateRulePosition(id, x, y); err != nil {
		return errors.Wrap(err, "updateRulePosition")
	}
	return nil
}

// --- Functions ---

func (e *Engine) CreateFunction(name string, principalSortID ids.ID, extraArgs []metamodel.ExtraArg, returnType metamodel.FuncReturnType) (*metamodel.RecursiveFunc, error) {
	f, err := e.Reg.CreateFunction(name, principalSortID, extraArgs, returnType)
	if err != nil {
		return nil, errors.Wrap(err, "createFunction")
	}
	e.recomputeTermination(f.ID)
	return f, nil
}

func (e *Engine) UpdateFunction(id ids.ID, name string, extraArgs []metamodel.ExtraArg, returnType metamodel.FuncReturnType) error {
	if err := e.Reg.UpdateFunction(id, name, extraArgs, returnType); err != nil {
		return errors.Wrap(err, "updateFunction")
	}
	return nil
}

// UpdateFuncCase replaces one case's body, then recomputes and stores
// the function's termination verdict: a termination error is derived
// metadata that survives on the function, never a silently dropped
// update.
func (e *Engine) UpdateFuncCase(funcID, constructorID ids.ID, boundVars []string, body metamodel.FuncExpr) error {
	if err := e.Reg.UpdateFuncCase(funcID, constructorID, boundVars, body); err != nil {
		return errors.Wrap(err, "updateFuncCase")
	}
	e.recomputeTermination(funcID)
	return nil
}

func (e *Engine) DeleteFunction(id ids.ID) error {
	if err := e.Reg.DeleteFunction(id); err != nil {
		return errors.Wrap(err, "deleteFunction")
	}
	return nil
}
