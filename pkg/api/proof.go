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
	"github.com/pkg/errors"

	"github.com/logicforge/logicforge/pkg/formula"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/tactic"
)

func (e *Engine) CreateProperty(name string, statement formula.Formula) (*tactic.Property, error) {
	p := e.Tactics.CreateProperty(name, statement)
	return p, nil
}

func (e *Engine) DeleteProperty(id ids.ID) error {
	if err := e.Tactics.DeleteProperty(id); err != nil {
		return errors.Wrap(err, "deleteProperty")
	}
	e.log.Infow("property deleted, cascading to its proof", "id", id)
	return nil
}

func (e *Engine) StartProof(propertyID ids.ID) (*tactic.Proof, error) {
	p, err := e.Tactics.StartProof(propertyID)
	if err != nil {
		return nil, errors.Wrap(err, "startProof")
	}
	return p, nil
}

// ApplyTactic steps one open goal of proof proofID forward by t. It
// looks the proof up fresh from the store on every call rather than
// taking a *tactic.Proof, so the façade's surface stays
// id-in/id-out like every other command.
func (e *Engine) ApplyTactic(proofID ids.ID, goalID ids.ID, t tactic.Tactic) error {
	proof, err := e.Tactics.GetProof(proofID)
	if err != nil {
		return errors.Wrap(err, "applyTactic")
	}
	if err := tactic.ApplyTactic(e.Reg, proof, goalID, t); err != nil {
		return errors.Wrap(err, "applyTactic")
	}
	return nil
}

func (e *Engine) DeleteProof(id ids.ID) error {
	if err := e.Tactics.DeleteProof(id); err != nil {
		return errors.Wrap(err, "deleteProof")
	}
	return nil
}

func (e *Engine) GetProof(id ids.ID) (*tactic.Proof, error) {
	p, err := e.Tactics.GetProof(id)
	if err != nil {
		return nil, errors.Wrap(err, "getProof")
	}
	return p, nil
}

func (e *Engine) GetProperty(id ids.ID) (*tactic.Property, error) {
	p, err := e.Tactics.GetProperty(id)
	if err != nil {
		return nil, errors.Wrap(err, "getProperty")
	}
	return p, nil
}

// IsGoalTrivial reports whether goal would close immediately under
// the "trivial" tactic given hyps, without mutating any proof: it
// mirrors stepTrivial's own test so a UI can gray out the tactic
// button before the user spends a step on it.
func IsGoalTrivial(goal formula.Formula, hyps []formula.Formula) bool {
	if _, ok := formula.SimplifyFormula(goal).(formula.True); ok {
		return true
	}
	for _, h := range hyps {
		if formula.EqualFormula(h, goal) {
			return true
		}
	}
	return false
}
