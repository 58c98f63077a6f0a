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
	"errors"
	"fmt"

	"github.com/logicforge/logicforge/pkg/api"
	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/ids"
	"github.com/logicforge/logicforge/pkg/tactic"
	"github.com/logicforge/logicforge/pkg/term"
)

// Request is one line of stdin.
type Request struct {
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args"`
}

// Response is one line of stdout.
type Response struct {
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo carries the engerr taxonomy kind alongside the message, so
// a scripted caller can branch on Kind instead of parsing text.
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func errorInfo(err error) *ErrorInfo {
	kind := "Internal"
	switch {
	case errors.As(err, new(*engerr.NotFound)):
		kind = "NotFound"
	case errors.As(err, new(*engerr.ShapeMismatch)):
		kind = "ShapeMismatch"
	case errors.As(err, new(*engerr.IncompletePattern)):
		kind = "IncompletePattern"
	case errors.As(err, new(*engerr.TerminationFailure)):
		kind = "TerminationFailure"
	case errors.As(err, new(*engerr.EvaluationStuck)):
		kind = "EvaluationStuck"
	case errors.As(err, new(*engerr.TacticMismatch)):
		kind = "TacticMismatch"
	case errors.As(err, new(*engerr.DerivationNotFound)):
		kind = "DerivationNotFound"
	case errors.As(err, new(*engerr.Unsupported)):
		kind = "Unsupported"
	}
	return &ErrorInfo{Kind: kind, Message: err.Error()}
}

// TermDTO is the wire shape of term.Term: an atom occurrence or a
// constructor application, mirroring pkg/api's DTO style for every
// other tagged-union type in this module.
type TermDTO struct {
	Kind          string    `json:"kind"`
	VariableName  string    `json:"variableName,omitempty"`
	SortID        ids.ID    `json:"sortId,omitempty"`
	ConstructorID ids.ID    `json:"constructorId,omitempty"`
	Args          []TermDTO `json:"args,omitempty"`
}

func termToDTO(t term.Term) TermDTO {
	switch t := t.(type) {
	case *term.Atom:
		return TermDTO{Kind: "atom", VariableName: t.VariableName, SortID: t.SortID}
	case *term.Apply:
		args := make([]TermDTO, len(t.Args))
		for i, a := range t.Args {
			args[i] = termToDTO(a)
		}
		return TermDTO{Kind: "apply", ConstructorID: t.ConstructorID, Args: args}
	default:
		panic(fmt.Sprintf("logicforge: unknown Term variant %T", t))
	}
}

func dtoToTerm(d TermDTO) term.Term {
	switch d.Kind {
	case "atom":
		return &term.Atom{VariableName: d.VariableName, SortID: d.SortID}
	case "apply":
		args := make([]term.Term, len(d.Args))
		for i, a := range d.Args {
			args[i] = dtoToTerm(a)
		}
		return &term.Apply{ConstructorID: d.ConstructorID, Args: args}
	default:
		return nil
	}
}

// TacticDTO is the wire shape of tactic.Tactic. Only the fields the
// named Kind uses are populated; the rest are left zero.
type TacticDTO struct {
	Kind    string              `json:"kind"`
	VarName string              `json:"varName,omitempty"`
	Name    string              `json:"name,omitempty"`
	Witness *api.FormulaExprDTO `json:"witness,omitempty"`
	FuncID  ids.ID              `json:"funcId,omitempty"`
	Side    string              `json:"side,omitempty"` // "left" or "right"
}

func dtoToTactic(d TacticDTO) (tactic.Tactic, error) {
	switch d.Kind {
	case "intro":
		return tactic.Intro{VarName: d.VarName}, nil
	case "intro_hyp":
		return tactic.IntroHyp{Name: d.Name}, nil
	case "exists_witness":
		if d.Witness == nil {
			return nil, fmt.Errorf("exists_witness requires a witness expression")
		}
		return tactic.ExistsWitness{Witness: api.FormulaExprFromDTO(d.Witness)}, nil
	case "split":
		return tactic.Split{}, nil
	case "left":
		return tactic.Left{}, nil
	case "right":
		return tactic.Right{}, nil
	case "induction":
		return tactic.Induction{VarName: d.VarName}, nil
	case "case_analysis":
		return tactic.CaseAnalysis{VarName: d.VarName}, nil
	case "reflexivity":
		return tactic.Reflexivity{}, nil
	case "trivial":
		return tactic.Trivial{}, nil
	case "exact":
		return tactic.Exact{Name: d.Name}, nil
	case "apply":
		return tactic.Apply{Name: d.Name}, nil
	case "discriminate":
		return tactic.Discriminate{Name: d.Name}, nil
	case "unfold":
		side := tactic.SideLeft
		if d.Side == "right" {
			side = tactic.SideRight
		}
		return tactic.Unfold{FuncID: d.FuncID, Side: side}, nil
	case "simplify":
		return tactic.Simplify{}, nil
	case "rewrite", "derivation_induction", "apply_rule", "contradiction", "compute":
		return tactic.Reserved{Name: d.Kind}, nil
	default:
		return nil, fmt.Errorf("unknown tactic kind %q", d.Kind)
	}
}
