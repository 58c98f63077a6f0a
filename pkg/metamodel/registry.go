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

package metamodel

import (
	"github.com/logicforge/logicforge/pkg/engerr"
	"github.com/logicforge/logicforge/pkg/ids"
)

// Registry owns every metamodel entity and is the single writer in
// this module's concurrency model. Callers (the UI layer, or
// pkg/api in this module) are expected to serialize their edits; the
// Registry itself performs no locking.
type Registry struct {
	Sorts         map[ids.ID]*Sort
	Constructors  map[ids.ID]*Constructor
	Judgments     map[ids.ID]*Judgment
	MetaVariables map[ids.ID]*MetaVariable
	Rules         map[ids.ID]*InferenceRule
	Funcs         map[ids.ID]*RecursiveFunc

	// The *Order slices record the id of each entity kind in the
	// order it was registered via Create*. The maps above give no
	// such guarantee (map iteration order is randomized), but callers
	// like pkg/derive's backward search and pkg/tactic's induction
	// step need a canonical, user-meaningful order: the order the
	// constructors/rules were actually declared in, not an
	// incidental sort over their ids.
	sortOrder     []ids.ID
	ctorOrder     []ids.ID
	judgmentOrder []ids.ID
	metaVarOrder  []ids.ID
	ruleOrder     []ids.ID
	funcOrder     []ids.ID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		Sorts:         make(map[ids.ID]*Sort),
		Constructors:  make(map[ids.ID]*Constructor),
		Judgments:     make(map[ids.ID]*Judgment),
		MetaVariables: make(map[ids.ID]*MetaVariable),
		Rules:         make(map[ids.ID]*InferenceRule),
		Funcs:         make(map[ids.ID]*RecursiveFunc),
	}
}

// removeID removes id from an order slice, preserving the relative
// order of the rest.
func removeID(order []ids.ID, id ids.ID) []ids.ID {
	for i, existing := range order {
		if existing == id {
			return append(order[:i:i], order[i+1:]...)
		}
	}
	return order
}

// CreateSort adds a new sort. kind KindAtom requires a non-empty
// atomPrefix; KindInductive requires an empty one.
func (r *Registry) CreateSort(name string, kind SortKind, isBinder bool, atomPrefix string) (*Sort, error) {
	if kind == KindAtom && atomPrefix == "" {
		return nil, &engerr.ShapeMismatch{Context: "CreateSort", Expected: "non-empty atomPrefix for atom sort", Actual: "empty"}
	}
	if kind == KindInductive && atomPrefix != "" {
		return nil, &engerr.ShapeMismatch{Context: "CreateSort", Expected: "empty atomPrefix for inductive sort", Actual: atomPrefix}
	}
	s := &Sort{ID: ids.New(), Name: name, Kind: kind, IsBinder: isBinder, AtomPrefix: atomPrefix}
	r.Sorts[s.ID] = s
	r.sortOrder = append(r.sortOrder, s.ID)
	return s, nil
}

// GetSort looks up a sort by id.
func (r *Registry) GetSort(id ids.ID) (*Sort, error) {
	s, ok := r.Sorts[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "Sort", ID: string(id)}
	}
	return s, nil
}

// UpdateSort mutates an existing sort's mutable fields in place.
func (r *Registry) UpdateSort(id ids.ID, name string, isBinder bool) error {
	s, err := r.GetSort(id)
	if err != nil {
		return err
	}
	s.Name = name
	s.IsBinder = isBinder
	return nil
}

// DeleteSort removes a sort and cascades to every constructor of that
// sort (and, transitively, every rule and function that becomes
// ill-formed as a result is left in the registry but will report its
// own validation error on next check; this module does not
// auto-delete rules/functions that reference a deleted sort, only
// flags them on next validation.
func (r *Registry) DeleteSort(id ids.ID) error {
	if _, err := r.GetSort(id); err != nil {
		return err
	}
	for cid, c := range r.Constructors {
		if c.SortID == id {
			delete(r.Constructors, cid)
			r.ctorOrder = removeID(r.ctorOrder, cid)
		}
	}
	delete(r.Sorts, id)
	r.sortOrder = removeID(r.sortOrder, id)
	return nil
}

// CreateConstructor adds a constructor to an inductive sort.
func (r *Registry) CreateConstructor(sortID ids.ID, name string, args []ConstructorArg) (*Constructor, error) {
	s, err := r.GetSort(sortID)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindInductive {
		return nil, &engerr.ShapeMismatch{Context: "CreateConstructor", Expected: "inductive sort", Actual: s.Kind.String()}
	}
	for i := range args {
		if args[i].ID.Empty() {
			args[i].ID = ids.New()
		}
	}
	c := &Constructor{ID: ids.New(), SortID: sortID, Name: name, Args: args}
	r.Constructors[c.ID] = c
	r.ctorOrder = append(r.ctorOrder, c.ID)
	return c, nil
}

// GetConstructor looks up a constructor by id.
func (r *Registry) GetConstructor(id ids.ID) (*Constructor, error) {
	c, ok := r.Constructors[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "Constructor", ID: string(id)}
	}
	return c, nil
}

// UpdateConstructor replaces a constructor's name and argument list.
func (r *Registry) UpdateConstructor(id ids.ID, name string, args []ConstructorArg) error {
	c, err := r.GetConstructor(id)
	if err != nil {
		return err
	}
	for i := range args {
		if args[i].ID.Empty() {
			args[i].ID = ids.New()
		}
	}
	c.Name = name
	c.Args = args
	return nil
}

// DeleteConstructor removes a constructor. Rules whose patterns
// reference it and functions whose cases reference it become
// ill-formed; callers should re-validate after deletion.
func (r *Registry) DeleteConstructor(id ids.ID) error {
	if _, err := r.GetConstructor(id); err != nil {
		return err
	}
	delete(r.Constructors, id)
	r.ctorOrder = removeID(r.ctorOrder, id)
	return nil
}

// CreateJudgment adds a judgment. len(separators) must equal
// len(argSorts)+1.
func (r *Registry) CreateJudgment(name, symbol string, argSorts []JudgmentArg, separators []string) (*Judgment, error) {
	if len(separators) != len(argSorts)+1 {
		return nil, &engerr.ShapeMismatch{Context: "CreateJudgment", Expected: "len(separators) == len(argSorts)+1", Actual: "mismatched lengths"}
	}
	j := &Judgment{ID: ids.New(), Name: name, Symbol: symbol, ArgSorts: argSorts, Separators: separators}
	r.Judgments[j.ID] = j
	r.judgmentOrder = append(r.judgmentOrder, j.ID)
	return j, nil
}

// GetJudgment looks up a judgment by id.
func (r *Registry) GetJudgment(id ids.ID) (*Judgment, error) {
	j, ok := r.Judgments[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "Judgment", ID: string(id)}
	}
	return j, nil
}

// UpdateJudgment replaces a judgment's shape.
func (r *Registry) UpdateJudgment(id ids.ID, name, symbol string, argSorts []JudgmentArg, separators []string) error {
	if len(separators) != len(argSorts)+1 {
		return &engerr.ShapeMismatch{Context: "UpdateJudgment", Expected: "len(separators) == len(argSorts)+1", Actual: "mismatched lengths"}
	}
	j, err := r.GetJudgment(id)
	if err != nil {
		return err
	}
	j.Name, j.Symbol, j.ArgSorts, j.Separators = name, symbol, argSorts, separators
	return nil
}

// DeleteJudgment removes a judgment and cascades to every rule that
// concludes it.
func (r *Registry) DeleteJudgment(id ids.ID) error {
	if _, err := r.GetJudgment(id); err != nil {
		return err
	}
	for rid, rule := range r.Rules {
		if rule.Conclusion != nil && rule.Conclusion.JudgmentID == id {
			delete(r.Rules, rid)
			r.ruleOrder = removeID(r.ruleOrder, rid)
		}
	}
	delete(r.Judgments, id)
	r.judgmentOrder = removeID(r.judgmentOrder, id)
	return nil
}

// CreateMetaVariable adds a meta-variable of the given sort.
func (r *Registry) CreateMetaVariable(name string, sortID ids.ID) (*MetaVariable, error) {
	if _, err := r.GetSort(sortID); err != nil {
		return nil, err
	}
	mv := &MetaVariable{ID: ids.New(), Name: name, SortID: sortID}
	r.MetaVariables[mv.ID] = mv
	r.metaVarOrder = append(r.metaVarOrder, mv.ID)
	return mv, nil
}

// GetMetaVariable looks up a meta-variable by id.
func (r *Registry) GetMetaVariable(id ids.ID) (*MetaVariable, error) {
	mv, ok := r.MetaVariables[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "MetaVariable", ID: string(id)}
	}
	return mv, nil
}

// DeleteMetaVariable removes a meta-variable. Patterns referencing it
// become ill-formed; callers should re-validate the owning rule.
func (r *Registry) DeleteMetaVariable(id ids.ID) error {
	if _, err := r.GetMetaVariable(id); err != nil {
		return err
	}
	delete(r.MetaVariables, id)
	r.metaVarOrder = removeID(r.metaVarOrder, id)
	return nil
}

// CreateRule adds a new, initially premise-free inference rule
// concluding the given judgment instance.
func (r *Registry) CreateRule(name string, conclusion *JudgmentInstance) (*InferenceRule, error) {
	if _, err := r.GetJudgment(conclusion.JudgmentID); err != nil {
		return nil, err
	}
	rule := &InferenceRule{ID: ids.New(), Name: name, Conclusion: conclusion}
	r.Rules[rule.ID] = rule
	r.ruleOrder = append(r.ruleOrder, rule.ID)
	return rule, nil
}

// GetRule looks up a rule by id.
func (r *Registry) GetRule(id ids.ID) (*InferenceRule, error) {
	rule, ok := r.Rules[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "InferenceRule", ID: string(id)}
	}
	return rule, nil
}

// UpdateRule replaces a rule's name and conclusion.
func (r *Registry) UpdateRule(id ids.ID, name string, conclusion *JudgmentInstance) error {
	rule, err := r.GetRule(id)
	if err != nil {
		return err
	}
	rule.Name = name
	rule.Conclusion = conclusion
	return nil
}

// DeleteRule removes a rule outright.
func (r *Registry) DeleteRule(id ids.ID) error {
	if _, err := r.GetRule(id); err != nil {
		return err
	}
	delete(r.Rules, id)
	r.ruleOrder = removeID(r.ruleOrder, id)
	return nil
}

// AddPremise appends a premise judgment instance to a rule.
func (r *Registry) AddPremise(ruleID ids.ID, premise *JudgmentInstance) error {
	rule, err := r.GetRule(ruleID)
	if err != nil {
		return err
	}
	if _, err := r.GetJudgment(premise.JudgmentID); err != nil {
		return err
	}
	rule.Premises = append(rule.Premises, premise)
	return nil
}

// RemovePremise removes the premise at the given index.
func (r *Registry) RemovePremise(ruleID ids.ID, index int) error {
	rule, err := r.GetRule(ruleID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rule.Premises) {
		return &engerr.ShapeMismatch{Context: "RemovePremise", Expected: "valid premise index", Actual: "out of range"}
	}
	rule.Premises = append(rule.Premises[:index], rule.Premises[index+1:]...)
	return nil
}

// AddSideCondition appends a side condition to a rule.
func (r *Registry) AddSideCondition(ruleID ids.ID, sc *SideCondition) error {
	rule, err := r.GetRule(ruleID)
	if err != nil {
		return err
	}
	if sc.ID.Empty() {
		sc.ID = ids.New()
	}
	rule.SideConditions = append(rule.SideConditions, sc)
	return nil
}

// RemoveSideCondition removes a side condition by id.
func (r *Registry) RemoveSideCondition(ruleID, scID ids.ID) error {
	rule, err := r.GetRule(ruleID)
	if err != nil {
		return err
	}
	for i, sc := range rule.SideConditions {
		if sc.ID == scID {
			rule.SideConditions = append(rule.SideConditions[:i], rule.SideConditions[i+1:]...)
			return nil
		}
	}
	return &engerr.NotFound{Kind: "SideCondition", ID: string(scID)}
}

// UpdateSideCondition replaces a side condition's contents in place.
func (r *Registry) UpdateSideCondition(ruleID ids.ID, sc *SideCondition) error {
	rule, err := r.GetRule(ruleID)
	if err != nil {
		return err
	}
	for i, existing := range rule.SideConditions {
		if existing.ID == sc.ID {
			rule.SideConditions[i] = sc
			return nil
		}
	}
	return &engerr.NotFound{Kind: "SideCondition", ID: string(sc.ID)}
}

// UpdateRulePosition records the rule's canvas position; this is
// purely a UI affordance, opaque to every engine.
func (r *Registry) UpdateRulePosition(id ids.ID, x, y float64) error {
	rule, err := r.GetRule(id)
	if err != nil {
		return err
	}
	rule.PositionX, rule.PositionY = x, y
	return nil
}

// RulesConcluding returns every rule whose conclusion judgment is j,
// in the order the rules were registered (Registry.CreateRule). This
// is the canonical order the derivation engine and syntax-directedness
// analysis iterate rules in: the order a user actually declared them,
// not an incidental sort over their ids.
func (r *Registry) RulesConcluding(j ids.ID) []*InferenceRule {
	var out []*InferenceRule
	for _, id := range r.ruleOrder {
		rule, ok := r.Rules[id]
		if ok && rule.Conclusion != nil && rule.Conclusion.JudgmentID == j {
			out = append(out, rule)
		}
	}
	return out
}

// ConstructorsOf returns every constructor of the given sort, in the
// order the constructors were registered (Registry.CreateConstructor).
// Induction and case-analysis tactics iterate cases in this order so
// that subgoals appear in declaration order rather than an incidental
// sort over constructor ids.
func (r *Registry) ConstructorsOf(sortID ids.ID) []*Constructor {
	var out []*Constructor
	for _, id := range r.ctorOrder {
		c, ok := r.Constructors[id]
		if ok && c.SortID == sortID {
			out = append(out, c)
		}
	}
	return out
}

// CreateFunction adds a new recursive function with one empty case
// per constructor of the principal sort.
func (r *Registry) CreateFunction(name string, principalSortID ids.ID, extraArgs []ExtraArg, returnType FuncReturnType) (*RecursiveFunc, error) {
	s, err := r.GetSort(principalSortID)
	if err != nil {
		return nil, err
	}
	if s.Kind != KindInductive {
		return nil, &engerr.ShapeMismatch{Context: "CreateFunction", Expected: "inductive principal sort", Actual: s.Kind.String()}
	}
	f := &RecursiveFunc{ID: ids.New(), Name: name, PrincipalSortID: principalSortID, ExtraArgs: extraArgs, ReturnType: returnType}
	for _, c := range r.ConstructorsOf(principalSortID) {
		f.Cases = append(f.Cases, &FuncCase{ConstructorID: c.ID, BoundVars: make([]string, len(c.Args))})
	}
	r.Funcs[f.ID] = f
	r.funcOrder = append(r.funcOrder, f.ID)
	return f, nil
}

// GetFunction looks up a recursive function by id.
func (r *Registry) GetFunction(id ids.ID) (*RecursiveFunc, error) {
	f, ok := r.Funcs[id]
	if !ok {
		return nil, &engerr.NotFound{Kind: "RecursiveFunc", ID: string(id)}
	}
	return f, nil
}

// UpdateFunction replaces a function's extra arguments and return
// type. Existing cases are left untouched.
func (r *Registry) UpdateFunction(id ids.ID, name string, extraArgs []ExtraArg, returnType FuncReturnType) error {
	f, err := r.GetFunction(id)
	if err != nil {
		return err
	}
	f.Name, f.ExtraArgs, f.ReturnType = name, extraArgs, returnType
	return nil
}

// UpdateFuncCase replaces the bound-variable names and body of one
// case, identified by constructor id.
func (r *Registry) UpdateFuncCase(funcID, constructorID ids.ID, boundVars []string, body FuncExpr) error {
	f, err := r.GetFunction(funcID)
	if err != nil {
		return err
	}
	for _, c := range f.Cases {
		if c.ConstructorID == constructorID {
			c.BoundVars, c.Body = boundVars, body
			return nil
		}
	}
	return &engerr.NotFound{Kind: "FuncCase", ID: string(constructorID)}
}

// DeleteFunction removes a function and, implicitly, its cases.
func (r *Registry) DeleteFunction(id ids.ID) error {
	if _, err := r.GetFunction(id); err != nil {
		return err
	}
	delete(r.Funcs, id)
	r.funcOrder = removeID(r.funcOrder, id)
	return nil
}
