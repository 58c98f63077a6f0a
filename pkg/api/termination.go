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
	"github.com/logicforge/logicforge/pkg/function"
	"github.com/logicforge/logicforge/pkg/ids"
)

// recomputeTermination recomputes and stores f's termination verdict.
// It is a no-op if funcID no longer resolves (the function was
// deleted out from under a stale caller), matching the "never throw
// for a condition the caller can't observe" policy elsewhere in this
// façade.
func (e *Engine) recomputeTermination(funcID ids.ID) {
	f, err := e.Reg.GetFunction(funcID)
	if err != nil {
		return
	}
	tErr := function.CheckTermination(e.Reg, f)
	f.Terminates = tErr == nil
	f.TerminationError = tErr
	if tErr != nil {
		e.log.Infow("function failed termination check", "func", f.Name, "reason", tErr.Reason)
	}
}
