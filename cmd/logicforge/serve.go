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
	"bufio"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"github.com/logicforge/logicforge/pkg/api"
	"github.com/logicforge/logicforge/pkg/config"
)

// serve reads one Request per line from in and writes one Response
// per line to out, until in is exhausted. A line that fails to parse
// as JSON, or names an unknown op, produces an error Response rather
// than aborting the loop: one bad line never takes down the session.
func serve(in io.Reader, out io.Writer, limits config.Limits, log *zap.Logger) error {
	engine := api.NewEngine(limits, log)
	sugar := log.Sugar()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			_ = enc.Encode(Response{OK: false, Error: &ErrorInfo{Kind: "BadRequest", Message: err.Error()}})
			continue
		}
		result, err := dispatch(engine, req)
		if err != nil {
			sugar.Debugw("op failed", "op", req.Op, "error", err)
			_ = enc.Encode(Response{OK: false, Error: errorInfo(err)})
			continue
		}
		_ = enc.Encode(Response{OK: true, Result: result})
	}
	return scanner.Err()
}
