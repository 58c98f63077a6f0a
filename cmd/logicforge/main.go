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

// Command logicforge is a headless, line-oriented JSON driver over
// pkg/api.Engine: it reads one command object per line of stdin and
// writes one response object per line of stdout, so the engine can be
// scripted or driven from a UI process over a pipe without either side
// needing the Go toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logicforge/logicforge/pkg/config"
)

var (
	verbose    bool
	limitsPath string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "logicforge",
	Short: "Headless engine for the object-language workbench",
	Long: `logicforge drives pkg/api.Engine from stdin/stdout.

Each stdin line is a JSON object {"op": "...", "args": {...}}; each
stdout line is a JSON object {"ok": bool, "result": ..., "error": {...}}.
Run with no arguments to start the command loop on stdin/stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		// stdout is reserved for the JSON response stream; all
		// logging goes to stderr.
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		limits := config.Default()
		if limitsPath != "" {
			l, err := config.Load(limitsPath)
			if err != nil {
				return fmt.Errorf("load limits: %w", err)
			}
			limits = l
		}
		return serve(os.Stdin, os.Stdout, limits, logger)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&limitsPath, "limits", "", "path to a YAML file overriding the default resource limits")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
