/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package cmd holds the command tree of the interpreter CLI.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ksv-py/custom-interpreter/core/config"
	"github.com/ksv-py/custom-interpreter/core/logging"
	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/spf13/cobra"
)

// app carries state shared by every command of one invocation
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "interpreter",
		Short: "Scanner, parser and evaluator for a small scripting language",
		Long: `interpreter runs source files through a three-stage pipeline.

Commands:
  tokenize  - print the token stream
  parse     - print the expression tree
  evaluate  - run the program and print its final value
  run       - run the program
  check     - run YAML conformance suites
  serve     - start the HTML playground

Exit codes: 0 success, 1 usage error, 65 scan or parse error, 70 runtime error.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Usage()
			return &pipeline.ExitError{Code: pipeline.ExitUsage}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	for _, c := range a.modeCommands() {
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(a.checkCommand(), a.serveCommand(), versionCommand())

	return rootCmd
}

// Execute runs the command tree against the process arguments
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// ExitCode maps the result of Execute to a process exit code. Errors that
// have not been reported yet are written to w.
func ExitCode(err error, w io.Writer) int {
	if err == nil {
		return pipeline.ExitOK
	}
	var exitErr *pipeline.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return pipeline.ExitUsage
}

// setup resolves configuration in order: defaults, TOML file, .env and
// environment, then flags. The resulting logger writes to the command's
// error stream.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	lc := cfg.LoggingConfig()
	lc.Output = cmd.ErrOrStderr()
	logger, err := logging.Setup(lc)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	logger.Debug("configuration loaded", "config", a.cfgFile, "level", cfg.Log.Level)
	return nil
}
