/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package pipeline runs one command mode over one source text. It owns the
output contract shared by the CLI, the conformance suites and the
playground: what goes to stdout, what goes to stderr, and the exit code.
*/
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ksv-py/custom-interpreter/core/dump"
	"github.com/ksv-py/custom-interpreter/core/expr"
	"google.golang.org/protobuf/types/known/structpb"
)

// Mode selects how far the source travels through the pipeline
type Mode string

const (
	ModeTokenize Mode = "tokenize"
	ModeParse    Mode = "parse"
	ModeEvaluate Mode = "evaluate"
	ModeRun      Mode = "run"
)

// Modes lists every mode in pipeline order
func Modes() []Mode {
	return []Mode{ModeTokenize, ModeParse, ModeEvaluate, ModeRun}
}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown command: %s", s)
}

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 1  // usage error or unreadable file
	ExitDataErr  = 65 // lexical or syntax error
	ExitSoftware = 70 // runtime error
)

// ExitError carries a non-zero exit code. Its diagnostics have already been
// written by the time it is returned.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Runner executes modes, writing results to stdout and diagnostics to stderr
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	format dump.Format
	logger *slog.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithFormat selects the output format for tokenize and parse
func WithFormat(f dump.Format) Option {
	return func(r *Runner) { r.format = f }
}

// WithLogger sets the logger used for stage timings
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner creates a runner
func NewRunner(stdout, stderr io.Writer, opts ...Option) *Runner {
	r := &Runner{
		stdout: stdout,
		stderr: stderr,
		format: dump.FormatText,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes mode over source and returns the process exit code
func (r *Runner) Run(mode Mode, source string) int {
	r.logger.Debug("pipeline start", "mode", mode)

	if mode == ModeTokenize {
		return r.tokenize(source)
	}

	script, err := expr.Compile(source, r.stderr)
	if err != nil {
		if !errors.Is(err, expr.ErrScan) {
			fmt.Fprintln(r.stderr, err.Error())
		}
		r.logger.Debug("compile failed", "mode", mode, "error", err)
		return ExitDataErr
	}
	r.logger.Debug("compiled", "bytes", len(script.Source()), "tokens", len(script.Tokens()), "statements", len(script.Program()))

	switch mode {
	case ModeParse:
		return r.parse(script.Program())
	case ModeEvaluate, ModeRun:
		return r.evaluate(script, mode == ModeEvaluate)
	}

	fmt.Fprintf(r.stderr, "Unknown command: %s\n", mode)
	return ExitUsage
}

func (r *Runner) tokenize(source string) int {
	tokens, hadError := expr.Scan(source, r.stderr)
	r.logger.Debug("scanned", "tokens", len(tokens), "error", hadError)

	if r.format == dump.FormatText {
		io.WriteString(r.stdout, expr.FormatTokens(tokens))
	} else if code := r.writeStructured(dump.Tokens(tokens)); code != ExitOK {
		return code
	}

	if hadError {
		return ExitDataErr
	}
	return ExitOK
}

func (r *Runner) parse(program expr.Program) int {
	if r.format == dump.FormatText {
		fmt.Fprintln(r.stdout, program.String())
		return ExitOK
	}
	return r.writeStructured(dump.Program(program))
}

func (r *Runner) evaluate(script *expr.Script, printResult bool) int {
	val, ok, err := script.Run(r.stdout)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %s\n", err.Error())
		r.logger.Debug("runtime error", "error", err)
		return ExitSoftware
	}
	if printResult && ok {
		fmt.Fprintln(r.stdout, val.AsString())
	}
	return ExitOK
}

// writeStructured encodes a converted token list or tree in the runner's
// structured format.
func (r *Runner) writeStructured(v *structpb.Value, err error) int {
	if err == nil {
		var data []byte
		if data, err = dump.Encode(v, r.format); err == nil {
			r.stdout.Write(data)
			fmt.Fprintln(r.stdout)
			return ExitOK
		}
	}
	fmt.Fprintf(r.stderr, "Error: %s\n", err.Error())
	return ExitSoftware
}
