/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package views

import (
	"github.com/google/safehtml"
	"github.com/ksv-py/custom-interpreter/core/expr"
	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/ksv-py/custom-interpreter/core/query"
)

// PlaygroundViewModel contains one pipeline run formatted for template consumption
type PlaygroundViewModel struct {
	Title      string
	Source     string
	Mode       string
	Modes      []ModeLink
	CurrentURL safehtml.URL

	// Result of the run
	Stdout    string
	Stderr    string
	ExitCode  int
	ExitLabel string // Human-readable meaning of ExitCode
	Succeeded bool

	// Token table
	Tokens          []TokenRow
	ShowTokens      bool
	ToggleTokensURL safehtml.URL

	Examples []ExampleLink

	// Timing info
	RenderTimeMs    string
	TimingBreakdown []TimingEntry
}

// TimingEntry is one measured step of handling a request
type TimingEntry struct {
	Operation  string
	DurationMs string
}

// ModeLink is one entry of the mode selector
type ModeLink struct {
	Name     string
	URL      safehtml.URL // Same source, this mode
	IsActive bool
}

// TokenRow is one scanned token
type TokenRow struct {
	Kind    string
	Lexeme  string
	Literal string // "null" for tokens without a literal
	Line    int
}

// ExampleLink loads a sample program into the editor
type ExampleLink struct {
	Name string
	URL  safehtml.URL
}

// RunResult is what a pipeline run wrote and returned
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

var examples = []struct {
	name   string
	source string
}{
	{"arithmetic", "(1 + 2) * 3 - 4 / 2"},
	{"strings", "print \"foo\" + \"bar\";"},
	{"equality", "print 1 == \"1\";\nprint !nil;"},
	{"type error", "print \"foo\" + 1;"},
	{"scan error", "print \"unterminated;"},
}

// ExitLabel describes an exit code
func ExitLabel(code int) string {
	switch code {
	case pipeline.ExitOK:
		return "ok"
	case pipeline.ExitUsage:
		return "usage error"
	case pipeline.ExitDataErr:
		return "scan or parse error"
	case pipeline.ExitSoftware:
		return "runtime error"
	}
	return "unknown"
}

// BuildPlaygroundViewModel creates the view model for one run. tokens is the
// scanner output for the source, shown when the token table is expanded.
func BuildPlaygroundViewModel(q *query.Query, res RunResult, tokens []expr.Token) PlaygroundViewModel {
	vm := PlaygroundViewModel{
		Title:           "Interpreter Playground",
		Source:          q.Source,
		Mode:            q.Mode,
		CurrentURL:      q.ToSafeURL(),
		Stdout:          res.Stdout,
		Stderr:          res.Stderr,
		ExitCode:        res.ExitCode,
		ExitLabel:       ExitLabel(res.ExitCode),
		Succeeded:       res.ExitCode == pipeline.ExitOK,
		ShowTokens:      q.ShowTokens,
		ToggleTokensURL: q.WithTokensToggled(),
	}

	for _, m := range pipeline.Modes() {
		vm.Modes = append(vm.Modes, ModeLink{
			Name:     string(m),
			URL:      q.WithMode(string(m)),
			IsActive: q.IsMode(string(m)),
		})
	}

	if q.ShowTokens {
		vm.Tokens = make([]TokenRow, 0, len(tokens))
		for _, tok := range tokens {
			row := TokenRow{
				Kind:    tok.Type.String(),
				Lexeme:  tok.Lexeme,
				Literal: "null",
				Line:    tok.Line,
			}
			if tok.HasLiteral() {
				row.Literal = tok.Literal.AsString()
			}
			vm.Tokens = append(vm.Tokens, row)
		}
	}

	for _, ex := range examples {
		vm.Examples = append(vm.Examples, ExampleLink{
			Name: ex.name,
			URL:  q.WithSource(ex.source),
		})
	}

	return vm
}
