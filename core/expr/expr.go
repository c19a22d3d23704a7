/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package expr implements a small expression-oriented scripting language.
It supports:
  - Literals: numbers (123, 3.14), strings ("hello" or 'hello'), true, false, nil
  - Arithmetic operators: +, -, *, /
  - Comparison operators: ==, !=, <, >, <=, >=
  - Unary operators: - and !
  - Grouping with parentheses
  - String concatenation with +
  - A print statement: print <expr>;
  - Line comments starting with //

Source text flows through three stages: the Scanner produces tokens, the
Parser builds a statement tree, and the Evaluator walks the tree.
*/
package expr

import (
	"errors"
	"fmt"
	"io"
)

// ErrScan is returned by Compile when the source has lexical errors. The
// individual errors have already been written to the diagnostic writer.
var ErrScan = errors.New("lexical errors")

// Script represents a scanned and parsed program ready for evaluation
type Script struct {
	source  string
	tokens  []Token
	program Program
}

// Compile scans and parses source. Lexical errors are written to diag as
// they are found and reported as ErrScan; a parse error is returned as is.
func Compile(source string, diag io.Writer) (*Script, error) {
	scanner := NewScanner(source, diag)
	tokens, hadError := scanner.Scan()
	if hadError {
		return nil, fmt.Errorf("%w: %d found", ErrScan, len(scanner.Errors()))
	}

	program, err := Parse(tokens)
	if err != nil {
		return nil, err
	}

	return &Script{
		source:  source,
		tokens:  tokens,
		program: program,
	}, nil
}

// Source returns the original source text
func (s *Script) Source() string {
	return s.source
}

// Tokens returns the scanned tokens, ending with EOF
func (s *Script) Tokens() []Token {
	return s.tokens
}

// Program returns the parsed statements
func (s *Script) Program() Program {
	return s.program
}

// Run evaluates the script, writing print output to out. It returns the
// value of the last statement and whether that statement produced one.
func (s *Script) Run(out io.Writer) (Value, bool, error) {
	return NewEvaluator(out).Run(s.program)
}
