/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"errors"
	"fmt"
)

// ErrMissingTerminator is wrapped by the syntax error raised when a print
// statement is not closed by ';'.
var ErrMissingTerminator = errors.New("missing statement terminator")

// SyntaxError is a lexical or parse error tied to a source line
type SyntaxError struct {
	Line    int
	Message string
	err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

// RuntimeError is raised during evaluation. It carries no position.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func runtimeErrorf(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}
