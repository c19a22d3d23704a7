/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"fmt"
	"io"
)

const (
	msgNumberOperand  = "Operand must be a number."
	msgNumbersOrTexts = "Operand must be two numbers or two strings."
)

// Evaluator walks a statement tree and computes runtime values. Output of
// print statements goes to the writer given at construction.
type Evaluator struct {
	out io.Writer
}

// NewEvaluator creates a new evaluator writing print output to out
func NewEvaluator(out io.Writer) *Evaluator {
	if out == nil {
		out = io.Discard
	}
	return &Evaluator{out: out}
}

// Run executes every statement in order and returns the value of the last
// one. ok is false when the program is empty or its last statement is a
// print statement, which yields no value.
func (e *Evaluator) Run(program Program) (last Value, ok bool, err error) {
	for _, stmt := range program {
		last, ok, err = e.Exec(stmt)
		if err != nil {
			return NilValue(), false, err
		}
	}
	return last, ok, nil
}

// Exec executes a single statement
func (e *Evaluator) Exec(stmt Stmt) (Value, bool, error) {
	switch s := stmt.(type) {
	case *PrintStmt:
		val, err := e.Eval(s.Expr)
		if err != nil {
			return NilValue(), false, err
		}
		if _, err := fmt.Fprintln(e.out, val.AsString()); err != nil {
			return NilValue(), false, fmt.Errorf("print: %w", err)
		}
		return NilValue(), false, nil

	case *ExprStmt:
		val, err := e.Eval(s.Expr)
		if err != nil {
			return NilValue(), false, err
		}
		return val, true, nil
	}

	return NilValue(), false, fmt.Errorf("unknown statement type %T", stmt)
}

// Eval evaluates a single expression
func (e *Evaluator) Eval(node Expr) (Value, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil

	case *Empty:
		return NilValue(), nil

	case *Grouping:
		return e.Eval(n.Expr)

	case *Ident:
		return NilValue(), runtimeErrorf("Undefined variable '%s'.", n.Name.Lexeme)

	case *Unary:
		val, err := e.Eval(n.Expr)
		if err != nil {
			return NilValue(), err
		}
		return evalUnary(n.Op, val)

	case *Binary:
		left, err := e.Eval(n.Left)
		if err != nil {
			return NilValue(), err
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return NilValue(), err
		}
		return evalBinary(n.Op, left, right)
	}

	return NilValue(), fmt.Errorf("unknown node type %T", node)
}

func evalUnary(op Token, val Value) (Value, error) {
	switch op.Type {
	case TOKEN_MINUS:
		if !val.IsNumber() {
			return NilValue(), runtimeErrorf(msgNumberOperand)
		}
		return NewNumber(-val.AsNumber()), nil
	case TOKEN_BANG:
		return NewBool(!val.Truthy()), nil
	}
	return NilValue(), runtimeErrorf("Unknown unary operator '%s'.", op.Lexeme)
}

func evalBinary(op Token, left, right Value) (Value, error) {
	// Equality never raises; differing kinds are simply unequal.
	switch op.Type {
	case TOKEN_EQUAL_EQUAL:
		return NewBool(left.Equal(right)), nil
	case TOKEN_BANG_EQUAL:
		return NewBool(!left.Equal(right)), nil
	}

	if op.Type == TOKEN_PLUS && left.IsString() && right.IsString() {
		return NewString(left.AsString() + right.AsString()), nil
	}

	if !left.IsNumber() || !right.IsNumber() {
		return NilValue(), operandError(left, right)
	}

	l, r := left.AsNumber(), right.AsNumber()
	switch op.Type {
	case TOKEN_PLUS:
		return NewNumber(l + r), nil
	case TOKEN_MINUS:
		return NewNumber(l - r), nil
	case TOKEN_STAR:
		return NewNumber(l * r), nil
	case TOKEN_SLASH:
		if r == 0 {
			return NilValue(), runtimeErrorf("Division by zero.")
		}
		return NewNumber(l / r), nil
	case TOKEN_GREATER:
		return NewBool(l > r), nil
	case TOKEN_GREATER_EQUAL:
		return NewBool(l >= r), nil
	case TOKEN_LESS:
		return NewBool(l < r), nil
	case TOKEN_LESS_EQUAL:
		return NewBool(l <= r), nil
	}

	return NilValue(), runtimeErrorf("Unknown binary operator '%s'.", op.Lexeme)
}

// operandError picks the message for a binary operator applied to
// operands it does not accept.
func operandError(left, right Value) *RuntimeError {
	if left.IsBool() || right.IsBool() {
		return runtimeErrorf(msgNumbersOrTexts)
	}
	return runtimeErrorf(msgNumberOperand)
}
