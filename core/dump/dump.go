/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package dump exports tokens and statement trees in machine-readable form.
Both are converted to a google.protobuf.Value and encoded as JSON or
textproto.
*/
package dump

import (
	"fmt"

	"github.com/ksv-py/custom-interpreter/core/expr"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/types/known/structpb"
)

// Format selects how tokenize and parse output is written
type Format string

const (
	FormatText      Format = "text"      // the line-oriented CLI contract
	FormatJSON      Format = "json"      // protojson of a google.protobuf.Value
	FormatTextproto Format = "textproto" // prototext of a google.protobuf.Value
)

// ParseFormat validates a format name. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatTextproto:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or textproto)", s)
}

// Tokens converts tokens to a list of {kind, lexeme, literal, line} objects
func Tokens(tokens []expr.Token) (*structpb.Value, error) {
	list := make([]any, 0, len(tokens))
	for _, tok := range tokens {
		var literal any
		if tok.HasLiteral() {
			literal = literalOf(tok.Literal)
		}
		list = append(list, map[string]any{
			"kind":    tok.Type.String(),
			"lexeme":  tok.Lexeme,
			"literal": literal,
			"line":    tok.Line,
		})
	}
	v, err := structpb.NewValue(list)
	if err != nil {
		return nil, fmt.Errorf("failed to convert tokens: %w", err)
	}
	return v, nil
}

// Program converts every statement of the program to nested objects
func Program(program expr.Program) (*structpb.Value, error) {
	list := make([]any, 0, len(program))
	for _, stmt := range program {
		list = append(list, stmtTree(stmt))
	}
	v, err := structpb.NewValue(list)
	if err != nil {
		return nil, fmt.Errorf("failed to convert program: %w", err)
	}
	return v, nil
}

// Encode writes v in the given format. Text is not a structured format and
// is rejected.
func Encode(v *structpb.Value, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	case FormatTextproto:
		return prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(v)
	}
	return nil, fmt.Errorf("format %q is not a structured format", format)
}

func literalOf(v expr.Value) any {
	switch v.Type() {
	case expr.TypeNumber:
		return v.AsNumber()
	case expr.TypeString:
		return v.AsString()
	case expr.TypeBool:
		return v.AsBool()
	default:
		return nil
	}
}

func stmtTree(stmt expr.Stmt) map[string]any {
	switch s := stmt.(type) {
	case *expr.PrintStmt:
		return map[string]any{"node": "print", "expression": exprTree(s.Expr)}
	case *expr.ExprStmt:
		return map[string]any{"node": "expression", "expression": exprTree(s.Expr)}
	}
	return map[string]any{"node": "unknown"}
}

func exprTree(node expr.Expr) map[string]any {
	switch n := node.(type) {
	case *expr.Literal:
		return map[string]any{"node": "literal", "value": literalOf(n.Value)}
	case *expr.Ident:
		return map[string]any{"node": "identifier", "name": n.Name.Lexeme}
	case *expr.Empty:
		return map[string]any{"node": "empty"}
	case *expr.Grouping:
		return map[string]any{"node": "grouping", "expression": exprTree(n.Expr)}
	case *expr.Unary:
		return map[string]any{
			"node":     "unary",
			"operator": n.Op.Lexeme,
			"operand":  exprTree(n.Expr),
		}
	case *expr.Binary:
		return map[string]any{
			"node":     "binary",
			"operator": n.Op.Lexeme,
			"left":     exprTree(n.Left),
			"right":    exprTree(n.Right),
		}
	}
	return map[string]any{"node": "unknown"}
}
