/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"fmt"
	"strings"
)

// PrintExpr renders an expression in fully parenthesized prefix form, e.g.
// (* (group (+ 1 2)) 3)
func PrintExpr(node Expr) string {
	var sb strings.Builder
	writeExpr(&sb, node)
	return sb.String()
}

// FormatStmt renders a statement. Print statements render as (print <expr>).
func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *PrintStmt:
		return "(print " + PrintExpr(s.Expr) + ")"
	case *ExprStmt:
		return PrintExpr(s.Expr)
	}
	return ""
}

// String renders the first statement of the program; an empty program
// renders as the empty string.
func (p Program) String() string {
	if len(p) == 0 {
		return ""
	}
	return FormatStmt(p[0])
}

func writeExpr(sb *strings.Builder, node Expr) {
	switch n := node.(type) {
	case *Literal:
		sb.WriteString(n.Value.AsString())
	case *Ident:
		sb.WriteString(n.Name.Lexeme)
	case *Empty:
	case *Grouping:
		sb.WriteString("(group ")
		writeExpr(sb, n.Expr)
		sb.WriteByte(')')
	case *Unary:
		fmt.Fprintf(sb, "(%s ", n.Op.Lexeme)
		writeExpr(sb, n.Expr)
		sb.WriteByte(')')
	case *Binary:
		fmt.Fprintf(sb, "(%s ", n.Op.Lexeme)
		writeExpr(sb, n.Left)
		sb.WriteByte(' ')
		writeExpr(sb, n.Right)
		sb.WriteByte(')')
	}
}
