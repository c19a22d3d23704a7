/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

// Expr is the interface for all expression nodes. Each node owns its
// children exclusively.
type Expr interface {
	exprNode()
}

// Literal represents nil, true, false, a number or a string
type Literal struct {
	Value Value
}

func (n *Literal) exprNode() {}

// Unary represents a prefix operation (! or -)
type Unary struct {
	Op   Token
	Expr Expr
}

func (n *Unary) exprNode() {}

// Binary represents a binary operation
type Binary struct {
	Left  Expr
	Op    Token
	Right Expr
}

func (n *Binary) exprNode() {}

// Grouping represents a parenthesized expression
type Grouping struct {
	Expr Expr
}

func (n *Grouping) exprNode() {}

// Ident represents a bare identifier
type Ident struct {
	Name Token
}

func (n *Ident) exprNode() {}

// Empty represents the empty expression produced by a bare ';'. It
// evaluates to nil.
type Empty struct {
	Semicolon Token
}

func (n *Empty) exprNode() {}

// Stmt is the interface for all statement nodes
type Stmt interface {
	stmtNode()
}

// PrintStmt writes the value of its expression followed by a newline
type PrintStmt struct {
	Expr Expr
}

func (n *PrintStmt) stmtNode() {}

// ExprStmt is a bare expression
type ExprStmt struct {
	Expr Expr
}

func (n *ExprStmt) stmtNode() {}

// Program is an ordered sequence of statements
type Program []Stmt
