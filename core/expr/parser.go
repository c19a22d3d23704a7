/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import "fmt"

// Parser builds a statement tree from scanned tokens by recursive descent.
// It does not recover: the first error aborts the parse.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser over tokens. The sequence is expected to
// end with an EOF token.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is a convenience wrapper around NewParser(tokens).Parse()
func Parse(tokens []Token) (Program, error) {
	return NewParser(tokens).Parse()
}

// Parse parses statements until EOF
func (p *Parser) Parse() (Program, error) {
	var program Program
	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program = append(program, stmt)
	}
	return program, nil
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		line := 1
		if n := len(p.tokens); n > 0 {
			line = p.tokens[n-1].Line
		}
		return Token{Type: TOKEN_EOF, Line: line}
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == TOKEN_EOF
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

// match consumes the current token if it has one of the given types
func (p *Parser) match(types ...TokenType) (Token, bool) {
	cur := p.peek()
	if cur.Type == TOKEN_EOF {
		return cur, false
	}
	for _, typ := range types {
		if cur.Type == typ {
			return p.advance(), true
		}
	}
	return cur, false
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: p.peek().Line, Message: fmt.Sprintf(format, args...)}
}

// Grammar, loosest to tightest:
//
//	statement  -> "print" expression ";" | expression
//	expression -> equality
//	equality   -> comparison ( ( "!=" | "==" ) comparison )*
//	comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       -> factor ( ( "-" | "+" ) factor )*
//	factor     -> unary ( ( "/" | "*" ) unary )*
//	unary      -> ( "!" | "-" ) unary | primary
//	primary    -> "true" | "false" | "nil" | NUMBER | STRING
//	            | "(" expression ")" | IDENTIFIER | ";"

func (p *Parser) parseStatement() (Stmt, error) {
	if _, ok := p.match(TOKEN_PRINT); ok {
		return p.parsePrint()
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: e}, nil
}

func (p *Parser) parsePrint() (Stmt, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.match(TOKEN_SEMICOLON); !ok {
		serr := p.errorf("Expect ';' after value.")
		serr.err = ErrMissingTerminator
		return nil, serr
	}
	return &PrintStmt{Expr: e}, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseEquality()
}

// binaryLoop parses an operand with next, then folds every following
// operator in ops into a left-associated Binary node.
func (p *Parser) binaryLoop(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &Binary{Left: left, Op: op, Right: right}
	}
}

func (p *Parser) parseEquality() (Expr, error) {
	return p.binaryLoop(p.parseComparison, TOKEN_BANG_EQUAL, TOKEN_EQUAL_EQUAL)
}

func (p *Parser) parseComparison() (Expr, error) {
	return p.binaryLoop(p.parseTerm,
		TOKEN_GREATER, TOKEN_GREATER_EQUAL, TOKEN_LESS, TOKEN_LESS_EQUAL)
}

func (p *Parser) parseTerm() (Expr, error) {
	return p.binaryLoop(p.parseFactor, TOKEN_MINUS, TOKEN_PLUS)
}

func (p *Parser) parseFactor() (Expr, error) {
	return p.binaryLoop(p.parseUnary, TOKEN_SLASH, TOKEN_STAR)
}

func (p *Parser) parseUnary() (Expr, error) {
	if op, ok := p.match(TOKEN_BANG, TOKEN_MINUS); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Expr: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	cur := p.peek()
	switch cur.Type {
	case TOKEN_FALSE:
		p.advance()
		return &Literal{Value: NewBool(false)}, nil

	case TOKEN_TRUE:
		p.advance()
		return &Literal{Value: NewBool(true)}, nil

	case TOKEN_NIL:
		p.advance()
		return &Literal{Value: NilValue()}, nil

	case TOKEN_NUMBER, TOKEN_STRING:
		p.advance()
		return &Literal{Value: cur.Literal}, nil

	case TOKEN_LEFT_PAREN:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.match(TOKEN_RIGHT_PAREN); !ok {
			return nil, p.errorf("Expect ')' after expression.")
		}
		return &Grouping{Expr: inner}, nil

	case TOKEN_IDENTIFIER:
		p.advance()
		return &Ident{Name: cur}, nil

	case TOKEN_SEMICOLON:
		p.advance()
		return &Empty{Semicolon: cur}, nil
	}

	return nil, p.errorf("Expect expression.")
}
