/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a token
type TokenType int

const (
	TOKEN_EOF TokenType = iota

	// Single-character symbols
	TOKEN_LEFT_PAREN
	TOKEN_RIGHT_PAREN
	TOKEN_LEFT_BRACE
	TOKEN_RIGHT_BRACE
	TOKEN_COMMA
	TOKEN_DOT
	TOKEN_MINUS
	TOKEN_PLUS
	TOKEN_SEMICOLON
	TOKEN_SLASH
	TOKEN_STAR

	// One or two character operators
	TOKEN_BANG          // !
	TOKEN_BANG_EQUAL    // !=
	TOKEN_EQUAL         // =
	TOKEN_EQUAL_EQUAL   // ==
	TOKEN_GREATER       // >
	TOKEN_GREATER_EQUAL // >=
	TOKEN_LESS          // <
	TOKEN_LESS_EQUAL    // <=

	// Literals
	TOKEN_IDENTIFIER
	TOKEN_STRING
	TOKEN_NUMBER

	// Reserved words
	TOKEN_AND
	TOKEN_CLASS
	TOKEN_ELSE
	TOKEN_FALSE
	TOKEN_FOR
	TOKEN_FUN
	TOKEN_IF
	TOKEN_NIL
	TOKEN_OR
	TOKEN_PRINT
	TOKEN_RETURN
	TOKEN_SUPER
	TOKEN_THIS
	TOKEN_TRUE
	TOKEN_VAR
	TOKEN_WHILE
)

var tokenNames = [...]string{
	TOKEN_EOF:           "EOF",
	TOKEN_LEFT_PAREN:    "LEFT_PAREN",
	TOKEN_RIGHT_PAREN:   "RIGHT_PAREN",
	TOKEN_LEFT_BRACE:    "LEFT_BRACE",
	TOKEN_RIGHT_BRACE:   "RIGHT_BRACE",
	TOKEN_COMMA:         "COMMA",
	TOKEN_DOT:           "DOT",
	TOKEN_MINUS:         "MINUS",
	TOKEN_PLUS:          "PLUS",
	TOKEN_SEMICOLON:     "SEMICOLON",
	TOKEN_SLASH:         "SLASH",
	TOKEN_STAR:          "STAR",
	TOKEN_BANG:          "BANG",
	TOKEN_BANG_EQUAL:    "BANG_EQUAL",
	TOKEN_EQUAL:         "EQUAL",
	TOKEN_EQUAL_EQUAL:   "EQUAL_EQUAL",
	TOKEN_GREATER:       "GREATER",
	TOKEN_GREATER_EQUAL: "GREATER_EQUAL",
	TOKEN_LESS:          "LESS",
	TOKEN_LESS_EQUAL:    "LESS_EQUAL",
	TOKEN_IDENTIFIER:    "IDENTIFIER",
	TOKEN_STRING:        "STRING",
	TOKEN_NUMBER:        "NUMBER",
	TOKEN_AND:           "AND",
	TOKEN_CLASS:         "CLASS",
	TOKEN_ELSE:          "ELSE",
	TOKEN_FALSE:         "FALSE",
	TOKEN_FOR:           "FOR",
	TOKEN_FUN:           "FUN",
	TOKEN_IF:            "IF",
	TOKEN_NIL:           "NIL",
	TOKEN_OR:            "OR",
	TOKEN_PRINT:         "PRINT",
	TOKEN_RETURN:        "RETURN",
	TOKEN_SUPER:         "SUPER",
	TOKEN_THIS:          "THIS",
	TOKEN_TRUE:          "TRUE",
	TOKEN_VAR:           "VAR",
	TOKEN_WHILE:         "WHILE",
}

// String returns the upper-case kind name used by the tokenize output
func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// symbols maps single-character punctuation to its token type.
var symbols = map[byte]TokenType{
	'(': TOKEN_LEFT_PAREN,
	')': TOKEN_RIGHT_PAREN,
	'{': TOKEN_LEFT_BRACE,
	'}': TOKEN_RIGHT_BRACE,
	',': TOKEN_COMMA,
	'.': TOKEN_DOT,
	'-': TOKEN_MINUS,
	'+': TOKEN_PLUS,
	';': TOKEN_SEMICOLON,
	'*': TOKEN_STAR,
}

// keywords maps the 16 reserved words to their token types.
var keywords = map[string]TokenType{
	"and":    TOKEN_AND,
	"class":  TOKEN_CLASS,
	"else":   TOKEN_ELSE,
	"false":  TOKEN_FALSE,
	"for":    TOKEN_FOR,
	"fun":    TOKEN_FUN,
	"if":     TOKEN_IF,
	"nil":    TOKEN_NIL,
	"or":     TOKEN_OR,
	"print":  TOKEN_PRINT,
	"return": TOKEN_RETURN,
	"super":  TOKEN_SUPER,
	"this":   TOKEN_THIS,
	"true":   TOKEN_TRUE,
	"var":    TOKEN_VAR,
	"while":  TOKEN_WHILE,
}

// Token represents a lexical token. Tokens are immutable once scanned.
type Token struct {
	Type    TokenType
	Lexeme  string // exact source text
	Literal Value  // parsed value for NUMBER and STRING, Nil otherwise
	Line    int
}

// HasLiteral reports whether the token carries a parsed literal value
func (t Token) HasLiteral() bool {
	return t.Type == TOKEN_NUMBER || t.Type == TOKEN_STRING
}

// String renders the token in the tokenize output format:
// "<KIND> <lexeme> <literal-or-null>".
func (t Token) String() string {
	switch t.Type {
	case TOKEN_EOF:
		return "EOF  null"
	case TOKEN_STRING:
		s := t.Literal.AsString()
		return fmt.Sprintf("STRING \"%s\" %s", s, s)
	case TOKEN_NUMBER:
		return fmt.Sprintf("NUMBER %s %s", t.Lexeme, t.Literal.AsString())
	default:
		return fmt.Sprintf("%s %s null", t.Type, t.Lexeme)
	}
}

// FormatTokens renders one token per line, each terminated by a newline
func FormatTokens(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
