/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Scanner converts source text into tokens in a single left-to-right pass.
// Lexical errors do not stop scanning: each one is written to the
// diagnostic writer as soon as it is found and scanning resumes with the
// next character.
type Scanner struct {
	input  string
	pos    int
	line   int
	diag   io.Writer
	tokens []Token
	errs   []*SyntaxError
}

// NewScanner creates a scanner for the given input. Diagnostics are
// written to diag; a nil diag discards them.
func NewScanner(input string, diag io.Writer) *Scanner {
	if diag == nil {
		diag = io.Discard
	}
	return &Scanner{input: input, line: 1, diag: diag}
}

// Scan tokenizes source and reports whether any lexical error occurred.
func Scan(source string, diag io.Writer) ([]Token, bool) {
	return NewScanner(source, diag).Scan()
}

// Scan consumes the whole input. The returned slice always ends with an
// EOF token.
func (s *Scanner) Scan() ([]Token, bool) {
	for !s.atEnd() {
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: TOKEN_EOF, Line: s.line})
	return s.tokens, len(s.errs) > 0
}

// Errors returns the lexical errors found so far, in source order
func (s *Scanner) Errors() []*SyntaxError {
	return s.errs
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.input[s.pos]
}

// match consumes the current character if it equals want
func (s *Scanner) match(want byte) bool {
	if s.atEnd() || s.input[s.pos] != want {
		return false
	}
	s.pos++
	return true
}

func (s *Scanner) scanToken() {
	start := s.pos
	ch := s.input[s.pos]
	s.pos++

	if typ, ok := symbols[ch]; ok {
		s.emit(typ, start)
		return
	}

	switch ch {
	case ' ', '\t', '\r':
	case '\n':
		s.line++
	case '=':
		s.emitPair(TOKEN_EQUAL_EQUAL, TOKEN_EQUAL, start)
	case '!':
		s.emitPair(TOKEN_BANG_EQUAL, TOKEN_BANG, start)
	case '<':
		s.emitPair(TOKEN_LESS_EQUAL, TOKEN_LESS, start)
	case '>':
		s.emitPair(TOKEN_GREATER_EQUAL, TOKEN_GREATER, start)
	case '/':
		if s.match('/') {
			for !s.atEnd() && s.peek() != '\n' {
				s.pos++
			}
			return
		}
		s.emit(TOKEN_SLASH, start)
	case '"', '\'':
		s.readString(ch, start)
	default:
		switch {
		case isDigit(ch):
			s.readNumber(start)
		case isAlpha(ch):
			s.readIdent(start)
		default:
			// Report the whole rune, not a single byte of it.
			r, size := utf8.DecodeRuneInString(s.input[start:])
			s.pos = start + size
			s.errorf("Unexpected character: %c", r)
		}
	}
}

func (s *Scanner) emit(typ TokenType, start int) {
	s.tokens = append(s.tokens, Token{
		Type:    typ,
		Lexeme:  s.input[start:s.pos],
		Literal: NilValue(),
		Line:    s.line,
	})
}

// emitPair emits long if the next character is '=', short otherwise
func (s *Scanner) emitPair(long, short TokenType, start int) {
	if s.match('=') {
		s.emit(long, start)
		return
	}
	s.emit(short, start)
}

// readString consumes characters verbatim up to the matching quote.
// No escape sequences are processed.
func (s *Scanner) readString(quote byte, start int) {
	startLine := s.line
	for !s.atEnd() && s.peek() != quote {
		if s.peek() == '\n' {
			s.line++
		}
		s.pos++
	}

	if s.atEnd() {
		s.errorf("Unterminated string.")
		return
	}
	s.pos++

	s.tokens = append(s.tokens, Token{
		Type:    TOKEN_STRING,
		Lexeme:  s.input[start:s.pos],
		Literal: NewString(s.input[start+1 : s.pos-1]),
		Line:    startLine,
	})
}

// readNumber consumes digits and dots contiguously and validates the
// lexeme afterwards: at most one decimal point is allowed.
func (s *Scanner) readNumber(start int) {
	for !s.atEnd() && (isDigit(s.peek()) || s.peek() == '.') {
		s.pos++
	}

	lexeme := s.input[start:s.pos]
	if strings.Count(lexeme, ".") > 1 {
		s.errorf("Invalid number literal.")
		return
	}
	// Out-of-range literals are still numbers; ParseFloat returns ±Inf.
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		s.errorf("Invalid number literal.")
		return
	}

	s.tokens = append(s.tokens, Token{
		Type:    TOKEN_NUMBER,
		Lexeme:  lexeme,
		Literal: NewNumber(val),
		Line:    s.line,
	})
}

func (s *Scanner) readIdent(start int) {
	for !s.atEnd() && (isAlpha(s.peek()) || isDigit(s.peek())) {
		s.pos++
	}

	typ := TOKEN_IDENTIFIER
	if kw, ok := keywords[s.input[start:s.pos]]; ok {
		typ = kw
	}
	s.emit(typ, start)
}

func (s *Scanner) errorf(format string, args ...any) {
	err := &SyntaxError{Line: s.line, Message: fmt.Sprintf(format, args...)}
	s.errs = append(s.errs, err)
	fmt.Fprintln(s.diag, err.Error())
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
