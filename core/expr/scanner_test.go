/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestScanWhitespaceOnly(t *testing.T) {
	for _, src := range []string{"", " ", "\t\r\n", "\n\n  \n"} {
		var diag bytes.Buffer
		tokens, hadError := Scan(src, &diag)
		require.False(t, hadError)
		require.Len(t, tokens, 1)
		assert.Equal(t, TOKEN_EOF, tokens[0].Type)
		assert.Equal(t, "EOF  null\n", FormatTokens(tokens))
		assert.Empty(t, diag.String())
	}
}

func TestScanPunctuation(t *testing.T) {
	tokens, hadError := Scan("(){},.-+;*", nil)
	require.False(t, hadError)
	assert.Equal(t, []TokenType{
		TOKEN_LEFT_PAREN, TOKEN_RIGHT_PAREN, TOKEN_LEFT_BRACE, TOKEN_RIGHT_BRACE,
		TOKEN_COMMA, TOKEN_DOT, TOKEN_MINUS, TOKEN_PLUS, TOKEN_SEMICOLON, TOKEN_STAR,
		TOKEN_EOF,
	}, tokenTypes(tokens))
}

func TestScanOperators(t *testing.T) {
	tests := []struct {
		src      string
		expected []TokenType
	}{
		{"=", []TokenType{TOKEN_EQUAL, TOKEN_EOF}},
		{"==", []TokenType{TOKEN_EQUAL_EQUAL, TOKEN_EOF}},
		{"===", []TokenType{TOKEN_EQUAL_EQUAL, TOKEN_EQUAL, TOKEN_EOF}},
		{"!!=", []TokenType{TOKEN_BANG, TOKEN_BANG_EQUAL, TOKEN_EOF}},
		{"<<=>>=", []TokenType{TOKEN_LESS, TOKEN_LESS_EQUAL, TOKEN_GREATER, TOKEN_GREATER_EQUAL, TOKEN_EOF}},
		{"/", []TokenType{TOKEN_SLASH, TOKEN_EOF}},
		{"// comment (){}\n/", []TokenType{TOKEN_SLASH, TOKEN_EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, hadError := Scan(tt.src, nil)
			require.False(t, hadError)
			assert.Equal(t, tt.expected, tokenTypes(tokens))
		})
	}
}

func TestScanTokenizeFormat(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"integral float", "3.0", "NUMBER 3.0 3\nEOF  null\n"},
		{"fraction", "1.25", "NUMBER 1.25 1.25\nEOF  null\n"},
		{"integer", "42", "NUMBER 42 42\nEOF  null\n"},
		{"double quoted", `"hello world"`, "STRING \"hello world\" hello world\nEOF  null\n"},
		{"single quoted", `'hi'`, "STRING \"hi\" hi\nEOF  null\n"},
		{"no escapes", `"a\nb"`, "STRING \"a\\nb\" a\\nb\nEOF  null\n"},
		{"identifier", "foo_bar1", "IDENTIFIER foo_bar1 null\nEOF  null\n"},
		{"keyword", "print", "PRINT print null\nEOF  null\n"},
		{"operator", "!=", "BANG_EQUAL != null\nEOF  null\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, hadError := Scan(tt.src, nil)
			require.False(t, hadError)
			assert.Equal(t, tt.expected, FormatTokens(tokens))
		})
	}
}

func TestScanReservedWords(t *testing.T) {
	words := []string{"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while"}
	for _, w := range words {
		tokens, _ := Scan(w, nil)
		require.Len(t, tokens, 2)
		assert.NotEqual(t, TOKEN_IDENTIFIER, tokens[0].Type, w)
		assert.Equal(t, w, tokens[0].Lexeme)
	}

	tokens, _ := Scan("printer", nil)
	assert.Equal(t, TOKEN_IDENTIFIER, tokens[0].Type)
}

func TestScanUnterminatedString(t *testing.T) {
	var diag bytes.Buffer
	tokens, hadError := Scan(`"abc`, &diag)
	require.True(t, hadError)
	assert.Equal(t, "[line 1] Error: Unterminated string.\n", diag.String())
	assert.Equal(t, []TokenType{TOKEN_EOF}, tokenTypes(tokens))
}

func TestScanUnterminatedStringLine(t *testing.T) {
	var diag bytes.Buffer
	_, hadError := Scan("1\n\"abc\ndef", &diag)
	require.True(t, hadError)
	assert.Equal(t, "[line 3] Error: Unterminated string.\n", diag.String())
}

func TestScanInvalidNumber(t *testing.T) {
	var diag bytes.Buffer
	tokens, hadError := Scan("1.2.3 + 4", &diag)
	require.True(t, hadError)
	assert.Equal(t, "[line 1] Error: Invalid number literal.\n", diag.String())
	assert.Equal(t, []TokenType{TOKEN_PLUS, TOKEN_NUMBER, TOKEN_EOF}, tokenTypes(tokens))
}

func TestScanOutOfRangeNumber(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400)
	var diag bytes.Buffer
	tokens, hadError := Scan(huge+" 0."+strings.Repeat("0", 400)+"1", &diag)
	require.False(t, hadError)
	assert.Empty(t, diag.String())
	require.Len(t, tokens, 3)
	assert.Equal(t, "NUMBER "+huge+" inf", tokens[0].String())
	assert.True(t, math.IsInf(tokens[0].Literal.AsNumber(), 1))
	assert.Equal(t, "0", tokens[1].Literal.AsString())
}

func TestScanTrailingDotNumber(t *testing.T) {
	tokens, hadError := Scan("12.", nil)
	require.False(t, hadError)
	assert.Equal(t, "NUMBER 12. 12\nEOF  null\n", FormatTokens(tokens))
}

func TestScanCollectsAllErrors(t *testing.T) {
	var diag bytes.Buffer
	scanner := NewScanner(",$(\n#)@", &diag)
	tokens, hadError := scanner.Scan()
	require.True(t, hadError)
	assert.Equal(t,
		"[line 1] Error: Unexpected character: $\n"+
			"[line 2] Error: Unexpected character: #\n"+
			"[line 2] Error: Unexpected character: @\n",
		diag.String())
	assert.Len(t, scanner.Errors(), 3)
	assert.Equal(t, []TokenType{TOKEN_COMMA, TOKEN_LEFT_PAREN, TOKEN_RIGHT_PAREN, TOKEN_EOF}, tokenTypes(tokens))
}

func TestScanUnicodeUnexpected(t *testing.T) {
	var diag bytes.Buffer
	_, hadError := Scan("é", &diag)
	require.True(t, hadError)
	assert.Equal(t, "[line 1] Error: Unexpected character: é\n", diag.String())
}

func TestScanLineNumbers(t *testing.T) {
	tokens, hadError := Scan("a\nb // c\n\nd", nil)
	require.False(t, hadError)
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 4, tokens[2].Line)
	assert.Equal(t, 4, tokens[3].Line)
}
