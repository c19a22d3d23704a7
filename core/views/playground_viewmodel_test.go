/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package views

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/ksv-py/custom-interpreter/core/expr"
	"github.com/ksv-py/custom-interpreter/core/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlaygroundViewModel(t *testing.T) {
	u, _ := url.Parse("/?mode=tokenize&source=%22hi%22+1&tokens=1")
	q := query.NewQuery(u)
	tokens, hadError := expr.Scan(q.Source, io.Discard)
	require.False(t, hadError)

	vm := BuildPlaygroundViewModel(q, RunResult{Stdout: "out", ExitCode: 0}, tokens)

	assert.Equal(t, "tokenize", vm.Mode)
	assert.True(t, vm.Succeeded)
	assert.Equal(t, "ok", vm.ExitLabel)

	require.Len(t, vm.Modes, 4)
	for _, m := range vm.Modes {
		assert.Equal(t, m.Name == "tokenize", m.IsActive, m.Name)
		assert.True(t, strings.Contains(m.URL.String(), "mode="+m.Name))
	}

	require.Len(t, vm.Tokens, 3)
	assert.Equal(t, TokenRow{Kind: "STRING", Lexeme: `"hi"`, Literal: "hi", Line: 1}, vm.Tokens[0])
	assert.Equal(t, TokenRow{Kind: "NUMBER", Lexeme: "1", Literal: "1", Line: 1}, vm.Tokens[1])
	assert.Equal(t, TokenRow{Kind: "EOF", Lexeme: "", Literal: "null", Line: 1}, vm.Tokens[2])
	assert.NotContains(t, vm.ToggleTokensURL.String(), "tokens=1")
	assert.NotEmpty(t, vm.Examples)
}

func TestBuildPlaygroundViewModelHidesTokens(t *testing.T) {
	u, _ := url.Parse("/?mode=run&source=print+1%3B")
	vm := BuildPlaygroundViewModel(query.NewQuery(u), RunResult{ExitCode: 70}, nil)

	assert.False(t, vm.Succeeded)
	assert.Equal(t, "runtime error", vm.ExitLabel)
	assert.Nil(t, vm.Tokens)
	assert.Contains(t, vm.ToggleTokensURL.String(), "tokens=1")
}

func TestExitLabel(t *testing.T) {
	assert.Equal(t, "usage error", ExitLabel(1))
	assert.Equal(t, "scan or parse error", ExitLabel(65))
	assert.Equal(t, "unknown", ExitLabel(2))
}
