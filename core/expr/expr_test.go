/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package expr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndRun(t *testing.T) {
	var diag, out bytes.Buffer
	script, err := Compile("print \"hi\";\n1 + 1", &diag)
	require.NoError(t, err)
	assert.Empty(t, diag.String())
	assert.Equal(t, "print \"hi\";\n1 + 1", script.Source())
	assert.Len(t, script.Tokens(), 7)
	assert.Len(t, script.Program(), 2)

	val, ok, err := script.Run(&out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", val.AsString())
	assert.Equal(t, "hi\n", out.String())
}

func TestCompileScanError(t *testing.T) {
	var diag bytes.Buffer
	script, err := Compile("1 + $ + #", &diag)
	require.Error(t, err)
	assert.Nil(t, script)
	assert.True(t, errors.Is(err, ErrScan))
	assert.Equal(t,
		"[line 1] Error: Unexpected character: $\n[line 1] Error: Unexpected character: #\n",
		diag.String())
}

func TestCompileParseError(t *testing.T) {
	var diag bytes.Buffer
	_, err := Compile("(1", &diag)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrScan))
	assert.Equal(t, "[line 1] Error: Expect ')' after expression.", err.Error())
	assert.Empty(t, diag.String())
}

// Benchmarks

func BenchmarkScan(b *testing.B) {
	src := `print (1 + 2) * 3 - "a" == "b"; // trailing comment` + "\n"
	for i := 0; i < b.N; i++ {
		Scan(src, nil)
	}
}

func BenchmarkCompileAndRun(b *testing.B) {
	src := "print (1 + 2) * 3 / 4 >= 2 == !nil;"
	for i := 0; i < b.N; i++ {
		script, err := Compile(src, nil)
		if err != nil {
			b.Fatal(err)
		}
		if _, _, err := script.Run(nil); err != nil {
			b.Fatal(err)
		}
	}
}
