/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in memory and returns stdout, stderr and the exit code
func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	code := ExitCode(root.ExecuteContext(context.Background()), &stderr)
	return stdout.String(), stderr.String(), code
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.lox")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestModes(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		source string
		stdout string
		stderr string
		code   int
	}{
		{"tokenize", []string{"tokenize"}, "1 + 2", "NUMBER 1 1\nPLUS + null\nNUMBER 2 2\nEOF  null\n", "", pipeline.ExitOK},
		{"tokenize error", []string{"tokenize"}, "$", "EOF  null\n", "[line 1] Error: Unexpected character: $\n", pipeline.ExitDataErr},
		{"parse", []string{"parse"}, "-(1 + 2) * 3", "(* (- (group (+ 1 2))) 3)\n", "", pipeline.ExitOK},
		{"evaluate", []string{"evaluate"}, "\"a\" + \"b\"", "ab\n", "", pipeline.ExitOK},
		{"evaluate runtime error", []string{"evaluate"}, "-\"a\"", "", "Error: Operand must be a number.\n", pipeline.ExitSoftware},
		{"run", []string{"run"}, "print 1 < 2;\nprint 3 >= 4;", "true\nfalse\n", "", pipeline.ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.source)
			stdout, stderr, code := execute(t, append(tt.args, path)...)
			assert.Equal(t, tt.stdout, stdout)
			assert.Equal(t, tt.stderr, stderr)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestStructuredFormatFlag(t *testing.T) {
	path := writeSource(t, "1 + 2")

	stdout, stderr, code := execute(t, "parse", "--format", "json", path)
	require.Equal(t, pipeline.ExitOK, code, stderr)
	assert.Contains(t, stdout, `"binary"`)

	_, stderr, code = execute(t, "tokenize", "-f", "yaml", path)
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stderr, "unknown format")

	// evaluate has no --format flag
	_, _, code = execute(t, "evaluate", "--format", "json", path)
	assert.Equal(t, pipeline.ExitUsage, code)
}

func TestFileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.lox")
	stdout, stderr, code := execute(t, "run", missing)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: File '"+missing+"' not found.\n", stderr)
	assert.Equal(t, pipeline.ExitUsage, code)
}

func TestUsageErrors(t *testing.T) {
	_, stderr, code := execute(t, "tokenize")
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stderr, "usage: interpreter tokenize <filename>")

	_, stderr, code = execute(t, "compile", "file.lox")
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stderr, "unknown command")

	_, _, code = execute(t)
	assert.Equal(t, pipeline.ExitUsage, code)
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeSource(t, "1")
	_, stderr, code := execute(t, "--log-level", "loud", "run", path)
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "interpreter.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nlevel = \"debug\"\nformat = \"json\"\n"), 0o644))
	path := writeSource(t, "print 1;")

	stdout, stderr, code := execute(t, "--config", cfgPath, "run", path)
	require.Equal(t, pipeline.ExitOK, code)
	assert.Equal(t, "1\n", stdout)
	assert.Contains(t, stderr, `"level":"DEBUG"`)

	_, stderr, code = execute(t, "--config", filepath.Join(dir, "absent.toml"), "run", path)
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stderr, "config file not found")
}

func TestCheck(t *testing.T) {
	stdout, _, code := execute(t, "check", filepath.Join("..", "core", "suite", "testdata", "conformance.yaml"))
	assert.Equal(t, pipeline.ExitOK, code)
	assert.Contains(t, stdout, "PASS conformance/concatenation")
	assert.NotContains(t, stdout, "FAIL")

	failing := filepath.Join(t.TempDir(), "failing.yaml")
	require.NoError(t, os.WriteFile(failing, []byte(`
name: failing
cases:
  - name: wrong
    command: run
    source: "print 1;"
    stdout: "2\n"
`), 0o644))
	stdout, _, code = execute(t, "check", failing)
	assert.Equal(t, pipeline.ExitUsage, code)
	assert.Contains(t, stdout, "FAIL failing/wrong")
}

func TestVersion(t *testing.T) {
	stdout, _, code := execute(t, "version")
	assert.Equal(t, pipeline.ExitOK, code)
	assert.Contains(t, stdout, "interpreter v"+Version)
}
