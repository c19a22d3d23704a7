/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package rendering

import (
	"bytes"
	"testing"

	"github.com/google/safehtml"
	"github.com/ksv-py/custom-interpreter/core/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r, err := NewPlaygroundRenderer()
	require.NoError(t, err)

	vm := views.PlaygroundViewModel{
		Title:     "Playground",
		Source:    `print "<i>";`,
		Mode:      "run",
		Stdout:    "<i>\n",
		ExitCode:  0,
		ExitLabel: "ok",
		Succeeded: true,
		Modes: []views.ModeLink{
			{Name: "run", URL: safehtml.URLSanitized("/?mode=run"), IsActive: true},
			{Name: "bad", URL: safehtml.URLSanitized("javascript:alert(1)")},
		},
		ToggleTokensURL: safehtml.URLSanitized("/?mode=run&tokens=1"),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, vm))
	out := buf.String()

	assert.Contains(t, out, "<title>Playground</title>")
	assert.Contains(t, out, `class="active"`)
	assert.Contains(t, out, "&lt;i&gt;")
	assert.NotContains(t, out, "<i>")
	assert.NotContains(t, out, "javascript:")
	assert.NotContains(t, out, "<table>")
}
