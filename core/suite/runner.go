/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package suite

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/pmezard/go-difflib/difflib"
)

// CaseResult is the outcome of one case
type CaseResult struct {
	Suite    string
	Case     string
	Passed   bool
	Failures []string // one entry per mismatched stream
	Latency  time.Duration
}

// Report collects results across suites in run order
type Report struct {
	Results []CaseResult
}

// Failed counts failing cases
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// Passed reports whether every case passed
func (r *Report) Passed() bool {
	return r.Failed() == 0
}

// Run executes every case of s in memory and appends the results to r
func (r *Report) Run(s *Suite, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, c := range s.Cases {
		res := runCase(s.Name, c, logger)
		logger.Debug("case finished", "suite", s.Name, "case", c.Name, "passed", res.Passed, "latency", res.Latency)
		r.Results = append(r.Results, res)
	}
}

func runCase(suiteName string, c Case, logger *slog.Logger) CaseResult {
	var stdout, stderr bytes.Buffer
	start := time.Now()
	code := pipeline.NewRunner(&stdout, &stderr, pipeline.WithLogger(logger)).Run(c.Mode(), c.Source)

	res := CaseResult{Suite: suiteName, Case: c.Name, Latency: time.Since(start)}
	if d := diff("stdout", c.Stdout, stdout.String()); d != "" {
		res.Failures = append(res.Failures, d)
	}
	if d := diff("stderr", c.Stderr, stderr.String()); d != "" {
		res.Failures = append(res.Failures, d)
	}
	if code != c.ExitCode {
		res.Failures = append(res.Failures, fmt.Sprintf("exit code: want %d, got %d\n", c.ExitCode, code))
	}
	res.Passed = len(res.Failures) == 0
	return res
}

// diff returns a unified diff of a stream, or "" when it matches
func diff(stream, want, got string) string {
	if want == got {
		return ""
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: stream + " (want)",
		ToFile:   stream + " (got)",
		Context:  1,
	})
	if err != nil || text == "" {
		// Differences in trailing newlines only
		return fmt.Sprintf("%s: want %q, got %q\n", stream, want, got)
	}
	return text
}

// Write prints one PASS/FAIL line per case, the diffs of failing cases and
// a summary table.
func (r *Report) Write(w io.Writer) {
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%s %s/%s\n", status, res.Suite, res.Case)
		for _, f := range res.Failures {
			for _, line := range strings.SplitAfter(strings.TrimSuffix(f, "\n"), "\n") {
				fmt.Fprintf(w, "    %s", line)
			}
			fmt.Fprintln(w)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Suite\tCases\tPassed\tFailed")
	fmt.Fprintln(tw, "---\t---\t---\t---")
	for _, s := range r.summarize() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.name, s.total, s.total-s.failed, s.failed)
	}
	tw.Flush()
}

type suiteSummary struct {
	name          string
	total, failed int
}

func (r *Report) summarize() []suiteSummary {
	var out []suiteSummary
	index := map[string]int{}
	for _, res := range r.Results {
		i, ok := index[res.Suite]
		if !ok {
			i = len(out)
			index[res.Suite] = i
			out = append(out, suiteSummary{name: res.Suite})
		}
		out[i].total++
		if !res.Passed {
			out[i].failed++
		}
	}
	return out
}
