/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Package suite loads YAML conformance suites and checks them against the
pipeline. A suite pins the exact stdout, stderr and exit code of each case.
*/
package suite

import (
	"fmt"
	"os"

	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"gopkg.in/yaml.v3"
)

// Suite is a named list of cases
type Suite struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Case runs one source text in one mode
type Case struct {
	Name     string `yaml:"name"`
	Command  string `yaml:"command"`
	Source   string `yaml:"source"`
	Stdout   string `yaml:"stdout"`
	Stderr   string `yaml:"stderr"`
	ExitCode int    `yaml:"exit_code"`
}

// Mode returns the case's command as a pipeline mode. Parse has already
// validated it.
func (c *Case) Mode() pipeline.Mode {
	return pipeline.Mode(c.Command)
}

// LoadFromFile reads and validates a suite file
func LoadFromFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and validates a suite
func Parse(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite YAML: %w", err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("suite has no cases")
	}
	for i, c := range s.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("case at index %d has no name", i)
		}
		if _, err := pipeline.ParseMode(c.Command); err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
	}
	return &s, nil
}
