/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package cmd

import (
	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/ksv-py/custom-interpreter/core/suite"
	"github.com/spf13/cobra"
)

func (a *app) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <suite.yaml>...",
		Short: "Run YAML conformance suites",
		Long: `check runs every case of the given suites through the pipeline in memory
and compares stdout, stderr and the exit code with the recorded values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var report suite.Report
			for _, path := range args {
				s, err := suite.LoadFromFile(path)
				if err != nil {
					return err
				}
				a.logger.Info("running suite", "suite", s.Name, "cases", len(s.Cases))
				report.Run(s, a.logger)
			}

			report.Write(cmd.OutOrStdout())
			if !report.Passed() {
				return &pipeline.ExitError{Code: pipeline.ExitUsage}
			}
			return nil
		},
	}
}
