/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ksv-py/custom-interpreter/core/dump"
	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/spf13/cobra"
)

var modeShort = map[pipeline.Mode]string{
	pipeline.ModeTokenize: "Print the token stream of a source file",
	pipeline.ModeParse:    "Print the parenthesized expression tree of a source file",
	pipeline.ModeEvaluate: "Run a source file and print its final value",
	pipeline.ModeRun:      "Run a source file",
}

// hasFormat reports whether a mode supports --format
func hasFormat(mode pipeline.Mode) bool {
	return mode == pipeline.ModeTokenize || mode == pipeline.ModeParse
}

func (a *app) modeCommands() []*cobra.Command {
	var cmds []*cobra.Command
	for _, mode := range pipeline.Modes() {
		cmds = append(cmds, a.modeCommand(mode))
	}
	return cmds
}

func (a *app) modeCommand(mode pipeline.Mode) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   string(mode) + " <filename>",
		Short: modeShort[mode],
		Args:  fileArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := dump.ParseFormat(format)
			if err != nil {
				return err
			}

			filename := args[0]
			source, err := os.ReadFile(filename)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: File '%s' not found.\n", filename)
					return &pipeline.ExitError{Code: pipeline.ExitUsage}
				}
				return fmt.Errorf("failed to read %s: %w", filename, err)
			}

			runner := pipeline.NewRunner(cmd.OutOrStdout(), cmd.ErrOrStderr(),
				pipeline.WithFormat(f),
				pipeline.WithLogger(a.logger.With("file", filename)),
			)
			if code := runner.Run(mode, string(source)); code != pipeline.ExitOK {
				return &pipeline.ExitError{Code: code}
			}
			return nil
		},
	}

	if hasFormat(mode) {
		c.Flags().StringVarP(&format, "format", "f", string(dump.FormatText), "output format: text, json, textproto")
	}
	return c
}

// fileArg requires exactly one filename
func fileArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", cmd.UseLine())
	}
	return nil
}
