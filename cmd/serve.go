/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package cmd

import (
	"github.com/ksv-py/custom-interpreter/core/server"
	"github.com/spf13/cobra"
)

func (a *app) serveCommand() *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTML playground",
		Long: `serve starts an HTTP server with a page for running source text in any mode.
It stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Serve
			if addr != "" {
				cfg.Addr = addr
			}

			srv, err := server.NewServer(cfg, a.logger)
			if err != nil {
				return err
			}
			return srv.Start(cmd.Context())
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8097)")
	return c
}
