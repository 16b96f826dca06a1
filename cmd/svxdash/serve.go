package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/svxdash/internal/app"
)

func serveCmd(opts *app.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the talker log and control endpoints over HTTP",
		Long:  `Starts the JSON API (/api/log, /api/talkers, /api/ws, /api/dtmf, /api/ptt, /api/system/{action}). Logs are written to stdout as JSON.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Serve(cmd.Context(), *opts)
		},
	}

	cmd.Flags().StringVar(&opts.Bind, "bind", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}
