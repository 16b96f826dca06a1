package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/svxdash/internal/app"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "svxdash: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:           "svxdash",
		Short:         "Live talker dashboard for SvxLink reflector logs",
		Long:          `Tails the reflector log, pairs "Talker start/stop" lines into sessions and shows who is on air. Without a subcommand it opens the terminal dashboard.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/svxdash/config.toml)")
	flags.IntVar(&opts.PollEvery, "poll", 0, "refresh interval in seconds (default from config, 2s)")
	flags.IntVar(&opts.Lines, "lines", 0, "number of log lines to read (default from config, 30)")
	cmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/svxdash/prefs.toml)")

	cmd.AddCommand(serveCmd(&opts))
	cmd.AddCommand(tailCmd(&opts))
	cmd.AddCommand(ctlCmd())

	return cmd
}
