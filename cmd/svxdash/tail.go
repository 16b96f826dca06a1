package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/svxdash/internal/app"
	"github.com/five82/svxdash/internal/client"
	"github.com/five82/svxdash/internal/talker"
)

func tailCmd(opts *app.Options) *cobra.Command {
	var order string
	var asJSON bool
	var remote string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print the annotated log window once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := fetchEntries(cmd.Context(), *opts, remote, talker.ParseOrder(order, talker.Ascending))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			return printEntries(out, entries, isTerminal(out))
		},
	}

	cmd.Flags().StringVar(&order, "order", "asc", "entry order: asc or desc")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	cmd.Flags().StringVar(&remote, "remote", "", "read from a running svxdash API (host:port or URL) instead of the local log")

	return cmd
}

// fetchEntries reads the window locally, or from a serve instance when remote is set.
func fetchEntries(ctx context.Context, opts app.Options, remote string, order talker.Order) ([]talker.Entry, error) {
	if remote == "" {
		return app.Entries(opts, order)
	}
	c, err := client.NewClient(remote)
	if err != nil {
		return nil, err
	}
	return c.FetchLog(ctx, client.LogQuery{Lines: opts.Lines, Order: order})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9"))
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

func printEntries(w io.Writer, entries []talker.Entry, color bool) error {
	for _, e := range entries {
		ts := e.Timestamp
		dur := ""
		if e.Duration != nil {
			dur = *e.Duration
			if e.Active {
				dur += " (on air)"
			}
		}
		if color {
			ts = faintStyle.Render(ts)
			switch {
			case e.Active:
				dur = activeStyle.Render(dur)
			case dur != "":
				dur = completedStyle.Render(dur)
			}
		}
		line := ts + "  " + e.Message
		if dur != "" {
			line += "  [" + dur + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
