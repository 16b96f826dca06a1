package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/svxdash/internal/client"
	"github.com/five82/svxdash/internal/control"
)

// ctlCmd drives a running serve instance over its HTTP API.
func ctlCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "ctl",
		Short: "Control a running svxdash API",
	}
	cmd.PersistentFlags().StringVar(&remote, "remote", "", "svxdash API address (default 127.0.0.1:8080)")

	newClient := func() (*client.Client, error) {
		return client.NewClient(remote)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "talkers",
		Short: "List who is on air and recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			talkers, err := c.FetchTalkers(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(talkers.Active) == 0 {
				fmt.Fprintln(out, "Nobody on air")
			}
			for _, s := range talkers.Active {
				fmt.Fprintf(out, "ON AIR  TG %-8s %-10s %s\n", s.TG, s.Callsign, s.Duration)
			}
			for _, s := range talkers.Recent {
				fmt.Fprintf(out, "        TG %-8s %-10s %s\n", s.TG, s.Callsign, s.Duration)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dtmf DIGITS",
		Short: "Send DTMF digits to the reflector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			return c.SendDTMF(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "ptt on|off",
		Short:     "Key or release the transmitter",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := pttValue(args[0])
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			return c.SetPTT(cmd.Context(), value)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "system ACTION",
		Short:     "Run a system action (restart, stop, shutdown, reboot)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: control.ActionNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.SystemAction(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s requested\n", args[0])
			return nil
		},
	})

	return cmd
}

func pttValue(arg string) (string, error) {
	switch arg {
	case "on", "1":
		return "1", nil
	case "off", "0":
		return "0", nil
	default:
		return "", fmt.Errorf("ptt: want on or off, got %q", arg)
	}
}
