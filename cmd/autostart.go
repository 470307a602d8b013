package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
)

func newAutostartCmd(opts *rootOptions) *cobra.Command {
	autostart := &cobra.Command{Use: "autostart", Short: "Manage launching the timer at login"}

	autostart.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start the timer hidden in the tray at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer rt.close()

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			entry := platform.Entry{AppName: displayName, ExecPath: execPath, Args: []string{"gui", "--hidden"}}
			if err := rt.service.EnableAutostart(entry); err != nil {
				return err
			}
			rt.log.Info("autostart enabled", logging.String("exec", execPath))
			fmt.Fprintln(cmd.OutOrStdout(), "autostart enabled")
			return nil
		},
	})

	autostart.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop launching the timer at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.service.DisableAutostart(displayName); err != nil {
				return err
			}
			rt.log.Info("autostart disabled")
			fmt.Fprintln(cmd.OutOrStdout(), "autostart disabled")
			return nil
		},
	})

	return autostart
}
