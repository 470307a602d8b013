package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pomodoro/internal/alert"
	"pomodoro/internal/app"
	"pomodoro/internal/logging"
	"pomodoro/internal/ui/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := setup(opts, true)
			if err != nil {
				return err
			}
			defer rt.close()
			return runTUI(rt)
		},
	}
}

func runTUI(rt *environment) error {
	log := rt.log

	controller := &app.Controller{}
	program := tea.NewProgram(tui.New(controller, controller), tea.WithAltScreen())
	programDone := make(chan struct{})
	presenter := tui.NewPresenter(program, programDone)

	// Desktop notifications need the GUI; the terminal gets sound and the flash banner.
	rt.cfg.Alerts.Notification = false
	var flasher alert.Flasher
	if rt.cfg.Alerts.Flash {
		flasher = presenter
	}
	fanout := alert.NewFanout(log.With(logging.String("component", "alert")),
		alertChannels(rt, nil, flasher)...)

	core, err := app.New(app.Options{
		SettingsPath: rt.settingsPath,
		Logger:       log,
		Phase:        rt.phase,
		Watch:        true,
	}, presenter, fanout)
	if err != nil {
		return err
	}
	controller.Bind(core)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- core.Run(ctx, nil) }()

	_, runErr := program.Run()
	close(programDone)
	cancel()
	err = <-runDone
	fanout.Close()

	if runErr != nil {
		return fmt.Errorf("running terminal ui: %w", runErr)
	}
	return err
}
