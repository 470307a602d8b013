package main

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"pomodoro/internal/alert"
	"pomodoro/internal/app"
	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/scheduler"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/ui/overlay"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

func newGUICmd(opts *rootOptions) *cobra.Command {
	var hidden bool
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Run the desktop timer (default)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			rt, err := setup(opts, false)
			if err != nil {
				return err
			}
			defer rt.close()
			return runGUI(rt, hidden || rt.cfg.StartHidden)
		},
	}
	cmd.Flags().BoolVar(&hidden, "hidden", false, "start minimised to the system tray")
	return cmd
}

func runGUI(rt *environment, hidden bool) error {
	log := rt.log

	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Info("already running; raising existing window", logging.Err(err))
			return platform.RequestShow(config.AppName)
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("app.pomodoro.timer")
	fyneApp.SetIcon(resources.MustLogo(resources.LogoActive))

	controller := &app.Controller{}
	var prefsWindow *preferences.Window

	popup := overlay.New(fyneApp, overlay.DefaultConfig())
	timerWindow := timer.New(fyneApp, controller, popup, func() {
		if prefsWindow != nil {
			prefsWindow.Show()
		}
	})
	presenters := scheduler.Presenters{timerWindow}

	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		presenters = append(presenters, tray.New(desktopApp, tray.Callbacks{
			OnToggle:     controller.Toggle,
			OnReset:      controller.Reset,
			OnSwitchMode: controller.SwitchMode,
			OnShowWindow: timerWindow.Show,
			OnPreferences: func() {
				if prefsWindow != nil {
					prefsWindow.Show()
				}
			},
			OnQuit: fyneApp.Quit,
		}))
	} else {
		log.Info("system tray unsupported; closing the window quits")
		timerWindow.Window().SetCloseIntercept(nil)
		timerWindow.Window().SetMaster()
		hidden = false
	}

	fanout := alert.NewFanout(log.With(logging.String("component", "alert")),
		alertChannels(rt, fyneApp, timerWindow)...)

	core, err := app.New(app.Options{
		SettingsPath: rt.settingsPath,
		Logger:       log,
		Phase:        rt.phase,
		Watch:        true,
	}, presenters, fanout)
	if err != nil {
		return err
	}
	controller.Bind(core)
	prefsWindow = preferences.New(fyneApp, core.InitialSettings(), core.SaveSettings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go guard.Serve(timerWindow.Show)

	runDone := make(chan error, 1)
	go func() {
		runDone <- core.Run(ctx, func(settings model.Settings) {
			fyne.Do(func() { prefsWindow.UpdateSettings(settings) })
		})
	}()

	if !hidden {
		timerWindow.Window().Show()
	}
	fyneApp.Run()

	cancel()
	timerWindow.Close()
	err = <-runDone
	fanout.Close()
	return err
}

func alertChannels(rt *environment, fyneApp fyne.App, flasher alert.Flasher) []alert.Channel {
	var channels []alert.Channel
	if rt.cfg.Alerts.Sound {
		channels = append(channels, alert.NewSound(platform.NewSoundPlayer(), alert.CompletionTone()))
	}
	if rt.cfg.Alerts.Notification && fyneApp != nil {
		channels = append(channels, alert.NewDesktop(fyneApp))
	}
	if rt.cfg.Alerts.Flash && flasher != nil {
		channels = append(channels, alert.NewFlash(flasher))
	}
	return channels
}
