// Package app assembles the settings store, scheduler, command loop and
// settings watcher shared by the GUI and terminal front ends.
package app

import (
	"context"
	"errors"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/scheduler"
	"pomodoro/internal/logging"
	"pomodoro/internal/storage"
)

// Options configures App.
type Options struct {
	SettingsPath string
	Logger       logging.Logger
	Clock        scheduler.Clock
	TickInterval time.Duration
	// Phase is entered once the loop starts; the zero value is Work.
	Phase model.Phase
	// Watch enables hot reload of the settings file.
	Watch bool
}

// App owns the scheduler loop and its settings.
type App struct {
	store    *storage.SettingsStore
	settings model.Settings
	loop     *scheduler.Loop
	log      logging.Logger
	phase    model.Phase
	watch    bool
}

// New loads settings and builds an idle scheduler around presenter and
// signaler. An unreadable settings file is logged and the defaults are used.
func New(options Options, presenter scheduler.Presenter, signaler scheduler.Signaler) (*App, error) {
	log := options.Logger.With(logging.String("component", "app"))
	store := storage.NewSettingsStore(options.SettingsPath, options.Logger.With(logging.String("component", "settings")))

	settings, err := store.Load()
	if err != nil {
		log.Warn("settings file ignored", logging.String("path", store.Path()), logging.Err(err))
	}

	sched, err := scheduler.New(settings, presenter, signaler, scheduler.Options{
		Clock:        options.Clock,
		TickInterval: options.TickInterval,
		Logger:       options.Logger.With(logging.String("component", "scheduler")),
	})
	if err != nil {
		return nil, err
	}

	return &App{
		store:    store,
		settings: settings,
		loop:     scheduler.NewLoop(sched, 0),
		log:      log,
		phase:    options.Phase,
		watch:    options.Watch,
	}, nil
}

// Loop returns the command loop; it satisfies the front ends' Controls.
func (app *App) Loop() *scheduler.Loop {
	return app.loop
}

// InitialSettings returns the settings the scheduler was created with.
func (app *App) InitialSettings() model.Settings {
	return app.settings
}

// SettingsPath returns the settings file location.
func (app *App) SettingsPath() string {
	return app.store.Path()
}

// Settings returns the settings currently applied by the scheduler.
func (app *App) Settings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	err := app.loop.Do(ctx, func(sched *scheduler.Scheduler) error {
		settings = sched.Settings()
		return nil
	})
	return settings, err
}

// SaveSettings persists settings and applies them. It never waits for the
// loop, so it is safe on the UI goroutine.
func (app *App) SaveSettings(settings model.Settings) error {
	if err := app.store.Save(settings); err != nil {
		return err
	}
	app.loop.UpdateSettings(settings)
	app.log.Info("settings saved",
		logging.Int("work_minutes", settings.WorkMinutes),
		logging.Int("short_break_minutes", settings.ShortBreakMinutes),
		logging.Int("long_break_minutes", settings.LongBreakMinutes),
		logging.Int("sessions_before_long_break", settings.SessionsBeforeLongBreak))
	return nil
}

// Run drives the scheduler until ctx is cancelled. onReload, if non-nil, is
// called with settings picked up from the file watcher after they have been
// queued for the scheduler.
func (app *App) Run(ctx context.Context, onReload func(model.Settings)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchDone := make(chan struct{})
	if app.watch {
		go func() {
			defer close(watchDone)
			err := app.store.Watch(ctx, func(settings model.Settings) {
				app.loop.UpdateSettings(settings)
				app.logReload(ctx)
				if onReload != nil {
					onReload(settings)
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				app.log.Warn("settings watcher stopped", logging.Err(err))
			}
		}()
	} else {
		close(watchDone)
	}

	app.loop.Refresh()
	if app.phase != model.PhaseWork {
		app.loop.SwitchMode(app.phase)
	}
	app.log.Info("scheduler started", logging.String("settings", app.store.Path()))
	err := app.loop.Run(ctx)
	cancel()
	<-watchDone
	app.log.Info("scheduler stopped")
	return err
}

func (app *App) logReload(ctx context.Context) {
	state, err := app.loop.Snapshot(ctx)
	if err != nil {
		app.log.Debug("settings reloaded", logging.Err(err))
		return
	}
	app.log.Info("settings reloaded",
		logging.Stringer("phase", state.Phase),
		logging.Bool("running", state.Running),
		logging.Int("remaining_seconds", state.RemainingSeconds),
		logging.Int("sessions_before_long_break", state.SessionsBeforeLongBreak))
}
