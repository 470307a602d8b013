package app

import (
	"context"
	"errors"
	"sync/atomic"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/scheduler"
)

// ErrNotBound is returned by Controller settings calls made before Bind.
var ErrNotBound = errors.New("controller not bound")

// Controller forwards UI commands to an App bound after construction, so
// presenters that need controls can be built before the scheduler.
// Commands issued before Bind are dropped.
type Controller struct {
	app atomic.Pointer[App]
}

// Bind attaches app.
func (controller *Controller) Bind(app *App) {
	controller.app.Store(app)
}

func (controller *Controller) with(fn func(*scheduler.Loop)) {
	if app := controller.app.Load(); app != nil {
		fn(app.loop)
	}
}

func (controller *Controller) Start()  { controller.with((*scheduler.Loop).Start) }
func (controller *Controller) Pause()  { controller.with((*scheduler.Loop).Pause) }
func (controller *Controller) Reset()  { controller.with((*scheduler.Loop).Reset) }
func (controller *Controller) Toggle() { controller.with((*scheduler.Loop).Toggle) }

func (controller *Controller) SwitchMode(phase model.Phase) {
	controller.with(func(loop *scheduler.Loop) { loop.SwitchMode(phase) })
}

// Settings waits for the settings currently applied by the scheduler.
func (controller *Controller) Settings(ctx context.Context) (model.Settings, error) {
	app := controller.app.Load()
	if app == nil {
		return model.Settings{}, ErrNotBound
	}
	return app.Settings(ctx)
}

// SaveSettings persists and applies settings without waiting for the loop.
func (controller *Controller) SaveSettings(settings model.Settings) error {
	app := controller.app.Load()
	if app == nil {
		return ErrNotBound
	}
	return app.SaveSettings(settings)
}

// SettingsPath is the settings file location, or empty before Bind.
func (controller *Controller) SettingsPath() string {
	if app := controller.app.Load(); app != nil {
		return app.SettingsPath()
	}
	return ""
}
