// Package timer is the Fyne main window: it renders the scheduler through the
// Presenter interface and forwards button presses to the command loop.
package timer

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/display"
	"pomodoro/internal/ui/overlay"
)

// Controls is the subset of the command loop the window drives. Every method
// must return without waiting for the scheduler.
type Controls interface {
	Start()
	Pause()
	Reset()
	SwitchMode(model.Phase)
}

var (
	clockColor = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	flashColor = color.NRGBA{R: 229, G: 72, B: 59, A: 255}
)

// Window is the main timer window.
type Window struct {
	window      fyne.Window
	controls    Controls
	popup       *overlay.Window
	engine      *animation.Engine
	onSettings  func()
	dispatch    func(func())
	confirm     func(title, message string, callback func(bool), parent fyne.Window)
	closed      context.Context
	stop        context.CancelFunc
	phaseLabel  *widget.Label
	clock       *canvas.Text
	progress    *widget.ProgressBar
	sessions    *widget.Label
	modes       map[model.Phase]*widget.Button
	startButton *widget.Button
	pauseButton *widget.Button
	resetButton *widget.Button

	// view state, touched only inside dispatch
	phase     model.Phase
	running   bool
	remaining int
}

// New builds the window. popup may be nil to disable the completion popup.
func New(app fyne.App, controls Controls, popup *overlay.Window, onSettings func()) *Window {
	window := app.NewWindow(display.AppTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	clock := canvas.NewText(display.Clock(0), clockColor)
	clock.Alignment = fyne.TextAlignCenter
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = 64

	timerWindow := &Window{
		window:     window,
		controls:   controls,
		popup:      popup,
		onSettings: onSettings,
		dispatch:   fyne.Do,
		confirm:    dialog.ShowConfirm,
		phaseLabel: widget.NewLabelWithStyle(model.PhaseWork.Label(), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		clock:      clock,
		progress:   widget.NewProgressBar(),
		sessions:   widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		modes:      make(map[model.Phase]*widget.Button, len(model.Phases)),
	}
	timerWindow.closed, timerWindow.stop = context.WithCancel(context.Background())
	timerWindow.progress.TextFormatter = func() string { return "" }
	timerWindow.engine = animation.New(animation.DefaultConfig(), timerWindow.highlight)

	modeButtons := make([]fyne.CanvasObject, 0, len(model.Phases))
	for _, phase := range model.Phases {
		phase := phase
		button := widget.NewButton(phase.Label(), func() { controls.SwitchMode(phase) })
		timerWindow.modes[phase] = button
		modeButtons = append(modeButtons, button)
	}

	timerWindow.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), controls.Start)
	timerWindow.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), controls.Pause)
	timerWindow.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), controls.Reset)
	timerWindow.pauseButton.Disable()
	settingsButton := widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		if timerWindow.onSettings != nil {
			timerWindow.onSettings()
		}
	})

	content := container.NewVBox(
		container.NewGridWithColumns(len(modeButtons), modeButtons...),
		timerWindow.phaseLabel,
		timerWindow.clock,
		timerWindow.progress,
		container.NewHBox(layout.NewSpacer(), timerWindow.startButton, timerWindow.pauseButton, timerWindow.resetButton, layout.NewSpacer()),
		timerWindow.sessions,
		container.NewHBox(layout.NewSpacer(), settingsButton),
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(window.Hide)

	return timerWindow
}

// Window exposes the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show raises the window.
func (timerWindow *Window) Show() {
	timerWindow.dispatch(func() {
		timerWindow.window.Show()
		timerWindow.window.RequestFocus()
	})
}

// Close releases any pending confirmation and stops the flash. Flashes
// requested afterwards return immediately.
func (timerWindow *Window) Close() {
	timerWindow.stop()
	timerWindow.engine.Stop()
}

func (timerWindow *Window) RenderTime(remainingSeconds, totalSeconds int, phase model.Phase) {
	timerWindow.dispatch(func() {
		timerWindow.remaining = remainingSeconds
		timerWindow.phase = phase
		timerWindow.clock.Text = display.Clock(remainingSeconds)
		timerWindow.clock.Refresh()
		timerWindow.progress.SetValue(model.Progress(remainingSeconds, totalSeconds))
		timerWindow.phaseLabel.SetText(phase.Label())
		timerWindow.refreshTitle()
	})
}

func (timerWindow *Window) RenderRunningState(running bool) {
	timerWindow.dispatch(func() {
		timerWindow.running = running
		if running {
			timerWindow.startButton.Disable()
			timerWindow.pauseButton.Enable()
		} else {
			timerWindow.startButton.Enable()
			timerWindow.pauseButton.Disable()
		}
		timerWindow.refreshTitle()
	})
}

func (timerWindow *Window) RenderActiveMode(phase model.Phase) {
	timerWindow.dispatch(func() {
		timerWindow.phase = phase
		for candidate, button := range timerWindow.modes {
			importance := widget.MediumImportance
			if candidate == phase {
				importance = widget.HighImportance
			}
			if button.Importance != importance {
				button.Importance = importance
				button.Refresh()
			}
		}
		timerWindow.phaseLabel.SetText(phase.Label())
		timerWindow.refreshTitle()
	})
}

func (timerWindow *Window) RenderSessionCounts(completedWorkSessions, sessionsBeforeLongBreak int) {
	timerWindow.dispatch(func() {
		timerWindow.sessions.SetText(display.Sessions(completedWorkSessions, sessionsBeforeLongBreak))
	})
}

// ConfirmInterrupt shows a confirmation dialog and blocks the caller until it
// is answered. The caller must not be the UI goroutine.
func (timerWindow *Window) ConfirmInterrupt() bool {
	answer := make(chan bool, 1)
	timerWindow.dispatch(func() {
		timerWindow.window.Show()
		timerWindow.window.RequestFocus()
		timerWindow.confirm("Switch mode", display.ConfirmSwitchPrompt, func(ok bool) {
			answer <- ok
		}, timerWindow.window)
	})
	select {
	case ok := <-answer:
		return ok
	case <-timerWindow.closed.Done():
		return false
	}
}

// Flash blinks the clock and shows the completion popup.
func (timerWindow *Window) Flash(message alert.Message) {
	if timerWindow.closed.Err() != nil {
		return
	}
	<-timerWindow.engine.Flash(timerWindow.closed)
	if timerWindow.closed.Err() == nil && timerWindow.popup != nil {
		timerWindow.popup.Show(message)
	}
}

func (timerWindow *Window) highlight(on bool) {
	if timerWindow.closed.Err() != nil {
		return
	}
	timerWindow.dispatch(func() {
		if on {
			timerWindow.clock.Color = flashColor
		} else {
			timerWindow.clock.Color = clockColor
		}
		timerWindow.clock.Refresh()
	})
}

func (timerWindow *Window) refreshTitle() {
	timerWindow.window.SetTitle(display.WindowTitle(timerWindow.remaining, timerWindow.phase, timerWindow.running))
}
