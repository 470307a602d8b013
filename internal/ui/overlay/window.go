package overlay

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/alert"
)

// Config defines popup visuals.
type Config struct {
	Opacity  uint8
	AutoHide time.Duration
}

// DefaultConfig keeps the popup up for eight seconds.
func DefaultConfig() Config {
	return Config{Opacity: 235, AutoHide: 8 * time.Second}
}

// Window is the completion popup shown when a phase ends.
type Window struct {
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	titleLabel *canvas.Text
	bodyLabel  *widget.Label
	okButton   *widget.Button

	mu        sync.Mutex
	hideTimer *time.Timer
	dispatch  func(func())
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the popup window; it stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(alert.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 32, G: 32, B: 36, A: config.Opacity})

	titleLabel := canvas.NewText(alert.Title, color.NRGBA{R: 229, G: 72, B: 59, A: 255})
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 18

	bodyLabel := widget.NewLabel("")
	bodyLabel.Alignment = fyne.TextAlignCenter
	bodyLabel.Wrapping = fyne.TextWrapWord

	okButton := widget.NewButton("OK", nil)
	okButton.Importance = widget.HighImportance

	content := container.NewPadded(container.NewVBox(
		titleLabel,
		bodyLabel,
		container.NewHBox(layout.NewSpacer(), okButton, layout.NewSpacer()),
	))
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(360, 160))

	popup := &Window{
		window:     window,
		config:     config,
		background: background,
		titleLabel: titleLabel,
		bodyLabel:  bodyLabel,
		okButton:   okButton,
		dispatch:   fyne.Do,
	}
	okButton.OnTapped = popup.hideNow
	window.SetCloseIntercept(popup.hideNow)
	return popup
}

// Show displays message and schedules the auto-hide. Safe from any goroutine.
func (popup *Window) Show(message alert.Message) {
	popup.dispatch(func() {
		popup.titleLabel.Text = message.Title
		popup.titleLabel.Refresh()
		popup.bodyLabel.SetText(message.Body)
		popup.window.CenterOnScreen()
		popup.window.Show()
		popup.window.RequestFocus()
		popup.applyNativeOpacity(popup.config.Opacity)
	})

	if popup.config.AutoHide <= 0 {
		return
	}
	popup.mu.Lock()
	defer popup.mu.Unlock()
	if popup.hideTimer != nil {
		popup.hideTimer.Stop()
	}
	popup.hideTimer = time.AfterFunc(popup.config.AutoHide, popup.Hide)
}

// Hide closes the popup. Safe from any goroutine.
func (popup *Window) Hide() {
	popup.dispatch(popup.hideNow)
}

// Message returns the text currently displayed.
func (popup *Window) Message() string {
	return popup.bodyLabel.Text
}

func (popup *Window) hideNow() {
	popup.mu.Lock()
	if popup.hideTimer != nil {
		popup.hideTimer.Stop()
		popup.hideTimer = nil
	}
	popup.mu.Unlock()
	popup.window.Hide()
}
