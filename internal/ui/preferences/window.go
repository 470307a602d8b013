package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the settings UI.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	onSave    func(model.Settings) error
	entries   map[string]*widget.Entry
	showError func(error, fyne.Window)
}

// New creates a settings window. onSave is called with validated settings;
// an error it returns is shown and the window stays open.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:    window,
		settings:  settings,
		onSave:    onSave,
		entries:   make(map[string]*widget.Entry, len(Fields)),
		showError: dialog.ShowError,
	}

	rows := []fyne.CanvasObject{
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	}
	for _, field := range Fields {
		entry := widget.NewEntry()
		entry.SetText(field.Format(settings))
		prefs.entries[field.Key] = entry
		rows = append(rows, container.NewBorder(nil, nil,
			widget.NewLabel(field.Label), widget.NewLabel(field.Unit), entry))
	}

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVBox(rows...)))
	window.Resize(fyne.NewSize(360, 260))
	window.SetCloseIntercept(prefs.handleCancel)

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values, e.g. after the settings file changed on disk.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	for _, field := range Fields {
		prefs.entries[field.Key].SetText(field.Format(settings))
	}
}

func (prefs *Window) values() map[string]string {
	values := make(map[string]string, len(prefs.entries))
	for key, entry := range prefs.entries {
		values[key] = entry.Text
	}
	return values
}

func (prefs *Window) handleSave() {
	settings, err := Parse(prefs.settings, prefs.values())
	if err != nil {
		prefs.showError(err, prefs.window)
		return
	}

	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.showError(err, prefs.window)
			return
		}
	}
	prefs.settings = settings
	prefs.window.Hide()
}

func (prefs *Window) handleCancel() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Hide()
}
