package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"
)

// SettingsEditor reads and writes the timer settings behind the edit form.
// SaveSettings must not wait for the scheduler.
type SettingsEditor interface {
	Settings(ctx context.Context) (model.Settings, error)
	SaveSettings(model.Settings) error
	SettingsPath() string
}

const settingsLoadTimeout = 2 * time.Second

type settingsLoadedMsg struct {
	settings model.Settings
	err      error
}

// loadSettings runs off the update goroutine: the scheduler may be blocked
// on a confirmation that only Update can answer.
func loadSettings(editor SettingsEditor) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), settingsLoadTimeout)
		defer cancel()
		settings, err := editor.Settings(ctx)
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

type settingsForm struct {
	base   model.Settings
	inputs []textinput.Model
	focus  int
	err    string
}

func newSettingsForm(settings model.Settings) *settingsForm {
	inputs := make([]textinput.Model, len(preferences.Fields))
	for i, field := range preferences.Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 4
		input.Width = 6
		input.SetValue(field.Format(settings))
		inputs[i] = input
	}
	form := &settingsForm{base: settings, inputs: inputs}
	form.inputs[0].Focus()
	return form
}

func (form *settingsForm) move(delta int) tea.Cmd {
	form.inputs[form.focus].Blur()
	form.focus = (form.focus + delta + len(form.inputs)) % len(form.inputs)
	return form.inputs[form.focus].Focus()
}

func (form *settingsForm) values() map[string]string {
	values := make(map[string]string, len(form.inputs))
	for i, field := range preferences.Fields {
		values[field.Key] = form.inputs[i].Value()
	}
	return values
}

func (form *settingsForm) parse() (model.Settings, error) {
	return preferences.Parse(form.base, form.values())
}

func (form *settingsForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	form.inputs[form.focus], cmd = form.inputs[form.focus].Update(msg)
	return cmd
}

func (form *settingsForm) view(path string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	for i, field := range preferences.Fields {
		marker := "  "
		if i == form.focus {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%-18s %s %s\n", marker, field.Label, form.inputs[i].View(), subtleStyle.Render(field.Unit))
	}
	if form.err != "" {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(form.err))
		b.WriteString("\n")
	}
	if path != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("Saved to " + path))
		b.WriteString("\n")
	}
	return b.String()
}
