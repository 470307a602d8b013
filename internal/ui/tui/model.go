// Package tui is the terminal front end: a Bubble Tea model fed by Presenter
// and driving the scheduler loop through Controls.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/display"
)

// Controls is the subset of the command loop the model drives. Every method
// must return without waiting for the scheduler.
type Controls interface {
	Start()
	Pause()
	Reset()
	Toggle()
	SwitchMode(model.Phase)
}

const flashDuration = 500 * time.Millisecond

var (
	phaseColors = map[model.Phase]lipgloss.Color{
		model.PhaseWork:       lipgloss.Color("#E5483B"),
		model.PhaseShortBreak: lipgloss.Color("#3FA34D"),
		model.PhaseLongBreak:  lipgloss.Color("#4A90D9"),
	}
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	clockStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 4)
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#E5483B")).Padding(0, 1)
	confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8BE42"))
	tabStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// Model is the root Bubble Tea model.
type Model struct {
	controls Controls
	editor   SettingsEditor
	keys     keyMap
	help     help.Model
	progress progress.Model

	phase     model.Phase
	running   bool
	remaining int
	total     int
	completed int
	before    int

	pending  chan<- bool
	form     *settingsForm
	banner   string
	flashing bool
	flashSeq int
	width    int
}

// New returns a model that sends user commands to controls. A nil editor
// disables the settings form.
func New(controls Controls, editor SettingsEditor) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	keys := defaultKeys()
	keys.Edit.SetEnabled(editor != nil)
	return Model{
		controls: controls,
		editor:   editor,
		keys:     keys,
		help:     help.New(),
		progress: bar,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = clampWidth(msg.Width - 8)
		return m, nil

	case timeMsg:
		m.remaining, m.total, m.phase = msg.remaining, msg.total, msg.phase
		return m, m.titleCmd()

	case runningMsg:
		m.running = msg.running
		return m, m.titleCmd()

	case modeMsg:
		m.phase = msg.phase
		return m, m.titleCmd()

	case countsMsg:
		m.completed, m.before = msg.completed, msg.before
		return m, nil

	case confirmMsg:
		if m.pending != nil {
			m.pending <- false
		}
		m.pending = msg.reply
		return m, nil

	case flashMsg:
		m.banner = msg.message.Body
		m.flashing = true
		m.flashSeq++
		seq := m.flashSeq
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashEndMsg{seq: seq} })

	case settingsLoadedMsg:
		if msg.err != nil {
			m.banner = "Settings unavailable: " + msg.err.Error()
			return m, nil
		}
		m.form = newSettingsForm(msg.settings)
		return m, textinput.Blink

	case flashEndMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.answer(false)
		return m, tea.Quit
	}

	if m.pending != nil {
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.answer(true)
		case key.Matches(msg, m.keys.No):
			m.answer(false)
		}
		return m, nil
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	m.banner = ""
	switch {
	case key.Matches(msg, m.keys.Start):
		m.controls.Start()
	case key.Matches(msg, m.keys.Pause):
		m.controls.Pause()
	case key.Matches(msg, m.keys.Toggle):
		m.controls.Toggle()
	case key.Matches(msg, m.keys.Reset):
		m.controls.Reset()
	case key.Matches(msg, m.keys.Work):
		m.controls.SwitchMode(model.PhaseWork)
	case key.Matches(msg, m.keys.Short):
		m.controls.SwitchMode(model.PhaseShortBreak)
	case key.Matches(msg, m.keys.Long):
		m.controls.SwitchMode(model.PhaseLongBreak)
	case key.Matches(msg, m.keys.Edit):
		if m.editor != nil {
			return m, loadSettings(m.editor)
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		return m, nil
	case key.Matches(msg, m.keys.Save):
		settings, err := m.form.parse()
		if err == nil {
			err = m.editor.SaveSettings(settings)
		}
		if err != nil {
			m.form.err = err.Error()
			return m, nil
		}
		m.form = nil
		m.banner = "Settings saved"
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.form.move(-1)
	}
	return m, m.form.update(msg)
}

func (m *Model) answer(ok bool) {
	if m.pending == nil {
		return
	}
	m.pending <- ok
	m.pending = nil
}

func (m Model) titleCmd() tea.Cmd {
	return tea.SetWindowTitle(display.WindowTitle(m.remaining, m.phase, m.running))
}

func (m Model) View() string {
	accent := phaseColors[m.phase]

	tabs := make([]string, 0, len(model.Phases))
	for _, phase := range model.Phases {
		style := tabStyle.Foreground(lipgloss.Color("#888888"))
		if phase == m.phase {
			style = tabStyle.Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(phaseColors[phase])
		}
		tabs = append(tabs, style.Render(phase.Label()))
	}

	clock := clockStyle.Foreground(accent)
	if m.flashing {
		clock = clock.Reverse(true)
	}

	state := "paused"
	if m.running {
		state = "running"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(display.AppTitle))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(clock.Render(display.Clock(m.remaining)))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(model.Progress(m.remaining, m.total)))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(display.Sessions(m.completed, m.before) + " · " + state))
	b.WriteString("\n\n")

	switch {
	case m.pending != nil:
		b.WriteString(confirmStyle.Render(display.ConfirmSwitchPrompt + " [y/n]"))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(confirmKeys{m.keys}))
	case m.form != nil:
		b.WriteString(m.form.view(m.editor.SettingsPath()))
		b.WriteString("\n")
		b.WriteString(m.help.View(formKeys{m.keys}))
	default:
		if m.banner != "" {
			b.WriteString(bannerStyle.Render(m.banner))
			b.WriteString("\n\n")
		}
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")
	return b.String()
}

func clampWidth(width int) int {
	switch {
	case width < 10:
		return 10
	case width > 60:
		return 60
	}
	return width
}
