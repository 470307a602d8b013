package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/model"
)

type recordingControls struct {
	commands []string
	switched []model.Phase
}

func (controls *recordingControls) Start()  { controls.commands = append(controls.commands, "start") }
func (controls *recordingControls) Pause()  { controls.commands = append(controls.commands, "pause") }
func (controls *recordingControls) Reset()  { controls.commands = append(controls.commands, "reset") }
func (controls *recordingControls) Toggle() { controls.commands = append(controls.commands, "toggle") }

func (controls *recordingControls) SwitchMode(phase model.Phase) {
	controls.switched = append(controls.switched, phase)
}

func runes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func TestKeysDriveControls(t *testing.T) {
	controls := &recordingControls{}
	m := New(controls, nil)

	for _, msg := range []tea.KeyMsg{runes("s"), runes("p"), {Type: tea.KeySpace, Runes: []rune{' '}}, runes("r"), runes("1"), runes("2"), runes("3")} {
		m, _ = update(t, m, msg)
	}

	assert.Equal(t, []string{"start", "pause", "toggle", "reset"}, controls.commands)
	assert.Equal(t, []model.Phase{model.PhaseWork, model.PhaseShortBreak, model.PhaseLongBreak}, controls.switched)
}

func TestRenderMessagesUpdateView(t *testing.T) {
	m := New(&recordingControls{}, nil)

	m, _ = update(t, m, modeMsg{phase: model.PhaseShortBreak})
	m, _ = update(t, m, timeMsg{remaining: 240, total: 300, phase: model.PhaseShortBreak})
	m, _ = update(t, m, runningMsg{running: true})
	m, _ = update(t, m, countsMsg{completed: 2, before: 4})

	view := m.View()
	assert.Contains(t, view, "04:00")
	assert.Contains(t, view, "Session 2 of 4")
	assert.Contains(t, view, "running")
	assert.Contains(t, view, "Short Break")
}

func TestRenderTimeSetsWindowTitle(t *testing.T) {
	m := New(&recordingControls{}, nil)
	m, _ = update(t, m, runningMsg{running: true})
	_, cmd := update(t, m, timeMsg{remaining: 1499, total: 1500, phase: model.PhaseWork})
	require.NotNil(t, cmd)
}

func TestConfirmAnswers(t *testing.T) {
	controls := &recordingControls{}
	m := New(controls, nil)

	reply := make(chan bool, 1)
	m, _ = update(t, m, confirmMsg{reply: reply})
	assert.Contains(t, m.View(), "Do you want to switch modes?")

	m, _ = update(t, m, runes("s"))
	assert.Empty(t, controls.commands, "commands are held while confirming")

	m, _ = update(t, m, runes("y"))
	assert.True(t, <-reply)
	assert.Nil(t, m.pending)

	reply = make(chan bool, 1)
	m, _ = update(t, m, confirmMsg{reply: reply})
	m, _ = update(t, m, runes("n"))
	assert.False(t, <-reply)
	assert.NotContains(t, m.View(), "Do you want to switch modes?")
}

func TestQuitDeclinesPendingConfirm(t *testing.T) {
	m := New(&recordingControls{}, nil)
	reply := make(chan bool, 1)
	m, _ = update(t, m, confirmMsg{reply: reply})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, <-reply)
}

func TestFlashShowsBannerUntilKey(t *testing.T) {
	m := New(&recordingControls{}, nil)
	m, cmd := update(t, m, flashMsg{message: alert.MessageFor(model.PhaseWork)})
	require.NotNil(t, cmd)
	assert.True(t, m.flashing)
	assert.Contains(t, m.View(), "Work session completed! Time for a break.")

	m, _ = update(t, m, flashEndMsg{seq: m.flashSeq})
	assert.False(t, m.flashing)
	assert.Contains(t, m.View(), "Time for a break.")

	m, _ = update(t, m, runes("?"))
	assert.NotContains(t, m.View(), "Time for a break.")
}

func TestStaleFlashEndIgnored(t *testing.T) {
	m := New(&recordingControls{}, nil)
	m, _ = update(t, m, flashMsg{message: alert.MessageFor(model.PhaseWork)})
	m, _ = update(t, m, flashMsg{message: alert.MessageFor(model.PhaseShortBreak)})
	m, _ = update(t, m, flashEndMsg{seq: 1})
	assert.True(t, m.flashing)
}

type capturingSender struct {
	msgs chan tea.Msg
}

func (sender *capturingSender) Send(msg tea.Msg) { sender.msgs <- msg }

func TestPresenterConfirmRoundTrip(t *testing.T) {
	sender := &capturingSender{msgs: make(chan tea.Msg, 1)}
	done := make(chan struct{})
	presenter := NewPresenter(sender, done)

	result := make(chan bool, 1)
	go func() { result <- presenter.ConfirmInterrupt() }()

	msg := (<-sender.msgs).(confirmMsg)
	msg.reply <- true

	select {
	case ok := <-result:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation not returned")
	}
}

func TestPresenterConfirmReleasedWhenProgramExits(t *testing.T) {
	sender := &capturingSender{msgs: make(chan tea.Msg, 1)}
	done := make(chan struct{})
	presenter := NewPresenter(sender, done)

	result := make(chan bool, 1)
	go func() { result <- presenter.ConfirmInterrupt() }()
	<-sender.msgs
	close(done)

	select {
	case ok := <-result:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation not released")
	}
}

func TestPresenterForwardsRenders(t *testing.T) {
	sender := &capturingSender{msgs: make(chan tea.Msg, 8)}
	presenter := NewPresenter(sender, nil)

	presenter.RenderTime(60, 300, model.PhaseShortBreak)
	presenter.RenderRunningState(true)
	presenter.RenderActiveMode(model.PhaseShortBreak)
	presenter.RenderSessionCounts(1, 4)
	presenter.Flash(alert.MessageFor(model.PhaseWork))

	assert.Equal(t, timeMsg{remaining: 60, total: 300, phase: model.PhaseShortBreak}, <-sender.msgs)
	assert.Equal(t, runningMsg{running: true}, <-sender.msgs)
	assert.Equal(t, modeMsg{phase: model.PhaseShortBreak}, <-sender.msgs)
	assert.Equal(t, countsMsg{completed: 1, before: 4}, <-sender.msgs)
	assert.IsType(t, flashMsg{}, <-sender.msgs)
}
