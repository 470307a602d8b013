package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/alert"
	"pomodoro/internal/core/model"
)

// Sender is satisfied by *tea.Program.
type Sender interface {
	Send(msg tea.Msg)
}

// Presenter forwards scheduler renders into a running Bubble Tea program.
// It also implements alert.Flasher.
type Presenter struct {
	sender Sender
	done   <-chan struct{}
}

// NewPresenter returns a presenter bound to sender. done is closed when the
// program exits so a pending confirmation can be released.
func NewPresenter(sender Sender, done <-chan struct{}) *Presenter {
	return &Presenter{sender: sender, done: done}
}

func (presenter *Presenter) RenderTime(remainingSeconds, totalSeconds int, phase model.Phase) {
	presenter.sender.Send(timeMsg{remaining: remainingSeconds, total: totalSeconds, phase: phase})
}

func (presenter *Presenter) RenderRunningState(running bool) {
	presenter.sender.Send(runningMsg{running: running})
}

func (presenter *Presenter) RenderActiveMode(phase model.Phase) {
	presenter.sender.Send(modeMsg{phase: phase})
}

func (presenter *Presenter) RenderSessionCounts(completedWorkSessions, sessionsBeforeLongBreak int) {
	presenter.sender.Send(countsMsg{completed: completedWorkSessions, before: sessionsBeforeLongBreak})
}

// ConfirmInterrupt asks the model and waits for y/n. It answers false once
// the program has exited.
func (presenter *Presenter) ConfirmInterrupt() bool {
	reply := make(chan bool, 1)
	presenter.sender.Send(confirmMsg{reply: reply})
	select {
	case ok := <-reply:
		return ok
	case <-presenter.done:
		return false
	}
}

func (presenter *Presenter) Flash(message alert.Message) {
	presenter.sender.Send(flashMsg{message: message})
}
