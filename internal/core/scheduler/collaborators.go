package scheduler

import "pomodoro/internal/core/model"

// Presenter reflects scheduler state to the user.
//
// All methods are invoked from the goroutine that owns the scheduler.
// ConfirmInterrupt may block until the user decides.
type Presenter interface {
	RenderTime(remainingSeconds, totalSeconds int, phase model.Phase)
	RenderRunningState(running bool)
	RenderActiveMode(phase model.Phase)
	ConfirmInterrupt() bool
	RenderSessionCounts(completedWorkSessions, sessionsBeforeLongBreak int)
}

// Signaler announces the end of a phase. Implementations must not block
// and must swallow their own delivery failures.
type Signaler interface {
	Announce(finished model.Phase)
}

// SignalerFunc adapts a function to Signaler.
type SignalerFunc func(model.Phase)

func (fn SignalerFunc) Announce(finished model.Phase) { fn(finished) }

// Presenters fans render calls out to every presenter. Only the first
// presenter is asked to confirm interrupts.
type Presenters []Presenter

func (presenters Presenters) RenderTime(remainingSeconds, totalSeconds int, phase model.Phase) {
	for _, presenter := range presenters {
		presenter.RenderTime(remainingSeconds, totalSeconds, phase)
	}
}

func (presenters Presenters) RenderRunningState(running bool) {
	for _, presenter := range presenters {
		presenter.RenderRunningState(running)
	}
}

func (presenters Presenters) RenderActiveMode(phase model.Phase) {
	for _, presenter := range presenters {
		presenter.RenderActiveMode(phase)
	}
}

func (presenters Presenters) ConfirmInterrupt() bool {
	if len(presenters) == 0 {
		return true
	}
	return presenters[0].ConfirmInterrupt()
}

func (presenters Presenters) RenderSessionCounts(completedWorkSessions, sessionsBeforeLongBreak int) {
	for _, presenter := range presenters {
		presenter.RenderSessionCounts(completedWorkSessions, sessionsBeforeLongBreak)
	}
}

type nopPresenter struct{}

func (nopPresenter) RenderTime(int, int, model.Phase) {}
func (nopPresenter) RenderRunningState(bool)          {}
func (nopPresenter) RenderActiveMode(model.Phase)     {}
func (nopPresenter) ConfirmInterrupt() bool           { return true }
func (nopPresenter) RenderSessionCounts(int, int)     {}
