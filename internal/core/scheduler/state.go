package scheduler

import "pomodoro/internal/core/model"

// State is a point-in-time copy of the scheduler.
type State struct {
	Phase                   model.Phase
	Running                 bool
	RemainingSeconds        int
	TotalSeconds            int
	CompletedWorkSessions   int
	SessionsBeforeLongBreak int
}

// Progress returns the elapsed fraction of the current phase in [0, 1].
func (state State) Progress() float64 {
	return model.Progress(state.RemainingSeconds, state.TotalSeconds)
}
