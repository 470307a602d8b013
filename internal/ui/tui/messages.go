package tui

import (
	"pomodoro/internal/alert"
	"pomodoro/internal/core/model"
)

type timeMsg struct {
	remaining int
	total     int
	phase     model.Phase
}

type runningMsg struct{ running bool }

type modeMsg struct{ phase model.Phase }

type countsMsg struct {
	completed int
	before    int
}

// confirmMsg carries the reply channel of a blocked ConfirmInterrupt call.
type confirmMsg struct{ reply chan<- bool }

type flashMsg struct{ message alert.Message }

type flashEndMsg struct{ seq int }
