// Package display holds the text formatting shared by the GUI, tray and
// terminal presenters.
package display

import (
	"fmt"

	"pomodoro/internal/core/model"
)

// AppTitle is the idle window title.
const AppTitle = "Pomodoro Timer"

// ConfirmSwitchPrompt is asked before abandoning a running phase.
const ConfirmSwitchPrompt = "Timer is running. Do you want to switch modes?"

// Clock formats seconds as MM:SS. Minutes are not capped at 59.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// WindowTitle is "(MM:SS) <phase> - Pomodoro Timer" while running, else AppTitle.
func WindowTitle(remainingSeconds int, phase model.Phase, running bool) string {
	if !running {
		return AppTitle
	}
	return fmt.Sprintf("(%s) %s - %s", Clock(remainingSeconds), phase.ShortLabel(), AppTitle)
}

// Sessions renders the "Session N of M" line.
func Sessions(completed, before int) string {
	return fmt.Sprintf("Session %d of %d", completed, before)
}

// Status is the one-line summary shown in the tray menu.
func Status(remainingSeconds int, phase model.Phase, running bool) string {
	status := fmt.Sprintf("%s %s", phase.ShortLabel(), Clock(remainingSeconds))
	if !running {
		status += " (paused)"
	}
	return status
}
