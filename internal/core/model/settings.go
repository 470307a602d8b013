package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings indicates a settings value outside its allowed range.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings contains the user-editable timer configuration.
type Settings struct {
	WorkMinutes             int
	ShortBreakMinutes       int
	LongBreakMinutes        int
	SessionsBeforeLongBreak int
}

// DefaultSettings returns the classic 25/5/15 cadence with a long break every fourth session.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:             25,
		ShortBreakMinutes:       5,
		LongBreakMinutes:        15,
		SessionsBeforeLongBreak: 4,
	}
}

// Validate reports the first non-positive field.
func (settings Settings) Validate() error {
	switch {
	case settings.WorkMinutes <= 0:
		return fmt.Errorf("%w: work minutes must be positive, got %d", ErrInvalidSettings, settings.WorkMinutes)
	case settings.ShortBreakMinutes <= 0:
		return fmt.Errorf("%w: short break minutes must be positive, got %d", ErrInvalidSettings, settings.ShortBreakMinutes)
	case settings.LongBreakMinutes <= 0:
		return fmt.Errorf("%w: long break minutes must be positive, got %d", ErrInvalidSettings, settings.LongBreakMinutes)
	case settings.SessionsBeforeLongBreak < 1:
		return fmt.Errorf("%w: sessions before long break must be at least 1, got %d", ErrInvalidSettings, settings.SessionsBeforeLongBreak)
	}
	return nil
}

// Minutes returns the configured length of phase in minutes.
func (settings Settings) Minutes(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return settings.ShortBreakMinutes
	case PhaseLongBreak:
		return settings.LongBreakMinutes
	default:
		return settings.WorkMinutes
	}
}

// Seconds returns the configured length of phase in whole seconds.
func (settings Settings) Seconds(phase Phase) int {
	return settings.Minutes(phase) * 60
}

// DurationOf returns the configured length of phase.
func (settings Settings) DurationOf(phase Phase) time.Duration {
	return time.Duration(settings.Seconds(phase)) * time.Second
}

// Progress is the elapsed fraction of a phase in [0, 1]. A non-positive
// total counts as finished.
func Progress(remainingSeconds, totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return 1
	}
	progress := float64(totalSeconds-remainingSeconds) / float64(totalSeconds)
	switch {
	case progress < 0:
		return 0
	case progress > 1:
		return 1
	}
	return progress
}
