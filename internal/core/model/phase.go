package model

import (
	"fmt"
	"strings"
)

// Phase identifies the active segment of the cycle.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

// Phases lists every phase in display order.
var Phases = []Phase{PhaseWork, PhaseShortBreak, PhaseLongBreak}

func (phase Phase) String() string {
	switch phase {
	case PhaseWork:
		return "work"
	case PhaseShortBreak:
		return "short-break"
	case PhaseLongBreak:
		return "long-break"
	default:
		return fmt.Sprintf("phase(%d)", int(phase))
	}
}

// Label returns the human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Work Session"
	}
}

// ShortLabel is the compact name used in titles and menus.
func (phase Phase) ShortLabel() string {
	if phase == PhaseWork {
		return "Work"
	}
	return phase.Label()
}

// IsBreak reports whether phase is a short or long break.
func (phase Phase) IsBreak() bool {
	return phase == PhaseShortBreak || phase == PhaseLongBreak
}

// Valid reports whether phase is one of the known phases.
func (phase Phase) Valid() bool {
	return phase >= PhaseWork && phase <= PhaseLongBreak
}

// ParsePhase accepts the String form as well as the underscore variant.
func ParsePhase(value string) (Phase, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-")
	for _, phase := range Phases {
		if phase.String() == normalized {
			return phase, nil
		}
	}
	return PhaseWork, fmt.Errorf("unknown phase %q", value)
}
