package animation

import "time"

// Step is one frame of a sequence: the highlight state and how long to hold it.
type Step struct {
	Highlight bool
	Hold      Range
}

// Sequence is an ordered list of steps played once.
type Sequence []Step

// Duration returns the minimum time the sequence takes.
func (sequence Sequence) Duration() time.Duration {
	var total time.Duration
	for _, step := range sequence {
		total += step.Hold.Min
	}
	return total
}

// FlashSequence alternates highlight on and off for config.Blinks cycles.
func FlashSequence(config Config) Sequence {
	sequence := make(Sequence, 0, config.Blinks*2)
	for i := 0; i < config.Blinks; i++ {
		sequence = append(sequence,
			Step{Highlight: true, Hold: config.On},
			Step{Highlight: false, Hold: config.Off},
		)
	}
	return sequence
}
