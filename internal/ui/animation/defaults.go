package animation

import "time"

// DefaultConfig returns a flash of roughly half a second.
func DefaultConfig() Config {
	return Config{
		Blinks: 2,
		On: Range{
			Min: 150 * time.Millisecond,
			Max: 150 * time.Millisecond,
		},
		Off: Range{
			Min: 100 * time.Millisecond,
			Max: 100 * time.Millisecond,
		},
	}
}
