package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type highlightRecorder struct {
	mu     sync.Mutex
	states []bool
}

func (recorder *highlightRecorder) set(on bool) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.states = append(recorder.states, on)
}

func (recorder *highlightRecorder) snapshot() []bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]bool(nil), recorder.states...)
}

func quickConfig() Config {
	return Config{
		Blinks: 2,
		On:     Range{Min: time.Millisecond, Max: time.Millisecond},
		Off:    Range{Min: time.Millisecond, Max: time.Millisecond},
	}
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sequence did not finish")
	}
}

func TestFlashAlternatesAndClears(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(quickConfig(), recorder.set)

	waitDone(t, engine.Flash(context.Background()))

	assert.Equal(t, []bool{true, false, true, false, false}, recorder.snapshot())
}

func TestStopClearsHighlight(t *testing.T) {
	recorder := &highlightRecorder{}
	config := quickConfig()
	config.On = Range{Min: time.Hour, Max: time.Hour}
	engine := New(config, recorder.set)

	done := engine.Flash(context.Background())
	engine.Stop()
	waitDone(t, done)

	states := recorder.snapshot()
	require.NotEmpty(t, states)
	assert.False(t, states[len(states)-1])
}

func TestNewSequenceCancelsPrevious(t *testing.T) {
	recorder := &highlightRecorder{}
	engine := New(quickConfig(), recorder.set)

	first := engine.Play(context.Background(), Sequence{{Highlight: true, Hold: Range{Min: time.Hour}}})
	second := engine.Flash(context.Background())

	waitDone(t, first)
	waitDone(t, second)
}

func TestDefaultFlashIsAboutHalfASecond(t *testing.T) {
	total := FlashSequence(DefaultConfig()).Duration()
	assert.InDelta(t, 500*time.Millisecond, total, float64(100*time.Millisecond))
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	assert.Equal(t, time.Second, fixed.Random(rng))

	span := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 50; i++ {
		value := span.Random(rng)
		assert.GreaterOrEqual(t, value, time.Second)
		assert.Less(t, value, 2*time.Second)
	}
}
