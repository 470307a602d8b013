package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains flash timing values.
type Config struct {
	Blinks int
	On     Range
	Off    Range
}

// Engine plays highlight sequences. Starting a new sequence cancels the
// previous one, and the highlight is always cleared when a sequence ends.
type Engine struct {
	mu        sync.Mutex
	config    Config
	highlight func(bool)
	cancel    context.CancelFunc
	rng       *rand.Rand
}

// New creates an engine that reports highlight changes to highlight.
func New(config Config, highlight func(bool)) *Engine {
	return &Engine{
		config:    config,
		highlight: highlight,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Flash plays FlashSequence for the engine's config. The returned channel
// closes once the highlight has been cleared.
func (engine *Engine) Flash(ctx context.Context) <-chan struct{} {
	return engine.Play(ctx, FlashSequence(engine.config))
}

// Play runs sequence on its own goroutine.
func (engine *Engine) Play(ctx context.Context, sequence Sequence) <-chan struct{} {
	done := make(chan struct{})
	engine.start(ctx, func(runCtx context.Context) {
		defer close(done)
		defer engine.highlight(false)
		for _, step := range sequence {
			engine.highlight(step.Highlight)
			if !sleepWithContext(runCtx, step.Hold.Random(engine.rng)) {
				return
			}
		}
	})
	return done
}

// Stop terminates any active sequence.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go func() {
		defer cancel()
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
