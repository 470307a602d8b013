package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func startLoop(t *testing.T, settings model.Settings) (*Loop, *fakeClock, context.CancelFunc) {
	t.Helper()
	signaler := &mockSignaler{}
	signaler.On("Announce", mock.Anything).Return()
	clock := &fakeClock{}
	sched, err := New(settings, newRecordingPresenter(true), signaler, Options{Clock: clock})
	require.NoError(t, err)

	loop := NewLoop(sched, 8)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-loop.Done()
	})
	return loop, clock, cancel
}

func snapshot(t *testing.T, loop *Loop) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	state, err := loop.Snapshot(ctx)
	require.NoError(t, err)
	return state
}

func TestLoopDeliversTicks(t *testing.T) {
	loop, clock, _ := startLoop(t, model.DefaultSettings())

	loop.Start()
	require.Eventually(t, func() bool { return snapshot(t, loop).Running }, time.Second, 5*time.Millisecond)

	clock.latest().ch <- time.Now()
	require.Eventually(t, func() bool {
		return snapshot(t, loop).RemainingSeconds == 1499
	}, time.Second, 5*time.Millisecond)
}

func TestLoopIgnoresTicksAfterPause(t *testing.T) {
	loop, clock, _ := startLoop(t, model.DefaultSettings())

	loop.Start()
	require.Eventually(t, func() bool { return snapshot(t, loop).Running }, time.Second, 5*time.Millisecond)
	ticker := clock.latest()

	loop.Pause()
	require.Eventually(t, func() bool { return !snapshot(t, loop).Running }, time.Second, 5*time.Millisecond)

	ticker.ch <- time.Now()
	time.Sleep(20 * time.Millisecond)
	state := snapshot(t, loop)
	assert.Equal(t, 1500, state.RemainingSeconds)
	assert.True(t, ticker.stopped)
}

func TestLoopToggleAndSwitch(t *testing.T) {
	loop, clock, _ := startLoop(t, model.DefaultSettings())

	loop.Toggle()
	loop.SwitchMode(model.PhaseLongBreak)
	loop.Toggle()

	require.Eventually(t, func() bool {
		state := snapshot(t, loop)
		return state.Phase == model.PhaseLongBreak && state.Running
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, clock.created())
}

func TestLoopUpdateSettingsAndReset(t *testing.T) {
	loop, _, _ := startLoop(t, model.DefaultSettings())

	loop.UpdateSettings(model.Settings{WorkMinutes: 0})
	loop.UpdateSettings(model.Settings{WorkMinutes: 10, ShortBreakMinutes: 2, LongBreakMinutes: 5, SessionsBeforeLongBreak: 3})
	loop.Reset()
	loop.Refresh()

	require.Eventually(t, func() bool {
		state := snapshot(t, loop)
		return state.TotalSeconds == 600 && state.SessionsBeforeLongBreak == 3
	}, time.Second, 5*time.Millisecond)
}

func TestLoopDoReturnsCommandError(t *testing.T) {
	loop, _, _ := startLoop(t, model.DefaultSettings())

	err := loop.Do(context.Background(), func(sched *Scheduler) error {
		return sched.UpdateSettings(model.Settings{})
	})
	assert.True(t, errors.Is(err, model.ErrInvalidSettings))
}

func TestLoopStopsOnCancel(t *testing.T) {
	loop, clock, cancel := startLoop(t, model.DefaultSettings())

	loop.Start()
	require.Eventually(t, func() bool { return snapshot(t, loop).Running }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	assert.Empty(t, clock.active())
	assert.False(t, loop.Post("start", (*Scheduler).Start))
	assert.ErrorIs(t, loop.Do(context.Background(), func(*Scheduler) error { return nil }), ErrLoopStopped)
}
