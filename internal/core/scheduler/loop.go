package scheduler

import (
	"context"
	"errors"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

// ErrLoopStopped is returned by Do once the loop has exited.
var ErrLoopStopped = errors.New("scheduler loop stopped")

const defaultQueueSize = 32

// Loop owns a Scheduler on a single goroutine. Commands from UI goroutines are
// queued and executed in order, interleaved with ticks.
type Loop struct {
	sched    *Scheduler
	commands chan func(*Scheduler)
	done     chan struct{}
	stopOnce sync.Once
	log      logging.Logger
}

// NewLoop wraps sched. queueSize bounds pending commands.
func NewLoop(sched *Scheduler, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Loop{
		sched:    sched,
		commands: make(chan func(*Scheduler), queueSize),
		done:     make(chan struct{}),
		log:      sched.log,
	}
}

// Run processes commands and ticks until ctx is cancelled. The scheduler is
// paused on exit so its ticker is released.
func (loop *Loop) Run(ctx context.Context) error {
	defer loop.stopOnce.Do(func() { close(loop.done) })
	defer loop.sched.Pause()

	for {
		select {
		case <-ctx.Done():
			return nil
		case command := <-loop.commands:
			command(loop.sched)
		case <-loop.sched.ticks():
			loop.sched.Tick()
		}
	}
}

// Done is closed after Run returns.
func (loop *Loop) Done() <-chan struct{} {
	return loop.done
}

// Post queues command without blocking. A full queue drops the command.
func (loop *Loop) Post(name string, command func(*Scheduler)) bool {
	select {
	case <-loop.done:
		return false
	default:
	}
	select {
	case loop.commands <- command:
		return true
	default:
		loop.log.Warn("command dropped (queue full)",
			logging.String("command", name),
			logging.Int("queue_cap", cap(loop.commands)))
		return false
	}
}

// Do runs command on the loop goroutine and waits for its result.
func (loop *Loop) Do(ctx context.Context, command func(*Scheduler) error) error {
	result := make(chan error, 1)
	wrapped := func(sched *Scheduler) {
		result <- command(sched)
	}
	select {
	case loop.commands <- wrapped:
	case <-loop.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-result:
		return err
	case <-loop.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the scheduler state as seen by the loop goroutine.
func (loop *Loop) Snapshot(ctx context.Context) (State, error) {
	var state State
	err := loop.Do(ctx, func(sched *Scheduler) error {
		state = sched.Snapshot()
		return nil
	})
	return state, err
}

func (loop *Loop) Start() { loop.Post("start", (*Scheduler).Start) }

func (loop *Loop) Pause() { loop.Post("pause", (*Scheduler).Pause) }

func (loop *Loop) Reset() { loop.Post("reset", (*Scheduler).Reset) }

func (loop *Loop) Refresh() { loop.Post("refresh", (*Scheduler).Refresh) }

// Toggle starts an idle timer and pauses a running one.
func (loop *Loop) Toggle() {
	loop.Post("toggle", func(sched *Scheduler) {
		if sched.running {
			sched.Pause()
			return
		}
		sched.Start()
	})
}

func (loop *Loop) SwitchMode(target model.Phase) {
	loop.Post("switch_mode", func(sched *Scheduler) {
		sched.SwitchMode(target)
	})
}

// UpdateSettings queues a settings change; rejected settings are logged by the scheduler.
func (loop *Loop) UpdateSettings(settings model.Settings) {
	loop.Post("update_settings", func(sched *Scheduler) {
		_ = sched.UpdateSettings(settings)
	})
}
