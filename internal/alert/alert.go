// Package alert delivers end-of-session signals.
//
// A Fanout implements the scheduler's Signaler: each configured Channel
// (sound, desktop notification, visual flash) is delivered on its own goroutine
// and failures are logged, never returned to the scheduler.
package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

// Title is used for desktop notifications and popups.
const Title = "Pomodoro Timer"

const defaultDeliveryTimeout = 10 * time.Second

// Message describes a finished phase.
type Message struct {
	Finished model.Phase
	Title    string
	Body     string
}

// MessageFor returns the completion message for the phase that just ended.
func MessageFor(finished model.Phase) Message {
	body := "Session completed!"
	switch finished {
	case model.PhaseWork:
		body = "Work session completed! Time for a break."
	case model.PhaseShortBreak:
		body = "Short break completed! Ready to work?"
	case model.PhaseLongBreak:
		body = "Long break completed! Great job!"
	}
	return Message{Finished: finished, Title: Title, Body: body}
}

// Channel is one way of telling the user a session ended.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, message Message) error
}

// Fanout announces to every channel without waiting for delivery.
type Fanout struct {
	channels []Channel
	timeout  time.Duration
	log      logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewFanout creates a Fanout over channels.
func NewFanout(log logging.Logger, channels ...Channel) *Fanout {
	ctx, cancel := context.WithCancel(context.Background())
	return &Fanout{
		channels: channels,
		timeout:  defaultDeliveryTimeout,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Announce implements scheduler.Signaler. It does nothing after Close.
func (fanout *Fanout) Announce(finished model.Phase) {
	fanout.mu.Lock()
	defer fanout.mu.Unlock()
	if fanout.closed {
		fanout.log.Debug("announcement after close dropped", logging.Stringer("phase", finished))
		return
	}
	message := MessageFor(finished)
	for _, channel := range fanout.channels {
		fanout.wg.Add(1)
		go fanout.deliver(channel, message)
	}
}

// Wait blocks until in-flight deliveries finish.
func (fanout *Fanout) Wait() {
	fanout.wg.Wait()
}

// Close cancels in-flight deliveries and waits for them to return.
func (fanout *Fanout) Close() {
	fanout.mu.Lock()
	fanout.closed = true
	fanout.mu.Unlock()
	fanout.cancel()
	fanout.wg.Wait()
}

func (fanout *Fanout) deliver(channel Channel, message Message) {
	defer fanout.wg.Done()
	ctx, cancel := context.WithTimeout(fanout.ctx, fanout.timeout)
	defer cancel()

	err := func() (err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				err = fmt.Errorf("panic: %v", recovered)
			}
		}()
		return channel.Deliver(ctx, message)
	}()
	if err != nil {
		fanout.log.Warn("alert delivery failed",
			logging.String("channel", channel.Name()),
			logging.Stringer("phase", message.Finished),
			logging.Err(err))
		return
	}
	fanout.log.Debug("alert delivered",
		logging.String("channel", channel.Name()),
		logging.Stringer("phase", message.Finished))
}
