package scheduler

import (
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

// Options contains runtime wiring for a Scheduler.
type Options struct {
	Clock        Clock
	TickInterval time.Duration
	Logger       logging.Logger
}

// Scheduler is the work/break state machine.
//
// A Scheduler is not safe for concurrent use: one goroutine owns it, usually
// through Loop, and every command and tick runs on that goroutine.
type Scheduler struct {
	settings  model.Settings
	presenter Presenter
	signaler  Signaler
	clock     Clock
	interval  time.Duration
	log       logging.Logger

	phase     model.Phase
	running   bool
	remaining int
	total     int
	completed int
	ticker    Ticker
}

// New creates an idle scheduler in the work phase.
func New(settings model.Settings, presenter Presenter, signaler Signaler, options Options) (*Scheduler, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	if signaler == nil {
		signaler = SignalerFunc(func(model.Phase) {})
	}
	if options.Clock == nil {
		options.Clock = SystemClock
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}

	sched := &Scheduler{
		settings:  settings,
		presenter: presenter,
		signaler:  signaler,
		clock:     options.Clock,
		interval:  options.TickInterval,
		log:       options.Logger,
		phase:     model.PhaseWork,
		completed: 1,
	}
	sched.resetDurations()
	return sched, nil
}

// Snapshot returns the current state.
func (sched *Scheduler) Snapshot() State {
	return State{
		Phase:                   sched.phase,
		Running:                 sched.running,
		RemainingSeconds:        sched.remaining,
		TotalSeconds:            sched.total,
		CompletedWorkSessions:   sched.completed,
		SessionsBeforeLongBreak: sched.settings.SessionsBeforeLongBreak,
	}
}

// Settings returns the settings currently stored.
func (sched *Scheduler) Settings() model.Settings {
	return sched.settings
}

// Refresh re-renders everything the presenter shows.
func (sched *Scheduler) Refresh() {
	sched.presenter.RenderActiveMode(sched.phase)
	sched.presenter.RenderTime(sched.remaining, sched.total, sched.phase)
	sched.presenter.RenderRunningState(sched.running)
	sched.presenter.RenderSessionCounts(sched.completed, sched.settings.SessionsBeforeLongBreak)
}

// Start begins counting down. Starting a running scheduler does nothing.
func (sched *Scheduler) Start() {
	if sched.running {
		return
	}
	sched.stopTicker()
	sched.running = true
	sched.ticker = sched.clock.NewTicker(sched.interval)
	sched.log.Debug("timer started",
		logging.Stringer("phase", sched.phase),
		logging.Int("remaining_seconds", sched.remaining))
	sched.presenter.RenderRunningState(true)
}

// Pause stops counting down. Pausing an idle scheduler does nothing.
func (sched *Scheduler) Pause() {
	if !sched.running {
		return
	}
	sched.running = false
	sched.stopTicker()
	sched.log.Debug("timer paused",
		logging.Stringer("phase", sched.phase),
		logging.Int("remaining_seconds", sched.remaining))
	sched.presenter.RenderRunningState(false)
}

// Reset pauses and rewinds the current phase to its full duration.
func (sched *Scheduler) Reset() {
	sched.Pause()
	sched.resetDurations()
	sched.presenter.RenderTime(sched.remaining, sched.total, sched.phase)
}

// Tick advances the countdown by one second. When the phase runs out the
// session completes within the same call.
func (sched *Scheduler) Tick() {
	if !sched.running {
		return
	}
	if sched.remaining > 0 {
		sched.remaining--
	}
	sched.presenter.RenderTime(sched.remaining, sched.total, sched.phase)
	if sched.remaining == 0 {
		sched.completeSession()
	}
}

// SwitchMode moves to target. A running countdown is only interrupted when the
// presenter confirms; a declined confirmation leaves everything untouched and
// SwitchMode returns false.
func (sched *Scheduler) SwitchMode(target model.Phase) bool {
	if !target.Valid() {
		sched.log.Warn("ignoring switch to unknown phase", logging.Int("phase", int(target)))
		return false
	}
	if sched.running {
		if !sched.presenter.ConfirmInterrupt() {
			sched.log.Debug("mode switch declined", logging.Stringer("target", target))
			return false
		}
		sched.Pause()
	}

	sched.phase = target
	sched.resetDurations()
	sched.log.Info("mode switched",
		logging.Stringer("phase", target),
		logging.Duration("length", sched.settings.DurationOf(target)))

	sched.presenter.RenderActiveMode(target)
	sched.presenter.RenderTime(sched.remaining, sched.total, sched.phase)
	sched.presenter.RenderSessionCounts(sched.completed, sched.settings.SessionsBeforeLongBreak)
	return true
}

// UpdateSettings replaces all settings at once. While idle the current phase is
// resized immediately; while running the new durations wait for the next phase.
func (sched *Scheduler) UpdateSettings(settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		sched.log.Warn("settings rejected", logging.Err(err))
		return err
	}
	sched.settings = settings
	sched.log.Info("settings updated",
		logging.Int("work_minutes", settings.WorkMinutes),
		logging.Int("short_break_minutes", settings.ShortBreakMinutes),
		logging.Int("long_break_minutes", settings.LongBreakMinutes),
		logging.Int("sessions_before_long_break", settings.SessionsBeforeLongBreak),
		logging.Bool("deferred", sched.running))

	sched.presenter.RenderSessionCounts(sched.completed, settings.SessionsBeforeLongBreak)
	if !sched.running {
		sched.resetDurations()
		sched.presenter.RenderTime(sched.remaining, sched.total, sched.phase)
	}
	return nil
}

func (sched *Scheduler) completeSession() {
	finished := sched.phase
	sched.Pause()
	sched.log.Info("session completed",
		logging.Stringer("phase", finished),
		logging.Int("completed_work_sessions", sched.completed))
	sched.signaler.Announce(finished)
	sched.autoAdvance()
}

func (sched *Scheduler) autoAdvance() {
	next := model.PhaseWork
	if sched.phase == model.PhaseWork {
		sched.completed++
		// sessionsBeforeLongBreak is read live, so a mid-streak change shifts the cadence.
		if sched.completed%sched.settings.SessionsBeforeLongBreak == 0 {
			next = model.PhaseLongBreak
		} else {
			next = model.PhaseShortBreak
		}
	}
	sched.SwitchMode(next)
}

func (sched *Scheduler) resetDurations() {
	sched.total = sched.settings.Seconds(sched.phase)
	sched.remaining = sched.total
}

func (sched *Scheduler) stopTicker() {
	if sched.ticker != nil {
		sched.ticker.Stop()
		sched.ticker = nil
	}
}

// ticks returns the active tick channel, or nil while paused so a select on it
// never fires.
func (sched *Scheduler) ticks() <-chan time.Time {
	if sched.ticker == nil {
		return nil
	}
	return sched.ticker.C()
}
