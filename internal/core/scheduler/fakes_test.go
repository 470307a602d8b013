package scheduler

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"pomodoro/internal/core/model"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (ticker *fakeTicker) C() <-chan time.Time { return ticker.ch }

func (ticker *fakeTicker) Stop() { ticker.stopped = true }

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (clock *fakeClock) NewTicker(time.Duration) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	ticker := &fakeTicker{ch: make(chan time.Time, 1)}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

func (clock *fakeClock) created() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

func (clock *fakeClock) active() []*fakeTicker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	var active []*fakeTicker
	for _, ticker := range clock.tickers {
		if !ticker.stopped {
			active = append(active, ticker)
		}
	}
	return active
}

func (clock *fakeClock) latest() *fakeTicker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.tickers) == 0 {
		return nil
	}
	return clock.tickers[len(clock.tickers)-1]
}

type renderedTime struct {
	Remaining int
	Total     int
	Phase     model.Phase
}

type recordingPresenter struct {
	mu      sync.Mutex
	confirm bool
	asked   int
	times   []renderedTime
	running []bool
	modes   []model.Phase
	counts  [][2]int
}

func newRecordingPresenter(confirm bool) *recordingPresenter {
	return &recordingPresenter{confirm: confirm}
}

func (presenter *recordingPresenter) RenderTime(remaining, total int, phase model.Phase) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.times = append(presenter.times, renderedTime{remaining, total, phase})
}

func (presenter *recordingPresenter) RenderRunningState(running bool) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.running = append(presenter.running, running)
}

func (presenter *recordingPresenter) RenderActiveMode(phase model.Phase) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.modes = append(presenter.modes, phase)
}

func (presenter *recordingPresenter) ConfirmInterrupt() bool {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.asked++
	return presenter.confirm
}

func (presenter *recordingPresenter) RenderSessionCounts(completed, before int) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.counts = append(presenter.counts, [2]int{completed, before})
}

func (presenter *recordingPresenter) lastTime() renderedTime {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if len(presenter.times) == 0 {
		return renderedTime{}
	}
	return presenter.times[len(presenter.times)-1]
}

type mockSignaler struct {
	mock.Mock
}

func (signaler *mockSignaler) Announce(finished model.Phase) {
	signaler.Called(finished)
}
