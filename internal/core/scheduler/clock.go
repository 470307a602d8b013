package scheduler

import "time"

// Ticker delivers ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers. Tests inject a fake to drive time by hand.
type Clock interface {
	NewTicker(interval time.Duration) Ticker
}

// SystemClock is the Clock backed by time.Ticker.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) NewTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (ticker *systemTicker) C() <-chan time.Time { return ticker.ticker.C }

func (ticker *systemTicker) Stop() { ticker.ticker.Stop() }
