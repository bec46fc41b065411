package gate

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// Clock supplies the current time to Throttle and Debounce.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var systemClock Clock = ClockFunc(time.Now)

// quiet reports whether interval has fully elapsed between since and now.
// The window [since, since+interval) is the period in which calls are gated.
func quiet(since, now time.Time, interval time.Duration) bool {
	if interval <= 0 {
		return true
	}
	return !timespan.BetweenTimes(since, since.Add(interval)).Contains(now)
}

type config struct {
	clock Clock
}

// Option configures a time-based gate.
type Option func(*config)

// WithClock replaces the wall clock used to measure intervals.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{clock: systemClock}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
