package gate

import (
	"sync"
	"time"

	"github.com/samber/mo"
)

// Once returns a function that invokes f on its first call only. Every later
// call, whatever its arguments, returns the first call's result.
func Once[A, R any](f func(...A) R) func(...A) mo.Option[R] {
	return Before(f, 1)
}

// Before returns a function that invokes f for each of its first count calls
// and remembers the latest result. Once the budget is spent, calls return the
// remembered result without invoking f. With count <= 0, f is never invoked
// and every call returns mo.None.
func Before[A, R any](f func(...A) R, count int) func(...A) mo.Option[R] {
	var (
		mu        sync.Mutex
		remaining = count
		memo      = mo.None[R]()
	)
	return func(args ...A) mo.Option[R] {
		mu.Lock()
		defer mu.Unlock()
		if remaining > 0 {
			remaining--
			memo = mo.Some(f(args...))
		}
		return memo
	}
}

// After returns a function that returns mo.None for its first count calls and
// invokes f on every call after that.
func After[A, R any](f func(...A) R, count int) func(...A) mo.Option[R] {
	var (
		mu        sync.Mutex
		remaining = count
	)
	return func(args ...A) mo.Option[R] {
		mu.Lock()
		if remaining > 0 {
			remaining--
			mu.Unlock()
			return mo.None[R]()
		}
		mu.Unlock()
		return mo.Some(f(args...))
	}
}

// Throttle returns a function that invokes f at most once per interval.
// The first call always invokes. A later call invokes only when at least
// interval has passed since the last invocation; otherwise it returns
// mo.None. An interval of zero invokes on every call.
func Throttle[A, R any](f func(...A) R, interval time.Duration, opts ...Option) func(...A) mo.Option[R] {
	cfg := newConfig(opts)
	var (
		mu      sync.Mutex
		invoked bool
		last    time.Time
	)
	return func(args ...A) mo.Option[R] {
		now := cfg.clock.Now()
		mu.Lock()
		if invoked && !quiet(last, now, interval) {
			mu.Unlock()
			return mo.None[R]()
		}
		invoked = true
		last = now
		mu.Unlock()
		return mo.Some(f(args...))
	}
}

// Debounce returns a function that invokes f only after interval of quiet
// since the previous call.
//
// Every call replaces the pending one. A call invokes f when a previous call
// exists and at least interval has elapsed since it; otherwise it returns
// mo.None. The first call is therefore always gated. An interval of zero
// invokes on every call.
func Debounce[A, R any](f func(...A) R, interval time.Duration, opts ...Option) func(...A) mo.Option[R] {
	cfg := newConfig(opts)
	var (
		mu      sync.Mutex
		pending bool
		last    time.Time
	)
	return func(args ...A) mo.Option[R] {
		now := cfg.clock.Now()
		mu.Lock()
		fire := interval <= 0 || (pending && quiet(last, now, interval))
		pending = true
		last = now
		mu.Unlock()
		if !fire {
			return mo.None[R]()
		}
		return mo.Some(f(args...))
	}
}
