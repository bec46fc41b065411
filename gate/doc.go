// Package gate wraps functions with invocation-count and invocation-rate
// limits: Once, Before, After, Throttle and Debounce.
//
// Every gated function returns an mo.Option. mo.None means the call was
// gated and the wrapped function did not produce a result for it; a live or
// cached result comes back as mo.Some, so a wrapped function may legitimately
// return false, zero or nil without being mistaken for the gate.
//
// Gates never start goroutines or timers. Throttle and Debounce compare
// wall-clock readings taken from a Clock at call time; "waiting" happens only
// when the caller calls again later. Each constructor call owns its state,
// and that state is guarded by a mutex so a gated function may be shared
// between goroutines.
//
// Example:
//
//	initOnce := gate.Once(func(_ ...struct{}) *Config { return loadConfig() })
//	cfg := initOnce().MustGet()
package gate
