package gate_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/extras_go/gate"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func counter() (*int, func(...int) int) {
	count := 0
	return &count, func(args ...int) int {
		count++
		sum := 0
		for _, a := range args {
			sum += a
		}
		return sum
	}
}

func TestOnce(t *testing.T) {
	count, f := counter()
	g := gate.Once(f)

	assert.Equal(t, mo.Some(3), g(1, 2))
	assert.Equal(t, mo.Some(3), g(10, 20))
	assert.Equal(t, mo.Some(3), g())
	assert.Equal(t, 1, *count)
}

func TestOnce_FalseIsNotTheSentinel(t *testing.T) {
	g := gate.Once(func(...any) bool { return false })
	res := g()
	assert.True(t, res.IsPresent())
	assert.False(t, res.MustGet())
}

func TestBefore(t *testing.T) {
	count, f := counter()
	g := gate.Before(f, 2)

	assert.Equal(t, mo.Some(1), g(1))
	assert.Equal(t, mo.Some(2), g(2))
	assert.Equal(t, mo.Some(2), g(3))
	assert.Equal(t, 2, *count)
}

func TestBefore_NonPositiveCountNeverInvokes(t *testing.T) {
	count, f := counter()
	g := gate.Before(f, 0)

	assert.True(t, g(1).IsAbsent())
	assert.True(t, g(2).IsAbsent())
	assert.Equal(t, 0, *count)
}

func TestBefore_ConcurrentCallsInvokeOnce(t *testing.T) {
	var calls atomic.Int32
	g := gate.Once(func(...any) int { return int(calls.Add(1)) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, mo.Some(1), g())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestAfter(t *testing.T) {
	count, f := counter()
	g := gate.After(f, 2)

	assert.True(t, g(1).IsAbsent())
	assert.True(t, g(1).IsAbsent())
	assert.Equal(t, mo.Some(5), g(5))
	assert.Equal(t, mo.Some(6), g(6))
	assert.Equal(t, 2, *count)
}

func TestAfter_NonPositiveCountAlwaysInvokes(t *testing.T) {
	_, f := counter()
	g := gate.After(f, -1)
	assert.Equal(t, mo.Some(4), g(4))
}

func TestThrottle(t *testing.T) {
	clock := newFakeClock()
	count, f := counter()
	g := gate.Throttle(f, 100*time.Millisecond, gate.WithClock(clock))

	assert.Equal(t, mo.Some(1), g(1))

	clock.Advance(50 * time.Millisecond)
	assert.True(t, g(2).IsAbsent())

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, mo.Some(3), g(3))

	clock.Advance(99 * time.Millisecond)
	assert.True(t, g(4).IsAbsent())
	assert.Equal(t, 2, *count)
}

func TestThrottle_ZeroIntervalAlwaysInvokes(t *testing.T) {
	clock := newFakeClock()
	count, f := counter()
	g := gate.Throttle(f, 0, gate.WithClock(clock))
	for i := 0; i < 5; i++ {
		assert.True(t, g(i).IsPresent())
	}
	assert.Equal(t, 5, *count)
}

func TestThrottle_WallClock(t *testing.T) {
	count, f := counter()
	g := gate.Throttle(f, 20*time.Millisecond)

	assert.True(t, g().IsPresent())
	assert.True(t, g().IsAbsent())
	time.Sleep(25 * time.Millisecond)
	assert.True(t, g().IsPresent())
	assert.Equal(t, 2, *count)
}

func TestDebounce(t *testing.T) {
	clock := newFakeClock()
	count, f := counter()
	g := gate.Debounce(f, 100*time.Millisecond, gate.WithClock(clock))

	assert.True(t, g(1).IsAbsent())

	clock.Advance(60 * time.Millisecond)
	assert.True(t, g(2).IsAbsent())

	// 120ms since the first call but only 60ms since the second.
	clock.Advance(60 * time.Millisecond)
	assert.True(t, g(3).IsAbsent())

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, mo.Some(4), g(4))
	assert.Equal(t, 1, *count)
}

func TestDebounce_ZeroIntervalAlwaysInvokes(t *testing.T) {
	count, f := counter()
	g := gate.Debounce(f, 0)
	assert.Equal(t, mo.Some(1), g(1))
	assert.Equal(t, mo.Some(2), g(2))
	assert.Equal(t, 2, *count)
}

func TestWithClock_IgnoresNil(t *testing.T) {
	_, f := counter()
	g := gate.Throttle(f, time.Hour, gate.WithClock(nil))
	assert.True(t, g().IsPresent())
	assert.True(t, g().IsAbsent())
}

func TestGateProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("before invokes exactly min(calls, n) times", prop.ForAll(
		func(n, calls int) bool {
			count, f := counter()
			g := gate.Before(f, n)
			for i := 0; i < calls; i++ {
				g(i)
			}
			return *count == min(calls, n)
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 40),
	))

	properties.Property("after gates exactly the first n calls", prop.ForAll(
		func(n, calls int) bool {
			count, f := counter()
			g := gate.After(f, n)
			for i := 0; i < calls; i++ {
				if g(i).IsPresent() != (i >= n) {
					return false
				}
			}
			return *count == max(calls-n, 0)
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 40),
	))

	properties.Property("throttle invokes once per window", prop.ForAll(
		func(gapMs int) bool {
			clock := newFakeClock()
			count, f := counter()
			g := gate.Throttle(f, 100*time.Millisecond, gate.WithClock(clock))
			g()
			clock.Advance(time.Duration(gapMs) * time.Millisecond)
			g()
			if gapMs < 100 {
				return *count == 1
			}
			return *count == 2
		},
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
