// Package functions is the chain's operation table for callable values.
//
// Every operation resolves the held callable with fn.Resolve and, unless it
// invokes it outright, returns a new fn.Func. Gated operations (once, before,
// after, throttle, debounce) return a Func whose result is a mo.Option[any]:
// mo.None means the call was gated, mo.Some carries the live or remembered
// result. A failing call returns its error instead of an Option.
package functions

import (
	"context"
	"time"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/gate"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/pure"
	"github.com/on-the-ground/extras_go/typeclass"

	"github.com/samber/mo"
)

var Table = ops.NewTable("functions", map[string]ops.Op{
	"once":     withFunc(once),
	"before":   withFunc(before),
	"after":    withFunc(after),
	"throttle": withFunc(throttle),
	"debounce": withFunc(debounce),
	"memoize":  withFunc(memoize),
	"negate":   negate,
	"partial":  partial,
	"bind":     bind,
	"apply":    apply,
	"call":     call,
	"compose":  compose,
	"times":    times,
	"delay":    withFunc(delay),
	"invoke":   withFunc(invoke),
})

func withFunc(op func(f fn.Func, args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		f, err := fn.Resolve(value)
		if err != nil {
			return nil, err
		}
		return op(f, args)
	}
}

// lift turns a Func into the single-result shape the generic gates and
// memoizers work with.
func lift(f fn.Func) func(...any) mo.Result[any] {
	return func(args ...any) mo.Result[any] {
		v, err := f(args...)
		return mo.TupleToResult(v, err)
	}
}

// lower unwraps a gated, lifted function back into a Func returning a
// mo.Option[any].
func lower(g func(...any) mo.Option[mo.Result[any]]) fn.Func {
	return func(args ...any) (any, error) {
		res, ok := g(args...).Get()
		if !ok {
			return mo.None[any](), nil
		}
		v, err := res.Get()
		if err != nil {
			return nil, err
		}
		return mo.Some(v), nil
	}
}

func once(f fn.Func, _ []any) (any, error) {
	return lower(gate.Once(lift(f))), nil
}

func before(f fn.Func, args []any) (any, error) {
	n, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	return lower(gate.Before(lift(f), n)), nil
}

func after(f fn.Func, args []any) (any, error) {
	n, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	return lower(gate.After(lift(f), n)), nil
}

// timed reads the interval argument and an optional gate.Clock after it.
func timed(args []any) (gateInterval, error) {
	d, err := ops.Duration(args, 0)
	if err != nil {
		return gateInterval{}, err
	}
	if d < 0 {
		return gateInterval{}, ops.Invalid("negative interval %s", d)
	}
	clock, err := ops.OptArg[gate.Clock](args, 1, nil)
	if err != nil {
		return gateInterval{}, err
	}
	return gateInterval{d: d, opts: []gate.Option{gate.WithClock(clock)}}, nil
}

type gateInterval struct {
	d    time.Duration
	opts []gate.Option
}

func throttle(f fn.Func, args []any) (any, error) {
	iv, err := timed(args)
	if err != nil {
		return nil, err
	}
	return lower(gate.Throttle(lift(f), iv.d, iv.opts...)), nil
}

func debounce(f fn.Func, args []any) (any, error) {
	iv, err := timed(args)
	if err != nil {
		return nil, err
	}
	return lower(gate.Debounce(lift(f), iv.d, iv.opts...)), nil
}

// memoize caches results and errors alike, keyed by argument signature. An
// optional pure.Store argument replaces the private store.
func memoize(f fn.Func, args []any) (any, error) {
	var opts []pure.Option
	store, err := ops.OptArg[pure.Store](args, 0, nil)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, pure.WithStore(store))
	}
	memo := pure.Memoize(lift(f), opts...)
	return fn.Func(func(args ...any) (any, error) {
		return memo(args...).Get()
	}), nil
}

func negate(value any, _ ...any) (any, error) {
	return fn.Negate(value)
}

func partial(value any, args ...any) (any, error) {
	return fn.Partial(value, args...)
}

func bind(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, ops.Invalid("bind needs a receiver")
	}
	return fn.Bind(value, args[0])
}

// apply calls the value bound to args[0] with the elements of args[1].
func apply(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, ops.Invalid("apply needs a receiver")
	}
	var list []any
	if len(args) > 1 {
		if !typeclass.IsArray(args[1]) {
			return nil, ops.Invalid("apply arguments must be an array, got %T", args[1])
		}
		list, _ = typeclass.ToArray(args[1])
	}
	return fn.Apply(value, args[0], list)
}

func call(value any, args ...any) (any, error) {
	if len(args) == 0 {
		return nil, ops.Invalid("call needs a receiver")
	}
	return fn.Call(value, args[0], args[1:]...)
}

// compose runs the value first and the argument callables after it.
func compose(value any, args ...any) (any, error) {
	return fn.Compose(append([]any{value}, args...)...)
}

func times(value any, args ...any) (any, error) {
	n, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	return fn.Times(value, n)
}

// delay blocks for the interval, then invokes the value with the remaining
// arguments.
func delay(f fn.Func, args []any) (any, error) {
	d, err := ops.Duration(args, 0)
	if err != nil {
		return nil, err
	}
	return fn.Delay(context.Background(), f, d, args[1:]...)
}

func invoke(f fn.Func, args []any) (any, error) {
	return f(args...)
}
