package fn

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/mo"
)

func resolveAll(callables []any) ([]Func, error) {
	fns := make([]Func, len(callables))
	for i, c := range callables {
		f, err := Resolve(c)
		if err != nil {
			return nil, fmt.Errorf("callable %d: %w", i, err)
		}
		fns[i] = f
	}
	return fns, nil
}

// Compose pipes its arguments through callables from left to right:
// Compose(f, g)(x) == g(f(x)). The first callable receives the raw call
// arguments, each later one the previous single result. The first error
// stops the pipe. With no callables the first argument is returned as is.
func Compose(callables ...any) (Func, error) {
	fns, err := resolveAll(callables)
	if err != nil {
		return nil, err
	}
	return func(args ...any) (any, error) {
		if len(fns) == 0 {
			if len(args) == 0 {
				return nil, nil
			}
			return args[0], nil
		}
		res, err := fns[0](args...)
		for _, f := range fns[1:] {
			if err != nil {
				return nil, err
			}
			res, err = f(res)
		}
		return res, err
	}, nil
}

// Partial fixes the leading arguments of callable. Later arguments are
// appended after bound.
func Partial(callable any, bound ...any) (Func, error) {
	f, err := Resolve(callable)
	if err != nil {
		return nil, err
	}
	fixed := append([]any(nil), bound...)
	return func(args ...any) (any, error) {
		all := make([]any, 0, len(fixed)+len(args))
		all = append(all, fixed...)
		all = append(all, args...)
		return f(all...)
	}, nil
}

// Bind rebinds callable's receiver to self.
//
// For a Method (or target/name pair) the method of the same name is looked
// up on self instead. Any other callable is treated like a Go method
// expression and receives self as its first argument.
func Bind(callable any, self any) (Func, error) {
	if m, ok := asMethod(callable); ok {
		return Method{Target: self, Name: m.Name}.resolve()
	}
	return Partial(callable, self)
}

// Apply invokes callable bound to self with an argument slice.
func Apply(callable any, self any, args []any) (any, error) {
	f, err := Bind(callable, self)
	if err != nil {
		return nil, err
	}
	return f(args...)
}

// Call invokes callable bound to self with variadic arguments.
func Call(callable any, self any, args ...any) (any, error) {
	return Apply(callable, self, args)
}

// Negate returns the logical complement of predicate. A predicate result
// that is not a bool is an ErrInvalidArgument.
func Negate(predicate any) (Func, error) {
	f, err := Resolve(predicate)
	if err != nil {
		return nil, err
	}
	return func(args ...any) (any, error) {
		res, err := f(args...)
		if err != nil {
			return nil, err
		}
		b, ok := res.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: predicate returned %T, want bool", ErrInvalidArgument, res)
		}
		return !b, nil
	}, nil
}

// Times invokes callable n times with the indexes 0..n-1 and collects the
// results. The first error stops the loop.
func Times(callable any, n int) ([]any, error) {
	f, err := Resolve(callable)
	if err != nil {
		return nil, err
	}
	results := make([]any, 0, max(n, 0))
	for i := 0; i < n; i++ {
		res, err := f(i)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Delay waits d, then invokes callable with args. It returns ctx's error if
// ctx ends first, in which case callable is not invoked.
func Delay(ctx context.Context, callable any, d time.Duration, args ...any) (any, error) {
	f, err := Resolve(callable)
	if err != nil {
		return nil, err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return f(args...)
}

// DelayAsync is Delay running on its own goroutine. The future settles with
// callable's result or error.
func DelayAsync(ctx context.Context, callable any, d time.Duration, args ...any) *mo.Future[any] {
	return mo.NewFuture(func(resolve func(any), reject func(error)) {
		res, err := Delay(ctx, callable, d, args...)
		if err != nil {
			reject(err)
			return
		}
		resolve(res)
	})
}
