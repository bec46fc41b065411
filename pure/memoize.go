package pure

type options struct {
	store  Store
	shards int
}

// Option configures a memoized function.
type Option func(*options)

// WithStore makes the memoized function cache into s instead of a private
// sharded store. Functions sharing a store share their cached results.
func WithStore(s Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithShards sets the shard count of the private store.
func WithShards(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

func newStore(opts []Option) Store {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.store != nil {
		return o.store
	}
	return NewShardedStore(NewStoreConfig(o.shards))
}

// result wraps cached values so that a nil interface result survives the
// round trip through Store.
type result[R any] struct {
	value R
}

func memoize[R any](compute func(args []any) R, opts []Option) func(args []any) R {
	store := newStore(opts)
	return func(args []any) R {
		key := Signature(args...)
		if v, ok := store.Load(key); ok {
			return v.(result[R]).value
		}
		actual, _ := store.LoadOrStore(key, result[R]{value: compute(args)})
		return actual.(result[R]).value
	}
}

// Memoize returns a function that caches f's results by argument signature.
//
// A repeated signature returns the stored result without invoking f. The
// cache is unbounded and belongs to the returned function unless WithStore
// says otherwise: memoizing the same f twice yields two independent caches.
// When two goroutines miss on the same signature at once, both compute but
// every caller observes the first stored result.
func Memoize[A, R any](f func(...A) R, opts ...Option) func(...A) R {
	memo := memoize(func(args []any) R {
		typed := make([]A, len(args))
		for i := range args {
			typed[i] = arg[A](args, i)
		}
		return f(typed...)
	}, opts)
	return func(args ...A) R {
		return memo(toAny(args))
	}
}

func Memoize1[A1, R any](f func(A1) R, opts ...Option) func(A1) R {
	memo := memoize(func(args []any) R {
		return f(arg[A1](args, 0))
	}, opts)
	return func(a1 A1) R {
		return memo([]any{a1})
	}
}

func Memoize2[A1, A2, R any](f func(A1, A2) R, opts ...Option) func(A1, A2) R {
	memo := memoize(func(args []any) R {
		return f(arg[A1](args, 0), arg[A2](args, 1))
	}, opts)
	return func(a1 A1, a2 A2) R {
		return memo([]any{a1, a2})
	}
}

func Memoize3[A1, A2, A3, R any](f func(A1, A2, A3) R, opts ...Option) func(A1, A2, A3) R {
	memo := memoize(func(args []any) R {
		return f(arg[A1](args, 0), arg[A2](args, 1), arg[A3](args, 2))
	}, opts)
	return func(a1 A1, a2 A2, a3 A3) R {
		return memo([]any{a1, a2, a3})
	}
}

// Memoize1E memoizes a fallible function. Only successful results are
// cached; a failing call is retried the next time its argument comes in.
func Memoize1E[A1, R any](f func(A1) (R, error), opts ...Option) func(A1) (R, error) {
	store := newStore(opts)
	return func(a1 A1) (R, error) {
		key := Signature(a1)
		if v, ok := store.Load(key); ok {
			return v.(result[R]).value, nil
		}
		res, err := f(a1)
		if err != nil {
			return res, err
		}
		actual, _ := store.LoadOrStore(key, result[R]{value: res})
		return actual.(result[R]).value, nil
	}
}

func toAny[A any](args []A) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

// arg recovers a typed argument; a nil interface argument becomes A's zero value.
func arg[A any](args []any, i int) A {
	v, _ := args[i].(A)
	return v
}
