// Package pure memoizes functions by the signature of their arguments.
//
// Memoization assumes the wrapped function is pure: the same arguments
// always produce the same result and calling it has no side effects that
// matter. Wrapping an impure function (one reading the clock, doing I/O,
// mutating shared state) silently freezes its first answer.
//
// The centerpiece is Memoize, which works for any variadic function, plus the
// typed fixed-arity helpers Memoize1, Memoize2, Memoize3 and the fallible
// Memoize1E. Cache keys are produced by Signature, a deterministic encoding
// of the argument list that compares slices, arrays, maps and structs by
// structure and pointers, funcs and channels by identity.
//
// By default every memoized function owns an unbounded ShardedStore, and a
// signature keeps the same result for the life of the function. A bounded
// RistrettoStore can be supplied with WithStore when evicting and
// recomputing entries is acceptable. It gives up that guarantee: an evicted
// signature is computed again, and concurrent misses may each see their own
// result.
//
// Example:
//
//	fib := pure.Memoize1(func(n int) int { return slowFib(n) })
//	fib(40) // computed
//	fib(40) // cached
package pure
