package fn

import "github.com/samber/lo"

// Compose2 is left to right composition: Compose2(f, g)(x) == g(f(x)).
func Compose2[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Pipe chains same-typed functions left to right.
func Pipe[T any](fns ...func(T) T) func(T) T {
	return func(v T) T {
		for _, f := range fns {
			v = f(v)
		}
		return v
	}
}

func Not[A any](pred func(A) bool) func(A) bool {
	return func(a A) bool {
		return !pred(a)
	}
}

// Partial1 fixes the first argument of a binary function.
func Partial1[A, B, R any](f func(A, B) R, a A) func(B) R {
	return func(b B) R {
		return f(a, b)
	}
}

// TimesOf calls f with 0..n-1 and returns the results in order.
func TimesOf[R any](n int, f func(int) R) []R {
	if n <= 0 {
		return []R{}
	}
	return lo.Times(n, f)
}
