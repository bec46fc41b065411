// Package collections is the chain's operation table for iterable values
// without index access: typeclass.Iterable implementations, iter.Seq[any]
// sequences and receive channels.
//
// Materializing operations return a []any. Walking a channel consumes it.
package collections

import (
	"iter"
	"slices"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/typeclass"
)

var Table = ops.NewTable("collections", map[string]ops.Op{
	"toArray": withSeq(toArray),
	"count":   withSeq(count),
	"each":    each,
	"map":     withSeq(mapOp),
	"filter":  withSeq(filter),
	"reduce":  withSeq(reduce),
	"find":    withSeq(find),
	"some":    withSeq(some),
	"every":   withSeq(every),
})

func withSeq(op func(seq iter.Seq[any], args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		seq, ok := typeclass.Seq(value)
		if !ok {
			return nil, ops.Invalid("%T is not a collection", value)
		}
		return op(seq, args)
	}
}

// walk calls f(element, index) for every element until f fails or visit
// returns false.
func walk(seq iter.Seq[any], f fn.Func, visit func(res, v any) bool) error {
	i := 0
	for v := range seq {
		res, err := f(v, i)
		if err != nil {
			return err
		}
		if !visit(res, v) {
			return nil
		}
		i++
	}
	return nil
}

func toArray(seq iter.Seq[any], _ []any) (any, error) {
	out := slices.Collect(seq)
	if out == nil {
		out = []any{}
	}
	return out, nil
}

func count(seq iter.Seq[any], _ []any) (any, error) {
	n := 0
	for range seq {
		n++
	}
	return n, nil
}

// each walks the collection for its side effects and keeps the collection
// itself as the result.
func each(value any, args ...any) (any, error) {
	seq, ok := typeclass.Seq(value)
	if !ok {
		return nil, ops.Invalid("%T is not a collection", value)
	}
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	if err := walk(seq, f, func(_, _ any) bool { return true }); err != nil {
		return nil, err
	}
	return value, nil
}

func mapOp(seq iter.Seq[any], args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	out := []any{}
	err = walk(seq, f, func(res, _ any) bool {
		out = append(out, res)
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func filter(seq iter.Seq[any], args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	out := []any{}
	err = walk(seq, f, func(res, v any) bool {
		if ops.Truthy(res) {
			out = append(out, v)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// reduce folds with f(acc, element, index); without an initial value the
// first element seeds the accumulator.
func reduce(seq iter.Seq[any], args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	var acc any
	seeded := len(args) > 1
	if seeded {
		acc = args[1]
	}
	i := 0
	for v := range seq {
		if !seeded {
			acc, seeded = v, true
			continue
		}
		if acc, err = f(acc, v, i); err != nil {
			return nil, err
		}
		i++
	}
	return acc, nil
}

// find returns the first element the predicate accepts, or nil.
func find(seq iter.Seq[any], args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	var found any
	err = walk(seq, f, func(res, v any) bool {
		if ops.Truthy(res) {
			found = v
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func some(seq iter.Seq[any], args []any) (any, error) {
	found, err := exists(seq, args, true)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func every(seq iter.Seq[any], args []any) (any, error) {
	failed, err := exists(seq, args, false)
	if err != nil {
		return nil, err
	}
	return !failed, nil
}

// exists reports whether some element's predicate result has truthiness
// want, stopping at the first one.
func exists(seq iter.Seq[any], args []any, want bool) (bool, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return false, err
	}
	found := false
	err = walk(seq, f, func(res, _ any) bool {
		found = ops.Truthy(res) == want
		return !found
	})
	return found, err
}
