// Package arrays is the chain's operation table for slices and arrays.
//
// Every operation works on a []any copy of the wrapped value and returns a
// new slice; the caller's slice is never modified.
package arrays

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/ops"
	"github.com/on-the-ground/extras_go/pure"
	"github.com/on-the-ground/extras_go/typeclass"

	"github.com/samber/lo"
)

var Table = ops.NewTable("arrays", map[string]ops.Op{
	"sort":      withArray(sortOp),
	"reverse":   withArray(reverse),
	"filter":    withArray(filter),
	"map":       withArray(mapOp),
	"reduce":    withArray(reduce),
	"each":      withArray(each),
	"chunk":     withArray(chunk),
	"uniq":      withArray(uniq),
	"compact":   withArray(compact),
	"flatten":   withArray(flatten),
	"first":     withArray(first),
	"last":      withArray(last),
	"slice":     withArray(slice),
	"concat":    withArray(concat),
	"join":      withArray(join),
	"count":     withArray(count),
	"contains":  withArray(contains),
	"indexOf":   withArray(indexOf),
	"reject":    withArray(reject),
	"partition": withArray(partition),
	"groupBy":   withArray(groupBy),
	"countBy":   withArray(countBy),
	"max":       withArray(maxOp),
	"min":       withArray(minOp),
})

func withArray(op func(arr []any, args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		arr, ok := typeclass.ToArray(value)
		if !ok {
			return nil, ops.Invalid("%T is not an array", value)
		}
		return op(arr, args)
	}
}

// Compare orders numbers numerically, strings lexically and anything else
// by its formatted value. Numbers sort before strings.
func Compare(a, b any) int {
	fa, numA := ops.ToFloat(a)
	fb, numB := ops.ToFloat(b)
	switch {
	case numA && numB:
		return cmp.Compare(fa, fb)
	case numA:
		return -1
	case numB:
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// sortOp sorts ascending, or with a comparator returning a number (<0 when
// a sorts first) or a bool (true when a sorts first).
func sortOp(arr []any, args []any) (any, error) {
	out := slices.Clone(arr)
	if len(args) == 0 {
		slices.SortStableFunc(out, Compare)
		return out, nil
	}
	cmpFn, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	var cbErr error
	slices.SortStableFunc(out, func(a, b any) int {
		if cbErr != nil {
			return 0
		}
		c, err := comparatorResult(cmpFn, a, b)
		if err != nil {
			cbErr = err
		}
		return c
	})
	if cbErr != nil {
		return nil, cbErr
	}
	return out, nil
}

// comparatorResult maps a numeric comparator result to its sign. A bool
// result is a "less" answer: false maps to 0, never +1, which is enough for
// the stable sort since it only tests for a negative result.
func comparatorResult(f fn.Func, a, b any) (int, error) {
	res, err := f(a, b)
	if err != nil {
		return 0, err
	}
	if less, ok := res.(bool); ok {
		if less {
			return -1, nil
		}
		return 0, nil
	}
	n, ok := ops.ToFloat(res)
	if !ok {
		return 0, ops.Invalid("comparator returned %T", res)
	}
	return cmp.Compare(n, 0), nil
}

func reverse(arr []any, _ []any) (any, error) {
	out := slices.Clone(arr)
	slices.Reverse(out)
	return out, nil
}

// iterate calls f(element, index) for each element and stops on the first
// callback error.
func iterate(arr []any, f fn.Func, visit func(res any, v any, i int)) error {
	for i, v := range arr {
		res, err := f(v, i)
		if err != nil {
			return err
		}
		visit(res, v, i)
	}
	return nil
}

func filter(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	keep := make([]bool, len(arr))
	if err := iterate(arr, f, func(res, _ any, i int) { keep[i] = ops.Truthy(res) }); err != nil {
		return nil, err
	}
	return lo.Filter(arr, func(_ any, i int) bool { return keep[i] }), nil
}

func mapOp(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(arr))
	if err := iterate(arr, f, func(res, _ any, i int) { out[i] = res }); err != nil {
		return nil, err
	}
	return out, nil
}

// reduce folds left with f(acc, element, index). Without an initial value
// the first element seeds the accumulator.
func reduce(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	var acc any
	rest := arr
	if len(args) > 1 {
		acc = args[1]
	} else if len(arr) > 0 {
		acc, rest = arr[0], arr[1:]
	}
	for i, v := range rest {
		if acc, err = f(acc, v, i); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func each(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	if err := iterate(arr, f, func(any, any, int) {}); err != nil {
		return nil, err
	}
	return arr, nil
}

func chunk(arr []any, args []any) (any, error) {
	size, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, ops.Invalid("chunk size must be positive, got %d", size)
	}
	return lo.ToAnySlice(lo.Chunk(arr, size)), nil
}

// uniq keeps the first of structurally equal elements.
func uniq(arr []any, _ []any) (any, error) {
	return lo.UniqBy(arr, func(v any) string { return pure.Signature(v) }), nil
}

func compact(arr []any, _ []any) (any, error) {
	return lo.Filter(arr, func(v any, _ int) bool { return ops.Truthy(v) }), nil
}

// flatten flattens one level of nesting.
func flatten(arr []any, _ []any) (any, error) {
	return lo.FlatMap(arr, func(v any, _ int) []any {
		if typeclass.IsArray(v) {
			inner, _ := typeclass.ToArray(v)
			return inner
		}
		return []any{v}
	}), nil
}

func first(arr []any, _ []any) (any, error) {
	return lo.FirstOrEmpty(arr), nil
}

func last(arr []any, _ []any) (any, error) {
	return lo.LastOrEmpty(arr), nil
}

// slice returns arr[start:end]; negative indexes count from the end and
// end defaults to the length.
func slice(arr []any, args []any) (any, error) {
	start, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	end, err := ops.OptInt(args, 1, len(arr))
	if err != nil {
		return nil, err
	}
	if start < 0 {
		start = max(len(arr)+start, 0)
	}
	if end < 0 {
		end = max(len(arr)+end, 0)
	}
	return lo.Slice(arr, start, end), nil
}

// concat appends each argument, spreading array arguments.
func concat(arr []any, args []any) (any, error) {
	out := slices.Clone(arr)
	for _, a := range args {
		if typeclass.IsArray(a) {
			inner, _ := typeclass.ToArray(a)
			out = append(out, inner...)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func join(arr []any, args []any) (any, error) {
	sep, err := ops.OptArg(args, 0, ",")
	if err != nil {
		return nil, err
	}
	return strings.Join(lo.Map(arr, func(v any, _ int) string { return fmt.Sprint(v) }), sep), nil
}

func count(arr []any, _ []any) (any, error) {
	return len(arr), nil
}

func contains(arr []any, args []any) (any, error) {
	idx, err := indexOf(arr, args)
	if err != nil {
		return nil, err
	}
	return idx.(int) >= 0, nil
}

func indexOf(arr []any, args []any) (any, error) {
	if len(args) == 0 {
		return nil, ops.Invalid("missing argument 0")
	}
	_, idx, _ := lo.FindIndexOf(arr, func(v any) bool { return reflect.DeepEqual(v, args[0]) })
	return idx, nil
}

func reject(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	drop := make([]bool, len(arr))
	if err := iterate(arr, f, func(res, _ any, i int) { drop[i] = ops.Truthy(res) }); err != nil {
		return nil, err
	}
	return lo.Reject(arr, func(_ any, i int) bool { return drop[i] }), nil
}

// partition splits arr into the elements the predicate accepts and the rest.
func partition(arr []any, args []any) (any, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	pass, fail := []any{}, []any{}
	err = iterate(arr, f, func(res, v any, _ int) {
		if ops.Truthy(res) {
			pass = append(pass, v)
		} else {
			fail = append(fail, v)
		}
	})
	if err != nil {
		return nil, err
	}
	return []any{pass, fail}, nil
}

// groupKeys formats the callback result of every element as a group key.
func groupKeys(arr []any, args []any) ([]string, error) {
	f, err := ops.Callable(args, 0)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(arr))
	if err := iterate(arr, f, func(res, _ any, i int) { keys[i] = fmt.Sprint(res) }); err != nil {
		return nil, err
	}
	return keys, nil
}

func groupBy(arr []any, args []any) (any, error) {
	keys, err := groupKeys(arr, args)
	if err != nil {
		return nil, err
	}
	idx := lo.GroupBy(lo.Range(len(arr)), func(i int) string { return keys[i] })
	return lo.MapValues(idx, func(is []int, _ string) []any {
		return lo.Map(is, func(i int, _ int) any { return arr[i] })
	}), nil
}

func countBy(arr []any, args []any) (any, error) {
	keys, err := groupKeys(arr, args)
	if err != nil {
		return nil, err
	}
	return lo.CountValues(keys), nil
}

func maxOp(arr []any, args []any) (any, error) {
	return extreme(arr, args, 1)
}

func minOp(arr []any, args []any) (any, error) {
	return extreme(arr, args, -1)
}

// extreme returns the element ranking highest (sign 1) or lowest (sign -1)
// under Compare, optionally ranking by a callback result. Ties keep the
// earliest element; an empty array yields nil.
func extreme(arr []any, args []any, sign int) (any, error) {
	ranks := arr
	if len(args) > 0 {
		f, err := ops.Callable(args, 0)
		if err != nil {
			return nil, err
		}
		ranks = make([]any, len(arr))
		if err := iterate(arr, f, func(res, _ any, i int) { ranks[i] = res }); err != nil {
			return nil, err
		}
	}
	best := -1
	for i := range arr {
		if best < 0 || Compare(ranks[i], ranks[best])*sign > 0 {
			best = i
		}
	}
	if best < 0 {
		return nil, nil
	}
	return arr[best], nil
}
