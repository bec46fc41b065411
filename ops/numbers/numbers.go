// Package numbers is the chain's operation table for numeric values.
//
// Integer inputs stay integers of the same type wherever the result is
// integral; anything involving a float produces a float64.
package numbers

import (
	"math"
	"reflect"
	"strconv"

	"github.com/on-the-ground/extras_go/ops"

	"github.com/samber/lo"
)

var Table = ops.NewTable("numbers", map[string]ops.Op{
	"abs":      withNumber(abs),
	"ceil":     withNumber(rounding(math.Ceil)),
	"floor":    withNumber(rounding(math.Floor)),
	"round":    withNumber(round),
	"clamp":    withNumber(clamp),
	"add":      withNumber(add),
	"multiply": withNumber(multiply),
	"max":      withNumber(maxOp),
	"min":      withNumber(minOp),
	"toFixed":  withNumber(toFixed),
	"isNaN":    withNumber(isNaN),
	"isFinite": withNumber(isFinite),
})

// number is a numeric value together with its original type.
type number struct {
	value reflect.Value
	f     float64
}

func (n number) integral() bool {
	return n.value.CanInt() || n.value.CanUint()
}

// like converts f back to n's type when n is an integer, else to float64.
func (n number) like(f float64) any {
	if n.integral() {
		return reflect.ValueOf(f).Convert(n.value.Type()).Interface()
	}
	return f
}

func withNumber(op func(n number, args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		f, ok := ops.ToFloat(value)
		if !ok {
			return nil, ops.Invalid("%T is not a number", value)
		}
		return op(number{value: reflect.ValueOf(value), f: f}, args)
	}
}

func abs(n number, _ []any) (any, error) {
	if n.value.CanInt() && n.value.Int() < 0 {
		return reflect.ValueOf(-n.value.Int()).Convert(n.value.Type()).Interface(), nil
	}
	if n.integral() {
		return n.value.Interface(), nil
	}
	return math.Abs(n.f), nil
}

func rounding(f func(float64) float64) func(number, []any) (any, error) {
	return func(n number, _ []any) (any, error) {
		if n.integral() {
			return n.value.Interface(), nil
		}
		return f(n.f), nil
	}
}

// round rounds half away from zero, to the optional number of decimals.
func round(n number, args []any) (any, error) {
	places, err := ops.OptInt(args, 0, 0)
	if err != nil {
		return nil, err
	}
	if n.integral() && places >= 0 {
		return n.value.Interface(), nil
	}
	if places < 0 {
		unit := math.Pow(10, float64(-places))
		return n.like(math.Round(n.f/unit) * unit), nil
	}
	scale := math.Pow(10, float64(places))
	return n.like(math.Round(n.f*scale) / scale), nil
}

func clamp(n number, args []any) (any, error) {
	lower, err := ops.Float(args, 0)
	if err != nil {
		return nil, err
	}
	upper, err := ops.Float(args, 1)
	if err != nil {
		return nil, err
	}
	if lower > upper {
		return nil, ops.Invalid("clamp bounds %v > %v", lower, upper)
	}
	return n.like(lo.Clamp(n.f, lower, upper)), nil
}

// integers reports whether n and every argument are integers.
func integers(n number, args []any) bool {
	if !n.integral() {
		return false
	}
	return lo.EveryBy(args, func(a any) bool {
		rv := reflect.ValueOf(a)
		return a != nil && (rv.CanInt() || rv.CanUint())
	})
}

func floats(args []any) ([]float64, error) {
	out := make([]float64, len(args))
	for i := range args {
		f, err := ops.Float(args, i)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func add(n number, args []any) (any, error) {
	return arithmetic(n, args, lo.Sum[float64], func(a, b int64) int64 { return a + b })
}

func multiply(n number, args []any) (any, error) {
	return arithmetic(n, args, lo.Product[float64], func(a, b int64) int64 { return a * b })
}

// arithmetic folds the value and its arguments. All-integer input is folded
// as int64 and converted back to the value's type.
func arithmetic(n number, args []any, fold func([]float64) float64, op func(a, b int64) int64) (any, error) {
	fs, err := floats(args)
	if err != nil {
		return nil, err
	}
	if !integers(n, args) {
		return fold(append([]float64{n.f}, fs...)), nil
	}
	acc := toInt64(n.value)
	for _, a := range args {
		acc = op(acc, toInt64(reflect.ValueOf(a)))
	}
	return reflect.ValueOf(acc).Convert(n.value.Type()).Interface(), nil
}

func toInt64(v reflect.Value) int64 {
	return v.Convert(reflect.TypeFor[int64]()).Int()
}

func maxOp(n number, args []any) (any, error) {
	return pick(n, args, lo.Max[float64])
}

func minOp(n number, args []any) (any, error) {
	return pick(n, args, lo.Min[float64])
}

func pick(n number, args []any, choose func([]float64) float64) (any, error) {
	fs, err := floats(args)
	if err != nil {
		return nil, err
	}
	best := choose(append([]float64{n.f}, fs...))
	if integers(n, args) {
		return n.like(best), nil
	}
	return best, nil
}

// toFixed formats the number with a fixed number of decimals (default 0).
func toFixed(n number, args []any) (any, error) {
	digits, err := ops.OptInt(args, 0, 0)
	if err != nil {
		return nil, err
	}
	if digits < 0 || digits > 100 {
		return nil, ops.Invalid("toFixed digits %d out of range", digits)
	}
	return strconv.FormatFloat(n.f, 'f', digits, 64), nil
}

func isNaN(n number, _ []any) (any, error) {
	return math.IsNaN(n.f), nil
}

func isFinite(n number, _ []any) (any, error) {
	return !math.IsNaN(n.f) && !math.IsInf(n.f, 0), nil
}
