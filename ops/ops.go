// Package ops defines the operation tables the chain dispatcher forwards to.
//
// Every type-specific module (arrays, strings, numbers, booleans,
// collections, functions) publishes a Table of Ops. An Op takes the wrapped
// value first and the chain call's arguments after it. A name missing from a
// table is reported by Lookup, never by an Op, so "no such operation" stays
// distinct from "operation failed".
package ops

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/on-the-ground/extras_go/fn"
	"github.com/on-the-ground/extras_go/shared/helper"
)

// Op is a pure operation on a wrapped value.
type Op func(value any, args ...any) (any, error)

// Table is a named, immutable set of operations.
type Table struct {
	name string
	ops  map[string]Op
}

func NewTable(name string, ops map[string]Op) *Table {
	return &Table{name: name, ops: ops}
}

func (t *Table) Name() string { return t.name }

func (t *Table) Lookup(op string) (Op, bool) {
	f, ok := t.ops[op]
	return f, ok
}

// Names lists the table's operations in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.ops))
	for name := range t.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invalid wraps fn.ErrInvalidArgument with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", fn.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Arg returns args[i] as T.
func Arg[T any](args []any, i int) (T, error) {
	if i >= len(args) {
		var zero T
		return zero, Invalid("missing argument %d", i)
	}
	v, err := helper.TypedValueOf[T](args[i])
	if err != nil {
		return v, fmt.Errorf("%w: argument %d: %w", fn.ErrInvalidArgument, i, err)
	}
	return v, nil
}

// OptArg returns args[i] as T, or def when the argument is absent.
func OptArg[T any](args []any, i int, def T) (T, error) {
	if i >= len(args) {
		return def, nil
	}
	return Arg[T](args, i)
}

// Int converts any integer or integral float argument to int.
func Int(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, Invalid("missing argument %d", i)
	}
	f, ok := ToFloat(args[i])
	if !ok || f != math.Trunc(f) {
		return 0, Invalid("argument %d: want integer, got %T", i, args[i])
	}
	return int(f), nil
}

// OptInt is Int with a default for an absent argument.
func OptInt(args []any, i int, def int) (int, error) {
	if i >= len(args) {
		return def, nil
	}
	return Int(args, i)
}

// Float converts any numeric argument to float64.
func Float(args []any, i int) (float64, error) {
	if i >= len(args) {
		return 0, Invalid("missing argument %d", i)
	}
	f, ok := ToFloat(args[i])
	if !ok {
		return 0, Invalid("argument %d: want number, got %T", i, args[i])
	}
	return f, nil
}

// Callable resolves args[i] into a fn.Func.
func Callable(args []any, i int) (fn.Func, error) {
	if i >= len(args) {
		return nil, Invalid("missing callable argument %d", i)
	}
	f, err := fn.Resolve(args[i])
	if err != nil {
		return nil, fmt.Errorf("argument %d: %w", i, err)
	}
	return f, nil
}

// ToFloat converts any numeric kind to float64.
func ToFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// Truthy reports whether v counts as true when an operation needs a
// condition: nil, false, zero numbers, empty strings and empty
// slices, arrays or maps are false.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if f, ok := ToFloat(v); ok {
		return f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// Duration reads args[i] as a time.Duration. Plain numbers count
// milliseconds.
func Duration(args []any, i int) (time.Duration, error) {
	if i >= len(args) {
		return 0, Invalid("missing argument %d", i)
	}
	if d, ok := args[i].(time.Duration); ok {
		return d, nil
	}
	ms, ok := ToFloat(args[i])
	if !ok {
		return 0, Invalid("argument %d: want duration or milliseconds, got %T", i, args[i])
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}
