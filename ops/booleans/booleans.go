// Package booleans is the chain's operation table for bool values.
package booleans

import (
	"reflect"
	"strconv"

	"github.com/on-the-ground/extras_go/ops"

	"github.com/samber/lo"
)

var Table = ops.NewTable("booleans", map[string]ops.Op{
	"not":      withBool(not),
	"and":      withBool(and),
	"or":       withBool(or),
	"xor":      withBool(xor),
	"toString": withBool(toString),
})

func withBool(op func(b bool, args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		if value == nil || reflect.TypeOf(value).Kind() != reflect.Bool {
			return nil, ops.Invalid("%T is not a bool", value)
		}
		return op(reflect.ValueOf(value).Bool(), args)
	}
}

func not(b bool, _ []any) (any, error) {
	return !b, nil
}

// and is true when the value and every argument are truthy.
func and(b bool, args []any) (any, error) {
	return b && lo.EveryBy(args, ops.Truthy), nil
}

// or is true when the value or any argument is truthy.
func or(b bool, args []any) (any, error) {
	return b || lo.SomeBy(args, ops.Truthy), nil
}

func xor(b bool, args []any) (any, error) {
	other, err := ops.Arg[bool](args, 0)
	if err != nil {
		return nil, err
	}
	return b != other, nil
}

func toString(b bool, _ []any) (any, error) {
	return strconv.FormatBool(b), nil
}
