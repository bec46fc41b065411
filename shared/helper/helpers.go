package helper

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnexpectedType is returned when a value does not hold the requested type.
var ErrUnexpectedType = errors.New("unexpected type")

// TypedValueOf asserts v to T.
// A nil v yields the zero value of T when T can hold nil; otherwise a nil v is
// a type mismatch.
func TypedValueOf[T any](v any) (T, error) {
	var zero T
	if v == nil {
		if nillable(reflect.TypeOf((*T)(nil)).Elem()) {
			return zero, nil
		}
		return zero, fmt.Errorf("%w: want %T, got nil", ErrUnexpectedType, zero)
	}
	val, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: want %T, got %T", ErrUnexpectedType, zero, v)
	}
	return val, nil
}

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter fails or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	res, err := getFn()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get value: %w", err)
	}
	return TypedValueOf[T](res)
}

// MustGetTypedValue is the panic-on-failure variant of GetTypedValueOf.
// Use when failure is a programming error rather than bad input.
func MustGetTypedValue[T any](getFn func() (any, error)) T {
	res, err := GetTypedValueOf[T](getFn)
	if err != nil {
		panic(err)
	}
	return res
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
