package typeclass

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Tag is the classification label assigned to a value for dispatch purposes.
type Tag int

const (
	Unclassified Tag = iota
	Boolean
	Number
	ArrayLike
	String
	Collection
	Callable
)

func (t Tag) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case ArrayLike:
		return "array"
	case String:
		return "string"
	case Collection:
		return "collection"
	case Callable:
		return "callable"
	default:
		return "unclassified"
	}
}

// Iterable is implemented by collection types that can be walked but make no
// promise about index or key access.
type Iterable interface {
	All() iter.Seq[any]
}

// Invocable marks non-func values that still resolve to a function,
// such as named references and receiver/method pairs.
type Invocable interface {
	Invocable()
}

// Classify returns the first tag matching v in priority order.
func Classify(v any) Tag {
	switch {
	case IsBoolean(v):
		return Boolean
	case IsNumber(v):
		return Number
	case IsArray(v):
		return ArrayLike
	case IsString(v):
		return String
	case IsCollection(v):
		return Collection
	case IsCallable(v):
		return Callable
	}
	return Unclassified
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

func IsBoolean(v any) bool {
	return kindOf(v) == reflect.Bool
}

func IsNumber(v any) bool {
	switch kindOf(v) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func IsArray(v any) bool {
	k := kindOf(v)
	return k == reflect.Slice || k == reflect.Array
}

func IsString(v any) bool {
	return kindOf(v) == reflect.String
}

// IsCollection reports whether v iterates without index access:
// an Iterable, an iter.Seq[any] or a channel that can be received from.
func IsCollection(v any) bool {
	switch v.(type) {
	case Iterable, iter.Seq[any], func(func(any) bool):
		return true
	}
	if kindOf(v) == reflect.Chan {
		return reflect.TypeOf(v).ChanDir()&reflect.RecvDir != 0
	}
	return false
}

func IsCallable(v any) bool {
	if _, ok := v.(Invocable); ok {
		return true
	}
	return kindOf(v) == reflect.Func && !reflect.ValueOf(v).IsNil()
}

// IsStructured reports whether v is a struct, a map or a non-nil pointer to a
// struct, i.e. something ToArray can flatten.
func IsStructured(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	case reflect.Pointer:
		return !rv.IsNil() && rv.Elem().Kind() == reflect.Struct
	}
	return false
}

// Seq returns an iterator over the elements of a Collection value.
func Seq(v any) (iter.Seq[any], bool) {
	switch c := v.(type) {
	case Iterable:
		return c.All(), true
	case iter.Seq[any]:
		return c, true
	case func(func(any) bool):
		return c, true
	}
	if !IsCollection(v) {
		return nil, false
	}
	ch := reflect.ValueOf(v)
	return func(yield func(any) bool) {
		for {
			x, ok := ch.Recv()
			if !ok || !yield(x.Interface()) {
				return
			}
		}
	}, true
}

// ToArray converts v into a []any.
//
//   - slices and arrays keep their element order;
//   - maps yield their values ordered by the formatted key;
//   - structs (and pointers to structs) yield exported field values in
//     declaration order;
//   - collections are drained, channels until they are closed.
//
// The second result is false when v has no array form.
func ToArray(v any) ([]any, bool) {
	if seq, ok := Seq(v); ok {
		return slices.Collect(seq), true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(k).Interface()
		}
		return out, true
	case reflect.Struct:
		out := make([]any, 0, rv.NumField())
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			out = append(out, rv.Field(i).Interface())
		}
		return out, true
	}
	return nil, false
}
