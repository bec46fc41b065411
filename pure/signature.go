package pure

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Signature encodes an argument list into a deterministic cache key.
//
// Scalars encode their type and value. Slices, arrays, structs and maps are
// encoded structurally, maps with their entries sorted by encoded key.
// fmt.Stringer values encode through String(). Pointers, funcs and channels
// encode by identity, so two distinct pointers to equal structs are distinct
// arguments. A map or slice that contains itself encodes the inner
// occurrence by identity.
func Signature(args ...any) string {
	var b strings.Builder
	path := make(map[visit]struct{})
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		encode(&b, reflect.ValueOf(arg), path)
	}
	b.WriteByte(')')
	return b.String()
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

// visit identifies a map or slice being encoded. Slices sharing a backing
// array differ by length and type.
type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// encode writes v to b. path holds the maps and slices enclosing v.
func encode(b *strings.Builder, v reflect.Value, path map[visit]struct{}) {
	if !v.IsValid() {
		b.WriteString("nil")
		return
	}
	t := v.Type()
	if t.Implements(stringerType) && v.CanInterface() && !isNilRef(v) {
		b.WriteString(t.String())
		b.WriteString(strconv.Quote(v.Interface().(fmt.Stringer).String()))
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		encode(b, v.Elem(), path)
		return
	case reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			fmt.Fprintf(b, "%s(nil)", t)
			return
		}
		fmt.Fprintf(b, "%s@%#x", t, v.Pointer())
		return
	case reflect.Map, reflect.Slice:
		if !v.IsNil() {
			key := visit{ptr: v.Pointer(), len: v.Len(), typ: t}
			if _, ok := path[key]; ok {
				fmt.Fprintf(b, "%s@%#x", t, key.ptr)
				return
			}
			path[key] = struct{}{}
			defer delete(path, key)
		}
	}

	b.WriteString(t.String())
	switch v.Kind() {
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		b.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Slice:
		if v.IsNil() {
			b.WriteString("(nil)")
			return
		}
		encodeList(b, v, path)
	case reflect.Array:
		encodeList(b, v, path)
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("(nil)")
			return
		}
		encodeMap(b, v, path)
	case reflect.Struct:
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.Field(i).Name)
			b.WriteByte(':')
			encode(b, v.Field(i), path)
		}
		b.WriteByte('}')
	}
}

func isNilRef(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func encodeList(b *strings.Builder, v reflect.Value, path map[visit]struct{}) {
	b.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		encode(b, v.Index(i), path)
	}
	b.WriteByte(']')
}

func encodeMap(b *strings.Builder, v reflect.Value, path map[visit]struct{}) {
	entries := make([]string, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		var e strings.Builder
		encode(&e, iter.Key(), path)
		e.WriteByte(':')
		encode(&e, iter.Value(), path)
		entries = append(entries, e.String())
	}
	slices.Sort(entries)
	b.WriteByte('{')
	b.WriteString(strings.Join(entries, ","))
	b.WriteByte('}')
}
