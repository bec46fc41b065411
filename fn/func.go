package fn

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidArgument is returned when a combinator receives something it
// cannot work with, such as a non-callable or arguments of the wrong type.
var ErrInvalidArgument = errors.New("invalid argument")

// Func is the uniform shape every callable is resolved into.
type Func func(args ...any) (any, error)

// Invocable marks Func as callable for typeclass.
func (Func) Invocable() {}

// Method pairs a receiver with the name of one of its methods.
type Method struct {
	Target any
	Name   string
}

func (Method) Invocable() {}

func (m Method) resolve() (Func, error) {
	if m.Target == nil {
		return nil, fmt.Errorf("%w: method %q on nil target", ErrInvalidArgument, m.Name)
	}
	mv := reflect.ValueOf(m.Target).MethodByName(m.Name)
	if !mv.IsValid() {
		return nil, fmt.Errorf("%w: %T has no method %q", ErrInvalidArgument, m.Target, m.Name)
	}
	return adapt(mv), nil
}

// asMethod recognizes a Method or a []any{target, "Name"} pair.
func asMethod(callable any) (Method, bool) {
	switch c := callable.(type) {
	case Method:
		return c, true
	case []any:
		if len(c) != 2 {
			return Method{}, false
		}
		name, ok := c[1].(string)
		return Method{Target: c[0], Name: name}, ok
	}
	return Method{}, false
}

// Resolve turns a callable into a Func using the default registry.
func Resolve(callable any) (Func, error) {
	return DefaultRegistry.Resolve(callable)
}

// MustResolve is the panic-on-failure variant of Resolve.
func MustResolve(callable any) Func {
	f, err := Resolve(callable)
	if err != nil {
		panic(err)
	}
	return f
}

var errorType = reflect.TypeFor[error]()

// adapt wraps a reflected func value.
//
// Arguments are converted to the parameter types: nil becomes the zero
// value, numbers convert between numeric kinds. Surplus arguments to a
// non-variadic func are dropped, missing ones are an error. A trailing error
// result becomes the returned error; two or more other results come back as
// a []any.
func adapt(fv reflect.Value) Func {
	ft := fv.Type()
	return func(args ...any) (any, error) {
		in, err := convertArgs(ft, args)
		if err != nil {
			return nil, err
		}
		return collect(ft, fv.Call(in))
	}
}

func convertArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("%w: %s wants at least %d arguments, got %d", ErrInvalidArgument, ft, n-1, len(args))
		}
	} else {
		if len(args) < n {
			return nil, fmt.Errorf("%w: %s wants %d arguments, got %d", ErrInvalidArgument, ft, n, len(args))
		}
		args = args[:n]
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := paramType(ft, i)
		v, err := convert(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if last := ft.NumIn() - 1; ft.IsVariadic() && i >= last {
		return ft.In(last).Elem()
	}
	return ft.In(i)
}

func convert(a any, t reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(t), nil
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(t.Kind()) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrInvalidArgument, a, t)
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func collect(ft reflect.Type, out []reflect.Value) (any, error) {
	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
		if e, _ := out[n-1].Interface().(error); e != nil {
			return nil, e
		}
		out = out[:n-1]
	}
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	}
	res := make([]any, len(out))
	for i, o := range out {
		res[i] = o.Interface()
	}
	return res, nil
}

func reflectFunc(callable any) reflect.Value {
	fv := reflect.ValueOf(callable)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return reflect.Value{}
	}
	return fv
}
