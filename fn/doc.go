// Package fn provides function combinators over dynamically typed callables.
//
// Go functions come in many shapes, so the package normalizes them into a
// single Func signature through Resolve. A callable may be:
//
//   - a Func, or any other Go func value (adapted by reflection);
//   - a Reference such as Ref("strings::ToUpper"), looked up in a Registry;
//   - a Method pairing a receiver with a method name, or the equivalent
//     two-element []any{receiver, "Name"} pair.
//
// Resolution happens once, when a combinator is built. A bad callable is
// reported then as ErrInvalidArgument rather than on every call.
//
// Typed, reflection-free counterparts (Compose2, Pipe, Not, Partial1,
// TimesOf) are provided for callers that know their types statically.
package fn
