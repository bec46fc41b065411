// Package chain provides Chain, a fluent wrapper that pipes one value
// through successive operations without naming its type at each step.
//
// Every Invoke classifies the held value with typeclass.Classify and
// forwards the call to the operation table registered for that tag:
//
//	v, err := chain.New([]int{5, 1, 7}).
//		Invoke("sort").
//		Invoke("join", "-").
//		Result()
//	// v == "1-5-7"
//
// A struct or map value with no table of its own is converted to an array
// once before dispatch. Errors are sticky: after the first failure every
// further call is a no-op and Err reports that failure.
package chain
