// Package typeclass answers "what kind of value is this?" for dispatch.
//
// Classification is a total function over any Go value and follows a fixed
// priority order:
//
//	Boolean → Number → ArrayLike → String → Collection → Callable → Unclassified
//
// Only the first matching tag is returned. Go's kind system already keeps
// most categories disjoint; the order is the tie-break for the remaining
// overlaps (for instance an iter.Seq is a func value but classifies as a
// Collection).
//
// Unclassified values that are structured (structs, maps, pointers to
// structs) can be flattened into an array with ToArray, which is what the
// chain dispatcher does before giving up on a value.
package typeclass
