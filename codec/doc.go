// Package codec defines how typed values travel through document trees,
// and lets that journey be intercepted.
//
// # Architecture
//
// A Codec[T] converts values of T to and from serialized form through a
// Writer or Reader: format-specific endpoints that accept a value as a
// sequence of structural calls (scalars, nulls, list and map brackets).
// The gomap package provides the default engine-backed codec for any Go
// type; custom codecs implement the interface directly.
//
// Skein's writers and readers additionally implement TreeWriter and
// TreeReader: the capability to exchange a whole document node at once
// instead of primitive-by-primitive. AsTreeWriter and AsTreeReader narrow
// a generic writer/reader to that capability, failing with
// *FormatMismatchError when the endpoint belongs to some other format.
// The narrowing is a pure capability check; it performs no I/O.
//
// # Transformers
//
// A Transformer[T] wraps an inner codec and rewrites the document tree in
// flight:
//
//	serialize:   value --inner codec--> node --hook--> node --> writer
//	deserialize: reader --> node --hook--> node --inner codec--> value
//
// Hooks are ordinary pure functions from node to node, so they compose and
// unit-test without any writer or reader. Both directions must be given
// explicitly (use Identity for a pass-through); a transformer with identity
// hooks behaves observably identically to its inner codec.
//
// Transformers hold no per-call state: one instance may serialize and
// deserialize concurrently for independent values.
package codec
