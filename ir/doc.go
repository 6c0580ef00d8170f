// Package ir provides the document node model for skein.
//
// # Overview
//
// Every skein document, whether parsed from text, produced by the gomap
// engine, or constructed programmatically, is represented as a tree of
// ir.Node values. The node model is a closed set of variants:
//
//   - *Scalar: a leaf textual value; numeric and boolean typing is left to
//     the consumer (the gomap engine resolves "42" against the Go type it
//     decodes into)
//   - *Null: explicit null
//   - *List: ordered sequence of nodes
//   - *Map: ordered sequence of key/value pairs; entry order is significant
//     and is never deduplicated or reordered by this package
//   - *Tagged: wraps another node with a type discriminator used for
//     polymorphic round-trips; a Tagged node never directly wraps another
//     Tagged node
//
// # Paths
//
// Each node carries a Path: the sequence of map-key and list-index steps
// from the document root, rendered like "$.spec.containers[0].name". Paths
// exist for diagnostics only. They are not part of a node's identity:
// Equal and Compare ignore them, and two nodes differing only in paths
// compare equal.
//
// # Immutability
//
// Nodes are immutable value objects by convention. Nothing in this module
// mutates a node after construction; rewriting helpers (WithTag, Inner,
// Rebase) return new nodes and share unchanged subtrees. This makes nodes
// safe to share across concurrent (de)serialization calls without locking.
//
// # Related Packages
//
//   - github.com/skein-format/go-skein/parse - parses text into nodes
//   - github.com/skein-format/go-skein/encode - encodes nodes to text
//   - github.com/skein-format/go-skein/codec - transformation layer over nodes
//   - github.com/skein-format/go-skein/gomap - converts Go values to/from nodes
package ir
