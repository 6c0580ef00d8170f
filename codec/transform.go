package codec

import (
	"github.com/skein-format/go-skein/ir"
)

// Transform rewrites a document node. Transforms must be pure: they
// receive the node a codec produced and return a well-formed replacement,
// which may be of a different kind entirely. Hooks never see partially
// written values; the tree is complete when they run.
type Transform func(ir.Node) (ir.Node, error)

// Identity returns its input unchanged. Pass it explicitly for the
// direction a transformer leaves alone; there is no silent default, so a
// one-directional transform is a visible decision rather than an accident.
func Identity(n ir.Node) (ir.Node, error) { return n, nil }

// Transformer wraps an inner codec and rewrites the document tree between
// the codec and the writer/reader. It requires writers and readers that
// support whole-node exchange (see AsTreeWriter); handing it an endpoint
// of another format fails with *FormatMismatchError before any conversion
// is attempted.
type Transformer[T any] struct {
	inner       Codec[T]
	serialize   Transform
	deserialize Transform
	desc        *Descriptor
}

// NewTransformer wraps inner with the two directional hooks. Both must be
// non-nil; use Identity for a direction that passes through. A nil hook
// panics: silently defaulting would mask asymmetric transform pairs.
func NewTransformer[T any](inner Codec[T], serialize, deserialize Transform) *Transformer[T] {
	if inner == nil {
		panic("codec: nil inner codec")
	}
	if serialize == nil || deserialize == nil {
		panic("codec: nil transform; pass codec.Identity explicitly")
	}
	return &Transformer[T]{
		inner:       inner,
		serialize:   serialize,
		deserialize: deserialize,
	}
}

// WithDescriptor overrides the descriptor the transformer advertises,
// e.g. when a transform reshapes values so thoroughly that the inner
// codec's shape would mislead schema tooling. It does not affect
// (de)serialization.
func (t *Transformer[T]) WithDescriptor(d *Descriptor) *Transformer[T] {
	t.desc = d
	return t
}

// Descriptor delegates to the inner codec unless overridden.
func (t *Transformer[T]) Descriptor() *Descriptor {
	if t.desc != nil {
		return t.desc
	}
	return t.inner.Descriptor()
}

// Serialize runs the inner codec against a tree-capturing writer, passes
// the captured node through the serialize hook, and writes the result
// whole. Errors from the narrowing, the inner codec and the hook propagate
// verbatim.
func (t *Transformer[T]) Serialize(w Writer, v T) error {
	tw, err := AsTreeWriter(w)
	if err != nil {
		return err
	}
	nb := NewNodeBuilder(tw.Engine())
	if err := t.inner.Serialize(nb, v); err != nil {
		return err
	}
	node, err := nb.Node()
	if err != nil {
		return err
	}
	node, err = t.serialize(node)
	if err != nil {
		return err
	}
	return tw.WriteNode(node)
}

// Deserialize reads the current node whole, passes it through the
// deserialize hook, and runs the inner codec against the result via a
// tree-backed reader sharing the same engine. Shape mismatches surface as
// the inner codec's own errors, path intact.
func (t *Transformer[T]) Deserialize(r Reader) (T, error) {
	var zero T
	tr, err := AsTreeReader(r)
	if err != nil {
		return zero, err
	}
	node, err := tr.Node()
	if err != nil {
		return zero, err
	}
	node, err = t.deserialize(node)
	if err != nil {
		return zero, err
	}
	return t.inner.Deserialize(NewNodeReader(node, tr.Engine()))
}
