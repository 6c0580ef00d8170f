package codec

import (
	"errors"
	"fmt"

	"github.com/skein-format/go-skein/ir"
)

var errExhausted = errors.New("no value left to read")

// NodeReader is a tree-backed reader: it implements Reader (and
// TreeReader) by walking an already materialized document node.
type NodeReader struct {
	eng     Engine
	pending []ir.Node // stack; top is the current value
}

func NewNodeReader(n ir.Node, eng Engine) *NodeReader {
	return &NodeReader{eng: eng, pending: []ir.Node{n}}
}

// Engine reports the engine this read runs under.
func (r *NodeReader) Engine() Engine { return r.eng }

func (r *NodeReader) current() (ir.Node, error) {
	if len(r.pending) == 0 {
		return nil, errExhausted
	}
	return r.pending[len(r.pending)-1], nil
}

func (r *NodeReader) pop() ir.Node {
	n := r.pending[len(r.pending)-1]
	r.pending = r.pending[:len(r.pending)-1]
	return n
}

func (r *NodeReader) Kind() (ir.Kind, error) {
	n, err := r.current()
	if err != nil {
		return 0, err
	}
	return n.Kind(), nil
}

// Tag consumes a tag wrapper, repositioning at the wrapped value. On an
// untagged value it returns "" and does not move.
func (r *NodeReader) Tag() (string, error) {
	n, err := r.current()
	if err != nil {
		return "", err
	}
	t, ok := n.(*ir.Tagged)
	if !ok {
		return "", nil
	}
	r.pop()
	r.pending = append(r.pending, t.Inner)
	return t.Tag, nil
}

func (r *NodeReader) Scalar() (string, error) {
	n, err := r.current()
	if err != nil {
		return "", err
	}
	s, ok := n.(*ir.Scalar)
	if !ok {
		return "", mismatch(n, ir.ScalarKind)
	}
	r.pop()
	return s.Content, nil
}

func (r *NodeReader) Null() error {
	n, err := r.current()
	if err != nil {
		return err
	}
	if _, ok := n.(*ir.Null); !ok {
		return mismatch(n, ir.NullKind)
	}
	r.pop()
	return nil
}

func (r *NodeReader) List() (int, error) {
	n, err := r.current()
	if err != nil {
		return 0, err
	}
	l, ok := n.(*ir.List)
	if !ok {
		return 0, mismatch(n, ir.ListKind)
	}
	r.pop()
	for i := len(l.Items) - 1; i >= 0; i-- {
		r.pending = append(r.pending, l.Items[i])
	}
	return len(l.Items), nil
}

func (r *NodeReader) Map() (int, error) {
	n, err := r.current()
	if err != nil {
		return 0, err
	}
	m, ok := n.(*ir.Map)
	if !ok {
		return 0, mismatch(n, ir.MapKind)
	}
	r.pop()
	for i := len(m.Entries) - 1; i >= 0; i-- {
		r.pending = append(r.pending, m.Entries[i].Val)
		r.pending = append(r.pending, m.Entries[i].Key)
	}
	return len(m.Entries), nil
}

// Node consumes the current value whole.
func (r *NodeReader) Node() (ir.Node, error) {
	if _, err := r.current(); err != nil {
		return nil, err
	}
	return r.pop(), nil
}

func mismatch(n ir.Node, want ir.Kind) error {
	return fmt.Errorf("expected %s at %s, got %s", want, n.Path(), n.Kind())
}
