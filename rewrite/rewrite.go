package rewrite

import (
	"fmt"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/ir"
)

// Compose chains transforms left to right: the output of each feeds the
// next. Composing nothing yields the identity.
func Compose(ts ...codec.Transform) codec.Transform {
	return func(n ir.Node) (ir.Node, error) {
		var err error
		for i, t := range ts {
			if n, err = t(n); err != nil {
				return nil, err
			}
			if debug.Transform() {
				debug.Logf("transform %d/%d ->\n%s\n", i+1, len(ts), debug.Skein{Node: n})
			}
		}
		return n, nil
	}
}

// MapScalars rewrites the content of every scalar in the tree, map keys
// included.
func MapScalars(f func(content string) string) codec.Transform {
	var apply func(n ir.Node) ir.Node
	apply = func(n ir.Node) ir.Node {
		switch x := n.(type) {
		case *ir.Scalar:
			return &ir.Scalar{Content: f(x.Content), At: x.At}
		case *ir.List:
			res := &ir.List{Items: make([]ir.Node, len(x.Items)), At: x.At}
			for i, item := range x.Items {
				res.Items[i] = apply(item)
			}
			return res
		case *ir.Map:
			res := &ir.Map{Entries: make([]ir.KeyVal, len(x.Entries)), At: x.At}
			for i := range x.Entries {
				res.Entries[i] = ir.KeyVal{
					Key: apply(x.Entries[i].Key),
					Val: apply(x.Entries[i].Val),
				}
			}
			return res
		case *ir.Tagged:
			return &ir.Tagged{Tag: x.Tag, Inner: apply(x.Inner), At: x.At}
		}
		return n
	}
	return func(n ir.Node) (ir.Node, error) {
		return apply(n), nil
	}
}

// RenameField renames a top-level map key. Nodes that are not maps and
// maps without the key pass through unchanged.
func RenameField(from, to string) codec.Transform {
	return func(n ir.Node) (ir.Node, error) {
		m, ok := n.(*ir.Map)
		if !ok {
			return n, nil
		}
		res := &ir.Map{Entries: make([]ir.KeyVal, len(m.Entries)), At: m.At}
		for i := range m.Entries {
			kv := m.Entries[i]
			if s, ok := kv.Key.(*ir.Scalar); ok && s.Content == from {
				kv = ir.KeyVal{Key: &ir.Scalar{Content: to, At: s.At}, Val: kv.Val}
			}
			res.Entries[i] = kv
		}
		return res, nil
	}
}

// AtField applies t to the value of one top-level map key, leaving the
// rest of the map untouched. A missing key or non-map node passes
// through.
func AtField(key string, t codec.Transform) codec.Transform {
	return func(n ir.Node) (ir.Node, error) {
		m, ok := n.(*ir.Map)
		if !ok {
			return n, nil
		}
		res := &ir.Map{Entries: make([]ir.KeyVal, len(m.Entries)), At: m.At}
		for i := range m.Entries {
			kv := m.Entries[i]
			if s, ok := kv.Key.(*ir.Scalar); ok && s.Content == key {
				val, err := t(kv.Val)
				if err != nil {
					return nil, fmt.Errorf("at %s: %w", kv.Val.Path(), err)
				}
				kv = ir.KeyVal{Key: kv.Key, Val: val}
			}
			res.Entries[i] = kv
		}
		return res, nil
	}
}

// Retag wraps the document in a tag, replacing any existing one.
func Retag(tag string) codec.Transform {
	return func(n ir.Node) (ir.Node, error) {
		if err := ir.CheckTag(tag); err != nil {
			return nil, fmt.Errorf("retag: %w", err)
		}
		return ir.WithTag(tag, n), nil
	}
}

// Untag strips the document's tag wrapper, if any.
func Untag() codec.Transform {
	return func(n ir.Node) (ir.Node, error) {
		return ir.Inner(n), nil
	}
}
