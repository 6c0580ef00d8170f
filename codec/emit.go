package codec

import (
	"fmt"

	"github.com/skein-format/go-skein/ir"
)

// EmitNode writes a complete node through w, using whole-node exchange
// when w supports it and structural calls otherwise.
func EmitNode(w Writer, n ir.Node) error {
	if tw, ok := w.(TreeWriter); ok {
		return tw.WriteNode(n)
	}
	return emit(w, n)
}

func emit(w Writer, n ir.Node) error {
	switch x := n.(type) {
	case *ir.Null:
		return w.Null()
	case *ir.Scalar:
		return w.Scalar(x.Content)
	case *ir.Tagged:
		if err := w.Tag(x.Tag); err != nil {
			return err
		}
		return emit(w, x.Inner)
	case *ir.List:
		if err := w.List(len(x.Items)); err != nil {
			return err
		}
		for _, item := range x.Items {
			if err := emit(w, item); err != nil {
				return err
			}
		}
		return nil
	case *ir.Map:
		if err := w.Map(len(x.Entries)); err != nil {
			return err
		}
		for i := range x.Entries {
			if err := emit(w, x.Entries[i].Key); err != nil {
				return err
			}
			if err := emit(w, x.Entries[i].Val); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot emit nil node")
}

// ReadNode consumes the value r is positioned at and materializes it as a
// node, using whole-node exchange when r supports it.
func ReadNode(r Reader) (ir.Node, error) {
	if tr, ok := r.(TreeReader); ok {
		return tr.Node()
	}
	return read(r)
}

func read(r Reader) (ir.Node, error) {
	kind, err := r.Kind()
	if err != nil {
		return nil, err
	}
	if kind == ir.TaggedKind {
		tag, err := r.Tag()
		if err != nil {
			return nil, err
		}
		inner, err := read(r)
		if err != nil {
			return nil, err
		}
		return ir.WithTag(tag, inner), nil
	}
	switch kind {
	case ir.NullKind:
		if err := r.Null(); err != nil {
			return nil, err
		}
		return &ir.Null{}, nil
	case ir.ScalarKind:
		content, err := r.Scalar()
		if err != nil {
			return nil, err
		}
		return &ir.Scalar{Content: content}, nil
	case ir.ListKind:
		n, err := r.List()
		if err != nil {
			return nil, err
		}
		res := &ir.List{Items: make([]ir.Node, n)}
		for i := 0; i < n; i++ {
			if res.Items[i], err = read(r); err != nil {
				return nil, err
			}
		}
		return res, nil
	case ir.MapKind:
		n, err := r.Map()
		if err != nil {
			return nil, err
		}
		res := &ir.Map{Entries: make([]ir.KeyVal, n)}
		for i := 0; i < n; i++ {
			if res.Entries[i].Key, err = read(r); err != nil {
				return nil, err
			}
			if res.Entries[i].Val, err = read(r); err != nil {
				return nil, err
			}
		}
		return res, nil
	}
	return nil, errExhausted
}
