package codec

import (
	"errors"
	"fmt"

	"github.com/skein-format/go-skein/ir"
)

var (
	errBuilderDone       = errors.New("document already complete")
	errBuilderIncomplete = errors.New("document incomplete")
)

// NodeBuilder is a tree-capturing writer: it implements Writer (and
// TreeWriter) by materializing the written value as a document node
// instead of producing text. The engine of the writer being captured for
// is carried along so nested codec invocations see the same engine.
type NodeBuilder struct {
	eng        Engine
	root       ir.Node
	stack      []builderFrame
	pendingTag string
	done       bool
}

type builderFrame struct {
	kind    ir.Kind
	tag     string
	left    int // values still expected
	items   []ir.Node
	entries []ir.KeyVal
	key     ir.Node
	onKey   bool
}

func NewNodeBuilder(eng Engine) *NodeBuilder {
	return &NodeBuilder{eng: eng}
}

// Engine reports the engine this capture runs under.
func (b *NodeBuilder) Engine() Engine { return b.eng }

// Done reports whether a complete top-level value has been written.
func (b *NodeBuilder) Done() bool { return b.done && len(b.stack) == 0 }

// Node returns the captured document with paths stamped from the root.
func (b *NodeBuilder) Node() (ir.Node, error) {
	if !b.Done() {
		return nil, errBuilderIncomplete
	}
	return ir.Rebase(b.root, ir.Path{}), nil
}

func (b *NodeBuilder) Tag(tag string) error {
	if err := b.writable(); err != nil {
		return err
	}
	if err := ir.CheckTag(tag); err != nil {
		return fmt.Errorf("bad tag %q: %w", tag, err)
	}
	if b.pendingTag != "" {
		return fmt.Errorf("a value may carry only one tag (%q, then %q)", b.pendingTag, tag)
	}
	b.pendingTag = tag
	return nil
}

func (b *NodeBuilder) Scalar(content string) error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.place(&ir.Scalar{Content: content})
}

func (b *NodeBuilder) Null() error {
	if err := b.writable(); err != nil {
		return err
	}
	return b.place(&ir.Null{})
}

func (b *NodeBuilder) List(n int) error {
	if err := b.writable(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("negative list length %d", n)
	}
	frame := builderFrame{kind: ir.ListKind, tag: b.takeTag(), left: n}
	if n == 0 {
		return b.place(finish(&frame))
	}
	b.stack = append(b.stack, frame)
	return nil
}

func (b *NodeBuilder) Map(n int) error {
	if err := b.writable(); err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("negative map length %d", n)
	}
	frame := builderFrame{kind: ir.MapKind, tag: b.takeTag(), left: 2 * n, onKey: true}
	if n == 0 {
		return b.place(finish(&frame))
	}
	b.stack = append(b.stack, frame)
	return nil
}

// WriteNode places a complete node at the current position: the capability
// that lets an already transformed tree pass through without decomposition.
func (b *NodeBuilder) WriteNode(n ir.Node) error {
	if err := b.writable(); err != nil {
		return err
	}
	if n == nil {
		return fmt.Errorf("nil node")
	}
	return b.place(n)
}

func (b *NodeBuilder) writable() error {
	if b.Done() {
		return errBuilderDone
	}
	return nil
}

func (b *NodeBuilder) takeTag() string {
	tag := b.pendingTag
	b.pendingTag = ""
	return tag
}

// place attaches a completed value to the enclosing composite, closing
// frames as they fill.
func (b *NodeBuilder) place(n ir.Node) error {
	if tag := b.takeTag(); tag != "" {
		n = ir.WithTag(tag, n)
	}
	for {
		if len(b.stack) == 0 {
			b.root = n
			b.done = true
			return nil
		}
		top := &b.stack[len(b.stack)-1]
		switch top.kind {
		case ir.ListKind:
			top.items = append(top.items, n)
		case ir.MapKind:
			if top.onKey {
				top.key = n
			} else {
				top.entries = append(top.entries, ir.KeyVal{Key: top.key, Val: n})
				top.key = nil
			}
			top.onKey = !top.onKey
		}
		top.left--
		if top.left > 0 {
			return nil
		}
		n = finish(top)
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func finish(f *builderFrame) ir.Node {
	var n ir.Node
	switch f.kind {
	case ir.ListKind:
		n = &ir.List{Items: f.items}
	case ir.MapKind:
		n = &ir.Map{Entries: f.entries}
	}
	if f.tag != "" {
		n = ir.WithTag(f.tag, n)
	}
	return n
}
