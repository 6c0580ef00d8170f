package ir

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Kind identifies a node variant.
type Kind int

const (
	NullKind Kind = iota
	ScalarKind
	ListKind
	MapKind
	TaggedKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case ScalarKind:
		return "scalar"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	case TaggedKind:
		return "tagged"
	}
	return fmt.Sprintf("<err: %d is not a kind>", int(k))
}

// Kinds returns all node kinds.
func Kinds() []Kind {
	return []Kind{NullKind, ScalarKind, ListKind, MapKind, TaggedKind}
}

// Node is a value in a skein document tree. The implementations are exactly
// *Scalar, *Null, *List, *Map and *Tagged; consumers switch over the
// concrete type or over Kind().
type Node interface {
	Kind() Kind
	// Path reports the node's structural location from the document root.
	// It is diagnostic metadata only and never participates in equality.
	Path() Path

	node()
}

// Scalar is a leaf textual value. Whether "42" is a number, a string or
// something else is decided by whatever decodes the node, not here.
type Scalar struct {
	Content string
	At      Path
}

// Null is an explicit null value.
type Null struct {
	At Path
}

// List is an ordered sequence of nodes. Order is semantically significant.
type List struct {
	Items []Node
	At    Path
}

// KeyVal is a single map entry. Keys are typically scalars but any node may
// key an entry.
type KeyVal struct {
	Key Node
	Val Node
}

// Map is an ordered sequence of entries. Insertion order is preserved for
// deterministic round-trips; nothing in this package deduplicates or
// reorders entries.
type Map struct {
	Entries []KeyVal
	At      Path
}

// Tagged wraps a node with a type discriminator, recorded at the tree
// boundary rather than inside field values. Inner is never itself *Tagged.
type Tagged struct {
	Tag   string
	Inner Node
	At    Path
}

func (n *Scalar) Kind() Kind { return ScalarKind }
func (n *Null) Kind() Kind   { return NullKind }
func (n *List) Kind() Kind   { return ListKind }
func (n *Map) Kind() Kind    { return MapKind }
func (n *Tagged) Kind() Kind { return TaggedKind }

func (n *Scalar) Path() Path { return n.At }
func (n *Null) Path() Path   { return n.At }
func (n *List) Path() Path   { return n.At }
func (n *Map) Path() Path    { return n.At }
func (n *Tagged) Path() Path { return n.At }

func (n *Scalar) node() {}
func (n *Null) node()   {}
func (n *List) node()   {}
func (n *Map) node()    {}
func (n *Tagged) node() {}

func FromString(v string) *Scalar {
	return &Scalar{Content: v}
}

func FromInt(v int64) *Scalar {
	return &Scalar{Content: strconv.FormatInt(v, 10)}
}

func FromUint(v uint64) *Scalar {
	return &Scalar{Content: strconv.FormatUint(v, 10)}
}

func FromFloat(v float64) *Scalar {
	return &Scalar{Content: strconv.FormatFloat(v, 'g', -1, 64)}
}

func FromBool(v bool) *Scalar {
	return &Scalar{Content: strconv.FormatBool(v)}
}

func NullNode() *Null {
	return &Null{}
}

// FromSlice builds a list node, rebasing each item's subtree under its
// index.
func FromSlice(items []Node) *List {
	res := &List{Items: make([]Node, len(items))}
	for i, item := range items {
		res.Items[i] = Rebase(item, Path{}.Index(i))
	}
	return res
}

// FromKeyVals builds a map node preserving the given entry order. Values
// under scalar keys are rebased under that key.
func FromKeyVals(kvs []KeyVal) *Map {
	res := &Map{Entries: make([]KeyVal, len(kvs))}
	for i, kv := range kvs {
		key := kv.Key
		if key == nil {
			key = NullNode()
		}
		val := kv.Val
		if s, ok := key.(*Scalar); ok {
			val = Rebase(val, Path{}.Key(s.Content))
		}
		res.Entries[i] = KeyVal{Key: key, Val: val}
	}
	return res
}

// FromMap builds a map node with string keys in sorted order. Use
// FromKeyVals when entry order matters.
func FromMap(m map[string]Node) *Map {
	kvs := make([]KeyVal, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		kvs = append(kvs, KeyVal{Key: FromString(key), Val: m[key]})
	}
	return FromKeyVals(kvs)
}

// WithTag wraps n in a tagged node. Tagging an already tagged node replaces
// its tag, so an inner node is never itself tagged.
func WithTag(tag string, n Node) *Tagged {
	if t, ok := n.(*Tagged); ok {
		return &Tagged{Tag: tag, Inner: t.Inner, At: t.At}
	}
	return &Tagged{Tag: tag, Inner: n, At: n.Path()}
}

// Inner strips a tag wrapper, if any.
func Inner(n Node) Node {
	if t, ok := n.(*Tagged); ok {
		return t.Inner
	}
	return n
}

// TagOf reports the tag wrapping n, or "" when untagged.
func TagOf(n Node) string {
	if t, ok := n.(*Tagged); ok {
		return t.Tag
	}
	return ""
}

// Get returns the value for a scalar key in a map node, or nil if n is not
// a map or has no such key. On duplicate keys the first entry wins.
func Get(n Node, key string) Node {
	m, ok := n.(*Map)
	if !ok {
		return nil
	}
	for i := range m.Entries {
		if s, ok := m.Entries[i].Key.(*Scalar); ok && s.Content == key {
			return m.Entries[i].Val
		}
	}
	return nil
}

// Visit walks n pre- and post-order. f is called with isPost=false before
// descending; returning dive=false skips children. It is called again with
// isPost=true after children.
func Visit(n Node, f func(n Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		switch x := n.(type) {
		case *List:
			for _, item := range x.Items {
				if err := Visit(item, f); err != nil {
					return err
				}
			}
		case *Map:
			for i := range x.Entries {
				if err := Visit(x.Entries[i].Key, f); err != nil {
					return err
				}
				if err := Visit(x.Entries[i].Val, f); err != nil {
					return err
				}
			}
		case *Tagged:
			if err := Visit(x.Inner, f); err != nil {
				return err
			}
		}
	}
	_, err = f(n, true)
	return err
}

// Rebase returns n with its whole subtree's paths re-rooted at base.
// Transform hooks construct literal nodes with empty paths; rebasing stamps
// consistent locations back on so diagnostics stay meaningful.
func Rebase(n Node, base Path) Node {
	switch x := n.(type) {
	case *Scalar:
		return &Scalar{Content: x.Content, At: base}
	case *Null:
		return &Null{At: base}
	case *List:
		res := &List{Items: make([]Node, len(x.Items)), At: base}
		for i, item := range x.Items {
			res.Items[i] = Rebase(item, base.Index(i))
		}
		return res
	case *Map:
		res := &Map{Entries: make([]KeyVal, len(x.Entries)), At: base}
		for i := range x.Entries {
			kv := x.Entries[i]
			key := Rebase(kv.Key, base)
			val := kv.Val
			if s, ok := kv.Key.(*Scalar); ok {
				val = Rebase(val, base.Key(s.Content))
			} else {
				val = Rebase(val, base)
			}
			res.Entries[i] = KeyVal{Key: key, Val: val}
		}
		return res
	case *Tagged:
		return &Tagged{Tag: x.Tag, Inner: Rebase(x.Inner, base), At: base}
	}
	return n
}
