package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/skein-format/go-skein/ir"
)

// greeting is a small hand-written codec used to exercise transformers
// without pulling in the reflection engine.
type greeting struct {
	Message string
}

type greetingCodec struct {
	serialized   int
	deserialized int
}

func (c *greetingCodec) Descriptor() *Descriptor {
	return &Descriptor{Name: "codec.greeting", Shape: ir.MapKind}
}

func (c *greetingCodec) Serialize(w Writer, v greeting) error {
	c.serialized++
	if err := w.Map(1); err != nil {
		return err
	}
	if err := w.Scalar("message"); err != nil {
		return err
	}
	return w.Scalar(v.Message)
}

func (c *greetingCodec) Deserialize(r Reader) (greeting, error) {
	c.deserialized++
	var res greeting
	n, err := r.Map()
	if err != nil {
		return res, err
	}
	for i := 0; i < n; i++ {
		key, err := r.Scalar()
		if err != nil {
			return res, err
		}
		val, err := r.Scalar()
		if err != nil {
			return res, err
		}
		if key == "message" {
			res.Message = val
		}
	}
	return res, nil
}

func serializeToNode[T any](t *testing.T, c Codec[T], v T) ir.Node {
	t.Helper()
	nb := NewNodeBuilder(nil)
	if err := c.Serialize(nb, v); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	n, err := nb.Node()
	if err != nil {
		t.Fatalf("Node: %v", err)
	}
	return n
}

func TestTransformerIdentityMatchesInner(t *testing.T) {
	inner := &greetingCodec{}
	tr := NewTransformer[greeting](inner, Identity, Identity)
	v := greeting{Message: "hello"}

	direct := serializeToNode[greeting](t, inner, v)
	wrapped := serializeToNode[greeting](t, tr, v)
	if !ir.Equal(direct, wrapped) {
		t.Errorf("identity transformer changed the serialized node")
	}

	got, err := tr.Deserialize(NewNodeReader(direct, nil))
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got != v {
		t.Errorf("round trip = %+v, want %+v", got, v)
	}
}

func upperScalars(n ir.Node) (ir.Node, error) {
	switch x := n.(type) {
	case *ir.Map:
		res := &ir.Map{At: x.At, Entries: make([]ir.KeyVal, len(x.Entries))}
		for i, kv := range x.Entries {
			val, err := upperScalars(kv.Val)
			if err != nil {
				return nil, err
			}
			res.Entries[i] = ir.KeyVal{Key: kv.Key, Val: val}
		}
		return res, nil
	case *ir.Scalar:
		return &ir.Scalar{Content: strings.ToUpper(x.Content), At: x.At}, nil
	}
	return n, nil
}

func lowerScalars(n ir.Node) (ir.Node, error) {
	switch x := n.(type) {
	case *ir.Map:
		res := &ir.Map{At: x.At, Entries: make([]ir.KeyVal, len(x.Entries))}
		for i, kv := range x.Entries {
			val, err := lowerScalars(kv.Val)
			if err != nil {
				return nil, err
			}
			res.Entries[i] = ir.KeyVal{Key: kv.Key, Val: val}
		}
		return res, nil
	case *ir.Scalar:
		return &ir.Scalar{Content: strings.ToLower(x.Content), At: x.At}, nil
	}
	return n, nil
}

func TestTransformerScalarRewrite(t *testing.T) {
	inner := &greetingCodec{}
	tr := NewTransformer[greeting](inner, upperScalars, lowerScalars)

	node := serializeToNode[greeting](t, tr, greeting{Message: "hello"})
	if got := ir.Get(node, "message"); !ir.Equal(got, ir.FromString("HELLO")) {
		t.Fatalf("serialize hook did not rewrite scalars: %v", node)
	}

	// the mirrored hook restores case on the way back in
	got, err := tr.Deserialize(NewNodeReader(node, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != "hello" {
		t.Errorf("round trip = %q, want %q", got.Message, "hello")
	}
}

// journey demonstrates a shape-reshaping transform: the declared shape is
// {first: X, rest: [...]} but the serialized form is one flat list.
type journey struct {
	First string
	Rest  []string
}

type journeyCodec struct{}

func (journeyCodec) Descriptor() *Descriptor {
	return &Descriptor{Name: "codec.journey", Shape: ir.MapKind}
}

func (journeyCodec) Serialize(w Writer, v journey) error {
	if err := w.Map(2); err != nil {
		return err
	}
	if err := w.Scalar("first"); err != nil {
		return err
	}
	if err := w.Scalar(v.First); err != nil {
		return err
	}
	if err := w.Scalar("rest"); err != nil {
		return err
	}
	if err := w.List(len(v.Rest)); err != nil {
		return err
	}
	for _, s := range v.Rest {
		if err := w.Scalar(s); err != nil {
			return err
		}
	}
	return nil
}

func (journeyCodec) Deserialize(r Reader) (journey, error) {
	var res journey
	n, err := r.Map()
	if err != nil {
		return res, err
	}
	for i := 0; i < n; i++ {
		key, err := r.Scalar()
		if err != nil {
			return res, err
		}
		switch key {
		case "first":
			if res.First, err = r.Scalar(); err != nil {
				return res, err
			}
		case "rest":
			ln, err := r.List()
			if err != nil {
				return res, err
			}
			for j := 0; j < ln; j++ {
				s, err := r.Scalar()
				if err != nil {
					return res, err
				}
				res.Rest = append(res.Rest, s)
			}
		}
	}
	return res, nil
}

func flatten(n ir.Node) (ir.Node, error) {
	first := ir.Get(n, "first")
	rest, ok := ir.Get(n, "rest").(*ir.List)
	if first == nil || !ok {
		return nil, errors.New("expected {first, rest}")
	}
	return &ir.List{Items: append([]ir.Node{first}, rest.Items...)}, nil
}

func unflatten(n ir.Node) (ir.Node, error) {
	l, ok := n.(*ir.List)
	if !ok || len(l.Items) == 0 {
		return nil, errors.New("expected a non-empty list")
	}
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("first"), Val: l.Items[0]},
		{Key: ir.FromString("rest"), Val: &ir.List{Items: l.Items[1:]}},
	}), nil
}

func TestTransformerReshapesVariant(t *testing.T) {
	tr := NewTransformer[journey](journeyCodec{}, flatten, unflatten)
	v := journey{First: "x", Rest: []string{"y", "z"}}

	node := serializeToNode[journey](t, tr, v)
	want := ir.FromSlice([]ir.Node{ir.FromString("x"), ir.FromString("y"), ir.FromString("z")})
	if !ir.Equal(node, want) {
		t.Fatalf("flattened node = %v, want [x, y, z]", node)
	}

	got, err := tr.Deserialize(NewNodeReader(node, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got.First != v.First || len(got.Rest) != 2 || got.Rest[0] != "y" || got.Rest[1] != "z" {
		t.Errorf("round trip = %+v, want %+v", got, v)
	}
}

func TestTransformerOneDirectional(t *testing.T) {
	// serialize-only transform: decoding the flattened form through the
	// untransformed inner codec fails with the inner codec's own shape
	// error, which is the documented lossy path.
	tr := NewTransformer[journey](journeyCodec{}, flatten, Identity)
	node := serializeToNode[journey](t, tr, journey{First: "x", Rest: []string{"y"}})

	if _, err := tr.Deserialize(NewNodeReader(node, nil)); err == nil {
		t.Errorf("deserializing a reshaped node without the inverse hook must fail")
	}
}

func TestTransformerFormatMismatch(t *testing.T) {
	inner := &greetingCodec{}
	tr := NewTransformer[greeting](inner, Identity, Identity)

	err := tr.Serialize(&plainWriter{w: NewNodeBuilder(nil)}, greeting{Message: "x"})
	var fmErr *FormatMismatchError
	if !errors.As(err, &fmErr) {
		t.Fatalf("Serialize error = %v, want FormatMismatchError", err)
	}
	src := NewNodeReader(ir.NullNode(), nil)
	if _, err := tr.Deserialize(&plainReader{r: src}); !errors.As(err, &fmErr) {
		t.Fatalf("Deserialize error = %v, want FormatMismatchError", err)
	}
	if inner.serialized != 0 || inner.deserialized != 0 {
		t.Errorf("no node conversion may be attempted on a format mismatch")
	}
}

func TestNewTransformerRequiresHooks(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("nil hook must panic")
		}
	}()
	NewTransformer[greeting](&greetingCodec{}, nil, Identity)
}

func TestTransformerDescriptor(t *testing.T) {
	inner := &greetingCodec{}
	tr := NewTransformer[greeting](inner, Identity, Identity)
	if tr.Descriptor().Name != "codec.greeting" {
		t.Errorf("descriptor must delegate to the inner codec")
	}
	over := &Descriptor{Name: "codec.flatGreeting", Shape: ir.ListKind}
	if got := tr.WithDescriptor(over).Descriptor(); got != over {
		t.Errorf("descriptor override not honored")
	}
}

func TestTransformersNest(t *testing.T) {
	inner := &greetingCodec{}
	once := NewTransformer[greeting](inner, upperScalars, lowerScalars)
	twice := NewTransformer[greeting](once, Identity, Identity)

	node := serializeToNode[greeting](t, twice, greeting{Message: "hi"})
	if got := ir.Get(node, "message"); !ir.Equal(got, ir.FromString("HI")) {
		t.Fatalf("nested transformer skipped the inner hook: %v", node)
	}
	got, err := twice.Deserialize(NewNodeReader(node, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != "hi" {
		t.Errorf("nested round trip = %q", got.Message)
	}
}
