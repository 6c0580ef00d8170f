package gomap

import (
	"errors"
	"testing"

	"github.com/skein-format/go-skein/ir"
)

type shape interface {
	Area() float64
}

type circle struct {
	Radius float64
}

func (c circle) Area() float64 { return 3.14159 * c.Radius * c.Radius }

type rect struct {
	W, H float64
}

func (r *rect) Area() float64 { return r.W * r.H }

type canvas struct {
	Main shape
}

func newShapeEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine()
	if err := e.RegisterVariantAs("shapes.Circle", circle{}); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterVariantAs("shapes.Rect", &rect{}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestVariantEncode(t *testing.T) {
	e := newShapeEngine(t)
	node, err := e.ToNode(canvas{Main: circle{Radius: 2}})
	if err != nil {
		t.Fatal(err)
	}
	main := ir.Get(node, "Main")
	if ir.TagOf(main) != "shapes.Circle" {
		t.Fatalf("Main = %#v, want tagged shapes.Circle", main)
	}
	if got := ir.Get(ir.Inner(main), "Radius"); !ir.Equal(got, ir.FromString("2")) {
		t.Errorf("Radius = %v", got)
	}
}

func TestVariantDecode(t *testing.T) {
	e := newShapeEngine(t)
	src := canvas{Main: circle{Radius: 2}}
	node, err := e.ToNode(src)
	if err != nil {
		t.Fatal(err)
	}
	var got canvas
	if err := e.FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	c, ok := got.Main.(circle)
	if !ok || c.Radius != 2 {
		t.Errorf("Main = %#v, want circle{2}", got.Main)
	}
}

func TestVariantDecodePointer(t *testing.T) {
	e := newShapeEngine(t)
	node, err := e.ToNode(canvas{Main: &rect{W: 2, H: 3}})
	if err != nil {
		t.Fatal(err)
	}
	var got canvas
	if err := e.FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	r, ok := got.Main.(*rect)
	if !ok || r.W != 2 || r.H != 3 {
		t.Errorf("Main = %#v, want *rect{2, 3}", got.Main)
	}
}

func TestVariantUnknownTag(t *testing.T) {
	e := newShapeEngine(t)
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("Main"), Val: ir.WithTag("shapes.Triangle", &ir.Map{})},
	})
	err := e.FromNode(node, &canvas{})
	var uErr *UnknownTagError
	if !errors.As(err, &uErr) {
		t.Fatalf("err = %v, want UnknownTagError", err)
	}
	if uErr.Tag != "shapes.Triangle" {
		t.Errorf("Tag = %q", uErr.Tag)
	}
	if uErr.Path.String() != "$.Main" {
		t.Errorf("Path = %s, want $.Main", uErr.Path)
	}
}

func TestVariantMissingTag(t *testing.T) {
	e := newShapeEngine(t)
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("Main"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("Radius"), Val: ir.FromString("2")},
		})},
	})
	err := e.FromNode(node, &canvas{})
	var tErr *TypeError
	if !errors.As(err, &tErr) {
		t.Fatalf("err = %v, want TypeError", err)
	}
}

func TestRegisterVariantDefaultTag(t *testing.T) {
	e := NewEngine()
	if err := e.RegisterVariant(circle{}); err != nil {
		t.Fatal(err)
	}
	node, err := e.ToNode(canvas{Main: circle{Radius: 1}})
	if err != nil {
		t.Fatal(err)
	}
	tag := ir.TagOf(ir.Get(node, "Main"))
	if tag != "github.com/skein-format/go-skein/gomap.circle" {
		t.Errorf("tag = %q, want fully-qualified type identifier", tag)
	}
}

func TestVariantEncodeUnregistered(t *testing.T) {
	e := NewEngine()
	node, err := e.ToNode(canvas{Main: circle{Radius: 2}})
	if err != nil {
		t.Fatal(err)
	}
	// encoding never requires registration: the default tag keeps the
	// node resolvable by any engine that registers the type
	tag := ir.TagOf(ir.Get(node, "Main"))
	if tag != "github.com/skein-format/go-skein/gomap.circle" {
		t.Fatalf("tag = %q, want fully-qualified default", tag)
	}
	dec := NewEngine()
	if err := dec.RegisterVariant(circle{}); err != nil {
		t.Fatal(err)
	}
	var got canvas
	if err := dec.FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	if c, ok := got.Main.(circle); !ok || c.Radius != 2 {
		t.Errorf("Main = %#v, want circle{2}", got.Main)
	}
}

func TestVariantEmptyInterfaceUntagged(t *testing.T) {
	type doc struct {
		V any
	}
	node, err := NewEngine().ToNode(doc{V: "x"})
	if err != nil {
		t.Fatal(err)
	}
	// values held in empty interfaces are generic data, not variants
	if got := ir.Get(node, "V"); ir.TagOf(got) != "" {
		t.Errorf("V = %#v, want untagged scalar", got)
	}
}

func TestRegisterVariantConflict(t *testing.T) {
	e := NewEngine()
	if err := e.RegisterVariantAs("shapes.X", circle{}); err != nil {
		t.Fatal(err)
	}
	if err := e.RegisterVariantAs("shapes.X", &rect{}); err == nil {
		t.Errorf("re-registering a tag to a different type must fail")
	}
	if err := e.RegisterVariantAs("shapes.X", circle{}); err != nil {
		t.Errorf("re-registering the same binding is idempotent: %v", err)
	}
	if err := e.RegisterVariantAs("bad tag!", circle{}); err == nil {
		t.Errorf("invalid tag syntax must fail")
	}
}
