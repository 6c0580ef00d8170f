package gomap

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/skein-format/go-skein/ir"
)

func mustNode(t *testing.T, v any) ir.Node {
	t.Helper()
	n, err := ToNode(v)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestFromNodeStruct(t *testing.T) {
	want := person{
		Name:    "Alice",
		Age:     30,
		Email:   "alice@example.com",
		Address: &address{Street: "Main", City: "Springfield"},
	}
	var got person
	if err := FromNode(mustNode(t, want), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(person{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodePrimitives(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		var v int
		if err := FromNode(ir.FromString("-5"), &v); err != nil || v != -5 {
			t.Errorf("v = %d, err = %v", v, err)
		}
	})
	t.Run("uint", func(t *testing.T) {
		var v uint16
		if err := FromNode(ir.FromString("65535"), &v); err != nil || v != 65535 {
			t.Errorf("v = %d, err = %v", v, err)
		}
	})
	t.Run("float", func(t *testing.T) {
		var v float64
		if err := FromNode(ir.FromString("2.5"), &v); err != nil || v != 2.5 {
			t.Errorf("v = %v, err = %v", v, err)
		}
	})
	t.Run("bool", func(t *testing.T) {
		var v bool
		if err := FromNode(ir.FromString("true"), &v); err != nil || !v {
			t.Errorf("v = %v, err = %v", v, err)
		}
	})
	t.Run("string", func(t *testing.T) {
		var v string
		if err := FromNode(ir.FromString("42"), &v); err != nil || v != "42" {
			t.Errorf("v = %q, err = %v", v, err)
		}
	})
}

func TestFromNodeScalarErrors(t *testing.T) {
	tests := []struct {
		name string
		node ir.Node
		into func() any
	}{
		{"not a number", ir.FromString("abc"), func() any { return new(int) }},
		{"overflow int8", ir.FromString("200"), func() any { return new(int8) }},
		{"negative uint", ir.FromString("-1"), func() any { return new(uint) }},
		{"not a bool", ir.FromString("yep"), func() any { return new(bool) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FromNode(tc.node, tc.into())
			var uErr *UnmarshalError
			if !errors.As(err, &uErr) {
				t.Errorf("err = %v, want UnmarshalError", err)
			}
		})
	}
}

func TestFromNodeShapeErrors(t *testing.T) {
	list := ir.FromSlice([]ir.Node{ir.FromString("x")})
	tests := []struct {
		name string
		node ir.Node
		into func() any
	}{
		{"list into string", list, func() any { return new(string) }},
		{"scalar into struct", ir.FromString("x"), func() any { return new(person) }},
		{"scalar into slice", ir.FromString("x"), func() any { return new([]int) }},
		{"list into map", list, func() any { return new(map[string]int) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FromNode(tc.node, tc.into())
			var tErr *TypeError
			if !errors.As(err, &tErr) {
				t.Errorf("err = %v, want TypeError", err)
			}
		})
	}
}

func TestFromNodeNull(t *testing.T) {
	v := person{Name: "x", Address: &address{Street: "s"}}
	if err := FromNode(ir.NullNode(), &v); err != nil {
		t.Fatal(err)
	}
	if v.Name != "" || v.Address != nil {
		t.Errorf("null must zero the destination: %+v", v)
	}
}

func TestFromNodeNullField(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("Name"), Val: ir.FromString("x")},
		{Key: ir.FromString("Address"), Val: ir.NullNode()},
	})
	v := person{Address: &address{Street: "s"}}
	if err := FromNode(node, &v); err != nil {
		t.Fatal(err)
	}
	if v.Address != nil {
		t.Errorf("null field must clear the pointer")
	}
}

func TestFromNodeDestinationErrors(t *testing.T) {
	if err := FromNode(ir.NullNode(), nil); err == nil {
		t.Errorf("nil destination must fail")
	}
	var v int
	if err := FromNode(ir.FromString("1"), v); err == nil {
		t.Errorf("non-pointer destination must fail")
	}
	if err := FromNode(ir.FromString("1"), (*int)(nil)); err == nil {
		t.Errorf("nil pointer destination must fail")
	}
}

func TestFromNodeUnknownFields(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("Name"), Val: ir.FromString("x")},
		{Key: ir.FromString("Nickname"), Val: ir.FromString("y")},
	})

	var v person
	if err := FromNode(node, &v); err != nil {
		t.Fatalf("unknown fields are ignored by default: %v", err)
	}

	strict := NewEngine(StrictFields())
	err := strict.FromNode(node, &person{})
	var uErr *UnmarshalError
	if !errors.As(err, &uErr) {
		t.Fatalf("strict engine: err = %v, want UnmarshalError", err)
	}
}

func TestFromNodeArray(t *testing.T) {
	var arr [2]int
	node := ir.FromSlice([]ir.Node{ir.FromString("1"), ir.FromString("2")})
	if err := FromNode(node, &arr); err != nil {
		t.Fatal(err)
	}
	if arr != [2]int{1, 2} {
		t.Errorf("arr = %v", arr)
	}

	short := ir.FromSlice([]ir.Node{ir.FromString("1")})
	if err := FromNode(short, &arr); err == nil {
		t.Errorf("length mismatch must fail")
	}
}

func TestFromNodeMap(t *testing.T) {
	node := mustNode(t, map[string]int{"a": 1, "b": 2})
	var got map[string]int
	if err := FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]int{"a": 1, "b": 2}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodeTextUnmarshaler(t *testing.T) {
	var ts time.Time
	if err := FromNode(ir.FromString("2024-03-01T12:00:00Z"), &ts); err != nil {
		t.Fatal(err)
	}
	if ts.Year() != 2024 || ts.Month() != time.March {
		t.Errorf("ts = %v", ts)
	}
}

func TestFromNodeAny(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("name"), Val: ir.FromString("x")},
		{Key: ir.FromString("tags"), Val: ir.FromSlice([]ir.Node{ir.FromString("a"), ir.NullNode()})},
	})
	var got any
	if err := FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	// scalars stay strings: typing is the consuming codec's business
	want := map[string]any{"name": "x", "tags": []any{"a", nil}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodeTaggedIntoAny(t *testing.T) {
	node := ir.WithTag("acme.Box", ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("w"), Val: ir.FromString("3")},
	}))
	var got any
	if err := NewEngine().FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	// unregistered tags materialize as the {"!", "value"} image
	want := map[string]any{"!": "acme.Box", "value": map[string]any{"w": "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromNodeTaggedIntoConcrete(t *testing.T) {
	node := ir.WithTag("example.com/x.Addr", mustNode(t, address{Street: "Main"}))
	var got address
	if err := FromNode(node, &got); err != nil {
		t.Fatal(err)
	}
	if got.Street != "Main" {
		t.Errorf("got = %+v", got)
	}
}
