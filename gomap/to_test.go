package gomap

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skein-format/go-skein/ir"
)

type address struct {
	Street string
	City   string
}

type person struct {
	Name    string
	Age     int
	Email   string `skein:"field=email,omitempty"`
	Address *address
	secret  string `skein:"-"`
}

func TestToNodeStruct(t *testing.T) {
	node, err := ToNode(person{
		Name:    "Alice",
		Age:     30,
		Address: &address{Street: "Main", City: "Springfield"},
		secret:  "x",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("Name"), Val: ir.FromString("Alice")},
		{Key: ir.FromString("Age"), Val: ir.FromString("30")},
		{Key: ir.FromString("Address"), Val: ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("Street"), Val: ir.FromString("Main")},
			{Key: ir.FromString("City"), Val: ir.FromString("Springfield")},
		})},
	})
	if !ir.Equal(node, want) {
		t.Errorf("ToNode = %#v, want %#v", node, want)
	}
	// empty Email with omitempty is absent; field order is declaration order
	m := node.(*ir.Map)
	if len(m.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(m.Entries))
	}
	if key := m.Entries[0].Key.(*ir.Scalar).Content; key != "Name" {
		t.Errorf("first field = %q, want Name", key)
	}
}

func TestToNodeFieldRename(t *testing.T) {
	node, err := ToNode(person{Name: "Bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(node, "email"); !ir.Equal(got, ir.FromString("bob@example.com")) {
		t.Errorf("renamed field = %v", got)
	}
	if got := ir.Get(node, "Email"); got != nil {
		t.Errorf("original field name must not appear: %v", got)
	}
}

func TestToNodePrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want ir.Node
	}{
		{"string", "hi", ir.FromString("hi")},
		{"int", -42, ir.FromString("-42")},
		{"uint", uint(7), ir.FromString("7")},
		{"float", 2.5, ir.FromString("2.5")},
		{"bool", true, ir.FromString("true")},
		{"nil", nil, ir.NullNode()},
		{"nil pointer", (*address)(nil), ir.NullNode()},
		{"nil slice", []int(nil), ir.NullNode()},
		{"slice", []int{1, 2}, ir.FromSlice([]ir.Node{ir.FromString("1"), ir.FromString("2")})},
		{"array", [2]string{"a", "b"}, ir.FromSlice([]ir.Node{ir.FromString("a"), ir.FromString("b")})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, err := ToNode(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(node, tc.want) {
				t.Errorf("ToNode(%v) = %#v, want %#v", tc.in, node, tc.want)
			}
		})
	}
}

func TestToNodeMapSorted(t *testing.T) {
	node, err := ToNode(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatal(err)
	}
	m := node.(*ir.Map)
	var keys []string
	for i := range m.Entries {
		keys = append(keys, m.Entries[i].Key.(*ir.Scalar).Content)
	}
	if strings.Join(keys, ",") != "a,b,c" {
		t.Errorf("keys = %v, want sorted", keys)
	}
}

func TestToNodeNonStringMapKeys(t *testing.T) {
	_, err := ToNode(map[int]string{1: "a"})
	var mErr *MarshalError
	if !errors.As(err, &mErr) {
		t.Fatalf("err = %v, want MarshalError", err)
	}
}

func TestToNodePaths(t *testing.T) {
	node, err := ToNode(person{Name: "A", Address: &address{Street: "Main"}})
	if err != nil {
		t.Fatal(err)
	}
	street := ir.Get(ir.Get(node, "Address"), "Street")
	if got := street.Path().String(); got != "$.Address.Street" {
		t.Errorf("path = %s, want $.Address.Street", got)
	}
}

type ring struct {
	Name string
	Next *ring
}

func TestToNodeCycle(t *testing.T) {
	a := &ring{Name: "a"}
	b := &ring{Name: "b", Next: a}
	a.Next = b

	_, err := ToNode(a)
	var mErr *MarshalError
	if !errors.As(err, &mErr) {
		t.Fatalf("err = %v, want MarshalError", err)
	}
	if !strings.Contains(mErr.Message, "circular") {
		t.Errorf("message = %q", mErr.Message)
	}
}

func TestToNodeSharedPointerIsNotACycle(t *testing.T) {
	shared := &address{Street: "Main"}
	_, err := ToNode(struct {
		Home *address
		Work *address
	}{Home: shared, Work: shared})
	if err != nil {
		t.Fatalf("shared pointer across branches must encode: %v", err)
	}
}

func TestToNodeTextMarshaler(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	node, err := ToNode(ts)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(node, ir.FromString("2024-03-01T12:00:00Z")) {
		t.Errorf("time = %v", node)
	}
}

type taggedDoc struct {
	payload string
}

func (d taggedDoc) MarshalSkein() (ir.Node, error) {
	return ir.WithTag("example.com/test.Doc", ir.FromString(d.payload)), nil
}

func TestToNodeMarshaler(t *testing.T) {
	node, err := ToNode(taggedDoc{payload: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if ir.TagOf(node) != "example.com/test.Doc" {
		t.Errorf("node = %#v", node)
	}
}

type outer struct {
	address
	Name string
}

func TestToNodeEmbedded(t *testing.T) {
	node, err := ToNode(outer{address: address{Street: "Main", City: "X"}, Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(node, "Street"); !ir.Equal(got, ir.FromString("Main")) {
		t.Errorf("embedded field not promoted: %v", node)
	}
	if got := ir.Get(node, "Name"); !ir.Equal(got, ir.FromString("n")) {
		t.Errorf("outer field lost: %v", node)
	}
}
