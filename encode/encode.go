// Package encode renders document nodes as skein or JSON text.
//
// Output is deterministic: map entry order is preserved, indentation is
// fixed, and equal nodes always render to equal text. This is what makes
// encoded documents diffable.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/skein-format/go-skein/ir"
	"github.com/skein-format/go-skein/token"
)

type EncState struct {
	depth   int
	indent  int
	compact bool
	json    bool

	Color func(ir.Kind, ColorAttr, string) string
}

// Encode renders node to w, followed by a newline unless compact output is
// selected.
func Encode(node ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	b := &strings.Builder{}
	if err := encode(node, b, es); err != nil {
		return err
	}
	if !es.compact {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// MustString renders node to a string, panicking on malformed input. For
// tests and debug output.
func MustString(node ir.Node, opts ...EncodeOption) string {
	b := &strings.Builder{}
	es := &EncState{indent: 2, compact: true}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, b, es); err != nil {
		panic(err)
	}
	return b.String()
}

func encode(node ir.Node, b *strings.Builder, es *EncState) error {
	switch x := node.(type) {
	case *ir.Null:
		b.WriteString(es.color(ir.NullKind, ValueColor, "null"))
	case *ir.Scalar:
		b.WriteString(es.color(ir.ScalarKind, ValueColor, es.scalar(x.Content)))
	case *ir.Tagged:
		if es.json {
			return encodeJSONTag(x, b, es)
		}
		b.WriteString(es.color(ir.TaggedKind, TagColor, "!"+x.Tag))
		b.WriteByte(' ')
		return encode(x.Inner, b, es)
	case *ir.List:
		return encodeList(x, b, es)
	case *ir.Map:
		return encodeMap(x, b, es)
	default:
		return fmt.Errorf("cannot encode nil node")
	}
	return nil
}

// scalar renders scalar content: bare when safe, quoted otherwise. JSON
// output always quotes, since the JSON image defers scalar typing the same
// way the tree does.
func (es *EncState) scalar(content string) string {
	if es.json {
		return jsonString(content)
	}
	if token.Bare(content) {
		return content
	}
	return strconv.Quote(content)
}

func jsonString(s string) string {
	d, err := json.Marshal(s)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return string(d)
}

func (es *EncState) color(k ir.Kind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

// inline reports whether a composite renders on one line: always in compact
// mode, otherwise only when every element is a leaf.
func inline(items []ir.Node, es *EncState) bool {
	if es.compact {
		return true
	}
	for _, item := range items {
		switch x := item.(type) {
		case *ir.List, *ir.Map:
			return false
		case *ir.Tagged:
			switch x.Inner.(type) {
			case *ir.List, *ir.Map:
				return false
			}
		}
	}
	return true
}

func (es *EncState) nl(b *strings.Builder) {
	b.WriteByte('\n')
	for i := 0; i < es.depth*es.indent; i++ {
		b.WriteByte(' ')
	}
}

func encodeList(x *ir.List, b *strings.Builder, es *EncState) error {
	sep := func(s string) string { return es.color(ir.ListKind, SepColor, s) }
	if len(x.Items) == 0 {
		b.WriteString(sep("[]"))
		return nil
	}
	b.WriteString(sep("["))
	flat := inline(x.Items, es)
	if !flat {
		es.depth++
	}
	for i, item := range x.Items {
		if i != 0 {
			b.WriteString(sep(","))
			if flat {
				b.WriteByte(' ')
			}
		}
		if !flat {
			es.nl(b)
		}
		if err := encode(item, b, es); err != nil {
			return err
		}
	}
	if !flat {
		es.depth--
		es.nl(b)
	}
	b.WriteString(sep("]"))
	return nil
}

func encodeMap(x *ir.Map, b *strings.Builder, es *EncState) error {
	sep := func(s string) string { return es.color(ir.MapKind, SepColor, s) }
	if len(x.Entries) == 0 {
		b.WriteString(sep("{}"))
		return nil
	}
	vals := make([]ir.Node, len(x.Entries))
	for i := range x.Entries {
		vals[i] = x.Entries[i].Val
	}
	b.WriteString(sep("{"))
	flat := inline(vals, es)
	if !flat {
		es.depth++
	}
	for i := range x.Entries {
		if i != 0 {
			b.WriteString(sep(","))
			if flat {
				b.WriteByte(' ')
			}
		}
		if !flat {
			es.nl(b)
		}
		if err := encodeKey(x.Entries[i].Key, b, es); err != nil {
			return err
		}
		b.WriteString(sep(":"))
		b.WriteByte(' ')
		if err := encode(x.Entries[i].Val, b, es); err != nil {
			return err
		}
	}
	if !flat {
		es.depth--
		es.nl(b)
	}
	b.WriteString(sep("}"))
	return nil
}

func encodeKey(key ir.Node, b *strings.Builder, es *EncState) error {
	if s, ok := key.(*ir.Scalar); ok {
		b.WriteString(es.color(ir.MapKind, FieldColor, es.scalar(s.Content)))
		return nil
	}
	if es.json {
		return fmt.Errorf("json: non-scalar map key at %s", key.Path())
	}
	return encode(key, b, es)
}

// encodeJSONTag writes the {"!": tag, "value": inner} convention shared
// with ir.ToJSON.
func encodeJSONTag(x *ir.Tagged, b *strings.Builder, es *EncState) error {
	sep := func(s string) string { return es.color(ir.MapKind, SepColor, s) }
	b.WriteString(sep("{"))
	es.depth++
	if !es.compact {
		es.nl(b)
	}
	b.WriteString(es.color(ir.MapKind, FieldColor, `"!"`))
	b.WriteString(sep(":"))
	b.WriteByte(' ')
	b.WriteString(es.color(ir.TaggedKind, TagColor, jsonString(x.Tag)))
	b.WriteString(sep(","))
	if es.compact {
		b.WriteByte(' ')
	} else {
		es.nl(b)
	}
	b.WriteString(es.color(ir.MapKind, FieldColor, `"value"`))
	b.WriteString(sep(":"))
	b.WriteByte(' ')
	if err := encode(x.Inner, b, es); err != nil {
		return err
	}
	es.depth--
	if !es.compact {
		es.nl(b)
	}
	b.WriteString(sep("}"))
	return nil
}
