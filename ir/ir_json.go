package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// The JSON image of a node lets documents be manipulated by JSON tooling
// (the rewrite package applies RFC 6902 patches to it). The mapping is:
//
//	Scalar  <-> JSON string (scalar typing stays deferred)
//	Null    <-> null
//	List    <-> array
//	Map     <-> object (scalar keys only; order preserved both ways)
//	Tagged  <-> {"!": tag, "value": inner}
//
// JSON numbers and booleans decode to scalars holding their literal text.

// ToJSON renders a node's JSON image.
func ToJSON(n Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n Node) error {
	switch x := n.(type) {
	case *Null:
		buf.WriteString("null")
	case *Scalar:
		d, err := json.Marshal(x.Content)
		if err != nil {
			return err
		}
		buf.Write(d)
	case *List:
		buf.WriteByte('[')
		for i, item := range x.Items {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Map:
		buf.WriteByte('{')
		for i := range x.Entries {
			if i != 0 {
				buf.WriteByte(',')
			}
			key, ok := x.Entries[i].Key.(*Scalar)
			if !ok {
				return fmt.Errorf("json image: non-scalar key at %s", x.At)
			}
			d, err := json.Marshal(key.Content)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, x.Entries[i].Val); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *Tagged:
		buf.WriteString(`{"!":`)
		d, err := json.Marshal(x.Tag)
		if err != nil {
			return err
		}
		buf.Write(d)
		buf.WriteString(`,"value":`)
		if err := writeJSON(buf, x.Inner); err != nil {
			return err
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("json image: nil node")
	}
	return nil
}

// FromJSON parses a node from its JSON image. Object key order is
// preserved.
func FromJSON(d []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	n, err := readJSON(dec, Path{})
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("json image: trailing data")
	}
	return n, nil
}

func readJSON(dec *json.Decoder, at Path) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("json image: unexpected end of input")
		}
		return nil, err
	}
	return jsonValue(dec, tok, at)
}

func jsonValue(dec *json.Decoder, tok json.Token, at Path) (Node, error) {
	switch t := tok.(type) {
	case nil:
		return &Null{At: at}, nil
	case string:
		return &Scalar{Content: t, At: at}, nil
	case bool:
		return &Scalar{Content: strconv.FormatBool(t), At: at}, nil
	case json.Number:
		return &Scalar{Content: t.String(), At: at}, nil
	case json.Delim:
		switch t {
		case '[':
			res := &List{At: at}
			for dec.More() {
				item, err := readJSON(dec, at.Index(len(res.Items)))
				if err != nil {
					return nil, err
				}
				res.Items = append(res.Items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ]
				return nil, err
			}
			return res, nil
		case '{':
			res := &Map{At: at}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("json image: bad object key %v", keyTok)
				}
				val, err := readJSON(dec, at.Key(key))
				if err != nil {
					return nil, err
				}
				res.Entries = append(res.Entries, KeyVal{
					Key: &Scalar{Content: key, At: at},
					Val: val,
				})
			}
			if _, err := dec.Token(); err != nil { // closing }
				return nil, err
			}
			return untagJSON(res, at), nil
		}
	}
	return nil, fmt.Errorf("json image: unexpected token %v", tok)
}

// untagJSON recognizes the {"!": tag, "value": inner} convention emitted by
// ToJSON and restores the Tagged node.
func untagJSON(m *Map, at Path) Node {
	if len(m.Entries) != 2 {
		return m
	}
	tagKey, ok := m.Entries[0].Key.(*Scalar)
	if !ok || tagKey.Content != "!" {
		return m
	}
	valKey, ok := m.Entries[1].Key.(*Scalar)
	if !ok || valKey.Content != "value" {
		return m
	}
	tag, ok := m.Entries[0].Val.(*Scalar)
	if !ok {
		return m
	}
	return &Tagged{Tag: tag.Content, Inner: Rebase(m.Entries[1].Val, at), At: at}
}
