package skein

import (
	"bytes"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/encode"
	"github.com/skein-format/go-skein/gomap"
	"github.com/skein-format/go-skein/ir"
	"github.com/skein-format/go-skein/parse"
)

// Marshal converts v to skein text using the default engine.
func Marshal(v any, opts ...encode.EncodeOption) ([]byte, error) {
	node, err := gomap.ToNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses skein text and decodes it into v, which must be a
// non-nil pointer.
func Unmarshal(data []byte, v any) error {
	node, err := parse.Parse(data)
	if err != nil {
		return err
	}
	return gomap.FromNode(node, v)
}

// Parse parses skein text into a document node.
func Parse(data []byte, opts ...parse.ParseOption) (ir.Node, error) {
	return parse.Parse(data, opts...)
}

// MarshalWith serializes v through an explicit typed codec, so wrapped
// codecs (see codec.NewTransformer) apply their document rewrites on the
// way out.
func MarshalWith[T any](c codec.Codec[T], v T, opts ...EncoderOption) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, opts...)
	if err := c.Serialize(enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalWith deserializes skein text through an explicit typed codec.
func UnmarshalWith[T any](c codec.Codec[T], data []byte, opts ...DecoderOption) (T, error) {
	dec := NewDecoder(bytes.NewReader(data), opts...)
	return c.Deserialize(dec)
}
