package skein

import (
	"io"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/encode"
	"github.com/skein-format/go-skein/gomap"
	"github.com/skein-format/go-skein/ir"
)

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithEncodeOptions sets the text layout options (compact, indent,
// colors, JSON output) applied to every document the encoder writes.
func WithEncodeOptions(opts ...encode.EncodeOption) EncoderOption {
	return func(e *Encoder) {
		e.encOpts = append(e.encOpts, opts...)
	}
}

// WithEngine sets the typed-codec engine the encoder hands to codecs.
func WithEngine(eng codec.Engine) EncoderOption {
	return func(e *Encoder) {
		e.eng = eng
	}
}

// Encoder writes skein documents to an io.Writer. It implements
// codec.Writer, buffering structural calls until a complete top-level
// value has been written and then emitting its text, and codec.TreeWriter
// for whole-node exchange. One encoder can write a sequence of
// documents.
type Encoder struct {
	w       io.Writer
	eng     codec.Engine
	encOpts []encode.EncodeOption
	nb      *codec.NodeBuilder
}

func NewEncoder(w io.Writer, opts ...EncoderOption) *Encoder {
	e := &Encoder{w: w}
	for _, opt := range opts {
		opt(e)
	}
	if e.eng == nil {
		e.eng = gomap.DefaultEngine()
	}
	e.nb = codec.NewNodeBuilder(e.eng)
	return e
}

// Engine reports the typed-codec engine driving this encoder.
func (e *Encoder) Engine() codec.Engine { return e.eng }

// Encode converts v through the engine and writes it as one document.
func (e *Encoder) Encode(v any) error {
	node, err := e.eng.ToNode(v)
	if err != nil {
		return err
	}
	return e.WriteNode(node)
}

func (e *Encoder) Tag(tag string) error {
	if err := e.nb.Tag(tag); err != nil {
		return err
	}
	return e.flushIfDone()
}

func (e *Encoder) Scalar(content string) error {
	if err := e.nb.Scalar(content); err != nil {
		return err
	}
	return e.flushIfDone()
}

func (e *Encoder) Null() error {
	if err := e.nb.Null(); err != nil {
		return err
	}
	return e.flushIfDone()
}

func (e *Encoder) List(n int) error {
	if err := e.nb.List(n); err != nil {
		return err
	}
	return e.flushIfDone()
}

func (e *Encoder) Map(n int) error {
	if err := e.nb.Map(n); err != nil {
		return err
	}
	return e.flushIfDone()
}

// WriteNode writes a complete node at the encoder's current position:
// mid-document it splices into the value under construction, at the top
// level it emits a whole document.
func (e *Encoder) WriteNode(n ir.Node) error {
	if err := e.nb.WriteNode(n); err != nil {
		return err
	}
	return e.flushIfDone()
}

// flushIfDone emits the buffered document once the builder has seen a
// complete top-level value, then resets for the next document.
func (e *Encoder) flushIfDone() error {
	if !e.nb.Done() {
		return nil
	}
	node, err := e.nb.Node()
	if err != nil {
		return err
	}
	e.nb = codec.NewNodeBuilder(e.eng)
	if debug.Codec() {
		debug.Logf("encoder flush:\n%s\n", debug.Skein{Node: node})
	}
	return encode.Encode(node, e.w, e.encOpts...)
}
