package skein

import (
	"io"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/gomap"
	"github.com/skein-format/go-skein/ir"
	"github.com/skein-format/go-skein/parse"
)

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithParseOptions sets parse options applied when the decoder reads its
// document.
func WithParseOptions(opts ...parse.ParseOption) DecoderOption {
	return func(d *Decoder) {
		d.parseOpts = append(d.parseOpts, opts...)
	}
}

// WithDecodeEngine sets the typed-codec engine the decoder hands to
// codecs.
func WithDecodeEngine(eng codec.Engine) DecoderOption {
	return func(d *Decoder) {
		d.eng = eng
	}
}

// Decoder reads one skein document from an io.Reader. It implements
// codec.Reader, walking the parsed tree structurally, and
// codec.TreeReader for whole-node exchange. The input is read and parsed
// on the first operation.
type Decoder struct {
	r         io.Reader
	eng       codec.Engine
	parseOpts []parse.ParseOption
	nr        *codec.NodeReader
	err       error
}

func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: r}
	for _, opt := range opts {
		opt(d)
	}
	if d.eng == nil {
		d.eng = gomap.DefaultEngine()
	}
	return d
}

// Engine reports the typed-codec engine driving this decoder.
func (d *Decoder) Engine() codec.Engine { return d.eng }

// Decode reads the document and converts it into v through the engine.
func (d *Decoder) Decode(v any) error {
	node, err := d.Node()
	if err != nil {
		return err
	}
	return d.eng.FromNode(node, v)
}

// load reads and parses the input once.
func (d *Decoder) load() error {
	if d.err != nil {
		return d.err
	}
	if d.nr != nil {
		return nil
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		d.err = err
		return err
	}
	node, err := parse.Parse(data, d.parseOpts...)
	if err != nil {
		d.err = err
		return err
	}
	if debug.Codec() {
		debug.Logf("decoder load:\n%s\n", debug.Skein{Node: node})
	}
	d.nr = codec.NewNodeReader(node, d.eng)
	return nil
}

func (d *Decoder) Kind() (ir.Kind, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	return d.nr.Kind()
}

func (d *Decoder) Tag() (string, error) {
	if err := d.load(); err != nil {
		return "", err
	}
	return d.nr.Tag()
}

func (d *Decoder) Scalar() (string, error) {
	if err := d.load(); err != nil {
		return "", err
	}
	return d.nr.Scalar()
}

func (d *Decoder) Null() error {
	if err := d.load(); err != nil {
		return err
	}
	return d.nr.Null()
}

func (d *Decoder) List() (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	return d.nr.List()
}

func (d *Decoder) Map() (int, error) {
	if err := d.load(); err != nil {
		return 0, err
	}
	return d.nr.Map()
}

// Node consumes and returns the value the decoder is positioned at.
func (d *Decoder) Node() (ir.Node, error) {
	if err := d.load(); err != nil {
		return nil, err
	}
	return d.nr.Node()
}
