package gomap

import (
	"reflect"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/ir"
)

// ForOption configures a codec built by For.
type ForOption func(*forConfig)

type forConfig struct {
	engine *Engine
	name   string
	sealed bool
}

// WithEngine selects the engine backing the codec. The default engine is
// used otherwise.
func WithEngine(e *Engine) ForOption {
	return func(c *forConfig) {
		c.engine = e
	}
}

// Named overrides the fully-qualified type identifier the codec's
// descriptor advertises.
func Named(name string) ForOption {
	return func(c *forConfig) {
		c.name = name
	}
}

// Sealed marks the descriptor as a closed polymorphic shape. Use it for
// interface types whose variants are all registered.
func Sealed() ForOption {
	return func(c *forConfig) {
		c.sealed = true
	}
}

// For builds a typed codec for T backed by the reflection engine. The
// descriptor is derived from T: its name is the fully-qualified type
// identifier and its shape is the node kind T's values serialize to.
func For[T any](opts ...ForOption) codec.Codec[T] {
	cfg := forConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.engine == nil {
		cfg.engine = DefaultEngine()
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cfg.name == "" {
		cfg.name = ir.TypeTag(t)
	}
	return &reflectCodec[T]{
		eng: cfg.engine,
		desc: &codec.Descriptor{
			Name:   cfg.name,
			Shape:  shapeOf(t),
			Sealed: cfg.sealed,
		},
	}
}

// shapeOf maps a Go type to the node kind its values serialize to.
// Interface types report TaggedKind since their values carry a variant
// tag.
func shapeOf(t reflect.Type) ir.Kind {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return ir.MapKind
	case reflect.Slice, reflect.Array:
		return ir.ListKind
	case reflect.Interface:
		return ir.TaggedKind
	}
	return ir.ScalarKind
}

type reflectCodec[T any] struct {
	eng  *Engine
	desc *codec.Descriptor
}

func (c *reflectCodec[T]) Descriptor() *codec.Descriptor {
	return c.desc
}

func (c *reflectCodec[T]) Serialize(w codec.Writer, v T) error {
	node, err := c.eng.ToNode(v)
	if err != nil {
		return err
	}
	return codec.EmitNode(w, node)
}

func (c *reflectCodec[T]) Deserialize(r codec.Reader) (T, error) {
	var res T
	node, err := codec.ReadNode(r)
	if err != nil {
		return res, err
	}
	if err := c.eng.FromNode(node, &res); err != nil {
		return res, err
	}
	return res, nil
}
