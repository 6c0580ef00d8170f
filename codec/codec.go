package codec

import (
	"github.com/skein-format/go-skein/ir"
)

// Writer is a format-specific serialization sink. A codec writes one value
// into it as a sequence of structural calls: Tag applies to the value that
// follows; List and Map announce a composite and are followed by exactly n
// elements resp. n key/value pairs. The tree is always fully materialized
// before any text is produced, so element counts are known up front.
type Writer interface {
	Tag(tag string) error
	Scalar(content string) error
	Null() error
	List(n int) error
	Map(n int) error
}

// Reader is a format-specific deserialization source, positioned at one
// value. Kind peeks at the current value; Tag consumes a tag wrapper and
// repositions at the wrapped value; Scalar, Null, List and Map consume the
// value (composites then position at their first element; map entries
// alternate key, value).
type Reader interface {
	Kind() (ir.Kind, error)
	Tag() (string, error)
	Scalar() (string, error)
	Null() error
	List() (int, error)
	Map() (int, error)
}

// Engine is the recursive typed-codec machinery that converts between Go
// values and document nodes. It is an injected dependency of this package:
// the reference implementation is gomap's reflection engine, and writers
// and readers expose the engine instance driving a call so that nested
// codec invocations re-enter the same one.
type Engine interface {
	ToNode(v any) (ir.Node, error)
	FromNode(n ir.Node, into any) error
}

// Codec converts between values of type T and their serialized form.
type Codec[T any] interface {
	// Descriptor describes the value shape this codec advertises, for
	// schema tooling. It has no effect on (de)serialization.
	Descriptor() *Descriptor
	Serialize(w Writer, v T) error
	Deserialize(r Reader) (T, error)
}

// Descriptor is the apparent shape of a codec's values.
type Descriptor struct {
	// Name is a fully-qualified type identifier.
	Name string
	// Shape is the node kind values of this type serialize to.
	Shape ir.Kind
	// Sealed marks a closed polymorphic shape: values serialize to a
	// Tagged node whose tag selects the variant.
	Sealed bool
}
