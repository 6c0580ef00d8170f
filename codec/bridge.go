package codec

import (
	"fmt"

	"github.com/skein-format/go-skein/ir"
)

// TreeWriter is the whole-node exchange capability on the write side.
// Skein writers implement it; writers of unrelated formats do not.
type TreeWriter interface {
	Writer
	// WriteNode serializes a complete document node at the writer's
	// current position.
	WriteNode(n ir.Node) error
	// Engine reports the typed-codec engine driving this writer.
	Engine() Engine
}

// TreeReader is the whole-node exchange capability on the read side.
type TreeReader interface {
	Reader
	// Node consumes and returns the document node the reader is
	// positioned at.
	Node() (ir.Node, error)
	// Engine reports the typed-codec engine driving this reader.
	Engine() Engine
}

// FormatMismatchError reports that a writer or reader was handed to a
// component that requires whole-node exchange, but belongs to a format
// implementation that does not support it. This is a wiring error, not a
// data error; it is never retried.
type FormatMismatchError struct {
	Op   string // "serialize" or "deserialize"
	Have any    // the incompatible writer or reader
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("%s: %T does not support document node exchange; transformers require a skein writer/reader", e.Op, e.Have)
}

// AsTreeWriter narrows w to the whole-node exchange capability. It is a
// pure check: no output is produced.
func AsTreeWriter(w Writer) (TreeWriter, error) {
	if tw, ok := w.(TreeWriter); ok {
		return tw, nil
	}
	return nil, &FormatMismatchError{Op: "serialize", Have: w}
}

// AsTreeReader narrows r to the whole-node exchange capability. It is a
// pure check: no input is consumed.
func AsTreeReader(r Reader) (TreeReader, error) {
	if tr, ok := r.(TreeReader); ok {
		return tr, nil
	}
	return nil, &FormatMismatchError{Op: "deserialize", Have: r}
}
