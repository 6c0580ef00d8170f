package gomap

import (
	"fmt"

	"github.com/skein-format/go-skein/ir"
)

// MarshalError reports a failure converting a Go value to a node.
type MarshalError struct {
	Path    ir.Path // node location, e.g. $.address.street
	Message string
	Err     error
}

func (e *MarshalError) Error() string {
	if len(e.Path) != 0 {
		return fmt.Sprintf("marshal error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError reports a failure converting a node to a Go value.
type UnmarshalError struct {
	Path    ir.Path
	Message string
	Err     error
}

func (e *UnmarshalError) Error() string {
	if len(e.Path) != 0 {
		return fmt.Sprintf("unmarshal error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

// TypeError reports a mismatch between a node's shape and the Go type it
// is being decoded into.
type TypeError struct {
	Path     ir.Path
	Expected string
	Actual   string
	Message  string
}

func (e *TypeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	}
	if len(e.Path) != 0 {
		return fmt.Sprintf("type error at %s: %s", e.Path, msg)
	}
	return fmt.Sprintf("type error: %s", msg)
}

// UnknownTagError reports a tagged node whose tag matches no registered
// variant of the target interface type.
type UnknownTagError struct {
	Path ir.Path
	Tag  string
	Into string // target Go type, e.g. "shapes.Shape"
}

func (e *UnknownTagError) Error() string {
	if len(e.Path) != 0 {
		return fmt.Sprintf("unknown tag %q at %s: no variant registered for %s", e.Tag, e.Path, e.Into)
	}
	return fmt.Sprintf("unknown tag %q: no variant registered for %s", e.Tag, e.Into)
}
