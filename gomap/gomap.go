package gomap

import (
	"github.com/skein-format/go-skein/ir"
)

// Marshaler lets a type produce its own node instead of being walked by
// reflection.
type Marshaler interface {
	MarshalSkein() (ir.Node, error)
}

// Unmarshaler lets a type decode itself from a node instead of being
// populated by reflection.
type Unmarshaler interface {
	UnmarshalSkein(n ir.Node) error
}

// ToNode converts a Go value to a node using the default engine.
func ToNode(v any) (ir.Node, error) {
	return DefaultEngine().ToNode(v)
}

// FromNode decodes a node into v using the default engine. v must be a
// non-nil pointer.
func FromNode(n ir.Node, v any) error {
	return DefaultEngine().FromNode(n, v)
}

// RegisterVariant registers a polymorphic variant on the default engine.
func RegisterVariant(proto any) error {
	return DefaultEngine().RegisterVariant(proto)
}
