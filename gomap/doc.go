// Package gomap converts between Go values and skein document nodes.
//
// # Usage
//
//	// Encode a Go value to a node
//	type User struct {
//	    Name string
//	    Age  int
//	}
//	node, err := gomap.ToNode(user)
//
//	// Decode a node into a Go struct
//	var user User
//	err := gomap.FromNode(node, &user)
//
// Conversion is reflection based. Only exported struct fields are
// processed; the `skein` struct tag renames or skips fields:
//
//	type User struct {
//	    Name  string `skein:"field=displayName"`
//	    Email string `skein:"omitempty"`
//	    cache []byte `skein:"-"`
//	}
//
// Interface-typed values participate through a variant registry: see
// Engine.RegisterVariant.
//
// # Related Packages
//
//   - github.com/skein-format/go-skein/ir - document node model
//   - github.com/skein-format/go-skein/codec - typed codec interfaces
package gomap
