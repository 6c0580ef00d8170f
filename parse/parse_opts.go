package parse

import "github.com/skein-format/go-skein/ir"

type parseOpts struct {
	positions map[ir.Node]Pos
}

type ParseOption func(*parseOpts)

// Pos is a 1-based source position.
type Pos struct {
	Line, Col int
}

// Positions records the source position of every parsed node into m.
// Consumers that need to point back into the source text (rather than at a
// structural path) use this.
func Positions(m map[ir.Node]Pos) ParseOption {
	return func(o *parseOpts) { o.positions = m }
}
