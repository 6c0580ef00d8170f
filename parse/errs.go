package parse

import (
	"errors"
	"fmt"

	"github.com/skein-format/go-skein/token"
)

var ErrParse = errors.New("parse error")

// Error is a parse failure at a source position.
type Error struct {
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *Error) Unwrap() error {
	return ErrParse
}

func posError(d []byte, off int, msg string) error {
	line, col := token.LineCol(d, off)
	return &Error{Line: line, Col: col, Msg: msg}
}
