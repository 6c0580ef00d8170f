package ir

import (
	"errors"
	"fmt"
	"reflect"
)

var errEmptyTag = errors.New("empty tag")

// CheckTag validates tag syntax. Tags are dotted identifiers like
// "example.com/shapes.Circle": letters, digits, '.', '-', '_' and '/' are
// permitted, nothing else.
func CheckTag(tag string) error {
	if tag == "" {
		return errEmptyTag
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case c == '.' || c == '-' || c == '_' || c == '/':
		default:
			return fmt.Errorf("invalid tag char: %c", c)
		}
	}
	return nil
}

// TypeTag returns the fully-qualified tag for a Go type: its package path
// followed by the type name, e.g. "github.com/acme/shapes.Circle". Named
// types only; unnamed types yield "".
func TypeTag(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
