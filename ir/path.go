package ir

import (
	"strconv"
	"strings"
)

// Step is one segment of a Path: either a map key or a list index.
type Step struct {
	// Key is the map key for key steps.
	Key string
	// Index is the list index for index steps.
	Index int

	isIndex bool
}

// IsIndex reports whether the step is a list index rather than a map key.
func (s Step) IsIndex() bool { return s.isIndex }

// Path locates a node in its document: the sequence of map-key and
// list-index steps from the root. Paths are used in error messages and
// debug output only; node equality ignores them.
type Path []Step

// Key returns p extended by a map-key step. The receiver is not modified.
func (p Path) Key(k string) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, Step{Key: k})
}

// Index returns p extended by a list-index step. The receiver is not
// modified.
func (p Path) Index(i int) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, Step{Index: i, isIndex: true})
}

// String renders the path JSONPath style, e.g. "$.spec.containers[0].name".
// Keys needing quoting are rendered with ["..."] syntax.
func (p Path) String() string {
	b := &strings.Builder{}
	b.WriteByte('$')
	for _, s := range p {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if plainKey(s.Key) {
			b.WriteByte('.')
			b.WriteString(s.Key)
			continue
		}
		b.WriteByte('[')
		b.WriteString(strconv.Quote(s.Key))
		b.WriteByte(']')
	}
	return b.String()
}

func plainKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
