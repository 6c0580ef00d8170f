package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/skein-format/go-skein/encode"
	"github.com/skein-format/go-skein/ir"
)

// Skein renders a node as skein text in debug output.
type Skein struct{ ir.Node }

func (s Skein) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(s.Node, buf); err != nil {
		return fmt.Sprintf("[raw node] %v", s.Node)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case ir.Node:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf); err != nil {
				args[i] = fmt.Sprintf("[raw node] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
