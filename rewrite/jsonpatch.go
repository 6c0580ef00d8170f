package rewrite

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/ir"
)

// JSONPatch applies an RFC 6902 patch to the document's JSON image and
// converts the result back to a node. The patch document is decoded once,
// up front; tags inside the document survive through their JSON encoding.
func JSONPatch(patch []byte) (codec.Transform, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	return func(n ir.Node) (ir.Node, error) {
		d, err := ir.ToJSON(n)
		if err != nil {
			return nil, err
		}
		out, err := ops.Apply(d)
		if err != nil {
			return nil, fmt.Errorf("apply patch at %s: %w", n.Path(), err)
		}
		return ir.FromJSON(out)
	}, nil
}
