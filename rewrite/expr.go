package rewrite

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/ir"
)

// scalarEnv is the evaluation environment of a ScalarExpr program, one
// scalar at a time.
type scalarEnv struct {
	Content string
	Path    string
	Tag     string
}

// ScalarExpr compiles src as an expression and rewrites every scalar in
// the tree with its result. The program sees Content (the scalar's text),
// Path (its location, e.g. "$.spec.name") and Tag (the nearest enclosing
// tag, or "") and must return a string.
//
//	t, err := rewrite.ScalarExpr(`upper(Content)`)
func ScalarExpr(src string) (codec.Transform, error) {
	prg, err := expr.Compile(src,
		expr.Env(scalarEnv{}),
		expr.AsKind(reflect.String),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	var apply func(n ir.Node, tag string) (ir.Node, error)
	apply = func(n ir.Node, tag string) (ir.Node, error) {
		switch x := n.(type) {
		case *ir.Scalar:
			content, err := runScalar(prg, scalarEnv{
				Content: x.Content,
				Path:    x.At.String(),
				Tag:     tag,
			})
			if err != nil {
				return nil, fmt.Errorf("at %s: %w", x.At, err)
			}
			return &ir.Scalar{Content: content, At: x.At}, nil
		case *ir.List:
			res := &ir.List{Items: make([]ir.Node, len(x.Items)), At: x.At}
			for i, item := range x.Items {
				out, err := apply(item, tag)
				if err != nil {
					return nil, err
				}
				res.Items[i] = out
			}
			return res, nil
		case *ir.Map:
			res := &ir.Map{Entries: make([]ir.KeyVal, len(x.Entries)), At: x.At}
			for i := range x.Entries {
				val, err := apply(x.Entries[i].Val, tag)
				if err != nil {
					return nil, err
				}
				res.Entries[i] = ir.KeyVal{Key: x.Entries[i].Key, Val: val}
			}
			return res, nil
		case *ir.Tagged:
			inner, err := apply(x.Inner, x.Tag)
			if err != nil {
				return nil, err
			}
			return &ir.Tagged{Tag: x.Tag, Inner: inner, At: x.At}, nil
		}
		return n, nil
	}
	return func(n ir.Node) (ir.Node, error) {
		return apply(n, "")
	}, nil
}

func runScalar(prg *vm.Program, env scalarEnv) (string, error) {
	res, err := expr.Run(prg, env)
	if err != nil {
		return "", err
	}
	s, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("expression returned %T, want string", res)
	}
	return s, nil
}
