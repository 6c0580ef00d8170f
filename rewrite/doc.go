// Package rewrite provides composable document transforms for use with
// codec.Transformer. Each constructor returns a codec.Transform: a pure
// function from one document node to another.
//
// Transforms are building blocks; Compose chains them:
//
//	t := rewrite.Compose(
//	    rewrite.RenameField("name", "displayName"),
//	    rewrite.AtField("labels", rewrite.MapScalars(strings.ToLower)),
//	)
//	c := codec.NewTransformer(inner, t, codec.Identity)
package rewrite
