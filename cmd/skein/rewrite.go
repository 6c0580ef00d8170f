package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skein-format/go-skein/codec"
	"github.com/skein-format/go-skein/rewrite"

	"github.com/scott-cotton/cli"
)

func rewriteCmd(cfg *RewriteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rewrite.Parse(cc, args)
	if err != nil {
		return err
	}
	var transforms []codec.Transform
	if cfg.PatchFile != "" {
		patch, err := os.ReadFile(cfg.PatchFile)
		if err != nil {
			return fmt.Errorf("could not read %q: %w", cfg.PatchFile, err)
		}
		t, err := rewrite.JSONPatch(patch)
		if err != nil {
			return err
		}
		transforms = append(transforms, t)
	}
	if cfg.Expr != "" {
		t, err := rewrite.ScalarExpr(cfg.Expr)
		if err != nil {
			return err
		}
		transforms = append(transforms, t)
	}
	if len(transforms) == 0 {
		return fmt.Errorf("%w: rewrite needs -e and/or -p", cli.ErrUsage)
	}
	transform := rewrite.Compose(transforms...)

	return eachFile(args, func(name string, r io.Reader) error {
		node, err := readDoc(cfg.MainConfig, r)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
		node, err = transform(node)
		if err != nil {
			return fmt.Errorf("error rewriting %s: %w", name, err)
		}
		return writeDoc(cfg.MainConfig, cc.Out, node)
	})
}
