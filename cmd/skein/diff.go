package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skein-format/go-skein/ir"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff expects exactly two files", cli.ErrUsage)
	}
	var texts [2]string
	for i, file := range args {
		node, err := readFile(cfg.MainConfig, file)
		if err != nil {
			return err
		}
		if texts[i], err = canonical(node); err != nil {
			return err
		}
	}
	if texts[0] == texts[1] {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(texts[0], texts[1], false)
	if colorOut(cfg.MainConfig, cc.Out) {
		fmt.Fprint(cc.Out, dmp.DiffPrettyText(diffs))
		return nil
	}
	patches := dmp.PatchMake(texts[0], diffs)
	fmt.Fprint(cc.Out, dmp.PatchToText(patches))
	return nil
}

func readFile(cfg *MainConfig, file string) (ir.Node, error) {
	var node ir.Node
	err := eachFile([]string{file}, func(name string, r io.Reader) error {
		var err error
		node, err = readDoc(cfg, r)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
		return nil
	})
	return node, err
}

func colorOut(cfg *MainConfig, w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
