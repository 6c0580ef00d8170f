package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.inFormat() == cfg.outFormat() && cfg.InFormat != nil && cfg.OutFormat != nil {
		return fmt.Errorf("%w: input and output formats are both %s", cli.ErrUsage, cfg.inFormat())
	}
	return eachFile(args, func(name string, r io.Reader) error {
		node, err := readDoc(cfg.MainConfig, r)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
		return writeDoc(cfg.MainConfig, cc.Out, node)
	})
}
