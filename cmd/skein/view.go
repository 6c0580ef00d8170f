package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachFile(args, func(name string, r io.Reader) error {
		node, err := readDoc(cfg.MainConfig, r)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", name, err)
		}
		return writeDoc(cfg.MainConfig, cc.Out, node)
	})
}
