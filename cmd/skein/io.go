package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/skein-format/go-skein/encode"
	"github.com/skein-format/go-skein/format"
	"github.com/skein-format/go-skein/gomap"
	"github.com/skein-format/go-skein/ir"
	"github.com/skein-format/go-skein/parse"

	"github.com/goccy/go-yaml"
)

// readDoc parses one document from r in the configured input format.
// skein parsing covers JSON input since skein is a JSON superset; YAML
// goes through goccy/go-yaml and the reflection engine.
func readDoc(cfg *MainConfig, r io.Reader) (ir.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading: %w", err)
	}
	if cfg.inFormat().IsYAML() {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("error decoding yaml: %w", err)
		}
		return gomap.ToNode(v)
	}
	return parse.Parse(data)
}

// writeDoc renders node to w in the configured output format.
func writeDoc(cfg *MainConfig, w io.Writer, node ir.Node) error {
	if cfg.outFormat().IsYAML() {
		var v any
		if err := gomap.FromNode(node, &v); err != nil {
			return err
		}
		d, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("error encoding yaml: %w", err)
		}
		_, err = w.Write(d)
		return err
	}
	return encode.Encode(node, w, cfg.encOpts(w)...)
}

// eachFile runs f over each named file, or stdin when files is empty or
// names "-".
func eachFile(files []string, f func(name string, r io.Reader) error) error {
	if len(files) == 0 {
		return f("(stdin)", os.Stdin)
	}
	for _, file := range files {
		if file == "-" {
			if err := f("(stdin)", os.Stdin); err != nil {
				return err
			}
			continue
		}
		fd, err := os.Open(file)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", file, err)
		}
		err = f(file, fd)
		fd.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// canonical renders a node to plain, uncolored, multi-line skein text so
// two equal documents always diff empty.
func canonical(node ir.Node) (string, error) {
	var sb strings.Builder
	if err := encode.Encode(node, &sb, encode.EncodeFormat(format.SkeinFormat)); err != nil {
		return "", err
	}
	return sb.String(), nil
}
