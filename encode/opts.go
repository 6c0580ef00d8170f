package encode

import "github.com/skein-format/go-skein/format"

type EncodeOption func(*EncState)

// EncodeFormat selects skein or JSON output. YAML is not rendered here;
// tools convert via the JSON image.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.json = f.IsJSON() }
}

// Compact renders the document on a single line with no trailing newline.
func Compact(v bool) EncodeOption {
	return func(es *EncState) { es.compact = v }
}

// Indent sets the indent width for multi-line output (default 2).
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeColors styles output with the given palette.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
