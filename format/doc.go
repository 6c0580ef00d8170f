// Package format enumerates the textual formats skein tooling reads and
// writes. The skein packages parse and encode skein and JSON natively; YAML
// is converted at the tool boundary.
package format
