package gomap

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/skein-format/go-skein/ir"
)

// Engine converts between Go values and nodes. It carries the variant
// registry used for interface-typed values and the decode options. An
// Engine is safe for concurrent use.
type Engine struct {
	strict bool

	mu       sync.RWMutex
	variants map[string]reflect.Type
	tags     map[reflect.Type]string
}

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// StrictFields makes FromNode fail on map keys that match no struct field,
// instead of ignoring them.
func StrictFields() EngineOption {
	return func(e *Engine) {
		e.strict = true
	}
}

// NewEngine builds an engine with an empty variant registry.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		variants: map[string]reflect.Type{},
		tags:     map[reflect.Type]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns the process-wide engine used by the package-level
// ToNode and FromNode.
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// RegisterVariant registers proto's type as a polymorphic variant under
// its fully-qualified type tag (see ir.TypeTag). Values of the type
// encode to a tagged node; tagged nodes decoded into an interface select
// the variant by tag.
func (e *Engine) RegisterVariant(proto any) error {
	t := reflect.TypeOf(proto)
	if t == nil {
		return fmt.Errorf("cannot register a nil variant")
	}
	tag := ir.TypeTag(t)
	if tag == "" {
		return fmt.Errorf("cannot register unnamed type %s as a variant", t)
	}
	return e.RegisterVariantAs(tag, proto)
}

// RegisterVariantAs registers proto's type under an explicit tag,
// overriding the fully-qualified default.
func (e *Engine) RegisterVariantAs(tag string, proto any) error {
	if err := ir.CheckTag(tag); err != nil {
		return fmt.Errorf("invalid variant tag %q: %w", tag, err)
	}
	t := reflect.TypeOf(proto)
	if t == nil {
		return fmt.Errorf("cannot register a nil variant")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if prev, ok := e.variants[tag]; ok && prev != t {
		return fmt.Errorf("tag %q already registered to %s", tag, prev)
	}
	e.variants[tag] = t
	e.tags[t] = tag
	return nil
}

// tagFor reports the registered tag for t, or "".
func (e *Engine) tagFor(t reflect.Type) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tags[t]
}

// variantFor reports the type registered under tag.
func (e *Engine) variantFor(tag string) (reflect.Type, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.variants[tag]
	return t, ok
}
