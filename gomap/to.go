package gomap

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/ir"
)

// ToNode converts a Go value to a node. Values implementing Marshaler
// produce their own node; everything else is walked by reflection:
// structs and string-keyed maps become map nodes, slices and arrays
// become lists, nil becomes null and primitives become scalars.
func (e *Engine) ToNode(v any) (ir.Node, error) {
	if v == nil {
		return ir.NullNode(), nil
	}
	visited := map[uintptr]ir.Path{}
	node, err := e.toNode(reflect.ValueOf(v), ir.Path{}, visited)
	if err == nil && debug.Engine() {
		debug.Logf("engine ToNode %T:\n%s\n", v, node)
	}
	return node, err
}

func (e *Engine) toNode(val reflect.Value, at ir.Path, visited map[uintptr]ir.Path) (ir.Node, error) {
	if !val.IsValid() {
		return ir.NullNode(), nil
	}
	if node, done, err := marshalSelf(val); done {
		return node, err
	}

	switch val.Kind() {
	case reflect.Ptr:
		if val.IsNil() {
			return ir.NullNode(), nil
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				Path:    at,
				Message: fmt.Sprintf("circular reference: value already encoded at %s", prev),
			}
		}
		visited[addr] = at
		node, err := e.toNode(val.Elem(), at, visited)
		delete(visited, addr)
		return node, err

	case reflect.Interface:
		if val.IsNil() {
			return ir.NullNode(), nil
		}
		elem := val.Elem()
		node, err := e.toNode(elem, at, visited)
		if err != nil {
			return nil, err
		}
		tag := e.tagFor(elem.Type())
		if tag == "" && val.Type().NumMethod() > 0 {
			// unregistered variants still encode resolvable under the
			// fully-qualified default; unnamed types have none. Values
			// held in empty interfaces are generic data, not variants,
			// and stay untagged.
			tag = ir.TypeTag(elem.Type())
		}
		if tag != "" {
			return ir.WithTag(tag, node), nil
		}
		return node, nil

	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ir.FromUint(val.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return e.sliceToNode(val, at, visited)
	case reflect.Map:
		return e.mapToNode(val, at, visited)
	case reflect.Struct:
		return e.structToNode(val, at, visited)
	}

	return nil, &MarshalError{
		Path:    at,
		Message: fmt.Sprintf("unsupported type: %s", val.Type()),
	}
}

// marshalSelf dispatches to Marshaler or encoding.TextMarshaler when the
// value (or its address) implements one. done reports whether it did.
func marshalSelf(val reflect.Value) (node ir.Node, done bool, err error) {
	check := func(v reflect.Value) (ir.Node, bool, error) {
		if !v.CanInterface() {
			return nil, false, nil
		}
		switch m := v.Interface().(type) {
		case Marshaler:
			n, err := m.MarshalSkein()
			return n, true, err
		case encoding.TextMarshaler:
			text, err := m.MarshalText()
			if err != nil {
				return nil, true, err
			}
			return ir.FromString(string(text)), true, nil
		}
		return nil, false, nil
	}
	if val.Kind() == reflect.Ptr && val.IsNil() {
		return nil, false, nil
	}
	if node, done, err = check(val); done {
		return node, done, err
	}
	if val.CanAddr() {
		return check(val.Addr())
	}
	return nil, false, nil
}

func (e *Engine) sliceToNode(val reflect.Value, at ir.Path, visited map[uintptr]ir.Path) (ir.Node, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return ir.NullNode(), nil
		}
		addr := val.Pointer()
		if prev, seen := visited[addr]; seen {
			return nil, &MarshalError{
				Path:    at,
				Message: fmt.Sprintf("circular reference: value already encoded at %s", prev),
			}
		}
		visited[addr] = at
		defer delete(visited, addr)
	}
	items := make([]ir.Node, val.Len())
	for i := range items {
		item, err := e.toNode(val.Index(i), at.Index(i), visited)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return &ir.List{Items: items, At: at}, nil
}

// mapToNode converts a string-keyed map, in sorted key order so output is
// deterministic.
func (e *Engine) mapToNode(val reflect.Value, at ir.Path, visited map[uintptr]ir.Path) (ir.Node, error) {
	if val.IsNil() {
		return ir.NullNode(), nil
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, &MarshalError{
			Path:    at,
			Message: fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	addr := val.Pointer()
	if prev, seen := visited[addr]; seen {
		return nil, &MarshalError{
			Path:    at,
			Message: fmt.Sprintf("circular reference: value already encoded at %s", prev),
		}
	}
	visited[addr] = at
	defer delete(visited, addr)

	entries := make(map[string]ir.Node, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		node, err := e.toNode(iter.Value(), at.Key(key), visited)
		if err != nil {
			return nil, err
		}
		entries[key] = node
	}
	res := ir.FromMap(entries)
	return ir.Rebase(res, at), nil
}

// structToNode converts a struct to a map node in field declaration
// order, flattening embedded structs.
func (e *Engine) structToNode(val reflect.Value, at ir.Path, visited map[uintptr]ir.Path) (ir.Node, error) {
	fields, err := structFields(val.Type())
	if err != nil {
		return nil, &MarshalError{Path: at, Message: err.Error()}
	}

	kvs := make([]ir.KeyVal, 0, len(fields))
	for _, f := range fields {
		fieldVal, ok := fieldByIndex(val, f.index)
		if !ok {
			// nil embedded pointer: its promoted fields are absent
			continue
		}
		if f.spec.omitEmpty && fieldVal.IsZero() {
			continue
		}
		node, err := e.toNode(fieldVal, at.Key(f.spec.name), visited)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(f.spec.name), Val: node})
	}
	res := ir.FromKeyVals(kvs)
	return ir.Rebase(res, at), nil
}

// fieldByIndex walks an index chain, reporting ok=false when a nil
// embedded pointer interrupts it.
func fieldByIndex(val reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					return reflect.Value{}, false
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, true
}
