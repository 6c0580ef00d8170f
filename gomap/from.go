package gomap

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/skein-format/go-skein/debug"
	"github.com/skein-format/go-skein/ir"
)

// FromNode decodes a node into v, which must be a non-nil pointer. Types
// implementing Unmarshaler decode themselves; everything else is
// populated by reflection, mirroring ToNode.
func (e *Engine) FromNode(n ir.Node, v any) error {
	if v == nil {
		return &UnmarshalError{Message: "destination cannot be nil"}
	}
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr {
		return &UnmarshalError{Message: fmt.Sprintf("destination must be a pointer, got %T", v)}
	}
	if val.IsNil() {
		return &UnmarshalError{Message: "destination pointer cannot be nil"}
	}
	if n == nil {
		return &UnmarshalError{Message: "node is nil"}
	}
	if debug.Engine() {
		debug.Logf("engine FromNode into %T:\n%s\n", v, n)
	}
	return e.fromNode(n, val.Elem())
}

func (e *Engine) fromNode(n ir.Node, val reflect.Value) error {
	if done, err := unmarshalSelf(n, val); done {
		return err
	}

	switch val.Kind() {
	case reflect.Ptr:
		if n.Kind() == ir.NullKind {
			val.SetZero()
			return nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		return e.fromNode(n, val.Elem())

	case reflect.Interface:
		return e.fromNodeInterface(n, val)
	}

	// tags on concrete targets carry no information; unwrap
	n = ir.Inner(n)

	if n.Kind() == ir.NullKind {
		val.SetZero()
		return nil
	}

	switch val.Kind() {
	case reflect.String:
		s, err := scalarContent(n, "string")
		if err != nil {
			return err
		}
		val.SetString(s)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s, err := scalarContent(n, "integer")
		if err != nil {
			return err
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("cannot parse %q as integer", s), Err: err}
		}
		if val.OverflowInt(i) {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("value %d overflows %s", i, val.Type())}
		}
		val.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s, err := scalarContent(n, "unsigned integer")
		if err != nil {
			return err
		}
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("cannot parse %q as unsigned integer", s), Err: err}
		}
		if val.OverflowUint(u) {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("value %d overflows %s", u, val.Type())}
		}
		val.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		s, err := scalarContent(n, "float")
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("cannot parse %q as float", s), Err: err}
		}
		if val.OverflowFloat(f) {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("value %v overflows %s", f, val.Type())}
		}
		val.SetFloat(f)
		return nil

	case reflect.Bool:
		s, err := scalarContent(n, "bool")
		if err != nil {
			return err
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return &UnmarshalError{Path: n.Path(), Message: fmt.Sprintf("cannot parse %q as bool", s), Err: err}
		}
		val.SetBool(b)
		return nil

	case reflect.Slice:
		return e.fromNodeSlice(n, val)
	case reflect.Array:
		return e.fromNodeArray(n, val)
	case reflect.Map:
		return e.fromNodeMap(n, val)
	case reflect.Struct:
		return e.fromNodeStruct(n, val)
	}

	return &UnmarshalError{
		Path:    n.Path(),
		Message: fmt.Sprintf("unsupported type: %s", val.Type()),
	}
}

// unmarshalSelf dispatches to Unmarshaler or encoding.TextUnmarshaler.
// Both are checked on the pointer, allocating through nil pointers first.
func unmarshalSelf(n ir.Node, val reflect.Value) (done bool, err error) {
	var ptr reflect.Value
	switch {
	case val.Kind() == reflect.Ptr:
		t := reflect.PointerTo(val.Type().Elem())
		if !implementsSelf(t) {
			return false, nil
		}
		if val.IsNil() {
			val.Set(reflect.New(val.Type().Elem()))
		}
		ptr = val
	case val.CanAddr():
		ptr = val.Addr()
	default:
		return false, nil
	}
	switch u := ptr.Interface().(type) {
	case Unmarshaler:
		return true, u.UnmarshalSkein(n)
	case encoding.TextUnmarshaler:
		s, err := scalarContent(ir.Inner(n), "string")
		if err != nil {
			return true, err
		}
		return true, u.UnmarshalText([]byte(s))
	}
	return false, nil
}

var (
	unmarshalerType     = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func implementsSelf(t reflect.Type) bool {
	return t.Implements(unmarshalerType) || t.Implements(textUnmarshalerType)
}

func scalarContent(n ir.Node, want string) (string, error) {
	s, ok := n.(*ir.Scalar)
	if !ok {
		return "", &TypeError{Path: n.Path(), Expected: want, Actual: n.Kind().String()}
	}
	return s.Content, nil
}

// fromNodeInterface decodes into an interface-typed destination. Tagged
// nodes select a registered variant; any other node is only acceptable
// when the destination is the empty interface.
func (e *Engine) fromNodeInterface(n ir.Node, val reflect.Value) error {
	if n.Kind() == ir.NullKind {
		val.SetZero()
		return nil
	}
	if t, ok := n.(*ir.Tagged); ok {
		vt, ok := e.variantFor(t.Tag)
		if !ok {
			if val.Type().NumMethod() == 0 {
				// generic materialization needs no registry
				return e.fromNodeAny(n, val)
			}
			return &UnknownTagError{Path: n.Path(), Tag: t.Tag, Into: val.Type().String()}
		}
		variant := reflect.New(derefType(vt))
		if err := e.fromNode(t.Inner, variant.Elem()); err != nil {
			return err
		}
		concrete := variant.Elem()
		if vt.Kind() == reflect.Ptr {
			concrete = variant
		}
		if !concrete.Type().AssignableTo(val.Type()) {
			return &TypeError{
				Path:    n.Path(),
				Message: fmt.Sprintf("variant %s does not implement %s", vt, val.Type()),
			}
		}
		val.Set(concrete)
		return nil
	}
	if val.Type().NumMethod() == 0 {
		return e.fromNodeAny(n, val)
	}
	return &TypeError{
		Path:    n.Path(),
		Message: fmt.Sprintf("cannot determine variant for %s: node carries no tag", val.Type()),
	}
}

func derefType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// fromNodeAny materializes a node as generic Go data: scalars stay
// strings, lists become []any, maps become map[string]any and tagged
// nodes become their {"!": tag, "value": inner} image (see ir.ToJSON).
func (e *Engine) fromNodeAny(n ir.Node, val reflect.Value) error {
	switch x := n.(type) {
	case *ir.Scalar:
		val.Set(reflect.ValueOf(x.Content))
		return nil
	case *ir.List:
		items := make([]any, len(x.Items))
		for i, item := range x.Items {
			if err := e.fromNode(item, reflect.ValueOf(&items[i]).Elem()); err != nil {
				return err
			}
		}
		val.Set(reflect.ValueOf(items))
		return nil
	case *ir.Map:
		m := make(map[string]any, len(x.Entries))
		for i := range x.Entries {
			key, err := scalarContent(x.Entries[i].Key, "string key")
			if err != nil {
				return err
			}
			var item any
			if err := e.fromNode(x.Entries[i].Val, reflect.ValueOf(&item).Elem()); err != nil {
				return err
			}
			m[key] = item
		}
		val.Set(reflect.ValueOf(m))
		return nil
	case *ir.Tagged:
		var inner any
		if err := e.fromNode(x.Inner, reflect.ValueOf(&inner).Elem()); err != nil {
			return err
		}
		val.Set(reflect.ValueOf(map[string]any{"!": x.Tag, "value": inner}))
		return nil
	}
	return &TypeError{Path: n.Path(), Expected: "value", Actual: n.Kind().String()}
}

func (e *Engine) fromNodeSlice(n ir.Node, val reflect.Value) error {
	l, ok := n.(*ir.List)
	if !ok {
		return &TypeError{Path: n.Path(), Expected: "list", Actual: n.Kind().String()}
	}
	res := reflect.MakeSlice(val.Type(), len(l.Items), len(l.Items))
	for i, item := range l.Items {
		if err := e.fromNode(item, res.Index(i)); err != nil {
			return err
		}
	}
	val.Set(res)
	return nil
}

func (e *Engine) fromNodeArray(n ir.Node, val reflect.Value) error {
	l, ok := n.(*ir.List)
	if !ok {
		return &TypeError{Path: n.Path(), Expected: "list", Actual: n.Kind().String()}
	}
	if len(l.Items) != val.Len() {
		return &UnmarshalError{
			Path:    n.Path(),
			Message: fmt.Sprintf("list has %d items, array wants %d", len(l.Items), val.Len()),
		}
	}
	for i, item := range l.Items {
		if err := e.fromNode(item, val.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) fromNodeMap(n ir.Node, val reflect.Value) error {
	m, ok := n.(*ir.Map)
	if !ok {
		return &TypeError{Path: n.Path(), Expected: "map", Actual: n.Kind().String()}
	}
	if val.Type().Key().Kind() != reflect.String {
		return &UnmarshalError{
			Path:    n.Path(),
			Message: fmt.Sprintf("map keys must be strings, got %s", val.Type().Key()),
		}
	}
	res := reflect.MakeMapWithSize(val.Type(), len(m.Entries))
	for i := range m.Entries {
		key, err := scalarContent(m.Entries[i].Key, "string key")
		if err != nil {
			return err
		}
		item := reflect.New(val.Type().Elem()).Elem()
		if err := e.fromNode(m.Entries[i].Val, item); err != nil {
			return err
		}
		res.SetMapIndex(reflect.ValueOf(key).Convert(val.Type().Key()), item)
	}
	val.Set(res)
	return nil
}

func (e *Engine) fromNodeStruct(n ir.Node, val reflect.Value) error {
	m, ok := n.(*ir.Map)
	if !ok {
		return &TypeError{Path: n.Path(), Expected: "map", Actual: n.Kind().String()}
	}
	fields, err := structFields(val.Type())
	if err != nil {
		return &UnmarshalError{Path: n.Path(), Message: err.Error()}
	}
	byName := make(map[string]fieldIndex, len(fields))
	for _, f := range fields {
		byName[f.spec.name] = f
	}
	for i := range m.Entries {
		key, err := scalarContent(m.Entries[i].Key, "string key")
		if err != nil {
			return err
		}
		f, ok := byName[key]
		if !ok {
			if e.strict {
				return &UnmarshalError{
					Path:    m.Entries[i].Val.Path(),
					Message: fmt.Sprintf("unknown field %q in %s", key, val.Type()),
				}
			}
			continue
		}
		target, err := allocFieldByIndex(val, f.index)
		if err != nil {
			return &UnmarshalError{Path: m.Entries[i].Val.Path(), Message: err.Error()}
		}
		if err := e.fromNode(m.Entries[i].Val, target); err != nil {
			return err
		}
	}
	return nil
}

// allocFieldByIndex walks an index chain, allocating nil embedded
// pointers along the way so the leaf field is settable.
func allocFieldByIndex(val reflect.Value, index []int) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			if val.Kind() == reflect.Ptr {
				if val.IsNil() {
					if !val.CanSet() {
						return reflect.Value{}, fmt.Errorf("cannot allocate embedded %s", val.Type())
					}
					val.Set(reflect.New(val.Type().Elem()))
				}
				val = val.Elem()
			}
		}
		val = val.Field(x)
	}
	return val, nil
}
