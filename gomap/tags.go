package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldSpec is the per-field mapping derived from a struct field and its
// `skein` tag.
type fieldSpec struct {
	name      string
	omitEmpty bool
	skip      bool
}

// parseFieldSpec interprets a struct field's `skein` tag. The tag is a
// comma-separated list of `key=value` pairs and flags:
//
//	field=NAME  rename the serialized field
//	omitempty   skip the field when its value is the zero value
//	-           skip the field entirely
func parseFieldSpec(field reflect.StructField) (fieldSpec, error) {
	spec := fieldSpec{name: field.Name}
	tag := field.Tag.Get("skein")
	if tag == "" {
		return spec, nil
	}
	if tag == "-" {
		spec.skip = true
		return spec, nil
	}
	for _, item := range strings.Split(tag, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, value, hasValue := strings.Cut(item, "=")
		switch key {
		case "field":
			if !hasValue || value == "" {
				return spec, fmt.Errorf("field %s: field= requires a name", field.Name)
			}
			spec.name = value
		case "omitempty":
			if hasValue {
				return spec, fmt.Errorf("field %s: omitempty takes no value", field.Name)
			}
			spec.omitEmpty = true
		default:
			return spec, fmt.Errorf("field %s: unknown tag item %q", field.Name, item)
		}
	}
	return spec, nil
}

// fieldIndex pairs a resolved field spec with its reflect index chain.
type fieldIndex struct {
	spec  fieldSpec
	index []int
}

// structFields resolves the serialized fields of a struct type in
// declaration order, flattening untagged embedded structs. Duplicate
// serialized names are an error.
func structFields(t reflect.Type) ([]fieldIndex, error) {
	var out []fieldIndex
	seen := map[string]bool{}
	if err := collectFields(t, nil, seen, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectFields(t reflect.Type, prefix []int, seen map[string]bool, out *[]fieldIndex) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		spec, err := parseFieldSpec(field)
		if err != nil {
			return err
		}
		if spec.skip {
			continue
		}
		index := append(append([]int{}, prefix...), i)
		if field.Anonymous && field.Tag.Get("skein") == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				if err := collectFields(embedded, index, seen, out); err != nil {
					return err
				}
				continue
			}
		}
		if seen[spec.name] {
			return fmt.Errorf("duplicate field %q in %s", spec.name, t)
		}
		seen[spec.name] = true
		*out = append(*out, fieldIndex{spec: spec, index: index})
	}
	return nil
}
