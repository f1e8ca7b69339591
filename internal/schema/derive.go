package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Derive builds a Schema by reflecting over a Go type, so a caller whose
// target struct already says everything the schema would (field names,
// option-ness via pointers, nested records, sequences, maps) does not have
// to hand-write one. Field names default to the lower-cased Go field name;
// an `awlyc:"name"` tag overrides that, and `awlyc:"-"` excludes a field.
//
// Go type → Schema:
//
//	bool                    -> KindBool
//	intN / int              -> KindInt (IntBits = N, 64 for plain int)
//	float32 / float64        -> KindFloat
//	string                   -> KindString
//	*T                       -> KindOption{Elem: Derive(T)}
//	[]T                      -> KindSequence{Elem: Derive(T)}
//	map[string]T             -> KindMap{Elem: Derive(T)}
//	struct{...}              -> KindRecord{Fields: ...}
func Derive(t reflect.Type) (*Schema, error) {
	switch t.Kind() {
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int8:
		return Int(8), nil
	case reflect.Int16:
		return Int(16), nil
	case reflect.Int32:
		return Int(32), nil
	case reflect.Int, reflect.Int64:
		return Int(64), nil
	case reflect.Float32:
		return Float(32), nil
	case reflect.Float64:
		return Float(64), nil
	case reflect.String:
		return String(), nil
	case reflect.Ptr:
		elem, err := Derive(t.Elem())
		if err != nil {
			return nil, err
		}
		return Option(elem), nil
	case reflect.Slice, reflect.Array:
		elem, err := Derive(t.Elem())
		if err != nil {
			return nil, err
		}
		return Sequence(elem), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("schema: map key must be string, got %s", t.Key())
		}
		elem, err := Derive(t.Elem())
		if err != nil {
			return nil, err
		}
		return Map(elem), nil
	case reflect.Struct:
		fields := make([]Field, 0, t.NumField())
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, skip := fieldName(sf)
			if skip {
				continue
			}
			fieldSchema, err := Derive(sf.Type)
			if err != nil {
				return nil, fmt.Errorf("schema: field %s: %w", sf.Name, err)
			}
			fields = append(fields, Field{Name: name, Type: fieldSchema})
		}
		return Record(fields...), nil
	default:
		return nil, fmt.Errorf("schema: unsupported Go type %s", t)
	}
}

func fieldName(sf reflect.StructField) (name string, skip bool) {
	tag, ok := sf.Tag.Lookup("awlyc")
	if !ok {
		return strings.ToLower(sf.Name), false
	}
	if tag == "-" {
		return "", true
	}
	return tag, false
}
