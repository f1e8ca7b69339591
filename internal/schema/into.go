package schema

import (
	"fmt"
	"reflect"

	"awlyc/internal/diag"
	"awlyc/internal/eval"
	"awlyc/internal/source"
)

// Into projects v against s and decodes the result into a T, via a single
// reflect pass over the already-projected any tree. Project itself never
// uses reflection; Into is the one convenience layer that does, and it
// exists only so FromFile[T]/Decode[T] can hand the caller a populated
// struct instead of a map[string]any (spec.md §4.6, §6).
func Into[T any](v eval.Value, s *Schema, root source.Span) (T, *diag.Bag) {
	var out T
	projected, bag := ProjectValue(v, s, root)
	if bag.HasErrors() {
		return out, bag
	}
	if err := decodeInto(projected, reflect.ValueOf(&out).Elem()); err != nil {
		bag.Add(&diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.TypeProjectMismatch,
			Message:  err.Error(),
			Primary:  root,
		})
	}
	return out, bag
}

// decodeInto populates dst (addressable) from value, which is one of the
// shapes Project produces: bool, int64, float64, string, nil, []any, or
// map[string]any.
func decodeInto(value any, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if value == nil {
			dst.Set(reflect.Zero(dst.Type()))
			return nil
		}
		elem := reflect.New(dst.Type().Elem())
		if err := decodeInto(value, elem.Elem()); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	}

	switch dst.Kind() {
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("schema: expected bool, got %T", value)
		}
		dst.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := value.(int64)
		if !ok {
			return fmt.Errorf("schema: expected int, got %T", value)
		}
		if dst.OverflowInt(n) {
			return fmt.Errorf("schema: value %d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, ok := value.(float64)
		if !ok {
			return fmt.Errorf("schema: expected float, got %T", value)
		}
		dst.SetFloat(f)

	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("schema: expected string, got %T", value)
		}
		dst.SetString(s)

	case reflect.Slice:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("schema: expected sequence, got %T", value)
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(item, out.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(out)

	case reflect.Map:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("schema: expected map, got %T", value)
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(m))
		for k, v := range m {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeInto(v, elem); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k), elem)
		}
		dst.Set(out)

	case reflect.Struct:
		m, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("schema: expected record, got %T", value)
		}
		t := dst.Type()
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			name, skip := fieldName(sf)
			if skip {
				continue
			}
			fv, present := m[name]
			if !present {
				continue
			}
			if err := decodeInto(fv, dst.Field(i)); err != nil {
				return fmt.Errorf("field %s: %w", sf.Name, err)
			}
		}

	default:
		return fmt.Errorf("schema: unsupported destination type %s", dst.Type())
	}
	return nil
}
