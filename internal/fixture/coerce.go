package fixture

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Coerce converts v to type t.
//
// Values that are already assignable pass through unchanged, values of a
// named type with the same underlying kind are converted, and untyped values
// decoded from fixture files are rebuilt structurally:
//   - nil becomes the zero value of t
//   - integral numbers become any integer kind (overflow is an error)
//   - strings become []byte, or any type implementing encoding.TextUnmarshaler
//   - lists become slices or arrays of matching length
//   - maps become maps (string keys are parsed for integer key types) or
//     structs (keys matched to field names case-insensitively)
//   - pointers are allocated around the coerced element
func Coerce(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}

	if s, ok := v.(string); ok && reflect.PointerTo(t).Implements(textUnmarshalerType) {
		ptr := reflect.New(t)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, t)
		}
		out.SetInt(n)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(v)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		if n < 0 || out.OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%d overflows %s", n, t)
		}
		out.SetUint(uint64(n))
		return out, nil

	case reflect.String:
		if b, ok := v.([]byte); ok {
			return reflect.ValueOf(string(b)).Convert(t), nil
		}

	case reflect.Slice:
		if s, ok := v.(string); ok && t.Elem().Kind() == reflect.Uint8 {
			return reflect.ValueOf([]byte(s)).Convert(t), nil
		}
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := reflect.MakeSlice(t, rv.Len(), rv.Len())
			for i := 0; i < rv.Len(); i++ {
				elem, err := Coerce(rv.Index(i).Interface(), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
				}
				out.Index(i).Set(elem)
			}
			return out, nil
		}

	case reflect.Array:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			if rv.Len() != t.Len() {
				return reflect.Value{}, fmt.Errorf("want %d elements for %s, got %d", t.Len(), t, rv.Len())
			}
			out := reflect.New(t).Elem()
			for i := 0; i < rv.Len(); i++ {
				elem, err := Coerce(rv.Index(i).Interface(), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("[%d]: %w", i, err)
				}
				out.Index(i).Set(elem)
			}
			return out, nil
		}

	case reflect.Map:
		if rv.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(t, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				key, err := coerceKey(iter.Key().Interface(), t.Key())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key().Interface(), err)
				}
				val, err := Coerce(iter.Value().Interface(), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("[%v]: %w", iter.Key().Interface(), err)
				}
				out.SetMapIndex(key, val)
			}
			return out, nil
		}

	case reflect.Pointer:
		elem, err := Coerce(v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil

	case reflect.Struct:
		if rv.Kind() == reflect.Map {
			return coerceStruct(rv, t)
		}
	}

	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

// coerceKey is Coerce with string-to-integer parsing, since fixture file map
// keys are always strings.
func coerceKey(k any, t reflect.Type) (reflect.Value, error) {
	if s, ok := k.(string); ok {
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("invalid integer key %q", s)
			}
			return Coerce(n, t)
		}
	}
	return Coerce(k, t)
}

func coerceStruct(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	iter := rv.MapRange()
	for iter.Next() {
		name, ok := iter.Key().Interface().(string)
		if !ok {
			return reflect.Value{}, fmt.Errorf("field name %v is not a string", iter.Key().Interface())
		}
		field, found := t.FieldByNameFunc(func(f string) bool { return strings.EqualFold(f, name) })
		if !found || !field.IsExported() {
			return reflect.Value{}, fmt.Errorf("unknown field %q for %s", name, t)
		}
		val, err := Coerce(iter.Value().Interface(), field.Type)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w", field.Name, err)
		}
		out.FieldByIndex(field.Index).Set(val)
	}
	return out, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%v overflows int64", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("cannot use %T as an integer", v)
	}
}
