package harness

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// FormatValue renders v for diagnostics: strings and byte strings quoted,
// map keys sorted, nil pointers as "nil", fmt.Stringer honored.
func FormatValue(v any) string {
	return formatValue(reflect.ValueOf(v))
}

// FormatArgs renders positional arguments as a tuple.
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatValue(a)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "nil"
		}
	}

	if v.CanInterface() && v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String()
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return formatValue(v.Elem())

	case reflect.String:
		return strconv.Quote(v.String())

	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return "b" + strconv.Quote(string(v.Bytes()))
		}
		return "[" + joinElems(v) + "]"

	case reflect.Array:
		return "[" + joinElems(v) + "]"

	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return lessValue(keys[i], keys[j]) })
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = formatValue(k) + ": " + formatValue(v.MapIndex(k))
		}
		return "{" + strings.Join(parts, ", ") + "}"

	case reflect.Struct:
		t := v.Type()
		var parts []string
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			parts = append(parts, t.Field(i).Name+": "+formatValue(v.Field(i)))
		}
		return t.Name() + "{" + strings.Join(parts, ", ") + "}"
	}

	if v.CanInterface() {
		return fmt.Sprint(v.Interface())
	}
	return v.String()
}

func joinElems(v reflect.Value) string {
	parts := make([]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		parts[i] = formatValue(v.Index(i))
	}
	return strings.Join(parts, ", ")
}

// lessValue orders map keys: numbers numerically, arrays element-wise,
// everything else by rendered text.
func lessValue(a, b reflect.Value) bool {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return a.Uint() < b.Uint()
		case reflect.String:
			return a.String() < b.String()
		case reflect.Array:
			for i := 0; i < a.Len() && i < b.Len(); i++ {
				if lessValue(a.Index(i), b.Index(i)) {
					return true
				}
				if lessValue(b.Index(i), a.Index(i)) {
					return false
				}
			}
			return a.Len() < b.Len()
		}
	}
	return formatValue(a) < formatValue(b)
}
