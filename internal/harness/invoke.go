package harness

import (
	"fmt"
	"reflect"
	"runtime/debug"

	"github.com/roach88/bpecheck/internal/fixture"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// callable is a reflected function under test.
type callable struct {
	name string
	fn   reflect.Value
	typ  reflect.Type
}

// preparedCase holds case arguments and expectation converted to the
// function's parameter and result types.
type preparedCase struct {
	in       []reflect.Value
	expected any
}

func newCallable(s Subject) (*callable, error) {
	v := reflect.ValueOf(s.Func)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, &SignatureError{Name: s.Name, Case: -1, Message: fmt.Sprintf("%T is not a function", s.Func)}
	}
	return &callable{name: s.Name, fn: v, typ: v.Type()}, nil
}

// prepare converts every case up front so a mismatched function fails before
// it is invoked even once.
func (c *callable) prepare(cases []fixture.Case) ([]preparedCase, error) {
	rt := c.resultType()
	prepared := make([]preparedCase, len(cases))
	for i, tc := range cases {
		in, err := c.convertArgs(tc.Args)
		if err != nil {
			return nil, &SignatureError{Name: c.name, Case: i, Message: err.Error()}
		}
		prepared[i].in = in

		if tc.Expect.IsError() {
			continue
		}
		prepared[i].expected = tc.Expect.Value()
		if rt != nil {
			v, err := fixture.Coerce(tc.Expect.Value(), rt)
			if err != nil {
				return nil, &SignatureError{Name: c.name, Case: i, Message: fmt.Sprintf("expected value: %v", err)}
			}
			prepared[i].expected = v.Interface()
		}
	}
	return prepared, nil
}

func (c *callable) convertArgs(args []any) ([]reflect.Value, error) {
	n := c.typ.NumIn()
	if c.typ.IsVariadic() {
		if len(args) < n-1 {
			return nil, fmt.Errorf("want at least %d arguments, fixture has %d", n-1, len(args))
		}
	} else if len(args) != n {
		return nil, fmt.Errorf("want %d arguments, fixture has %d", n, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		pt := c.paramType(i)
		v, err := fixture.Coerce(a, pt)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}
	return in, nil
}

func (c *callable) paramType(i int) reflect.Type {
	n := c.typ.NumIn()
	if c.typ.IsVariadic() && i >= n-1 {
		return c.typ.In(n - 1).Elem()
	}
	return c.typ.In(i)
}

// resultType is the type of the single non-error result, or nil when the
// function returns no value or several.
func (c *callable) resultType() reflect.Type {
	var values []reflect.Type
	for i := 0; i < c.typ.NumOut(); i++ {
		if i == c.typ.NumOut()-1 && c.typ.Out(i) == errorType {
			break
		}
		values = append(values, c.typ.Out(i))
	}
	if len(values) != 1 {
		return nil
	}
	return values[0]
}

// cloneArgs deep-copies call arguments so the function under test cannot
// write into fixture data shared between cases and runs.
func cloneArgs(in []reflect.Value) []reflect.Value {
	out := make([]reflect.Value, len(in))
	for i, v := range in {
		out[i] = cloneValue(v)
	}
	return out
}

// cloneValue copies slices, maps, arrays, pointers, interfaces and the
// exported fields of structs. Other kinds are returned as is.
func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if isFlat(v.Type().Elem()) {
			reflect.Copy(out, v)
			return out
		}
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out

	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out

	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(cloneValue(iter.Key()), cloneValue(iter.Value()))
		}
		return out

	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out

	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out

	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(cloneValue(v.Field(i)))
			}
		}
		return out
	}
	return v
}

// isFlat reports whether values of t hold no references.
func isFlat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return isFlat(t.Elem())
	}
	return false
}

// call invokes the function. A trailing error result becomes err; a panic is
// recovered into a *PanicError. Several non-error results are returned as a
// []any.
func (c *callable) call(in []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	out := c.fn.Call(in)
	if n := len(out); n > 0 && c.typ.Out(n-1) == errorType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	default:
		values := make([]any, len(out))
		for i, v := range out {
			values[i] = v.Interface()
		}
		return values, err
	}
}
