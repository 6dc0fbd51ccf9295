package testutil

import (
	"reflect"
	"sync/atomic"
)

// CallCounter counts invocations of a wrapped function.
type CallCounter struct {
	n atomic.Int64
}

// Count returns the number of calls so far.
func (c *CallCounter) Count() int {
	return int(c.n.Load())
}

// CountCalls wraps fn, which must be a function, in a function of the same
// type that counts its calls before delegating. The returned value can be
// type-asserted back to fn's type.
//
//	wrapped, calls := testutil.CountCalls(reference.MergePair)
//	harness.Test(harness.Named("merge", wrapped), "")
//	calls.Count() // 4
func CountCalls(fn any) (any, *CallCounter) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("CountCalls: not a function")
	}

	c := &CallCounter{}
	wrapped := reflect.MakeFunc(v.Type(), func(args []reflect.Value) []reflect.Value {
		c.n.Add(1)
		if v.Type().IsVariadic() {
			return v.CallSlice(args)
		}
		return v.Call(args)
	})
	return wrapped.Interface(), c
}
