package harness

import (
	"reflect"
	"runtime"
	"strings"
)

// Subject is a function under test and the name used to infer its fixtures.
type Subject struct {
	Name string
	Func any
}

// Named pairs fn with an explicit name.
func Named(name string, fn any) Subject {
	return Subject{Name: name, Func: fn}
}

// Func pairs fn with the name of its Go declaration (see FuncName).
func Func(fn any) Subject {
	return Subject{Name: FuncName(fn), Func: fn}
}

// FuncName returns the declared name of fn without its package path,
// e.g. "MergePair" for reference.MergePair. Closures keep the runtime suffix
// ("Outer.func1"); method values drop the "-fm" suffix.
// It returns "" when fn is not a non-nil function.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}

	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
