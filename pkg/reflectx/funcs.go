package reflectx

import (
	"reflect"
	"runtime"
	"strings"
)

// IsFunction reports whether the provided value is a function.
func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}

	ftpe := reflect.TypeOf(fn)
	return ftpe.Kind() == reflect.Func
}

// FunctionName returns a usable name for the provided function. Named
// function types report their type name; functions and method values report
// the name the runtime knows them by, stripped of package qualifiers and the
// method-value suffix. Returns "" for non-functions.
func FunctionName(fn any) string {
	if !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	typ := val.Type()

	if typ.Name() != "" {
		return typ.String()
	}

	name := typ.String()
	if rf := runtime.FuncForPC(val.Pointer()); rf != nil {
		name = rf.Name()
		if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
			name = strings.TrimSuffix(name[lastDot+1:], "-fm")
		}
	}
	return name
}
