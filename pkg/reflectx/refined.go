package reflectx

import "reflect"

// IsRefinedType reports whether value is exactly the type R. Unlike an
// interface assertion this does not match named types sharing R's underlying
// type, which matters when scanning function signatures for injected
// parameters such as types.ContextVars.
func IsRefinedType[R any](value reflect.Type) bool {
	var toMatch R
	return reflect.TypeOf(toMatch) == value
}
