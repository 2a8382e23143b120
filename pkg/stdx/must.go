package stdx

// Must0 panics if the provided error is not nil. It is intended for error
// handling in situations where an error is a programming mistake and should
// terminate the program.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v if err is nil and panics otherwise. Useful for wrapping
// constructors whose failure would be a programming mistake.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
