package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns a slog.Attr for the provided error, keyed "error".
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Stringer returns a slog.Attr with the string representation of the given
// fmt.Stringer value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}
