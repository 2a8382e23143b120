package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type refinedString string

func TestIsRefinedType(t *testing.T) {
	tests := []struct {
		name     string
		match    bool
		expected bool
	}{
		{"matching builtin", IsRefinedType[string](reflect.TypeOf("")), true},
		{"named type is not its underlying type", IsRefinedType[string](reflect.TypeOf(refinedString(""))), false},
		{"matching named type", IsRefinedType[refinedString](reflect.TypeOf(refinedString(""))), true},
		{"matching map type", IsRefinedType[map[string]any](reflect.TypeOf(map[string]any{})), true},
		{"pointer is not its element type", IsRefinedType[refinedString](reflect.TypeOf(new(refinedString))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.match)
		})
	}
}
