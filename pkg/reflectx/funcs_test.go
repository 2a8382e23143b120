package reflectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type functionTestStruct struct{}

func (t *functionTestStruct) method() {}

func regularFunction()   {}
func withParams(x int)   {}
func variadic(...string) {}

type namedFunc func(string) string

func TestIsFunction(t *testing.T) {
	tests := []struct {
		name string
		fn   interface{}
		want bool
	}{
		{"nil", nil, false},
		{"int", 42, false},
		{"string", "not a func", false},
		{"struct", functionTestStruct{}, false},
		{"regular function", regularFunction, true},
		{"anonymous function", func() {}, true},
		{"function with params", withParams, true},
		{"variadic function", variadic, true},
		{"pointer method", (*functionTestStruct).method, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFunction(tt.fn))
		})
	}
}

func TestFunctionName(t *testing.T) {
	t.Run("non-function", func(t *testing.T) {
		assert.Equal(t, "", FunctionName(42))
	})

	t.Run("named function", func(t *testing.T) {
		assert.Equal(t, "regularFunction", FunctionName(regularFunction))
	})

	t.Run("named function type", func(t *testing.T) {
		var f namedFunc = func(s string) string { return s }
		assert.Equal(t, "reflectx.namedFunc", FunctionName(f))
	})

	t.Run("method value", func(t *testing.T) {
		v := &functionTestStruct{}
		assert.Equal(t, "method", FunctionName(v.method))
	})
}
