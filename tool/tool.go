package tool

import (
	"fmt"
	"reflect"

	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/hookbill/hookbill/pkg/reflectx"
	"github.com/hookbill/hookbill/pkg/stdx"
	"github.com/hookbill/hookbill/types"
)

// Definition is an explicit tool descriptor: a name, a human-readable
// description, named parameters and a handle to the invokable function. It is
// what gets declared to the agent platform, which decides when to invoke it.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]string
	Function    any
}

var functionReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// ToNameAndSchema returns the tool name and a JSON schema describing its
// parameters, derived from the function signature. Parameters of type
// types.ContextVars are injected by the runtime and excluded from the schema.
func (td Definition) ToNameAndSchema() (string, *jsonschema.Schema) {
	name := td.Name
	if name == "" {
		name = reflectx.FunctionName(td.Function)
	}

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	typ := reflect.TypeOf(td.Function)
	if typ == nil || typ.Kind() != reflect.Func {
		return name, schema
	}

	startIdx := 0
	numIn := typ.NumIn()
	// Skip the receiver for method values.
	if numIn > 0 && typ.In(0).Kind() == reflect.Struct {
		startIdx = 1
	}

	var required []string
	idx := 0
	for i := startIdx; i < numIn; i++ {
		paramType := typ.In(i)
		if reflectx.IsRefinedType[types.ContextVars](paramType) {
			continue
		}

		paramName := fmt.Sprintf("param%d", idx)
		idx++
		if td.Parameters != nil {
			if p, ok := td.Parameters[paramName]; ok {
				paramName = p
			}
		}

		propSchema := functionReflector.ReflectFromType(paramType)
		propSchema.Version = ""
		schema.Properties.Set(paramName, propSchema)
		required = append(required, paramName)
	}
	if len(required) > 0 {
		schema.Required = required
	}

	return name, schema
}

// Option configures a tool Definition.
type Option = opts.Option[Definition]

// Must creates a Definition from the function and options, panicking when New
// returns an error. Use it for statically known tools where a failure is a
// programming error.
func Must(f any, options ...Option) Definition {
	return stdx.Must1(New(f, options...))
}

// New creates a Definition from the provided function and options. The name
// falls back to the function's own name when no Name option is given.
func New(f any, options ...Option) (Definition, error) {
	if !reflectx.IsFunction(f) {
		return Definition{}, fmt.Errorf("provided value is not a function")
	}

	var def Definition
	if err := opts.Apply(&def, options); err != nil {
		return Definition{}, err
	}
	if def.Name == "" {
		def.Name = reflectx.FunctionName(f)
	}

	def.Function = f
	return def, nil
}

// Name sets the tool's name as declared to the platform.
var Name = opts.ForName[Definition, string]("Name")

// Description sets the human-readable description the platform shows the
// model when deciding whether to invoke the tool.
var Description = opts.ForName[Definition, string]("Description")

// Parameters assigns names to the function's positional parameters, in
// order. The names appear in the generated schema and are used to pull
// arguments out of the platform's invocation payload.
func Parameters(parameters ...string) opts.Option[Definition] {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = make(map[string]string, len(parameters))
		for i, p := range parameters {
			o.Parameters[fmt.Sprintf("param%d", i)] = p
		}
		return nil
	})
}
