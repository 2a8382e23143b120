package api

import (
	"github.com/hookbill/hookbill/tool"
	"github.com/hookbill/hookbill/types"
)

// Agent describes a conversational agent as declared to the hosting platform.
// The platform owns the reasoning loop, threading and model invocation; this
// interface only carries the declaration the platform needs to create it.
//
// Design decisions:
//   - Minimal surface: name, model deployment, instructions and tools are all
//     a platform needs to provision an agent.
//   - Immutable configuration: methods return values rather than allowing
//     runtime changes.
//   - Flexible instructions: RenderInstructions supports dynamic instructions
//     from context variables.
type Agent interface {
	// Name returns the agent's unique identifier, used for registry lookups,
	// logging and delegation tool naming.
	Name() string

	// Model returns the model deployment name the platform should run this
	// agent on. The platform resolves it; the client treats it as opaque.
	Model() string

	// Instructions returns the raw instruction template.
	Instructions() string

	// Tools returns the tools this agent may ask the platform to invoke.
	Tools() []tool.Definition

	// RenderInstructions renders the instruction template with the provided
	// context variables. Returns an error when required variables are missing
	// or the template is malformed.
	RenderInstructions(types.ContextVars) (string, error)
}
