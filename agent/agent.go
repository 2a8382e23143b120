package agent

import (
	"strings"
	"text/template"

	"github.com/fogfish/opts"

	"github.com/hookbill/hookbill/api"
	"github.com/hookbill/hookbill/tool"
	"github.com/hookbill/hookbill/types"
)

var _ api.Agent = (*defaultAgent)(nil)

// defaultAgent is the standard api.Agent implementation: a name, a model
// deployment name, an instruction template and the tools the agent may call.
type defaultAgent struct {
	name         string
	model        string
	instructions string
	tools        []tool.Definition
}

// Name returns the agent's name.
func (a *defaultAgent) Name() string {
	return a.name
}

// Model returns the model deployment name the platform runs this agent on.
func (a *defaultAgent) Model() string {
	return a.model
}

// Tools returns the agent's tool definitions.
func (a *defaultAgent) Tools() []tool.Definition {
	return a.tools
}

func (a *defaultAgent) Instructions() string {
	return a.instructions
}

// RenderInstructions renders the agent's instructions with the provided context variables.
func (a *defaultAgent) RenderInstructions(cv types.ContextVars) (string, error) {
	if !strings.Contains(a.instructions, "{{") {
		return a.instructions, nil
	}
	return renderTemplate("instructions", a.instructions, cv)
}

func renderTemplate(name, templateStr string, cv types.ContextVars) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, cv); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var (
	Name         = opts.ForName[defaultAgent, string]("name")
	Model        = opts.ForName[defaultAgent, string]("model")
	Instructions = opts.ForName[defaultAgent, string]("instructions")
)

func Tools(tool tool.Definition, extraTools ...tool.Definition) opts.Option[defaultAgent] {
	return opts.Type[defaultAgent](func(o *defaultAgent) error {
		o.tools = append(o.tools, tool)
		o.tools = append(o.tools, extraTools...)
		return nil
	})
}

// New creates an agent declaration from the provided options.
func New(options ...opts.Option[defaultAgent]) api.Agent {
	agent := &defaultAgent{
		model: "gpt-4o-mini",
	}
	if err := opts.Apply(agent, options); err != nil {
		panic(err)
	}
	return agent
}
