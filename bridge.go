package hookbill

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/fogfish/opts"

	"github.com/hookbill/hookbill/api"
	"github.com/hookbill/hookbill/platform"
)

// ConversationStep pairs an agent with one task for it.
type ConversationStep struct {
	agentName string
	task      string
}

// Step creates a conversation step for the named agent.
func Step(agentName, task string) ConversationStep {
	return ConversationStep{agentName: agentName, task: task}
}

// Bridge wires local agent declarations and their tools to an external agent
// platform and runs conversation steps against it. The platform does the
// reasoning; the bridge provisions agents, feeds tasks and fulfills tool
// calls through the platform session machinery.
type Bridge struct {
	name   string
	client platform.Client
	agents *haxmap.Map[string, api.Agent]
	steps  []ConversationStep
}

// Agents adds one or more agents to the bridge, keyed by name.
func Agents(agent api.Agent, extraAgents ...api.Agent) opts.Option[Bridge] {
	return opts.Type[Bridge](func(o *Bridge) error {
		o.agents.Set(agent.Name(), agent)
		for elem := range slices.Values(extraAgents) {
			o.agents.Set(elem.Name(), elem)
		}
		return nil
	})
}

// Steps appends conversation steps, executed in order by Run.
func Steps(step ConversationStep, extraSteps ...ConversationStep) opts.Option[Bridge] {
	return opts.Type[Bridge](func(o *Bridge) error {
		o.steps = append(o.steps, step)
		o.steps = append(o.steps, extraSteps...)
		return nil
	})
}

var (
	// Name labels the bridge in logs. Defaults to "User".
	Name = opts.ForName[Bridge, string]("name")
	// Client sets the platform client. Required.
	Client = opts.ForName[Bridge, platform.Client]("client")
)

// New creates a bridge. A missing platform client is a programming error and
// panics.
func New(options ...opts.Option[Bridge]) *Bridge {
	b := &Bridge{
		name:   "User",
		agents: haxmap.New[string, api.Agent](),
	}
	if err := opts.Apply(b, options); err != nil {
		panic(err)
	}
	if b.client == nil {
		panic("hookbill: bridge requires a platform client")
	}
	return b
}

// Run executes the configured steps in order and returns the final
// assistant message of the last step. Each step provisions its agent on the
// platform, runs the task on a fresh thread and deprovisions the agent
// again.
func (b *Bridge) Run(ctx context.Context) (string, error) {
	var lastResult string

	for _, step := range b.steps {
		agent, found := b.agents.Get(step.agentName)
		if !found {
			return "", fmt.Errorf("agent %s not found", step.agentName)
		}

		slog.InfoContext(ctx, "running conversation step",
			slog.String("bridge", b.name),
			slog.String("agent", step.agentName))

		result, err := platform.Delegate(ctx, b.client, agent, step.task)
		if err != nil {
			return "", fmt.Errorf("step for agent %s failed: %w", step.agentName, err)
		}
		lastResult = result
	}

	return lastResult, nil
}
