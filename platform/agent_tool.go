package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hookbill/hookbill/api"
	"github.com/hookbill/hookbill/pkg/slogx"
	"github.com/hookbill/hookbill/tool"
)

// Delegate runs a single task against the agent on a fresh thread: the agent
// is provisioned, the task submitted, the run driven to completion and the
// agent deprovisioned again. This is the building block for composing
// specialist agents under a coordinator.
func Delegate(ctx context.Context, client Client, agent api.Agent, task string) (string, error) {
	agentID, err := client.CreateAgent(ctx, agent)
	if err != nil {
		return "", fmt.Errorf("failed to create agent %s: %w", agent.Name(), err)
	}
	defer func() {
		if err := client.DeleteAgent(ctx, agentID); err != nil {
			slog.WarnContext(ctx, "failed to delete agent",
				slog.String("agent", agent.Name()), slogx.Error(err))
		}
	}()

	thread, err := client.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create thread for %s: %w", agent.Name(), err)
	}

	if err := client.AddUserMessage(ctx, thread, task); err != nil {
		return "", fmt.Errorf("failed to submit task to %s: %w", agent.Name(), err)
	}

	return RunThread(ctx, client, thread, agentID, agent.Tools())
}

// AgentTool exposes a whole agent as a tool another agent can call. The
// coordinator's platform run decides when to delegate; the invocation runs
// the specialist on its own thread via Delegate and returns its final
// message. Delegation failures come back as descriptive strings, never as
// faults.
func AgentTool(client Client, agent api.Agent, options ...tool.Option) tool.Definition {
	if client == nil || agent == nil {
		panic("platform: AgentTool requires a client and an agent")
	}

	ask := func(task string) string {
		out, err := Delegate(context.Background(), client, agent, task)
		if err != nil {
			return fmt.Sprintf("delegation to %s failed: %v", agent.Name(), err)
		}
		return out
	}

	defaults := []tool.Option{
		tool.Name("ask_" + sanitizeName(agent.Name())),
		tool.Description(fmt.Sprintf("Delegates a task to the %s agent and returns its answer.", agent.Name())),
		tool.Parameters("task"),
	}

	return tool.Must(ask, append(defaults, options...)...)
}

func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
}
