package platform

import (
	"context"

	"github.com/hookbill/hookbill/api"
)

// AgentID identifies an agent provisioned on the platform.
type AgentID string

// ThreadID identifies a conversation thread owned by the platform.
type ThreadID string

// RunStatus is the platform-reported state of a run. The platform owns the
// run lifecycle; clients only observe it.
type RunStatus string

const (
	RunQueued         RunStatus = "queued"
	RunInProgress     RunStatus = "in_progress"
	RunRequiresAction RunStatus = "requires_action"
	RunCompleted      RunStatus = "completed"
	RunFailed         RunStatus = "failed"
	RunCancelled      RunStatus = "cancelled"
	RunExpired        RunStatus = "expired"
)

// Terminal reports whether the run has reached a state it cannot leave.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunCancelled, RunExpired:
		return true
	default:
		return false
	}
}

// ToolCall is the platform's request to invoke one local tool.
type ToolCall struct {
	// ID correlates the call with its submitted output.
	ID string
	// Name is the tool name as declared to the platform.
	Name string
	// Arguments is the raw JSON argument object produced by the model.
	Arguments string
}

// ToolOutput carries one tool invocation result back to the platform.
type ToolOutput struct {
	CallID string
	Output string
}

// Run is a snapshot of a platform run.
type Run struct {
	ID        string
	Thread    ThreadID
	Status    RunStatus
	ToolCalls []ToolCall
	LastError string
}

// Client is the capability surface this library consumes from an external
// agent platform. Everything behind it (model invocation, the reasoning
// loop, conversation state) is the platform's concern; the client only
// provisions agents, feeds threads and fulfills requested tool calls.
type Client interface {
	// CreateAgent provisions the agent declaration on the platform.
	CreateAgent(ctx context.Context, agent api.Agent) (AgentID, error)

	// DeleteAgent removes a provisioned agent.
	DeleteAgent(ctx context.Context, id AgentID) error

	// CreateThread starts an empty conversation thread.
	CreateThread(ctx context.Context) (ThreadID, error)

	// AddUserMessage appends a user message to the thread.
	AddUserMessage(ctx context.Context, thread ThreadID, content string) error

	// StartRun asks the platform to run the agent over the thread.
	StartRun(ctx context.Context, thread ThreadID, agent AgentID) (Run, error)

	// PollRun fetches the current snapshot of a run.
	PollRun(ctx context.Context, thread ThreadID, runID string) (Run, error)

	// SubmitToolOutputs hands the requested tool results back to the
	// platform so the run can continue.
	SubmitToolOutputs(ctx context.Context, thread ThreadID, runID string, outputs []ToolOutput) (Run, error)

	// FinalMessage returns the latest assistant message on the thread.
	FinalMessage(ctx context.Context, thread ThreadID) (string, error)
}
