package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/tidwall/gjson"

	"github.com/hookbill/hookbill/api"
	"github.com/hookbill/hookbill/pkg/jsonx"
	"github.com/hookbill/hookbill/platform"
	"github.com/hookbill/hookbill/tool"
	"github.com/hookbill/hookbill/types"
)

var _ platform.Client = (*Client)(nil)

// Client implements platform.Client on top of an assistants-style API via
// the openai SDK. Credentials and endpoint come in through request options;
// nothing is read from the environment here.
type Client struct {
	oai *openai.Client
}

// New creates a platform client. Pass option.WithAPIKey, option.WithBaseURL
// and friends to point it at the hosting platform.
func New(options ...option.RequestOption) *Client {
	return &Client{
		oai: openai.NewClient(options...),
	}
}

// CreateAgent provisions the agent as an assistant, declaring its tools with
// their reflected parameter schemas.
func (c *Client) CreateAgent(ctx context.Context, agent api.Agent) (platform.AgentID, error) {
	instructions, err := agent.RenderInstructions(types.ContextVars{})
	if err != nil {
		return "", fmt.Errorf("failed to render instructions for %s: %w", agent.Name(), err)
	}

	tools, err := assistantTools(agent.Tools())
	if err != nil {
		return "", err
	}

	params := openai.BetaAssistantNewParams{
		Model:        openai.F(agent.Model()),
		Name:         openai.String(agent.Name()),
		Instructions: openai.String(instructions),
	}
	if len(tools) > 0 {
		params.Tools = openai.F(tools)
	}

	assistant, err := c.oai.Beta.Assistants.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create agent %s: %w", agent.Name(), err)
	}
	return platform.AgentID(assistant.ID), nil
}

func assistantTools(defs []tool.Definition) ([]openai.AssistantToolUnionParam, error) {
	tools := make([]openai.AssistantToolUnionParam, 0, len(defs))
	for _, td := range defs {
		if td.Function == nil {
			return nil, fmt.Errorf("tool %s has nil function", td.Name)
		}

		name, schema := td.ToNameAndSchema()
		jv, err := jsonx.ToDynamicJSON(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to convert tool %s schema: %w", name, err)
		}

		def := openai.FunctionDefinitionParam{
			Name:       openai.String(name),
			Parameters: openai.F(shared.FunctionParameters(jv)),
		}
		if strings.TrimSpace(td.Description) != "" {
			def.Description = openai.String(td.Description)
		}

		tools = append(tools, openai.FunctionToolParam{
			Type:     openai.F(openai.FunctionToolTypeFunction),
			Function: openai.F(def),
		})
	}
	return tools, nil
}

func (c *Client) DeleteAgent(ctx context.Context, id platform.AgentID) error {
	if _, err := c.oai.Beta.Assistants.Delete(ctx, string(id)); err != nil {
		return fmt.Errorf("failed to delete agent %s: %w", id, err)
	}
	return nil
}

func (c *Client) CreateThread(ctx context.Context) (platform.ThreadID, error) {
	thread, err := c.oai.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}
	return platform.ThreadID(thread.ID), nil
}

func (c *Client) AddUserMessage(ctx context.Context, thread platform.ThreadID, content string) error {
	_, err := c.oai.Beta.Threads.Messages.New(ctx, string(thread), openai.BetaThreadMessageNewParams{
		Role: openai.F(openai.BetaThreadMessageNewParamsRoleUser),
		Content: openai.F([]openai.MessageContentPartParamUnion{
			openai.TextContentBlockParam{
				Type: openai.F(openai.TextContentBlockParamTypeText),
				Text: openai.String(content),
			},
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to add message to thread %s: %w", thread, err)
	}
	return nil
}

func (c *Client) StartRun(ctx context.Context, thread platform.ThreadID, agent platform.AgentID) (platform.Run, error) {
	run, err := c.oai.Beta.Threads.Runs.New(ctx, string(thread), openai.BetaThreadRunNewParams{
		AssistantID: openai.F(string(agent)),
	})
	if err != nil {
		return platform.Run{}, fmt.Errorf("failed to start run on thread %s: %w", thread, err)
	}
	return snapshot(thread, run), nil
}

func (c *Client) PollRun(ctx context.Context, thread platform.ThreadID, runID string) (platform.Run, error) {
	run, err := c.oai.Beta.Threads.Runs.Get(ctx, string(thread), runID)
	if err != nil {
		return platform.Run{}, fmt.Errorf("failed to fetch run %s: %w", runID, err)
	}
	return snapshot(thread, run), nil
}

func (c *Client) SubmitToolOutputs(ctx context.Context, thread platform.ThreadID, runID string, outputs []platform.ToolOutput) (platform.Run, error) {
	outs := make([]openai.BetaThreadRunSubmitToolOutputsParamsToolOutput, len(outputs))
	for i, o := range outputs {
		outs[i] = openai.BetaThreadRunSubmitToolOutputsParamsToolOutput{
			ToolCallID: openai.String(o.CallID),
			Output:     openai.String(o.Output),
		}
	}

	run, err := c.oai.Beta.Threads.Runs.SubmitToolOutputs(ctx, string(thread), runID, openai.BetaThreadRunSubmitToolOutputsParams{
		ToolOutputs: openai.F(outs),
	})
	if err != nil {
		return platform.Run{}, fmt.Errorf("failed to submit tool outputs for run %s: %w", runID, err)
	}
	return snapshot(thread, run), nil
}

// FinalMessage returns the text of the most recent assistant message on the
// thread.
func (c *Client) FinalMessage(ctx context.Context, thread platform.ThreadID) (string, error) {
	page, err := c.oai.Beta.Threads.Messages.List(ctx, string(thread), openai.BetaThreadMessageListParams{
		Order: openai.F(openai.BetaThreadMessageListParamsOrderDesc),
		Limit: openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list messages on thread %s: %w", thread, err)
	}
	if len(page.Data) == 0 {
		return "", fmt.Errorf("thread %s has no messages", thread)
	}

	raw := page.Data[0].JSON.RawJSON()
	text := gjson.Get(raw, `content.#(type=="text").text.value`)
	if !text.Exists() {
		return "", fmt.Errorf("last message on thread %s has no text content", thread)
	}
	return text.String(), nil
}

func snapshot(thread platform.ThreadID, run *openai.Run) platform.Run {
	snap := platform.Run{
		ID:     run.ID,
		Thread: thread,
		Status: platform.RunStatus(run.Status),
	}

	for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
		snap.ToolCalls = append(snap.ToolCalls, platform.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	if run.LastError.Message != "" {
		snap.LastError = fmt.Sprintf("%s: %s", run.LastError.Code, run.LastError.Message)
	}

	return snap
}
