package platform

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/hookbill/hookbill/pkg/reflectx"
	"github.com/hookbill/hookbill/pkg/slogx"
	"github.com/hookbill/hookbill/tool"
	"github.com/hookbill/hookbill/types"
)

// DefaultPollInterval is how often a run in a non-terminal state is polled.
const DefaultPollInterval = time.Second

var pollInterval = DefaultPollInterval

// RunThread drives a platform run to completion. The platform owns the
// reasoning loop; this fulfills only the client side of the tool contract:
// whenever the run requires action, the matching local tool is invoked and
// its string output submitted back. Returns the final assistant message.
func RunThread(ctx context.Context, client Client, thread ThreadID, agentID AgentID, tools []tool.Definition) (string, error) {
	byName := make(map[string]tool.Definition, len(tools))
	for _, td := range tools {
		byName[td.Name] = td
	}

	run, err := client.StartRun(ctx, thread, agentID)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}

	for {
		switch run.Status {
		case RunCompleted:
			return client.FinalMessage(ctx, thread)

		case RunRequiresAction:
			outputs := make([]ToolOutput, 0, len(run.ToolCalls))
			for _, call := range run.ToolCalls {
				outputs = append(outputs, ToolOutput{
					CallID: call.ID,
					Output: invokeTool(ctx, byName, call),
				})
			}
			run, err = client.SubmitToolOutputs(ctx, thread, run.ID, outputs)
			if err != nil {
				return "", fmt.Errorf("failed to submit tool outputs: %w", err)
			}

		case RunFailed, RunCancelled, RunExpired:
			if run.LastError != "" {
				return "", fmt.Errorf("run %s %s: %s", run.ID, run.Status, run.LastError)
			}
			return "", fmt.Errorf("run %s %s", run.ID, run.Status)

		default:
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(pollInterval):
			}
			run, err = client.PollRun(ctx, thread, run.ID)
			if err != nil {
				return "", fmt.Errorf("failed to poll run: %w", err)
			}
		}
	}
}

// invokeTool executes one requested tool call. Tool failures are reported to
// the platform as strings; they must not abort the surrounding run.
func invokeTool(ctx context.Context, tools map[string]tool.Definition, call ToolCall) string {
	td, ok := tools[call.Name]
	if !ok {
		slog.WarnContext(ctx, "platform requested unknown tool", slog.String("tool", call.Name))
		return fmt.Sprintf("unknown tool %q", call.Name)
	}

	args := buildArgList(call.Arguments, td.Parameters)
	out, err := callFunction(td.Function, args)
	if err != nil {
		slog.WarnContext(ctx, "tool invocation failed",
			slog.String("tool", call.Name), slogx.Error(err))
		return fmt.Sprintf("tool %q failed: %v", call.Name, err)
	}
	return out
}

// buildArgList extracts the tool's arguments from the platform's JSON
// argument object, in the declaration order recorded by tool.Parameters. A
// name missing from the object holds its position as an invalid value so
// later arguments do not shift into earlier parameters.
func buildArgList(arguments string, parameters map[string]string) []reflect.Value {
	parsed := gjson.Parse(arguments)
	names := make([]string, len(parameters))
	for k, v := range parameters {
		i, err := strconv.Atoi(strings.TrimPrefix(k, "param"))
		if err != nil || i < 0 || i >= len(names) {
			continue
		}
		names[i] = v
	}

	args := make([]reflect.Value, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		val := parsed.Get(name)
		if !val.Exists() {
			args = append(args, reflect.Value{})
			continue
		}
		args = append(args, reflect.ValueOf(val.Value()))
	}
	return args
}

func callFunction(fn any, args []reflect.Value) (string, error) {
	val := reflect.ValueOf(fn)
	vtpe := val.Type()

	numIn := vtpe.NumIn()
	callArgs := make([]reflect.Value, numIn)

	ai := 0
	for fi := 0; fi < numIn; fi++ {
		paramType := vtpe.In(fi)
		if reflectx.IsRefinedType[types.ContextVars](paramType) {
			callArgs[fi] = reflect.ValueOf(make(types.ContextVars))
			continue
		}
		if ai < len(args) && args[ai].IsValid() && args[ai].Type().ConvertibleTo(paramType) {
			callArgs[fi] = args[ai].Convert(paramType)
		} else {
			callArgs[fi] = reflect.Zero(paramType)
		}
		ai++
	}

	results := val.Call(callArgs)
	if len(results) == 0 {
		return "", nil
	}

	// A trailing error result aborts the call.
	if err, ok := results[len(results)-1].Interface().(error); ok && err != nil {
		return "", err
	}

	res := results[0]
	if !res.IsValid() {
		return "", nil
	}

	switch rv := res.Interface().(type) {
	case error:
		if rv != nil {
			return "", rv
		}
		return "", nil
	case string:
		return rv, nil
	case time.Time:
		return rv.Format(time.RFC3339), nil
	case fmt.Stringer:
		return rv.String(), nil
	default:
		b, err := json.Marshal(rv)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
