package workflow

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/hookbill/hookbill/pkg/slogx"
	"github.com/hookbill/hookbill/pkg/uuidx"
)

// Event describes one dispatch attempt as observed by a Hook.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Workflow  string            `json:"workflow"`
	Endpoint  string            `json:"endpoint,omitempty"`
	Payload   map[string]string `json:"payload"`
	Timestamp strfmt.DateTime   `json:"timestamp"`
}

// Hook receives dispatch lifecycle notifications. Implementations must be
// safe for concurrent use; the dispatcher may be shared across goroutines.
type Hook interface {
	// OnDispatched fires after the endpoint accepted the payload.
	OnDispatched(ctx context.Context, event Event, status int)
	// OnSimulated fires when no endpoint is registered and the dispatch is
	// answered locally without a network call.
	OnSimulated(ctx context.Context, event Event)
	// OnFailed fires when the endpoint rejected the payload or the transport
	// failed.
	OnFailed(ctx context.Context, event Event, err error)
}

func newEvent(workflow, endpoint string, payload map[string]string) Event {
	return Event{
		ID:        uuidx.New(),
		Workflow:  workflow,
		Endpoint:  endpoint,
		Payload:   payload,
		Timestamp: strfmt.DateTime(time.Now()),
	}
}

// renderPayload produces a stable human-readable rendering of the payload,
// used when a simulated dispatch is reported to the observability sink.
func renderPayload(payload map[string]string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(payload[k])
	}
	return sb.String()
}

// LogHook returns a Hook that records dispatch events with slog. This is the
// default observability sink for a dispatcher.
func LogHook() Hook {
	return logHook{}
}

type logHook struct{}

func (logHook) OnDispatched(ctx context.Context, event Event, status int) {
	slog.InfoContext(ctx, "workflow dispatched",
		slog.String("workflow", event.Workflow),
		slog.String("endpoint", event.Endpoint),
		slog.Int("status", status),
		slogx.Stringer("event_id", event.ID),
	)
}

func (logHook) OnSimulated(ctx context.Context, event Event) {
	slog.InfoContext(ctx, "workflow simulated",
		slog.String("workflow", event.Workflow),
		slog.String("payload", renderPayload(event.Payload)),
		slogx.Stringer("event_id", event.ID),
	)
}

func (logHook) OnFailed(ctx context.Context, event Event, err error) {
	slog.WarnContext(ctx, "workflow dispatch failed",
		slog.String("workflow", event.Workflow),
		slog.String("endpoint", event.Endpoint),
		slogx.Error(err),
		slogx.Stringer("event_id", event.ID),
	)
}
