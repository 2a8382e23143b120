package workflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fogfish/opts"
	"github.com/goccy/go-json"

	"github.com/hookbill/hookbill/internal/registry"
	"github.com/hookbill/hookbill/pkg/slogx"
)

// DefaultTimeout bounds a single dispatch attempt, covering connection setup
// through reading the response.
const DefaultTimeout = 30 * time.Second

// maxResponseBody caps how much of a trigger response is read back into the
// failure message.
const maxResponseBody = 64 << 10

// Dispatcher maps logical workflow names to resolved callback URLs and
// forwards invocation payloads to them. Names without a registered endpoint
// are answered with a simulated success unless strict registration is enabled.
//
// The endpoint registry is read-mostly: registration is expected to
// happen-before dispatch, and concurrent dispatches share no mutable state
// beyond it.
type Dispatcher struct {
	resolver  Resolver
	client    *http.Client
	timeout   time.Duration
	hook      Hook
	strict    bool
	endpoints registry.Registry[string]
}

var (
	// WithResolver sets the resolver used by Register to turn triggers into
	// callback URLs.
	WithResolver = opts.ForName[Dispatcher, Resolver]("resolver")
	// WithHTTPClient overrides the HTTP client used for dispatches.
	WithHTTPClient = opts.ForName[Dispatcher, *http.Client]("client")
	// WithTimeout bounds each dispatch attempt. Defaults to DefaultTimeout.
	WithTimeout = opts.ForName[Dispatcher, time.Duration]("timeout")
	// WithHook installs an observability sink for dispatch events.
	WithHook = opts.ForName[Dispatcher, Hook]("hook")
	// StrictRegistration disables the simulation fallback: dispatching an
	// unregistered workflow name returns a Failure instead of a simulated
	// Success.
	StrictRegistration = opts.ForName[Dispatcher, bool]("strict")
)

// New creates a dispatcher. Without options it simulates every dispatch,
// which is the designed behavior for local development without live triggers.
func New(options ...opts.Option[Dispatcher]) *Dispatcher {
	d := &Dispatcher{
		timeout:   DefaultTimeout,
		hook:      LogHook(),
		endpoints: registry.New[string](),
	}
	if err := opts.Apply(d, options); err != nil {
		panic(err)
	}
	if d.client == nil {
		d.client = &http.Client{Timeout: d.timeout}
	}
	return d
}

// Register resolves the trigger to a callback URL and caches it under the
// workflow name. Resolution failures are logged and swallowed: a missing
// registration is a defined state, answered by the simulation fallback, and
// must not take the rest of the system down with it. Re-registering a name
// overwrites the previous endpoint.
func (d *Dispatcher) Register(ctx context.Context, name string, trigger Trigger) {
	if d.resolver == nil {
		slog.WarnContext(ctx, "workflow registration skipped, no resolver configured",
			slog.String("workflow", name))
		return
	}

	endpoint, err := d.resolver.Resolve(ctx, trigger)
	if err != nil {
		slog.WarnContext(ctx, "workflow registration failed",
			slog.String("workflow", name),
			slogx.Stringer("trigger", trigger),
			slogx.Error(err))
		return
	}

	d.endpoints.Add(name, endpoint)
	slog.InfoContext(ctx, "workflow registered",
		slog.String("workflow", name),
		slogx.Stringer("trigger", trigger))
}

// Registered reports whether a callback URL is cached for the workflow name.
func (d *Dispatcher) Registered(name string) bool {
	_, ok := d.endpoints.Get(name)
	return ok
}

// Deregister removes the cached endpoint for the workflow name, if any.
// Subsequent dispatches for the name fall back to simulation.
func (d *Dispatcher) Deregister(name string) {
	d.endpoints.Del(name)
}

// Dispatch forwards the payload to the workflow's callback URL as a JSON
// POST, one attempt per call, bounded by the configured timeout. Remote
// failures (non-2xx status, transport errors) come back as Failure results,
// never as errors. An unregistered name yields a simulated Success unless
// strict registration is enabled.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, payload map[string]string) Result {
	endpoint, ok := d.endpoints.Get(name)
	if !ok {
		event := newEvent(name, "", payload)
		if d.strict {
			err := fmt.Errorf("no endpoint registered for workflow %q", name)
			d.hook.OnFailed(ctx, event, err)
			return Failure(err.Error())
		}
		d.hook.OnSimulated(ctx, event)
		return Success(fmt.Sprintf("simulated workflow %q with %s", name, renderPayload(payload)))
	}

	event := newEvent(name, endpoint, payload)

	body, err := json.Marshal(payload)
	if err != nil {
		// A map[string]string cannot fail to marshal; anything here is a
		// programming error.
		panic(fmt.Sprintf("workflow: failed to encode payload for %q: %v", name, err))
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		d.hook.OnFailed(ctx, event, err)
		return Failure(fmt.Sprintf("workflow %q has a malformed endpoint: %v", name, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.hook.OnFailed(ctx, event, err)
		return Failure(fmt.Sprintf("workflow %q invocation failed: %v", name, err))
	}
	defer resp.Body.Close()

	respBody, err := readBody(resp)
	if err != nil {
		d.hook.OnFailed(ctx, event, err)
		return Failure(fmt.Sprintf("workflow %q response could not be read: %v", name, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("workflow %q returned status %d: %s", name, resp.StatusCode, respBody)
		d.hook.OnFailed(ctx, event, err)
		return Failure(err.Error())
	}

	d.hook.OnDispatched(ctx, event, resp.StatusCode)
	return Success(fmt.Sprintf("workflow %q accepted with status %d", name, resp.StatusCode))
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
}
