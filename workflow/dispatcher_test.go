package workflow

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchSimulation(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	// The dispatcher knows about the server but nothing was registered.
	d := New(WithResolver(StaticResolver{"other": server.URL}))

	result := d.Dispatch(context.Background(), "send-email", map[string]string{
		"to":      "a@b.com",
		"subject": "hello",
		"body":    "world",
	})

	assert.True(t, result.IsSuccess())
	assert.Contains(t, result.Message, "simulated")
	assert.Contains(t, result.Message, "send-email")
	assert.Contains(t, result.Message, "to=a@b.com")
	assert.Equal(t, int64(0), calls.Load(), "simulation must not touch the network")
}

func TestDispatchStrictRegistration(t *testing.T) {
	d := New(StrictRegistration(true))

	result := d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})
	assert.True(t, result.IsFailure())
	assert.Contains(t, result.Message, `no endpoint registered for workflow "send-email"`)
}

func TestDispatchSuccess(t *testing.T) {
	var calls atomic.Int64
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	d := New(WithResolver(StaticResolver{"sales-alert": server.URL}))
	d.Register(context.Background(), "sales-alert", Trigger{Workflow: "sales-alert", Name: "manual"})
	require.True(t, d.Registered("sales-alert"))

	result := d.Dispatch(context.Background(), "sales-alert", map[string]string{
		"to":      "a@b.com",
		"subject": "Q3",
		"body":    "Great quarter",
	})

	assert.True(t, result.IsSuccess())
	assert.Contains(t, result.Message, "202")
	assert.Equal(t, int64(1), calls.Load(), "exactly one POST per dispatch")
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"to":"a@b.com","subject":"Q3","body":"Great quarter"}`, string(gotBody))
}

func TestDispatchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("trigger exploded"))
	}))
	defer server.Close()

	d := New(WithResolver(StaticResolver{"send-email": server.URL}))
	d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})

	result := d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})

	assert.True(t, result.IsFailure())
	assert.Contains(t, result.Message, "500")
	assert.Contains(t, result.Message, "trigger exploded")
}

func TestDispatchTimeout(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
	}))
	defer server.Close()
	defer close(release)

	d := New(
		WithResolver(StaticResolver{"slow": server.URL}),
		WithTimeout(50*time.Millisecond),
	)
	d.Register(context.Background(), "slow", Trigger{Workflow: "slow", Name: "manual"})

	start := time.Now()
	result := d.Dispatch(context.Background(), "slow", map[string]string{"to": "a@b.com"})
	elapsed := time.Since(start)

	assert.True(t, result.IsFailure())
	assert.Less(t, elapsed, 5*time.Second, "dispatch must not hang past the timeout")
	assert.Equal(t, int64(1), calls.Load(), "no retries on timeout")
}

func TestRegisterResolutionFailure(t *testing.T) {
	d := New(WithResolver(StaticResolver{}))

	d.Register(context.Background(), "missing", Trigger{Workflow: "missing", Name: "manual"})
	assert.False(t, d.Registered("missing"))

	// subsequent dispatch still simulates
	result := d.Dispatch(context.Background(), "missing", map[string]string{"to": "a@b.com"})
	assert.True(t, result.IsSuccess())
	assert.Contains(t, result.Message, "simulated")
}

func TestRegisterWithoutResolver(t *testing.T) {
	d := New()
	d.Register(context.Background(), "anything", Trigger{Workflow: "anything", Name: "manual"})
	assert.False(t, d.Registered("anything"))
}

func TestRegisterLastWriteWins(t *testing.T) {
	var firstCalls, secondCalls atomic.Int64
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstCalls.Add(1)
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondCalls.Add(1)
	}))
	defer second.Close()

	resolver := StaticResolver{"send-email": first.URL}
	d := New(WithResolver(resolver))
	d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})

	resolver["send-email"] = second.URL
	d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})

	result := d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})
	assert.True(t, result.IsSuccess())
	assert.Equal(t, int64(0), firstCalls.Load())
	assert.Equal(t, int64(1), secondCalls.Load())
}

func TestDeregister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	d := New(WithResolver(StaticResolver{"send-email": server.URL}))
	d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})
	require.True(t, d.Registered("send-email"))

	d.Deregister("send-email")
	assert.False(t, d.Registered("send-email"))

	result := d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})
	assert.True(t, result.IsSuccess())
	assert.Contains(t, result.Message, "simulated")
}

type recordingHook struct {
	dispatched []Event
	simulated  []Event
	failed     []Event
	errs       []error
	statuses   []int
}

func (h *recordingHook) OnDispatched(_ context.Context, event Event, status int) {
	h.dispatched = append(h.dispatched, event)
	h.statuses = append(h.statuses, status)
}

func (h *recordingHook) OnSimulated(_ context.Context, event Event) {
	h.simulated = append(h.simulated, event)
}

func (h *recordingHook) OnFailed(_ context.Context, event Event, err error) {
	h.failed = append(h.failed, event)
	h.errs = append(h.errs, err)
}

func TestDispatchHook(t *testing.T) {
	t.Run("simulated", func(t *testing.T) {
		hook := &recordingHook{}
		d := New(WithHook(hook))

		d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})

		require.Len(t, hook.simulated, 1)
		assert.Equal(t, "send-email", hook.simulated[0].Workflow)
		assert.Equal(t, map[string]string{"to": "a@b.com"}, hook.simulated[0].Payload)
		assert.Empty(t, hook.dispatched)
		assert.Empty(t, hook.failed)
	})

	t.Run("dispatched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		hook := &recordingHook{}
		d := New(WithHook(hook), WithResolver(StaticResolver{"send-email": server.URL}))
		d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})

		d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})

		require.Len(t, hook.dispatched, 1)
		assert.Equal(t, []int{http.StatusAccepted}, hook.statuses)
		assert.Equal(t, server.URL, hook.dispatched[0].Endpoint)
	})

	t.Run("failed", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		hook := &recordingHook{}
		d := New(WithHook(hook), WithResolver(StaticResolver{"send-email": server.URL}))
		d.Register(context.Background(), "send-email", Trigger{Workflow: "send-email", Name: "manual"})

		d.Dispatch(context.Background(), "send-email", map[string]string{"to": "a@b.com"})

		require.Len(t, hook.failed, 1)
		require.Len(t, hook.errs, 1)
		assert.Contains(t, hook.errs[0].Error(), "502")
	})
}

func TestRenderPayload(t *testing.T) {
	payload := map[string]string{
		"subject": "Q3",
		"to":      "a@b.com",
		"body":    "Great quarter",
	}
	// keys come out sorted for a stable rendering
	assert.Equal(t, "body=Great quarter, subject=Q3, to=a@b.com", renderPayload(payload))
	assert.Equal(t, "", renderPayload(nil))
}
