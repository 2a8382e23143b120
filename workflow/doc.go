/*
Package workflow bridges tool calls from an agent platform to externally
managed workflow triggers.

Two pieces collaborate:

  - Dispatcher holds a mapping from logical workflow name to a resolved
    callback URL. Register resolves a trigger once through a Resolver;
    Dispatch POSTs JSON payloads to the cached URL many times.
  - EmailTool wraps one dispatcher and one workflow name as a tool.Definition
    with the (to, subject, body) → string shape the platform's tool-calling
    contract requires.

Design decisions:

  - Failures become values: remote problems (non-2xx, timeouts, connection
    errors) are returned as Failure results, never as errors, because the
    consuming tool-calling loop expects a string, not a fault.
  - Simulation fallback: a name with no registered endpoint is a defined
    state. Dispatch answers it with a simulated Success and renders the
    payload to the observability hook, so demos and local development work
    without live infrastructure. StrictRegistration turns this into a
    Failure for deployments where a missing registration is a configuration
    error.
  - One attempt per call: no retries, no backoff, no queuing. Retry policy
    belongs to the caller.

Example usage:

	dispatcher := workflow.New(
		workflow.WithResolver(resolver),
		workflow.WithTimeout(30*time.Second),
	)
	dispatcher.Register(ctx, "sales-alert", workflow.Trigger{
		Workflow: "sales-alert",
		Name:     "manual",
	})

	result := dispatcher.Dispatch(ctx, "sales-alert", map[string]string{
		"to":      "a@b.com",
		"subject": "Q3",
		"body":    "Great quarter",
	})

	emailTool := workflow.EmailTool(dispatcher, "sales-alert")
*/
package workflow
