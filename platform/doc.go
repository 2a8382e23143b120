/*
Package platform defines the capability surface this library consumes from an
external agent platform and the client-side duties that come with it.

The platform is a black box: it owns agent lifecycle, threading, model
invocation and the decision to call tools. The Client interface covers just
what the integration needs (provision an agent, feed a thread, start a run),
and RunThread fulfills the one obligation that cannot be delegated: executing
requested local tool calls and submitting their outputs so a run can finish.

Multi-agent composition is purely client-side: AgentTool wraps a specialist
agent as a tool, so a coordinator agent can delegate sub-tasks without any
protocol beyond its regular tool calls.

Concrete clients live in subpackages; see platform/openai for one backed by
an assistants-style API.
*/
package platform
