// Package hookbill connects conversational agents on an external platform to
// externally managed workflow triggers.
//
// The library has three layers:
//
//   - workflow: a registry/dispatcher that resolves workflow triggers to
//     callback URLs once and POSTs invocation payloads to them, with a
//     simulation fallback for unregistered names, plus the tool adapter that
//     exposes a dispatch as an agent tool.
//   - agent and tool: declarations for agents and the tools they may call,
//     with parameter schemas reflected from the tool functions.
//   - platform: the black-box surface of the hosting agent platform, the
//     session machinery that fulfills requested tool calls, and delegation
//     tools that compose specialist agents under a coordinator.
//
// The Bridge at the root ties them together: it holds agent declarations and
// runs conversation steps against the platform.
//
//	dispatcher := workflow.New(workflow.WithResolver(resolver))
//	dispatcher.Register(ctx, "send-email", workflow.Trigger{Workflow: "send-email", Name: "manual"})
//
//	assistant := agent.New(
//		agent.Name("email-assistant"),
//		agent.Model("gpt-4o-mini"),
//		agent.Instructions("You are a helpful assistant that sends emails on request."),
//		agent.Tools(workflow.EmailTool(dispatcher, "send-email")),
//	)
//
//	b := hookbill.New(
//		hookbill.Client(client),
//		hookbill.Agents(assistant),
//		hookbill.Steps(hookbill.Step(assistant.Name(), "Email a@b.com the Q3 summary.")),
//	)
//	answer, err := b.Run(ctx)
package hookbill
