package workflow

import (
	"context"
	"fmt"

	"github.com/hookbill/hookbill/tool"
)

// EmailTool wraps a dispatcher and a workflow name as a tool the agent
// platform can invoke. The returned definition carries the three-string
// contract (to, subject, body) and serializes the dispatch Result to JSON,
// matching the string return the tool-calling contract expects.
//
// The tool holds a reference to the dispatcher; it performs no side effects
// on the registry itself. Options may override the default name, description
// and parameter names.
func EmailTool(d *Dispatcher, workflow string, options ...tool.Option) tool.Definition {
	if d == nil {
		panic("workflow: EmailTool requires a dispatcher")
	}

	send := func(to, subject, body string) string {
		result := d.Dispatch(context.Background(), workflow, map[string]string{
			"to":      to,
			"subject": subject,
			"body":    body,
		})
		return result.String()
	}

	defaults := []tool.Option{
		tool.Name("send_email"),
		tool.Description(fmt.Sprintf("Sends an email by invoking the %q workflow. Provide the recipient address, a subject and the message body.", workflow)),
		tool.Parameters("to", "subject", "body"),
	}

	return tool.Must(send, append(defaults, options...)...)
}
