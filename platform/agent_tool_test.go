package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookbill/hookbill/agent"
)

func TestAgentTool(t *testing.T) {
	specialist := agent.New(
		agent.Name("Billing Agent"),
		agent.Instructions("You answer billing questions."),
	)

	t.Run("requires client and agent", func(t *testing.T) {
		assert.Panics(t, func() { AgentTool(nil, specialist) })
		client := &fakeClient{}
		assert.Panics(t, func() { AgentTool(client, nil) })
	})

	t.Run("default naming", func(t *testing.T) {
		client := &fakeClient{
			runs:         []Run{{ID: "run_1", Status: RunCompleted}},
			finalMessage: "your invoice is paid",
		}

		def := AgentTool(client, specialist)
		assert.Equal(t, "ask_billing_agent", def.Name)
		assert.Contains(t, def.Description, "Billing Agent")
	})

	t.Run("delegation provisions, runs and cleans up", func(t *testing.T) {
		client := &fakeClient{
			runs:         []Run{{ID: "run_1", Status: RunCompleted}},
			finalMessage: "your invoice is paid",
		}

		def := AgentTool(client, specialist)
		ask, ok := def.Function.(func(string) string)
		require.True(t, ok)

		out := ask("is invoice 42 paid?")
		assert.Equal(t, "your invoice is paid", out)

		assert.Equal(t, []string{"Billing Agent"}, client.createdAgents)
		assert.Len(t, client.deletedAgents, 1)
		assert.Equal(t, []string{"is invoice 42 paid?"}, client.userMessages)
	})

	t.Run("delegation failure comes back as a string", func(t *testing.T) {
		client := &fakeClient{
			runs: []Run{{ID: "run_1", Status: RunFailed, LastError: "no capacity"}},
		}

		def := AgentTool(client, specialist)
		ask := def.Function.(func(string) string)

		out := ask("anything")
		assert.Contains(t, out, "delegation to Billing Agent failed")
		assert.Contains(t, out, "no capacity")
		// the provisioned agent is still cleaned up
		assert.Len(t, client.deletedAgents, 1)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Billing Agent", "billing_agent"},
		{"triage", "triage"},
		{"Refunds & Returns", "refunds___returns"},
		{"Agent-7", "agent_7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.in))
	}
}
