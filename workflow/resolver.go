package workflow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

// ErrTriggerNotFound is reported by resolvers when the management plane has
// no callback URL for the requested trigger.
var ErrTriggerNotFound = errors.New("workflow trigger not found")

// Trigger identifies a trigger instance at the management plane. Resolving a
// trigger yields the callback URL that starts the workflow.
type Trigger struct {
	Workflow string
	Name     string
}

func (t Trigger) String() string {
	return t.Workflow + "/" + t.Name
}

// Resolver turns a trigger identifier into an invokable callback URL. The
// resolution happens once per registration; the dispatcher caches the result.
type Resolver interface {
	Resolve(ctx context.Context, trigger Trigger) (string, error)
}

// StaticResolver resolves triggers from a fixed workflow name to URL mapping.
// Useful for tests and local demos without live infrastructure.
type StaticResolver map[string]string

func (s StaticResolver) Resolve(_ context.Context, trigger Trigger) (string, error) {
	endpoint, ok := s[trigger.Workflow]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTriggerNotFound, trigger)
	}
	return endpoint, nil
}

// ResolverConfig carries the identifiers and credentials for the workflow
// management API. All values are externally supplied; nothing is read from
// the process environment here.
type ResolverConfig struct {
	// Endpoint is the base URL of the management API.
	Endpoint string
	// SubscriptionID scopes the lookup to a subscription.
	SubscriptionID string
	// ResourceGroup scopes the lookup to a resource group.
	ResourceGroup string
	// APIVersion selects the management API version.
	APIVersion string
	// Token is a pre-acquired bearer credential.
	Token string
}

// ManagementResolver resolves triggers by asking the workflow management API
// for the trigger's callback URL.
type ManagementResolver struct {
	config ResolverConfig
	client *http.Client
}

// NewManagementResolver creates a resolver for the given management plane
// configuration. A nil client falls back to a client with a 30s timeout.
func NewManagementResolver(config ResolverConfig, client *http.Client) *ManagementResolver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ManagementResolver{config: config, client: client}
}

// Resolve performs the listCallbackUrl lookup for the trigger. A 404 from the
// management plane maps to ErrTriggerNotFound; other non-2xx statuses and
// transport errors are returned verbatim.
func (m *ManagementResolver) Resolve(ctx context.Context, trigger Trigger) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Logic/workflows/%s/triggers/%s/listCallbackUrl?api-version=%s",
		m.config.Endpoint,
		url.PathEscape(m.config.SubscriptionID),
		url.PathEscape(m.config.ResourceGroup),
		url.PathEscape(trigger.Workflow),
		url.PathEscape(trigger.Name),
		url.QueryEscape(m.config.APIVersion),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build callback URL request: %w", err)
	}
	if m.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+m.config.Token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("callback URL lookup for %s failed: %w", trigger, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrTriggerNotFound, trigger)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("callback URL lookup for %s returned status %d", trigger, resp.StatusCode)
	}

	body, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read callback URL response for %s: %w", trigger, err)
	}

	value := gjson.GetBytes(body, "value")
	if !value.Exists() || value.String() == "" {
		return "", fmt.Errorf("callback URL response for %s has no value", trigger)
	}

	return value.String(), nil
}
