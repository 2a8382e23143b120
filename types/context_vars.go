// Package types provides core type definitions shared across the hookbill
// packages.
package types

import "github.com/goccy/go-json"

// ContextVars is a key-value store of context variables used for template
// rendering. Agents substitute these into their instruction templates, and
// tools may accept a ContextVars parameter which is injected at invocation
// time rather than supplied by the platform.
//
// ContextVars is a plain map and not safe for concurrent modification; the
// caller synchronizes if variables change during execution.
type ContextVars map[string]any

// String returns a JSON string representation of the ContextVars.
// If marshaling fails, it returns an empty string.
func (cv ContextVars) String() string {
	jsonData, err := json.Marshal(cv)
	if err != nil {
		return ""
	}
	return string(jsonData)
}
