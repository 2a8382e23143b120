package workflow

import (
	"github.com/goccy/go-json"
)

// Status tags the outcome of a dispatch attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the outcome of a single workflow invocation. Remote failures are
// carried here as values; Dispatch never returns an error for them.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Success creates a Result tagged as successful with the provided message.
func Success(message string) Result {
	return Result{Status: StatusSuccess, Message: message}
}

// Failure creates a Result tagged as failed with the provided message.
func Failure(message string) Result {
	return Result{Status: StatusFailure, Message: message}
}

// IsSuccess reports whether the invocation succeeded (including simulated
// invocations).
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// IsFailure reports whether the invocation failed.
func (r Result) IsFailure() bool {
	return r.Status == StatusFailure
}

// String returns the JSON encoding of the result. This is the form handed
// back to the agent platform, which expects a plain string from tool calls.
// If marshaling fails, it returns an empty string.
func (r Result) String() string {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(jsonData)
}
