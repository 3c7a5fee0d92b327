package engine

import "fmt"

// ProviderError means the model service call itself failed: transport,
// credentials or quota. It is never retried here.
type ProviderError struct {
	Op  string // "generate" or "extract"
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider call failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedResponseError means the service answered but the payload did not
// match the required shape. Raw holds the payload for diagnosis and must not
// be shown to end users.
type MalformedResponseError struct {
	Op     string
	Raw    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}
