package llm

import "context"

// MockClient is a test double for the LLM Client interface.
// It can also be used for dry-run mode.
type MockClient struct {
	Response *Response
	Err      error
	Calls    []Request // records requests sent
}

// Generate records the call and returns the mock response.
func (m *MockClient) Generate(ctx context.Context, req Request) (*Response, error) {
	m.Calls = append(m.Calls, req)
	return m.Response, m.Err
}
