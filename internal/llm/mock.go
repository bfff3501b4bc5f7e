package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSON builds a canned answer holding v as JSON. It panics if v cannot
// be marshalled, which only a broken test fixture can cause.
func JSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return MockResponse{Content: b, Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}
}

// MockProvider replays canned answers in order and records each request.
// Once the answers run out it reports the provider as unavailable, which
// is how tests exercise the tutor's fallbacks. Safe for concurrent use.
type MockProvider struct {
	mu      sync.Mutex
	pending []MockResponse
	Calls   []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{pending: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.pending) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.pending[0]
	m.pending = m.pending[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: Mock, StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return Mock }

func (m *MockProvider) Name() string { return Mock }

// AddResponse queues another canned answer.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, r)
}

// CallCount is the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
