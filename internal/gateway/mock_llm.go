package gateway

import (
	"context"
	"strings"
	"sync"
)

// MockClient is an offline Client for tests and demo mode. Responses can
// be queued per call or keyed by a substring of the user prompt; without
// either it echoes a canned consultation reply with a suggestion so the
// full pipeline stays exercisable.
type MockClient struct {
	mu      sync.Mutex
	queue   []queued
	keyed   map[string]string
	lastSys string
	prompts []string
	model   string
}

type queued struct {
	text string
	err  error
}

// NewMockClient creates an empty mock.
func NewMockClient() *MockClient {
	return &MockClient{keyed: make(map[string]string), model: "mock"}
}

// SetModel changes the reported model name.
func (m *MockClient) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.model = model
}

// GetModel returns the current model name.
func (m *MockClient) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

// Enqueue appends a response (or error) returned by the next Complete
// call in FIFO order.
func (m *MockClient) Enqueue(text string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, queued{text: text, err: err})
}

// RespondWhenContains registers a response used when the user prompt
// contains key. Queued responses take precedence.
func (m *MockClient) RespondWhenContains(key, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyed[key] = text
}

// LastSystemPrompt returns the system prompt of the most recent call.
func (m *MockClient) LastSystemPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSys
}

// Prompts returns every user prompt received, in order.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSys = systemPrompt
	m.prompts = append(m.prompts, userPrompt)

	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		return next.text, next.err
	}
	for key, text := range m.keyed {
		if strings.Contains(userPrompt, key) {
			return text, nil
		}
	}
	return "That is a sound direction. [SUGGEST: mermaid | Proposed Structure]", nil
}
