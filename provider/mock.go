package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a mock AI provider for testing. It is safe for concurrent use.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	Failures     map[string]error  // Source texts whose translation fails
	Language     string            // Label returned by Detect
	DetectErr    error             // Error returned by Detect

	mu          sync.Mutex
	callCount   int
	detectCount int
	requests    []TranslateRequest
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
			"Next":        "Siguiente",
			"Cancel":      "Cancelar",
		},
		Failures: map[string]error{},
		Language: "English",
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.requests = append(m.requests, req)
	err := m.Failures[req.Text]
	translation, ok := m.Translations[req.Text]
	m.mu.Unlock()

	if err != nil {
		return "", err
	}
	if ok {
		return translation, nil
	}
	// Return bracketed text for unknown translations
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Detect returns the configured language label.
func (m *MockProvider) Detect(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectCount++
	if m.DetectErr != nil {
		return "", m.DetectErr
	}
	return m.Language, nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// DetectCount returns the number of Detect calls.
func (m *MockProvider) DetectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detectCount
}

// Requests returns a copy of every Translate request received.
func (m *MockProvider) Requests() []TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranslateRequest(nil), m.requests...)
}

// Reset resets the call counters and recorded requests.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.detectCount = 0
	m.requests = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
