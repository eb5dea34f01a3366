package test

import (
	"sync"
	"time"
)

// MockNotifier records every notice it receives.
type MockNotifier struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
	Infos     []string
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Success(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, message)
}

func (m *MockNotifier) Error(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors = append(m.Errors, message)
}

func (m *MockNotifier) Info(message string, timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Infos = append(m.Infos, message)
}

// ErrorCount is safe to poll from gomega's Eventually.
func (m *MockNotifier) ErrorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Errors)
}
