package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dbnav/object-browser/internal/models"
)

// MockFetcher serves node children from memory and counts requests.
type MockFetcher struct {
	mu       sync.Mutex
	rows     map[string][]models.RawRow
	errs     map[string]error
	requests map[string]int
	gate     chan struct{}
	started  chan string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		rows:     make(map[string][]models.RawRow),
		errs:     make(map[string]error),
		requests: make(map[string]int),
		started:  make(chan string, 100),
	}
}

// SetChildren registers the rows returned for rel.
func (m *MockFetcher) SetChildren(rel string, rows ...models.RawRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rel] = rows
}

// Fail makes every request for rel return err.
func (m *MockFetcher) Fail(rel string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[rel] = err
}

// Hold blocks every request until the returned release function is called.
func (m *MockFetcher) Hold() (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	gate := make(chan struct{})
	m.gate = gate
	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Started receives the url of every request as soon as it arrives.
func (m *MockFetcher) Started() <-chan string {
	return m.started
}

func (m *MockFetcher) Requests(rel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[rel]
}

func (m *MockFetcher) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}

func (m *MockFetcher) FetchChildren(ctx context.Context, rel string) ([]models.RawRow, error) {
	m.mu.Lock()
	m.requests[rel]++
	gate := m.gate
	rows, known := m.rows[rel]
	err := m.errs[rel]
	m.mu.Unlock()

	select {
	case m.started <- rel:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(10 * time.Second):
			return nil, fmt.Errorf("mock fetcher held too long")
		}
	}

	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("no children registered for %s", rel)
	}
	return rows, nil
}
