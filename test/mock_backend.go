package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/dbnav/object-browser/internal/models"
)

// MockBackend is an httptest node api answering GET <base>/<rel> with the
// {"data": [...]} envelope.
type MockBackend struct {
	mu       sync.Mutex
	rows     map[string][]models.RawRow
	status   map[string]int
	requests map[string]int
	headers  []http.Header

	Server *httptest.Server
}

func NewMockBackend() *MockBackend {
	m := &MockBackend{
		rows:     make(map[string][]models.RawRow),
		status:   make(map[string]int),
		requests: make(map[string]int),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	return m
}

func (m *MockBackend) URL() string {
	return m.Server.URL + "/browser/"
}

func (m *MockBackend) Close() {
	m.Server.Close()
}

func (m *MockBackend) SetChildren(rel string, rows ...models.RawRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[rel] = rows
}

func (m *MockBackend) FailWith(rel string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status[rel] = status
}

func (m *MockBackend) Requests(rel string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[rel]
}

// LastHeaders returns the headers of the most recent request.
func (m *MockBackend) LastHeaders() http.Header {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.headers) == 0 {
		return nil
	}
	return m.headers[len(m.headers)-1]
}

func (m *MockBackend) serve(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/browser/")

	m.mu.Lock()
	m.requests[rel]++
	m.headers = append(m.headers, r.Header.Clone())
	status, failing := m.status[rel]
	rows, known := m.rows[rel]
	m.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}
	if !known {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": rows})
}
