// Package testutil provides testing utilities for the EasyData client.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// DefaultGridCSV is the grid payload served when no custom handler is set.
const DefaultGridCSV = "d1,d2,value\nGDP,2024,42\nCPI,2024,7.5\n"

// DefaultDownloadCSV is the time series payload served by default.
const DefaultDownloadCSV = "code,date,value\nGDP,2024-01-01,42\nGDP,2024-02-01,43\n"

// DefaultSelectionsJSON is the selections listing served by default.
const DefaultSelectionsJSON = `[
  {
    "id": 11,
    "title": "My Selection",
    "timeseriescodes": ["GDP", "CPI"],
    "is_owner": true,
    "owner": {"username": "analyst"},
    "status": "P",
    "description": "test selection",
    "modified": "2024-06-01T10:00:00Z"
  }
]`

// DefaultRecipesJSON is the recipes listing served by default.
const DefaultRecipesJSON = `[
  {"id": 1, "title": "National Accounts", "description": "quarterly"},
  {"id": 2, "title": "Labour Market", "description": null}
]`

// MockEasyData is a configurable mock EasyData server for testing.
type MockEasyData struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	RequestCount  int
	LastPath      string
	LastQuery     url.Values
	LastAuth      string
	LastBody      []byte
	LastUserAgent string
}

// NewMockEasyData creates a new mock EasyData server.
func NewMockEasyData() *MockEasyData {
	mock := &MockEasyData{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		mock.RequestCount++
		mock.LastPath = r.URL.Path
		mock.LastQuery = r.URL.Query()
		mock.LastAuth = r.Header.Get("Authorization")
		mock.LastBody = body
		mock.LastUserAgent = r.Header.Get("User-Agent")
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockEasyData) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockEasyData) Close() {
	m.server.Close()
}

// Handle registers a custom handler for a path.
func (m *MockEasyData) Handle(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// Reset clears all tracking state and custom handlers.
func (m *MockEasyData) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastPath = ""
	m.LastQuery = nil
	m.LastAuth = ""
	m.LastBody = nil
	m.LastUserAgent = ""
	m.handlers = make(map[string]http.HandlerFunc)
}

// Requests returns the request count, safely.
func (m *MockEasyData) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

func (m *MockEasyData) defaultHandler(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/download/recipes/"):
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, DefaultGridCSV)
	case r.URL.Path == "/download/":
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, DefaultDownloadCSV)
	case r.URL.Path == "/recipes/":
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, DefaultRecipesJSON)
	case r.URL.Path == "/selections/":
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, DefaultSelectionsJSON)
	default:
		http.NotFound(w, r)
	}
}
