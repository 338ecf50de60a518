// Package testutil provides testing utilities for the ATQ module.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
)

// Record is one collection record served by the mock subgraph. Symbol is raw
// JSON so tests can serve null or numeric symbols.
type Record struct {
	ID     string          `json:"id"`
	Symbol json.RawMessage `json:"symbol"`
	Name   string          `json:"name"`
}

// NewRecord builds a record with a string symbol.
func NewRecord(id, symbol, name string) Record {
	raw, _ := json.Marshal(symbol)
	return Record{ID: id, Symbol: raw, Name: name}
}

// GenerateRecords builds n sequential records with zero-padded ids starting
// at offset+1, so the ids sort lexicographically in numeric order.
func GenerateRecords(n, offset int) []Record {
	records := make([]Record, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("0x%012d", offset+i)
		records = append(records, NewRecord(id, fmt.Sprintf("SYM%d", offset+i), fmt.Sprintf("Collection %d", offset+i)))
	}
	return records
}

// MockSubgraph is a configurable mock subgraph server for testing. By
// default it serves pages of its record set filtered by the id_gt cursor,
// like the real endpoint.
type MockSubgraph struct {
	server  *httptest.Server
	mu      sync.RWMutex
	records []Record
	handler func(w http.ResponseWriter, r *http.Request)

	// PageSize is the number of records served per page (default 1000).
	PageSize int

	// Tracking
	RequestCount int
	Cursors      []string
	LastHeader   http.Header
}

// NewMockSubgraph creates a new mock subgraph server.
func NewMockSubgraph() *MockSubgraph {
	mock := &MockSubgraph{
		PageSize: 1000,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := readCursor(r)

		mock.mu.Lock()
		mock.RequestCount++
		mock.Cursors = append(mock.Cursors, cursor)
		mock.LastHeader = r.Header.Clone()
		handler := mock.handler
		mock.mu.Unlock()

		if handler != nil {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, cursor)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockSubgraph) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockSubgraph) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockSubgraph) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.Cursors = nil
	m.LastHeader = nil
}

// SetRecords sets the record set served by the default handler.
func (m *MockSubgraph) SetRecords(records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = records
}

// SetHandler replaces the default handler entirely.
func (m *MockSubgraph) SetHandler(handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// SetStatus makes every request answer with the given HTTP status.
func (m *MockSubgraph) SetStatus(status int) {
	m.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

// SetGraphQLErrors makes every request answer with an errors body.
func (m *MockSubgraph) SetGraphQLErrors(messages ...string) {
	m.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		type gqlError struct {
			Message string `json:"message"`
		}
		body := struct {
			Errors []gqlError `json:"errors"`
		}{}
		for _, msg := range messages {
			body.Errors = append(body.Errors, gqlError{Message: msg})
		}
		writeJSON(w, body)
	})
}

// SetFailAfter serves pages normally for n requests, then answers with the
// given HTTP status.
func (m *MockSubgraph) SetFailAfter(n, status int) {
	m.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		count := m.RequestCount
		m.mu.RUnlock()

		if count > n {
			w.WriteHeader(status)
			return
		}
		m.defaultHandler(w, readCursor(r))
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockSubgraph) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetCursors returns the id_gt cursors seen, in request order.
func (m *MockSubgraph) GetCursors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.Cursors...)
}

// defaultHandler serves one page of the record set after the cursor.
func (m *MockSubgraph) defaultHandler(w http.ResponseWriter, cursor string) {
	m.mu.RLock()
	records := append([]Record(nil), m.records...)
	pageSize := m.PageSize
	m.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	page := make([]Record, 0, pageSize)
	for _, record := range records {
		if record.ID > cursor {
			page = append(page, record)
		}
		if len(page) == pageSize {
			break
		}
	}

	writeJSON(w, struct {
		Data struct {
			Collections []Record `json:"collections"`
		} `json:"data"`
	}{Data: struct {
		Collections []Record `json:"collections"`
	}{Collections: page}})
}

// readCursor extracts variables.last_id from a page request body.
func readCursor(r *http.Request) string {
	var body struct {
		Variables struct {
			LastID string `json:"last_id"`
		} `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Variables.LastID
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
