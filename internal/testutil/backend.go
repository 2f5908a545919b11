// Package testutil provides testing utilities for the taskdeck project.
package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pablasso/taskdeck/internal/repository/sqlite"
	"github.com/pablasso/taskdeck/internal/server"
)

// Request is a request observed by a Backend.
type Request struct {
	Method string
	Path   string
	Body   string
}

// Failure is a canned response returned instead of reaching the real handler.
type Failure struct {
	Status int
	Body   string
}

// Backend is an httptest server running the reference task API on an
// in-memory database. It records every request and can be told to fail
// specific routes.
type Backend struct {
	*httptest.Server
	Repo *sqlite.SQLiteRepository

	mu       sync.Mutex
	requests []Request
	failures map[string]Failure
}

// NewBackend starts a Backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	h := server.NewHandler(repo)
	h.Now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }
	routes := h.Routes()

	b := &Backend{Repo: repo, failures: make(map[string]Failure)}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		b.mu.Lock()
		b.requests = append(b.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		f, failing := b.failures[r.Method+" "+r.URL.Path]
		b.mu.Unlock()

		if failing {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.Status)
			io.WriteString(w, f.Body)
			return
		}
		routes.ServeHTTP(w, r)
	}))

	t.Cleanup(func() {
		b.Server.Close()
		repo.Close()
	})
	return b
}

// Fail makes every request matching method and path return the given
// status and raw body until ClearFailures is called.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = Failure{Status: status, Body: body}
}

// ClearFailures removes all injected failures.
func (b *Backend) ClearFailures() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = make(map[string]Failure)
}

// Requests returns a copy of the recorded requests.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// ResetRequests forgets recorded requests.
func (b *Backend) ResetRequests() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = nil
}

// Count returns how many recorded requests match method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Methods returns "METHOD /path" for each recorded request, in order.
func (b *Backend) Methods() []string {
	var out []string
	for _, r := range b.Requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

// Seed inserts tasks directly into the database, bypassing the HTTP layer
// and the request log. Missing priorities default to Medium.
func (b *Backend) Seed(t *testing.T, tasks ...sqlite.Task) []sqlite.Task {
	t.Helper()
	out := make([]sqlite.Task, 0, len(tasks))
	for _, task := range tasks {
		task := task
		if task.Priority == "" {
			task.Priority = "Medium"
		}
		if task.CreatedDate == "" {
			task.CreatedDate = "2026-10-17"
		}
		if err := b.Repo.CreateTask(context.Background(), &task); err != nil {
			t.Fatalf("failed to seed task %q: %v", task.Title, err)
		}
		out = append(out, task)
	}
	return out
}

// String summarizes the recorded requests, handy in failure messages.
func (b *Backend) String() string {
	return strings.Join(b.Methods(), ", ")
}
