// Package fbtest runs a fake FlashBlade management endpoint for tests.
package fbtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
)

// APIVersion is the highest REST version the fake array offers.
const APIVersion = "2.14"

// Request records one authenticated collection request.
type Request struct {
	Path  string
	Query url.Values
}

type failure struct {
	status  int
	message string
}

// Array is a fake array listening on a TLS test server. Close it when done.
type Array struct {
	*httptest.Server

	// Token is the only api-token accepted by /api/login.
	Token string

	mu       sync.Mutex
	sessions int
	items    map[string][]map[string]any
	failures map[string]failure
	requests []Request
}

// New starts a fake array accepting token.
func New(token string) *Array {
	a := &Array{
		Token:    token,
		items:    make(map[string][]map[string]any),
		failures: make(map[string]failure),
	}
	r := chi.NewRouter()
	r.Post("/api/login", a.handleLogin)
	r.Get("/api/api_version", a.handleVersions)
	r.Get("/api/{version}/*", a.handleCollection)
	a.Server = httptest.NewTLSServer(r)
	return a
}

// SetItems makes path (e.g. "arrays/space") answer with items.
func (a *Array) SetItems(path string, items ...map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.items[path] = items
}

// Fail makes path answer with status and a REST errors body.
func (a *Array) Fail(path string, status int, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[path] = failure{status: status, message: message}
}

// Requests returns the collection requests seen so far.
func (a *Array) Requests() []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests...)
}

// Logins returns the number of successful logins.
func (a *Array) Logins() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions
}

func (a *Array) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("api-token") != a.Token {
		writeErrors(w, http.StatusUnauthorized, "Invalid API token")
		return
	}
	a.mu.Lock()
	a.sessions++
	n := a.sessions
	a.mu.Unlock()
	w.Header().Set("x-auth-token", "session-"+strconv.Itoa(n))
	writeJSON(w, http.StatusOK, map[string]any{"items": []map[string]any{{"username": "pureuser"}}})
}

func (a *Array) handleVersions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"versions": []string{"1.0", "1.12", "2.0", "2.9", APIVersion}})
}

func (a *Array) handleCollection(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-auth-token") == "" {
		writeErrors(w, http.StatusUnauthorized, "Missing session token")
		return
	}
	if v := chi.URLParam(r, "version"); v != APIVersion {
		writeErrors(w, http.StatusNotFound, "Unsupported version "+v)
		return
	}
	path := chi.URLParam(r, "*")

	a.mu.Lock()
	a.requests = append(a.requests, Request{Path: path, Query: r.URL.Query()})
	f, failed := a.failures[path]
	items := a.items[path]
	a.mu.Unlock()

	if failed {
		writeErrors(w, f.status, f.message)
		return
	}
	if items == nil {
		items = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"continuation_token": nil,
		"total_item_count":   len(items),
		"items":              items,
	})
}

func writeErrors(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"errors": []map[string]string{{"message": message}}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
