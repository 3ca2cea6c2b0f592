package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-memory counters: served requests by path, method and
// status, dispatched actions by name, and errors that escaped to the error
// middleware. All methods are nil-safe so callers never guard.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	actions  map[string]int64
	errors   map[string]int64
}

// NewMetrics initializes counter storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		actions:  make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one served request.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[requestKey(path, method, status)]++
}

// RecordAction counts one dispatched action by its resolved name.
func (m *Metrics) RecordAction(action string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[action]++
}

// RecordError counts one error that reached the error middleware.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// RequestCount returns how many requests matched path, method and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[requestKey(path, method, status)]
}

// ActionCount returns how many times the action was dispatched.
func (m *Metrics) ActionCount(action string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actions[action]
}

// ErrorCount returns how many errors matched path, method and code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[path+"|"+method+"|"+code]
}

func requestKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
