package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps per-route request and error counters in process memory.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]int64
	errors   map[string]int64
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one completed request under its path, method and
// response status.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := counterKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts one request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := counterKey(path, method, code)
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}

func counterKey(path, method, tail string) string {
	return path + "|" + method + "|" + tail
}
