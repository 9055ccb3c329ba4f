package gametime

import (
	"sync"
	"time"
)

// ManualSource is a controllable TimeSource for tests and replays
type ManualSource struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualSource creates a source frozen at start
func NewManualSource(start time.Time) *ManualSource {
	return &ManualSource{current: start}
}

// Now returns the current manual time
func (m *ManualSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set sets the current time
func (m *ManualSource) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t
}

// Advance moves the current time forward by d
func (m *ManualSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
