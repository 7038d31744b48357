package clock

import (
	"sync"
	"time"
)

// Clocker abstracts time so callers can replace real time in tests.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock implementation backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker that reads the current system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// ManualClocker is a Clocker that only moves when told to.
type ManualClocker struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a ManualClocker frozen at start.
func NewManual(start time.Time) *ManualClocker {
	return &ManualClocker{now: start}
}

// Now returns the frozen time.
func (m *ManualClocker) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d.
func (m *ManualClocker) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
