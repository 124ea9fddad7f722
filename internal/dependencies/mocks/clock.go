package mocks

import (
	"time"

	"github.com/cardtable/cardtable/internal/dependencies/clock"
)

// MockClock is a Clock whose time only moves when a test moves it. Token
// expiry and room inactivity tests advance it past their thresholds instead
// of sleeping.
type MockClock struct {
	CurrentTime time.Time
}

// Ensure MockClock implements Clock
var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set jumps the clock to the given time
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
