package timeline

import "time"

// FrameCallback receives the wall-clock time of the display refresh it
// runs for.
type FrameCallback func(now time.Time)

// Scheduler is the host's animation-frame capability: a callback passed to
// RequestFrame runs once, on the next refresh, on the host's frame
// goroutine.
type Scheduler interface {
	RequestFrame(cb FrameCallback)
}

// ManualScheduler queues frame callbacks until Advance is called. It
// stands in for a display clock in tests and in offline rendering.
type ManualScheduler struct {
	now     time.Time
	pending []FrameCallback
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (m *ManualScheduler) RequestFrame(cb FrameCallback) {
	m.pending = append(m.pending, cb)
}

func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// Advance moves the fake clock forward by d and runs the callbacks that
// were queued before the call. Callbacks requested while running wait for
// the next Advance, like a real refresh.
func (m *ManualScheduler) Advance(d time.Duration) int {
	m.now = m.now.Add(d)
	batch := m.pending
	m.pending = nil
	for _, cb := range batch {
		cb(m.now)
	}
	return len(batch)
}
