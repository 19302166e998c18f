package player

import (
	"fmt"
	"sync"
)

// Mock is an in-memory Handle for tests.
// It records every call and lets tests push events.
type Mock struct {
	mu          sync.Mutex
	calls       []string
	currentTime float64
	err         error
	events      chan Event
	closed      bool
}

// Verify Mock implements Handle at compile time.
var _ Handle = (*Mock)(nil)

// NewMock creates a Mock with a buffered event channel
func NewMock() *Mock {
	return &Mock{events: make(chan Event, 16)}
}

func (m *Mock) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

// SetCurrentTime sets the position returned by CurrentTime
func (m *Mock) SetCurrentTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = seconds
}

// FailWith makes every subsequent call return err
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the recorded calls in order
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset forgets recorded calls
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Emit pushes an event as the player would
func (m *Mock) Emit(e Event) {
	m.events <- e
}

func (m *Mock) Load(source string) error { return m.record("load " + source) }
func (m *Mock) Play() error               { return m.record("play") }
func (m *Mock) Pause() error              { return m.record("pause") }

func (m *Mock) SeekTo(seconds float64) error {
	return m.record(fmt.Sprintf("seek %.2f", seconds))
}

func (m *Mock) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime, m.err
}

func (m *Mock) SetVolume(volume float64) error {
	return m.record(fmt.Sprintf("volume %.2f", volume))
}

func (m *Mock) SetPlaybackRate(rate float64) error {
	return m.record(fmt.Sprintf("rate %.2f", rate))
}

func (m *Mock) SetFullscreen(on bool) error {
	return m.record(fmt.Sprintf("fullscreen %t", on))
}

func (m *Mock) SetDocked(on bool) error {
	return m.record(fmt.Sprintf("docked %t", on))
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.events)
	}
}
