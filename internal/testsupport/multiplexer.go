package testsupport

import (
	"context"
	"fmt"
	"sync"
)

// FakeMultiplexer is an in-memory tmux stand-in. It tracks live sessions and
// records every call in order.
type FakeMultiplexer struct {
	mu       sync.Mutex
	sessions map[string]bool
	panes    int
	Calls    []string
	// AttachErr, when set, is returned from Attach.
	AttachErr error
}

// NewFakeMultiplexer returns a multiplexer with the given sessions running.
func NewFakeMultiplexer(running ...string) *FakeMultiplexer {
	m := &FakeMultiplexer{sessions: map[string]bool{}}
	for _, name := range running {
		m.sessions[name] = true
	}
	return m
}

func (m *FakeMultiplexer) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

// HasSession reports whether name is running.
func (m *FakeMultiplexer) HasSession(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("has-session %s", name)
	return m.sessions[name], nil
}

// NewDetachedSession starts name.
func (m *FakeMultiplexer) NewDetachedSession(_ context.Context, name, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("new-session %s %s", name, dir)
	if m.sessions[name] {
		return fmt.Errorf("duplicate session: %s", name)
	}
	m.sessions[name] = true
	return nil
}

// SplitPane returns a fresh pane id.
func (m *FakeMultiplexer) SplitPane(_ context.Context, target, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("split-window %s %s", target, dir)
	m.panes++
	return fmt.Sprintf("%%%d", m.panes), nil
}

// SendKeys records the keys typed into target.
func (m *FakeMultiplexer) SendKeys(_ context.Context, target, keys string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("send-keys %s %s", target, keys)
	return nil
}

// Attach records the attach and returns AttachErr.
func (m *FakeMultiplexer) Attach(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("attach %s", name)
	return m.AttachErr
}

// KillSession stops name.
func (m *FakeMultiplexer) KillSession(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("kill-session %s", name)
	delete(m.sessions, name)
	return nil
}

// Running reports whether name is live.
func (m *FakeMultiplexer) Running(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[name]
}

// Recorded returns a snapshot of the recorded calls.
func (m *FakeMultiplexer) Recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}
