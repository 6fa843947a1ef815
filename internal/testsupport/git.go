package testsupport

import (
	"context"
	"strings"
	"sync"
)

// FakeGit records git operations. CommitErr and PushErr are returned from the
// matching calls.
type FakeGit struct {
	mu        sync.Mutex
	Calls     []string
	Staged    []string
	Messages  []string
	CommitErr error
	PushErr   error
}

// Stage records the staged paths.
func (g *FakeGit) Stage(_ context.Context, paths ...string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "add "+strings.Join(paths, " "))
	g.Staged = append(g.Staged, paths...)
	return nil
}

// Commit records the message.
func (g *FakeGit) Commit(_ context.Context, message string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "commit")
	g.Messages = append(g.Messages, message)
	return g.CommitErr
}

// Push records the push.
func (g *FakeGit) Push(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, "push")
	return g.PushErr
}
