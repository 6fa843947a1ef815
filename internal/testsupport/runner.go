package testsupport

import (
	"context"
	"strings"
	"sync"

	"studyflow/internal/services"
)

// RunFunc produces the outcome for a recorded invocation.
type RunFunc func(inv services.Invocation) (services.Result, error)

// RecordingRunner is a services.Runner that records invocations and delegates
// their outcome to Handler. A nil Handler succeeds with empty output.
type RecordingRunner struct {
	mu      sync.Mutex
	Handler RunFunc
	Calls   []services.Invocation
}

// Run implements services.Runner.
func (r *RecordingRunner) Run(ctx context.Context, inv services.Invocation) (services.Result, error) {
	if err := ctx.Err(); err != nil {
		return services.Result{}, err
	}
	inv.Args = append([]string(nil), inv.Args...)
	r.mu.Lock()
	r.Calls = append(r.Calls, inv)
	handler := r.Handler
	r.mu.Unlock()
	if handler == nil {
		return services.Result{}, nil
	}
	return handler(inv)
}

// Invocations returns a snapshot of the recorded calls.
func (r *RecordingRunner) Invocations() []services.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]services.Invocation(nil), r.Calls...)
}

// Commands returns each recorded call rendered as "binary arg arg".
func (r *RecordingRunner) Commands() []string {
	calls := r.Invocations()
	out := make([]string, 0, len(calls))
	for _, inv := range calls {
		out = append(out, strings.TrimSpace(inv.Binary+" "+strings.Join(inv.Args, " ")))
	}
	return out
}
