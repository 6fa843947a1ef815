package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyflow/internal/services"
)

// ErrNothingToCommit reports a commit attempt with no staged changes.
var ErrNothingToCommit = errors.New("nothing to commit")

// Client is the version-control capability used to publish a chapter.
type Client interface {
	Stage(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(r services.Runner) Option {
	return func(c *CLI) {
		if r != nil {
			c.runner = r
		}
	}
}

// CLI drives the git binary inside one working tree.
type CLI struct {
	binary string
	dir    string
	runner services.Runner
}

// New constructs a git client operating in dir.
func New(binary, dir string, opts ...Option) (*CLI, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("git binary required")
	}
	c := &CLI{binary: binary, dir: dir, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Stage adds paths to the index.
func (c *CLI) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := c.run(ctx, "add", args...)
	return err
}

// Commit records the index. An empty index yields ErrNothingToCommit.
func (c *CLI) Commit(ctx context.Context, message string) error {
	inv := c.invocation("commit", "-m", message)
	result, err := c.runner.Run(ctx, inv)
	if err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	if result.ExitCode != 0 && nothingToCommit(result.Output()) {
		return ErrNothingToCommit
	}
	if err := result.CheckExit(inv); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// Push publishes the current branch to its upstream.
func (c *CLI) Push(ctx context.Context) error {
	_, err := c.run(ctx, "push", "push")
	return err
}

func nothingToCommit(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "nothing to commit") ||
		strings.Contains(lower, "nothing added to commit") ||
		strings.Contains(lower, "no changes added to commit")
}

func (c *CLI) run(ctx context.Context, op string, args ...string) (services.Result, error) {
	inv := c.invocation(args...)
	result, err := c.runner.Run(ctx, inv)
	if err != nil {
		return result, fmt.Errorf("git %s: %w", op, err)
	}
	if err := result.CheckExit(inv); err != nil {
		return result, fmt.Errorf("git %s: %w", op, err)
	}
	return result, nil
}

func (c *CLI) invocation(args ...string) services.Invocation {
	return services.Invocation{Binary: c.binary, Args: args, Dir: c.dir}
}
