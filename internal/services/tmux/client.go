package tmux

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studyflow/internal/services"
)

// Multiplexer is the terminal session capability the workspace launcher needs.
// Sessions and panes are addressed by tmux target strings.
type Multiplexer interface {
	HasSession(ctx context.Context, name string) (bool, error)
	NewDetachedSession(ctx context.Context, name, dir string) error
	// SplitPane splits target side by side and returns the new pane's id.
	SplitPane(ctx context.Context, target, dir string) (string, error)
	SendKeys(ctx context.Context, target, keys string) error
	// Attach hands the caller's terminal to the session and blocks until detach.
	Attach(ctx context.Context, name string) error
	KillSession(ctx context.Context, name string) error
}

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(r services.Runner) Option {
	return func(c *Client) {
		if r != nil {
			c.runner = r
		}
	}
}

// Client drives the tmux CLI.
type Client struct {
	binary string
	runner services.Runner
}

// New constructs a tmux client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("tmux binary required")
	}
	client := &Client{binary: binary, runner: services.CommandRunner{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// HasSession reports whether a session with exactly this name exists. A
// missing tmux server counts as no session.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	// "=" disables tmux's prefix matching so ch05 never matches ch05-2.
	result, err := c.runner.Run(ctx, c.invocation(false, "has-session", "-t", "="+name))
	if err != nil {
		return false, fmt.Errorf("tmux has-session: %w", err)
	}
	return result.ExitCode == 0, nil
}

// NewDetachedSession creates a session in the background rooted at dir.
func (c *Client) NewDetachedSession(ctx context.Context, name, dir string) error {
	args := []string{"new-session", "-d", "-s", name}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	_, err := c.run(ctx, "new-session", args...)
	return err
}

// SplitPane splits target horizontally with the new pane rooted at dir.
func (c *Client) SplitPane(ctx context.Context, target, dir string) (string, error) {
	args := []string{"split-window", "-h", "-P", "-F", "#{pane_id}", "-t", target}
	if dir != "" {
		args = append(args, "-c", dir)
	}
	result, err := c.run(ctx, "split-window", args...)
	if err != nil {
		return "", err
	}
	pane := strings.TrimSpace(result.Stdout)
	if pane == "" {
		return "", errors.New("tmux split-window: no pane id reported")
	}
	return pane, nil
}

// SendKeys types keys into target followed by Enter.
func (c *Client) SendKeys(ctx context.Context, target, keys string) error {
	_, err := c.run(ctx, "send-keys", "send-keys", "-t", target, keys, "C-m")
	return err
}

// Attach attaches the current terminal to the session.
func (c *Client) Attach(ctx context.Context, name string) error {
	inv := c.invocation(true, "attach-session", "-t", name)
	result, err := c.runner.Run(ctx, inv)
	if err != nil {
		return fmt.Errorf("tmux attach: %w", err)
	}
	if err := result.CheckExit(inv); err != nil {
		return fmt.Errorf("tmux attach: %w", err)
	}
	return nil
}

// KillSession destroys the session and every process running in it.
func (c *Client) KillSession(ctx context.Context, name string) error {
	_, err := c.run(ctx, "kill-session", "kill-session", "-t", "="+name)
	return err
}

func (c *Client) run(ctx context.Context, op string, args ...string) (services.Result, error) {
	inv := c.invocation(false, args...)
	result, err := c.runner.Run(ctx, inv)
	if err != nil {
		return result, fmt.Errorf("tmux %s: %w", op, err)
	}
	if err := result.CheckExit(inv); err != nil {
		return result, fmt.Errorf("tmux %s: %w", op, err)
	}
	return result, nil
}

func (c *Client) invocation(interactive bool, args ...string) services.Invocation {
	return services.Invocation{Binary: c.binary, Args: args, Interactive: interactive}
}
