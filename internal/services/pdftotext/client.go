package pdftotext

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"studyflow/internal/services"
)

// Tool defines the behaviour required by the chapter extractor.
type Tool interface {
	Extract(ctx context.Context, document string, firstPage, lastPage int, outPath string) error
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

// WithLayout preserves the physical page layout of the source text.
func WithLayout() Option {
	return func(c *Client) {
		c.layout = true
	}
}

// Client wraps pdftotext CLI interactions.
type Client struct {
	binary string
	layout bool
	runner services.Runner
}

// New constructs a pdftotext client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("pdftotext binary required")
	}
	client := &Client{
		binary: binary,
		runner: services.CommandRunner{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Args returns the argument list for an inclusive page range.
func (c *Client) Args(document string, firstPage, lastPage int, outPath string) []string {
	args := []string{"-f", strconv.Itoa(firstPage), "-l", strconv.Itoa(lastPage)}
	if c.layout {
		args = append(args, "-layout")
	}
	return append(args, document, outPath)
}

// Extract writes the text of pages firstPage..lastPage of document to outPath.
func (c *Client) Extract(ctx context.Context, document string, firstPage, lastPage int, outPath string) error {
	if firstPage < 1 || lastPage < firstPage {
		return fmt.Errorf("pdftotext: invalid page range %d-%d", firstPage, lastPage)
	}
	inv := services.Invocation{
		Binary: c.binary,
		Args:   c.Args(document, firstPage, lastPage, outPath),
	}
	result, err := c.runner.Run(ctx, inv)
	if err != nil {
		return fmt.Errorf("pdftotext extract: %w", err)
	}
	if err := result.CheckExit(inv); err != nil {
		return fmt.Errorf("pdftotext extract: %w", err)
	}
	return nil
}
