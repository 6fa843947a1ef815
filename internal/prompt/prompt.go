package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"studyflow/internal/services"
)

// Prompter is the synchronous user-interaction capability. Every call blocks
// until the user answers.
type Prompter interface {
	// Say prints an informational line.
	Say(format string, args ...any)
	// Ask prints question and returns the trimmed answer.
	Ask(ctx context.Context, question string) (string, error)
}

// Console reads answers line by line from an input stream.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole builds a prompter over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// NewStdConsole builds a prompter over the process stdin/stdout.
func NewStdConsole() *Console {
	return NewConsole(os.Stdin, os.Stdout)
}

// Say implements Prompter.
func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Ask implements Prompter. A closed input stream with no answer is an input
// error rather than an empty answer, so scripted runs fail loudly.
func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(c.out, question)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return "", services.Wrap(services.ErrInput, "prompt", "", "input closed before an answer was given", nil)
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskInt asks for a positive integer. A non-numeric answer is an input error;
// there is no retry.
func AskInt(ctx context.Context, p Prompter, question string) (int, error) {
	answer, err := p.Ask(ctx, question)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, services.Wrap(services.ErrInput, "prompt", "", fmt.Sprintf("%q is not a whole number", answer), nil)
	}
	return value, nil
}

// IsInteractive reports whether stdin and stdout are both attached to a terminal.
func IsInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
