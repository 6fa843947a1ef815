package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Invocation describes a single external command run.
type Invocation struct {
	Binary string
	Args   []string
	Dir    string
	// Interactive hands the caller's terminal to the command and blocks until it exits.
	Interactive bool
}

// String renders the invocation roughly as a shell would show it.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Binary)
	for _, arg := range inv.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Result captures the outcome of a command that started successfully.
// Output fields stay empty for interactive invocations.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Output returns trimmed stdout and stderr joined for diagnostics.
func (r Result) Output() string {
	stdout := strings.TrimSpace(r.Stdout)
	stderr := strings.TrimSpace(r.Stderr)
	switch {
	case stdout != "" && stderr != "":
		return stdout + "\n" + stderr
	case stdout != "":
		return stdout
	default:
		return stderr
	}
}

// CheckExit converts a non-zero exit code into an ErrExternalTool error.
func (r Result) CheckExit(inv Invocation) error {
	if r.ExitCode == 0 {
		return nil
	}
	detail := fmt.Sprintf("%s exited with status %d", inv.Binary, r.ExitCode)
	if out := r.Output(); out != "" {
		detail += ": " + out
	}
	return fmt.Errorf("%w: %s", ErrExternalTool, detail)
}

// Runner abstracts command execution for testability. Run returns an error
// only when the command could not be started or was interrupted; a non-zero
// exit is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// CommandRunner executes invocations with os/exec.
type CommandRunner struct{}

// Run implements Runner.
func (CommandRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	binary := strings.TrimSpace(inv.Binary)
	if binary == "" {
		return Result{}, errors.New("run command: empty binary")
	}

	cmd := exec.CommandContext(ctx, binary, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	if inv.Interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("%s: %w", binary, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, fmt.Errorf("%w: start %s: %w", ErrExternalTool, binary, err)
}
