package transcript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

const tailPollInterval = 250 * time.Millisecond

// TailOptions selects which part of a live transcript to read.
//
// A negative Offset reads the last Limit cleaned lines (all lines when Limit
// is zero). A non-negative Offset resumes where a previous TailResult left
// off. With Follow set, an empty read polls for up to Wait before returning.
type TailOptions struct {
	Offset int64
	Limit  int
	Follow bool
	Wait   time.Duration
}

// TailResult carries the cleaned lines and the byte offset to resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail reads a transcript that the logging shell may still be writing.
// Lines are cleaned the same way as Sanitize but blank lines are kept. While
// following, everything after the last newline (usually the shell prompt)
// is held back until it is completed.
func (s *Sanitizer) Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	if opts.Wait < 0 {
		opts.Wait = 0
	}
	result, err := s.readChunk(path, opts)
	if err != nil || len(result.Lines) > 0 || !opts.Follow || opts.Wait == 0 {
		return result, err
	}

	deadline := time.Now().Add(opts.Wait)
	ticker := time.NewTicker(tailPollInterval)
	defer ticker.Stop()

	next := opts
	next.Offset = result.Offset
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
		}
		result, err = s.readChunk(path, next)
		if err != nil || len(result.Lines) > 0 {
			return result, err
		}
		next.Offset = result.Offset
	}
	return result, nil
}

func (s *Sanitizer) readChunk(path string, opts TailOptions) (TailResult, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return TailResult{}, nil
		}
		return TailResult{Offset: opts.Offset}, fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return TailResult{Offset: opts.Offset}, fmt.Errorf("stat transcript: %w", err)
	}
	if info.IsDir() {
		return TailResult{Offset: opts.Offset}, fmt.Errorf("transcript path %q is a directory", path)
	}

	// script truncates the log when a session is recreated; start over.
	start := opts.Offset
	if start < 0 || start > info.Size() {
		start = 0
	}
	if _, err := file.Seek(start, io.SeekStart); err != nil {
		return TailResult{Offset: start}, fmt.Errorf("seek transcript: %w", err)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return TailResult{Offset: start}, fmt.Errorf("read transcript: %w", err)
	}

	if opts.Follow {
		data = data[:bytes.LastIndexByte(data, '\n')+1]
	}
	lines := s.cleanLines(string(data))
	if opts.Offset < 0 && opts.Limit > 0 && len(lines) > opts.Limit {
		lines = lines[len(lines)-opts.Limit:]
	}
	return TailResult{Lines: lines, Offset: start + int64(len(data))}, nil
}

func (s *Sanitizer) cleanLines(chunk string) []string {
	if chunk == "" {
		return nil
	}
	parts := lineBreak.Split(chunk, -1)
	// A terminated chunk splits into a trailing empty element.
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([]string, 0, len(parts))
	for _, line := range parts {
		line = ansi.Strip(line)
		if s.isMarker(line) {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t\f\v"))
	}
	return lines
}
