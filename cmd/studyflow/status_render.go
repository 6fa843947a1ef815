package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"studyflow/internal/deps"
	"studyflow/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var statusStyles = map[statusKind]struct{ label, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

const statusLabelWidth = 20

// renderStatusLine formats "  label: [KIND] message", padded so the kinds
// line up, and wrapped in the kind's colour when colorize is set.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	badge := "[" + style.label + "]"
	if message != "" {
		badge += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", badge)
	if colorize {
		line = style.color + line + ansiReset
	}
	return line
}

// report accumulates titled sections of status lines for doctor.
type report struct {
	colorize bool
	lines    []string
}

func (r *report) section(title string) {
	if len(r.lines) > 0 {
		r.lines = append(r.lines, "")
	}
	header := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(header))
	if r.colorize {
		header = ansiBlue + header + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	r.lines = append(r.lines, header, rule)
}

func (r *report) add(lines ...string) {
	r.lines = append(r.lines, lines...)
}

func (r *report) line(label string, kind statusKind, message string) {
	r.add(renderStatusLine(label, kind, message, r.colorize))
}

func (r *report) writeTo(w io.Writer) {
	for _, line := range r.lines {
		fmt.Fprintln(w, line)
	}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func checkLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	for _, dep := range statuses {
		kind, message := dependencyState(dep)
		lines = append(lines, renderStatusLine(dep.Name, kind, message, colorize))
	}
	if missing := deps.Missing(statuses); len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}

func dependencyState(dep deps.Status) (statusKind, string) {
	if dep.Available {
		if dep.Path == "" {
			return statusOK, "Ready"
		}
		return statusOK, fmt.Sprintf("Ready (%s)", dep.Path)
	}
	message := strings.TrimSpace(dep.Detail)
	if message == "" {
		message = "not available"
	}
	if dep.Description != "" {
		message += "; " + strings.ToLower(dep.Description[:1]) + dep.Description[1:]
	}
	if dep.Optional {
		return statusWarn, message
	}
	return statusError, message
}
