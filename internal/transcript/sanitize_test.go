package transcript_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"studyflow/internal/logging"
	"studyflow/internal/services"
	"studyflow/internal/testsupport"
	"studyflow/internal/transcript"
)

func TestSanitizeScenario(t *testing.T) {
	s := transcript.NewSanitizer(logging.NewNop(), "Session started", "Session ended")
	raw := "Session started ...\nfoo\x1b[0mbar  \nSession ended ...\n"
	if got := s.Sanitize(raw); got != "foobar\n" {
		t.Fatalf("Sanitize = %q, want %q", got, "foobar\n")
	}
}

func TestSanitizeDefaultMarkers(t *testing.T) {
	raw := "Script started on 2026-01-02 10:00:00+00:00 [TERM=\"xterm\"]\r\n" +
		"$ python3 ex1.py\r\n" +
		"Hello World!\r\n" +
		"$ exit\r\n" +
		"\r\n" +
		"Script done on 2026-01-02 10:05:00+00:00 [COMMAND_EXIT_CODE=\"0\"]\r\n"
	want := "$ python3 ex1.py\nHello World!\n$ exit\n"
	if got := transcript.Sanitize(raw); got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeStripsEscapeSequences(t *testing.T) {
	cases := map[string]string{
		"csi colour":      "\x1b[01;32muser\x1b[00m:~$ ls",
		"osc title bel":   "\x1b]0;user@host: ~\x07user:~$ ls",
		"osc title st":    "\x1b]2;title\x1b\\user:~$ ls",
		"bracketed paste": "\x1b[?2004huser:~$ ls\x1b[?2004l",
		"charset select":  "\x1b(Buser:~$ ls",
		"keypad mode":     "\x1b=user:~$ ls\x1b>",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			got := transcript.Sanitize(line)
			if strings.ContainsRune(got, '\x1b') {
				t.Fatalf("escape byte survived: %q", got)
			}
			if !strings.HasSuffix(got, "ls\n") {
				t.Fatalf("content lost: %q", got)
			}
		})
	}
}

func TestSanitizeLineEndingsAndBlankEdges(t *testing.T) {
	raw := "\n\n  \nfirst\r\nsecond\rthird\t \n\n\nfourth\n\n"
	want := "first\nsecond\nthird\n\n\nfourth\n"
	if got := transcript.Sanitize(raw); got != want {
		t.Fatalf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	for _, raw := range []string{"", "\n\n", "Script started\nScript done\n"} {
		if got := transcript.Sanitize(raw); got != "\n" {
			t.Fatalf("Sanitize(%q) = %q, want newline", raw, got)
		}
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Script started\n\x1b[1mbold\x1b[0m   \r\n\rnext\n",
		"  leading spaces kept\n\ttabbed\n",
		"a\n\n\nb",
		"$ vim ex1.py\n\x1b\x1b[0mAfter\n",
		"\x1b]0;unterminated title\n\x1b(0lqk\x1b(B\n",
	}
	for _, raw := range inputs {
		once := transcript.Sanitize(raw)
		twice := transcript.Sanitize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestSanitizeDropsStrayEscape(t *testing.T) {
	got := transcript.Sanitize("$ vim ex1.py\n\x1b\x1b[0mAfter\n")
	if got != "$ vim ex1.py\nAfter\n" {
		t.Fatalf("Sanitize = %q", got)
	}
	if strings.ContainsRune(got, 0x1b) {
		t.Fatalf("escape byte left in output: %q", got)
	}
}

func TestSanitizeFileOverwritesOutput(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "session.log")
	outPath := filepath.Join(dir, "output.txt")
	testsupport.WriteText(t, outPath, "stale output from an earlier run\n")
	testsupport.WriteText(t, logPath, "Script started\nfresh\nScript done\n")

	s := transcript.NewSanitizer(logging.NewNop())
	if err := s.SanitizeFile(logPath, outPath); err != nil {
		t.Fatalf("SanitizeFile: %v", err)
	}
	if got := testsupport.ReadText(t, outPath); got != "fresh\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestSanitizeFileMissingTranscript(t *testing.T) {
	dir := t.TempDir()
	s := transcript.NewSanitizer(logging.NewNop())
	err := s.SanitizeFile(filepath.Join(dir, "session.log"), filepath.Join(dir, "output.txt"))
	if !errors.Is(err, services.ErrMissingArtifact) {
		t.Fatalf("expected missing artifact error, got %v", err)
	}
	if !strings.Contains(err.Error(), "studyflow start") {
		t.Fatalf("expected hint to rerun start, got %v", err)
	}
}
