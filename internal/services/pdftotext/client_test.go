package pdftotext_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studyflow/internal/services"
	"studyflow/internal/services/pdftotext"
	"studyflow/internal/testsupport"
)

func TestExtractPassesInclusiveRange(t *testing.T) {
	runner := &testsupport.RecordingRunner{}
	client, err := pdftotext.New("pdftotext", pdftotext.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := client.Extract(context.Background(), "book.pdf", 40, 55, "out.txt"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{"pdftotext -f 40 -l 55 book.pdf out.txt"}
	if diff := cmp.Diff(want, runner.Commands()); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractWithLayout(t *testing.T) {
	runner := &testsupport.RecordingRunner{}
	client, err := pdftotext.New("pdftotext", pdftotext.WithRunner(runner), pdftotext.WithLayout())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Extract(context.Background(), "book.pdf", 1, 1, "out.txt"); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got := runner.Commands()[0]; got != "pdftotext -f 1 -l 1 -layout book.pdf out.txt" {
		t.Fatalf("unexpected command: %q", got)
	}
}

func TestExtractReportsNonZeroExit(t *testing.T) {
	runner := &testsupport.RecordingRunner{Handler: func(services.Invocation) (services.Result, error) {
		return services.Result{ExitCode: 1, Stderr: "Syntax Error: Couldn't find trailer dictionary"}, nil
	}}
	client, err := pdftotext.New("pdftotext", pdftotext.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Extract(context.Background(), "book.pdf", 1, 2, "out.txt")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestExtractRejectsInvalidRange(t *testing.T) {
	runner := &testsupport.RecordingRunner{}
	client, err := pdftotext.New("pdftotext", pdftotext.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Extract(context.Background(), "book.pdf", 5, 4, "out.txt"); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("runner should not be invoked, got %v", runner.Commands())
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := pdftotext.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
