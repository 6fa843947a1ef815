package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studyflow/internal/services"
	"studyflow/internal/services/git"
	"studyflow/internal/testsupport"
)

func TestStageCommitPush(t *testing.T) {
	runner := &testsupport.RecordingRunner{}
	client, err := git.New("git", "/repo", git.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := context.Background()

	if err := client.Stage(ctx, "chapters/ch05", ".studyflow_state.json"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := client.Commit(ctx, "Chapter 05: Strings (logs + exercises)"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if err := client.Push(ctx); err != nil {
		t.Fatalf("Push: %v", err)
	}

	var got [][]string
	for _, inv := range runner.Invocations() {
		if inv.Dir != "/repo" {
			t.Fatalf("expected commands to run in /repo, got %q", inv.Dir)
		}
		got = append(got, inv.Args)
	}
	want := [][]string{
		{"add", "--", "chapters/ch05", ".studyflow_state.json"},
		{"commit", "-m", "Chapter 05: Strings (logs + exercises)"},
		{"push"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestCommitNothingToCommit(t *testing.T) {
	runner := &testsupport.RecordingRunner{Handler: func(services.Invocation) (services.Result, error) {
		return services.Result{ExitCode: 1, Stdout: "On branch main\nnothing to commit, working tree clean\n"}, nil
	}}
	client, err := git.New("git", "", git.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Commit(context.Background(), "msg"); !errors.Is(err, git.ErrNothingToCommit) {
		t.Fatalf("expected ErrNothingToCommit, got %v", err)
	}
}

func TestCommitOtherFailure(t *testing.T) {
	runner := &testsupport.RecordingRunner{Handler: func(services.Invocation) (services.Result, error) {
		return services.Result{ExitCode: 128, Stderr: "fatal: unable to auto-detect email address"}, nil
	}}
	client, err := git.New("git", "", git.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Commit(context.Background(), "msg")
	if errors.Is(err, git.ErrNothingToCommit) || !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestStageWithoutPathsIsNoop(t *testing.T) {
	runner := &testsupport.RecordingRunner{}
	client, err := git.New("git", "", git.WithRunner(runner))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Stage(context.Background()); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if len(runner.Calls) != 0 {
		t.Fatalf("expected no git call, got %v", runner.Commands())
	}
}
