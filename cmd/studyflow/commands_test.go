package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"studyflow/internal/artifacts"
	"studyflow/internal/config"
	"studyflow/internal/deps"
	"studyflow/internal/services"
	"studyflow/internal/testsupport"
	"studyflow/internal/workflow"
)

type cliEnv struct {
	cfg        *config.Config
	configPath string
	git        *testsupport.FakeGit
	mux        *testsupport.FakeMultiplexer
}

func setupCLIEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfg := testsupport.NewConfig(t, opts...)
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	configPath := filepath.Join(testsupport.BaseDir(cfg), "studyflow.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliEnv{
		cfg:        cfg,
		configPath: configPath,
		git:        &testsupport.FakeGit{},
		mux:        testsupport.NewFakeMultiplexer(),
	}
}

func (e *cliEnv) run(t *testing.T, answers []string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(
		workflow.WithPrompter(testsupport.NewScriptedPrompter(answers...)),
		workflow.WithGit(e.git),
		workflow.WithMultiplexer(e.mux),
	)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestParseChapterArg(t *testing.T) {
	if got, err := parseChapterArg(nil); err != nil || got != 0 {
		t.Fatalf("expected 0 for no args, got %d %v", got, err)
	}
	if got, err := parseChapterArg([]string{" 12 "}); err != nil || got != 12 {
		t.Fatalf("expected 12, got %d %v", got, err)
	}
	for _, bad := range []string{"0", "-3", "five", ""} {
		if _, err := parseChapterArg([]string{bad}); !errors.Is(err, services.ErrInput) {
			t.Fatalf("expected input error for %q, got %v", bad, err)
		}
	}
}

func TestStartRejectsInvalidChapter(t *testing.T) {
	env := setupCLIEnv(t)
	_, err := env.run(t, nil, "start", "zero")
	if !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
	if len(env.mux.Recorded()) != 0 {
		t.Fatalf("no session work expected, got %v", env.mux.Recorded())
	}
}

func TestStartRejectsExtraArgs(t *testing.T) {
	env := setupCLIEnv(t)
	if _, err := env.run(t, nil, "start", "1", "2"); err == nil {
		t.Fatal("expected error for two chapter arguments")
	}
}

func TestStartPassesLayoutFlagToPdftotext(t *testing.T) {
	env := setupCLIEnv(t)
	stub := filepath.Join(testsupport.BaseDir(env.cfg), "pdftotext-stub")
	testsupport.WriteText(t, stub, "#!/bin/sh\nfor out; do :; done\necho \"$@\" > \"$out\"\n")
	if err := os.Chmod(stub, 0o755); err != nil {
		t.Fatal(err)
	}
	env.cfg.Tools.Pdftotext = stub
	env.cfg.Tools.PdftotextLayout = true
	data, err := toml.Marshal(env.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	testsupport.WriteText(t, env.configPath, string(data))

	if _, err := env.run(t, []string{"3", "4", "Loops"}, "start", "2"); err != nil {
		t.Fatalf("start: %v", err)
	}
	args := testsupport.ReadText(t, artifacts.NewLayout(env.cfg.Paths.ChaptersDir).TextPath(2))
	if !strings.HasPrefix(args, "-f 3 -l 4 -layout ") {
		t.Fatalf("expected layout extraction arguments, got %q", args)
	}
}

func TestDoneCommandReportsAdvance(t *testing.T) {
	env := setupCLIEnv(t)
	testsupport.WriteText(t, env.cfg.Paths.StateFile, `{"current_chapter": 5}`)
	testsupport.WriteText(t, env.cfg.Paths.RegistryFile, `{"chapters": {"5": {"start_page": 40, "end_page": 55, "title": "Variables"}}}`)
	layout := artifacts.NewLayout(env.cfg.Paths.ChaptersDir)
	testsupport.WriteText(t, layout.TranscriptPath(5), "Script started\nprint('hi')\nScript done\n")

	out, err := env.run(t, nil, "done")
	if err != nil {
		t.Fatalf("done: %v", err)
	}
	for _, want := range []string{"Done. Advanced from chapter 05 to 06.", "Next: studyflow start"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if got := testsupport.ReadText(t, layout.OutputPath(5)); got != "print('hi')\n" {
		t.Fatalf("unexpected output.txt %q", got)
	}
	if len(env.git.Messages) != 1 || env.git.Messages[0] != "Chapter 05: Variables (logs + exercises)" {
		t.Fatalf("unexpected commits %v", env.git.Messages)
	}
}

func TestDoneCommandMissingEnvironment(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithoutGitDir())
	_, err := env.run(t, nil, "done", "3")
	if !errors.Is(err, services.ErrEnvironment) {
		t.Fatalf("expected environment error, got %v", err)
	}
}

func TestStatusCommandRendersTable(t *testing.T) {
	env := setupCLIEnv(t)
	testsupport.WriteText(t, env.cfg.Paths.StateFile, `{"current_chapter": 2, "last_session": "studyflow-ch02"}`)
	testsupport.WriteText(t, env.cfg.Paths.RegistryFile, `{"chapters": {"1": {"start_page": 1, "end_page": 9, "title": "Setup"}}}`)

	out, err := env.run(t, nil, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"Current chapter:", "02", "studyflow-ch02 (not running)", "Setup", "1-9", "* 02", "(not mapped)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTailCommandPrintsCleanedLines(t *testing.T) {
	env := setupCLIEnv(t)
	testsupport.WriteText(t, env.cfg.Paths.StateFile, `{"current_chapter": 4}`)
	layout := artifacts.NewLayout(env.cfg.Paths.ChaptersDir)
	testsupport.WriteText(t, layout.TranscriptPath(4), "Script started\r\n\x1b[1m$\x1b[0m python3 ex4.py\r\nThere are 100 cars available.\r\n")

	out, err := env.run(t, nil, "tail", "--lines", "1")
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if out != "There are 100 cars available.\n" {
		t.Fatalf("unexpected tail output %q", out)
	}
}

func TestTailCommandWithoutTranscript(t *testing.T) {
	env := setupCLIEnv(t)
	out, err := env.run(t, nil, "tail", "7")
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if !strings.Contains(out, "No transcript lines yet") {
		t.Fatalf("unexpected tail output %q", out)
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	env := setupCLIEnv(t, testsupport.WithStubbedBinaries())
	env.cfg.Tools.Pdftotext = "studyflow-missing-pdftotext"
	data, err := toml.Marshal(env.cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(env.configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := env.run(t, nil, "doctor")
	if err == nil || !strings.Contains(err.Error(), "1 check(s) failed") {
		t.Fatalf("expected one failed check, got %v", err)
	}
	for _, want := range []string{"== Dependencies ==", `binary "studyflow-missing-pdftotext" not found`, "Missing dependencies"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "studyflow.toml")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out.String(), target) {
		t.Fatalf("expected target in output, got %q", out.String())
	}
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample should load cleanly: %v", err)
	}

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestConfigValidateRejectsBadOverride(t *testing.T) {
	env := setupCLIEnv(t)
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", env.configPath, "--log-level", "chatty", "config", "validate"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected invalid log level override to fail")
	}
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Current chapter", statusInfo, "05", false)
	want := "  Current chapter:     [INFO] 05"
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("tmux", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green wrapping, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Requirement: deps.Requirement{Name: "pdftotext", Description: "Required to extract chapter text"}},
		{Requirement: deps.Requirement{Name: "tmux"}, Available: true, Path: "/usr/bin/tmux"},
		{Requirement: deps.Requirement{Name: "pager", Optional: true}, Detail: `binary "most" not found`},
	}
	lines := dependencyLines(statuses, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[ERROR] not available; required to extract chapter text") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "[OK] Ready (/usr/bin/tmux)") {
		t.Fatalf("unexpected second line %q", lines[1])
	}
	if !strings.Contains(lines[2], "[WARN]") {
		t.Fatalf("optional dependency should warn, got %q", lines[2])
	}
	if !strings.Contains(lines[3], "Missing dependencies") || !strings.Contains(lines[3], "pdftotext") || strings.Contains(lines[3], "pager") {
		t.Fatalf("unexpected summary %q", lines[3])
	}
}

func TestReportSeparatesSections(t *testing.T) {
	rep := &report{}
	rep.section("Configuration")
	rep.line("Config", statusInfo, "defaults")
	rep.section("Repository")
	var buf bytes.Buffer
	rep.writeTo(&buf)
	want := "== Configuration ==\n-------------------\n  Config:              [INFO] defaults\n\n== Repository ==\n----------------\n"
	if buf.String() != want {
		t.Fatalf("report mismatch\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	got := renderTable(tableSpec{
		title:   "Chapters",
		headers: []string{"Chapter", "Title"},
		rows:    [][]string{{"01"}},
	})
	if !strings.Contains(got, "Chapters") || !strings.Contains(got, "01") {
		t.Fatalf("unexpected table:\n%s", got)
	}
	if renderTable(tableSpec{}) != "" {
		t.Fatal("expected empty output without headers")
	}
}
