package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"studyflow/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted at a fresh study repository fixture: a
// temp directory with a .git directory and a placeholder reference document.
// Paths are absolute, mirroring what config.Load returns.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	repo := filepath.Join(base, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir repo: %v", err)
	}

	cfgVal := config.Default()
	cfgVal.Paths.RepoRoot = repo
	cfgVal.Paths.ReferenceDocument = filepath.Join(repo, "book", "reference.pdf")
	cfgVal.Paths.ChaptersDir = filepath.Join(repo, "chapters")
	cfgVal.Paths.StateFile = filepath.Join(repo, ".studyflow_state.json")
	cfgVal.Paths.RegistryFile = filepath.Join(repo, ".studyflow_chapters.json")
	cfgVal.Paths.LockFile = filepath.Join(repo, ".git", "studyflow.lock")
	WriteText(t, cfgVal.Paths.ReferenceDocument, "%PDF-1.4 placeholder\n")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithoutGitDir removes the repository marker from the fixture.
func WithoutGitDir() ConfigOption {
	return func(b *configBuilder) {
		if err := os.RemoveAll(filepath.Join(b.cfg.Paths.RepoRoot, ".git")); err != nil {
			b.t.Fatalf("remove .git: %v", err)
		}
	}
}

// WithoutReferenceDocument removes the placeholder reference document.
func WithoutReferenceDocument() ConfigOption {
	return func(b *configBuilder) {
		if err := os.Remove(b.cfg.Paths.ReferenceDocument); err != nil {
			b.t.Fatalf("remove reference document: %v", err)
		}
	}
}

// WithMarkers overrides the transcript marker lines.
func WithMarkers(start, end string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Session.StartMarker = start
		b.cfg.Session.EndMarker = end
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, every configured tool is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			tools := b.cfg.Tools
			names = []string{tools.Pdftotext, tools.Tmux, tools.Script, tools.Pager, tools.Shell, tools.Git}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the temp directory holding the repository fixture.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.RepoRoot)
}
