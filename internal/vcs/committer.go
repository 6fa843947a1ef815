package vcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"studyflow/internal/artifacts"
	"studyflow/internal/config"
	"studyflow/internal/fileutil"
	"studyflow/internal/logging"
	"studyflow/internal/services"
	"studyflow/internal/services/git"
)

// Committer publishes a chapter's artifacts and the workflow records.
type Committer struct {
	client   git.Client
	repoRoot string
	layout   artifacts.Layout
	records  []string
	logger   *slog.Logger
}

// NewCommitter constructs a committer for the configured repository.
func NewCommitter(cfg *config.Config, client git.Client, logger *slog.Logger) *Committer {
	return &Committer{
		client:   client,
		repoRoot: cfg.Paths.RepoRoot,
		layout:   artifacts.NewLayout(cfg.Paths.ChaptersDir),
		records:  []string{cfg.Paths.StateFile, cfg.Paths.RegistryFile},
		logger:   logging.NewComponentLogger(logger, "vcs"),
	}
}

// CommitMessage formats the commit subject for a chapter.
func CommitMessage(chapter int, title string) string {
	return fmt.Sprintf("Chapter %02d: %s (logs + exercises)", chapter, title)
}

// StagePaths lists what a chapter commit includes, relative to the repository
// root. Records not written yet are left out since git add rejects them.
func (c *Committer) StagePaths(chapter int) ([]string, error) {
	paths := []string{c.layout.ChapterDir(chapter)}
	for _, record := range c.records {
		exists, err := fileutil.Exists(record)
		if err != nil {
			return nil, err
		}
		if !exists {
			c.logger.Debug("record not written yet; not staged", logging.String("path", record))
			continue
		}
		paths = append(paths, record)
	}
	for i, p := range paths {
		if rel, err := filepath.Rel(c.repoRoot, p); err == nil {
			paths[i] = rel
		}
	}
	return paths, nil
}

// CommitAndPush stages, commits, and pushes. An empty commit is logged and
// the push still runs; every other failure aborts.
func (c *Committer) CommitAndPush(ctx context.Context, chapter int, title string) error {
	paths, err := c.StagePaths(chapter)
	if err != nil {
		return services.Wrap(services.ErrVCS, "vcs", "stage", fmt.Sprintf("chapter %d", chapter), err)
	}
	if err := c.client.Stage(ctx, paths...); err != nil {
		return services.Wrap(services.ErrVCS, "vcs", "stage", fmt.Sprintf("chapter %d", chapter), err)
	}

	message := CommitMessage(chapter, title)
	if err := c.client.Commit(ctx, message); err != nil {
		if !errors.Is(err, git.ErrNothingToCommit) {
			return services.Wrap(services.ErrVCS, "vcs", "commit", fmt.Sprintf("chapter %d", chapter), err)
		}
		logging.WarnWithContext(c.logger, "nothing to commit", "vcs_commit_noop",
			logging.Chapter(chapter),
			logging.String(logging.FieldErrorHint, "the chapter artifacts are unchanged since the last commit"),
			logging.String(logging.FieldImpact, "push still attempted"))
	} else {
		c.logger.Info("committed chapter", logging.Chapter(chapter), logging.String("message", message))
	}

	if err := c.client.Push(ctx); err != nil {
		return services.Wrap(services.ErrVCS, "vcs", "push", "push failed; the commit is kept locally, push manually once the remote is reachable", err)
	}
	c.logger.Info("pushed chapter", logging.Chapter(chapter))
	return nil
}
