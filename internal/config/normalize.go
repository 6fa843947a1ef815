package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeSession()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.RepoRoot) == "" {
		c.Paths.RepoRoot = defaultRepoRoot
	}
	if c.Paths.RepoRoot, err = expandPath(strings.TrimSpace(c.Paths.RepoRoot)); err != nil {
		return fmt.Errorf("paths.repo_root: %w", err)
	}

	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.reference_document", &c.Paths.ReferenceDocument, defaultReferenceDocument},
		{"paths.chapters_dir", &c.Paths.ChaptersDir, defaultChaptersDir},
		{"paths.state_file", &c.Paths.StateFile, defaultStateFile},
		{"paths.registry_file", &c.Paths.RegistryFile, defaultRegistryFile},
		{"paths.lock_file", &c.Paths.LockFile, defaultLockFile},
	}
	for _, field := range fields {
		resolved, err := c.resolveRepoPath(*field.value, field.fallback)
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = resolved
	}
	return nil
}

func (c *Config) resolveRepoPath(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	if strings.HasPrefix(value, "~") {
		return expandPath(value)
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value), nil
	}
	return filepath.Join(c.Paths.RepoRoot, value), nil
}

func (c *Config) normalizeTools() {
	c.Tools.Pdftotext = trimOrDefault(c.Tools.Pdftotext, defaultPdftotextBinary)
	c.Tools.Tmux = trimOrDefault(c.Tools.Tmux, defaultTmuxBinary)
	c.Tools.Script = trimOrDefault(c.Tools.Script, defaultScriptBinary)
	c.Tools.Pager = trimOrDefault(c.Tools.Pager, defaultPagerBinary)
	c.Tools.Shell = trimOrDefault(c.Tools.Shell, defaultShellBinary)
	c.Tools.Git = trimOrDefault(c.Tools.Git, defaultGitBinary)
}

func (c *Config) normalizeSession() {
	c.Session.Prefix = trimOrDefault(c.Session.Prefix, defaultSessionPrefix)
	if c.Session.MaxSuffix == 0 {
		c.Session.MaxSuffix = defaultSessionMaxSuffix
	}
	c.Session.StartMarker = trimOrDefault(c.Session.StartMarker, defaultStartMarker)
	c.Session.EndMarker = trimOrDefault(c.Session.EndMarker, defaultEndMarker)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(trimOrDefault(c.Logging.Format, defaultLogFormat))
	c.Logging.Level = strings.ToLower(trimOrDefault(c.Logging.Level, defaultLogLevel))
}

func trimOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
