package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"studyflow/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// ProjectConfigName is the repository-local configuration file name.
const ProjectConfigName = "studyflow.toml"

// Paths locates the repository root, the reference document, and the
// persisted records. Relative values resolve against RepoRoot.
type Paths struct {
	RepoRoot          string `toml:"repo_root"`
	ReferenceDocument string `toml:"reference_document"`
	ChaptersDir       string `toml:"chapters_dir"`
	StateFile         string `toml:"state_file"`
	RegistryFile      string `toml:"registry_file"`
	LockFile          string `toml:"lock_file"`
}

// Tools names the external binaries studyflow shells out to.
type Tools struct {
	Pdftotext string `toml:"pdftotext"`
	Tmux      string `toml:"tmux"`
	Script    string `toml:"script"`
	Pager     string `toml:"pager"`
	Shell     string `toml:"shell"`
	Git       string `toml:"git"`

	// PdftotextLayout keeps the physical page layout in extracted text.
	PdftotextLayout bool `toml:"pdftotext_layout"`
}

// Session contains terminal session naming and transcript marker settings.
type Session struct {
	Prefix string `toml:"prefix"`
	// MaxSuffix bounds the numeric suffix tried when a session name is taken.
	MaxSuffix   int    `toml:"max_suffix"`
	StartMarker string `toml:"start_marker"`
	EndMarker   string `toml:"end_marker"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for studyflow.
//
// Configuration sections by subsystem:
//   - Paths: repository root, reference document, chapter tree, state records
//   - Tools: pdftotext, tmux, script, pager, shell, and git binaries
//   - Session: tmux session naming and transcript marker lines
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Session Session `toml:"session"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/studyflow/config.toml")
}

// Load locates, parses, and validates a configuration file. It returns the
// config with every path absolute, the file path that was consulted, and
// whether that file existed. A missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath applies the lookup order: an explicit path, then
// ./studyflow.toml, then the per-user default. Without an explicit path the
// per-user default is reported when nothing exists.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := isFile(expanded)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, exists, nil
	}

	projectPath, err := filepath.Abs(ProjectConfigName)
	if err != nil {
		return "", false, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{projectPath, defaultPath} {
		if ok, _ := isFile(candidate); ok {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// expandPath resolves a leading ~ to the home directory and makes the result
// absolute against the working directory.
func expandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value[1:], "/"))
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
