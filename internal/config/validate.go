package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.StateFile == c.Paths.RegistryFile {
		return errors.New("paths.state_file and paths.registry_file must differ")
	}
	if strings.TrimSpace(c.Paths.ReferenceDocument) == "" {
		return errors.New("paths.reference_document must be set")
	}
	return nil
}

func (c *Config) validateSession() error {
	if strings.ContainsAny(c.Session.Prefix, ".: \t") {
		return fmt.Errorf("session.prefix %q must not contain '.', ':', or whitespace (tmux target separators)", c.Session.Prefix)
	}
	if c.Session.MaxSuffix < 2 {
		return errors.New("session.max_suffix must be at least 2")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q (expected debug, info, warn, or error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
}
