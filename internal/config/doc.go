// Package config loads, normalizes, and validates studyflow configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves every repository-relative path
// against the repository root. The Config type centralizes the external tool
// binaries, persisted record locations, and session naming knobs so the
// workflow packages never guess at paths on their own.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
