// Package services defines shared utilities consumed by the workflow
// components and the external tool integrations beneath it.
//
// Key responsibilities:
//   - Context helpers that stamp chapter numbers, session names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (environment, extraction, missing artifact, version control, input).
//   - The Runner abstraction that makes every external binary invocation
//     (pdftotext, tmux, git) recordable in tests.
package services
