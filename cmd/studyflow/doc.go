// Package main hosts the studyflow CLI entrypoint and command graph.
//
// The Cobra command tree maps start, done, status, doctor, and config onto
// the workflow orchestrator and the preflight checks. It owns configuration
// resolution (the --config flag, a repository-local studyflow.toml, or the
// user config), log setup, and the per-invocation correlation id; subcommands
// stay thin and print results. Fatal errors surface from main as a single
// "ERROR: ..." line on stderr with exit status 1.
package main
