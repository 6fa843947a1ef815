// Package workflow is the chapter state machine behind the CLI.
//
// Start resolves the chapter (explicit argument or the persisted pointer),
// settles any tmux session conflict, persists the pointer, and blocks inside
// the workspace. Done maps the chapter if needed, regenerates output.txt from
// the session transcript, commits and pushes, then advances the pointer by
// exactly one. Status is a read-only view used by the status command.
//
// Every failure is fatal and nothing is retried or rolled back: the user fixes
// the cause and runs the command again.
package workflow
