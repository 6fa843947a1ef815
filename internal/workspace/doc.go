// Package workspace builds and attaches the per-chapter tmux workspace.
//
// Resolving a session is a small state machine. If no session exists under
// the chapter's base name the launcher builds one. If it does exist the user
// chooses to attach to it as-is, kill and rebuild it, or build a second one
// under the first free numeric suffix (name-2, name-3, ...). Every choice
// except attach ends in Launch.
package workspace
