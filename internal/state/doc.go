// Package state persists the workflow pointer: the chapter currently being
// studied and the last tmux session opened for it.
//
// The record is read fresh on every invocation and written immediately after
// each mutation; nothing is cached in memory between commands. The JSON file
// is indented and committed alongside chapter artifacts so it stays
// human-diffable.
package state
