// Package tmux wraps the tmux CLI calls used to build and attach a chapter
// workspace. Exact-match targets ("=name") are used wherever tmux would
// otherwise accept a session-name prefix.
package tmux
