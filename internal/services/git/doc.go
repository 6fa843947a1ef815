// Package git wraps the handful of git commands needed to publish a
// finished chapter: add, commit, and push.
package git
