// Package vcs commits a finished chapter (its artifact directory plus the
// state and chapter records) and pushes it upstream.
package vcs
