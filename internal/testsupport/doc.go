// Package testsupport holds fixtures shared by package tests: a study
// repository config rooted in a temp directory, a scripted prompter, and a
// runner that records external command invocations.
package testsupport
