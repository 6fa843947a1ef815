package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"studyflow/internal/config"
	"studyflow/internal/deps"
	"studyflow/internal/document"
)

// CheckRepoMarker verifies that root is the top of a git working tree with a
// .git directory (the state lock lives inside it).
func CheckRepoMarker(root string) Result {
	const name = "Git repository"

	marker := filepath.Join(root, ".git")
	info, err := os.Stat(marker)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s is not a git repository root (no .git); run studyflow from the study repo", root)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", marker, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is a file; worktrees and submodules are not supported", marker)}
	}
	return Result{Name: name, Passed: true, Detail: root}
}

// CheckReferenceDocument verifies that the reference document exists and is
// a non-empty regular file. An unreadable page count is reported but does not
// fail the check; the extraction tool is the final judge.
func CheckReferenceDocument(path string) Result {
	const name = "Reference document"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a non-empty file)", path)}
	}
	pages, err := document.PageCount(path)
	if err != nil {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (page count unavailable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d pages)", path, pages), Pages: pages}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries named in the config. The
// doctor command and the status table share this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	tools := cfg.Tools
	requirements := []deps.Requirement{
		{
			Name:        "pdftotext",
			Command:     tools.Pdftotext,
			Description: "Required to extract chapter text (poppler-utils)",
		},
		{
			Name:        "tmux",
			Command:     tools.Tmux,
			Description: "Required for the chapter workspace",
		},
		{
			Name:        "script",
			Command:     tools.Script,
			Description: "Required to record the session transcript (util-linux)",
		},
		{
			Name:        "pager",
			Command:     tools.Pager,
			Description: "Shows chapter text in the reader pane",
		},
		{
			Name:        "shell",
			Command:     tools.Shell,
			Description: "Runs inside the logged pane",
		},
		{
			Name:        "git",
			Command:     tools.Git,
			Description: "Required to commit and push finished chapters",
		},
	}
	return deps.CheckBinaries(requirements)
}
