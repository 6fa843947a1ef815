package preflight

import (
	"context"
	"os"
	"strings"

	"studyflow/internal/config"
	"studyflow/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Pages is the reference document's page count; zero when unknown or
	// when the check is not about the reference document.
	Pages int
}

// RunAll executes every preflight check for the given config, including the
// directory checks that only matter once chapters exist.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := Environment(cfg)
	results = append(results, CheckDirectoryAccess("Repository root", cfg.Paths.RepoRoot))
	if _, err := os.Stat(cfg.Paths.ChaptersDir); err == nil {
		results = append(results, CheckDirectoryAccess("Chapters directory", cfg.Paths.ChaptersDir))
	}
	return results
}

// Environment runs the checks every workflow command depends on.
func Environment(cfg *config.Config) []Result {
	return []Result{
		CheckRepoMarker(cfg.Paths.RepoRoot),
		CheckReferenceDocument(cfg.Paths.ReferenceDocument),
	}
}

// Require runs the environment checks and converts failures into a single
// ErrEnvironment error. On success it returns the reference document's page
// count, zero when the document could not be parsed.
func Require(ctx context.Context, cfg *config.Config) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var failed []string
	pages := 0
	for _, r := range Environment(cfg) {
		if !r.Passed {
			failed = append(failed, r.Name+": "+r.Detail)
		}
		pages = max(pages, r.Pages)
	}
	if len(failed) > 0 {
		return 0, services.Wrap(services.ErrEnvironment, "preflight", "", strings.Join(failed, "; "), nil)
	}
	return pages, nil
}
