package workflow

import (
	"context"

	"studyflow/internal/artifacts"
	"studyflow/internal/logging"
	"studyflow/internal/preflight"
	"studyflow/internal/services"
	"studyflow/internal/workspace"
)

// StartResult describes what Start did.
type StartResult struct {
	Chapter int
	Session workspace.Resolution
}

// Start opens the workspace for chapter (0 means the current chapter). The
// state record is persisted before the blocking attach so an interrupted
// session still leaves the pointer on this chapter.
func (o *Orchestrator) Start(ctx context.Context, chapter int) (StartResult, error) {
	pages, err := preflight.Require(ctx, o.cfg)
	if err != nil {
		return StartResult{}, err
	}
	o.registry.SetPageLimit(pages)
	st, err := o.store.Load()
	if err != nil {
		return StartResult{}, err
	}
	chapter = st.ResolveChapter(chapter)
	if err := artifacts.ValidateChapter(chapter); err != nil {
		return StartResult{}, err
	}
	ctx = services.WithChapter(ctx, chapter)
	logger := logging.WithContext(ctx, o.logger)

	res, err := o.launcher.ResolveSession(ctx, chapter)
	if err != nil {
		return StartResult{}, err
	}
	ctx = services.WithSession(ctx, res.Name)
	result := StartResult{Chapter: chapter, Session: res}

	if !res.Outcome.NeedsLaunch() {
		logger.Info("attaching to existing session", logging.Session(res.Name))
		return result, o.launcher.Attach(ctx, res.Name)
	}

	st.CurrentChapter = chapter
	st.LastSession = res.Name
	if err := o.store.Save(st); err != nil {
		return StartResult{}, err
	}
	logger.Info("starting chapter",
		logging.Session(res.Name),
		logging.String("outcome", res.Outcome.String()))

	return result, o.launcher.Launch(ctx, chapter, res.Name)
}
