package workflow

import (
	"context"

	"studyflow/internal/artifacts"
	"studyflow/internal/logging"
	"studyflow/internal/preflight"
	"studyflow/internal/services"
)

// DoneResult reports a finalized chapter.
type DoneResult struct {
	From       int
	To         int
	Title      string
	OutputPath string
}

// Done sanitizes the chapter transcript, commits and pushes the chapter, and
// advances the current chapter by one. chapter 0 means the current chapter.
// Nothing is rolled back on failure; artifacts already written stay in place.
func (o *Orchestrator) Done(ctx context.Context, chapter int) (DoneResult, error) {
	pages, err := preflight.Require(ctx, o.cfg)
	if err != nil {
		return DoneResult{}, err
	}
	o.registry.SetPageLimit(pages)
	st, err := o.store.Load()
	if err != nil {
		return DoneResult{}, err
	}
	chapter = st.ResolveChapter(chapter)
	if err := artifacts.ValidateChapter(chapter); err != nil {
		return DoneResult{}, err
	}
	ctx = services.WithChapter(ctx, chapter)
	logger := logging.WithContext(ctx, o.logger)

	mapping, err := o.registry.GetOrCreate(ctx, chapter)
	if err != nil {
		return DoneResult{}, err
	}
	if err := o.layout.EnsureDirs(chapter); err != nil {
		return DoneResult{}, err
	}

	output := o.layout.OutputPath(chapter)
	if err := o.sanitizer.SanitizeFile(o.layout.TranscriptPath(chapter), output); err != nil {
		return DoneResult{}, err
	}
	if err := o.committer.CommitAndPush(ctx, chapter, mapping.Title); err != nil {
		return DoneResult{}, err
	}

	st.CurrentChapter = chapter + 1
	if err := o.store.Save(st); err != nil {
		return DoneResult{}, err
	}
	logger.Info("chapter finished",
		logging.Int("next_chapter", st.CurrentChapter),
		logging.String("title", mapping.Title))

	return DoneResult{From: chapter, To: st.CurrentChapter, Title: mapping.Title, OutputPath: output}, nil
}
