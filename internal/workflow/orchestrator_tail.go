package workflow

import (
	"context"

	"studyflow/internal/artifacts"
	"studyflow/internal/transcript"
)

// TranscriptTail reads the cleaned session transcript of chapter (0 means
// the current chapter) without touching any record.
func (o *Orchestrator) TranscriptTail(ctx context.Context, chapter int, opts transcript.TailOptions) (int, transcript.TailResult, error) {
	st, err := o.store.Load()
	if err != nil {
		return 0, transcript.TailResult{}, err
	}
	ch := st.ResolveChapter(chapter)
	if err := artifacts.ValidateChapter(ch); err != nil {
		return 0, transcript.TailResult{}, err
	}
	result, err := o.sanitizer.Tail(ctx, o.layout.TranscriptPath(ch), opts)
	return ch, result, err
}
