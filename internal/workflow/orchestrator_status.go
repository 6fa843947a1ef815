package workflow

import (
	"context"
	"sort"

	"studyflow/internal/artifacts"
	"studyflow/internal/chapters"
	"studyflow/internal/logging"
)

// ChapterStatus summarizes one chapter for the status table.
type ChapterStatus struct {
	Chapter   int
	Mapping   chapters.Mapping
	Mapped    bool
	Artifacts artifacts.Presence
	Current   bool
}

// StatusReport is a read-only snapshot of the study repository.
type StatusReport struct {
	CurrentChapter int
	LastSession    string
	SessionRunning bool
	Chapters       []ChapterStatus
}

// Status reports the current pointer and every known chapter. It never
// prompts and never writes.
func (o *Orchestrator) Status(ctx context.Context) (StatusReport, error) {
	st, err := o.store.Load()
	if err != nil {
		return StatusReport{}, err
	}
	entries, err := o.registry.List()
	if err != nil {
		return StatusReport{}, err
	}

	report := StatusReport{CurrentChapter: st.CurrentChapter, LastSession: st.LastSession}
	if st.LastSession != "" {
		running, err := o.mux.HasSession(ctx, st.LastSession)
		if err != nil {
			o.logger.Debug("session lookup failed", logging.Session(st.LastSession), logging.Error(err))
		}
		report.SessionRunning = running
	}

	seen := make(map[int]bool, len(entries)+1)
	for _, e := range entries {
		cs, err := o.chapterStatus(e.Chapter, e.Mapping, true, st.CurrentChapter)
		if err != nil {
			return StatusReport{}, err
		}
		report.Chapters = append(report.Chapters, cs)
		seen[e.Chapter] = true
	}
	if !seen[st.CurrentChapter] {
		cs, err := o.chapterStatus(st.CurrentChapter, chapters.Mapping{}, false, st.CurrentChapter)
		if err != nil {
			return StatusReport{}, err
		}
		report.Chapters = append(report.Chapters, cs)
		sort.Slice(report.Chapters, func(i, j int) bool {
			return report.Chapters[i].Chapter < report.Chapters[j].Chapter
		})
	}
	return report, nil
}

func (o *Orchestrator) chapterStatus(chapter int, m chapters.Mapping, mapped bool, current int) (ChapterStatus, error) {
	presence, err := o.layout.Inspect(chapter)
	if err != nil {
		return ChapterStatus{}, err
	}
	return ChapterStatus{
		Chapter:   chapter,
		Mapping:   m,
		Mapped:    mapped,
		Artifacts: presence,
		Current:   chapter == current,
	}, nil
}
