package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"studyflow/internal/fileutil"
	"studyflow/internal/services"
)

const (
	textFileName       = "chapter.txt"
	transcriptFileName = "session.log"
	outputFileName     = "output.txt"
	sourceDirName      = "src"
)

// Layout resolves per-chapter artifact paths under a chapters directory.
type Layout struct {
	root string
}

// NewLayout returns a layout rooted at chaptersDir.
func NewLayout(chaptersDir string) Layout {
	return Layout{root: chaptersDir}
}

// Root returns the chapters directory.
func (l Layout) Root() string { return l.root }

// DirName returns the zero-padded directory name for a chapter (ch05).
func DirName(chapter int) string {
	return fmt.Sprintf("ch%02d", chapter)
}

// ValidateChapter rejects chapter numbers below 1.
func ValidateChapter(chapter int) error {
	if chapter < 1 {
		return services.Wrap(services.ErrInput, "artifacts", "", fmt.Sprintf("chapter must be a positive integer, got %d", chapter), nil)
	}
	return nil
}

func (l Layout) ChapterDir(chapter int) string {
	return filepath.Join(l.root, DirName(chapter))
}

func (l Layout) SourceDir(chapter int) string {
	return filepath.Join(l.ChapterDir(chapter), sourceDirName)
}

// TextPath is the extracted chapter text (write-once cache).
func (l Layout) TextPath(chapter int) string {
	return filepath.Join(l.ChapterDir(chapter), textFileName)
}

// TranscriptPath is the raw shell transcript written by the logging shell.
func (l Layout) TranscriptPath(chapter int) string {
	return filepath.Join(l.ChapterDir(chapter), transcriptFileName)
}

// OutputPath is the sanitized transcript regenerated on every finalize.
func (l Layout) OutputPath(chapter int) string {
	return filepath.Join(l.ChapterDir(chapter), outputFileName)
}

// EnsureDirs creates the chapter directory and its src/ directory.
func (l Layout) EnsureDirs(chapter int) error {
	if err := ValidateChapter(chapter); err != nil {
		return err
	}
	for _, dir := range []string{l.ChapterDir(chapter), l.SourceDir(chapter)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chapter directory %q: %w", dir, err)
		}
	}
	return nil
}

// Presence reports which artifacts exist for a chapter.
type Presence struct {
	Text       bool
	Transcript bool
	Output     bool
}

// Inspect reports artifact presence. Empty files count as absent.
func (l Layout) Inspect(chapter int) (Presence, error) {
	var p Presence
	var err error
	if p.Text, err = fileutil.NonEmptyFile(l.TextPath(chapter)); err != nil {
		return Presence{}, err
	}
	if p.Transcript, err = fileutil.NonEmptyFile(l.TranscriptPath(chapter)); err != nil {
		return Presence{}, err
	}
	if p.Output, err = fileutil.NonEmptyFile(l.OutputPath(chapter)); err != nil {
		return Presence{}, err
	}
	return p, nil
}
