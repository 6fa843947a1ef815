package extract

import (
	"context"
	"fmt"
	"log/slog"

	"studyflow/internal/artifacts"
	"studyflow/internal/chapters"
	"studyflow/internal/fileutil"
	"studyflow/internal/logging"
	"studyflow/internal/services"
	"studyflow/internal/services/pdftotext"
)

// MappingSource resolves a chapter's page range, prompting when needed.
type MappingSource interface {
	GetOrCreate(ctx context.Context, chapter int) (chapters.Mapping, error)
	Path() string
}

// Extractor produces the per-chapter text artifact, reusing it when present.
type Extractor struct {
	layout   artifacts.Layout
	document string
	registry MappingSource
	tool     pdftotext.Tool
	logger   *slog.Logger
}

// New constructs an extractor over the reference document.
func New(layout artifacts.Layout, document string, registry MappingSource, tool pdftotext.Tool, logger *slog.Logger) *Extractor {
	return &Extractor{
		layout:   layout,
		document: document,
		registry: registry,
		tool:     tool,
		logger:   logging.NewComponentLogger(logger, "extract"),
	}
}

// EnsureExtracted returns the path of the chapter's text artifact, running
// the extraction tool only when no non-empty artifact exists yet.
func (e *Extractor) EnsureExtracted(ctx context.Context, chapter int) (string, error) {
	if err := e.layout.EnsureDirs(chapter); err != nil {
		return "", err
	}
	target := e.layout.TextPath(chapter)

	cached, err := fileutil.NonEmptyFile(target)
	if err != nil {
		return "", fmt.Errorf("inspect chapter text: %w", err)
	}
	if cached {
		e.logger.Debug("chapter text cached", logging.Chapter(chapter), logging.String("path", target))
		return target, nil
	}

	mapping, err := e.registry.GetOrCreate(ctx, chapter)
	if err != nil {
		return "", err
	}

	e.logger.Info("extracting chapter text",
		logging.Chapter(chapter),
		logging.Int("start_page", mapping.StartPage),
		logging.Int("end_page", mapping.EndPage),
		logging.String("path", target))

	if err := e.tool.Extract(ctx, e.document, mapping.StartPage, mapping.EndPage, target); err != nil {
		return "", services.Wrap(services.ErrExtraction, "extract", "run",
			fmt.Sprintf("chapter %d pages %d-%d", chapter, mapping.StartPage, mapping.EndPage), err)
	}

	produced, err := fileutil.NonEmptyFile(target)
	if err != nil {
		return "", fmt.Errorf("inspect chapter text: %w", err)
	}
	if !produced {
		return "", services.Wrap(services.ErrExtraction, "extract", "verify",
			fmt.Sprintf("extraction produced no text for chapter %d (pages %d-%d); check the page range in %s",
				chapter, mapping.StartPage, mapping.EndPage, e.registry.Path()), nil)
	}
	return target, nil
}
