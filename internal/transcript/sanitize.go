package transcript

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"studyflow/internal/fileutil"
	"studyflow/internal/logging"
	"studyflow/internal/services"
)

// DefaultMarkers are the banner lines util-linux script writes around a session.
var DefaultMarkers = []string{"Script started", "Script done"}

var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// Sanitizer converts raw shell transcripts into clean output text.
type Sanitizer struct {
	markers []string
	logger  *slog.Logger
}

// NewSanitizer builds a sanitizer that drops lines beginning with any of
// markers. Empty markers are ignored; no markers means DefaultMarkers.
func NewSanitizer(logger *slog.Logger, markers ...string) *Sanitizer {
	kept := make([]string, 0, len(markers))
	for _, m := range markers {
		if m = strings.TrimSpace(m); m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, DefaultMarkers...)
	}
	return &Sanitizer{markers: kept, logger: logging.NewComponentLogger(logger, "transcript")}
}

// Sanitize cleans raw with the default markers.
func Sanitize(raw string) string {
	return NewSanitizer(nil).Sanitize(raw)
}

// Sanitize strips terminal escape sequences and marker lines, trims trailing
// whitespace from every line and blank lines from both ends, and terminates
// the result with exactly one newline.
func (s *Sanitizer) Sanitize(raw string) string {
	lines := lineBreak.Split(raw, -1)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = ansi.Strip(line)
		if s.isMarker(line) {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\f\v"))
	}

	start, end := 0, len(out)
	for start < end && out[start] == "" {
		start++
	}
	for end > start && out[end-1] == "" {
		end--
	}
	return strings.Join(out[start:end], "\n") + "\n"
}

func (s *Sanitizer) isMarker(line string) bool {
	for _, m := range s.markers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

// SanitizeFile regenerates outputPath from the transcript at transcriptPath.
// The output is replaced wholesale on every call.
func (s *Sanitizer) SanitizeFile(transcriptPath, outputPath string) error {
	raw, err := os.ReadFile(transcriptPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrMissingArtifact, "transcript", "sanitize",
				fmt.Sprintf("no session transcript at %s; run `studyflow start` for this chapter and work in the logged shell first", transcriptPath), nil)
		}
		return fmt.Errorf("read transcript: %w", err)
	}

	cleaned := s.Sanitize(string(raw))
	if err := fileutil.WriteFileAtomic(outputPath, []byte(cleaned), 0o644); err != nil {
		return fmt.Errorf("write sanitized transcript: %w", err)
	}
	s.logger.Info("sanitized transcript",
		logging.String("transcript", transcriptPath),
		logging.String("output", outputPath),
		logging.Int("raw_bytes", len(raw)),
		logging.Int("output_bytes", len(cleaned)))
	return nil
}
