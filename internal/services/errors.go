package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEnvironment marks missing repository markers or reference documents.
	ErrEnvironment = errors.New("environment error")
	// ErrExtraction marks an extraction run that produced no usable text.
	ErrExtraction = errors.New("extraction error")
	// ErrMissingArtifact marks a chapter artifact that must exist but does not.
	ErrMissingArtifact = errors.New("missing artifact")
	// ErrVCS marks version-control failures that abort finalization.
	ErrVCS = errors.New("version control error")
	// ErrInput marks unusable answers to interactive prompts.
	ErrInput = errors.New("input error")
	// ErrConfiguration marks invalid persisted records or settings.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks an external binary that failed to run or exited non-zero.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
