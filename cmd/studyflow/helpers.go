package main

import (
	"fmt"
	"strconv"
	"strings"

	"studyflow/internal/artifacts"
	"studyflow/internal/services"
)

// parseChapterArg returns 0 when no chapter was given, meaning "current".
func parseChapterArg(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	raw := strings.TrimSpace(args[0])
	chapter, err := strconv.Atoi(raw)
	if err != nil || chapter < 1 {
		return 0, services.Wrap(services.ErrInput, "", "", fmt.Sprintf("chapter must be a positive integer, got %q", raw), nil)
	}
	return chapter, nil
}

func chapterLabel(chapter int) string {
	return strings.TrimPrefix(artifacts.DirName(chapter), "ch")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
