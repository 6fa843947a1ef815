package services

import "context"

type contextKey string

const (
	chapterKey contextKey = "chapter"
	sessionKey contextKey = "session"
)

// WithChapter annotates context with the chapter being worked on.
func WithChapter(ctx context.Context, chapter int) context.Context {
	if chapter < 1 {
		return ctx
	}
	return context.WithValue(ctx, chapterKey, chapter)
}

// ChapterFromContext extracts the chapter number if present.
func ChapterFromContext(ctx context.Context) (int, bool) {
	if v, ok := ctx.Value(chapterKey).(int); ok && v > 0 {
		return v, true
	}
	return 0, false
}

// WithSession annotates context with the tmux session name.
func WithSession(ctx context.Context, session string) context.Context {
	if session == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the session name if present.
func SessionFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(sessionKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
