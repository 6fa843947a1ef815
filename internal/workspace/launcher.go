package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"studyflow/internal/artifacts"
	"studyflow/internal/config"
	"studyflow/internal/logging"
	"studyflow/internal/prompt"
	"studyflow/internal/services"
	"studyflow/internal/services/tmux"
)

// Outcome is the decision reached while resolving a session name.
type Outcome int

const (
	// Fresh means no session existed under the base name.
	Fresh Outcome = iota
	// AttachOnly reuses the running session without relaunching anything.
	AttachOnly
	// Recreate killed the existing session; the base name is free again.
	Recreate
	// NewSuffix picked the first free suffixed name.
	NewSuffix
)

func (o Outcome) String() string {
	switch o {
	case Fresh:
		return "fresh"
	case AttachOnly:
		return "attach"
	case Recreate:
		return "recreate"
	case NewSuffix:
		return "new"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// NeedsLaunch reports whether the session still has to be built.
func (o Outcome) NeedsLaunch() bool {
	return o != AttachOnly
}

// Resolution is the result of ResolveSession.
type Resolution struct {
	Name    string
	Outcome Outcome
}

// TextSource ensures the chapter text exists before the reader pane opens it.
type TextSource interface {
	EnsureExtracted(ctx context.Context, chapter int) (string, error)
}

// Launcher builds two-pane chapter workspaces: a pager on the chapter text
// and a transcript-logged shell in the chapter directory.
type Launcher struct {
	mux      tmux.Multiplexer
	prompter prompt.Prompter
	text     TextSource
	layout   artifacts.Layout
	repoRoot string
	session  config.Session
	tools    config.Tools
	logger   *slog.Logger
}

// NewLauncher constructs a launcher from configuration.
func NewLauncher(cfg *config.Config, mux tmux.Multiplexer, prompter prompt.Prompter, text TextSource, logger *slog.Logger) *Launcher {
	return &Launcher{
		mux:      mux,
		prompter: prompter,
		text:     text,
		layout:   artifacts.NewLayout(cfg.Paths.ChaptersDir),
		repoRoot: cfg.Paths.RepoRoot,
		session:  cfg.Session,
		tools:    cfg.Tools,
		logger:   logging.NewComponentLogger(logger, "workspace"),
	}
}

// BaseName returns the session name for a chapter (studyflow-ch05).
func (l *Launcher) BaseName(chapter int) string {
	return l.session.Prefix + "-" + artifacts.DirName(chapter)
}

// ResolveSession picks the session to use for chapter. When the base name is
// taken the user chooses between attaching, recreating, or a new suffixed
// session. An empty or unrecognized answer attaches.
func (l *Launcher) ResolveSession(ctx context.Context, chapter int) (Resolution, error) {
	base := l.BaseName(chapter)
	exists, err := l.mux.HasSession(ctx, base)
	if err != nil {
		return Resolution{}, err
	}
	if !exists {
		return Resolution{Name: base, Outcome: Fresh}, nil
	}

	choice, err := l.askConflict(ctx, base)
	if err != nil {
		return Resolution{}, err
	}

	switch choice {
	case Recreate:
		l.logger.Info("killing existing session", logging.Chapter(chapter), logging.Session(base))
		if err := l.mux.KillSession(ctx, base); err != nil {
			return Resolution{}, err
		}
		return Resolution{Name: base, Outcome: Recreate}, nil
	case NewSuffix:
		name, err := l.freeSuffixedName(ctx, base)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Name: name, Outcome: NewSuffix}, nil
	default:
		return Resolution{Name: base, Outcome: AttachOnly}, nil
	}
}

func (l *Launcher) askConflict(ctx context.Context, base string) (Outcome, error) {
	if l.prompter == nil {
		return AttachOnly, nil
	}
	l.prompter.Say("tmux session %q already exists.", base)
	l.prompter.Say("  1) Attach (resume)")
	l.prompter.Say("  2) Kill & restart")
	l.prompter.Say("  3) New session (keep old one)")
	answer, err := l.prompter.Ask(ctx, "Choose [1/2/3] (default 1): ")
	if err != nil {
		return AttachOnly, err
	}
	switch strings.TrimSpace(answer) {
	case "", "1":
		return AttachOnly, nil
	case "2":
		return Recreate, nil
	case "3":
		return NewSuffix, nil
	default:
		logging.WarnWithContext(l.logger, "unrecognized choice; attaching to existing session", "session_choice_default",
			logging.String("answer", answer),
			logging.Session(base),
			logging.String(logging.FieldErrorHint, "answer 2 to restart or 3 to open a second session"),
			logging.String(logging.FieldImpact, "existing session reused"))
		return AttachOnly, nil
	}
}

func (l *Launcher) freeSuffixedName(ctx context.Context, base string) (string, error) {
	for suffix := 2; suffix <= l.session.MaxSuffix; suffix++ {
		candidate := fmt.Sprintf("%s-%d", base, suffix)
		taken, err := l.mux.HasSession(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrEnvironment, "workspace", "resolve",
		fmt.Sprintf("sessions %s-2 through %s-%d are all in use; kill some with `tmux kill-session`", base, base, l.session.MaxSuffix), nil)
}

// Launch builds the workspace for chapter under name and attaches to it. It
// blocks until the user detaches or the session ends.
func (l *Launcher) Launch(ctx context.Context, chapter int, name string) error {
	textPath, err := l.text.EnsureExtracted(ctx, chapter)
	if err != nil {
		return err
	}
	chapterDir := l.layout.ChapterDir(chapter)

	l.logger.Info("launching workspace",
		logging.Chapter(chapter),
		logging.Session(name),
		logging.String("chapter_dir", chapterDir))

	if err := l.mux.NewDetachedSession(ctx, name, l.repoRoot); err != nil {
		return err
	}
	if err := l.mux.SendKeys(ctx, name, l.ReaderCommand(textPath)); err != nil {
		return err
	}
	pane, err := l.mux.SplitPane(ctx, name, chapterDir)
	if err != nil {
		return err
	}
	if err := l.mux.SendKeys(ctx, pane, l.ShellCommand(chapterDir, l.layout.TranscriptPath(chapter))); err != nil {
		return err
	}
	return l.Attach(ctx, name)
}

// Attach attaches to an existing session.
func (l *Launcher) Attach(ctx context.Context, name string) error {
	l.logger.Debug("attaching", logging.Session(name))
	return l.mux.Attach(ctx, name)
}

// ReaderCommand is typed into the reader pane.
func (l *Launcher) ReaderCommand(textPath string) string {
	return l.tools.Pager + " " + shellQuote(textPath)
}

// ShellCommand is typed into the working pane. script truncates the
// transcript, so a recreated session starts a fresh log, and flushes after
// every write.
func (l *Launcher) ShellCommand(chapterDir, transcriptPath string) string {
	return fmt.Sprintf("cd %s && %s -q -f %s %s",
		shellQuote(chapterDir), l.tools.Script, shellQuote(transcriptPath), l.tools.Shell)
}

func shellQuote(s string) string {
	if s != "" && strings.IndexFunc(s, func(r rune) bool {
		return !(r == '/' || r == '.' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
