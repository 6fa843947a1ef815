package workflow

import (
	"errors"
	"log/slog"

	"studyflow/internal/artifacts"
	"studyflow/internal/chapters"
	"studyflow/internal/config"
	"studyflow/internal/extract"
	"studyflow/internal/logging"
	"studyflow/internal/prompt"
	"studyflow/internal/services/git"
	"studyflow/internal/services/pdftotext"
	"studyflow/internal/services/tmux"
	"studyflow/internal/state"
	"studyflow/internal/transcript"
	"studyflow/internal/vcs"
	"studyflow/internal/workspace"
)

// Orchestrator drives the per-chapter ritual: start opens the workspace for
// the current chapter, done publishes it and advances the pointer.
type Orchestrator struct {
	cfg       *config.Config
	layout    artifacts.Layout
	store     *state.Store
	registry  *chapters.Registry
	extractor *extract.Extractor
	launcher  *workspace.Launcher
	sanitizer *transcript.Sanitizer
	committer *vcs.Committer
	mux       tmux.Multiplexer
	logger    *slog.Logger
}

// Option configures optional Orchestrator collaborators. Unset collaborators
// fall back to the real CLI tools named in the config.
type Option func(*options)

type options struct {
	prompter    prompt.Prompter
	prompterSet bool
	mux         tmux.Multiplexer
	git         git.Client
	tool        pdftotext.Tool
}

// WithPrompter overrides the console prompter. A nil prompter makes any
// question a fatal input error.
func WithPrompter(p prompt.Prompter) Option {
	return func(o *options) {
		o.prompter = p
		o.prompterSet = true
	}
}

// WithMultiplexer overrides the tmux client.
func WithMultiplexer(m tmux.Multiplexer) Option {
	return func(o *options) { o.mux = m }
}

// WithGit overrides the git client.
func WithGit(g git.Client) Option {
	return func(o *options) { o.git = g }
}

// WithExtractionTool overrides the pdftotext client.
func WithExtractionTool(t pdftotext.Tool) Option {
	return func(o *options) { o.tool = t }
}

// New wires an orchestrator for cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.New("workflow: config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.prompterSet && prompt.IsInteractive() {
		o.prompter = prompt.NewStdConsole()
	}
	if o.mux == nil {
		client, err := tmux.New(cfg.Tools.Tmux)
		if err != nil {
			return nil, err
		}
		o.mux = client
	}
	if o.git == nil {
		client, err := git.New(cfg.Tools.Git, cfg.Paths.RepoRoot)
		if err != nil {
			return nil, err
		}
		o.git = client
	}
	if o.tool == nil {
		var toolOpts []pdftotext.Option
		if cfg.Tools.PdftotextLayout {
			toolOpts = append(toolOpts, pdftotext.WithLayout())
		}
		client, err := pdftotext.New(cfg.Tools.Pdftotext, toolOpts...)
		if err != nil {
			return nil, err
		}
		o.tool = client
	}

	layout := artifacts.NewLayout(cfg.Paths.ChaptersDir)
	registry := chapters.NewRegistry(cfg.Paths.RegistryFile, o.prompter, logger)
	extractor := extract.New(layout, cfg.Paths.ReferenceDocument, registry, o.tool, logger)

	return &Orchestrator{
		cfg:       cfg,
		layout:    layout,
		store:     state.NewStore(cfg.Paths.StateFile, cfg.Paths.LockFile, logger),
		registry:  registry,
		extractor: extractor,
		launcher:  workspace.NewLauncher(cfg, o.mux, o.prompter, extractor, logger),
		sanitizer: transcript.NewSanitizer(logger, cfg.Session.StartMarker, cfg.Session.EndMarker),
		committer: vcs.NewCommitter(cfg, o.git, logger),
		mux:       o.mux,
		logger:    logging.NewComponentLogger(logger, "workflow"),
	}, nil
}
