package config

const (
	defaultRepoRoot          = "."
	defaultReferenceDocument = "book/Learn Python 3 The Hard Way.pdf"
	defaultChaptersDir       = "chapters"
	defaultStateFile         = ".studyflow_state.json"
	defaultRegistryFile      = ".studyflow_chapters.json"
	defaultLockFile          = ".git/studyflow.lock"
	defaultPdftotextBinary   = "pdftotext"
	defaultTmuxBinary        = "tmux"
	defaultScriptBinary      = "script"
	defaultPagerBinary       = "less"
	defaultShellBinary       = "bash"
	defaultGitBinary         = "git"
	defaultSessionPrefix     = "studyflow"
	defaultSessionMaxSuffix  = 100
	defaultStartMarker       = "Script started"
	defaultEndMarker         = "Script done"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RepoRoot:          defaultRepoRoot,
			ReferenceDocument: defaultReferenceDocument,
			ChaptersDir:       defaultChaptersDir,
			StateFile:         defaultStateFile,
			RegistryFile:      defaultRegistryFile,
			LockFile:          defaultLockFile,
		},
		Tools: Tools{
			Pdftotext: defaultPdftotextBinary,
			Tmux:      defaultTmuxBinary,
			Script:    defaultScriptBinary,
			Pager:     defaultPagerBinary,
			Shell:     defaultShellBinary,
			Git:       defaultGitBinary,
		},
		Session: Session{
			Prefix:      defaultSessionPrefix,
			MaxSuffix:   defaultSessionMaxSuffix,
			StartMarker: defaultStartMarker,
			EndMarker:   defaultEndMarker,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
