package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gofrs/flock"

	"studyflow/internal/fileutil"
	"studyflow/internal/logging"
	"studyflow/internal/services"
)

// DefaultChapter is the chapter a fresh repository starts on.
const DefaultChapter = 1

// State is the persisted workflow pointer.
type State struct {
	CurrentChapter int    `json:"current_chapter"`
	LastSession    string `json:"last_session,omitempty"`
}

// ResolveChapter returns explicit when it names a chapter, otherwise the
// persisted current chapter.
func (s State) ResolveChapter(explicit int) int {
	if explicit > 0 {
		return explicit
	}
	return s.CurrentChapter
}

// Store reads and writes the workflow-state record.
type Store struct {
	path     string
	lockPath string
	logger   *slog.Logger
}

// NewStore constructs a store for the record at path. When lockPath is set,
// writes take a non-blocking advisory lock on it.
func NewStore(path, lockPath string, logger *slog.Logger) *Store {
	return &Store{
		path:     path,
		lockPath: lockPath,
		logger:   logging.NewComponentLogger(logger, "state"),
	}
}

// Path returns the record location.
func (s *Store) Path() string { return s.path }

type record struct {
	CurrentChapter *int   `json:"current_chapter"`
	LastSession    string `json:"last_session"`
}

// Load returns the persisted state, or the default state when no record exists.
// A malformed record is an error.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no state record; starting at default chapter",
				logging.String("path", s.path))
			return State{CurrentChapter: DefaultChapter}, nil
		}
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, services.Wrap(services.ErrConfiguration, "state", "load", "parse "+s.path, err)
	}

	st := State{CurrentChapter: DefaultChapter, LastSession: strings.TrimSpace(rec.LastSession)}
	if rec.CurrentChapter != nil {
		if *rec.CurrentChapter < 1 {
			return State{}, services.Wrap(services.ErrConfiguration, "state", "load",
				fmt.Sprintf("%s: current_chapter must be >= 1, got %d", s.path, *rec.CurrentChapter), nil)
		}
		st.CurrentChapter = *rec.CurrentChapter
	}
	return st, nil
}

// Save overwrites the whole record.
func (s *Store) Save(st State) error {
	if st.CurrentChapter < 1 {
		return fmt.Errorf("save state: current_chapter must be >= 1, got %d", st.CurrentChapter)
	}

	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}

	s.logger.Debug("saved state",
		logging.Int("current_chapter", st.CurrentChapter),
		logging.String("last_session", st.LastSession))
	return nil
}

func (s *Store) lock() (func(), error) {
	if s.lockPath == "" {
		return func() {}, nil
	}
	fl := flock.New(s.lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire state lock %s: %w", s.lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("state lock %s is held by another studyflow invocation", s.lockPath)
	}
	return func() { _ = fl.Unlock() }, nil
}
