package chapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"studyflow/internal/fileutil"
	"studyflow/internal/logging"
	"studyflow/internal/prompt"
	"studyflow/internal/services"
)

// Mapping locates a chapter inside the reference document. Pages are
// 1-based and inclusive.
type Mapping struct {
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Title     string `json:"title"`
}

// Validate checks page bounds. pageLimit <= 0 means the document length is unknown.
func (m Mapping) Validate(pageLimit int) error {
	switch {
	case m.StartPage < 1 || m.EndPage < 1:
		return fmt.Errorf("pages must be positive (got %d-%d)", m.StartPage, m.EndPage)
	case m.StartPage > m.EndPage:
		return fmt.Errorf("start page %d is after end page %d", m.StartPage, m.EndPage)
	case pageLimit > 0 && m.EndPage > pageLimit:
		return fmt.Errorf("end page %d is beyond the last page of the document (%d)", m.EndPage, pageLimit)
	}
	return nil
}

// Entry pairs a chapter number with its mapping.
type Entry struct {
	Chapter int
	Mapping
}

// DefaultTitle is the label used when no title was given.
func DefaultTitle(chapter int) string {
	return fmt.Sprintf("Chapter %d", chapter)
}

type document struct {
	Chapters map[string]Mapping `json:"chapters"`
}

// Registry is the persisted chapter-to-page-range map. Mappings are created
// once through an interactive prompt and never re-prompted.
type Registry struct {
	path      string
	prompter  prompt.Prompter
	pageLimit int
	logger    *slog.Logger
}

// NewRegistry constructs a registry backed by the JSON record at path.
func NewRegistry(path string, prompter prompt.Prompter, logger *slog.Logger) *Registry {
	return &Registry{
		path:     path,
		prompter: prompter,
		logger:   logging.NewComponentLogger(logger, "chapters"),
	}
}

// SetPageLimit bounds accepted end pages to the reference document length.
// Zero leaves end pages unbounded.
func (r *Registry) SetPageLimit(pages int) {
	r.pageLimit = max(pages, 0)
}

// Path returns the record location.
func (r *Registry) Path() string { return r.path }

// Lookup returns the saved mapping for chapter, if any.
func (r *Registry) Lookup(chapter int) (Mapping, bool, error) {
	doc, err := r.load()
	if err != nil {
		return Mapping{}, false, err
	}
	m, ok := doc.Chapters[strconv.Itoa(chapter)]
	if !ok {
		return Mapping{}, false, nil
	}
	if err := m.Validate(0); err != nil {
		return Mapping{}, false, services.Wrap(services.ErrConfiguration, "chapters", "lookup",
			fmt.Sprintf("%s: chapter %d", r.path, chapter), err)
	}
	if strings.TrimSpace(m.Title) == "" {
		m.Title = DefaultTitle(chapter)
	}
	return m, true, nil
}

// GetOrCreate returns the saved mapping for chapter or prompts for one,
// persists it, and returns it.
func (r *Registry) GetOrCreate(ctx context.Context, chapter int) (Mapping, error) {
	m, ok, err := r.Lookup(chapter)
	if err != nil || ok {
		return m, err
	}
	if r.prompter == nil {
		return Mapping{}, services.Wrap(services.ErrInput, "chapters", "prompt",
			fmt.Sprintf("no page range saved for chapter %d and no console available to ask for one", chapter), nil)
	}

	m, err = r.ask(ctx, chapter)
	if err != nil {
		return Mapping{}, err
	}

	doc, err := r.load()
	if err != nil {
		return Mapping{}, err
	}
	doc.Chapters[strconv.Itoa(chapter)] = m
	if err := r.save(doc); err != nil {
		return Mapping{}, err
	}

	r.logger.Info("saved chapter page range",
		logging.Chapter(chapter),
		logging.Int("start_page", m.StartPage),
		logging.Int("end_page", m.EndPage),
		logging.String("title", m.Title))
	return m, nil
}

func (r *Registry) ask(ctx context.Context, chapter int) (Mapping, error) {
	r.prompter.Say("No page range saved yet for Chapter %d.", chapter)
	r.prompter.Say("Enter the PDF page range for this chapter (as shown in the book's TOC).")

	start, err := prompt.AskInt(ctx, r.prompter, "Start page (PDF page number): ")
	if err != nil {
		return Mapping{}, err
	}
	end, err := prompt.AskInt(ctx, r.prompter, "End page (PDF page number): ")
	if err != nil {
		return Mapping{}, err
	}
	title, err := r.prompter.Ask(ctx, "Chapter title (optional): ")
	if err != nil {
		return Mapping{}, err
	}
	if title == "" {
		title = DefaultTitle(chapter)
	}

	m := Mapping{StartPage: start, EndPage: end, Title: title}
	if err := m.Validate(r.pageLimit); err != nil {
		return Mapping{}, services.Wrap(services.ErrInput, "chapters", "prompt", fmt.Sprintf("chapter %d", chapter), err)
	}
	return m, nil
}

// List returns every saved mapping ordered by chapter number.
func (r *Registry) List() ([]Entry, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(doc.Chapters))
	for key, m := range doc.Chapters {
		chapter, err := strconv.Atoi(key)
		if err != nil {
			r.logger.Debug("skipping non-numeric registry key", logging.String("key", key))
			continue
		}
		if strings.TrimSpace(m.Title) == "" {
			m.Title = DefaultTitle(chapter)
		}
		entries = append(entries, Entry{Chapter: chapter, Mapping: m})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Chapter < entries[j].Chapter
	})
	return entries, nil
}

func (r *Registry) load() (document, error) {
	doc := document{Chapters: map[string]Mapping{}}
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read chapter registry: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, services.Wrap(services.ErrConfiguration, "chapters", "load", "parse "+r.path, err)
	}
	if doc.Chapters == nil {
		doc.Chapters = map[string]Mapping{}
	}
	return doc, nil
}

func (r *Registry) save(doc document) error {
	// encoding/json sorts map keys, which keeps diffs stable.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chapter registry: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("persist chapter registry: %w", err)
	}
	return nil
}
