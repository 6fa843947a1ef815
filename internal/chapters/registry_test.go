package chapters_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studyflow/internal/chapters"
	"studyflow/internal/logging"
	"studyflow/internal/services"
	"studyflow/internal/testsupport"
)

func newRegistry(t *testing.T, p *testsupport.ScriptedPrompter, pageLimit int) *chapters.Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".studyflow_chapters.json")
	reg := chapters.NewRegistry(path, p, logging.NewNop())
	reg.SetPageLimit(pageLimit)
	return reg
}

func TestGetOrCreatePromptsOnceAndPersists(t *testing.T) {
	prompter := testsupport.NewScriptedPrompter("40", "55", "Strings")
	reg := newRegistry(t, prompter, 0)

	got, err := reg.GetOrCreate(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	want := chapters.Mapping{StartPage: 40, EndPage: 55, Title: "Strings"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mapping mismatch (-want +got):\n%s", diff)
	}
	if len(prompter.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %v", prompter.Questions)
	}

	again, err := reg.GetOrCreate(context.Background(), 5)
	if err != nil {
		t.Fatalf("second GetOrCreate: %v", err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Fatalf("second mapping mismatch (-want +got):\n%s", diff)
	}
	if len(prompter.Questions) != 3 {
		t.Fatalf("expected no further prompts, got %v", prompter.Questions)
	}

	raw := testsupport.ReadText(t, reg.Path())
	for _, fragment := range []string{`"chapters"`, `"5"`, `"start_page": 40`, `"end_page": 55`, `"title": "Strings"`} {
		if !strings.Contains(raw, fragment) {
			t.Fatalf("expected %s in record:\n%s", fragment, raw)
		}
	}
}

func TestGetOrCreateDefaultsEmptyTitle(t *testing.T) {
	reg := newRegistry(t, testsupport.NewScriptedPrompter("3", "3", ""), 0)

	got, err := reg.GetOrCreate(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.Title != "Chapter 2" {
		t.Fatalf("expected default title, got %q", got.Title)
	}
}

func TestGetOrCreateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		answers []string
		limit   int
	}{
		{name: "non-numeric start", answers: []string{"forty", "55", ""}},
		{name: "zero start", answers: []string{"0", "5", ""}},
		{name: "inverted range", answers: []string{"55", "40", ""}},
		{name: "beyond document", answers: []string{"40", "120", ""}, limit: 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := newRegistry(t, testsupport.NewScriptedPrompter(tc.answers...), tc.limit)
			_, err := reg.GetOrCreate(context.Background(), 1)
			if !errors.Is(err, services.ErrInput) {
				t.Fatalf("expected input error, got %v", err)
			}
			if _, ok, lookupErr := reg.Lookup(1); lookupErr != nil || ok {
				t.Fatalf("rejected mapping must not be persisted (ok=%v err=%v)", ok, lookupErr)
			}
		})
	}
}

func TestGetOrCreateAcceptsEndOnLastPage(t *testing.T) {
	reg := newRegistry(t, testsupport.NewScriptedPrompter("90", "100", "Last"), 100)
	if _, err := reg.GetOrCreate(context.Background(), 9); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
}

func TestGetOrCreateWithoutPrompter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	reg := chapters.NewRegistry(path, nil, logging.NewNop())
	if _, err := reg.GetOrCreate(context.Background(), 1); !errors.Is(err, services.ErrInput) {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestLookupReadsExistingRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	testsupport.WriteText(t, path, `{"chapters": {"7": {"start_page": 70, "end_page": 80}}}`)
	reg := chapters.NewRegistry(path, nil, logging.NewNop())

	got, ok, err := reg.Lookup(7)
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.Title != "Chapter 7" || got.StartPage != 70 || got.EndPage != 80 {
		t.Fatalf("unexpected mapping: %+v", got)
	}
}

func TestLookupRejectsMalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	testsupport.WriteText(t, path, `{"chapters": [`)
	reg := chapters.NewRegistry(path, nil, logging.NewNop())
	if _, _, err := reg.Lookup(1); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestListOrdersNumerically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reg.json")
	testsupport.WriteText(t, path, `{"chapters": {
  "10": {"start_page": 100, "end_page": 110, "title": "Ten"},
  "2": {"start_page": 20, "end_page": 25, "title": "Two"},
  "notes": {"start_page": 1, "end_page": 1, "title": "ignored"}
}}`)
	reg := chapters.NewRegistry(path, nil, logging.NewNop())

	entries, err := reg.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []int
	for _, e := range entries {
		got = append(got, e.Chapter)
	}
	if diff := cmp.Diff([]int{2, 10}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}
