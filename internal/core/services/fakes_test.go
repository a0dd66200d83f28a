package services

import (
	"context"
	"strings"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// In-memory store fakes shared by the service tests.

type fakeMeetingStore struct {
	docs []domain.Document
	err  error
}

func (f *fakeMeetingStore) ListMeetings(_ context.Context, rng *domain.DateRange, includeDeleted bool) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Document
	for _, d := range f.docs {
		if d.Deleted() && !includeDeleted {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeMeetingStore) FindMeeting(_ context.Context, query string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.docs {
		if d.ID == query {
			doc := d
			return &doc, nil
		}
	}
	for _, d := range f.docs {
		if strings.HasPrefix(d.ID, query) {
			doc := d
			return &doc, nil
		}
	}
	for _, d := range f.docs {
		if domain.ContainsIgnoreCase(d.Title, query) {
			doc := d
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMeetingStore) SearchMeetings(_ context.Context, query string, _ []domain.SearchTarget, limit int) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Document
	for _, d := range f.docs {
		if !domain.ContainsIgnoreCase(d.Title, query) {
			continue
		}
		out = append(out, d)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMeetingStore) MatchingNoteDocuments(_ context.Context, query, meetingFilter string, _ *domain.DateRange, includeDeleted bool) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Document
	for _, d := range f.docs {
		if d.Deleted() && !includeDeleted {
			continue
		}
		if meetingFilter != "" && d.ID != meetingFilter && !domain.ContainsIgnoreCase(d.Title, meetingFilter) {
			continue
		}
		if !domain.ContainsIgnoreCase(d.NotesPlain, query) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeMeetingStore) DocumentsWithoutTranscripts(context.Context) ([]domain.Document, error) {
	return nil, f.err
}

type fakeTranscriptStore struct {
	utterances map[string][]domain.Utterance
	err        error
}

func (f *fakeTranscriptStore) MatchingUtterances(_ context.Context, query, documentID, speaker string, _ *domain.DateRange) ([]domain.Utterance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Utterance
	for _, docID := range sortedKeys(f.utterances) {
		if documentID != "" && docID != documentID {
			continue
		}
		for _, u := range f.utterances[docID] {
			if speaker != "" && u.Source != speaker {
				continue
			}
			if domain.ContainsIgnoreCase(u.Text, query) {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeTranscriptStore) DocumentUtterances(_ context.Context, documentID string) ([]domain.Utterance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.utterances[documentID], nil
}

func (f *fakeTranscriptStore) InsertTranscript(_ context.Context, documentID string, utterances []domain.Utterance) error {
	if f.utterances == nil {
		f.utterances = map[string][]domain.Utterance{}
	}
	f.utterances[documentID] = utterances
	return f.err
}

func (f *fakeTranscriptStore) UpsertSyncStatus(context.Context, string, string, string) error {
	return f.err
}

func (f *fakeTranscriptStore) SyncStatus(context.Context, string) (string, int, error) {
	return "", 0, domain.ErrNotFound
}

type fakePanelStore struct {
	panels map[string][]domain.Panel
	docs   []domain.Document
	err    error
}

func (f *fakePanelStore) ListPanels(_ context.Context, documentID string) ([]domain.Panel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.panels[documentID], nil
}

func (f *fakePanelStore) MatchingPanelDocuments(_ context.Context, query, meetingFilter string, _ *domain.DateRange) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Document
	for _, d := range f.docs {
		if meetingFilter != "" && d.ID != meetingFilter {
			continue
		}
		for _, p := range f.panels[d.ID] {
			if domain.ContainsIgnoreCase(p.ContentMarkdown, query) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePanelStore) UpsertPanels(_ context.Context, documentID string, panels []domain.Panel) error {
	if f.panels == nil {
		f.panels = map[string][]domain.Panel{}
	}
	f.panels[documentID] = panels
	return f.err
}

func (f *fakePanelStore) UpsertSyncStatus(context.Context, string, string, string) error {
	return f.err
}

type fakePeopleStore struct {
	people []domain.Person
	docs   []domain.Document
	err    error
}

func (f *fakePeopleStore) ListPeople(_ context.Context, company string) ([]domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Person
	for _, p := range f.people {
		if company != "" && !domain.ContainsIgnoreCase(p.CompanyName, company) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePeopleStore) FindPeople(_ context.Context, query string) ([]domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Person
	for _, p := range f.people {
		if domain.ContainsIgnoreCase(p.Name, query) || domain.ContainsIgnoreCase(p.Email, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePeopleStore) MeetingsWithPerson(_ context.Context, query string, includeDeleted bool) ([]domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Document
	for _, d := range f.docs {
		if d.Deleted() && !includeDeleted {
			continue
		}
		if d.People == nil {
			continue
		}
		for _, a := range d.People.Attendees {
			if domain.ContainsIgnoreCase(a.Name, query) || domain.ContainsIgnoreCase(a.Email, query) {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

type fakeVectorStore struct {
	vectors []domain.StoredVector
	model   string
	err     error
}

func (f *fakeVectorStore) LoadVectors(context.Context) ([]domain.StoredVector, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors, nil
}

func (f *fakeVectorStore) InsertChunks(context.Context, []domain.Chunk, [][]float32) error {
	return f.err
}

func (f *fakeVectorStore) DeleteChunks(context.Context, []int64) error {
	return f.err
}

func (f *fakeVectorStore) SetModelMetadata(_ context.Context, modelName string, _, _ int) error {
	f.model = modelName
	return f.err
}

func (f *fakeVectorStore) ModelName(context.Context) (string, error) {
	return f.model, f.err
}

func (f *fakeVectorStore) CheckModelConsistency(_ context.Context, currentModel string) (bool, error) {
	if f.model != "" && f.model != currentModel {
		f.vectors = nil
		return false, f.err
	}
	return true, f.err
}

type fakeEmbedder struct {
	vec   []float32
	model string
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func (f *fakeEmbedder) Model() string { return f.model }

type fakeCalendarStore struct {
	calendars []domain.Calendar
	events    []domain.Event
	err       error
}

func (f *fakeCalendarStore) ListCalendars(context.Context) ([]domain.Calendar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.calendars, nil
}

func (f *fakeCalendarStore) ListEvents(_ context.Context, calendar string, _ *domain.DateRange) ([]domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Event
	for _, e := range f.events {
		if calendar != "" && !domain.ContainsIgnoreCase(e.CalendarID, calendar) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeTemplateStore struct {
	templates []domain.Template
	err       error
}

func (f *fakeTemplateStore) ListTemplates(_ context.Context, category string) ([]domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Template
	for _, t := range f.templates {
		if category != "" && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateStore) FindTemplate(_ context.Context, query string) (*domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.templates {
		if t.ID == query || domain.ContainsIgnoreCase(t.Title, query) {
			tpl := t
			return &tpl, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeRecipeStore struct {
	recipes []domain.Recipe
	err     error
}

func (f *fakeRecipeStore) ListRecipes(_ context.Context, visibility string) ([]domain.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Recipe
	for _, r := range f.recipes {
		if visibility != "" && r.Visibility != visibility {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecipeStore) FindRecipe(_ context.Context, query string) (*domain.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.recipes {
		if r.ID == query || domain.ContainsIgnoreCase(r.Slug, query) {
			rec := r
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeInfoStore struct {
	info *domain.DBInfo
	err  error
}

func (f *fakeInfoStore) Info(context.Context) (*domain.DBInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func sortedKeys(m map[string][]domain.Utterance) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
