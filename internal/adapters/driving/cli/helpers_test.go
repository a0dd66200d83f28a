package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
)

// stubMeetings is a canned driving.MeetingQueries implementation.
type stubMeetings struct {
	docs     []domain.Document
	detail   *driving.MeetingDetail
	withDocs []domain.Document
	err      error

	lastShowOpts driving.ShowOptions
	lastRange    *domain.DateRange
	lastPerson   string
}

func (s *stubMeetings) List(_ context.Context, rng *domain.DateRange) ([]domain.Document, error) {
	s.lastRange = rng
	return s.docs, s.err
}

func (s *stubMeetings) Show(_ context.Context, _ string, opts driving.ShowOptions) (*driving.MeetingDetail, error) {
	s.lastShowOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	if s.detail == nil {
		return nil, domain.ErrNotFound
	}
	return s.detail, nil
}

func (s *stubMeetings) WithPerson(_ context.Context, person string, _ bool) ([]domain.Document, error) {
	s.lastPerson = person
	return s.withDocs, s.err
}

// stubSearch is a canned driving.SearchQueries implementation.
type stubSearch struct {
	docs    []domain.Document
	windows []domain.ContextWindow
	notes   []driving.TextSearchResult
	panels  []driving.TextSearchResult
	hits    []driving.SemanticHit
	err     error

	lastOpts driving.SearchOptions
}

func (s *stubSearch) Keyword(_ context.Context, _ string, opts driving.SearchOptions) ([]domain.Document, error) {
	s.lastOpts = opts
	return s.docs, s.err
}

func (s *stubSearch) TranscriptContext(_ context.Context, _ string, opts driving.SearchOptions) ([]domain.ContextWindow, error) {
	s.lastOpts = opts
	return s.windows, s.err
}

func (s *stubSearch) NotesContext(_ context.Context, _ string, opts driving.SearchOptions) ([]driving.TextSearchResult, error) {
	s.lastOpts = opts
	return s.notes, s.err
}

func (s *stubSearch) PanelContext(_ context.Context, _ string, opts driving.SearchOptions) ([]driving.TextSearchResult, error) {
	s.lastOpts = opts
	return s.panels, s.err
}

func (s *stubSearch) Semantic(_ context.Context, _ string, opts driving.SearchOptions) ([]driving.SemanticHit, error) {
	s.lastOpts = opts
	return s.hits, s.err
}

// stubBrowse is a canned driving.BrowseQueries implementation.
type stubBrowse struct {
	people    []domain.Person
	calendars []domain.Calendar
	events    []domain.Event
	templates []domain.Template
	template  *domain.Template
	recipes   []domain.Recipe
	recipe    *domain.Recipe
	err       error
}

func (s *stubBrowse) ListPeople(_ context.Context, _ string) ([]domain.Person, error) {
	return s.people, s.err
}

func (s *stubBrowse) FindPeople(_ context.Context, query string) ([]domain.Person, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Person
	for _, p := range s.people {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubBrowse) ListCalendars(_ context.Context) ([]domain.Calendar, error) {
	return s.calendars, s.err
}

func (s *stubBrowse) ListEvents(_ context.Context, _ string, _ *domain.DateRange) ([]domain.Event, error) {
	return s.events, s.err
}

func (s *stubBrowse) ListTemplates(_ context.Context, _ string) ([]domain.Template, error) {
	return s.templates, s.err
}

func (s *stubBrowse) ShowTemplate(_ context.Context, _ string) (*domain.Template, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.template == nil {
		return nil, domain.ErrNotFound
	}
	return s.template, nil
}

func (s *stubBrowse) ListRecipes(_ context.Context, _ string) ([]domain.Recipe, error) {
	return s.recipes, s.err
}

func (s *stubBrowse) ShowRecipe(_ context.Context, _ string) (*domain.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.recipe == nil {
		return nil, domain.ErrNotFound
	}
	return s.recipe, nil
}

// stubInfo is a canned driving.InfoQueries implementation.
type stubInfo struct {
	info *domain.DBInfo
	err  error
}

func (s *stubInfo) Info(_ context.Context) (*domain.DBInfo, error) {
	return s.info, s.err
}

var (
	_ driving.MeetingQueries = (*stubMeetings)(nil)
	_ driving.SearchQueries  = (*stubSearch)(nil)
	_ driving.BrowseQueries  = (*stubBrowse)(nil)
	_ driving.InfoQueries    = (*stubInfo)(nil)
)

// setupTestServices swaps the package services for fakes and returns a
// cleanup restoring the previous wiring.
func setupTestServices(meetings *stubMeetings, search *stubSearch, browse *stubBrowse, info *stubInfo) func() {
	oldMeeting, oldSearch := meetingService, searchService
	oldBrowse, oldInfo := browseService, infoService

	if meetings == nil {
		meetings = &stubMeetings{}
	}
	if search == nil {
		search = &stubSearch{}
	}
	if browse == nil {
		browse = &stubBrowse{}
	}
	if info == nil {
		info = &stubInfo{info: &domain.DBInfo{}}
	}

	meetingService = meetings
	searchService = search
	browseService = browse
	infoService = info

	return func() {
		meetingService = oldMeeting
		searchService = oldSearch
		browseService = oldBrowse
		infoService = oldInfo
	}
}

// executeCLI runs the root command with args and captures stdout/stderr.
// Global flags are reset afterwards so tests stay independent.
func executeCLI(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		flagJSON = false
		flagNoColor = false
		flagUTC = false
		flagTZ = ""
		flagDB = ""
		flagVerbose = false
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func strPtr(s string) *string {
	return &s
}
