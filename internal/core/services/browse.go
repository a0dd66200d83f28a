package services

import (
	"context"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
	"github.com/grans-labs/grans-cli/internal/core/ports/driving"
)

// Ensure BrowseService implements the interface.
var _ driving.BrowseQueries = (*BrowseService)(nil)

// BrowseService answers queries over the non-meeting content: people,
// calendars, events, templates and recipes.
type BrowseService struct {
	people    driven.PeopleStore
	calendars driven.CalendarStore
	templates driven.TemplateStore
	recipes   driven.RecipeStore
}

// NewBrowseService creates a new browse query service.
func NewBrowseService(
	people driven.PeopleStore,
	calendars driven.CalendarStore,
	templates driven.TemplateStore,
	recipes driven.RecipeStore,
) *BrowseService {
	return &BrowseService{
		people:    people,
		calendars: calendars,
		templates: templates,
		recipes:   recipes,
	}
}

// ListPeople returns people ordered by name, optionally filtered by company.
func (s *BrowseService) ListPeople(ctx context.Context, company string) ([]domain.Person, error) {
	people, err := s.people.ListPeople(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// FindPeople returns people matching a name or email substring.
func (s *BrowseService) FindPeople(ctx context.Context, query string) ([]domain.Person, error) {
	people, err := s.people.FindPeople(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finding people %q: %w", query, err)
	}
	return people, nil
}

// ListCalendars returns all synced calendars.
func (s *BrowseService) ListCalendars(ctx context.Context) ([]domain.Calendar, error) {
	calendars, err := s.calendars.ListCalendars(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	return calendars, nil
}

// ListEvents returns events newest first.
func (s *BrowseService) ListEvents(ctx context.Context, calendar string, rng *domain.DateRange) ([]domain.Event, error) {
	events, err := s.calendars.ListEvents(ctx, calendar, rng)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// ListTemplates returns templates, optionally filtered by category.
func (s *BrowseService) ListTemplates(ctx context.Context, category string) ([]domain.Template, error) {
	templates, err := s.templates.ListTemplates(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return templates, nil
}

// ShowTemplate resolves one template by id or title substring.
func (s *BrowseService) ShowTemplate(ctx context.Context, query string) (*domain.Template, error) {
	return s.templates.FindTemplate(ctx, query)
}

// ListRecipes returns recipes, optionally filtered by visibility.
func (s *BrowseService) ListRecipes(ctx context.Context, visibility string) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListRecipes(ctx, visibility)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// ShowRecipe resolves one recipe by id, slug, or slug substring.
func (s *BrowseService) ShowRecipe(ctx context.Context, query string) (*domain.Recipe, error) {
	return s.recipes.FindRecipe(ctx, query)
}
