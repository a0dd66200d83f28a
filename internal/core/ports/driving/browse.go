package driving

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// BrowseQueries drives the browse sub-surfaces: people, calendars, events,
// templates and recipes.
type BrowseQueries interface {
	// ListPeople returns people ordered by name, optionally filtered by
	// company substring.
	ListPeople(ctx context.Context, company string) ([]domain.Person, error)

	// FindPeople returns people matching a name or email substring.
	FindPeople(ctx context.Context, query string) ([]domain.Person, error)

	// ListCalendars returns all synced calendars.
	ListCalendars(ctx context.Context) ([]domain.Calendar, error)

	// ListEvents returns events newest first, optionally restricted by
	// calendar and date range.
	ListEvents(ctx context.Context, calendar string, rng *domain.DateRange) ([]domain.Event, error)

	// ListTemplates returns templates, optionally filtered by category.
	ListTemplates(ctx context.Context, category string) ([]domain.Template, error)

	// ShowTemplate resolves a template by id or title substring.
	ShowTemplate(ctx context.Context, query string) (*domain.Template, error)

	// ListRecipes returns recipes, optionally filtered by visibility.
	ListRecipes(ctx context.Context, visibility string) ([]domain.Recipe, error)

	// ShowRecipe resolves a recipe by id, slug, or slug substring.
	ShowRecipe(ctx context.Context, query string) (*domain.Recipe, error)
}

// InfoQueries drives the db info surface.
type InfoQueries interface {
	// Info aggregates store statistics.
	Info(ctx context.Context) (*domain.DBInfo, error)
}
