package driven

import (
	"context"

	"github.com/grans-labs/grans-cli/internal/core/domain"
)

// TemplateStore reads panel templates.
type TemplateStore interface {
	// ListTemplates returns non-deleted templates ordered by title,
	// optionally filtered by exact category.
	ListTemplates(ctx context.Context, category string) ([]domain.Template, error)

	// FindTemplate resolves a template by exact id or title substring.
	// Returns domain.ErrNotFound when nothing matches.
	FindTemplate(ctx context.Context, query string) (*domain.Template, error)
}

// RecipeStore reads processing recipes.
type RecipeStore interface {
	// ListRecipes returns non-deleted recipes ordered by slug, optionally
	// filtered by exact visibility ("public" or "private").
	ListRecipes(ctx context.Context, visibility string) ([]domain.Recipe, error)

	// FindRecipe resolves a recipe by exact id, exact slug, or slug
	// substring. Returns domain.ErrNotFound when nothing matches.
	FindRecipe(ctx context.Context, query string) (*domain.Recipe, error)
}
