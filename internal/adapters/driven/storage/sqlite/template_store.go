package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// templateStore implements driven.TemplateStore.
type templateStore struct {
	store *Store
}

var _ driven.TemplateStore = (*templateStore)(nil)

const templateColumns = `id, title, category, symbol, color, description,
	owner_id, sections_json, created_at, updated_at, deleted_at`

// ListTemplates returns non-deleted templates, optionally filtered by
// exact category.
func (s *templateStore) ListTemplates(ctx context.Context, category string) ([]domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE deleted_at IS NULL`
	var args []any

	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY title, id`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template //nolint:prealloc // size unknown from query
	for rows.Next() {
		tpl, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// FindTemplate resolves a template by exact id or title substring.
func (s *templateStore) FindTemplate(ctx context.Context, query string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM templates
		 WHERE id = ?1 OR title LIKE ?2 COLLATE NOCASE
		 ORDER BY created_at, id LIMIT 1`, query, "%"+query+"%")

	tpl, err := scanTemplate(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// scanTemplate maps the template column list into a Template.
func scanTemplate(scan func(dest ...any) error) (*domain.Template, error) {
	var tpl domain.Template
	var category, symbol, color, description sql.NullString
	var ownerID, sectionsJSON, createdAt, updatedAt, deletedAt sql.NullString

	if err := scan(&tpl.ID, &tpl.Title, &category, &symbol, &color, &description,
		&ownerID, &sectionsJSON, &createdAt, &updatedAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	tpl.Category = category.String
	tpl.Symbol = symbol.String
	tpl.Color = color.String
	tpl.Description = description.String
	tpl.OwnerID = ownerID.String
	tpl.CreatedAt = createdAt.String
	tpl.UpdatedAt = updatedAt.String
	if deletedAt.Valid {
		tpl.DeletedAt = &deletedAt.String
	}

	if sectionsJSON.Valid && sectionsJSON.String != "" {
		if err := json.Unmarshal([]byte(sectionsJSON.String), &tpl.Sections); err != nil {
			// Sections are advisory; a malformed blob should not hide
			// the template itself.
			tpl.Sections = nil
		}
	}

	return &tpl, nil
}

// recipeStore implements driven.RecipeStore.
type recipeStore struct {
	store *Store
}

var _ driven.RecipeStore = (*recipeStore)(nil)

const recipeColumns = `id, slug, visibility, publisher_slug, creator_name,
	config_json, created_at, updated_at, deleted_at`

// ListRecipes returns non-deleted recipes, optionally filtered by exact
// visibility.
func (s *recipeStore) ListRecipes(ctx context.Context, visibility string) ([]domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE deleted_at IS NULL`
	var args []any

	if visibility != "" {
		query += ` AND visibility = ?`
		args = append(args, visibility)
	}
	query += ` ORDER BY slug, id`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.Recipe //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return recipes, nil
}

// FindRecipe resolves a recipe by exact id, exact slug, or slug substring.
func (s *recipeStore) FindRecipe(ctx context.Context, query string) (*domain.Recipe, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		 WHERE id = ?1 OR slug = ?1 OR slug LIKE ?2
		 ORDER BY created_at, id LIMIT 1`, query, "%"+query+"%")

	rec, err := scanRecipe(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// scanRecipe maps the recipe column list into a Recipe.
func scanRecipe(scan func(dest ...any) error) (*domain.Recipe, error) {
	var rec domain.Recipe
	var slug, visibility, publisherSlug, creatorName sql.NullString
	var configJSON, createdAt, updatedAt, deletedAt sql.NullString

	if err := scan(&rec.ID, &slug, &visibility, &publisherSlug, &creatorName,
		&configJSON, &createdAt, &updatedAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning recipe: %w", err)
	}

	rec.Slug = slug.String
	rec.Visibility = visibility.String
	rec.PublisherSlug = publisherSlug.String
	rec.CreatorName = creatorName.String
	rec.CreatedAt = createdAt.String
	rec.UpdatedAt = updatedAt.String
	if deletedAt.Valid {
		rec.DeletedAt = &deletedAt.String
	}

	if configJSON.Valid && configJSON.String != "" {
		var config domain.RecipeConfig
		if err := json.Unmarshal([]byte(configJSON.String), &config); err == nil {
			rec.Config = &config
		}
	}

	return &rec, nil
}
