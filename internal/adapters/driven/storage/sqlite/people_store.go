package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/grans-labs/grans-cli/internal/core/domain"
	"github.com/grans-labs/grans-cli/internal/core/ports/driven"
)

// peopleStore implements driven.PeopleStore.
type peopleStore struct {
	store *Store
}

var _ driven.PeopleStore = (*peopleStore)(nil)

// ListPeople returns people ordered by name, optionally filtered by
// company name substring.
func (s *peopleStore) ListPeople(ctx context.Context, company string) ([]domain.Person, error) {
	query := `SELECT id, name, email, company_name, job_title FROM people`
	var args []any

	if company != "" {
		query += ` WHERE company_name LIKE ?`
		args = append(args, "%"+company+"%")
	}
	query += ` ORDER BY name`

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	return scanPeople(rows)
}

// FindPeople returns people whose name or email contains query.
func (s *peopleStore) FindPeople(ctx context.Context, query string) ([]domain.Person, error) {
	pattern := "%" + query + "%"
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT id, name, email, company_name, job_title FROM people
		 WHERE name LIKE ?1 OR email LIKE ?1
		 ORDER BY name`, pattern)
	if err != nil {
		return nil, fmt.Errorf("finding people: %w", err)
	}
	defer rows.Close()

	return scanPeople(rows)
}

// MeetingsWithPerson returns documents where a matching person appears,
// newest first.
func (s *peopleStore) MeetingsWithPerson(ctx context.Context, query string, includeDeleted bool) ([]domain.Document, error) {
	sqlQuery := `SELECT DISTINCT ` + documentColumns + ` FROM documents d
		JOIN document_people dp ON dp.document_id = d.id
		WHERE (dp.email LIKE ?1 OR dp.full_name LIKE ?1)`
	if !includeDeleted {
		sqlQuery += ` AND d.deleted_at IS NULL`
	}
	sqlQuery += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("querying meetings with person: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// scanPeople scans people rows.
func scanPeople(rows *sql.Rows) ([]domain.Person, error) {
	var people []domain.Person //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p domain.Person
		var name, email, company, job sql.NullString
		if err := rows.Scan(&p.ID, &name, &email, &company, &job); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		p.Name = name.String
		p.Email = email.String
		p.CompanyName = company.String
		p.JobTitle = job.String
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}
