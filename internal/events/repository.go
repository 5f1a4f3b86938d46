package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/database"
)

// Repository stores events in PostgreSQL. Opaque form fields live in a JSONB column.
type Repository struct {
	db database.Querier
}

// NewRepository creates an event repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id::text, slug, agenda, tags, image, fields, created_at, updated_at`

// Create validates and inserts an event, filling ID and timestamps.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	agenda, err := jsonList(e.Agenda)
	if err != nil {
		return fmt.Errorf("encode agenda: %w", err)
	}
	tags, err := jsonList(e.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	fields, err := json.Marshal(e.Fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	const q = `INSERT INTO events (id, slug, agenda, tags, image, fields)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5)
		RETURNING id::text, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, e.Slug, agenda, tags, e.Image, string(fields)).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// FindBySlug returns the event with slug, or nil if there is none.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.db.QueryRow(ctx, q, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all events, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var (
		e                    models.Event
		agenda, tags, fields []byte
	)
	if err := row.Scan(&e.ID, &e.Slug, &agenda, &tags, &e.Image, &fields, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if len(agenda) > 0 {
		if err := json.Unmarshal(agenda, &e.Agenda); err != nil {
			return nil, fmt.Errorf("decode agenda: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &e.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	e.Fields = map[string]string{}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &e.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}
	return &e, nil
}

// jsonList encodes items for a nullable JSONB column. A nil slice stays NULL.
func jsonList(items []string) (interface{}, error) {
	if items == nil {
		return nil, nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
