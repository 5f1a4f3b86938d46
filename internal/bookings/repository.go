package bookings

import (
	"context"
	"fmt"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/database"
)

// Repository stores bookings in PostgreSQL.
type Repository struct {
	db database.Querier
}

// NewRepository creates a booking repository.
func NewRepository(db database.Querier) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. Repeated bookings for the same event and email are allowed.
func (r *Repository) Create(ctx context.Context, b *models.Booking) error {
	const q = `INSERT INTO bookings (id, event_id, slug, email)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING id::text, created_at, updated_at`
	if err := r.db.QueryRow(ctx, q, b.EventID, b.Slug, b.Email).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}
