package bookings

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dev-events/backend/internal/models"
)

// CollectionBookings is the MongoDB collection holding bookings.
const CollectionBookings = "bookings"

// MongoRepository stores bookings in MongoDB.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a booking repository on db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionBookings)}
}

// Create inserts a booking.
func (r *MongoRepository) Create(ctx context.Context, b *models.Booking) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := primitive.NewObjectID()
	doc := bson.M{
		"_id":       id,
		"eventId":   b.EventID,
		"slug":      b.Slug,
		"email":     b.Email,
		"createdAt": now,
		"updatedAt": now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID = id.Hex()
	b.CreatedAt, b.UpdatedAt = now, now
	return nil
}
