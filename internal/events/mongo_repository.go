package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dev-events/backend/internal/models"
)

// CollectionEvents is the MongoDB collection holding events.
const CollectionEvents = "events"

// collection is the part of *mongo.Collection the repository uses.
type collection interface {
	Indexes() mongo.IndexView
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoRepository stores events as flat MongoDB documents.
type MongoRepository struct {
	coll collection
}

// NewMongoRepository creates an event repository on db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionEvents)}
}

// EnsureIndexes creates the unique slug index and the listing index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: models.FieldSlug, Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: models.FieldCreatedAt, Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create event indexes: %w", err)
	}
	return nil
}

// Create validates and inserts an event, filling ID and timestamps.
func (r *MongoRepository) Create(ctx context.Context, e *models.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	id := primitive.NewObjectID()
	e.CreatedAt, e.UpdatedAt = now, now
	doc := eventToDocument(e)
	doc[models.FieldID] = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	e.ID = id.Hex()
	return nil
}

// FindBySlug returns the event with slug, or nil if there is none.
func (r *MongoRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.M{models.FieldSlug: slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return eventFromDocument(doc), nil
}

// List returns all events, newest first.
func (r *MongoRepository) List(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: models.FieldCreatedAt, Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Event{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		list = append(list, *eventFromDocument(doc))
	}
	return list, cur.Err()
}

func eventToDocument(e *models.Event) bson.M {
	doc := bson.M{}
	for k, v := range e.Fields {
		if !models.IsReserved(k) {
			doc[k] = v
		}
	}
	doc[models.FieldSlug] = e.Slug
	doc[models.FieldImage] = e.Image
	if e.Agenda != nil {
		doc[models.FieldAgenda] = e.Agenda
	}
	if e.Tags != nil {
		doc[models.FieldTags] = e.Tags
	}
	doc[models.FieldCreatedAt] = e.CreatedAt
	doc[models.FieldUpdatedAt] = e.UpdatedAt
	return doc
}

func eventFromDocument(doc bson.M) *models.Event {
	e := &models.Event{Fields: map[string]string{}}
	for k, v := range doc {
		switch k {
		case models.FieldID:
			e.ID = documentID(v)
		case models.FieldSlug:
			e.Slug = toString(v)
		case models.FieldImage:
			e.Image = toString(v)
		case models.FieldAgenda:
			e.Agenda = toStrings(v)
		case models.FieldTags:
			e.Tags = toStrings(v)
		case models.FieldCreatedAt:
			e.CreatedAt = toTime(v)
		case models.FieldUpdatedAt:
			e.UpdatedAt = toTime(v)
		case "__v":
		default:
			e.Fields[k] = toString(v)
		}
	}
	return e
}

func documentID(v interface{}) string {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return toString(v)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func toStrings(v interface{}) []string {
	arr, ok := v.(primitive.A)
	if !ok {
		if s, ok := v.([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		out = append(out, toString(item))
	}
	return out
}

func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t
	}
	return time.Time{}
}
