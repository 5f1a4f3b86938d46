package events

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/apperr"
)

// Store is the persistence the event operations need. FindBySlug returns (nil, nil)
// when no event has the slug.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, e *models.Event) error
}

// ImageUploader stores image bytes under folder and returns their secure URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

// ImageFile is the binary part of a submission.
type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Submission is a parsed event form: scalar values plus the optional image.
type Submission struct {
	Values map[string]string
	Image  *ImageFile
}

// Service implements slug lookup, listing and ingestion of events.
type Service struct {
	store    Store
	uploader ImageUploader
	folder   string
	logger   *zap.Logger
}

// NewService creates an event service. Images are uploaded into folder.
func NewService(store Store, uploader ImageUploader, folder string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, uploader: uploader, folder: folder, logger: logger}
}

// ValidateSlug checks a lookup parameter.
func ValidateSlug(slug string) error {
	if slug == "" {
		return apperr.New(apperr.InvalidInput, "Invalid slug parameter", "Slug must be a non-empty string")
	}
	if !models.SlugPattern.MatchString(slug) {
		return apperr.New(apperr.InvalidFormat, "Invalid slug format", "Slug must contain only lowercase letters, numbers, and hyphens")
	}
	return nil
}

// GetBySlug returns the event with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	e, err := s.store.FindBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("find event by slug failed", zap.Error(err), zap.String("slug", slug))
		return nil, apperr.Wrap(apperr.StoreError, "Failed to fetch event", err)
	}
	if e == nil {
		return nil, apperr.New(apperr.NotFound, "Event not found", "No event exists with slug: "+slug)
	}
	return e, nil
}

// List returns all events, newest first. The result is never nil.
func (s *Service) List(ctx context.Context) ([]models.Event, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.StoreError, "Failed to fetch events", err)
	}
	if list == nil {
		list = []models.Event{}
	}
	return list, nil
}

// Create normalizes the submission, uploads its image and inserts the event.
// Nothing is inserted unless the upload succeeded.
func (s *Service) Create(ctx context.Context, sub Submission) (*models.Event, error) {
	e := newEvent(sub.Values)

	if sub.Image == nil || sub.Image.Body == nil {
		return nil, apperr.New(apperr.MissingImage, "Image File is required", "")
	}
	data, err := io.ReadAll(sub.Image.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, "Invalid Form Data", fmt.Errorf("read image: %w", err))
	}

	url, err := s.uploader.UploadImage(ctx, s.folder, sub.Image.Filename, sub.Image.ContentType, data)
	if err != nil {
		s.logger.Error("image upload failed", zap.Error(err), zap.String("slug", e.Slug), zap.String("folder", s.folder))
		return nil, apperr.Wrap(apperr.UploadError, "Image Upload Failed", err)
	}
	e.Image = url

	if err := s.store.Create(ctx, e); err != nil {
		s.logger.Error("event insert failed after image upload",
			zap.Error(err),
			zap.String("slug", e.Slug),
			zap.String("image_url", url))
		return nil, apperr.Wrap(apperr.PersistenceError, "Event Creation Failed", err)
	}
	return e, nil
}

// newEvent splits form values into the typed fields and the opaque rest.
// A submitted "image" text value is discarded; the uploaded URL replaces it.
func newEvent(values map[string]string) *models.Event {
	e := &models.Event{Fields: make(map[string]string, len(values))}
	for k, v := range values {
		switch k {
		case models.FieldSlug:
			e.Slug = v
		case models.FieldAgenda:
			e.Agenda = ParseAgenda(v)
		case models.FieldTags:
			e.Tags = ParseTags(v)
		default:
			if !models.IsReserved(k) {
				e.Fields[k] = v
			}
		}
	}
	return e
}
