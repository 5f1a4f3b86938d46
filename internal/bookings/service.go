package bookings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dev-events/backend/internal/models"
	"github.com/dev-events/backend/pkg/apperr"
)

// Store inserts bookings.
type Store interface {
	Create(ctx context.Context, b *models.Booking) error
}

// Notifier receives booking outcomes. Implementations must not block the caller.
type Notifier interface {
	Capture(event, distinctID string, properties map[string]string)
	CaptureException(err error)
}

// CreateRequest carries the three booking fields.
type CreateRequest struct {
	EventID string `json:"eventId" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

// Validate applies the binding rules, as gin does when binding a request body.
func (r CreateRequest) Validate() error {
	return binding.Validator.ValidateStruct(r)
}

// Service registers bookings. It performs no existence or duplicate checks.
type Service struct {
	store    Store
	notifier Notifier
	logger   *zap.Logger
}

// NewService creates a booking service.
func NewService(store Store, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, logger: logger}
}

// Create inserts one booking and reports the outcome to the notifier.
func (s *Service) Create(ctx context.Context, req CreateRequest) error {
	if err := req.Validate(); err != nil {
		return s.Reject(err)
	}
	b := &models.Booking{EventID: req.EventID, Slug: req.Slug, Email: req.Email}
	if err := s.store.Create(ctx, b); err != nil {
		s.logger.Error("create booking failed", zap.Error(err), zap.String("event_id", req.EventID), zap.String("slug", req.Slug))
		s.notifier.CaptureException(err)
		return apperr.Wrap(apperr.PersistenceError, "Booking Creation Failed", err)
	}
	s.notifier.Capture(models.CaptureEventBooked, req.Email, map[string]string{
		"eventId": req.EventID,
		"slug":    req.Slug,
		"email":   req.Email,
	})
	return nil
}

// Reject reports a request that failed validation and returns it as InvalidInput.
func (s *Service) Reject(err error) error {
	invalid := apperr.New(apperr.InvalidInput, "Invalid booking request", describeValidation(err))
	s.notifier.CaptureException(invalid)
	return invalid
}

// describeValidation lists failed rules by JSON field name, e.g. "email is required".
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", jsonName(fe.StructField()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func jsonName(structField string) string {
	f, ok := reflect.TypeOf(CreateRequest{}).FieldByName(structField)
	if !ok {
		return structField
	}
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" {
		return name
	}
	return structField
}
