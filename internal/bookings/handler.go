package bookings

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dev-events/backend/pkg/apperr"
	"github.com/dev-events/backend/pkg/response"
)

// Handler handles booking HTTP endpoints.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

// NewHandler creates a bookings handler.
func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// Create handles POST /api/bookings.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid booking request", zap.Error(err))
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Fail(c, h.svc.Reject(err))
			return
		}
		response.Fail(c, apperr.Wrap(apperr.InvalidInput, "Invalid booking request", err))
		return
	}
	if err := h.svc.Create(c.Request.Context(), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, response.Body{Message: "Booking created successfully"})
}
