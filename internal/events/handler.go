package events

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-events/backend/pkg/apperr"
	"github.com/dev-events/backend/pkg/response"
)

// DefaultMaxMultipartMemory is the part of a form kept in memory before spilling to disk.
const DefaultMaxMultipartMemory = 32 << 20

// Handler handles event HTTP endpoints.
type Handler struct {
	svc       *Service
	maxMemory int64
	logger    *zap.Logger
}

// NewHandler creates an event handler. maxMemory <= 0 uses DefaultMaxMultipartMemory.
func NewHandler(svc *Service, maxMemory int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxMemory <= 0 {
		maxMemory = DefaultMaxMultipartMemory
	}
	return &Handler{svc: svc, maxMemory: maxMemory, logger: logger}
}

// List handles GET /api/events.
func (h *Handler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, response.Body{Message: "Events fetched successfully", Events: list})
}

// GetBySlug handles GET /api/events/:slug.
func (h *Handler) GetBySlug(c *gin.Context) {
	e, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, response.Body{Message: "Event retrieved successfully", Event: e})
}

// Create handles POST /api/events. Accepts multipart or urlencoded forms; the image
// must be a file part named "image".
func (h *Handler) Create(c *gin.Context) {
	r := c.Request
	if err := r.ParseMultipartForm(h.maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.logger.Warn("invalid event form", zap.Error(err))
		response.Fail(c, apperr.Wrap(apperr.InvalidInput, "Invalid Form Data", err))
		return
	}

	values := make(map[string]string, len(r.PostForm))
	for k, v := range r.PostForm {
		if len(v) > 0 {
			values[k] = v[len(v)-1]
		}
	}
	sub := Submission{Values: values}

	if r.MultipartForm != nil && len(r.MultipartForm.File["image"]) > 0 {
		fh := r.MultipartForm.File["image"][0]
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("open uploaded image failed", zap.Error(err))
			response.Fail(c, apperr.Wrap(apperr.InvalidInput, "Invalid Form Data", err))
			return
		}
		defer f.Close()
		sub.Image = &ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		}
	}

	e, err := h.svc.Create(r.Context(), sub)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, response.Body{Message: "Event Created Successfully", Event: e})
}
