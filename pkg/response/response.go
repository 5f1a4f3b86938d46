package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-events/backend/pkg/apperr"
)

// Body is the standard API response envelope.
type Body struct {
	Message string      `json:"message"`
	Event   interface{} `json:"event,omitempty"`
	Events  interface{} `json:"events,omitempty"`
	Booking interface{} `json:"booking,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK sends a 200 JSON response.
func OK(c *gin.Context, body Body) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 JSON response.
func Created(c *gin.Context, body Body) {
	c.JSON(http.StatusCreated, body)
}

// Fail sends err with the status of its kind. Errors that are not *apperr.Error
// are reported as unexpected and their text is not exposed.
func Fail(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, Body{
			Message: "An unexpected error occurred",
			Error:   "Internal server error",
		})
		return
	}
	c.JSON(apperr.StatusCode(e.Kind), Body{Message: e.Message, Error: e.Detail})
}
