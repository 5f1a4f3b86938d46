package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/dev-events/backend/config"
	"github.com/dev-events/backend/internal/analytics"
	"github.com/dev-events/backend/internal/bookings"
	"github.com/dev-events/backend/internal/events"
	"github.com/dev-events/backend/internal/models"
)

type emptyEventStore struct{}

func (emptyEventStore) FindBySlug(context.Context, string) (*models.Event, error) { return nil, nil }
func (emptyEventStore) List(context.Context) ([]models.Event, error) { return nil, nil }
func (emptyEventStore) Create(context.Context, *models.Event) error { return nil }

type discardBookingStore struct{}

func (discardBookingStore) Create(context.Context, *models.Booking) error { return nil }

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	eventHandler := events.NewHandler(events.NewService(emptyEventStore{}, nil, "dev-events", log), events.DefaultMaxMultipartMemory, log)
	bookingHandler := bookings.NewHandler(bookings.NewService(discardBookingStore{}, analytics.NewLogNotifier(log), log), log)
	return newRouter(config.ServerConfig{CORSAllowedOrigins: "*", MaxMultipartMemory: events.DefaultMaxMultipartMemory}, eventHandler, bookingHandler, log)
}

func TestRouter_Routes(t *testing.T) {
	r := testRouter()
	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/events", "", http.StatusOK},
		{http.MethodGet, "/api/events/go-meetup", "", http.StatusNotFound},
		{http.MethodGet, "/api/events/Bad_Slug", "", http.StatusBadRequest},
		{http.MethodPost, "/api/bookings", `{"eventId":"1","slug":"go-meetup","email":"ada@example.com"}`, http.StatusCreated},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
