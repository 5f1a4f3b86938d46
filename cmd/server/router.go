package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-events/backend/config"
	"github.com/dev-events/backend/internal/bookings"
	"github.com/dev-events/backend/internal/events"
	"github.com/dev-events/backend/internal/middleware"
	"github.com/dev-events/backend/pkg/response"
)

func newRouter(cfg config.ServerConfig, eventHandler *events.Handler, bookingHandler *bookings.Handler, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxMultipartMemory
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	router.Use(middleware.Logger(log, "/health"))

	router.GET("/health", func(c *gin.Context) { response.OK(c, response.Body{Message: "ok"}) })

	api := router.Group("/api")
	{
		api.GET("/events", eventHandler.List)
		api.POST("/events", eventHandler.Create)
		api.GET("/events/:slug", eventHandler.GetBySlug)
		api.POST("/bookings", bookingHandler.Create)
	}
	return router
}
