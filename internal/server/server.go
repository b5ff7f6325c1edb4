// Package server exposes the analysis engine and the entry store over
// HTTP.
package server

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/goalpulse/internal/clients"
	"github.com/spacesedan/goalpulse/internal/store"
)

// Server bundles the collaborators the handlers need. Cache may be nil;
// analysis then runs uncached.
type Server struct {
	Store        *store.Store
	Cache        *clients.ValkeyClient
	CacheHealthy *atomic.Bool
}

func New(st *store.Store, cache *clients.ValkeyClient, cacheHealthy *atomic.Bool) *Server {
	return &Server{
		Store:        st,
		Cache:        cache,
		CacheHealthy: cacheHealthy,
	}
}

// SetupRouter wires all routes. The custom recovery keeps the error
// contract intact even on an unexpected panic.
func SetupRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("[Server] Recovered from panic", slog.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "unexpected internal failure",
		})
	}))

	r.GET("/healthz", s.HealthHandler)

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", s.AnalyzeHandler)
		api.POST("/entries", s.CreateEntryHandler)
		api.GET("/entries", s.ListEntriesHandler)
		api.GET("/entries/:id", s.GetEntryHandler)
		api.PATCH("/entries/:id", s.UpdateEntryHandler)
		api.DELETE("/entries/:id", s.DeleteEntryHandler)
	}

	return r
}
