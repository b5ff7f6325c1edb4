package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spacesedan/goalpulse/internal/analysis"
	"github.com/spacesedan/goalpulse/internal/models"
	"github.com/spacesedan/goalpulse/internal/store"
)

// MAX_TEXT_LENGTH bounds accepted update text. The engine itself
// tolerates any length; the limit is an API contract.
const MAX_TEXT_LENGTH = 5000

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// validateText enforces the caller-side preconditions of the engine:
// text present, a string, non-empty after trimming, and within bounds.
func validateText(body map[string]any) (string, *ErrorResponse) {
	raw, ok := body["text"]
	if !ok {
		return "", &ErrorResponse{Error: "missing_text", Message: "field 'text' is required"}
	}

	text, ok := raw.(string)
	if !ok {
		return "", &ErrorResponse{Error: "invalid_text", Message: "field 'text' must be a string"}
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", &ErrorResponse{Error: "empty_text", Message: "field 'text' must not be empty"}
	}

	if utf8.RuneCountInString(trimmed) > MAX_TEXT_LENGTH {
		return "", &ErrorResponse{Error: "text_too_long", Message: "field 'text' must be at most 5000 characters"}
	}

	return trimmed, nil
}

// AnalyzeHandler runs the engine over the posted text. Results are
// served from the cache when one is configured and healthy; the engine
// is deterministic, so a cached result is always current.
func (s *Server) AnalyzeHandler(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_body", Message: "request body must be a JSON object"})
		return
	}

	text, errResp := validateText(body)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	}

	if s.cacheUsable() {
		if result, ok := s.Cache.GetCachedAnalysis(c.Request.Context(), text); ok {
			c.JSON(http.StatusOK, result)
			return
		}
	}

	result := analysis.Analyze(text)

	if s.cacheUsable() {
		if err := s.Cache.CacheAnalysis(c.Request.Context(), text, result); err != nil {
			slog.Warn("[Server] Failed to cache analysis",
				slog.String("error", err.Error()))
		}
	}

	c.JSON(http.StatusOK, result)
}

// CreateEntryHandler analyzes the posted update and persists it with
// its Area/Tag metadata.
func (s *Server) CreateEntryHandler(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_body", Message: "request body must be a JSON object"})
		return
	}

	text, errResp := validateText(body)
	if errResp != nil {
		c.JSON(http.StatusBadRequest, errResp)
		return
	}

	var area string
	var tags []string
	if a, ok := body["area"].(string); ok {
		area = strings.TrimSpace(a)
	}
	if rawTags, ok := body["tags"].([]any); ok {
		for _, rt := range rawTags {
			if tag, ok := rt.(string); ok && strings.TrimSpace(tag) != "" {
				tags = append(tags, strings.TrimSpace(tag))
			}
		}
	}

	result := analysis.Analyze(text)

	now := time.Now().UTC()
	entry := models.GoalUpdate{
		ID:             uuid.NewString(),
		Text:           text,
		Area:           area,
		Tags:           tags,
		Status:         models.STATUS_ACTIVE,
		SummaryBullets: result.SummaryBullets,
		SentimentLabel: result.SentimentLabel,
		NextStep:       result.NextStep,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.CreateEntry(c.Request.Context(), entry); err != nil {
		slog.Error("[Server] Failed to store entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "failed to store entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (s *Server) ListEntriesHandler(c *gin.Context) {
	filter := models.EntryFilter{
		Area:      c.Query("area"),
		Tag:       c.Query("tag"),
		Status:    c.Query("status"),
		Sentiment: c.Query("sentiment"),
	}

	if filter.Sentiment != "" && !models.ValidSentimentLabel(filter.Sentiment) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_sentiment",
			Message: "sentiment must be one of Positive, Neutral, Negative",
		})
		return
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_status",
			Message: "status must be one of active, archived",
		})
		return
	}

	entries, err := s.Store.ListEntries(c.Request.Context(), filter)
	if err != nil {
		slog.Error("[Server] Failed to list entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) GetEntryHandler(c *gin.Context) {
	entry, err := s.Store.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "entry does not exist"})
			return
		}
		slog.Error("[Server] Failed to load entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "failed to load entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (s *Server) UpdateEntryHandler(c *gin.Context) {
	var patch models.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_body", Message: "request body must be a JSON object"})
		return
	}

	if patch.Status != nil && !models.ValidStatus(*patch.Status) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_status",
			Message: "status must be one of active, archived",
		})
		return
	}

	entry, err := s.Store.UpdateEntry(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "entry does not exist"})
			return
		}
		slog.Error("[Server] Failed to update entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "failed to update entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (s *Server) DeleteEntryHandler(c *gin.Context) {
	if err := s.Store.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: "entry does not exist"})
			return
		}
		slog.Error("[Server] Failed to delete entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Message: "failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) HealthHandler(c *gin.Context) {
	storeStatus := "ok"
	if err := s.Store.Ping(c.Request.Context()); err != nil {
		storeStatus = "unhealthy"
	}

	cacheStatus := "disabled"
	if s.Cache != nil {
		if s.CacheHealthy != nil && s.CacheHealthy.Load() {
			cacheStatus = "ok"
		} else {
			cacheStatus = "unhealthy"
		}
	}

	status := http.StatusOK
	if storeStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status": storeStatus,
		"store":  storeStatus,
		"cache":  cacheStatus,
	})
}

func (s *Server) cacheUsable() bool {
	return s.Cache != nil && s.CacheHealthy != nil && s.CacheHealthy.Load()
}
