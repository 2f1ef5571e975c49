package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Error: code, Message: message})
}

// respondServiceError maps a service error onto an HTTP status.
func respondServiceError(c *gin.Context, err error, action string) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, domain.ErrInvalidTimezone),
		errors.Is(err, domain.ErrInvalidInterval),
		errors.Is(err, domain.ErrInvalidPrimaryTime),
		errors.Is(err, domain.ErrInvalidSettings),
		errors.Is(err, domain.ErrInvalidSubscription):
		slog.WarnContext(ctx, "invalid request",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrStorage):
		slog.ErrorContext(ctx, "storage failure",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusServiceUnavailable, "storage_error", "storage is temporarily unavailable")
	default:
		slog.ErrorContext(ctx, "request processing failed",
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to "+action)
	}
}

func respondBindError(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "request binding failed",
		slog.String("error", err.Error()),
		slog.String("path", c.Request.URL.Path),
	)
	respondError(c, http.StatusBadRequest, "validation_error", err.Error())
}

// parseInstant parses an optional RFC3339 value, defaulting to the current time.
// The result is truncated to the minute so that re-fired ticks compare equal.
func parseInstant(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now().Truncate(time.Minute), nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.Truncate(time.Minute), nil
}
