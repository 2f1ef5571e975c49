package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications    NotificationService
	cancellations    CancellationService
	logs             LogPruner
	logRetentionDays int
}

func NewNotificationHandler(
	notifications NotificationService,
	cancellations CancellationService,
	logs LogPruner,
	logRetentionDays int,
) *NotificationHandler {
	return &NotificationHandler{
		notifications:    notifications,
		cancellations:    cancellations,
		logs:             logs,
		logRetentionDays: logRetentionDays,
	}
}

type checkRequest struct {
	UserID string `json:"user_id" binding:"required"`
	// Now overrides the evaluation instant, RFC3339.
	Now string `json:"now"`
}

// HandleCheck evaluates one user. It is the target of both the external trigger and follow-up wake-ups.
func (h *NotificationHandler) HandleCheck(c *gin.Context) {
	ctx := c.Request.Context()

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	now, err := parseInstant(req.Now)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid now, expected RFC3339")
		return
	}

	result, err := h.notifications.CheckAndSend(ctx, req.UserID, now)
	if err != nil {
		respondServiceError(c, err, "check notifications")
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleCheckBatch evaluates every enabled user. The optional "now" query parameter sets a virtual time.
func (h *NotificationHandler) HandleCheckBatch(c *gin.Context) {
	ctx := c.Request.Context()

	now, err := parseInstant(c.Query("now"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid now, expected RFC3339")
		return
	}
	if c.Query("now") != "" {
		slog.InfoContext(ctx, "using virtual time", slog.Time("virtual_now", now))
	}

	batch, err := h.notifications.CheckAndSendAll(ctx, now)
	if err != nil {
		respondServiceError(c, err, "run batch check")
		return
	}

	c.JSON(http.StatusOK, batch)
}

type entryCreatedRequest struct {
	UserID    string    `json:"user_id" binding:"required"`
	EntryID   string    `json:"entry_id" binding:"required"`
	CreatedAt time.Time `json:"created_at" binding:"required"`
}

// HandleEntryCreated accepts the event and returns before the follow-up work finishes.
func (h *NotificationHandler) HandleEntryCreated(c *gin.Context) {
	var req entryCreatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	h.notifications.HandleEntryCreated(c.Request.Context(), req.UserID, req.EntryID, req.CreatedAt)

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

type cancelFollowUpsRequest struct {
	UserID string `json:"user_id" binding:"required"`
	// TargetDate is YYYY-MM-DD in the user's timezone; empty means today.
	TargetDate string `json:"target_date"`
}

func (h *NotificationHandler) HandleCancelFollowUps(c *gin.Context) {
	var req cancelFollowUpsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cancellations.Cancel(c.Request.Context(), req.UserID, req.TargetDate)
	if err != nil {
		respondServiceError(c, err, "cancel follow-ups")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *NotificationHandler) HandlePruneLogs(c *gin.Context) {
	ctx := c.Request.Context()

	days := h.logRetentionDays
	if raw := c.Query("retention_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "validation_error", "retention_days must be a positive integer")
			return
		}
		days = parsed
	}

	deleted, err := h.logs.PruneOlderThan(ctx, days)
	if err != nil {
		respondServiceError(c, err, "prune notification logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":        deleted,
		"retention_days": days,
	})
}
