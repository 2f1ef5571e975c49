package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type SubscriptionHandler struct {
	registry SubscriptionRegistry
}

func NewSubscriptionHandler(registry SubscriptionRegistry) *SubscriptionHandler {
	return &SubscriptionHandler{registry: registry}
}

type registerSubscriptionRequest struct {
	UserID    string                  `json:"user_id" binding:"required"`
	Endpoint  string                  `json:"endpoint" binding:"required"`
	Keys      domain.SubscriptionKeys `json:"keys"`
	UserAgent *string                 `json:"user_agent"`
}

type unregisterSubscriptionRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Endpoint string `json:"endpoint" binding:"required"`
}

type subscriptionResponse struct {
	ID        string    `json:"id"`
	Endpoint  string    `json:"endpoint"`
	UserAgent *string   `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toSubscriptionResponse(sub *domain.PushSubscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        sub.ID,
		Endpoint:  sub.Endpoint,
		UserAgent: sub.UserAgent,
		CreatedAt: sub.CreatedAt,
	}
}

// HandleRegister stores a device. Registering an endpoint twice answers 200 instead of 201.
func (h *SubscriptionHandler) HandleRegister(c *gin.Context) {
	var req registerSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sub, err := h.registry.Register(c.Request.Context(), req.UserID, domain.SubscriptionDescriptor{
		Endpoint:  req.Endpoint,
		Keys:      req.Keys,
		UserAgent: req.UserAgent,
	})
	if errors.Is(err, domain.ErrDuplicateEndpoint) {
		c.JSON(http.StatusOK, gin.H{"status": "already_registered"})
		return
	}
	if err != nil {
		respondServiceError(c, err, "register subscription")
		return
	}

	c.JSON(http.StatusCreated, toSubscriptionResponse(sub))
}

func (h *SubscriptionHandler) HandleUnregister(c *gin.Context) {
	var req unregisterSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.registry.Unregister(c.Request.Context(), req.UserID, req.Endpoint); err != nil {
		respondServiceError(c, err, "unregister subscription")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) HandleList(c *gin.Context) {
	subs, err := h.registry.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondServiceError(c, err, "list subscriptions")
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubscriptionResponse(sub))
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": out})
}
