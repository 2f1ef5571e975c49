package stub

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage *DeliveryStorage
}

func NewHandler(storage *DeliveryStorage) *Handler {
	return &Handler{storage: storage}
}

func (h *Handler) HandleReset(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	h.storage.Reset(runID)

	slog.Info("reset data", slog.String("run_id", runID))

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
		"run_id": runID,
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")

	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LatencyMs < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latency_ms must not be negative"})
		return
	}

	h.storage.Seed(runID, req.GoneDevices, time.Duration(req.LatencyMs)*time.Millisecond)

	slog.Info("seeded data",
		slog.String("run_id", runID),
		slog.Int("gone_device_count", len(req.GoneDevices)),
		slog.Int("latency_ms", req.LatencyMs),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":            "seeded",
		"run_id":            runID,
		"gone_device_count": len(req.GoneDevices),
	})
}

// POST /push/:run_id/:device_id
// Behaves like a Web Push service: 201 with a Location header, or 410 for gone devices.
func (h *Handler) HandlePush(c *gin.Context) {
	runID := c.Param("run_id")
	deviceID := c.Param("device_id")

	if c.GetHeader("TTL") == "" {
		c.String(http.StatusBadRequest, "missing TTL header")
		return
	}
	_, _ = io.Copy(io.Discard, c.Request.Body)

	now := time.Now()
	accepted, latency := h.storage.Accept(runID, deviceID, now)
	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-c.Request.Context().Done():
			return
		}
	}

	if !accepted {
		slog.Debug("push rejected for gone device",
			slog.String("run_id", runID),
			slog.String("device_id", deviceID),
		)
		c.String(http.StatusGone, "push subscription has unsubscribed or expired")
		return
	}

	c.Header("Location", "/messages/"+generateMessageID(runID, deviceID, now))
	c.Status(http.StatusCreated)
}

// GET /api/v1/deliveries?run_id=...
func (h *Handler) HandleGetDeliveries(c *gin.Context) {
	runID := c.DefaultQuery("run_id", "default")
	c.JSON(http.StatusOK, h.storage.Deliveries(runID))
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/push/:run_id/:device_id", h.HandlePush)

	v1 := r.Group("/api/v1")
	v1.POST("/reset", h.HandleReset)
	v1.POST("/seed", h.HandleSeed)
	v1.GET("/deliveries", h.HandleGetDeliveries)
}
