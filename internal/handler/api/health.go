package api

import (
	"net/http"

	"slot-reservation/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	queue usecase.ReservationQueue
}

func NewHealthHandler(queue usecase.ReservationQueue) *HealthHandler {
	return &HealthHandler{queue: queue}
}

// Health reports liveness plus queue depths so the monitoring collaborator
// can alert on a growing backlog.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	depth, err := h.queue.Depth(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "queue unreachable",
		})
		return
	}
	dlqDepth, err := h.queue.DeadLetterDepth(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"error":  "dead-letter queue unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"queue_depth": depth,
		"dlq_depth":   dlqDepth,
	})
}
