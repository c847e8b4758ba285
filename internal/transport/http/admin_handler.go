package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-service/internal/app/outbox/queries/list_events"
)

func (h *Handler) dashboard(c *gin.Context) {
	summary, err := h.svc.Queries.SalesSummary.Execute(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardResponse(summary))
}

// listEvents serves the outbox log. Filters: eventType, aggregateId, status, limit.
func (h *Handler) listEvents(c *gin.Context) {
	req := &list_events.Request{
		EventType:   c.Query("eventType"),
		AggregateID: c.Query("aggregateId"),
		Status:      c.Query("status"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "limit must be an integer")
			return
		}
		req.Limit = limit
	}

	events, err := h.svc.Queries.ListEvents.Execute(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events":     toEventList(events),
		"totalCount": len(events),
	})
}

func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Infra.Store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
