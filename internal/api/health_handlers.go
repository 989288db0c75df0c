package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// health handles GET health → {status, db, queue, recent success rates} (§6).
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := execContext(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", DB: "ok"}

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			resp.DB = "unreachable"
			resp.Status = "degraded"
		}
	}
	if h.Frontier != nil {
		resp.QueueDepth = h.Frontier.Len()
	}
	resp.RecentSuccessRate = h.recentSuccessRate(ctx)

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(c, status, resp)
}

// recentSuccessRate approximates §6's "recent success rates" from the
// product store's status distribution: products that made it past the
// skeleton stage are a crude proxy for extraction success until a
// time-windowed crawl-job aggregate is wired in.
func (h *Handler) recentSuccessRate(ctx context.Context) float64 {
	if h.ProductStore == nil {
		return 0
	}
	counts, err := h.ProductStore.CountProductsByStatus(ctx, nil)
	if err != nil {
		h.logError("recentSuccessRate", err)
		return 0
	}
	total := 0
	succeeded := 0
	for status, n := range counts {
		total += n
		if status != "skeleton" && status != "rejected" {
			succeeded += n
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(succeeded) / float64(total)
}
