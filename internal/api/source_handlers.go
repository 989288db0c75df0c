package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// awardSources handles GET award_sources → [source metadata] (§6).
func (h *Handler) awardSources(c *gin.Context) {
	ctx, cancel := execContext(c.Request.Context(), 10*time.Second)
	defer cancel()

	sources, err := h.SourceStore.ListActiveSources(ctx, nil)
	if err != nil {
		h.logError("awardSources", err)
		respondError(c, http.StatusInternalServerError, "lookup_failed")
		return
	}

	out := make([]SourceMetadata, 0, len(sources))
	for _, s := range sources {
		out = append(out, SourceMetadata{
			ID: s.ID, Name: s.Name, Slug: s.Slug, Category: s.Category, Active: s.Active,
		})
	}
	respondJSON(c, http.StatusOK, out)
}

// sourceHealth handles GET source_health → per-source health report
// (§6/§4.11). It surfaces the state the Structural Health Monitor last wrote
// to the Source row, rather than re-fetching every source's homepage on
// every poll.
func (h *Handler) sourceHealth(c *gin.Context) {
	ctx, cancel := execContext(c.Request.Context(), 10*time.Second)
	defer cancel()

	sources, err := h.SourceStore.ListActiveSources(ctx, nil)
	if err != nil {
		h.logError("sourceHealth", err)
		respondError(c, http.StatusInternalServerError, "lookup_failed")
		return
	}

	out := make([]SourceHealthReport, 0, len(sources))
	for _, s := range sources {
		fp, err := h.SourceStore.GetSourceStructuralFingerprint(ctx, nil, s.ID)
		if err != nil {
			h.logError("sourceHealth.fingerprint", err)
		}
		report := SourceHealthReport{
			SourceID:                 s.ID,
			Slug:                     s.Slug,
			Active:                   s.Active,
			HasStructuralFingerprint: fp != "",
		}
		if s.LastCrawlAt.Valid {
			report.LastCrawlAt = s.LastCrawlAt.Time.Format(time.RFC3339)
		}
		if s.NextCrawlAt.Valid {
			report.NextCrawlAt = s.NextCrawlAt.Time.Format(time.RFC3339)
		}
		out = append(out, report)
	}
	respondJSON(c, http.StatusOK, out)
}
