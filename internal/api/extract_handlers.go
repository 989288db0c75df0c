package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
)

func parseProductTypeHint(raw string) models.ProductTypeEnum {
	switch models.ProductTypeEnum(raw) {
	case models.ProductTypeWhiskey, models.ProductTypePortWine:
		return models.ProductTypeEnum(raw)
	default:
		return models.ProductTypeWhiskey
	}
}

func summarize(p *models.Product) ProductSummary {
	return ProductSummary{
		ID:                p.ID,
		Name:              p.Name,
		ProductType:       p.ProductType,
		Status:            p.Status,
		CompletenessScore: p.CompletenessScore,
		SourceCount:       p.SourceCount,
	}
}

// extractURL handles POST extract_url(url) → {success, products[], extraction_time_ms} (§6).
func (h *Handler) extractURL(c *gin.Context) {
	var req ExtractURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := execContext(c.Request.Context(), 60*time.Second)
	defer cancel()

	started := time.Now()
	product, err := h.ingestURL(ctx, req.URL, parseProductTypeHint(req.ProductType), uuid.Nil)
	if err != nil {
		if errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrExtractionFailed) {
			respondJSON(c, http.StatusOK, ExtractResponse{Success: false, ExtractionTimeMS: time.Since(started).Milliseconds()})
			return
		}
		h.logError("extractURL", err)
		respondError(c, http.StatusInternalServerError, "extraction_failed")
		return
	}

	respondJSON(c, http.StatusOK, ExtractResponse{
		Success:          true,
		Products:         []ProductSummary{summarize(product)},
		ExtractionTimeMS: time.Since(started).Milliseconds(),
	})
}

// extractURLs handles POST extract_urls(urls[≤50]) → batched result (§6).
// The 50-URL cap is enforced by ExtractURLsRequest's binding tag; each URL
// is ingested independently so one failure doesn't sink the batch.
func (h *Handler) extractURLs(c *gin.Context) {
	var req ExtractURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := execContext(c.Request.Context(), 5*time.Minute)
	defer cancel()

	started := time.Now()
	hint := parseProductTypeHint(req.ProductType)
	summaries := make([]ProductSummary, 0, len(req.URLs))
	for _, u := range req.URLs {
		product, err := h.ingestURL(ctx, u, hint, uuid.Nil)
		if err != nil {
			h.logError("extractURLs", err)
			continue
		}
		summaries = append(summaries, summarize(product))
	}

	respondJSON(c, http.StatusOK, ExtractResponse{
		Success:          true,
		Products:         summaries,
		ExtractionTimeMS: time.Since(started).Milliseconds(),
	})
}

// extractSearch handles POST extract_search(query) → {success, products[]} (§6):
// runs the query through the Search Client, then ingests every non-excluded
// result URL the same way extract_url does.
func (h *Handler) extractSearch(c *gin.Context) {
	var req ExtractSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := execContext(c.Request.Context(), 5*time.Minute)
	defer cancel()

	results, cost, err := h.Searcher.Search(ctx, req.Query, 10, uuid.Nil)
	h.recordCosts(ctx, []models.CostRecord{cost})
	if err != nil {
		h.logError("extractSearch", err)
		respondJSON(c, http.StatusOK, ExtractResponse{Success: false})
		return
	}

	hint := parseProductTypeHint(req.ProductType)
	var summaries []ProductSummary
	for _, r := range results {
		if search.IsExcludedDomain(r.Domain) {
			continue
		}
		product, err := h.ingestURL(ctx, r.URL, hint, uuid.Nil)
		if err != nil {
			h.logError("extractSearch", err)
			continue
		}
		summaries = append(summaries, summarize(product))
	}

	respondJSON(c, http.StatusOK, ExtractResponse{Success: true, Products: summaries})
}
