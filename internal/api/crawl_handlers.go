package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// crawlAwardsSourceKeys maps the REST layer's four supported source
// identifiers (§6) onto internal/parsers/competition's CompetitionKey
// vocabulary, which spells two of them differently.
var crawlAwardsSourceKeys = map[string]competition.CompetitionKey{
	"iwsc":  competition.IWSC,
	"sfwsc": competition.SFWSC,
	"wwa":   competition.WorldWhiskiesAwards,
	"dwwa":  competition.DecanterWWA,
}

// crawlAwards handles POST crawl_awards(source, year?) → {job_id, status} (§6).
func (h *Handler) crawlAwards(c *gin.Context) {
	var req CrawlAwardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	key, ok := crawlAwardsSourceKeys[req.Source]
	if !ok {
		respondError(c, http.StatusBadRequest, "unknown source")
		return
	}
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	if h.Orchestrator == nil {
		respondError(c, http.StatusInternalServerError, "orchestrator_unavailable")
		return
	}

	ctx, cancel := execContext(c.Request.Context(), 10*time.Second)
	defer cancel()

	job, err := h.Orchestrator.TriggerCompetitionCrawl(ctx, key, year)
	if err != nil {
		h.logError("crawlAwards", err)
		respondError(c, http.StatusInternalServerError, "crawl_trigger_failed")
		return
	}

	respondJSON(c, http.StatusOK, CrawlAwardsResponse{JobID: job.ID, Status: job.Status})
}

// crawlAwardsStatus handles GET crawl_awards_status(job_id) → {status, counters, errors} (§6).
func (h *Handler) crawlAwardsStatus(c *gin.Context) {
	idParam := c.Param("jobId")
	jobID, err := uuid.Parse(idParam)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid job id")
		return
	}

	ctx, cancel := execContext(c.Request.Context(), 10*time.Second)
	defer cancel()

	job, err := h.CrawlJobStore.GetCrawlJobByID(ctx, nil, jobID)
	if err != nil {
		if err == store.ErrNotFound {
			respondError(c, http.StatusNotFound, "job not found")
			return
		}
		h.logError("crawlAwardsStatus", err)
		respondError(c, http.StatusInternalServerError, "lookup_failed")
		return
	}

	respondJSON(c, http.StatusOK, CrawlAwardsStatusResponse{
		Status: job.Status,
		Counters: CrawlJobCounters{
			PagesCrawled:    job.PagesCrawled,
			ProductsFound:   job.ProductsFound,
			ProductsNew:     job.ProductsNew,
			ProductsUpdated: job.ProductsUpdated,
		},
		Errors: job.ErrorCount,
	})
}
