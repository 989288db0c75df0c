package api

import (
	"github.com/gin-gonic/gin"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/middleware"
)

// RegisterRoutes wires every §6 inbound endpoint onto router. Extraction and
// crawl-trigger endpoints pass through rl's per-hour limits (§7); if rl or
// h.Config is nil (e.g. in handler-level unit tests) the limiter is skipped
// rather than defaulting to some arbitrary limit.
func RegisterRoutes(router *gin.Engine, h *Handler, rl *middleware.RateLimiter) {
	extractionLimit := noopMiddleware
	crawlLimit := noopMiddleware
	if rl != nil && h.Config != nil {
		extractionLimit = rl.Extraction(h.Config.RateLimits.ExtractionPerHour)
		crawlLimit = rl.CrawlTrigger(h.Config.RateLimits.CrawlTriggerPerHour)
	}

	router.POST("/extract_url", extractionLimit, h.extractURL)
	router.POST("/extract_urls", extractionLimit, h.extractURLs)
	router.POST("/extract_search", extractionLimit, h.extractSearch)

	router.POST("/crawl_awards", crawlLimit, h.crawlAwards)
	router.GET("/crawl_awards_status/:jobId", h.crawlAwardsStatus)

	router.GET("/award_sources", h.awardSources)
	router.GET("/source_health", h.sourceHealth)

	router.GET("/health", h.health)
}

func noopMiddleware(c *gin.Context) { c.Next() }
