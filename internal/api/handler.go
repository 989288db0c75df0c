// Package api implements the inbound REST surface of §6: one-shot and
// batched extraction, competition-award crawl triggering and polling,
// source metadata/health, and the aggregate health endpoint. Handler holds
// the service dependencies the way the teacher's APIHandler does, and every
// handler responds through the same gin.H{"error": ...}/success envelope.
package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/awards"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/extraction"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/frontier"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/health"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/matcher"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/observability"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/parsers/competition"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/scoring"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/search"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/skeleton"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/verify"
)

// Orchestrator is the narrow slice of internal/orchestrate the API layer
// needs to kick off an asynchronous competition crawl (§4.4/§4.7) without
// importing it directly.
type Orchestrator interface {
	TriggerCompetitionCrawl(ctx context.Context, key competition.CompetitionKey, year int) (*models.CrawlJob, error)
}

// Handler holds every dependency the REST surface dispatches into.
type Handler struct {
	Config *config.AppConfig
	DB     *sqlx.DB

	ProductStore   store.ProductStore
	SourceStore    store.SourceStore
	CrawlJobStore  store.CrawlJobStore
	ProvenanceStore store.FieldProvenanceStore
	ErrorStore     store.CrawlErrorStore
	CostStore      store.CostRecordStore

	Fetcher   *fetchrouter.Router
	Extractor *extraction.Extractor
	Searcher  *search.Client
	Matcher   *matcher.Matcher
	AwardsH   *awards.Handler
	Skeleton  *skeleton.Manager
	Verify    *verify.Pipeline
	Orchestrator Orchestrator

	Frontier *frontier.Frontier
	Alerts   *health.Handler
	Metrics  *observability.MetricsCollector

	Logger *zap.Logger
}

func NewHandler(cfg *config.AppConfig, logger *zap.Logger) *Handler {
	return &Handler{Config: cfg, Logger: logger}
}

// errorEnvelope is the stable {"error": ...} shape §7 requires on every
// non-2xx API response.
type errorEnvelope struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorEnvelope{Error: message})
}

func respondJSON(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

func (h *Handler) logError(op string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.Error(op, zap.Error(err))
}

// execContext is a small helper so handlers read consistent per-request
// timeouts without repeating context.WithTimeout at every call site.
func execContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}
