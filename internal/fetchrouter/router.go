package fetchrouter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/config"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// Router implements the escalation rule of §4.1: start at the tier the
// source requires, escalate to the next tier on failure (status >= 500,
// status in {403,429}, or body too short), surface the last error once
// Tier 3 also fails.
type Router struct {
	tier1 *tier1Client
	tier2 *tier2Browser
	tier3 *tier3Proxy

	minUsefulBodyBytes int
}

// New builds a Router from the fetch-router section of the application
// config.
func New(cfg config.FetchRouterConfig) *Router {
	return &Router{
		tier1: newTier1Client(cfg.UserAgent, cfg.Tier1Timeout, cfg.MinUsefulBodyBytes),
		tier2: newTier2Browser(cfg.HeadlessBrowserBinPath, cfg.Tier2Timeout, cfg.MinUsefulBodyBytes),
		tier3: newTier3Proxy(cfg.ManagedProxyBaseURL, cfg.ManagedProxyAPIKey, cfg.Tier3Timeout, DefaultManagedProxyCostCents),
		minUsefulBodyBytes: cfg.MinUsefulBodyBytes,
	}
}

// DefaultManagedProxyCostCents is a local copy of
// config.DefaultManagedProxyCostCents; New passes it to the Tier 3 client as
// the cost of each managed-proxy call.
const DefaultManagedProxyCostCents = 2

// Fetch runs the tiered strategy for one URL against one source's
// configuration, returning the first successful Result or the Tier 3
// failure if every tier failed. The returned cost slice holds one CostRecord
// per Tier 3 attempt; Tier 1 and Tier 2 run locally and emit none.
func (r *Router) Fetch(ctx context.Context, url string, src SourceConfig, crawlJobID uuid.UUID) (*Result, []models.CostRecord, []models.CrawlError) {
	var costs []models.CostRecord
	var crawlErrs []models.CrawlError

	startTier := models.FetchTierPlainHTTP
	if src.RequiresManagedProxy {
		startTier = models.FetchTierManagedProxy
	} else if src.RequiresJS {
		startTier = models.FetchTierHeadlessBrowser
	}

	var last *Result
	for tier := startTier; tier <= models.FetchTierManagedProxy; tier++ {
		var res *Result
		switch tier {
		case models.FetchTierPlainHTTP:
			res = r.tier1.fetch(ctx, url)
		case models.FetchTierHeadlessBrowser:
			// Headless rendering runs on local compute; no metered
			// external service, so no CostRecord is emitted.
			res = r.tier2.fetch(ctx, url, src.AgeGateCookies)
		case models.FetchTierManagedProxy:
			res = r.tier3.fetch(ctx, url, r.minUsefulBodyBytes)
			costs = append(costs, newCostRecord(models.CostServiceManagedProxy, res.CostCents, crawlJobID))
		}
		last = res

		if res.Success {
			return res, costs, crawlErrs
		}

		crawlErrs = append(crawlErrs, newCrawlError(url, res, crawlJobID))

		if !shouldEscalate(res) {
			break
		}
	}
	return last, costs, crawlErrs
}

// shouldEscalate reports whether a failed Result's error kind warrants
// trying the next tier, per §4.1's escalation triggers.
func shouldEscalate(res *Result) bool {
	if res == nil || res.Err == nil {
		return true
	}
	switch res.Err.Kind {
	case models.CrawlErrorBlocked, models.CrawlErrorAgeGate, models.CrawlErrorParse:
		return true
	case models.CrawlErrorConnection:
		return res.Status == 0 || res.Status >= 500
	case models.CrawlErrorTimeout, models.CrawlErrorRateLimit:
		return true
	default:
		return false
	}
}

func newCostRecord(service models.CostServiceEnum, costCents int, crawlJobID uuid.UUID) models.CostRecord {
	return models.CostRecord{
		ID:           uuid.New(),
		Service:      service,
		CostCents:    costCents,
		RequestCount: 1,
		CrawlJobID:   uuid.NullUUID{UUID: crawlJobID, Valid: crawlJobID != uuid.Nil},
		Timestamp:    time.Now(),
	}
}

func newCrawlError(url string, res *Result, crawlJobID uuid.UUID) models.CrawlError {
	ce := models.CrawlError{
		ID:        uuid.New(),
		URL:       url,
		Timestamp: time.Now(),
	}
	if res.Err != nil {
		ce.Kind = res.Err.Kind
		ce.Message = res.Err.Error()
	} else {
		ce.Kind = models.CrawlErrorUnknown
		ce.Message = "unknown fetch failure"
	}
	ce.Tier.Int64 = int64(res.TierUsed)
	ce.Tier.Valid = true
	if res.Status != 0 {
		ce.HTTPStatus.Int64 = int64(res.Status)
		ce.HTTPStatus.Valid = true
	}
	return ce
}
