// Package fetchrouter implements the Tiered Fetch Router of §4.1: plain HTTP
// (Tier 1), headless browser rendering (Tier 2), and managed-proxy external
// API (Tier 3), escalating on failure. Tier 1's client construction and body
// decoding are grounded on the teacher's internal/contentfetcher package;
// Tier 2 adapts the go-rod launcher idiom used elsewhere in the retrieved
// pack; Tier 3 is a thin resty client matching the Search/AI client shape.
package fetchrouter

import (
	"time"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/errs"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// Result is the Fetch Router's return contract from §4.1:
// fetch(url, source_config) -> {content, status, headers, success, error, tier_used, cost_cents}.
type Result struct {
	Content    string
	FinalURL   string
	Status     int
	Headers    map[string]string
	Success    bool
	Err        *errs.FetchError
	TierUsed   models.FetchTierEnum
	CostCents  int
	Duration   time.Duration
}

// SourceConfig carries the subset of models.Source the router needs to pick
// a strategy, without importing the store layer.
type SourceConfig struct {
	RequiresJS           bool
	RequiresProxy        bool
	RequiresManagedProxy bool
	AgeGateMechanism     models.AgeGateMechanismEnum
	AgeGateCookies       map[string]string
}
