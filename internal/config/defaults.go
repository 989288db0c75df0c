// Package config assembles the application configuration tree from
// compiled-in defaults overridden by environment variables, in the style of
// the teacher's internal/config/defaults.go (named Default* constants plus a
// DefaultAppConfigJSON() builder) and cmd/apiserver/main.go's .env loading.
package config

import "time"

const (
	// Fetch Router tier timeouts (§5).
	DefaultTier1TimeoutSeconds = 30
	DefaultTier2TimeoutSeconds = 60
	DefaultTier3TimeoutSeconds = 45

	// Tier escalation thresholds (§4.1).
	DefaultMinUsefulBodyBytes = 256

	DefaultHTTPUserAgent = "SpiritsWiseCrawler/1.0 (+https://spiritswise.example/bot)"

	// Search / AI call timeouts (§5).
	DefaultSearchTimeoutSeconds = 30
	DefaultAITimeoutSeconds     = 30

	// Verification Pipeline targets (§4.9).
	DefaultTargetSources        = 3
	DefaultMinSourcesForVerified = 2

	// Completeness Scoring weights (§4.10).
	ScoreWeightName        = 10
	ScoreWeightBrand       = 5
	ScoreWeightProductType = 5
	ScoreWeightABV         = 5
	ScoreWeightDescription = 5
	ScoreWeightPalateFlavors      = 10
	ScoreWeightPalateDescription  = 5
	ScoreWeightMidPalateEvolution = 3
	ScoreWeightMouthfeel          = 2
	ScoreWeightNoseDescription = 5
	ScoreWeightPrimaryAromas   = 5
	ScoreWeightFinishDescription = 5
	ScoreWeightFinishFlavors     = 3
	ScoreWeightFinishLength      = 2
	ScoreWeightBestPrice = 5
	ScoreWeightImages    = 5
	ScoreWeightRatings   = 5
	ScoreWeightAwards    = 5
	ScoreWeightSourceCount2Plus = 5
	ScoreWeightSourceCount3Plus = 5

	// Status thresholds (§4.10).
	ScoreThresholdIncomplete = 30
	ScoreThresholdPartial    = 60
	ScoreThresholdVerified   = 80

	// Frontier priorities (§4.3).
	PriorityEnrichment   = 10
	PriorityHighValueHub = 8
	PriorityDefault      = 5
	PriorityPagination   = 3
	PrioritySpeculative  = 1

	// Per-host politeness default when a Source doesn't specify one.
	DefaultRateLimitRPM = 10

	// Frontier seen-set retention window (§4.3: "seen in the past N days").
	DefaultFrontierSeenDays = 30

	// Hub Orchestrator BFS page cap (§4.4).
	DefaultHubPageCap = 25

	// Yield Monitor defaults (§4.11 / §8).
	DefaultYieldMinExpectedPerPage = 3
	DefaultYieldAbortAfterPages    = 10

	// Selector Health defaults (§4.11).
	DefaultSelectorMinExpectedMatches = 1

	// Per-user REST rate limits (§7).
	DefaultExtractionRateLimitPerHour   = 50
	DefaultCrawlTriggerRateLimitPerHour = 10

	// Cost metering (cents per call), configurable per deployment.
	DefaultSerpAPICostCents      = 5
	DefaultManagedProxyCostCents = 2
	DefaultAICostCents           = 10

	// ResourceMonitor thresholds (percent) and sample cadence.
	DefaultCPUWarningPercent  = 70
	DefaultCPUCriticalPercent = 90
	DefaultMemWarningPercent  = 80
	DefaultMemCriticalPercent = 95
	DefaultResourceSampleIntervalSeconds = 30
)

// AppConfig is the root configuration tree, assembled by Load().
type AppConfig struct {
	DatabaseDSN string

	FetchRouter FetchRouterConfig
	Verification VerificationConfig
	Frontier    FrontierConfig
	Search      SearchConfig
	AI          AIConfig
	ManagedProxy ManagedProxyConfig
	RateLimits  RateLimitConfig
	Health      HealthConfig
}

// FetchRouterConfig configures the tiered Fetch Router (§4.1).
type FetchRouterConfig struct {
	Tier1Timeout time.Duration
	Tier2Timeout time.Duration
	Tier3Timeout time.Duration
	UserAgent    string
	MinUsefulBodyBytes int

	HeadlessBrowserBinPath string // optional, empty lets go-rod auto-download/locate

	ManagedProxyBaseURL string
	ManagedProxyAPIKey  string
}

// VerificationConfig configures the Verification & Enrichment Pipeline (§4.9).
type VerificationConfig struct {
	TargetSources         int
	MinSourcesForVerified int
}

// FrontierConfig configures the URL Frontier (§4.3).
type FrontierConfig struct {
	SeenRetentionDays int
	DefaultRateLimitRPM int
}

// SearchConfig configures the Search Client (§4.5).
type SearchConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	CostCentsPerCall int
}

// AIConfig configures the AI Extraction Service client (§4.2/§6).
type AIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	CostCentsPerCall int
}

// ManagedProxyConfig configures the Tier 3 managed proxy client (§4.1).
type ManagedProxyConfig struct {
	CostCentsPerCall int
}

// RateLimitConfig configures per-user REST throttling (§7).
type RateLimitConfig struct {
	ExtractionPerHour   int
	CrawlTriggerPerHour int
}

// HealthConfig configures the Structural Health Monitor (§4.11) and the
// ambient ResourceMonitor alongside it.
type HealthConfig struct {
	YieldMinExpectedPerPage int
	YieldAbortAfterPages    int
	SelectorMinExpectedMatches int

	CPUWarningPercent  float64
	CPUCriticalPercent float64
	MemWarningPercent  float64
	MemCriticalPercent float64
	ResourceSampleInterval time.Duration
}
