package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load builds the AppConfig from compiled defaults overridden by
// environment variables, after attempting to load a local .env file from a
// few candidate paths — mirroring cmd/apiserver/main.go's tolerant .env
// loading (missing file is not an error).
func Load() *AppConfig {
	loadDotEnv()

	cfg := &AppConfig{
		DatabaseDSN: envOr("DATABASE_DSN", "postgres://localhost:5432/spiritswise?sslmode=disable"),
		FetchRouter: FetchRouterConfig{
			Tier1Timeout:       time.Duration(envInt("FETCH_TIER1_TIMEOUT_SECONDS", DefaultTier1TimeoutSeconds)) * time.Second,
			Tier2Timeout:       time.Duration(envInt("FETCH_TIER2_TIMEOUT_SECONDS", DefaultTier2TimeoutSeconds)) * time.Second,
			Tier3Timeout:       time.Duration(envInt("FETCH_TIER3_TIMEOUT_SECONDS", DefaultTier3TimeoutSeconds)) * time.Second,
			UserAgent:          envOr("FETCH_USER_AGENT", DefaultHTTPUserAgent),
			MinUsefulBodyBytes: envInt("FETCH_MIN_USEFUL_BODY_BYTES", DefaultMinUsefulBodyBytes),
			HeadlessBrowserBinPath: os.Getenv("FETCH_HEADLESS_BROWSER_BIN"),
			ManagedProxyBaseURL: envOr("MANAGED_PROXY_BASE_URL", "https://managed-proxy.example/api"),
			ManagedProxyAPIKey:  os.Getenv("MANAGED_PROXY_API_KEY"),
		},
		Verification: VerificationConfig{
			TargetSources:         envInt("VERIFY_TARGET_SOURCES", DefaultTargetSources),
			MinSourcesForVerified: envInt("VERIFY_MIN_SOURCES_FOR_VERIFIED", DefaultMinSourcesForVerified),
		},
		Frontier: FrontierConfig{
			SeenRetentionDays:   envInt("FRONTIER_SEEN_RETENTION_DAYS", DefaultFrontierSeenDays),
			DefaultRateLimitRPM: envInt("FRONTIER_DEFAULT_RATE_LIMIT_RPM", DefaultRateLimitRPM),
		},
		Search: SearchConfig{
			BaseURL:          envOr("SEARCH_API_BASE_URL", "https://serpapi.example/search"),
			APIKey:           os.Getenv("SEARCH_API_KEY"),
			Timeout:          time.Duration(envInt("SEARCH_TIMEOUT_SECONDS", DefaultSearchTimeoutSeconds)) * time.Second,
			CostCentsPerCall: envInt("SEARCH_COST_CENTS", DefaultSerpAPICostCents),
		},
		AI: AIConfig{
			BaseURL:          envOr("AI_EXTRACTION_BASE_URL", "https://ai-extraction.internal/api"),
			APIKey:           os.Getenv("AI_EXTRACTION_API_KEY"),
			Timeout:          time.Duration(envInt("AI_TIMEOUT_SECONDS", DefaultAITimeoutSeconds)) * time.Second,
			CostCentsPerCall: envInt("AI_COST_CENTS", DefaultAICostCents),
		},
		ManagedProxy: ManagedProxyConfig{
			CostCentsPerCall: envInt("MANAGED_PROXY_COST_CENTS", DefaultManagedProxyCostCents),
		},
		RateLimits: RateLimitConfig{
			ExtractionPerHour:   envInt("RATE_LIMIT_EXTRACTION_PER_HOUR", DefaultExtractionRateLimitPerHour),
			CrawlTriggerPerHour: envInt("RATE_LIMIT_CRAWL_TRIGGER_PER_HOUR", DefaultCrawlTriggerRateLimitPerHour),
		},
		Health: HealthConfig{
			YieldMinExpectedPerPage:    envInt("YIELD_MIN_EXPECTED_PER_PAGE", DefaultYieldMinExpectedPerPage),
			YieldAbortAfterPages:       envInt("YIELD_ABORT_AFTER_PAGES", DefaultYieldAbortAfterPages),
			SelectorMinExpectedMatches: envInt("SELECTOR_MIN_EXPECTED_MATCHES", DefaultSelectorMinExpectedMatches),
			CPUWarningPercent:      float64(envInt("RESOURCE_CPU_WARNING_PERCENT", DefaultCPUWarningPercent)),
			CPUCriticalPercent:     float64(envInt("RESOURCE_CPU_CRITICAL_PERCENT", DefaultCPUCriticalPercent)),
			MemWarningPercent:      float64(envInt("RESOURCE_MEM_WARNING_PERCENT", DefaultMemWarningPercent)),
			MemCriticalPercent:     float64(envInt("RESOURCE_MEM_CRITICAL_PERCENT", DefaultMemCriticalPercent)),
			ResourceSampleInterval: time.Duration(envInt("RESOURCE_SAMPLE_INTERVAL_SECONDS", DefaultResourceSampleIntervalSeconds)) * time.Second,
		},
	}
	return cfg
}

func loadDotEnv() {
	candidates := []string{".env", filepath.Join("..", ".env")}
	for _, p := range candidates {
		if err := godotenv.Load(p); err == nil {
			log.Printf("config: loaded environment overrides from %s", p)
			return
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
