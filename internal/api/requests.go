package api

import (
	"github.com/google/uuid"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// ExtractURLRequest is extract_url's request body (§6).
type ExtractURLRequest struct {
	URL         string `json:"url" binding:"required,url"`
	ProductType string `json:"productType"`
}

// ExtractURLsRequest is extract_urls' request body (§6): capped at 50 URLs.
type ExtractURLsRequest struct {
	URLs        []string `json:"urls" binding:"required,min=1,max=50,dive,url"`
	ProductType string   `json:"productType"`
}

// ExtractSearchRequest is extract_search's request body (§6).
type ExtractSearchRequest struct {
	Query       string `json:"query" binding:"required"`
	ProductType string `json:"productType"`
}

// ProductSummary is the trimmed product shape every extract_* response
// embeds; the full record is reachable via its id through the product store
// once a read API is added, so the REST surface only ever needs a summary
// here.
type ProductSummary struct {
	ID                uuid.UUID          `json:"id"`
	Name              string         `json:"name"`
	ProductType       models.ProductTypeEnum `json:"productType"`
	Status            models.ProductStatusEnum `json:"status"`
	CompletenessScore int            `json:"completenessScore"`
	SourceCount       int            `json:"sourceCount"`
}

// ExtractResponse is extract_url's response (§6).
type ExtractResponse struct {
	Success         bool             `json:"success"`
	Products        []ProductSummary `json:"products"`
	ExtractionTimeMS int64           `json:"extractionTimeMs"`
}

// CrawlAwardsRequest is crawl_awards' request body (§6).
type CrawlAwardsRequest struct {
	Source string `json:"source" binding:"required,oneof=iwsc dwwa sfwsc wwa"`
	Year   int    `json:"year"`
}

// CrawlAwardsResponse is crawl_awards' response (§6).
type CrawlAwardsResponse struct {
	JobID  uuid.UUID                     `json:"jobId"`
	Status models.CrawlJobStatusEnum `json:"status"`
}

// CrawlAwardsStatusResponse is crawl_awards_status' response (§6).
type CrawlAwardsStatusResponse struct {
	Status   models.CrawlJobStatusEnum `json:"status"`
	Counters CrawlJobCounters         `json:"counters"`
	Errors   int                      `json:"errors"`
}

// CrawlJobCounters mirrors the CrawlJob progress columns (§3).
type CrawlJobCounters struct {
	PagesCrawled    int `json:"pagesCrawled"`
	ProductsFound   int `json:"productsFound"`
	ProductsNew     int `json:"productsNew"`
	ProductsUpdated int `json:"productsUpdated"`
}

// SourceMetadata is one entry of award_sources' response (§6).
type SourceMetadata struct {
	ID       uuid.UUID                  `json:"id"`
	Name     string                 `json:"name"`
	Slug     string                 `json:"slug"`
	Category models.SourceCategoryEnum `json:"category"`
	Active   bool                   `json:"active"`
}

// SourceHealthReport is one entry of source_health's response (§6/§4.11).
type SourceHealthReport struct {
	SourceID               uuid.UUID  `json:"sourceId"`
	Slug                   string `json:"slug"`
	Active                 bool   `json:"active"`
	HasStructuralFingerprint bool `json:"hasStructuralFingerprint"`
	LastCrawlAt            string `json:"lastCrawlAt,omitempty"`
	NextCrawlAt            string `json:"nextCrawlAt,omitempty"`
}

// HealthResponse is the health endpoint's response (§6).
type HealthResponse struct {
	Status             string  `json:"status"`
	DB                 string  `json:"db"`
	QueueDepth         int     `json:"queueDepth"`
	RecentSuccessRate  float64 `json:"recentSuccessRate"`
}
